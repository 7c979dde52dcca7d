package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/theirongolddev/claudash/internal/config"
	"github.com/theirongolddev/claudash/internal/model"
	"github.com/theirongolddev/claudash/internal/source"
)

// Options controls a full load.
type Options struct {
	WorkspacePrefix string
	// SessionsPerProject caps how many sessions are read per project, taken
	// in sorted id order. Zero reads all of them.
	SessionsPerProject int
	Workers            int
	FetchTimeout       time.Duration
	Location           *time.Location
	// Now stamps lastComputedDate; zero means time.Now.
	Now time.Time
}

// OptionsFromConfig builds load options from the user configuration.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	loc, err := cfg.Location()
	opts := Options{
		WorkspacePrefix:    cfg.General.WorkspacePrefix,
		SessionsPerProject: cfg.General.SessionsPerProject,
		Workers:            cfg.General.Workers,
		FetchTimeout:       cfg.General.FetchTimeout.Duration,
		Location:           loc,
	}
	return opts, err
}

// LoadResult holds the output of the full data loading pipeline.
type LoadResult struct {
	Projects []model.Project
	// Sessions are the assembled non-empty sessions in discovery order.
	Sessions []*model.Session
	// Requested counts the session logs that were fetched.
	Requested int
	// Skipped counts logs that were missing, unreadable, timed out or undecodable.
	Skipped int
	Stats   *model.StatsCache
}

// ProgressFunc is called during loading to report progress.
// current is the number of sessions processed so far, total is the total count.
type ProgressFunc func(current, total int)

type sessionRef struct {
	projectID string
	sessionID string
}

// Load discovers projects, assembles their sessions on a bounded worker pool
// and folds them into a StatsCache. Sessions are folded in discovery order,
// so ties resolve the same way however the fetches interleave.
func Load(ctx context.Context, src source.Source, opts Options, progressFn ProgressFunc) (*LoadResult, error) {
	projects := source.DiscoverProjects(ctx, src, opts.WorkspacePrefix)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var refs []sessionRef
	for _, p := range projects {
		ids := p.Sessions
		if opts.SessionsPerProject > 0 && len(ids) > opts.SessionsPerProject {
			ids = ids[:opts.SessionsPerProject]
		}
		for _, id := range ids {
			refs = append(refs, sessionRef{projectID: p.ID, sessionID: id})
		}
	}

	result := &LoadResult{
		Projects:  projects,
		Requested: len(refs),
	}

	assembled, err := fetchAll(ctx, NewAssembler(src, opts.FetchTimeout), refs, opts.Workers, progressFn)
	if err != nil {
		return nil, err
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	agg := NewAggregator(opts.Location)
	for _, s := range assembled {
		if s == nil {
			result.Skipped++
			continue
		}
		if s.MessageCount == 0 {
			log.Debug("empty session", "project", s.ProjectID, "session", s.ID)
			continue
		}
		agg.Add(s)
		result.Sessions = append(result.Sessions, s)
	}
	result.Stats = agg.Result(now)

	log.Debug("load complete",
		"projects", len(projects),
		"sessions", len(result.Sessions),
		"skipped", result.Skipped)
	return result, nil
}

// fetchAll assembles every ref with numWorkers goroutines. The returned slice
// is index-aligned with refs; a nil entry is a skipped session.
func fetchAll(
	ctx context.Context,
	asm *Assembler,
	refs []sessionRef,
	numWorkers int,
	progressFn ProgressFunc,
) ([]*model.Session, error) {
	out := make([]*model.Session, len(refs))
	if len(refs) == 0 {
		return out, nil
	}

	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if numWorkers > len(refs) {
		numWorkers = len(refs)
	}

	work := make(chan int, len(refs))
	for i := range refs {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	var processed atomic.Int64

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				if ctx.Err() != nil {
					return
				}
				ref := refs[idx]
				if s, ok := asm.LoadSession(ctx, ref.projectID, ref.sessionID); ok {
					out[idx] = s
				}
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(refs))
				}
			}
		}()
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("loading sessions: %w", err)
	}
	return out, nil
}
