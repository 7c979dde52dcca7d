package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/theirongolddev/claudash/internal/model"
	"github.com/theirongolddev/claudash/internal/source"
)

// Assembler turns session logs into Sessions.
type Assembler struct {
	src     source.Source
	timeout time.Duration
}

// NewAssembler returns an Assembler reading from src. A positive timeout
// bounds each session fetch; zero means no bound.
func NewAssembler(src source.Source, timeout time.Duration) *Assembler {
	return &Assembler{src: src, timeout: timeout}
}

type fetchResult struct {
	parsed source.ParseResult
	err    error
}

// LoadSession fetches and parses one session log. ok is false when the log
// is missing, unreadable, times out, or none of its lines decode. Failures
// are logged at debug level and never returned.
func (a *Assembler) LoadSession(ctx context.Context, projectID, sessionID string) (*model.Session, bool) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	done := make(chan fetchResult, 1)
	go func() {
		pr, err := a.fetch(ctx, source.SessionLogPath(projectID, sessionID))
		done <- fetchResult{parsed: pr, err: err}
	}()

	var res fetchResult
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
	}

	if res.err != nil {
		log.Debug("skip session", "project", projectID, "session", sessionID, "err", res.err)
		return nil, false
	}
	if res.parsed.Undecodable() {
		log.Debug("skip session", "project", projectID, "session", sessionID,
			"err", "no decodable lines", "lines", res.parsed.Lines)
		return nil, false
	}
	if res.parsed.Malformed > 0 {
		log.Debug("malformed lines", "session", sessionID, "count", res.parsed.Malformed)
	}

	s := BuildSession(projectID, sessionID, res.parsed.Messages)
	return &s, true
}

func (a *Assembler) fetch(ctx context.Context, name string) (source.ParseResult, error) {
	rc, err := a.src.Open(ctx, name)
	if err != nil {
		return source.ParseResult{}, fmt.Errorf("opening %s: %w", name, err)
	}
	defer func() { _ = rc.Close() }()

	pr, err := source.ParseMessages(ctxReader{ctx: ctx, r: rc})
	if err != nil {
		return pr, fmt.Errorf("reading %s: %w", name, err)
	}
	return pr, nil
}

// ctxReader stops a long parse once its context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// BuildSession derives the session-level fields from parsed messages.
// DurationMs is the last message's timestamp minus the first's, clamped at
// zero, and is nil unless both parse.
func BuildSession(projectID, sessionID string, msgs []model.Message) model.Session {
	s := model.Session{
		ID:           sessionID,
		ProjectID:    projectID,
		Messages:     msgs,
		MessageCount: len(msgs),
	}
	if len(msgs) == 0 {
		return s
	}
	s.StartTimestamp = msgs[0].Timestamp

	first, okFirst := msgs[0].Time()
	last, okLast := msgs[len(msgs)-1].Time()
	if okFirst && okLast {
		d := last.Sub(first).Milliseconds()
		if d < 0 {
			d = 0
		}
		s.DurationMs = &d
	}
	return s
}
