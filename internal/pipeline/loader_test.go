package pipeline

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/claudash/internal/source"
	"github.com/theirongolddev/claudash/internal/store"
)

// blockingSource lists one project with one session whose Open never returns
// until the context is done.
type blockingSource struct{}

func (blockingSource) List(_ context.Context, dir string) ([]source.Entry, error) {
	if dir == source.ProjectsDir {
		return []source.Entry{{Name: "p", IsDir: true}}, nil
	}
	return []source.Entry{{Name: "s.jsonl"}}, nil
}

func (blockingSource) Open(ctx context.Context, _ string) (io.ReadCloser, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func buildCorpus(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeSession(t, root, "-home-dev-alpha", "a1",
		userLine("2025-01-01T09:00:00Z", "hi"),
		usageLine("2025-01-01T09:00:30Z", "msg_a", "claude-sonnet-4-5", 100, 20),
		toolLine("2025-01-01T09:01:00Z", "claude-sonnet-4-5", "Bash"),
	)
	writeSession(t, root, "-home-dev-alpha", "a2",
		userLine("2025-01-02T14:00:00Z", "again"),
		assistantLine("2025-01-02T14:10:00Z", "ok", "claude-opus-4-5"),
	)
	writeSession(t, root, "-home-dev-alpha", "a3-garbage", "nope", "{nope")
	writeSession(t, root, "-home-dev-alpha", "a4-empty", `{"type":"system","content":"x"}`)
	writeSession(t, root, "-home-dev-beta", "b1",
		userLine("2025-01-02T20:00:00Z", "beta"),
		assistantLine("2025-01-02T20:10:00Z", "ok", "claude-opus-4-5"),
	)
	return root
}

func TestLoad_FullCorpus(t *testing.T) {
	root := buildCorpus(t)

	var calls atomic.Int64
	res, err := Load(context.Background(), source.NewDirSource(root), Options{
		WorkspacePrefix: "/home/dev/",
		Workers:         3,
		FetchTimeout:    time.Second,
		Location:        time.UTC,
		Now:             fixedNow,
	}, func(current, total int) {
		calls.Add(1)
		assert.Equal(t, 5, total)
	})
	require.NoError(t, err)

	require.Len(t, res.Projects, 2)
	assert.Equal(t, "alpha", res.Projects[0].DisplayName)
	assert.Equal(t, "/home/dev/alpha", res.Projects[0].Path)
	assert.Equal(t, []string{"a1", "a2", "a3-garbage", "a4-empty"}, res.Projects[0].Sessions)

	assert.Equal(t, 5, res.Requested)
	assert.Equal(t, 1, res.Skipped, "undecodable log")
	require.Len(t, res.Sessions, 3, "empty session dropped")
	assert.Equal(t, []string{"a1", "a2", "b1"},
		[]string{res.Sessions[0].ID, res.Sessions[1].ID, res.Sessions[2].ID})
	assert.Equal(t, int64(5), calls.Load())

	st := res.Stats
	assert.Equal(t, 3, st.TotalSessions)
	assert.Equal(t, 7, st.TotalMessages)
	assert.Equal(t, "2025-01-01T09:00:00Z", st.FirstSessionDate)
	require.Len(t, st.DailyActivity, 2)
	assert.Equal(t, 1, st.DailyActivity[0].ToolCallCount)
	assert.Equal(t, 2, st.DailyActivity[1].SessionCount)
	require.NotNil(t, st.LongestSession)
	assert.Equal(t, "a2", st.LongestSession.SessionID, "a2 and b1 tie at 10 minutes; discovery order wins")
	assert.Equal(t, int64(100), st.ModelUsage["claude-sonnet-4-5"].InputTokens)
	assert.Contains(t, st.ModelUsage, "claude-opus-4-5")
}

func TestLoad_ZeroMessageSessionNotCounted(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "p", "only-system", `{"type":"system","content":"compacted"}`)
	writeSession(t, root, "p", "chat", userLine("2025-01-01T09:00:00Z", "hi"))

	res, err := Load(context.Background(), source.NewDirSource(root), Options{Location: time.UTC, Now: fixedNow}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Requested)
	assert.Zero(t, res.Skipped, "an empty log is not a skip")
	require.Len(t, res.Sessions, 1)
	assert.Equal(t, "chat", res.Sessions[0].ID)
	assert.Equal(t, 1, res.Stats.TotalSessions)

	sum := 0
	for _, d := range res.Stats.DailyActivity {
		sum += d.SessionCount
	}
	assert.Equal(t, res.Stats.TotalSessions, sum)
}

func TestLoad_IdempotentBytes(t *testing.T) {
	root := buildCorpus(t)
	opts := Options{Workers: 4, Location: time.UTC, Now: fixedNow}

	first, err := Load(context.Background(), source.NewDirSource(root), opts, nil)
	require.NoError(t, err)
	a, err := store.Encode(first.Stats)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := Load(context.Background(), source.NewDirSource(root), opts, nil)
		require.NoError(t, err)
		b, err := store.Encode(again.Stats)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b))
	}
}

func TestLoad_SessionsPerProject(t *testing.T) {
	root := buildCorpus(t)
	res, err := Load(context.Background(), source.NewDirSource(root), Options{
		SessionsPerProject: 1,
		Location:           time.UTC,
		Now:                fixedNow,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Requested)
	assert.Equal(t, 2, res.Stats.TotalSessions)
	assert.Len(t, res.Projects[0].Sessions, 4, "projects keep their full listing")
}

func TestLoad_EmptyAndMissingRoot(t *testing.T) {
	res, err := Load(context.Background(), source.NewDirSource(t.TempDir()+"/absent"), Options{Now: fixedNow}, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Projects)
	assert.Zero(t, res.Stats.TotalSessions)
	assert.NotNil(t, res.Stats.DailyActivity)
	assert.Len(t, res.Stats.HourCounts, 24)
	assert.Nil(t, res.Stats.LongestSession)
}

func TestLoad_TimeoutSkipsSession(t *testing.T) {
	res, err := Load(context.Background(), blockingSource{}, Options{
		FetchTimeout: 10 * time.Millisecond,
		Now:          fixedNow,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
	assert.Zero(t, res.Stats.TotalSessions)
}

func TestLoad_CanceledContext(t *testing.T) {
	root := buildCorpus(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, source.NewDirSource(root), Options{}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
