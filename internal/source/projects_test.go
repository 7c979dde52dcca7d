package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/claudash/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestDiscoverProjects(t *testing.T) {
	root := t.TempDir()
	projects := filepath.Join(root, "projects")
	writeFile(t, filepath.Join(projects, "-Users-me-workspace-beta", "s2.jsonl"), "")
	writeFile(t, filepath.Join(projects, "-Users-me-workspace-beta", "s1.jsonl"), "")
	writeFile(t, filepath.Join(projects, "-Users-me-workspace-beta", "notes.txt"), "")
	writeFile(t, filepath.Join(projects, "-Users-me-workspace-alpha", "a.jsonl"), "")
	writeFile(t, filepath.Join(projects, "stray.jsonl"), "")
	require.NoError(t, os.MkdirAll(filepath.Join(projects, "-Users-me-workspace-beta", "s1", "subagents"), 0o750))

	got := DiscoverProjects(context.Background(), NewDirSource(root), "/Users/me/workspace")

	require.Len(t, got, 2)
	assert.Equal(t, "-Users-me-workspace-alpha", got[0].ID)
	assert.Equal(t, "alpha", got[0].DisplayName)
	assert.Equal(t, "/Users/me/workspace/alpha", got[0].Path)
	assert.Equal(t, []string{"a"}, got[0].Sessions)
	assert.Equal(t, []string{"s1", "s2"}, got[1].Sessions)
	assert.Equal(t, 3, CountSessions(got))
}

func TestDiscoverProjects_MissingRoot(t *testing.T) {
	got := DiscoverProjects(context.Background(), NewDirSource(filepath.Join(t.TempDir(), "nope")), "")
	assert.Empty(t, got)
}

func TestDirSource_OpenStaysUnderRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "projects", "p", "s.jsonl"), "x")

	src := NewDirSource(root)
	rc, err := src.Open(context.Background(), SessionLogPath("p", "s"))
	require.NoError(t, err)
	require.NoError(t, rc.Close())

	_, err = src.Open(context.Background(), "../../etc/passwd")
	assert.Error(t, err)
}

func TestDirSource_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDirSource(t.TempDir()).List(ctx, ProjectsDir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFindProject(t *testing.T) {
	projects := []model.Project{
		{ID: "-Users-me-workspace-alpha", DisplayName: "alpha", Path: "/Users/me/workspace/alpha"},
		{ID: "-Users-me-code-tool", DisplayName: "/Users/me/code/tool", Path: "/Users/me/code/tool"},
		{ID: "-Users-you-code-tool", DisplayName: "/Users/you/code/tool", Path: "/Users/you/code/tool"},
	}

	tests := []struct {
		ref    string
		wantID string
		wantOK bool
	}{
		{"-Users-me-workspace-alpha", "-Users-me-workspace-alpha", true},
		{"alpha", "-Users-me-workspace-alpha", true},
		{"/Users/you/code/tool", "-Users-you-code-tool", true},
		{"tool", "", false}, // ambiguous short name
		{"missing", "", false},
	}
	for _, tt := range tests {
		got, ok := FindProject(projects, tt.ref)
		assert.Equal(t, tt.wantOK, ok, tt.ref)
		assert.Equal(t, tt.wantID, got.ID, tt.ref)
	}
}
