package source

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/theirongolddev/claudash/internal/model"
)

const (
	// ProjectsDir is the directory under the Claude data dir holding project logs.
	ProjectsDir = "projects"
	// LogExt is the extension of session log files.
	LogExt = ".jsonl"
)

// SessionLogPath returns the source-relative path of a session log.
func SessionLogPath(projectID, sessionID string) string {
	return path.Join(ProjectsDir, projectID, sessionID+LogExt)
}

// DiscoverProjects lists every project under projects/ along with its session ids.
// A failing root listing yields no projects; a failing project listing drops
// only that project.
func DiscoverProjects(ctx context.Context, src Source, workspacePrefix string) []model.Project {
	entries, err := src.List(ctx, ProjectsDir)
	if err != nil {
		log.Debug("listing projects", "dir", ProjectsDir, "err", err)
		return nil
	}

	var projects []model.Project
	for _, e := range entries {
		if !e.IsDir || strings.HasPrefix(e.Name, ".") {
			continue
		}
		sessions, err := ListSessions(ctx, src, e.Name)
		if err != nil {
			log.Debug("listing project sessions", "project", e.Name, "err", err)
			continue
		}
		full := DecodeProjectPath(e.Name)
		projects = append(projects, model.Project{
			ID:          e.Name,
			DisplayName: DisplayName(full, workspacePrefix),
			Path:        full,
			Sessions:    sessions,
		})
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].ID < projects[j].ID
	})
	return projects
}

// ListSessions returns the sorted session ids of a project: the names of its
// *.jsonl files with the extension removed.
func ListSessions(ctx context.Context, src Source, projectID string) ([]string, error) {
	entries, err := src.List(ctx, path.Join(ProjectsDir, projectID))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir || !strings.HasSuffix(e.Name, LogExt) {
			continue
		}
		id := strings.TrimSuffix(e.Name, LogExt)
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// CountSessions returns the number of session ids across projects.
func CountSessions(projects []model.Project) int {
	n := 0
	for _, p := range projects {
		n += len(p.Sessions)
	}
	return n
}

// FindProject resolves a user-supplied project reference. It matches, in
// order: the encoded id, the display name, the decoded path and finally the
// short name. ok is false when nothing matches or a short name is ambiguous.
func FindProject(projects []model.Project, ref string) (model.Project, bool) {
	for _, p := range projects {
		if p.ID == ref || p.DisplayName == ref || p.Path == ref {
			return p, true
		}
	}
	var found []model.Project
	for _, p := range projects {
		if ShortProjectName(p.ID) == ref {
			found = append(found, p)
		}
	}
	if len(found) != 1 {
		return model.Project{}, false
	}
	return found[0], true
}
