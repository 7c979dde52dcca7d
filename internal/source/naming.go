package source

import (
	"net/url"
	"strings"
)

// Project directory names flatten an absolute path into one token by writing
// each "/" as "-". To keep the mapping invertible, a literal "%" or "-" inside
// a path segment is percent-escaped ("%25", "%2D") before joining. Names written
// by Claude Code never contain escapes, so they decode to the plain "-" → "/"
// reading; a real directory named "my-app" is then indistinguishable from
// "my/app".

const projectSep = "-"

var segmentEscaper = strings.NewReplacer("%", "%25", "-", "%2D")

// EncodeProjectPath flattens an absolute path into a project identifier.
func EncodeProjectPath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = segmentEscaper.Replace(s)
	}
	return strings.Join(segs, projectSep)
}

// DecodeProjectPath reverses EncodeProjectPath.
func DecodeProjectPath(id string) string {
	segs := strings.Split(id, projectSep)
	for i, s := range segs {
		if !strings.Contains(s, "%") {
			continue
		}
		if u, err := url.PathUnescape(s); err == nil {
			segs[i] = u
		}
	}
	return strings.Join(segs, "/")
}

// DisplayName strips workspacePrefix from a decoded project path.
// The full path is returned when it is not under the prefix.
func DisplayName(fullPath, workspacePrefix string) string {
	prefix := strings.TrimSuffix(workspacePrefix, "/")
	if prefix == "" {
		return fullPath
	}
	if rest, ok := strings.CutPrefix(fullPath, prefix+"/"); ok && rest != "" {
		return rest
	}
	return fullPath
}

// ShortProjectName extracts a compact label from a project identifier.
// Claude Code encodes absolute paths by replacing "/" with "-", so:
//
//	"-Users-tayloreernisse-projects-gitlore" -> "gitlore"
//	"-Users-tayloreernisse-projects-my-cool-project" -> "my-cool-project"
//
// We find the last known path component ("projects", "repos", "src", "code", ...)
// and take everything after it. Falls back to the last path segment.
func ShortProjectName(id string) string {
	parts := strings.Split(id, projectSep)

	knownParents := map[string]bool{
		"projects": true, "repos": true, "src": true,
		"code": true, "workspace": true, "dev": true,
	}

	for i := len(parts) - 2; i >= 0; i-- {
		if knownParents[strings.ToLower(parts[i])] {
			name := strings.Join(parts[i+1:], projectSep)
			if name != "" {
				return name
			}
		}
	}

	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return id
}
