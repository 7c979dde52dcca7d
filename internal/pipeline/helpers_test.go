package pipeline

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeSession creates <root>/projects/<project>/<session>.jsonl.
func writeSession(t *testing.T, root, project, session string, lines ...string) {
	t.Helper()
	dir := filepath.Join(root, "projects", project)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	body := strings.Join(lines, "\n")
	if len(lines) > 0 {
		body += "\n"
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, session+".jsonl"), []byte(body), 0o600))
}

func userLine(ts, text string) string {
	return `{"type":"user","timestamp":"` + ts + `","message":{"role":"user","content":"` + text + `"}}`
}

func assistantLine(ts, text, model string) string {
	return `{"type":"assistant","timestamp":"` + ts + `","message":{"role":"assistant","model":"` + model +
		`","content":[{"type":"text","text":"` + text + `"}]}}`
}

func usageLine(ts, id, model string, in, out int) string {
	return `{"type":"assistant","timestamp":"` + ts + `","message":{"id":"` + id + `","model":"` + model +
		`","content":[{"type":"text","text":"x"}],"usage":{"input_tokens":` + strconv.Itoa(in) +
		`,"output_tokens":` + strconv.Itoa(out) + `,"cache_read_input_tokens":0,"cache_creation_input_tokens":0}}}`
}

func toolLine(ts, model, tool string) string {
	return `{"type":"assistant","timestamp":"` + ts + `","message":{"model":"` + model +
		`","content":[{"type":"tool_use","id":"t1","name":"` + tool + `","input":{}}]}}`
}
