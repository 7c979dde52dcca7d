package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
)

// ClaudeSettings is the subset of ~/.claude/settings.json shown in the settings view.
type ClaudeSettings struct {
	AutoUpdatesChannel string            `json:"autoUpdatesChannel"`
	Env                map[string]string `json:"env"`
	Language           string            `json:"language"`
	MinimumVersion     string            `json:"minimumVersion"`
	Permissions        struct {
		DefaultMode string `json:"defaultMode"`
	} `json:"permissions"`
}

// LoadClaudeSettings reads <claudeDir>/settings.json.
// A missing file yields zero settings and no error.
func LoadClaudeSettings(claudeDir string) (ClaudeSettings, error) {
	var s ClaudeSettings

	path := filepath.Join(claudeDir, "settings.json")
	data, err := os.ReadFile(path) //nolint:gosec // path is constructed from known claudeDir
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading claude settings: %w", err)
	}

	if err := sonic.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing claude settings: %w", err)
	}
	return s, nil
}
