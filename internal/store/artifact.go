// Package store persists the computed StatsCache as a single JSON artifact.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"github.com/theirongolddev/claudash/internal/model"
)

// ErrNoData is returned when no StatsCache artifact has been written yet.
var ErrNoData = errors.New("no stats cache")

// codec sorts map keys so identical statistics encode to identical bytes.
var codec = sonic.ConfigStd

// Encode renders a StatsCache as indented JSON with sorted keys.
func Encode(c *model.StatsCache) ([]byte, error) {
	data, err := codec.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding stats cache: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteStatsCache replaces the artifact at path. The file is written to a
// temporary sibling and renamed, so readers never observe a partial write.
func WriteStatsCache(path string, c *model.StatsCache) error {
	data, err := Encode(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".stats-cache-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing stats cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing stats cache: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { //nolint:gosec // the artifact is read by other tools
		return fmt.Errorf("setting stats cache mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing stats cache: %w", err)
	}
	return nil
}

// ReadStatsCache loads the artifact at path. A missing file yields ErrNoData.
func ReadStatsCache(path string) (*model.StatsCache, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from config
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("reading stats cache: %w", err)
	}

	var c model.StatsCache
	if err := codec.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing stats cache %s: %w", path, err)
	}
	if c.DailyActivity == nil {
		c.DailyActivity = []model.DailyActivity{}
	}
	return &c, nil
}
