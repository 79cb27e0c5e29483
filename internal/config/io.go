package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Write marshals a storyboard to a YAML file.
func Write(sb *Storyboard, path string) error {
	data, err := yaml.Marshal(sb)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Read loads and validates a storyboard from a YAML file. An invalid
// storyboard is rejected here, before any frame is computed.
func Read(path string) (*Storyboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sb Storyboard
	if err := yaml.Unmarshal(data, &sb); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := sb.Validate(); err != nil {
		return nil, err
	}
	return &sb, nil
}

// GeneratePath creates a timestamped storyboard filename inside dir.
func GeneratePath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("storyboard_%s.yaml", timestamp))
}

// FindLatest returns the most recently modified storyboard file in dir.
func FindLatest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("config: reading storyboard directory: %w", err)
	}

	var latest string
	var latestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// File vanished between ReadDir and here.
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latest = filepath.Join(dir, entry.Name())
			latestTime = info.ModTime()
		}
	}
	if latest == "" {
		return "", fmt.Errorf("config: no storyboard files found in %s", dir)
	}
	return latest, nil
}
