// Package asset resolves the opaque asset identifiers elements reference.
// The engine itself never loads bytes — resolution to actual content is the
// job of an external collaborator — but a production can be checked for
// dangling references here before any frame is rendered.
package asset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Catalog maps opaque asset IDs to file paths.
type Catalog struct {
	paths map[string]string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{paths: make(map[string]string)}
}

// Register binds an ID to a path. Duplicate IDs are a configuration error.
func (c *Catalog) Register(id, path string) error {
	if id == "" {
		return fmt.Errorf("asset: empty asset id")
	}
	if prev, ok := c.paths[id]; ok {
		return fmt.Errorf("asset: id %q already registered to %s", id, prev)
	}
	c.paths[id] = path
	return nil
}

// Resolve returns the path bound to an ID.
func (c *Catalog) Resolve(id string) (string, bool) {
	path, ok := c.paths[id]
	return path, ok
}

// Len returns the number of registered assets.
func (c *Catalog) Len() int { return len(c.paths) }

// Verify checks that every referenced ID resolves, reporting all missing
// IDs at once.
func (c *Catalog) Verify(ids []string) error {
	var missing []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := c.paths[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("asset: unresolved asset ids: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ScanDir registers every regular file in dir, keyed by base name without
// extension. Subdirectories are not descended.
func (c *Catalog) ScanDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("asset: reading %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		id := strings.TrimSuffix(name, filepath.Ext(name))
		if id == "" {
			continue
		}
		if err := c.Register(id, filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// FindLatest returns the registered path with the most recent modification
// time, mirroring the pick-the-freshest-input convention of the CLI.
func (c *Catalog) FindLatest() (string, error) {
	var latest string
	var found bool
	var latestMod int64
	for _, path := range c.paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); !found || mod > latestMod {
			latest, latestMod, found = path, mod, true
		}
	}
	if !found {
		return "", fmt.Errorf("asset: catalog has no statable assets")
	}
	return latest, nil
}
