package chromem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// dimensionsFile lives in the database directory next to chromem's
// collection directories. chromem only loads directories, so the file does
// not disturb it.
const dimensionsFile = "bevec_dimensions.yaml"

func dimensionsPath(dir string) string {
	return filepath.Join(dir, dimensionsFile)
}

// loadDimensions reads the collection dimensions stored at path. A missing
// file is an empty set.
func loadDimensions(path string) (map[string]int, error) {
	dims := make(map[string]int)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return dims, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &dims); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return dims, nil
}

// saveDimensions replaces the file at path through a rename so a crash
// never leaves it half written.
func saveDimensions(path string, dims map[string]int) error {
	data, err := yaml.Marshal(dims)
	if err != nil {
		return fmt.Errorf("failed to encode dimensions: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// persistDimensionsLocked writes a.dims to disk for persistent databases.
// The caller holds a.mu. A failed write only costs the dimension check after
// the next reopen, so it is logged and not returned.
func (a *Adapter) persistDimensionsLocked() {
	if a.dimsPath == "" {
		return
	}
	if err := saveDimensions(a.dimsPath, a.dims); err != nil {
		a.log.Warn("failed to persist collection dimensions", err, map[string]interface{}{
			"path": a.dimsPath,
		})
	}
}
