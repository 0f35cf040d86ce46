package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFiles are the file names FindConfig looks for, in order.
var ConfigFiles = []string{"strata.yaml", "strata.yml", ".strata.yaml"}

// FindConfig looks for a config file in startDir and then in each parent
// directory, returning the absolute path of the first one found.
func FindConfig(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, name := range ConfigFiles {
			if hasFile(dir, name) {
				return filepath.Join(dir, name), nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("config not found")
}

func hasFile(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}
