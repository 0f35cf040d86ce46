package fs

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/strata/pkg/core"
)

// Output formats understood by Encode and WriteSnapshot.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// TempFilePrefix names the scratch files created while a snapshot is written.
const TempFilePrefix = "strata-tmp-"

// FormatFor picks the output format from a file extension, JSON by default.
func FormatFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Encode writes v to w in the given format.
func Encode(w io.Writer, v any, format string) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// WriteSnapshot stores an inference result at filename. The format follows
// the file extension and parent directories are created. Readers see either
// the previous snapshot or the new one, never a partial file.
func WriteSnapshot(filename string, res *core.Result) error {
	if res == nil {
		return fmt.Errorf("no result to write")
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}
	format := FormatFor(filename)
	err := replaceFile(filename, 0644, func(w io.Writer) error {
		return Encode(w, res, format)
	})
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// replaceFile streams write into a scratch file next to filename and renames
// it into place once it is synced. The scratch file is removed on failure.
func replaceFile(filename string, perm os.FileMode, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	name := tmp.Name()
	defer os.Remove(name)

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Chmod(name, perm); err != nil {
		return err
	}
	return os.Rename(name, filename)
}
