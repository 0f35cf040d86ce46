// Package memory builds document trees from repository-structure fixtures:
// a mapping of entry names to {type: file, content} or
// {type: folder, children} objects, in YAML or JSON.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/strata/pkg/core"
)

// Entry types accepted in a fixture.
const (
	TypeFile   = "file"
	TypeFolder = "folder"
)

// Load decodes a fixture and returns it as a folder named rootName.
// The order of the entries in the fixture is the traversal order.
func Load(r io.Reader, rootName string) (core.FolderNode, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		if err == io.EOF {
			return core.NewFolder(rootName), nil
		}
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidTree, err)
	}
	if len(doc.Content) == 0 {
		return core.NewFolder(rootName), nil
	}

	children, err := entries(doc.Content[0], rootName)
	if err != nil {
		return nil, err
	}
	return core.NewFolder(rootName, children...), nil
}

// LoadFile reads a fixture from disk.
func LoadFile(path string) (core.FolderNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, "")
}

// Source serves a fixture file as a core.Source.
type Source struct {
	Path string
}

// Root implements core.Source.
func (s Source) Root(ctx context.Context) (core.Node, error) {
	return LoadFile(s.Path)
}

func entries(n *yaml.Node, where string) ([]core.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s: expected a mapping of entries (line %d)", core.ErrInvalidTree, display(where), n.Line)
	}
	nodes := make([]core.Node, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		node, err := entry(name, n.Content[i+1])
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

type rawEntry struct {
	Type     string    `yaml:"type"`
	Content  string    `yaml:"content"`
	Children yaml.Node `yaml:"children"`
}

func entry(name string, n *yaml.Node) (core.Node, error) {
	var raw rawEntry
	if err := n.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrInvalidTree, name, err)
	}
	switch raw.Type {
	case TypeFile:
		return core.NewFile(name, raw.Content), nil
	case TypeFolder:
		if raw.Children.Kind == 0 {
			return core.NewFolder(name), nil
		}
		children, err := entries(&raw.Children, name)
		if err != nil {
			return nil, err
		}
		return core.NewFolder(name, children...), nil
	}
	return nil, fmt.Errorf("%w: %s: unknown entry type %q (line %d)", core.ErrInvalidTree, name, raw.Type, n.Line)
}

func display(name string) string {
	if name == "" {
		return "root"
	}
	return name
}
