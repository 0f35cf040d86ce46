package core

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// NodeKind discriminates files from folders.
type NodeKind int

const (
	KindFile NodeKind = iota
	KindFolder
)

func (k NodeKind) String() string {
	if k == KindFolder {
		return "folder"
	}
	return "file"
}

// Node is an entry of a document tree.
type Node interface {
	Name() string
	Kind() NodeKind
}

// FileNode is a leaf that carries UTF-8 text.
type FileNode interface {
	Node
	ReadContent(ctx context.Context) (string, error)
}

// FolderNode holds an ordered list of children, each with a distinct name.
type FolderNode interface {
	Node
	Children(ctx context.Context) ([]Node, error)
}

type memFile struct {
	name    string
	content string
}

// NewFile returns an in-memory file node.
func NewFile(name, content string) FileNode {
	return &memFile{name: name, content: content}
}

func (f *memFile) Name() string   { return f.name }
func (f *memFile) Kind() NodeKind { return KindFile }

func (f *memFile) ReadContent(ctx context.Context) (string, error) {
	return f.content, nil
}

type memFolder struct {
	name     string
	children []Node
}

// NewFolder returns an in-memory folder node. Children keep the given order.
func NewFolder(name string, children ...Node) FolderNode {
	return &memFolder{name: name, children: children}
}

func (f *memFolder) Name() string   { return f.name }
func (f *memFolder) Kind() NodeKind { return KindFolder }

func (f *memFolder) Children(ctx context.Context) ([]Node, error) {
	out := make([]Node, len(f.children))
	copy(out, f.children)
	return out, nil
}

// Lookup descends from root following a slash-separated path and returns
// the node found there. An empty path or "/" returns root itself.
func Lookup(ctx context.Context, root Node, p string) (Node, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil root", ErrInvalidTree)
	}
	cleaned := path.Clean("/" + p)
	if cleaned == "/" {
		return root, nil
	}
	current := root
	for _, part := range strings.Split(cleaned[1:], "/") {
		folder, ok := current.(FolderNode)
		if !ok || current.Kind() != KindFolder {
			return nil, fmt.Errorf("%w: %s is not a folder", ErrInvalidTree, current.Name())
		}
		children, err := folder.Children(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", current.Name(), err)
		}
		var next Node
		for _, child := range children {
			if child != nil && child.Name() == part {
				next = child
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("path %q not found", p)
		}
		current = next
	}
	return current, nil
}
