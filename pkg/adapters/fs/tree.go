// Package fs serves a directory on disk as a core document tree, writes
// inference snapshots and re-runs inference when the directory changes.
package fs

import (
	"context"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/strata/pkg/core"
)

// DefaultExclude lists the paths that are never walked.
var DefaultExclude = []string{
	"**/.git",
	"**/node_modules",
	"**/.strata",
}

// Config holds the configuration for the filesystem tree.
type Config struct {
	Path string
	// Exclude holds doublestar patterns matched against slash-separated
	// paths relative to Path. Matching folders are not descended into.
	Exclude []string
	// Extensions selects the files the watcher reacts to.
	Extensions []string
	// Debounce groups bursts of filesystem events into one refresh.
	Debounce time.Duration
	// EventBuffer is the capacity of the refresh channel.
	EventBuffer  int
	Logger       *slog.Logger
	ErrorHandler func(error)
}

// Tree is a document tree rooted at a directory.
type Tree struct {
	Path   string
	fsys   iofs.FS
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastRefresh   *time.Time
	refreshes     int
}

// NewTree creates a tree over the directory at config.Path.
func NewTree(config Config) *Tree {
	return NewTreeFS(os.DirFS(config.Path), config)
}

// NewTreeFS creates a tree over an arbitrary file system. config.Path is
// only used for naming and watching.
func NewTreeFS(fsys iofs.FS, config Config) *Tree {
	if config.Exclude == nil {
		config.Exclude = DefaultExclude
	}
	if config.Extensions == nil {
		config.Extensions = core.DefaultConfig().ContentExtensions
	}
	if config.Debounce <= 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = 16
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	for _, pattern := range config.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			config.Logger.Warn("invalid exclude pattern ignored", "pattern", pattern)
		}
	}
	return &Tree{Path: config.Path, fsys: fsys, config: config}
}

// Root implements core.Source.
func (t *Tree) Root(ctx context.Context) (core.Node, error) {
	info, err := iofs.Stat(t.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("open tree root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", core.ErrInvalidTree, t.Path)
	}
	return &dirNode{tree: t, rel: "."}, nil
}

// Excluded reports whether the slash-separated relative path is excluded.
func (t *Tree) Excluded(rel string) bool {
	rel = path.Clean(filepath.ToSlash(rel))
	if rel == "." {
		return false
	}
	for _, pattern := range t.config.Exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

type dirNode struct {
	tree *Tree
	rel  string
}

func (d *dirNode) Name() string {
	if d.rel == "." {
		return ""
	}
	return path.Base(d.rel)
}

func (d *dirNode) Kind() core.NodeKind { return core.KindFolder }

// Children lists the directory in lexical order, leaving out excluded entries.
func (d *dirNode) Children(ctx context.Context) ([]core.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := iofs.ReadDir(d.tree.fsys, d.rel)
	if err != nil {
		return nil, err
	}
	nodes := make([]core.Node, 0, len(entries))
	for _, e := range entries {
		rel := path.Join(d.rel, e.Name())
		if d.tree.Excluded(rel) {
			continue
		}
		switch {
		case e.IsDir():
			nodes = append(nodes, &dirNode{tree: d.tree, rel: rel})
		case e.Type().IsRegular():
			nodes = append(nodes, &fileNode{tree: d.tree, rel: rel})
		}
	}
	return nodes, nil
}

type fileNode struct {
	tree *Tree
	rel  string
}

func (f *fileNode) Name() string        { return path.Base(f.rel) }
func (f *fileNode) Kind() core.NodeKind { return core.KindFile }

// ReadContent reads the file on demand, so files that are never scanned
// are never opened.
func (f *fileNode) ReadContent(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := iofs.ReadFile(f.tree.fsys, f.rel)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var _ core.Source = (*Tree)(nil)
