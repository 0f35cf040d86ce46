package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/strata/pkg/adapters/fs"
	"github.com/aretw0/strata/pkg/adapters/memory"
	"github.com/aretw0/strata/pkg/core"
	"github.com/aretw0/strata/pkg/framework"
)

// OpenTree serves the directory at dir as a document tree. The directory
// must exist.
func OpenTree(dir string, opts ...Option) (*fs.Tree, error) {
	return openTree(dir, apply(opts))
}

func openTree(dir string, o *options) (*fs.Tree, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", core.ErrInvalidTree, dir)
	}

	cfg := fs.Config{Path: dir, Logger: o.logger}
	if o.engine != nil {
		cfg.Extensions = o.engine.ContentExtensions
	}
	if exclude, ok := o.config["exclude"].([]string); ok {
		cfg.Exclude = exclude
	}
	if d, ok := o.config["debounce"].(time.Duration); ok {
		cfg.Debounce = d
	}
	if size, ok := o.config["event_buffer"].(int); ok {
		cfg.EventBuffer = size
	}
	if fn, ok := o.config["watcher_error_handler"].(func(error)); ok {
		cfg.ErrorHandler = fn
	}
	return fs.NewTree(cfg), nil
}

// Infer runs the pipeline over the directory at dir, starting at the
// slash-separated sub path when it is not empty.
func Infer(ctx context.Context, dir, sub string, opts ...Option) (*core.Result, error) {
	o := apply(opts)
	svc, err := newService(o)
	if err != nil {
		return nil, err
	}
	tree, err := openTree(dir, o)
	if err != nil {
		return nil, err
	}
	root, err := tree.Root(ctx)
	if err != nil {
		return nil, err
	}
	return scoped{svc: svc, sub: sub}.Infer(ctx, root)
}

// InferFixture runs the pipeline over a structure fixture file.
func InferFixture(ctx context.Context, file, sub string, opts ...Option) (*core.Result, error) {
	svc, err := New(opts...)
	if err != nil {
		return nil, err
	}
	root, err := memory.Source{Path: file}.Root(ctx)
	if err != nil {
		return nil, err
	}
	return scoped{svc: svc, sub: sub}.Infer(ctx, root)
}

// Detect reports the static-site generator the directory at dir is built with.
func Detect(ctx context.Context, dir string, opts ...Option) (framework.Detection, error) {
	o := apply(opts)
	tree, err := openTree(dir, o)
	if err != nil {
		return framework.Detection{}, err
	}
	root, err := tree.Root(ctx)
	if err != nil {
		return framework.Detection{}, err
	}
	return framework.Detect(ctx, root, o.logger)
}

// DetectFixture runs framework detection over a structure fixture file.
func DetectFixture(ctx context.Context, file string, opts ...Option) (framework.Detection, error) {
	o := apply(opts)
	root, err := memory.Source{Path: file}.Root(ctx)
	if err != nil {
		return framework.Detection{}, err
	}
	return framework.Detect(ctx, root, o.logger)
}

// Watch re-infers the directory at dir whenever its content changes. The
// channel yields one event per run and is closed when ctx is done.
func Watch(ctx context.Context, dir, sub string, opts ...Option) (<-chan core.RefreshEvent, error) {
	o := apply(opts)
	svc, err := newService(o)
	if err != nil {
		return nil, err
	}
	tree, err := openTree(dir, o)
	if err != nil {
		return nil, err
	}
	return tree.Watch(ctx, scoped{svc: svc, sub: sub})
}

// LoadConfig reads reference-table overrides from a YAML file. Unknown keys
// are rejected; an empty file overrides nothing.
func LoadConfig(path string) (core.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	var cfg core.Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return core.Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// scoped starts every run at a fixed sub path of the root it is given.
type scoped struct {
	svc *core.Service
	sub string
}

func (s scoped) Infer(ctx context.Context, root core.Node) (*core.Result, error) {
	if s.sub == "" {
		return s.svc.Infer(ctx, root)
	}
	return s.svc.InferPath(ctx, root, s.sub)
}

var _ fs.Inferer = scoped{}
