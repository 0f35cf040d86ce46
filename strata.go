package strata

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/strata/internal/platform"
	"github.com/aretw0/strata/pkg/adapters/fs"
	"github.com/aretw0/strata/pkg/core"
	"github.com/aretw0/strata/pkg/framework"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Result is a public alias for the outcome of an inference run.
type Result = core.Result

// Schema is a public alias for the inferred schema record.
type Schema = core.SchemaRecord

// Form is a public alias for the compiled form descriptor.
type Form = core.FormDescriptor

// Config is a public alias for the reference tables.
type Config = core.Config

// Detection is a public alias for a framework detection outcome.
type Detection = framework.Detection

// --- Configuration ---

// Option defines a functional option for configuring Strata.
type Option = platform.Option

// Front-matter parsers selectable with WithParser.
const (
	ParserLine = platform.ParserLine
	ParserYAML = platform.ParserYAML
)

// WithLogger sets the logger for the service and the adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithParser selects the built-in front-matter parser by name.
func WithParser(name string) Option {
	return platform.WithParser(name)
}

// WithFrontMatterParser injects a custom front-matter parser.
func WithFrontMatterParser(p core.FrontMatterParser) Option {
	return platform.WithFrontMatterParser(p)
}

// WithBodyAnalyzer injects a custom body analyzer.
func WithBodyAnalyzer(a core.BodyAnalyzer) Option {
	return platform.WithBodyAnalyzer(a)
}

// WithConfig overlays cfg on the default reference tables.
func WithConfig(cfg Config) Option {
	return platform.WithConfig(cfg)
}

// WithContentExtensions sets the extensions of the documents that are scanned.
func WithContentExtensions(exts ...string) Option {
	return platform.WithContentExtensions(exts...)
}

// WithExclude sets the patterns of the paths that are never walked.
func WithExclude(patterns ...string) Option {
	return platform.WithExclude(patterns...)
}

// WithDebounce sets how long Watch waits for events to settle.
func WithDebounce(d time.Duration) Option {
	return platform.WithDebounce(d)
}

// WithEventBuffer sets the capacity of the channel returned by Watch.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for errors raised while watching.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a new inference service.
func New(opts ...Option) (*core.Service, error) {
	return platform.New(opts...)
}

// OpenTree serves a directory as a document tree.
func OpenTree(dir string, opts ...Option) (*fs.Tree, error) {
	return platform.OpenTree(dir, opts...)
}

// LoadConfig reads reference-table overrides from a YAML file.
func LoadConfig(path string) (Config, error) {
	return platform.LoadConfig(path)
}

// FindConfig looks upwards from startDir for a strata config file.
func FindConfig(startDir string) (string, error) {
	return platform.FindConfig(startDir)
}

// --- Operations ---

// Infer scans the directory at dir, starting at the sub path when set.
func Infer(ctx context.Context, dir, sub string, opts ...Option) (*Result, error) {
	return platform.Infer(ctx, dir, sub, opts...)
}

// InferFixture scans a structure fixture file instead of a directory.
func InferFixture(ctx context.Context, file, sub string, opts ...Option) (*Result, error) {
	return platform.InferFixture(ctx, file, sub, opts...)
}

// Detect reports the static-site generator the directory at dir uses.
func Detect(ctx context.Context, dir string, opts ...Option) (Detection, error) {
	return platform.Detect(ctx, dir, opts...)
}

// DetectFixture runs framework detection over a structure fixture file.
func DetectFixture(ctx context.Context, file string, opts ...Option) (Detection, error) {
	return platform.DetectFixture(ctx, file, opts...)
}

// Watch re-infers the directory at dir on every content change.
func Watch(ctx context.Context, dir, sub string, opts ...Option) (<-chan core.RefreshEvent, error) {
	return platform.Watch(ctx, dir, sub, opts...)
}

// WriteSnapshot stores a result at filename, as YAML or JSON by extension.
func WriteSnapshot(filename string, res *Result) error {
	return fs.WriteSnapshot(filename, res)
}
