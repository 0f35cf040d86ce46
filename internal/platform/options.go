package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/strata/pkg/core"
)

// Front-matter parsers selectable by name.
const (
	ParserLine = "line"
	ParserYAML = "yaml"
)

// options holds the internal configuration for the Strata service.
type options struct {
	logger      *slog.Logger
	parser      string
	frontMatter core.FrontMatterParser
	analyzer    core.BodyAnalyzer
	engine      *core.Config
	config      map[string]interface{}
}

// Option defines a functional option for configuring Strata.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		parser: ParserLine,
		config: make(map[string]interface{}),
	}
}

func apply(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger for the service and the adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithParser selects the built-in front-matter parser by name: "line"
// (the default, one key per line) or "yaml" (full YAML).
func WithParser(name string) Option {
	return func(o *options) {
		o.parser = name
	}
}

// WithFrontMatterParser injects a custom parser. It takes precedence over
// WithParser.
func WithFrontMatterParser(p core.FrontMatterParser) Option {
	return func(o *options) {
		o.frontMatter = p
	}
}

// WithBodyAnalyzer injects a custom body analyzer.
func WithBodyAnalyzer(a core.BodyAnalyzer) Option {
	return func(o *options) {
		o.analyzer = a
	}
}

// WithConfig overlays cfg on the default reference tables. Empty lists in
// cfg keep the defaults.
func WithConfig(cfg core.Config) Option {
	return func(o *options) {
		merged := core.DefaultConfig()
		if o.engine != nil {
			merged = *o.engine
		}
		merged = merged.Merge(cfg)
		o.engine = &merged
	}
}

// WithContentExtensions sets the extensions of the documents that are scanned.
func WithContentExtensions(exts ...string) Option {
	return WithConfig(core.Config{ContentExtensions: exts})
}

// WithExclude sets the doublestar patterns the filesystem tree skips.
// Passing no pattern disables exclusion entirely.
func WithExclude(patterns ...string) Option {
	return func(o *options) {
		o.config["exclude"] = append([]string{}, patterns...)
	}
}

// WithDebounce sets how long the watcher waits for events to settle.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.config["debounce"] = d
	}
}

// WithEventBuffer sets the capacity of the refresh channel returned by Watch.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithWatcherErrorHandler registers a callback for errors raised inside the
// watch loop, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
