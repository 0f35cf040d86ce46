package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Service runs the inference pipeline: walk, parse, analyze, suggest, compile.
//
// Each call to Infer builds its own Accumulator, so a Service can be shared;
// a run itself is sequential and the record it produces is never touched by
// another run.
type Service struct {
	parser   FrontMatterParser
	analyzer BodyAnalyzer
	splitter Splitter
	config   Config
	logger   *slog.Logger

	mu    sync.RWMutex
	runs  int
	last  *Result
	state runState
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceConfig replaces the reference tables.
func WithServiceConfig(cfg Config) ServiceOption {
	return func(s *Service) { s.config = cfg }
}

// WithServiceLogger sets the logger. A nil logger keeps the service silent.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a new Service. The splitter separates the front-matter
// block from the body, the parser decodes the block and the analyzer derives
// the body fields.
func NewService(splitter Splitter, parser FrontMatterParser, analyzer BodyAnalyzer, opts ...ServiceOption) *Service {
	s := &Service{
		parser:   parser,
		analyzer: analyzer,
		splitter: splitter,
		config:   DefaultConfig(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the reference tables in use.
func (s *Service) Config() Config {
	return s.config.clone()
}

// Infer scans every content document under root and returns the schema and
// the form derived from it.
//
// Documents that fail to decode are skipped and listed in Result.Skipped.
// Only structural problems abort the run: a nil or mis-shaped node
// (ErrInvalidTree), a folder that cannot be listed, or ctx being cancelled
// between two documents.
func (s *Service) Infer(ctx context.Context, root Node) (*Result, error) {
	started := time.Now()
	res := &Result{RunID: uuid.NewString(), StartedAt: started}
	log := s.logger.With("run_id", res.RunID)

	acc := NewAccumulator()
	if err := s.walk(ctx, root, "", acc, res, log); err != nil {
		s.record(nil, err)
		return nil, err
	}

	res.Schema = acc.Finalize(s.config)
	res.Form = CompileForm(res.Schema, s.config)
	res.Duration = time.Since(started)

	log.Info("schema inferred",
		"scanned", res.Scanned,
		"fields", len(res.Schema.DetectedFields),
		"suggestions", len(res.Schema.Suggestions),
		"skipped", len(res.Skipped),
		"duration", res.Duration,
	)
	s.record(res, nil)
	return res, nil
}

// InferPath runs Infer on the node found at the slash-separated path below root.
func (s *Service) InferPath(ctx context.Context, root Node, p string) (*Result, error) {
	start, err := Lookup(ctx, root, p)
	if err != nil {
		return nil, err
	}
	return s.Infer(ctx, start)
}

// InferSource resolves the root of src and runs Infer on it.
func (s *Service) InferSource(ctx context.Context, src Source) (*Result, error) {
	root, err := src.Root(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve tree root: %w", err)
	}
	return s.Infer(ctx, root)
}

func (s *Service) walk(ctx context.Context, n Node, parent string, acc *Accumulator, res *Result, log *slog.Logger) error {
	if n == nil {
		return fmt.Errorf("%w: nil node under %q", ErrInvalidTree, parent)
	}
	p := n.Name()
	if parent != "" {
		p = path.Join(parent, n.Name())
	}

	switch n.Kind() {
	case KindFolder:
		folder, ok := n.(FolderNode)
		if !ok {
			return fmt.Errorf("%w: %s is marked as a folder but has no children", ErrInvalidTree, p)
		}
		children, err := folder.Children(ctx)
		if err != nil {
			return fmt.Errorf("list %s: %w", p, err)
		}
		for _, child := range children {
			if err := s.walk(ctx, child, p, acc, res, log); err != nil {
				return err
			}
		}
		return nil

	case KindFile:
		file, ok := n.(FileNode)
		if !ok {
			return fmt.Errorf("%w: %s is marked as a file but has no content", ErrInvalidTree, p)
		}
		if !s.config.IsContent(n.Name()) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		res.Scanned++
		if err := s.scanDocument(ctx, file, p, acc); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				return err
			}
			log.Warn("document skipped", "path", p, "error", err)
			res.Skipped = append(res.Skipped, DocumentError{Path: p, Err: err})
		}
		return nil
	}
	return fmt.Errorf("%w: %s has unknown kind %d", ErrInvalidTree, p, n.Kind())
}

// scanDocument decodes a single document fully before registering anything,
// so a failure leaves the record untouched.
func (s *Service) scanDocument(ctx context.Context, file FileNode, p string, acc *Accumulator) error {
	content, err := file.ReadContent(ctx)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	if !utf8.ValidString(content) {
		return fmt.Errorf("%w: content is not valid UTF-8", ErrParse)
	}

	var fm *FrontMatter
	body := content
	if block, rest, ok := s.splitter.Split(content); ok {
		fm, err = s.parser.Parse(block)
		if err != nil {
			return err
		}
		body = rest
	}

	acc.Document(fm, s.analyzer.Analyze(body))
	return nil
}

func (s *Service) record(res *Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs++
	if err != nil {
		s.state.LastError = err.Error()
		return
	}
	s.last = res
	s.state = runState{
		LastRunID:   res.RunID,
		Scanned:     res.Scanned,
		Detected:    len(res.Schema.DetectedFields),
		Suggestions: len(res.Schema.Suggestions),
		Skipped:     len(res.Skipped),
		LastRunAt:   res.StartedAt,
	}
}

// Last returns the result of the most recent successful run, if any.
func (s *Service) Last() (*Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.last != nil
}
