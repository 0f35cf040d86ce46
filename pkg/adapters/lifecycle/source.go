// Package lifecycle exposes schema refreshes as a lifecycle event source.
package lifecycle

import (
	"context"
	"maps"
	"slices"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/strata/pkg/core"
)

// Option configures a Source.
type Option func(*refreshSource)

// OnlyChanges drops refreshes whose schema matches the last one emitted:
// same detected fields in the same order, same types, same suggestions.
// Failed refreshes are always emitted.
func OnlyChanges() Option {
	return func(s *refreshSource) { s.onlyChanges = true }
}

type refreshSource struct {
	events      <-chan core.RefreshEvent
	out         chan lifecycle.Event
	onlyChanges bool
	last        *core.SchemaRecord
}

// NewSource returns a lifecycle.Source fed by a watch refresh channel. Its
// event channel is closed once events is closed or the context passed to
// Start is done.
func NewSource(events <-chan core.RefreshEvent, opts ...Option) lifecycle.Source {
	s := &refreshSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *refreshSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *refreshSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if !s.keep(e) {
					continue
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

func (s *refreshSource) keep(e core.RefreshEvent) bool {
	if !s.onlyChanges || e.Err != nil || e.Result == nil || e.Result.Schema == nil {
		return true
	}
	if s.last != nil && sameSchema(s.last, e.Result.Schema) {
		return false
	}
	s.last = e.Result.Schema
	return true
}

func sameSchema(a, b *core.SchemaRecord) bool {
	return slices.Equal(a.DetectedFields, b.DetectedFields) &&
		maps.Equal(a.FieldTypes, b.FieldTypes) &&
		slices.Equal(a.Suggestions, b.Suggestions)
}
