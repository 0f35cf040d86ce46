package core

import (
	"time"

	"github.com/aretw0/introspection"
)

type runState struct {
	LastRunID   string
	Scanned     int
	Detected    int
	Suggestions int
	Skipped     int
	LastRunAt   time.Time
	LastError   string
}

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Runs           int        `json:"runs"`
	LastRunID      string     `json:"last_run_id,omitempty"`
	LastRunAt      *time.Time `json:"last_run_at,omitempty"`
	Scanned        int        `json:"scanned"`
	DetectedFields int        `json:"detected_fields"`
	Suggestions    int        `json:"suggestions"`
	Skipped        int        `json:"skipped"`
	LastError      string     `json:"last_error,omitempty"`
	ParserType     string     `json:"parser_type"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	parserType := "unknown"
	if s.parser != nil {
		parserType = "parser"
		if comp, ok := s.parser.(introspection.Component); ok {
			parserType = comp.ComponentType()
		}
	}

	st := ServiceState{
		Runs:           s.runs,
		LastRunID:      s.state.LastRunID,
		Scanned:        s.state.Scanned,
		DetectedFields: s.state.Detected,
		Suggestions:    s.state.Suggestions,
		Skipped:        s.state.Skipped,
		LastError:      s.state.LastError,
		ParserType:     parserType,
	}
	if !s.state.LastRunAt.IsZero() {
		at := s.state.LastRunAt
		st.LastRunAt = &at
	}
	return st
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
