// Package core holds the schema inference domain: values, document trees,
// schema records and form descriptors, plus the Service that runs the
// inference pipeline over a tree.
package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// FieldType is the editing widget kind inferred for a field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldURL      FieldType = "url"
	FieldEmail    FieldType = "email"
	FieldDate     FieldType = "date"
	FieldNumber   FieldType = "number"
	FieldBoolean  FieldType = "boolean"
	FieldArray    FieldType = "array"
	FieldSelect   FieldType = "select"
)

// FieldTypes lists every FieldType in declaration order.
var FieldTypes = []FieldType{
	FieldText, FieldTextarea, FieldURL, FieldEmail, FieldDate,
	FieldNumber, FieldBoolean, FieldArray, FieldSelect,
}

// Valid reports whether t is one of the enumerated field types.
func (t FieldType) Valid() bool {
	for _, known := range FieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// UnmarshalText rejects unknown field types so configuration typos surface early.
func (t *FieldType) UnmarshalText(b []byte) error {
	ft := FieldType(b)
	if !ft.Valid() {
		return fmt.Errorf("unknown field type %q", string(b))
	}
	*t = ft
	return nil
}

// Document is a single text document read from a tree.
type Document struct {
	Path    string
	Content string
}

// Entry is a single key/value pair of a FrontMatter block.
type Entry struct {
	Key   string
	Value Value
}

// FrontMatter is an ordered mapping of keys to values.
type FrontMatter struct {
	entries []Entry
	index   map[string]int
}

// Set stores value under key. A key that is already present keeps its
// original position and takes the new value.
func (fm *FrontMatter) Set(key string, value Value) {
	if fm.index == nil {
		fm.index = make(map[string]int)
	}
	if i, ok := fm.index[key]; ok {
		fm.entries[i].Value = value
		return
	}
	fm.index[key] = len(fm.entries)
	fm.entries = append(fm.entries, Entry{Key: key, Value: value})
}

// Get returns the value stored under key.
func (fm *FrontMatter) Get(key string) (Value, bool) {
	if fm == nil || fm.index == nil {
		return Value{}, false
	}
	i, ok := fm.index[key]
	if !ok {
		return Value{}, false
	}
	return fm.entries[i].Value, true
}

// Len returns the number of keys.
func (fm *FrontMatter) Len() int {
	if fm == nil {
		return 0
	}
	return len(fm.entries)
}

// Entries returns the pairs in insertion order.
func (fm *FrontMatter) Entries() []Entry {
	if fm == nil {
		return nil
	}
	out := make([]Entry, len(fm.entries))
	copy(out, fm.entries)
	return out
}

// Keys returns the keys in insertion order.
func (fm *FrontMatter) Keys() []string {
	if fm == nil {
		return nil
	}
	keys := make([]string, len(fm.entries))
	for i, e := range fm.entries {
		keys[i] = e.Key
	}
	return keys
}

// DerivedField is a synthetic field computed from a document body.
type DerivedField struct {
	Name   string
	Type   FieldType
	Sample Value
}

// Suggestion recommends a commonly expected field that no document carries.
type Suggestion struct {
	Field  string    `json:"field" yaml:"field"`
	Type   FieldType `json:"type" yaml:"type"`
	Reason string    `json:"reason" yaml:"reason"`
}

// DocumentError records a document that was skipped during a run.
type DocumentError struct {
	Path string
	Err  error
}

func (e DocumentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e DocumentError) Unwrap() error { return e.Err }

// MarshalJSON renders the cause as a string.
func (e DocumentError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"path": e.Path, "error": e.Err.Error()})
}

// MarshalYAML implements yaml.Marshaler.
func (e DocumentError) MarshalYAML() (any, error) {
	return map[string]string{"path": e.Path, "error": e.Err.Error()}, nil
}

// Result is the outcome of one inference run.
type Result struct {
	RunID     string          `json:"runId" yaml:"runId"`
	StartedAt time.Time       `json:"startedAt" yaml:"startedAt"`
	Duration  time.Duration   `json:"duration" yaml:"duration"`
	Scanned   int             `json:"scanned" yaml:"scanned"`
	Skipped   []DocumentError `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Schema    *SchemaRecord   `json:"schema" yaml:"schema"`
	Form      FormDescriptor  `json:"form" yaml:"form"`
}
