package core

import (
	"fmt"
	"slices"
)

// SchemaRecord is the union of fields observed across a set of documents.
//
// Every name in DetectedFields has exactly one entry in FieldTypes and one in
// SampleContent, and no Suggestion names a detected field. A record is built
// by a single Accumulator and must not be mutated once Finalize returns.
type SchemaRecord struct {
	DetectedFields []string             `json:"detectedFields" yaml:"detectedFields"`
	FieldTypes     map[string]FieldType `json:"fieldTypes" yaml:"fieldTypes"`
	SampleContent  map[string]Value     `json:"sampleContent" yaml:"sampleContent"`
	Suggestions    []Suggestion         `json:"suggestions" yaml:"suggestions"`
}

// NewSchemaRecord returns an empty record.
func NewSchemaRecord() *SchemaRecord {
	return &SchemaRecord{
		DetectedFields: []string{},
		FieldTypes:     make(map[string]FieldType),
		SampleContent:  make(map[string]Value),
		Suggestions:    []Suggestion{},
	}
}

// Has reports whether field was detected.
func (s *SchemaRecord) Has(field string) bool {
	_, ok := s.FieldTypes[field]
	return ok
}

// Validate checks the record invariants.
func (s *SchemaRecord) Validate() error {
	seen := make(map[string]bool, len(s.DetectedFields))
	for _, f := range s.DetectedFields {
		if seen[f] {
			return fmt.Errorf("field %q detected twice", f)
		}
		seen[f] = true
		if _, ok := s.FieldTypes[f]; !ok {
			return fmt.Errorf("field %q has no type", f)
		}
		if _, ok := s.SampleContent[f]; !ok {
			return fmt.Errorf("field %q has no sample", f)
		}
	}
	if len(s.FieldTypes) != len(s.DetectedFields) || len(s.SampleContent) != len(s.DetectedFields) {
		return fmt.Errorf("type or sample entries for undetected fields")
	}
	for _, sg := range s.Suggestions {
		if seen[sg.Field] {
			return fmt.Errorf("suggestion %q is already detected", sg.Field)
		}
	}
	return nil
}

// Accumulator registers fields into a SchemaRecord.
//
// The first registration of a name wins: later documents never overwrite
// the type or sample of a field, which keeps the schema stable regardless of
// how many documents repeat it. An Accumulator has a single writer.
type Accumulator struct {
	record    *SchemaRecord
	finalized bool
}

// NewAccumulator starts a fresh record.
func NewAccumulator() *Accumulator {
	return &Accumulator{record: NewSchemaRecord()}
}

// Register adds field with its type and sample unless it is already known.
// It reports whether the field was added.
func (a *Accumulator) Register(field string, t FieldType, sample Value) bool {
	if a.finalized {
		panic("core: Register called on a finalized accumulator")
	}
	if a.record.Has(field) {
		return false
	}
	a.record.DetectedFields = append(a.record.DetectedFields, field)
	a.record.FieldTypes[field] = t
	a.record.SampleContent[field] = sample
	return true
}

// Document registers the fields of one document atomically: front matter
// first, in block order, then the body-derived fields.
func (a *Accumulator) Document(fm *FrontMatter, derived []DerivedField) {
	for _, e := range fm.Entries() {
		a.Register(e.Key, DetectFieldType(e.Value), e.Value)
	}
	for _, d := range derived {
		a.Register(d.Name, d.Type, d.Sample)
	}
}

// Len returns the number of detected fields so far.
func (a *Accumulator) Len() int { return len(a.record.DetectedFields) }

// Finalize appends the suggestions and hands the record over. The
// accumulator cannot be used afterwards.
func (a *Accumulator) Finalize(cfg Config) *SchemaRecord {
	a.record.Suggestions = Suggest(a.record.DetectedFields, cfg)
	a.finalized = true
	return a.record
}

// Suggest lists the common and SEO fields missing from detected, common
// fields first, each list in its declared order.
func Suggest(detected []string, cfg Config) []Suggestion {
	out := []Suggestion{}
	seen := make(map[string]bool)
	for _, field := range cfg.CommonFields {
		if slices.Contains(detected, field) || seen[field] {
			continue
		}
		seen[field] = true
		out = append(out, Suggestion{
			Field:  field,
			Type:   cfg.RecommendedType(field),
			Reason: fmt.Sprintf("%s is a common content field", field),
		})
	}
	for _, field := range cfg.SEOFields {
		if slices.Contains(detected, field) || seen[field] {
			continue
		}
		seen[field] = true
		out = append(out, Suggestion{
			Field:  field,
			Type:   cfg.RecommendedType(field),
			Reason: fmt.Sprintf("%s helps search engine optimization", field),
		})
	}
	return out
}
