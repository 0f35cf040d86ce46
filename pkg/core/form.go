package core

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validation patterns attached to email and url fields.
const (
	EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
	URLPattern   = `^https?://.+`
)

// Length limits attached to titles and textareas.
const (
	TitleMaxLength    = 100
	TextareaMaxLength = 1000
)

// Validation is the rule set of a single form field.
type Validation struct {
	Required  bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MaxLength int    `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
}

// Check validates a submitted text value against the rule set and returns
// a short description of the first violation, or "" when the value passes.
func (v Validation) Check(value string) string {
	if v.Required && strings.TrimSpace(value) == "" {
		return "is required"
	}
	if value == "" {
		return ""
	}
	if v.MaxLength > 0 && utf16Len(value) > v.MaxLength {
		return "is too long"
	}
	if v.Pattern != "" {
		re, err := regexp.Compile(v.Pattern)
		if err == nil && !re.MatchString(value) {
			return "has an invalid format"
		}
	}
	return ""
}

// FieldSpec describes one input of a generated form.
type FieldSpec struct {
	Name         string     `json:"name" yaml:"name"`
	Label        string     `json:"label" yaml:"label"`
	Type         FieldType  `json:"type" yaml:"type"`
	DefaultValue *Value     `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Required     bool       `json:"required" yaml:"required"`
	Placeholder  string     `json:"placeholder" yaml:"placeholder"`
	Validation   Validation `json:"validation" yaml:"validation"`
	Options      []string   `json:"options,omitempty" yaml:"options,omitempty"`
	Suggested    bool       `json:"suggested,omitempty" yaml:"suggested,omitempty"`
	Reason       string     `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// FormDescriptor is the ordered list of inputs derived from a SchemaRecord.
type FormDescriptor struct {
	Fields []FieldSpec `json:"fields" yaml:"fields"`
}

// Field returns the spec named name.
func (f FormDescriptor) Field(name string) (FieldSpec, bool) {
	for _, spec := range f.Fields {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// Validate checks a submission against every field and returns the
// violations keyed by field name. Absent keys are treated as empty values.
func (f FormDescriptor) Validate(values map[string]string) map[string]string {
	problems := make(map[string]string)
	for _, spec := range f.Fields {
		if msg := spec.Validation.Check(values[spec.Name]); msg != "" {
			problems[spec.Name] = spec.Label + " " + msg
		}
	}
	return problems
}

// CompileForm derives the form descriptor of a finalized record: one field
// per detected field in detection order, then one per suggestion.
func CompileForm(s *SchemaRecord, cfg Config) FormDescriptor {
	form := FormDescriptor{Fields: make([]FieldSpec, 0, len(s.DetectedFields)+len(s.Suggestions))}

	for _, name := range s.DetectedFields {
		t := s.FieldTypes[name]
		sample := s.SampleContent[name]
		label := HumanizeField(name)
		spec := FieldSpec{
			Name:         name,
			Label:        label,
			Type:         t,
			DefaultValue: &sample,
			Required:     cfg.IsRequired(name),
			Placeholder:  placeholder(cfg, name, label),
			Validation:   validationFor(name, t, cfg.IsRequired(name)),
		}
		if t == FieldSelect || t == FieldArray {
			spec.Options = fieldOptions(cfg, name, sample)
		}
		form.Fields = append(form.Fields, spec)
	}

	for _, sg := range s.Suggestions {
		label := HumanizeField(sg.Field)
		spec := FieldSpec{
			Name:        sg.Field,
			Label:       label,
			Type:        sg.Type,
			Placeholder: placeholder(cfg, sg.Field, label),
			Validation:  validationFor(sg.Field, sg.Type, false),
			Suggested:   true,
			Reason:      sg.Reason,
		}
		if sg.Type == FieldSelect || sg.Type == FieldArray {
			spec.Options = fieldOptions(cfg, sg.Field, Array())
		}
		form.Fields = append(form.Fields, spec)
	}
	return form
}

func placeholder(cfg Config, name, label string) string {
	if p, ok := cfg.Placeholders[name]; ok {
		return p
	}
	return "Enter " + label
}

func validationFor(name string, t FieldType, required bool) Validation {
	v := Validation{Required: required}
	switch t {
	case FieldEmail:
		v.Pattern = EmailPattern
	case FieldURL:
		v.Pattern = URLPattern
	case FieldText:
		if name == "title" {
			v.MaxLength = TitleMaxLength
		}
	case FieldTextarea:
		v.MaxLength = TextareaMaxLength
	}
	return v
}

func fieldOptions(cfg Config, name string, sample Value) []string {
	if name == "category" {
		return append([]string(nil), cfg.CategoryOptions...)
	}
	if sample.Kind == KindArray {
		return append([]string{}, sample.List...)
	}
	return []string{}
}

var (
	upperLetter = regexp.MustCompile(`([A-Z])`)
	atSuffix    = regexp.MustCompile(` ?At$`)
	urlSuffix   = regexp.MustCompile(` ?Url$`)
)

// HumanizeField turns a camelCase field name into a label: words split at
// capitals, first letter upper-cased, a trailing "At" read as "Date" and a
// trailing "Url" spelled "URL".
//
//	publishedAt  -> Published Date
//	canonicalUrl -> Canonical URL
//	metaTitle    -> Meta Title
func HumanizeField(name string) string {
	label := upperLetter.ReplaceAllString(name, " $1")
	if r, size := utf8.DecodeRuneInString(label); size > 0 {
		label = string(unicode.ToUpper(r)) + label[size:]
	}
	label = atSuffix.ReplaceAllString(label, " Date")
	label = urlSuffix.ReplaceAllString(label, " URL")
	return strings.TrimSpace(label)
}
