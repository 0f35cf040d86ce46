package core

import (
	"slices"
	"strings"
)

// Config carries the reference tables the engine consults. The defaults are
// fixed constants; overriding them changes the suggestions and the form
// hints but never the shape of the results.
type Config struct {
	// ContentExtensions selects the documents that are scanned.
	ContentExtensions []string `yaml:"contentExtensions"`
	// CommonFields are suggested first when absent.
	CommonFields []string `yaml:"commonFields"`
	// SEOFields are suggested after the common fields when absent.
	SEOFields []string `yaml:"seoFields"`
	// RequiredFields are marked required in the form.
	RequiredFields []string `yaml:"requiredFields"`
	// Placeholders maps field names to their input placeholder.
	Placeholders map[string]string `yaml:"placeholders"`
	// RecommendedTypes maps suggested field names to their field type.
	RecommendedTypes map[string]FieldType `yaml:"recommendedTypes"`
	// CategoryOptions are the choices offered for the category field.
	CategoryOptions []string `yaml:"categoryOptions"`
}

// DefaultConfig returns the built-in reference tables.
func DefaultConfig() Config {
	return Config{
		ContentExtensions: []string{".md", ".mdx"},
		CommonFields:      []string{"title", "description", "publishedAt", "author", "tags", "category"},
		SEOFields:         []string{"metaTitle", "metaDescription", "ogImage", "canonicalUrl"},
		RequiredFields:    []string{"title", "content", "publishedAt"},
		Placeholders: map[string]string{
			"title":           "Enter a title",
			"description":     "Enter a description",
			"author":          "Enter the author name",
			"tags":            "Enter tags separated by commas",
			"category":        "Select a category",
			"publishedAt":     "Select a publish date",
			"metaTitle":       "Enter an SEO title",
			"metaDescription": "Enter an SEO description",
			"ogImage":         "Enter an image URL",
			"canonicalUrl":    "Enter the canonical URL",
		},
		RecommendedTypes: map[string]FieldType{
			"title":           FieldText,
			"description":     FieldTextarea,
			"publishedAt":     FieldDate,
			"author":          FieldText,
			"tags":            FieldArray,
			"category":        FieldSelect,
			"metaTitle":       FieldText,
			"metaDescription": FieldTextarea,
			"ogImage":         FieldURL,
			"canonicalUrl":    FieldURL,
		},
		CategoryOptions: []string{"News", "Blog", "Event", "Press Release"},
	}
}

// Merge returns c with every non-empty table of override replacing the
// corresponding default. Map tables are merged key by key.
func (c Config) Merge(override Config) Config {
	out := c.clone()
	if len(override.ContentExtensions) > 0 {
		out.ContentExtensions = slices.Clone(override.ContentExtensions)
	}
	if len(override.CommonFields) > 0 {
		out.CommonFields = slices.Clone(override.CommonFields)
	}
	if len(override.SEOFields) > 0 {
		out.SEOFields = slices.Clone(override.SEOFields)
	}
	if len(override.RequiredFields) > 0 {
		out.RequiredFields = slices.Clone(override.RequiredFields)
	}
	if len(override.CategoryOptions) > 0 {
		out.CategoryOptions = slices.Clone(override.CategoryOptions)
	}
	for k, v := range override.Placeholders {
		out.Placeholders[k] = v
	}
	for k, v := range override.RecommendedTypes {
		out.RecommendedTypes[k] = v
	}
	return out
}

func (c Config) clone() Config {
	out := Config{
		ContentExtensions: slices.Clone(c.ContentExtensions),
		CommonFields:      slices.Clone(c.CommonFields),
		SEOFields:         slices.Clone(c.SEOFields),
		RequiredFields:    slices.Clone(c.RequiredFields),
		CategoryOptions:   slices.Clone(c.CategoryOptions),
		Placeholders:      make(map[string]string, len(c.Placeholders)),
		RecommendedTypes:  make(map[string]FieldType, len(c.RecommendedTypes)),
	}
	for k, v := range c.Placeholders {
		out.Placeholders[k] = v
	}
	for k, v := range c.RecommendedTypes {
		out.RecommendedTypes[k] = v
	}
	return out
}

// IsContent reports whether a document name ends in a content extension.
func (c Config) IsContent(name string) bool {
	for _, ext := range c.ContentExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// IsRequired reports whether a field is in the required list.
func (c Config) IsRequired(field string) bool {
	return slices.Contains(c.RequiredFields, field)
}

// RecommendedType returns the suggested type for a field name, text when unlisted.
func (c Config) RecommendedType(field string) FieldType {
	if t, ok := c.RecommendedTypes[field]; ok {
		return t
	}
	return FieldText
}
