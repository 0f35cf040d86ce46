package core_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strata/pkg/core"
)

func TestAccumulator_FirstRegistrationWins(t *testing.T) {
	acc := core.NewAccumulator()

	assert.True(t, acc.Register("title", core.FieldText, core.String("First")))
	assert.False(t, acc.Register("title", core.FieldTextarea, core.String("Second")))
	assert.True(t, acc.Register("tags", core.FieldArray, core.Array("a")))

	rec := acc.Finalize(core.DefaultConfig())
	assert.Equal(t, []string{"title", "tags"}, rec.DetectedFields)
	assert.Equal(t, core.FieldText, rec.FieldTypes["title"])
	assert.True(t, rec.SampleContent["title"].Equal(core.String("First")))
	require.NoError(t, rec.Validate())
}

func TestAccumulator_Document(t *testing.T) {
	fm := &core.FrontMatter{}
	fm.Set("title", core.String("Hello"))
	fm.Set("date", core.Date("2024-08-01"))
	fm.Set("draft", core.Bool(true))

	derived := []core.DerivedField{
		{Name: "wordCount", Type: core.FieldNumber, Sample: core.Number(3)},
		{Name: "title", Type: core.FieldArray, Sample: core.Array("ignored")},
	}

	acc := core.NewAccumulator()
	acc.Document(fm, derived)
	acc.Document(fm, derived)
	assert.Equal(t, 4, acc.Len())

	rec := acc.Finalize(core.DefaultConfig())
	assert.Equal(t, []string{"title", "date", "draft", "wordCount"}, rec.DetectedFields)
	assert.Equal(t, map[string]core.FieldType{
		"title":     core.FieldText,
		"date":      core.FieldDate,
		"draft":     core.FieldBoolean,
		"wordCount": core.FieldNumber,
	}, rec.FieldTypes)
}

func TestAccumulator_NilFrontMatter(t *testing.T) {
	acc := core.NewAccumulator()
	acc.Document(nil, []core.DerivedField{{Name: "readingTime", Type: core.FieldNumber, Sample: core.Number(1)}})
	assert.Equal(t, 1, acc.Len())
}

func TestAccumulator_RegisterAfterFinalizePanics(t *testing.T) {
	acc := core.NewAccumulator()
	acc.Finalize(core.DefaultConfig())
	assert.Panics(t, func() {
		acc.Register("late", core.FieldText, core.String("x"))
	})
}

func TestSuggest(t *testing.T) {
	cfg := core.DefaultConfig()

	t.Run("Nothing Detected", func(t *testing.T) {
		got := core.Suggest(nil, cfg)
		var fields []string
		for _, s := range got {
			fields = append(fields, s.Field)
		}
		want := []string{
			"title", "description", "publishedAt", "author", "tags", "category",
			"metaTitle", "metaDescription", "ogImage", "canonicalUrl",
		}
		if diff := cmp.Diff(want, fields); diff != "" {
			t.Errorf("suggestion order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Detected Fields Are Skipped", func(t *testing.T) {
		got := core.Suggest([]string{"title", "ogImage", "unrelated"}, cfg)
		for _, s := range got {
			assert.NotEqual(t, "title", s.Field)
			assert.NotEqual(t, "ogImage", s.Field)
		}
		assert.Len(t, got, 8)
	})

	t.Run("Author Suggestion", func(t *testing.T) {
		got := core.Suggest([]string{"title"}, cfg)
		var author *core.Suggestion
		for i := range got {
			if got[i].Field == "author" {
				author = &got[i]
			}
		}
		require.NotNil(t, author)
		assert.Equal(t, core.FieldText, author.Type)
		assert.Contains(t, author.Reason, "author")
	})

	t.Run("Types Come From The Lookup Table", func(t *testing.T) {
		want := map[string]core.FieldType{
			"description": core.FieldTextarea,
			"publishedAt": core.FieldDate,
			"tags":        core.FieldArray,
			"category":    core.FieldSelect,
			"ogImage":     core.FieldURL,
		}
		for _, s := range core.Suggest(nil, cfg) {
			if w, ok := want[s.Field]; ok {
				assert.Equal(t, w, s.Type, s.Field)
			}
		}
	})

	t.Run("Unlisted Fields Default To Text", func(t *testing.T) {
		custom := cfg.Merge(core.Config{CommonFields: []string{"subtitle"}, SEOFields: []string{"subtitle"}})
		got := core.Suggest(nil, custom)
		require.Len(t, got, 1)
		assert.Equal(t, core.Suggestion{Field: "subtitle", Type: core.FieldText, Reason: "subtitle is a common content field"}, got[0])
	})
}

func TestSchemaRecord_Validate(t *testing.T) {
	rec := core.NewSchemaRecord()
	rec.DetectedFields = []string{"title"}
	assert.Error(t, rec.Validate())

	rec.FieldTypes["title"] = core.FieldText
	rec.SampleContent["title"] = core.String("x")
	assert.NoError(t, rec.Validate())

	rec.Suggestions = []core.Suggestion{{Field: "title", Type: core.FieldText}}
	assert.Error(t, rec.Validate())
}
