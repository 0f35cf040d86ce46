package platform

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strata/pkg/adapters/frontmatter"
	"github.com/aretw0/strata/pkg/core"
)

const fixture = "../../pkg/adapters/memory/testdata/site.yaml"

func write(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func TestNew(t *testing.T) {
	t.Run("Unknown Parser", func(t *testing.T) {
		_, err := New(WithParser("toml"))
		assert.EqualError(t, err, "unknown parser: toml")
	})

	t.Run("Custom Parser Wins", func(t *testing.T) {
		svc, err := New(WithParser("toml"), WithFrontMatterParser(frontmatter.NewYAMLParser()))
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("Config Overlay", func(t *testing.T) {
		svc, err := New(WithConfig(core.Config{SEOFields: []string{"ogImage"}}), WithContentExtensions(".txt"))
		require.NoError(t, err)
		cfg := svc.Config()
		assert.Equal(t, []string{"ogImage"}, cfg.SEOFields)
		assert.Equal(t, []string{".txt"}, cfg.ContentExtensions)
		assert.Equal(t, core.DefaultConfig().CommonFields, cfg.CommonFields)
	})
}

func TestInferFixture(t *testing.T) {
	res, err := InferFixture(context.Background(), fixture, "src/content")
	require.NoError(t, err)

	want := []string{
		"title", "date", "author", "tags", "category",
		"headings", "wordCount", "readingTime",
		"description", "publishedAt", "links",
	}
	if diff := cmp.Diff(want, res.Schema.DetectedFields); diff != "" {
		t.Fatalf("detected fields mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, res.Scanned)
	assert.Equal(t, core.FieldDate, res.Schema.FieldTypes["date"])
	assert.Equal(t, core.FieldArray, res.Schema.FieldTypes["tags"])

	var suggested []string
	for _, sg := range res.Schema.Suggestions {
		suggested = append(suggested, sg.Field)
	}
	assert.Equal(t, []string{"metaTitle", "metaDescription", "ogImage", "canonicalUrl"}, suggested)
	assert.Len(t, res.Form.Fields, 15)

	category, ok := res.Form.Field("category")
	require.True(t, ok)
	assert.Equal(t, core.FieldText, category.Type)

	t.Run("Missing Sub Path", func(t *testing.T) {
		_, err := InferFixture(context.Background(), fixture, "src/missing")
		assert.Error(t, err)
	})
}

func TestInfer(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "blog/a.md", "---\ntitle: Hello\nauthor: ada@example.com\n---\n\nSome words here.\n")
	write(t, dir, "drafts/b.md", "---\ndraft: yes\n---\n")
	write(t, dir, "notes/c.txt", "---\nmood: calm\n---\n")

	t.Run("Whole Tree", func(t *testing.T) {
		res, err := Infer(context.Background(), dir, "")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Scanned)
		assert.True(t, res.Schema.Has("draft"))
		assert.Equal(t, core.FieldEmail, res.Schema.FieldTypes["author"])
		assert.False(t, res.Schema.Has("mood"))
	})

	t.Run("Sub Path", func(t *testing.T) {
		res, err := Infer(context.Background(), dir, "blog")
		require.NoError(t, err)
		assert.Equal(t, 1, res.Scanned)
		assert.False(t, res.Schema.Has("draft"))
	})

	t.Run("Exclude", func(t *testing.T) {
		res, err := Infer(context.Background(), dir, "", WithExclude("drafts"))
		require.NoError(t, err)
		assert.False(t, res.Schema.Has("draft"))
	})

	t.Run("Content Extensions", func(t *testing.T) {
		res, err := Infer(context.Background(), dir, "", WithContentExtensions(".txt"))
		require.NoError(t, err)
		assert.Equal(t, []string{"mood", "wordCount", "readingTime"}, res.Schema.DetectedFields)
	})

	t.Run("YAML Parser Output Always Encodes", func(t *testing.T) {
		other := t.TempDir()
		write(t, other, "a.md", "---\ntitle: Hi\nweight: .inf\n---\nbody\n")
		res, err := Infer(context.Background(), other, "", WithParser(ParserYAML))
		require.NoError(t, err)
		assert.Equal(t, core.FieldText, res.Schema.FieldTypes["weight"])
		_, err = json.Marshal(res)
		assert.NoError(t, err)
	})

	t.Run("Not A Directory", func(t *testing.T) {
		_, err := Infer(context.Background(), filepath.Join(dir, "blog", "a.md"), "")
		assert.ErrorIs(t, err, core.ErrInvalidTree)
	})

	t.Run("Missing Directory", func(t *testing.T) {
		_, err := Infer(context.Background(), filepath.Join(dir, "nope"), "")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestDetect(t *testing.T) {
	t.Run("Fixture", func(t *testing.T) {
		det, err := DetectFixture(context.Background(), fixture)
		require.NoError(t, err)
		require.NotNil(t, det.Best)
		assert.Equal(t, "astro", det.Best.Key)
	})

	t.Run("Directory", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "hugo.yaml", "title: x\n")
		det, err := Detect(context.Background(), dir)
		require.NoError(t, err)
		require.NotNil(t, det.Best)
		assert.Equal(t, "hugo", det.Best.Key)
	})

	t.Run("Nothing", func(t *testing.T) {
		det, err := Detect(context.Background(), t.TempDir())
		require.NoError(t, err)
		assert.Nil(t, det.Best)
	})
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("Valid", func(t *testing.T) {
		p := filepath.Join(dir, "strata.yaml")
		write(t, dir, "strata.yaml", "seoFields: [ogImage]\nrecommendedTypes:\n  ogImage: url\n")
		cfg, err := LoadConfig(p)
		require.NoError(t, err)
		assert.Equal(t, []string{"ogImage"}, cfg.SEOFields)
		assert.Equal(t, core.FieldURL, cfg.RecommendedTypes["ogImage"])
	})

	t.Run("Unknown Key", func(t *testing.T) {
		write(t, dir, "bad.yaml", "seoFeilds: [ogImage]\n")
		_, err := LoadConfig(filepath.Join(dir, "bad.yaml"))
		assert.Error(t, err)
	})

	t.Run("Empty File Is An Empty Overlay", func(t *testing.T) {
		write(t, dir, "empty.yaml", "")
		cfg, err := LoadConfig(filepath.Join(dir, "empty.yaml"))
		require.NoError(t, err)
		assert.Equal(t, core.DefaultConfig(), core.DefaultConfig().Merge(cfg))

		write(t, dir, "comments.yaml", "# nothing yet\n")
		_, err = LoadConfig(filepath.Join(dir, "comments.yaml"))
		assert.NoError(t, err)
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestFindConfig(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, ".strata.yaml", "{}\n")
	write(t, dir, "site/strata.yml", "{}\n")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "site", "src", "content"), 0755))

	got, err := FindConfig(filepath.Join(dir, "site", "src", "content"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "site", "strata.yml"), got)

	got, err = FindConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".strata.yaml"), got)

	t.Run("Directories Are Not Config Files", func(t *testing.T) {
		other := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(other, "strata.yaml"), 0755))
		assert.False(t, hasFile(other, "strata.yaml"))
	})
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "blog/a.md", "---\ntitle: Hello\n---\n")
	write(t, dir, "pages/b.md", "---\nlayout: page\n---\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := Watch(ctx, dir, "blog", WithDebounce(20*time.Millisecond), WithEventBuffer(4))
	require.NoError(t, err)

	select {
	case ev := <-events:
		require.NoError(t, ev.Err)
		assert.Equal(t, "initial", ev.Trigger)
		assert.True(t, ev.Result.Schema.Has("title"))
		assert.False(t, ev.Result.Schema.Has("layout"))
	case <-time.After(5 * time.Second):
		t.Fatal("no initial refresh")
	}

	cancel()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("events channel was not closed")
		}
	}
}
