package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strata/pkg/adapters/frontmatter"
	"github.com/aretw0/strata/pkg/adapters/markdown"
	"github.com/aretw0/strata/pkg/core"
)

func writeDoc(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func TestTree_Watch(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "posts/a.md", "---\ntitle: A\n---\n")

	tree := NewTree(Config{Path: dir, Debounce: 20 * time.Millisecond})
	svc := core.NewService(frontmatter.Splitter, frontmatter.NewLineParser(), markdown.NewAnalyzer())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	watchCtx, stop := context.WithCancel(ctx)

	events, err := tree.Watch(watchCtx, svc)
	require.NoError(t, err)

	initial := waitForRefresh(t, events, "initial")
	require.NoError(t, initial.Err)
	require.NotNil(t, initial.Result)
	assert.True(t, initial.Result.Schema.Has("title"))
	assert.False(t, initial.Result.Schema.Has("author"))

	t.Run("New Document", func(t *testing.T) {
		writeDoc(t, dir, "posts/b.md", "---\nauthor: Ada\n---\n")

		deadline := time.After(5 * time.Second)
		for {
			select {
			case ev := <-events:
				if ev.Result != nil && ev.Result.Schema.Has("author") {
					assert.Equal(t, "filesystem", ev.Trigger)
					assert.True(t, ev.Result.Schema.Has("title"))
					drain(events, 200*time.Millisecond)
					return
				}
			case <-deadline:
				t.Fatal("timed out waiting for the new field")
			}
		}
	})

	t.Run("Irrelevant Files Are Ignored", func(t *testing.T) {
		writeDoc(t, dir, "posts/logo.png", "png")
		writeDoc(t, dir, "node_modules/pkg/readme.md", "---\nvendor: x\n---\n")

		select {
		case ev := <-events:
			t.Fatalf("unexpected refresh: %s", ev)
		case <-time.After(300 * time.Millisecond):
		}
	})

	st := tree.State().(TreeState)
	assert.True(t, st.WatcherActive)
	assert.GreaterOrEqual(t, st.Refreshes, 2)
	assert.NotNil(t, st.LastRefresh)

	stop()
	select {
	case _, ok := <-events:
		for ok {
			_, ok = <-events
		}
	case <-ctx.Done():
		t.Fatal("events channel was not closed")
	}
	waitForWatcher(t, tree, false)
}

// drain discards events until none arrive for quiet.
func drain(events <-chan core.RefreshEvent, quiet time.Duration) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-time.After(quiet):
			return
		}
	}
}

// failingInferer always fails.
type failingInferer struct{ err error }

func (f failingInferer) Infer(ctx context.Context, root core.Node) (*core.Result, error) {
	return nil, f.err
}

func TestTree_Watch_ReportsFailures(t *testing.T) {
	boom := errors.New("boom")
	handled := make(chan error, 4)
	tree := NewTree(Config{
		Path:         t.TempDir(),
		ErrorHandler: func(err error) { handled <- err },
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := tree.Watch(ctx, failingInferer{err: boom})
	require.NoError(t, err)

	ev := waitForRefresh(t, events, "initial")
	assert.ErrorIs(t, ev.Err, boom)
	assert.Nil(t, ev.Result)
	assert.Contains(t, ev.String(), "failed")

	select {
	case err := <-handled:
		assert.ErrorIs(t, err, boom)
	case <-time.After(2 * time.Second):
		t.Fatal("error handler was not called")
	}
}
