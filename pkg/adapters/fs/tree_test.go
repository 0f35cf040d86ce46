package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strata/pkg/core"
)

func walkNames(t *testing.T, n core.Node, prefix string, out *[]string) {
	t.Helper()
	p := prefix + n.Name()
	if n.Kind() == core.KindFile {
		*out = append(*out, p)
		return
	}
	children, err := n.(core.FolderNode).Children(context.Background())
	require.NoError(t, err)
	if p != "" {
		p += "/"
	}
	for _, c := range children {
		walkNames(t, c, p, out)
	}
}

func TestTree_Root(t *testing.T) {
	fsys := fstest.MapFS{
		"b.md":                    {Data: []byte("---\ntitle: B\n---\n")},
		"a.md":                    {Data: []byte("---\ntitle: A\n---\n")},
		"src/content/post.mdx":    {Data: []byte("# Post")},
		".git/HEAD":               {Data: []byte("ref")},
		"node_modules/pkg/doc.md": {Data: []byte("# vendored")},
		"src/node_modules/x/y.md": {Data: []byte("# nested vendor")},
		".strata/snapshot.json":   {Data: []byte("{}")},
		"public/logo.png":         {Data: []byte("png")},
	}
	tree := NewTreeFS(fsys, Config{Path: "site"})

	root, err := tree.Root(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", root.Name())
	assert.Equal(t, core.KindFolder, root.Kind())

	var names []string
	walkNames(t, root, "", &names)
	assert.Equal(t, []string{"a.md", "b.md", "public/logo.png", "src/content/post.mdx"}, names)
}

func TestTree_ReadContent(t *testing.T) {
	fsys := fstest.MapFS{"docs/a.md": {Data: []byte("hello")}}
	tree := NewTreeFS(fsys, Config{Path: "site"})
	root, err := tree.Root(context.Background())
	require.NoError(t, err)

	n, err := core.Lookup(context.Background(), root, "docs/a.md")
	require.NoError(t, err)
	content, err := n.(core.FileNode).ReadContent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello", content)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = n.(core.FileNode).ReadContent(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTree_Excluded(t *testing.T) {
	tree := NewTreeFS(fstest.MapFS{}, Config{Exclude: []string{"drafts/**", "**/*.tmp.md"}})

	assert.True(t, tree.Excluded("drafts/a.md"))
	assert.True(t, tree.Excluded("posts/x.tmp.md"))
	assert.False(t, tree.Excluded("posts/x.md"))
	assert.False(t, tree.Excluded("."))
	assert.False(t, tree.Excluded(".git"), "custom patterns replace the defaults")

	none := NewTreeFS(fstest.MapFS{}, Config{Exclude: []string{}})
	assert.False(t, none.Excluded("node_modules"))
}

func TestTree_RootErrors(t *testing.T) {
	missing := NewTree(Config{Path: filepath.Join(t.TempDir(), "missing")})
	_, err := missing.Root(context.Background())
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.md")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = NewTree(Config{Path: file}).Root(context.Background())
	assert.Error(t, err)
}

func TestTree_Defaults(t *testing.T) {
	tree := NewTreeFS(fstest.MapFS{}, Config{Path: "site", Exclude: []string{"[invalid"}})
	st, ok := tree.State().(TreeState)
	require.True(t, ok)
	assert.Equal(t, "site", st.Path)
	assert.Equal(t, []string{".md", ".mdx"}, st.Extensions)
	assert.Equal(t, []string{"[invalid"}, st.Exclude)
	assert.False(t, st.WatcherActive)
	assert.Equal(t, 0, st.Refreshes)
	assert.Nil(t, st.LastRefresh)
	assert.Equal(t, "fs-tree", tree.ComponentType())

	assert.False(t, tree.Excluded("anything"), "invalid patterns never match")
}
