package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strata/pkg/core"
)

func TestLookup(t *testing.T) {
	ctx := context.Background()
	post := core.NewFile("hello.md", "# hi")
	root := core.NewFolder("",
		core.NewFolder("src",
			core.NewFolder("content", post),
		),
		core.NewFile("README.md", ""),
	)

	t.Run("Root", func(t *testing.T) {
		for _, p := range []string{"", "/", "."} {
			n, err := core.Lookup(ctx, root, p)
			require.NoError(t, err)
			assert.Same(t, root, n)
		}
	})

	t.Run("Nested", func(t *testing.T) {
		n, err := core.Lookup(ctx, root, "src/content/hello.md")
		require.NoError(t, err)
		assert.Same(t, post, n)

		n, err = core.Lookup(ctx, root, "/src/content/")
		require.NoError(t, err)
		assert.Equal(t, "content", n.Name())
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := core.Lookup(ctx, root, "src/blog")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, core.ErrInvalidTree)
	})

	t.Run("Through A File", func(t *testing.T) {
		_, err := core.Lookup(ctx, root, "README.md/child")
		assert.ErrorIs(t, err, core.ErrInvalidTree)
	})

	t.Run("Nil Root", func(t *testing.T) {
		_, err := core.Lookup(ctx, nil, "x")
		assert.ErrorIs(t, err, core.ErrInvalidTree)
	})
}
