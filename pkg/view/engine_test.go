package view_test

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/anvilweb/anvil/pkg/view"
)

func TestEngineRender(t *testing.T) {
	t.Parallel()

	t.Run("renders template with data", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"hello.html": {Data: []byte(`Hello, {{.Name}}!`)},
		}
		engine := view.New(view.WithFS(fsys))

		var buf bytes.Buffer
		err := engine.Render(&buf, "hello", map[string]any{"Name": "World"})
		require.NoError(t, err)
		require.Equal(t, "Hello, World!", buf.String())
	})

	t.Run("earlier layer shadows later layer", func(t *testing.T) {
		t.Parallel()

		app := fstest.MapFS{
			"page.html": {Data: []byte(`app version`)},
		}
		builtin := fstest.MapFS{
			"page.html": {Data: []byte(`builtin version`)},
		}
		engine := view.New(view.WithFS(app), view.WithFS(builtin))

		var buf bytes.Buffer
		require.NoError(t, engine.Render(&buf, "page", nil))
		require.Equal(t, "app version", buf.String())
	})

	t.Run("falls through to later layer", func(t *testing.T) {
		t.Parallel()

		app := fstest.MapFS{}
		builtin := fstest.MapFS{
			"page.html": {Data: []byte(`builtin version`)},
		}
		engine := view.New(view.WithFS(app), view.WithFS(builtin))

		var buf bytes.Buffer
		require.NoError(t, engine.Render(&buf, "page", nil))
		require.Equal(t, "builtin version", buf.String())
	})

	t.Run("shared partials are available", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"partials/nav.html": {Data: []byte(`{{define "nav"}}<nav>menu</nav>{{end}}`)},
			"index.html":        {Data: []byte(`{{template "nav" .}} body`)},
		}
		engine := view.New(view.WithFS(fsys), view.WithShared("partials/*.html"))

		var buf bytes.Buffer
		require.NoError(t, engine.Render(&buf, "index", nil))
		require.Equal(t, "<nav>menu</nav> body", buf.String())
	})

	t.Run("resolves nested template names", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"users/list.html": {Data: []byte(`{{len .Users}} users`)},
		}
		engine := view.New(view.WithFS(fsys))

		var buf bytes.Buffer
		err := engine.Render(&buf, "users/list", map[string]any{"Users": []string{"a", "b"}})
		require.NoError(t, err)
		require.Equal(t, "2 users", buf.String())
	})

	t.Run("missing template returns ErrTemplateNotFound", func(t *testing.T) {
		t.Parallel()

		engine := view.New(view.WithFS(fstest.MapFS{}))

		err := engine.Render(&bytes.Buffer{}, "missing", nil)
		require.ErrorIs(t, err, view.ErrTemplateNotFound)
	})

	t.Run("escapes html in data", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"page.html": {Data: []byte(`{{.Value}}`)},
		}
		engine := view.New(view.WithFS(fsys))

		var buf bytes.Buffer
		require.NoError(t, engine.Render(&buf, "page", map[string]any{"Value": "<script>"}))
		require.NotContains(t, buf.String(), "<script>")
		require.True(t, strings.Contains(buf.String(), "&lt;script&gt;"))
	})

	t.Run("custom funcs", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"page.html": {Data: []byte(`{{upper .Value}}`)},
		}
		engine := view.New(
			view.WithFS(fsys),
			view.WithFuncs(map[string]any{"upper": strings.ToUpper}),
		)

		var buf bytes.Buffer
		require.NoError(t, engine.Render(&buf, "page", map[string]any{"Value": "loud"}))
		require.Equal(t, "LOUD", buf.String())
	})
}
