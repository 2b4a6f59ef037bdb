package assets

import (
	"context"
	"image/color"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"earthscene/gfx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFS(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/app/fonts/a.json":
			_, _ = w.Write([]byte(`{"ok":true}`))
		case "/app/private":
			w.WriteHeader(http.StatusForbidden)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	fsys := HTTPFS{Base: srv.URL + "/app/index.html", Client: srv.Client()}

	data, err := fs.ReadFile(fsys, "fonts/a.json")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))

	f, err := fsys.Open("fonts/a.json")
	require.NoError(t, err)
	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, "a.json", info.Name())
	assert.Equal(t, int64(11), info.Size())
	require.NoError(t, f.Close())

	_, err = fsys.ReadFile("missing.png")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = fsys.ReadFile("private")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, fs.ErrNotExist)

	_, err = fsys.ReadFile("../escape")
	assert.ErrorIs(t, err, fs.ErrInvalid)
}

func TestHTTPFSURL(t *testing.T) {
	for base, want := range map[string]string{
		"http://host":            "http://host/x.png",
		"http://host/":           "http://host/x.png",
		"http://host/index.html": "http://host/x.png",
		"http://host/app/":       "http://host/app/x.png",
		"assets":                 "assets/x.png",
		"":                       "x.png",
	} {
		assert.Equal(t, want, HTTPFS{Base: base}.url("x.png"), base)
	}
}

func TestHTTPFSThroughManager(t *testing.T) {
	png := encodePNG(t, 2, 2, color.RGBA{G: 0xFF, A: 0xFF})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(png)
	}))
	defer srv.Close()

	m := NewManager(HTTPFS{Base: srv.URL, Client: srv.Client()})
	ctx := context.Background()
	loaded := false
	m.LoadTexture(ctx, "textures/matcaps/8.png", func(*gfx.Texture) { loaded = true })
	require.NoError(t, m.Wait(waitCtx(t)))
	assert.True(t, loaded)
}
