package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

// HTTPFS is a read-only fs.FS that fetches files with HTTP GET relative to
// Base. In the browser build Base is the page URL, so relative asset paths
// resolve like they would for the page itself.
type HTTPFS struct {
	Base   string
	Client *http.Client
}

func (h HTTPFS) client() *http.Client {
	if h.Client != nil {
		return h.Client
	}
	return http.DefaultClient
}

func (h HTTPFS) url(name string) string {
	base := h.Base
	if i := strings.LastIndexByte(base, '/'); i >= 0 && !strings.HasSuffix(base, "/") {
		// "http://host/index.html" resolves against "http://host/".
		if j := strings.Index(base, "://"); j < 0 || i > j+2 {
			base = base[:i+1]
		}
	}
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + name
}

// ReadFileContext fetches name, honouring ctx.
func (h HTTPFS) ReadFileContext(ctx context.Context, name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url(name), nil)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	resp, err := h.client().Do(req)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fmt.Errorf("http status %s", resp.Status)}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}
	return data, nil
}

func (h HTTPFS) ReadFile(name string) ([]byte, error) {
	return h.ReadFileContext(context.Background(), name)
}

func (h HTTPFS) Open(name string) (fs.File, error) {
	data, err := h.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return &httpFile{name: name, Reader: bytes.NewReader(data), size: int64(len(data))}, nil
}

type httpFile struct {
	*bytes.Reader
	name string
	size int64
}

func (f *httpFile) Stat() (fs.FileInfo, error) { return f, nil }
func (f *httpFile) Close() error               { return nil }

func (f *httpFile) Name() string {
	if i := strings.LastIndexByte(f.name, '/'); i >= 0 {
		return f.name[i+1:]
	}
	return f.name
}
func (f *httpFile) Size() int64        { return f.size }
func (f *httpFile) Mode() fs.FileMode  { return 0o444 }
func (f *httpFile) ModTime() time.Time { return time.Time{} }
func (f *httpFile) IsDir() bool        { return false }
func (f *httpFile) Sys() any           { return nil }
