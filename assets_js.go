//go:build js

package main

import (
	"io/fs"
	"strings"
	"syscall/js"

	"earthscene/assets"
)

// assetFS fetches assets over HTTP relative to the page that loaded the
// program.
func assetFS(root string) fs.FS {
	page := js.Global().Get("location").Get("href").String()
	if i := strings.IndexAny(page, "?#"); i >= 0 {
		page = page[:i]
	}
	page = page[:strings.LastIndexByte(page, '/')+1]
	root = strings.Trim(root, "/")
	if root != "" {
		root += "/"
	}
	return assets.HTTPFS{Base: page + root}
}
