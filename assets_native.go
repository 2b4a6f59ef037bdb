//go:build !js

package main

import (
	"io/fs"
	"os"
)

func assetFS(root string) fs.FS {
	return os.DirFS(root)
}
