package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	"earthscene/gfx"
	"earthscene/typeface"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var ErrUnsupportedFormat = errors.New("assets: unsupported format")

// contextReader is implemented by file systems that can cancel reads.
type contextReader interface {
	ReadFileContext(ctx context.Context, name string) ([]byte, error)
}

func readFile(ctx context.Context, fsys fs.FS, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", path, err)
	}
	if fsys == nil {
		return nil, fmt.Errorf("assets: read %s: %w", path, fs.ErrNotExist)
	}
	var data []byte
	var err error
	if cr, ok := fsys.(contextReader); ok {
		data, err = cr.ReadFileContext(ctx, path)
	} else {
		data, err = fs.ReadFile(fsys, path)
	}
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", path, err)
	}
	return data, nil
}

func kindOf(data []byte) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "unknown"
	}
	return kind.MIME.Value
}

func decodeTexture(path string, data []byte, maxSize int) (*gfx.Texture, error) {
	if !filetype.IsImage(data) {
		return nil, fmt.Errorf("assets: %s: %w (%s)", path, ErrUnsupportedFormat, kindOf(data))
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return gfx.NewTexture(path, fitTexture(img, maxSize)), nil
}

// fitTexture scales img down so its longest side is at most maxSize.
func fitTexture(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	return transform.Resize(img, w, h, transform.Linear)
}

func decodeFont(path string, data []byte) (*typeface.Font, error) {
	if path == GoRegularPath {
		f, err := typeface.Goregular()
		if err != nil {
			return nil, fmt.Errorf("assets: decode %s: %w", path, err)
		}
		return f, nil
	}

	var (
		f   *typeface.Font
		err error
	)
	switch kind, _ := filetype.Match(data); {
	case kind.Extension == "ttf" || kind.Extension == "otf":
		f, err = typeface.ParseSFNT(data)
	case kind != filetype.Unknown:
		return nil, fmt.Errorf("assets: %s: %w (%s)", path, ErrUnsupportedFormat, kind.MIME.Value)
	default:
		f, err = typeface.ParseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return f, nil
}
