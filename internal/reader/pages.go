package reader

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/draw"
)

// ErrPageOutOfRange is returned for pages outside [1, NumPages]
var ErrPageOutOfRange = errors.New("page out of range")

var pageExtensions = []string{".png", ".jpg", ".jpeg"}

// ImageDir renders a document exported as one image file per page. Pages
// are ordered by file name.
type ImageDir struct {
	dir string

	mu    sync.Mutex
	files []string
}

var _ PageRenderer = (*ImageDir)(nil)

// NewImageDir creates a renderer over dir
func NewImageDir(dir string) *ImageDir {
	return &ImageDir{dir: dir}
}

// NumPages scans the directory and returns the number of page images
func (d *ImageDir) NumPages(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return 0, fmt.Errorf("read pages directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isPageImage(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(d.dir, entry.Name()))
	}
	sort.Strings(files)

	d.mu.Lock()
	d.files = files
	d.mu.Unlock()
	return len(files), nil
}

// RenderPage decodes page and scales it to size
func (d *ImageDir) RenderPage(ctx context.Context, page int, size Size) (image.Image, error) {
	d.mu.Lock()
	files := d.files
	d.mu.Unlock()
	if page < 1 || page > len(files) {
		return nil, fmt.Errorf("page %d: %w", page, ErrPageOutOfRange)
	}

	f, err := os.Open(files[page-1])
	if err != nil {
		return nil, fmt.Errorf("open page %d: %w", page, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode page %d: %w", page, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w, h := int(size.Width), int(size.Height)
	if w <= 0 || h <= 0 {
		return src, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst, nil
}

func isPageImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, candidate := range pageExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}
