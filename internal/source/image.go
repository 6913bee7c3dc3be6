package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// ImageSource serves pre-rendered formula images, one file per formula.
// Files are ordered naturally, so "2.png" comes before "10.png". The dpi
// argument of RenderPage is ignored.
type ImageSource struct {
	files []string
}

func NewImageSource(path string) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return &ImageSource{files: []string{path}}, nil
	}

	matches, err := filepath.Glob(filepath.Join(path, "*"))
	if err != nil {
		return nil, err
	}
	files := slices.DeleteFunc(matches, func(p string) bool { return !isImage(p) })
	slices.SortFunc(files, naturalCompare)
	return &ImageSource{files: files}, nil
}

func (s *ImageSource) PageCount() int { return len(s.files) }

func (s *ImageSource) RenderPage(index int, _ int) (image.Image, error) {
	if index < 0 || index >= len(s.files) {
		return nil, fmt.Errorf("formula image %d of %d does not exist", index, len(s.files))
	}
	return decodeFile(s.files[index])
}

func (s *ImageSource) Close() error { return nil }

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// naturalCompare orders base names by their leading number when both have
// one, falling back to plain string order.
func naturalCompare(a, b string) int {
	na, oka := leadingNumber(filepath.Base(a))
	nb, okb := leadingNumber(filepath.Base(b))
	if oka && okb && na != nb {
		if na < nb {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func leadingNumber(name string) (int, bool) {
	end := strings.IndexFunc(name, func(r rune) bool { return r < '0' || r > '9' })
	if end == 0 {
		return 0, false
	}
	if end < 0 {
		end = len(name)
	}
	n, err := strconv.Atoi(name[:end])
	return n, err == nil
}
