// Package source reads formula sheets: a PDF with one formula per page, or
// a directory of PNG/JPEG images sorted by name.
package source

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gen2brain/go-fitz"
)

// Source yields rasterized pages in order.
type Source interface {
	PageCount() int
	RenderPage(index int, dpi int) (image.Image, error)
	Close() error
}

// Open picks the reader by path: directories and image files go through
// ImageSource, everything else is treated as PDF.
func Open(path string) (Source, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("formula sheet: %w", err)
	}
	if fi.IsDir() || isImage(path) {
		return NewImageSource(path)
	}
	return NewPDFSource(path)
}

// PDFSource renders pages with MuPDF. The document handle is not safe for
// concurrent use, so renders are serialized.
type PDFSource struct {
	mu  sync.Mutex
	doc *fitz.Document
}

func NewPDFSource(path string) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &PDFSource{doc: doc}, nil
}

func (s *PDFSource) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.NumPage()
}

func (s *PDFSource) RenderPage(index int, dpi int) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= s.doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range", index)
	}
	return s.doc.ImageDPI(index, float64(dpi))
}

func (s *PDFSource) Close() error {
	return s.doc.Close()
}

func isImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
