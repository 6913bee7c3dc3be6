// Package typeset provides the font faces and formula images used by the
// scene builders.
package typeset

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type Weight int

const (
	Regular Weight = iota
	Bold
)

type faceKey struct {
	size   float64
	weight Weight
}

// Fonts caches faces by size and weight. A custom font file replaces both
// weights, which is how CJK captions are enabled.
type Fonts struct {
	mu      sync.Mutex
	regular *text.FontSource
	bold    *text.FontSource
	faces   map[faceKey]text.Face
	Name    string
}

// NewFonts loads the font at path, or the Go fonts when path is empty.
func NewFonts(path string) (*Fonts, error) {
	f := &Fonts{faces: make(map[faceKey]text.Face)}
	if path != "" {
		src, err := text.NewFontSourceFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load font %s: %w", path, err)
		}
		f.regular, f.bold = src, src
		f.Name = src.Name()
		return f, nil
	}

	var err error
	if f.regular, err = text.NewFontSource(goregular.TTF); err != nil {
		return nil, fmt.Errorf("load go regular: %w", err)
	}
	if f.bold, err = text.NewFontSource(gobold.TTF); err != nil {
		f.regular.Close()
		return nil, fmt.Errorf("load go bold: %w", err)
	}
	f.Name = f.regular.Name()
	return f, nil
}

// Face returns a face of the given pixel size.
func (f *Fonts) Face(size float64, w Weight) text.Face {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := faceKey{size: size, weight: w}
	if face, ok := f.faces[k]; ok {
		return face
	}
	src := f.regular
	if w == Bold {
		src = f.bold
	}
	face := src.Face(size)
	f.faces[k] = face
	return face
}

func (f *Fonts) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faces = nil
	err := f.regular.Close()
	if f.bold != f.regular {
		if berr := f.bold.Close(); err == nil {
			err = berr
		}
	}
	return err
}
