package anim

import (
	"github.com/gogpu/gg"
)

// DrawFunc paints a layer. Implementations read Opacity, Progress and Color
// from the layer they are handed.
type DrawFunc func(dc *gg.Context, vp Viewport, l *Layer)

// Layer is one drawable on the stage.
type Layer struct {
	Name     string
	Opacity  float64
	Progress float64 // reveal fraction for Create/Write style animations
	Color    gg.RGBA
	Draw     DrawFunc
}

// NewLayer returns a fully visible layer.
func NewLayer(name string, col gg.RGBA, draw DrawFunc) *Layer {
	return &Layer{Name: name, Opacity: 1, Progress: 1, Color: col, Draw: draw}
}

// Fade returns the layer colour with its alpha scaled by the layer opacity.
func (l *Layer) Fade(c gg.RGBA) gg.RGBA {
	c.A *= l.Opacity
	return c
}

// Group bundles layers so they can be animated together.
type Group []*Layer

// Stage holds the layers in paint order.
type Stage struct {
	Background gg.RGBA
	layers     []*Layer
}

func NewStage(bg gg.RGBA) *Stage {
	return &Stage{Background: bg}
}

// Add appends layers that are not already on stage.
func (s *Stage) Add(layers ...*Layer) {
	for _, l := range layers {
		if !s.Has(l) {
			s.layers = append(s.layers, l)
		}
	}
}

func (s *Stage) Remove(layers ...*Layer) {
	for _, l := range layers {
		for i, cur := range s.layers {
			if cur == l {
				s.layers = append(s.layers[:i], s.layers[i+1:]...)
				break
			}
		}
	}
}

func (s *Stage) Has(l *Layer) bool {
	for _, cur := range s.layers {
		if cur == l {
			return true
		}
	}
	return false
}

func (s *Stage) Layers() []*Layer {
	return s.layers
}

// Clear removes every layer.
func (s *Stage) Clear() {
	s.layers = nil
}

// Render paints the background and every visible layer.
func (s *Stage) Render(dc *gg.Context, vp Viewport) {
	dc.ClearWithColor(s.Background)
	for _, l := range s.layers {
		if l.Opacity <= 0 || l.Draw == nil {
			continue
		}
		dc.Push()
		l.Draw(dc, vp, l)
		dc.Pop()
	}
}
