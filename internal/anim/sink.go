package anim

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// FrameSink consumes rendered frames in order.
type FrameSink interface {
	WriteFrame(img image.Image) error
	Close() error
}

// LastFrameSink is implemented by sinks that only care about the final
// frame. Scenes skip rasterizing intermediate frames for them.
type LastFrameSink interface {
	FrameSink
	LastFrameOnly() bool
}

// Checkpointer receives labelled stills in addition to the frame stream.
type Checkpointer interface {
	Checkpoint(label string, img image.Image) error
}

// PNGSink keeps the most recent frame and writes it as PNG on Close.
// Checkpoints are written next to it as <name>_<label>.png.
type PNGSink struct {
	Path string
	last image.Image
}

func NewPNGSink(path string) *PNGSink {
	return &PNGSink{Path: path}
}

func (s *PNGSink) LastFrameOnly() bool { return true }

func (s *PNGSink) WriteFrame(img image.Image) error {
	s.last = img
	return nil
}

func (s *PNGSink) Checkpoint(label string, img image.Image) error {
	ext := filepath.Ext(s.Path)
	return writePNG(strings.TrimSuffix(s.Path, ext)+"_"+label+ext, img)
}

func (s *PNGSink) Close() error {
	if s.last == nil {
		return fmt.Errorf("no frame rendered for %s", s.Path)
	}
	return writePNG(s.Path, s.last)
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// CountingSink counts frames without keeping them.
type CountingSink struct {
	Frames      int
	Last        image.Image
	Checkpoints []string
	Closed      bool
}

func (s *CountingSink) Checkpoint(label string, img image.Image) error {
	s.Checkpoints = append(s.Checkpoints, label)
	return nil
}

func (s *CountingSink) WriteFrame(img image.Image) error {
	s.Frames++
	s.Last = img
	return nil
}

func (s *CountingSink) Close() error {
	s.Closed = true
	return nil
}
