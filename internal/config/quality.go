package config

import (
	"fmt"
	"strings"
)

// Quality is a named preset controlling output resolution and frame rate.
type Quality struct {
	Name          string
	Width, Height int
	FPS           int
	LastFrameOnly bool
}

var (
	Low      = Quality{Name: "low", Width: 854, Height: 480, FPS: 15}
	Standard = Quality{Name: "standard", Width: 1280, Height: 720, FPS: 30}
	High     = Quality{Name: "high", Width: 1920, Height: 1080, FPS: 60}
	// Preview is the default tier rendered as a last-frame still.
	Preview = Quality{Name: "preview", Width: 1280, Height: 720, FPS: 30, LastFrameOnly: true}
)

var qualities = map[string]Quality{
	"low":      Low,
	"standard": Standard,
	"medium":   Standard,
	"high":     High,
	"preview":  Preview,
}

// ParseQuality maps a keyword to its tier. "medium" is accepted as an alias
// of "standard".
func ParseQuality(s string) (Quality, error) {
	q, ok := qualities[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Quality{}, fmt.Errorf("unknown quality %q (want low, standard, high or preview)", s)
	}
	return q, nil
}

// Dir is the per-tier output directory, e.g. "720p30".
func (q Quality) Dir() string {
	return fmt.Sprintf("%dp%d", q.Height, q.FPS)
}

// WithPreview keeps the tier's resolution but renders only the last frame.
func (q Quality) WithPreview() Quality {
	q.LastFrameOnly = true
	return q
}

func (q Quality) String() string {
	return fmt.Sprintf("%s (%dx%d @ %d FPS)", q.Name, q.Width, q.Height, q.FPS)
}

type Part string

const (
	Part2D   Part = "2d"
	Part3D   Part = "3d"
	PartBoth Part = "both"
)

func ParsePart(s string) (Part, error) {
	switch p := Part(strings.ToLower(strings.TrimSpace(s))); p {
	case Part2D, Part3D, PartBoth:
		return p, nil
	}
	return "", fmt.Errorf("unknown part %q (want 2d, 3d or both)", s)
}

// ParseArgs accepts the positional keywords "[part] [quality] [preview]" in
// any order and applies them to cfg. "preview" switches the chosen tier,
// or the default one when none is given, to last-frame output.
func ParseArgs(cfg *Config, args []string) error {
	preview := false
	for _, a := range args {
		if p, err := ParsePart(a); err == nil {
			cfg.Part = p
			continue
		}
		q, err := ParseQuality(a)
		if err != nil {
			return fmt.Errorf("unrecognized argument %q: expected a part (2d, 3d, both) or a quality (low, standard, high, preview)", a)
		}
		if q.Name == "preview" {
			preview = true
			continue
		}
		cfg.Quality = q
	}
	if preview {
		cfg.Quality = cfg.Quality.WithPreview()
	}
	return nil
}
