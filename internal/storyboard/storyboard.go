// Package storyboard holds the parameter tables of the animation: scene
// timings, the covariance and sampling settings of each point cloud,
// palette and caption overrides. Everything can be round-tripped through
// YAML so a run can be tweaked without recompiling.
package storyboard

import (
	"github.com/ivlev/podviz/internal/pod"
)

const Version = "1.0"

// Scene ids in narrative order.
const (
	Introduction    = "introduction"
	EnergySearch    = "energy_search"
	OrthogonalMode2 = "orthogonal_mode2"
	MathFormulation = "math_formulation"
	Extension3D     = "extension_3d"
	Conclusion      = "conclusion"
	Review          = "review"
)

// Timing maps a scene id to its intended duration in seconds.
type Timing map[string]float64

// nominal is the length of each scene as authored.
var nominal = Timing{
	Introduction:    17.8,
	EnergySearch:    20,
	OrthogonalMode2: 10,
	MathFormulation: 23,
	Extension3D:     28.5,
	Conclusion:      21,
	Review:          27.3,
}

// Nominal returns the authored duration of a scene, or 0 for unknown ids.
func Nominal(id string) float64 {
	return nominal[id]
}

// Known reports whether id names a scene.
func Known(id string) bool {
	_, ok := nominal[id]
	return ok
}

// CloudSpec describes how a point cloud is sampled.
type CloudSpec struct {
	Covariance pod.Covariance `yaml:"covariance"`
	Seed       uint64         `yaml:"seed"`
	Points     int            `yaml:"points"`
}

// EllipseSpec describes the uniform ellipse cloud of the review scene.
type EllipseSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Seed    uint64  `yaml:"seed"`
	Samples int     `yaml:"samples"`
}

// Storyboard bundles the tunable parameters of one render.
type Storyboard struct {
	Version  string            `yaml:"version"`
	Timing   Timing            `yaml:"timing"`
	Cloud2D  CloudSpec         `yaml:"cloud_2d"`
	Cloud3D  CloudSpec         `yaml:"cloud_3d"`
	Ellipse  EllipseSpec       `yaml:"review_ellipse"`
	Palette  map[string]string `yaml:"palette,omitempty"`
	Captions map[string]string `yaml:"captions,omitempty"`
	QRURL    string            `yaml:"qr_url,omitempty"`
}

// Default returns the parameters the animation was authored with.
func Default() *Storyboard {
	timing := make(Timing, len(nominal))
	for id, d := range nominal {
		timing[id] = d
	}
	return &Storyboard{
		Version: Version,
		Timing:  timing,
		Cloud2D: CloudSpec{Covariance: clone(pod.Cov2D), Seed: 42, Points: 100},
		Cloud3D: CloudSpec{Covariance: clone(pod.Cov3D), Seed: 123, Points: 150},
		Ellipse: EllipseSpec{Width: 8, Height: 4.2, Seed: 8, Samples: 160},
	}
}

// Duration is the intended length of a scene. Scenes missing from the
// table keep their authored length.
func (s *Storyboard) Duration(id string) float64 {
	if d, ok := s.Timing[id]; ok && d > 0 {
		return d
	}
	return nominal[id]
}

// TimeScale is the factor that stretches a scene's timeline to its
// storyboard duration.
func (s *Storyboard) TimeScale(id string) float64 {
	n := nominal[id]
	if n == 0 {
		return 1
	}
	return s.Duration(id) / n
}

// Caption returns the override for key, or def.
func (s *Storyboard) Caption(key, def string) string {
	if c, ok := s.Captions[key]; ok && c != "" {
		return c
	}
	return def
}

func clone(c pod.Covariance) pod.Covariance {
	out := make(pod.Covariance, len(c))
	for i, row := range c {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
