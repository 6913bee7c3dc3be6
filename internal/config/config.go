package config

import (
	"fmt"
	"path/filepath"
)

// Config is the resolved run configuration of one invocation.
type Config struct {
	OutputRoot     string
	Part           Part
	Quality        Quality
	Scenes         []string
	Workers        int
	VideoEncoder   string
	CRF            int
	FontPath       string
	FormulaPath    string
	StoryboardPath string
	QRURL          string
	Concat         bool
	TransitionType string
	FadeDuration   float64
	ShowStats      bool
	BuildVersion   string
}

// Default mirrors the behaviour of running the renderer without arguments:
// both parts at standard quality.
func Default() *Config {
	return &Config{
		OutputRoot:     "media",
		Part:           PartBoth,
		Quality:        Standard,
		Workers:        2,
		VideoEncoder:   "libx264",
		CRF:            23,
		QRURL:          "https://en.wikipedia.org/wiki/Proper_orthogonal_decomposition",
		TransitionType: "none",
		FadeDuration:   0.5,
		BuildVersion:   "dev",
	}
}

// PartDir is the directory name a part's renders are grouped under.
func PartDir(p Part) string {
	switch p {
	case Part3D:
		return "pod_educational_3d"
	default:
		return "pod_educational_2d"
	}
}

// SceneClass names the rendered file of a part.
func SceneClass(p Part) string {
	switch p {
	case Part3D:
		return "PODEducational3D"
	default:
		return "PODEducational2D"
	}
}

// OutputPath derives the artifact path of one part from the quality tier.
func (c *Config) OutputPath(p Part) string {
	ext := ".mp4"
	if c.Quality.LastFrameOnly {
		ext = ".png"
	}
	return filepath.Join(c.OutputRoot, "videos", PartDir(p), c.Quality.Dir(), SceneClass(p)+ext)
}

// CombinedPath is where the concatenated 2D+3D video is written.
func (c *Config) CombinedPath() string {
	return filepath.Join(c.OutputRoot, "videos", fmt.Sprintf("pod_educational_%s.mp4", c.Quality.Dir()))
}

// Parts expands the selector into render order.
func (c *Config) Parts() []Part {
	if c.Part == PartBoth {
		return []Part{Part2D, Part3D}
	}
	return []Part{c.Part}
}
