package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuality(t *testing.T) {
	tests := []struct {
		in            string
		width, height int
		fps           int
		lastFrame     bool
	}{
		{"low", 854, 480, 15, false},
		{"standard", 1280, 720, 30, false},
		{"medium", 1280, 720, 30, false},
		{"HIGH", 1920, 1080, 60, false},
		{"preview", 1280, 720, 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			q, err := ParseQuality(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.width, q.Width)
			assert.Equal(t, tt.height, q.Height)
			assert.Equal(t, tt.fps, q.FPS)
			assert.Equal(t, tt.lastFrame, q.LastFrameOnly)
		})
	}

	_, err := ParseQuality("ultra")
	assert.Error(t, err)
}

func TestParseArgs(t *testing.T) {
	cfg := Default()
	require.NoError(t, ParseArgs(cfg, []string{"3d", "high"}))
	assert.Equal(t, Part3D, cfg.Part)
	assert.Equal(t, High, cfg.Quality)

	cfg = Default()
	require.NoError(t, ParseArgs(cfg, []string{"low", "2d", "preview"}))
	assert.Equal(t, Part2D, cfg.Part)
	assert.True(t, cfg.Quality.LastFrameOnly)
	assert.Equal(t, 480, cfg.Quality.Height)

	cfg = Default()
	require.NoError(t, ParseArgs(cfg, []string{"preview"}))
	assert.Equal(t, Standard.WithPreview(), cfg.Quality)
	assert.Equal(t, "720p30", cfg.Quality.Dir())
	assert.Equal(t, PartBoth, cfg.Part)

	cfg = Default()
	require.NoError(t, ParseArgs(cfg, []string{"preview", "high"}))
	assert.Equal(t, High.WithPreview(), cfg.Quality)

	cfg = Default()
	assert.Error(t, ParseArgs(cfg, []string{"4d"}))
}

func TestOutputPath(t *testing.T) {
	cfg := Default()
	cfg.OutputRoot = "out"

	assert.Equal(t, filepath.Join("out", "videos", "pod_educational_2d", "720p30", "PODEducational2D.mp4"), cfg.OutputPath(Part2D))
	assert.Equal(t, filepath.Join("out", "videos", "pod_educational_3d", "720p30", "PODEducational3D.mp4"), cfg.OutputPath(Part3D))
	assert.Equal(t, filepath.Join("out", "videos", "pod_educational_720p30.mp4"), cfg.CombinedPath())

	cfg.Quality = Preview
	assert.Equal(t, filepath.Join("out", "videos", "pod_educational_2d", "720p30", "PODEducational2D.png"), cfg.OutputPath(Part2D))
}

func TestPartsOrder(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []Part{Part2D, Part3D}, cfg.Parts())

	cfg.Part = Part3D
	assert.Equal(t, []Part{Part3D}, cfg.Parts())
}
