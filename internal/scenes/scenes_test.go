package scenes

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/podviz/internal/anim"
	"github.com/ivlev/podviz/internal/camera"
	"github.com/ivlev/podviz/internal/config"
	"github.com/ivlev/podviz/internal/pod"
	"github.com/ivlev/podviz/internal/storyboard"
	"github.com/ivlev/podviz/internal/typeset"
)

const testFPS = 10

// tickSink counts frames without rasterizing them.
type tickSink struct{ anim.CountingSink }

func (s *tickSink) LastFrameOnly() bool { return true }

func newBuilder(t *testing.T, board *storyboard.Storyboard, sink anim.FrameSink) *Builder {
	t.Helper()
	dc := gg.NewContext(128, 72)
	t.Cleanup(func() { dc.Close() })
	fonts, err := typeset.NewFonts("")
	require.NoError(t, err)
	t.Cleanup(func() { fonts.Close() })
	sheet, err := typeset.LoadSheet("", 150, gg.RGB(1, 1, 1))
	require.NoError(t, err)

	sc := anim.NewScene(context.Background(), dc, testFPS, gg.RGB(0, 0, 0), sink)
	b := NewBuilder(sc, fonts, sheet, board)
	b.QRURL = "https://example.org/pod"
	return b
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestSelectKeepsNarrativeOrder(t *testing.T) {
	two, err := Select(config.Part2D, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"introduction", "energy_search", "orthogonal_mode2", "math_formulation"}, ids(two))

	three, err := Select(config.Part3D, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"extension_3d", "conclusion"}, ids(three))

	picked, err := Select(config.Part2D, []string{"math_formulation", "review", "conclusion", "introduction"})
	require.NoError(t, err)
	assert.Equal(t, []string{"introduction", "math_formulation", "review"}, ids(picked))

	_, err = Select(config.Part2D, []string{"outro"})
	assert.Error(t, err)
}

func TestEachSceneMatchesItsDuration(t *testing.T) {
	for _, e := range All() {
		t.Run(e.ID, func(t *testing.T) {
			b := newBuilder(t, storyboard.Default(), &tickSink{})
			require.NoError(t, b.Run(e))
			assert.Equal(t, anim.FrameCount(e.Duration(), testFPS), b.Scene.Frames())
		})
	}
}

func TestPartRendersFrames(t *testing.T) {
	sink := &anim.CountingSink{}
	b := newBuilder(t, storyboard.Default(), sink)
	entries, err := Select(config.Part2D, []string{storyboard.Introduction})
	require.NoError(t, err)

	require.NoError(t, b.RunAll(entries))
	assert.Equal(t, 178, sink.Frames)
	assert.NotNil(t, sink.Last)
	assert.Equal(t, []string{storyboard.Introduction}, sink.Checkpoints)
}

func TestCovarianceSwapKeepsTimeline(t *testing.T) {
	run := func(cov pod.Covariance) (*Builder, []string, int) {
		board := storyboard.Default()
		board.Cloud2D.Covariance = cov
		b := newBuilder(t, board, &tickSink{})
		entries, err := Select(config.Part2D, nil)
		require.NoError(t, err)
		require.NoError(t, b.RunAll(entries))
		return b, ids(entries), b.Scene.Frames()
	}

	b1, list1, frames1 := run(pod.Covariance{{2.5, 2.0}, {2.0, 2.5}})
	b2, list2, frames2 := run(pod.Covariance{{2.5, -2.0}, {-2.0, 2.5}})

	assert.Equal(t, list1, list2)
	assert.Equal(t, frames1, frames2)

	// The locked first mode follows the cloud: near 45 degrees for positive
	// correlation and near 135 degrees for negative.
	a1 := math.Mod(b1.mode1Angle, math.Pi)
	a2 := math.Mod(b2.mode1Angle, math.Pi)
	assert.InDelta(t, math.Pi/4, a1, 0.3)
	assert.InDelta(t, 3*math.Pi/4, a2, 0.3)
}

func TestStoryboardTimingStretchesScene(t *testing.T) {
	board := storyboard.Default()
	board.Timing[storyboard.EnergySearch] = 40
	b := newBuilder(t, board, &tickSink{})
	e, ok := Lookup(storyboard.EnergySearch)
	require.True(t, ok)

	require.NoError(t, b.Run(e))
	assert.Equal(t, 400, b.Scene.Frames())
	assert.Equal(t, 1.0, b.Scene.TimeScale)
}

func TestExtension3DRotatesCamera(t *testing.T) {
	b := newBuilder(t, storyboard.Default(), &tickSink{})
	e, _ := Lookup(storyboard.Extension3D)
	require.NoError(t, b.Run(e))

	assert.InDelta(t, camera.Deg(30)+0.15*5, b.Camera.Theta, 1e-9)
	assert.Zero(t, b.Camera.AmbientRate)
	assert.Empty(t, b.Scene.Stage.Layers())
}

func TestConclusionWithoutURLKeepsLength(t *testing.T) {
	b := newBuilder(t, storyboard.Default(), &tickSink{})
	b.QRURL = ""
	e, _ := Lookup(storyboard.Conclusion)
	require.NoError(t, b.Run(e))
	assert.Equal(t, 210, b.Scene.Frames())
}

func TestPreviewWritesStills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "PODEducational3D.png")
	sink := anim.NewPNGSink(path)
	b := newBuilder(t, storyboard.Default(), sink)
	entries, err := Select(config.Part3D, nil)
	require.NoError(t, err)

	require.NoError(t, b.RunAll(entries))
	require.NoError(t, sink.Close())
	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(filepath.Dir(path), "PODEducational3D_extension_3d.png"))
	assert.FileExists(t, filepath.Join(filepath.Dir(path), "PODEducational3D_end_card.png"))
}

func TestSettleAngle(t *testing.T) {
	assert.InDelta(t, math.Pi/4+2*math.Pi, settleAngle(math.Pi/4, 2*math.Pi), 1e-9)
	assert.InDelta(t, 3*math.Pi/4+math.Pi, settleAngle(3*math.Pi/4, 2*math.Pi), 1e-9)
}

func TestPaletteApply(t *testing.T) {
	p := DefaultPalette()
	require.NoError(t, p.Apply(map[string]string{"Primary": "#00FF00"}))
	assert.Equal(t, gg.Hex("#00FF00"), p.Primary)
	assert.Error(t, p.Apply(map[string]string{"mauve": "#000"}))
}

func TestQRImage(t *testing.T) {
	img, err := qrImage("https://example.org/pod", gg.RGB(1, 1, 1), gg.RGB(0, 0, 0), 256)
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestEnergyShare(t *testing.T) {
	c := &pod.Cloud{Dim: 2, Points: [][]float64{{1, 0}, {-2, 0}}}
	assert.InDelta(t, 1, energyShare(c, 0), 1e-6)
	assert.InDelta(t, 0, energyShare(c, math.Pi/2), 1e-6)
}
