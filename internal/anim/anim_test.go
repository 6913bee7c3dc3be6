package anim

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene(t *testing.T, fps int, sink FrameSink) *Scene {
	t.Helper()
	dc := gg.NewContext(64, 36)
	t.Cleanup(func() { dc.Close() })
	return NewScene(context.Background(), dc, fps, gg.RGB(0, 0, 0), sink)
}

func TestFrameCount(t *testing.T) {
	assert.Equal(t, 0, FrameCount(0, 30))
	assert.Equal(t, 1, FrameCount(0.001, 30))
	assert.Equal(t, 45, FrameCount(1.5, 30))
	assert.Equal(t, 90, FrameCount(1.5, 60))
}

func TestPlayAndWaitEmitFrames(t *testing.T) {
	sink := &CountingSink{}
	sc := newTestScene(t, 30, sink)

	dot := NewLayer("dot", gg.RGB(1, 1, 1), Dot(0, 0, 0.5))
	require.NoError(t, sc.Play(1, FadeIn(dot)))
	assert.Equal(t, 30, sink.Frames)
	assert.InDelta(t, 1.0, dot.Opacity, 1e-9)
	assert.True(t, sc.Stage.Has(dot))

	require.NoError(t, sc.Wait(0.5))
	assert.Equal(t, 45, sink.Frames)
	assert.InDelta(t, 1.5, sc.Elapsed(), 1e-9)

	require.NoError(t, sc.Play(0.5, FadeOut(dot)))
	assert.False(t, sc.Stage.Has(dot))
	assert.Equal(t, 60, sc.Frames())
}

func TestTimeScaleStretchesTimeline(t *testing.T) {
	sink := &CountingSink{}
	sc := newTestScene(t, 10, sink)
	sc.TimeScale = 2

	require.NoError(t, sc.Wait(1))
	assert.Equal(t, 20, sink.Frames)
}

func TestUpdatersRunEachFrame(t *testing.T) {
	sc := newTestScene(t, 10, &CountingSink{})
	calls := 0
	id := sc.AddUpdater(func(_, _ float64) { calls++ })

	require.NoError(t, sc.Wait(1))
	assert.Equal(t, 10, calls)

	sc.RemoveUpdater(id)
	require.NoError(t, sc.Wait(1))
	assert.Equal(t, 10, calls)
}

func TestValueTrackerWithLinearRate(t *testing.T) {
	sc := newTestScene(t, 4, &CountingSink{})
	v := &ValueTracker{Value: 1}

	var seen []float64
	sc.AddUpdater(func(_, _ float64) { seen = append(seen, v.Value) })
	require.NoError(t, sc.PlayRate(1, Linear, v.To(5)))

	assert.Equal(t, []float64{2, 3, 4, 5}, seen)
}

func TestLaggedStaggers(t *testing.T) {
	a := NewLayer("a", gg.RGB(1, 1, 1), nil)
	b := NewLayer("b", gg.RGB(1, 1, 1), nil)
	lag := Lagged(0.5, FadeIn(a), FadeIn(b))

	stage := NewStage(gg.RGB(0, 0, 0))
	lag.Begin(stage)
	lag.Apply(1.0 / 3)
	assert.InDelta(t, 0.5, a.Opacity, 1e-9)
	assert.InDelta(t, 0.0, b.Opacity, 1e-9)

	lag.Apply(1)
	assert.InDelta(t, 1.0, b.Opacity, 1e-9)
}

func TestRateFunctions(t *testing.T) {
	for name, rate := range map[string]RateFunc{"linear": Linear, "smooth": Smooth, "cubic": EaseInOutCubic} {
		assert.InDelta(t, 0, rate(0), 1e-9, name)
		assert.InDelta(t, 1, rate(1), 1e-9, name)
		assert.InDelta(t, 0.5, rate(0.5), 1e-9, name)
	}
	assert.InDelta(t, 0, ThereAndBack(1), 1e-9)
	assert.InDelta(t, 1, ThereAndBack(0.5), 1e-9)
}

func TestPNGSinkSkipsIntermediateFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "scene.png")
	sink := NewPNGSink(path)
	sc := newTestScene(t, 30, sink)

	dot := NewLayer("dot", gg.RGB(1, 0, 0), Dot(0, 0, 1))
	require.NoError(t, sc.Play(1, FadeIn(dot)))
	require.NoError(t, sc.Checkpoint("dot"))
	assert.Nil(t, sink.last)

	require.NoError(t, sc.Flush())
	require.NoError(t, sink.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())

	_, err = os.Stat(filepath.Join(filepath.Dir(path), "scene_dot.png"))
	assert.NoError(t, err)
}

func TestCanceledContextStopsPlayback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dc := gg.NewContext(16, 9)
	defer dc.Close()
	sc := NewScene(ctx, dc, 30, gg.RGB(0, 0, 0), &CountingSink{})
	assert.ErrorIs(t, sc.Wait(1), context.Canceled)
}

func TestViewport(t *testing.T) {
	vp := Viewport{Width: 1280, Height: 720}
	assert.InDelta(t, 90, vp.Unit(), 1e-9)
	x, y := vp.P(0, 0)
	assert.Equal(t, 640.0, x)
	assert.Equal(t, 360.0, y)
	x, y = vp.P(1, 1)
	assert.Equal(t, 730.0, x)
	assert.Equal(t, 270.0, y)
}
