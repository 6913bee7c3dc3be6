package video

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildArgs(t *testing.T) {
	e := NewFFmpegEncoder("libx264", 23, zap.NewNop())
	args := strings.Join(e.buildArgs(1280, 720, 30, "out.mp4"), " ")

	assert.Contains(t, args, "-f rawvideo -pixel_format rgba -video_size 1280x720 -framerate 30 -i -")
	assert.Contains(t, args, "-c:v libx264 -crf 23 -preset medium")
	assert.True(t, strings.HasSuffix(args, "out.mp4"))
}

func TestQualityArgsPerCodec(t *testing.T) {
	assert.Equal(t, []string{"-cq", "23"}, qualityArgs("h264_nvenc", 23))
	assert.Equal(t, []string{"-b:v", "7250k"}, qualityArgs("h264_videotoolbox", 23))
	assert.Equal(t, []string{"-crf", "18", "-preset", "medium"}, qualityArgs("libx264", 18))
}

func TestConcatListKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "inputs.txt")
	segments := []string{
		filepath.Join(dir, "pod_educational_2d", "PODEducational2D.mp4"),
		filepath.Join(dir, "pod_educational_3d", "PODEducational3D.mp4"),
	}
	require.NoError(t, writeConcatList(list, segments))

	data, err := os.ReadFile(list)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "file '"+segments[0]+"'", lines[0])
	assert.Equal(t, "file '"+segments[1]+"'", lines[1])
}

func TestXfadeGraph(t *testing.T) {
	graph, out := xfadeGraph([]float64{70.8, 49.5, 10}, "fade", 0.5, 3)
	assert.Equal(t,
		"[0:v][1:v]xfade=transition=fade:duration=0.500:offset=70.300[v1];"+
			"[v1][2:v]xfade=transition=fade:duration=0.500:offset=119.300[v2]",
		graph)
	assert.Equal(t, "[v2]", out)
}

func TestWriteRawRGBAConvertsFormats(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	gray.SetGray(1, 0, color.Gray{Y: 200})

	var buf bytes.Buffer
	require.NoError(t, writeRawRGBA(&buf, gray))
	require.Equal(t, 3*2*4, buf.Len())
	assert.Equal(t, []byte{200, 200, 200, 255}, buf.Bytes()[4:8])

	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	buf.Reset()
	require.NoError(t, writeRawRGBA(&buf, rgba))
	assert.Equal(t, 16, buf.Len())
}

func TestConcatenateRejectsEmpty(t *testing.T) {
	e := NewFFmpegEncoder("libx264", 23, nil)
	assert.Error(t, e.Concatenate(context.Background(), nil, "out.mp4", t.TempDir(), ConcatOptions{}))
}

func TestCrossfadeProbesWithConfiguredBinary(t *testing.T) {
	dir := t.TempDir()
	e := NewFFmpegEncoder("libx264", 23, zap.NewNop())
	e.Probe = filepath.Join(dir, "no-such-ffprobe")

	err := e.Concatenate(context.Background(), []string{"a.mp4", "b.mp4"}, filepath.Join(dir, "out.mp4"), dir,
		ConcatOptions{Transition: "fade", Fade: 0.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-ffprobe")
}

func TestStreamEncodesFrames(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed")
	}
	dir := t.TempDir()
	e := NewFFmpegEncoder("libx264", 30, zap.NewNop())
	ctx := context.Background()

	var parts []string
	for _, name := range []string{"a.mp4", "b.mp4"} {
		path := filepath.Join(dir, name)
		sink, err := e.Open(ctx, path, 64, 36, 10)
		require.NoError(t, err)
		frame := image.NewRGBA(image.Rect(0, 0, 64, 36))
		for i := 0; i < 10; i++ {
			require.NoError(t, sink.WriteFrame(frame))
		}
		require.NoError(t, sink.Close())
		parts = append(parts, path)
	}

	final := filepath.Join(dir, "joined.mp4")
	require.NoError(t, e.Concatenate(ctx, parts, final, dir, ConcatOptions{Transition: "none"}))
	assert.FileExists(t, final)

	if _, err := exec.LookPath("ffprobe"); err == nil {
		d, err := e.ProbeDuration(ctx, final)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, d, 0.2)
	}
}
