// Package video drives ffmpeg: frames are streamed to an encoder process
// over stdin, finished parts are joined with the concat demuxer or an xfade
// filter graph.
package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/ivlev/podviz/internal/anim"
	"github.com/ivlev/podviz/internal/system"
)

// Encoder turns frame streams into video files.
type Encoder interface {
	Open(ctx context.Context, path string, w, h, fps int) (anim.FrameSink, error)
	Concatenate(ctx context.Context, segments []string, finalPath, tmpDir string, opts ConcatOptions) error
}

type FFmpegEncoder struct {
	Binary  string // ffmpeg executable, "ffmpeg" when empty
	Probe   string // ffprobe executable, "ffprobe" when empty
	Codec   string
	Quality int
	Logger  *zap.Logger
}

func NewFFmpegEncoder(codec string, quality int, logger *zap.Logger) *FFmpegEncoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FFmpegEncoder{Binary: "ffmpeg", Probe: "ffprobe", Codec: codec, Quality: quality, Logger: logger}
}

func (e *FFmpegEncoder) bin() string {
	if e.Binary == "" {
		return "ffmpeg"
	}
	return e.Binary
}

func (e *FFmpegEncoder) probeBin() string {
	if e.Probe == "" {
		return "ffprobe"
	}
	return e.Probe
}

func (e *FFmpegEncoder) log() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Stream is an open ffmpeg process consuming raw RGBA frames.
type Stream struct {
	path   string
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	frames int
	logger *zap.Logger
}

// Open starts ffmpeg writing to path and returns the sink feeding it.
func (e *FFmpegEncoder) Open(ctx context.Context, path string, w, h, fps int) (anim.FrameSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	args := e.buildArgs(w, h, fps, path)
	e.log().Debug("starting encoder", zap.String("path", path), zap.Strings("args", args))

	s := &Stream{path: path, logger: e.log()}
	s.cmd = exec.CommandContext(ctx, e.bin(), args...)
	s.cmd.Stderr = &s.stderr

	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	s.stdin = stdin
	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return s, nil
}

func (s *Stream) WriteFrame(img image.Image) error {
	if err := writeRawRGBA(s.stdin, img); err != nil {
		return fmt.Errorf("write frame %d to %s: %w", s.frames, s.path, err)
	}
	s.frames++
	return nil
}

// Close flushes stdin and waits for ffmpeg to finish the file.
func (s *Stream) Close() error {
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w, output: %s", err, tail(s.stderr.String(), 2000))
	}
	s.logger.Debug("encoder finished", zap.String("path", s.path), zap.Int("frames", s.frames))
	return nil
}

// Frames is the number of frames written so far.
func (s *Stream) Frames() int { return s.frames }

func (e *FFmpegEncoder) buildArgs(w, h, fps int, path string) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", w, h),
		"-framerate", strconv.Itoa(fps),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", e.Codec,
	}
	args = append(args, qualityArgs(e.Codec, e.Quality)...)
	return append(args, "-movflags", "+faststart", path)
}

func qualityArgs(codec string, quality int) []string {
	switch codec {
	case "h264_videotoolbox":
		// VideoToolbox has no CRF; map the quality knob onto a bitrate.
		return []string{"-b:v", fmt.Sprintf("%dk", (52-quality)*250)}
	case "h264_nvenc":
		return []string{"-cq", strconv.Itoa(quality)}
	default:
		return []string{"-crf", strconv.Itoa(quality), "-preset", "medium"}
	}
}

// writeRawRGBA writes the pixels of img tightly packed. Frames that are not
// already packed RGBA are converted through a pooled buffer.
func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == bounds.Dx()*4 && rgba.Rect.Min == (image.Point{}) {
		_, err := w.Write(rgba.Pix[:bounds.Dy()*rgba.Stride])
		return err
	}

	buf := system.GetImage(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	defer system.PutImage(buf)
	draw.Draw(buf, buf.Bounds(), img, bounds.Min, draw.Src)
	_, err := w.Write(buf.Pix)
	return err
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
