package video

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ConcatOptions controls how parts are joined.
type ConcatOptions struct {
	Transition string  // xfade transition name, "none" or empty for a hard cut
	Fade       float64 // transition length in seconds
	// Durations of the segments; probed with ffprobe when nil.
	Durations []float64
}

func (o ConcatOptions) crossfade() bool {
	return o.Transition != "" && o.Transition != "none"
}

// Concatenate joins segments into finalPath in the given order. Hard cuts
// use the concat demuxer without re-encoding; transitions re-encode through
// an xfade chain.
func (e *FFmpegEncoder) Concatenate(ctx context.Context, segments []string, finalPath, tmpDir string, opts ConcatOptions) error {
	if len(segments) == 0 {
		return fmt.Errorf("nothing to concatenate")
	}
	if err := os.MkdirAll(filepath.Dir(finalPath), 0755); err != nil {
		return err
	}

	if !opts.crossfade() || len(segments) == 1 {
		listPath := filepath.Join(tmpDir, "inputs.txt")
		if err := writeConcatList(listPath, segments); err != nil {
			return err
		}
		defer os.Remove(listPath)

		args := []string{"-y", "-f", "concat", "-safe", "0", "-i", listPath, "-c", "copy", finalPath}
		e.log().Debug("concatenating", zap.Strings("segments", segments), zap.String("output", finalPath))
		cmd := exec.CommandContext(ctx, e.bin(), args...)
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("ffmpeg concat error: %w, output: %s", err, tail(string(out), 2000))
		}
		return nil
	}

	durations := opts.Durations
	if durations == nil {
		durations = make([]float64, len(segments))
		for i, p := range segments {
			d, err := e.ProbeDuration(ctx, p)
			if err != nil {
				return fmt.Errorf("probe %s: %w", p, err)
			}
			durations[i] = d
		}
	}
	if len(durations) < len(segments)-1 {
		return fmt.Errorf("need %d segment durations, got %d", len(segments)-1, len(durations))
	}

	args := []string{"-y"}
	for _, p := range segments {
		args = append(args, "-i", p)
	}
	graph, out := xfadeGraph(durations, opts.Transition, opts.Fade, len(segments))
	args = append(args, "-filter_complex", graph, "-map", out, "-c:v", e.Codec, "-pix_fmt", "yuv420p")
	args = append(args, qualityArgs(e.Codec, e.Quality)...)
	args = append(args, finalPath)

	e.log().Debug("crossfading", zap.Strings("segments", segments), zap.String("graph", graph))
	cmd := exec.CommandContext(ctx, e.bin(), args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg xfade error: %w, output: %s", err, tail(string(out), 2000))
	}
	return nil
}

// writeConcatList writes the concat demuxer input file, one absolute path
// per line in segment order.
func writeConcatList(path string, segments []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var b strings.Builder
	for _, p := range segments {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// xfadeGraph chains n inputs with xfade. Each transition starts fade
// seconds before the running end of the joined video.
func xfadeGraph(durations []float64, transition string, fade float64, n int) (graph, out string) {
	var parts []string
	last := "[0:v]"
	offset := 0.0
	for i := 1; i < n; i++ {
		offset += durations[i-1] - fade
		name := fmt.Sprintf("[v%d]", i)
		parts = append(parts, fmt.Sprintf("%s[%d:v]xfade=transition=%s:duration=%s:offset=%s%s",
			last, i, transition, ftoa(fade), ftoa(offset), name))
		last = name
	}
	return strings.Join(parts, ";"), last
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}

// ProbeDuration asks ffprobe for the container duration in seconds.
func (e *FFmpegEncoder) ProbeDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, e.probeBin(), "-v", "error", "-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w: %s", err, strings.TrimSpace(string(out)))
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(string(out)), err)
	}
	return d, nil
}
