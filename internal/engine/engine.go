// Package engine runs the pipeline: parameters, scene builders, frame sink,
// output file per part, then the optional concatenation.
package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gogpu/gg"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/podviz/internal/anim"
	"github.com/ivlev/podviz/internal/config"
	"github.com/ivlev/podviz/internal/scenes"
	"github.com/ivlev/podviz/internal/storyboard"
	"github.com/ivlev/podviz/internal/system"
	"github.com/ivlev/podviz/internal/typeset"
	"github.com/ivlev/podviz/internal/video"
)

// formulaDPI is the rasterization density of formula sheet pages.
const formulaDPI = 200

type Project struct {
	Config  *config.Config
	Encoder video.Encoder
	Logger  *zap.Logger
	// Out receives the console progress lines.
	Out io.Writer
	// BenchmarkLog is appended to when stats are enabled.
	BenchmarkLog string

	mu sync.Mutex
}

// printf writes a console line; parts report from their own goroutines.
func (p *Project) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.Out, format, args...)
}

func NewProject(cfg *config.Config, enc video.Encoder, logger *zap.Logger) *Project {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Project{
		Config:       cfg,
		Encoder:      enc,
		Logger:       logger,
		Out:          os.Stdout,
		BenchmarkLog: "benchmark.log",
	}
}

// PartResult describes one rendered part.
type PartResult struct {
	Part     config.Part
	Path     string
	Scenes   []string
	Frames   int
	Duration time.Duration
}

// Report is what a run produced.
type Report struct {
	Parts    []PartResult
	Combined string
	Render   time.Duration
	Concat   time.Duration
	Total    time.Duration
}

type job struct {
	part    config.Part
	entries []scenes.Entry
}

// Run renders every selected part and, when asked, joins them.
func (p *Project) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	cfg := p.Config
	q := cfg.Quality

	board, err := p.loadBoard()
	if err != nil {
		return nil, err
	}
	palette := scenes.DefaultPalette()
	if err := palette.Apply(board.Palette); err != nil {
		return nil, fmt.Errorf("storyboard palette: %w", err)
	}

	var jobs []job
	for _, part := range cfg.Parts() {
		entries, err := scenes.Select(part, cfg.Scenes)
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			jobs = append(jobs, job{part: part, entries: entries})
		}
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no scenes selected for part %s", cfg.Part)
	}

	workers := max(1, min(cfg.Workers, len(jobs)))
	if err := system.CheckMemory(workers, q.Width, q.Height); err != nil {
		return nil, err
	}

	sheet, err := typeset.LoadSheet(cfg.FormulaPath, formulaDPI, palette.Text)
	if err != nil {
		return nil, err
	}

	p.printf("--- [PROJECT: POD ANIMATION] ---\n")
	p.printf("[*] Parts: %d | Quality: %s\n", len(jobs), q)
	if sheet.Len() > 0 {
		p.printf("[*] Formula sheet: %s (%d formulas)\n", cfg.FormulaPath, sheet.Len())
	}
	p.printf("--------------------------------\n")

	results := make([]PartResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, j := range jobs {
		g.Go(func() error {
			res, err := p.renderPart(gctx, j, board, sheet, palette)
			if err != nil {
				return fmt.Errorf("part %s: %w", j.part, err)
			}
			results[i] = res
			p.printf("[>] Ready: %s (%d frames, %.1fs) -> %s\n", j.part, res.Frames, res.Duration.Seconds(), res.Path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	report := &Report{Parts: results, Render: time.Since(start)}

	if cfg.Concat && !q.LastFrameOnly && len(results) > 1 {
		concatStart := time.Now()
		combined, err := p.concatenate(ctx, results)
		if err != nil {
			return nil, err
		}
		report.Combined = combined
		report.Concat = time.Since(concatStart)
	}
	report.Total = time.Since(start)

	if cfg.ShowStats {
		p.writeStats(report)
	}
	return report, nil
}

func (p *Project) loadBoard() (*storyboard.Storyboard, error) {
	if p.Config.StoryboardPath == "" {
		return storyboard.Default(), nil
	}
	board, err := storyboard.Read(p.Config.StoryboardPath)
	if err != nil {
		return nil, fmt.Errorf("read storyboard: %w", err)
	}
	p.Logger.Info("using storyboard", zap.String("path", p.Config.StoryboardPath))
	return board, nil
}

// renderPart draws one part into its own output file. Fonts are per part
// so concurrent parts share no mutable state.
func (p *Project) renderPart(ctx context.Context, j job, board *storyboard.Storyboard, sheet *typeset.Sheet, palette scenes.Palette) (PartResult, error) {
	start := time.Now()
	cfg := p.Config
	q := cfg.Quality
	path := cfg.OutputPath(j.part)
	res := PartResult{Part: j.part, Path: path}
	for _, e := range j.entries {
		res.Scenes = append(res.Scenes, e.ID)
	}

	fonts, err := typeset.NewFonts(cfg.FontPath)
	if err != nil {
		return res, err
	}
	defer fonts.Close()

	var sink anim.FrameSink
	if q.LastFrameOnly {
		sink = anim.NewPNGSink(path)
	} else {
		if sink, err = p.Encoder.Open(ctx, path, q.Width, q.Height, q.FPS); err != nil {
			return res, err
		}
	}

	dc := gg.NewContext(q.Width, q.Height)
	defer dc.Close()
	sc := anim.NewScene(ctx, dc, q.FPS, palette.Background, sink)

	b := scenes.NewBuilder(sc, fonts, sheet, board)
	b.Palette = palette
	b.QRURL = cfg.QRURL

	p.Logger.Info("rendering part", zap.String("part", string(j.part)), zap.Strings("scenes", res.Scenes))
	runErr := b.RunAll(j.entries)
	closeErr := sink.Close()
	if runErr != nil {
		return res, runErr
	}
	if closeErr != nil {
		return res, closeErr
	}

	res.Frames = sc.Frames()
	res.Duration = time.Since(start)
	return res, nil
}

// concatenate joins the parts in render order, 2D before 3D.
func (p *Project) concatenate(ctx context.Context, parts []PartResult) (string, error) {
	tmpDir, err := os.MkdirTemp("", "podviz_")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	segments := make([]string, len(parts))
	durations := make([]float64, len(parts))
	for i, r := range parts {
		segments[i] = r.Path
		durations[i] = float64(r.Frames) / float64(p.Config.Quality.FPS)
	}

	final := p.Config.CombinedPath()
	p.printf("[*] Joining parts into the final video...\n")
	err = p.Encoder.Concatenate(ctx, segments, final, tmpDir, video.ConcatOptions{
		Transition: p.Config.TransitionType,
		Fade:       p.Config.FadeDuration,
		Durations:  durations,
	})
	if err != nil {
		return "", fmt.Errorf("concatenate parts: %w", err)
	}
	p.printf("[+++] Done: %s\n", final)
	return final, nil
}

func (p *Project) writeStats(r *Report) {
	frames := 0
	for _, part := range r.Parts {
		frames += part.Frames
	}
	fps := float64(frames) / r.Total.Seconds()

	p.printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering + Encoding: %.2fs\n"+
			"Concatenation: %.2fs\n"+
			"Frames: %d\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.Config.BuildVersion, r.Total.Seconds(), r.Render.Seconds(), r.Concat.Seconds(), frames, fps)

	entry := fmt.Sprintf("[%s] Build: %s | Part: %s | Quality: %s | Frames: %d | Total: %.2fs | Render: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		p.Config.Part,
		p.Config.Quality.Name,
		frames,
		r.Total.Seconds(),
		r.Render.Seconds(),
		fps,
	)
	if err := appendLine(p.BenchmarkLog, entry); err != nil {
		p.Logger.Warn("cannot write benchmark log", zap.String("path", p.BenchmarkLog), zap.Error(err))
	}
}

func appendLine(path, line string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
