package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ivlev/podviz/internal/config"
	"github.com/ivlev/podviz/internal/engine"
	"github.com/ivlev/podviz/internal/system"
	"github.com/ivlev/podviz/internal/video"
)

// BuildVersion is set with -ldflags "-X main.BuildVersion=...".
var BuildVersion = "dev"

var (
	cfg     = config.Default()
	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "podviz [part] [quality] [preview]",
	Short: "Render the proper orthogonal decomposition animation",
	Long: `podviz renders an educational animation of proper orthogonal
decomposition in two parts: the 2D story (cloud, energy search, modes,
formulation) and the 3D extension with the conclusion.

Positional keywords may come in any order:
  part     2d, 3d, both (default both)
  quality  low, standard, high (default standard)
  preview  write the last frame of each part as PNG instead of video`,
	Args:          cobra.MaximumNArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		system.InitResourceLimits(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runRender,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&cfg.OutputRoot, "output", "o", cfg.OutputRoot, "media root directory")
	f.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rf := rootCmd.Flags()
	rf.StringSliceVar(&cfg.Scenes, "scenes", nil, "render only these scene ids (see `podviz scenes`)")
	rf.IntVar(&cfg.Workers, "workers", system.DefaultWorkers(), "parts rendered in parallel")
	rf.StringVar(&cfg.FontPath, "font", "", "TTF/OTF font for captions (default Go fonts)")
	rf.StringVar(&cfg.FormulaPath, "formulas", "", "formula sheet: PDF or directory of page images")
	rf.StringVar(&cfg.StoryboardPath, "storyboard", "", "storyboard YAML with timing and cloud parameters")
	rf.StringVar(&cfg.QRURL, "qr-url", cfg.QRURL, "URL encoded in the end card QR code")
	rf.BoolVar(&cfg.Concat, "concat", false, "join the 2D and 3D parts into one video")
	rf.BoolVar(&cfg.ShowStats, "stats", false, "print a performance report and append it to benchmark.log")

	addJoinFlags(rootCmd)
	addJoinFlags(concatCmd)

	rootCmd.AddCommand(scenesCmd, concatCmd, storyboardCmd)
}

// addJoinFlags registers the encoder and transition flags shared by
// rendering and joining.
func addJoinFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&cfg.VideoEncoder, "encoder", "auto", "H.264 encoder: auto, libx264, h264_nvenc, h264_videotoolbox")
	f.IntVar(&cfg.CRF, "crf", 0, "encoder quality, 0 picks a default per encoder (x264 CRF 1-51, VideoToolbox scale 1-100)")
	f.StringVar(&cfg.TransitionType, "transition", cfg.TransitionType, "xfade transition between parts: none, fade, dissolve, wipeleft, ...")
	f.Float64Var(&cfg.FadeDuration, "fade", cfg.FadeDuration, "transition length in seconds")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[-] %v\n", err)
		os.Exit(1)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runRender(cmd *cobra.Command, args []string) error {
	if err := config.ParseArgs(cfg, args); err != nil {
		return err
	}
	cfg.BuildVersion = BuildVersion

	ctx, cancel := signalContext()
	defer cancel()

	if !cfg.Quality.LastFrameOnly {
		if err := system.RequireTools("ffmpeg", "ffprobe"); err != nil {
			return err
		}
		resolveEncoder(ctx)
	}

	enc := video.NewFFmpegEncoder(cfg.VideoEncoder, cfg.CRF, logger)
	project := engine.NewProject(cfg, enc, logger)
	report, err := project.Run(ctx)
	if err != nil {
		return err
	}
	if report.Combined != "" {
		fmt.Printf("[+++] Success! Result: %s\n", report.Combined)
	} else {
		fmt.Printf("[+++] Success! %d part(s) written under %s\n", len(report.Parts), cfg.OutputRoot)
	}
	return nil
}

// resolveEncoder picks the hardware encoder when asked to and a quality
// value that suits it.
func resolveEncoder(ctx context.Context) {
	if cfg.VideoEncoder == "" || cfg.VideoEncoder == "auto" {
		cfg.VideoEncoder = system.GetBestH264Encoder(ctx)
		if cfg.VideoEncoder != "libx264" {
			fmt.Printf("[*] Hardware acceleration detected: %s\n", cfg.VideoEncoder)
		}
	}
	if cfg.CRF == 0 {
		switch cfg.VideoEncoder {
		case "h264_videotoolbox":
			cfg.CRF = 75
		case "h264_nvenc":
			cfg.CRF = 28
		default:
			cfg.CRF = 23
		}
	}
	logger.Debug("encoder selected", zap.String("encoder", cfg.VideoEncoder), zap.Int("quality", cfg.CRF))
}
