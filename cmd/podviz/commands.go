package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ivlev/podviz/internal/config"
	"github.com/ivlev/podviz/internal/scenes"
	"github.com/ivlev/podviz/internal/storyboard"
	"github.com/ivlev/podviz/internal/system"
	"github.com/ivlev/podviz/internal/video"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List the scenes in narrative order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, e := range scenes.All() {
			note := ""
			if e.Standalone {
				note = "  (on request)"
			}
			fmt.Fprintf(out, "%-18s %-3s %6.1fs  %s%s\n", e.ID, e.Part, e.Duration(), e.Title, note)
		}
		return nil
	},
}

var concatCmd = &cobra.Command{
	Use:   "concat [quality]",
	Short: "Join already rendered 2D and 3D parts into one video",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			q, err := config.ParseQuality(args[0])
			if err != nil {
				return err
			}
			cfg.Quality = q
		}
		if cfg.Quality.LastFrameOnly {
			return fmt.Errorf("preview renders are stills and cannot be joined")
		}
		if err := system.RequireTools("ffmpeg", "ffprobe"); err != nil {
			return err
		}

		var segments []string
		for _, p := range []config.Part{config.Part2D, config.Part3D} {
			path := cfg.OutputPath(p)
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("part %s not rendered at %s quality: %w", p, cfg.Quality.Name, err)
			}
			segments = append(segments, path)
		}

		ctx, cancel := signalContext()
		defer cancel()

		tmpDir, err := os.MkdirTemp("", "podviz_")
		if err != nil {
			return err
		}
		defer os.RemoveAll(tmpDir)

		resolveEncoder(ctx)
		enc := video.NewFFmpegEncoder(cfg.VideoEncoder, cfg.CRF, logger)
		final := cfg.CombinedPath()
		err = enc.Concatenate(ctx, segments, final, tmpDir, video.ConcatOptions{
			Transition: cfg.TransitionType,
			Fade:       cfg.FadeDuration,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[+++] Done: %s\n", final)
		return nil
	},
}

var storyboardCmd = &cobra.Command{
	Use:   "storyboard",
	Short: "Create and check storyboard files",
}

var storyboardDir = "storyboards"

var storyboardInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default storyboard to a new YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := storyboard.GeneratePath(storyboardDir)
		if len(args) == 1 {
			path = args[0]
		}
		if err := storyboard.Write(storyboard.Default(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[+] Storyboard written: %s\n", path)
		return nil
	},
}

var storyboardLintCmd = &cobra.Command{
	Use:   "lint [path]",
	Short: "Validate a storyboard (latest in the storyboard directory by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			latest, err := storyboard.FindLatest(storyboardDir)
			if err != nil {
				return err
			}
			path = latest
		}
		sb, err := storyboard.Read(path)
		if err != nil {
			return err
		}
		if err := storyboard.Lint(sb); err != nil {
			return fmt.Errorf("%s:\n%w", filepath.Base(path), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[+] %s is valid\n", path)
		return nil
	},
}

func init() {
	storyboardCmd.PersistentFlags().StringVar(&storyboardDir, "dir", storyboardDir, "storyboard directory")
	storyboardCmd.AddCommand(storyboardInitCmd, storyboardLintCmd)
}
