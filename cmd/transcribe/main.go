package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/traart/transcribe/internal/asr"
	"github.com/traart/transcribe/internal/audio"
	"github.com/traart/transcribe/internal/config"
	"github.com/traart/transcribe/internal/diarize"
	"github.com/traart/transcribe/internal/format"
	"github.com/traart/transcribe/internal/models"
	"github.com/traart/transcribe/internal/pipeline"
	"github.com/traart/transcribe/internal/progress"
	"github.com/traart/transcribe/internal/tui"
	"github.com/traart/transcribe/internal/watch"
)

const version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = newRootCmd()

func init() {
	rootCmd.AddCommand(
		watchCmd(),
		modelCmd(),
		configureCmd(),
		formatsCmd(),
		versionCmd(),
	)
}

func newRootCmd() *cobra.Command {
	var (
		diarizeFlag   bool
		speakers      int
		formatName    string
		chunkDuration float64
		chunkOverlap  float64
		mergeGap      float64
		minSegment    float64
		expansionPad  float64
	)

	cmd := &cobra.Command{
		Use:           "transcribe <input> <output>",
		Short:         "Transcribe audio/video files with optional speaker diarization",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := progress.NewReporter(os.Stderr)
			err := runTranscribe(cmd, args[0], args[1])
			if err != nil {
				rep.Error(err.Error())
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&diarizeFlag, "diarize", false, "enable speaker diarization")
	cmd.Flags().IntVar(&speakers, "speakers", 0, "expected number of speakers (0 = auto-detect)")
	cmd.Flags().StringVar(&formatName, "format", "md", "output format: "+strings.Join(format.Formats(), "|"))
	cmd.Flags().Float64Var(&chunkDuration, "chunk-duration", 20, "chunk duration in seconds")
	cmd.Flags().Float64Var(&chunkOverlap, "chunk-overlap", 4, "chunk overlap in seconds")
	cmd.Flags().Float64Var(&mergeGap, "merge-gap", 0.8, "max gap to merge same-speaker segments")
	cmd.Flags().Float64Var(&minSegment, "min-segment", 0.2, "min diarization segment duration in seconds")
	cmd.Flags().Float64Var(&expansionPad, "expansion-pad", 3, "retry padding for empty segments in seconds")

	return cmd
}

func runTranscribe(cmd *cobra.Command, input, output string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("chunk-duration") {
		cfg.Chunking.Duration, _ = flags.GetFloat64("chunk-duration")
	}
	if flags.Changed("chunk-overlap") {
		cfg.Chunking.Overlap, _ = flags.GetFloat64("chunk-overlap")
	}
	if flags.Changed("merge-gap") {
		cfg.Chunking.MergeGap, _ = flags.GetFloat64("merge-gap")
	}
	if flags.Changed("min-segment") {
		cfg.Chunking.MinSegment, _ = flags.GetFloat64("min-segment")
	}
	if flags.Changed("expansion-pad") {
		cfg.Chunking.ExpansionPad, _ = flags.GetFloat64("expansion-pad")
	}
	if flags.Changed("speakers") {
		cfg.Diarization.Speakers, _ = flags.GetInt("speakers")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	formatName, _ := flags.GetString("format")
	if !format.IsValid(formatName) {
		return fmt.Errorf("unknown output format: %s (must be %s)", formatName, strings.Join(format.Formats(), ", "))
	}
	diarizeFlag, _ := flags.GetBool("diarize")

	ffmpegPath := cfg.FFmpeg.Path
	if ffmpegPath == "" {
		ffmpegPath, err = audio.FindFFmpeg()
		if err != nil {
			return err
		}
	}

	engineCfg := asr.Config{
		Provider: cfg.Engine.Provider,
		APIKey:   cfg.ResolveAPIKey(),
		Model:    cfg.Engine.Model,
		Language: cfg.Engine.Language,
		Threads:  cfg.Engine.Threads,
	}
	if cfg.Engine.Provider == "whisper-cpp" {
		modelPath, err := models.InstalledPath(cfg.Engine.Model)
		if err != nil {
			return err
		}
		engineCfg.ModelPath = modelPath
	}
	engine, err := asr.New(engineCfg)
	if err != nil {
		return err
	}

	diarizer := diarize.NewCommand(
		cfg.Diarization.Command,
		cfg.Diarization.ModelsDir,
		cfg.Chunking.MergeGap,
		cfg.Chunking.MinSegment,
	)

	opts := pipeline.Options{
		Input:         input,
		Output:        output,
		Format:        formatName,
		Diarize:       diarizeFlag,
		Speakers:      cfg.Diarization.Speakers,
		ChunkDuration: cfg.Chunking.Duration,
		ChunkOverlap:  cfg.Chunking.Overlap,
		MergeGap:      cfg.Chunking.MergeGap,
		MinSegment:    cfg.Chunking.MinSegment,
		ExpansionPad:  cfg.Chunking.ExpansionPad,
		FFmpegPath:    ffmpegPath,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep := progress.NewReporter(os.Stderr)
	return pipeline.Run(ctx, opts, engine, diarizer, rep)
}

func watchCmd() *cobra.Command {
	var (
		allDisk    bool
		extensions string
		debounce   float64
	)

	cmd := &cobra.Command{
		Use:   "watch [folders...]",
		Short: "Watch directories for new audio/video files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			folders := append([]string{}, cfg.Watch.Folders...)
			folders = append(folders, args...)
			if allDisk {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				folders = append(folders, home)
			}
			if len(folders) == 0 {
				return fmt.Errorf("no folders specified: pass folders as arguments or use --all-disk")
			}

			exts := cfg.Watch.Extensions
			if extensions != "" {
				exts = strings.Split(extensions, ",")
			}
			wait := cfg.Watch.Debounce
			if cmd.Flags().Changed("debounce") {
				wait = time.Duration(debounce * float64(time.Second))
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return watch.New(os.Stdout, exts, wait).Run(ctx, folders)
		},
	}

	cmd.Flags().BoolVar(&allDisk, "all-disk", false, "watch the whole home directory tree")
	cmd.Flags().StringVar(&extensions, "extensions", "", "comma-separated extensions to watch (e.g. .m4a,.mp4)")
	cmd.Flags().Float64Var(&debounce, "debounce", 5, "seconds to wait after the last write before reporting")

	return cmd
}

func modelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage local recognition models",
	}
	cmd.AddCommand(modelListCmd(), modelDownloadCmd(), modelRemoveCmd())
	return cmd
}

func modelListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available whisper.cpp models",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, m := range models.List() {
				status := ""
				if models.IsInstalled(m.ID) {
					status = " [installed]"
				}
				fmt.Printf("%-12s %-16s %s%s\n", m.ID, m.Name, m.Size, status)
			}
			return nil
		},
	}
}

func modelDownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download <model>",
		Short: "Download a whisper.cpp model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			id := args[0]
			lastPercent := -1
			err := models.Download(ctx, id, func(downloaded, total int64) {
				if total <= 0 {
					return
				}
				percent := int(downloaded * 100 / total)
				if percent != lastPercent {
					lastPercent = percent
					fmt.Printf("\rdownloading %s: %d%%", id, percent)
				}
			})
			fmt.Println()
			if err != nil {
				return err
			}
			fmt.Printf("model %s installed at %s\n", id, models.Path(id))
			return nil
		},
	}
}

func modelRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <model>",
		Short: "Remove a downloaded model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := models.Remove(args[0]); err != nil {
				return err
			}
			fmt.Printf("model %s removed\n", args[0])
			return nil
		},
	}
}

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			result, err := tui.Configure(cfg)
			if err != nil {
				return fmt.Errorf("configuration wizard: %w", err)
			}
			if result.Cancelled {
				fmt.Println("Configuration cancelled.")
				return nil
			}

			if err := config.Save(result.Config); err != nil {
				return err
			}
			path, _ := config.Path()
			fmt.Printf("Configuration saved to %s\n", path)
			return nil
		},
	}
}

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported output formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range format.Formats() {
				fmt.Println(f)
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version)
			return nil
		},
	}
}
