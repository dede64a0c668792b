package tui

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/muesli/termenv"

	"github.com/traart/transcribe/internal/config"
	"github.com/traart/transcribe/internal/models"
)

// ConfigureResult carries the wizard outcome back to the CLI.
type ConfigureResult struct {
	Config    *config.Config
	Cancelled bool
}

// Configure runs the interactive configuration wizard over the given
// config and returns the edited copy. The caller persists it.
func Configure(existing *config.Config) (*ConfigureResult, error) {
	cfg := *existing

	clearScreen()
	fmt.Println(StyleHeader.Render("traart transcription engine"))
	fmt.Println()

	if err := editEngine(&cfg); err != nil {
		return cancelledOn(err)
	}
	if err := editDiarization(&cfg); err != nil {
		return cancelledOn(err)
	}

	advanced := false
	confirm := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Advanced chunking settings").
			Description("Tune chunk windowing and segment merging").
			Value(&advanced),
	)).WithTheme(getTheme())
	if err := confirm.Run(); err != nil {
		return cancelledOn(err)
	}
	if advanced {
		if err := editChunking(&cfg); err != nil {
			return cancelledOn(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		fmt.Println(StyleError.Render("Invalid configuration: " + err.Error()))
		return &ConfigureResult{Cancelled: true}, nil
	}

	fmt.Println(StyleSuccess.Render("Configuration ready."))
	return &ConfigureResult{Config: &cfg}, nil
}

func editEngine(cfg *config.Config) error {
	provider := cfg.Engine.Provider
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Recognition Engine").
			Description("Choose which speech-to-text engine to use").
			Options(
				huh.NewOption("whisper.cpp (local)", "whisper-cpp"),
				huh.NewOption("OpenAI Whisper API", "openai"),
			).
			Value(&provider),
	)).WithTheme(getTheme())
	if err := form.Run(); err != nil {
		return err
	}
	cfg.Engine.Provider = provider

	language := cfg.Engine.Language
	langDesc := "ISO-639-1 code (e.g. 'ru', 'en') or empty for auto-detect"

	switch provider {
	case "whisper-cpp":
		var options []huh.Option[string]
		for _, m := range models.List() {
			label := fmt.Sprintf("%s (%s)", m.Name, m.Size)
			if models.IsInstalled(m.ID) {
				label += " [installed]"
			}
			options = append(options, huh.NewOption(label, m.ID))
		}
		model := cfg.Engine.Model
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Model").
				Options(options...).
				Value(&model),
			huh.NewInput().
				Title("Language").
				Description(langDesc).
				Placeholder("auto-detect").
				Value(&language),
		)).WithTheme(getTheme())
		if err := form.Run(); err != nil {
			return err
		}
		cfg.Engine.Model = model

	case "openai":
		model := cfg.Engine.Model
		if model == "" || models.Get(model) != nil {
			model = "whisper-1"
		}
		apiKey := cfg.Engine.APIKey
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Model").
				Value(&model),
			huh.NewInput().
				Title("API Key").
				Description("Leave empty to use OPENAI_API_KEY").
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
			huh.NewInput().
				Title("Language").
				Description(langDesc).
				Placeholder("auto-detect").
				Value(&language),
		)).WithTheme(getTheme())
		if err := form.Run(); err != nil {
			return err
		}
		cfg.Engine.Model = model
		cfg.Engine.APIKey = apiKey
	}

	cfg.Engine.Language = language
	return nil
}

func editDiarization(cfg *config.Config) error {
	command := cfg.Diarization.Command
	speakers := strconv.Itoa(cfg.Diarization.Speakers)

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Diarization Command").
			Description("Path to the speaker diarization tool (empty = diarization off)").
			Value(&command),
		huh.NewInput().
			Title("Expected Speakers").
			Description("0 = auto-detect").
			Validate(validateInt).
			Value(&speakers),
	)).WithTheme(getTheme())
	if err := form.Run(); err != nil {
		return err
	}

	cfg.Diarization.Command = command
	cfg.Diarization.Speakers, _ = strconv.Atoi(speakers)
	return nil
}

func editChunking(cfg *config.Config) error {
	duration := formatFloat(cfg.Chunking.Duration)
	overlap := formatFloat(cfg.Chunking.Overlap)
	mergeGap := formatFloat(cfg.Chunking.MergeGap)
	minSegment := formatFloat(cfg.Chunking.MinSegment)
	expansionPad := formatFloat(cfg.Chunking.ExpansionPad)

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Chunk Duration (s)").
			Validate(validateFloat).
			Value(&duration),
		huh.NewInput().
			Title("Chunk Overlap (s)").
			Validate(validateFloat).
			Value(&overlap),
		huh.NewInput().
			Title("Merge Gap (s)").
			Description("Max gap between same-speaker segments to merge").
			Validate(validateFloat).
			Value(&mergeGap),
		huh.NewInput().
			Title("Min Segment (s)").
			Validate(validateFloat).
			Value(&minSegment),
		huh.NewInput().
			Title("Expansion Pad (s)").
			Description("Retry padding for empty diarized segments").
			Validate(validateFloat).
			Value(&expansionPad),
	)).WithTheme(getTheme())
	if err := form.Run(); err != nil {
		return err
	}

	cfg.Chunking.Duration, _ = strconv.ParseFloat(duration, 64)
	cfg.Chunking.Overlap, _ = strconv.ParseFloat(overlap, 64)
	cfg.Chunking.MergeGap, _ = strconv.ParseFloat(mergeGap, 64)
	cfg.Chunking.MinSegment, _ = strconv.ParseFloat(minSegment, 64)
	cfg.Chunking.ExpansionPad, _ = strconv.ParseFloat(expansionPad, 64)
	return nil
}

func cancelledOn(err error) (*ConfigureResult, error) {
	if errors.Is(err, huh.ErrUserAborted) {
		return &ConfigureResult{Cancelled: true}, nil
	}
	return nil, err
}

func validateInt(s string) error {
	if _, err := strconv.Atoi(s); err != nil {
		return fmt.Errorf("must be a whole number")
	}
	return nil
}

func validateFloat(s string) error {
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func clearScreen() {
	output := termenv.NewOutput(os.Stdout)
	output.ClearScreen()
}
