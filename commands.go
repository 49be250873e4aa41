package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/d1nch8g/pdfspeech/audio"
	"github.com/d1nch8g/pdfspeech/engine"
	"github.com/d1nch8g/pdfspeech/locale"
	"github.com/d1nch8g/pdfspeech/pdf"
	"github.com/d1nch8g/pdfspeech/sound"
	"github.com/d1nch8g/pdfspeech/tts"
	"github.com/d1nch8g/pdfspeech/usage"
)

var (
	localeSel string
	voiceID   string
	startPage int
	endPage   int

	convertCmd = &cobra.Command{
		Use:   "convert PDF OUTPUT",
		Short: "Convert a page range of a PDF to an mp3 file or s3:// object",
		Args:  cobra.ExactArgs(2),
		RunE:  runConvert,
	}

	voicesCmd = &cobra.Command{
		Use:   "voices",
		Short: "List the voices available for each language",
		Args:  cobra.NoArgs,
		RunE:  runVoices,
	}

	testVoiceCmd = &cobra.Command{
		Use:   "test-voice",
		Short: "Speak a short sample sentence with the selected voice",
		Args:  cobra.NoArgs,
		RunE:  runTestVoice,
	}

	playCmd = &cobra.Command{
		Use:   "play FILE",
		Short: "Play a converted mp3 file; interrupt to stop",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlay,
	}

	usageCmd = &cobra.Command{
		Use:   "usage",
		Short: "Show the usage log",
		Args:  cobra.NoArgs,
		RunE:  runUsage,
	}
)

func init() {
	for _, cmd := range []*cobra.Command{convertCmd, voicesCmd, testVoiceCmd} {
		cmd.Flags().StringVarP(&localeSel, "language", "l", string(locale.PortugueseBrazil), "language name or code")
	}
	for _, cmd := range []*cobra.Command{convertCmd, testVoiceCmd} {
		cmd.Flags().StringVarP(&voiceID, "voice", "v", "", "voice id")
		_ = cmd.MarkFlagRequired("voice")
	}
	convertCmd.Flags().IntVar(&startPage, "start", 0, "first page, 1-based (default first page)")
	convertCmd.Flags().IntVar(&endPage, "end", 0, "last page, inclusive (default last page)")
}

type app struct {
	engine  *engine.Engine
	tracker *usage.Tracker
}

func newApp(ctx context.Context, progress func(engine.Progress)) (*app, error) {
	synth, err := newSynthesizer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	registry, err := locale.NewRegistry(cfg.LocaleSettings())
	if err != nil {
		synth.Close()
		return nil, err
	}

	tracker := usage.NewTracker(cfg.UsageLogSize)
	if err := tracker.Load(cfg.UsageLog); err != nil {
		log.Warn("failed to load usage log, starting empty", "err", err)
	}

	eng := engine.NewEngine(
		engine.EngineConfig{OnProgress: progress},
		synth,
		loadCatalog(ctx, synth),
		registry,
		tracker,
	)
	return &app{engine: eng, tracker: tracker}, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	src, dest := args[0], args[1]

	text, err := pdf.Extract(src, startPage, endPage)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, func(p engine.Progress) {
		if p.State == engine.StateDone {
			log.Info("chunk done", "chunk", fmt.Sprintf("%d/%d", p.Chunk, p.Total), "engine", p.Engine)
		}
	})
	if err != nil {
		return err
	}
	defer a.engine.Close()

	sink, err := audio.Open(dest, func() (aws.Config, error) { return cfg.AWS(ctx) })
	if err != nil {
		return err
	}

	res, err := a.engine.Convert(ctx, engine.ConvertRequest{Text: text, Locale: localeSel, VoiceID: voiceID}, sink)
	if err != nil {
		return err
	}
	if err := a.tracker.Save(cfg.UsageLog); err != nil {
		log.Error("failed to save usage log", "err", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Conversion completed successfully: %s (%s, %s characters, %d chunks)\n",
		sink, humanize.Bytes(uint64(res.Bytes)), humanize.Comma(int64(res.Characters)), res.Chunks)
	return nil
}

func runVoices(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	synth, err := newSynthesizer(ctx, cfg)
	if err != nil {
		return err
	}
	defer synth.Close()

	registry, err := locale.NewRegistry(cfg.LocaleSettings())
	if err != nil {
		return err
	}
	profiles := registry.Profiles()
	if cmd.Flags().Changed("language") {
		p, err := registry.Lookup(localeSel)
		if err != nil {
			return err
		}
		profiles = []*locale.Profile{p}
	}

	catalog := loadCatalog(ctx, synth)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LANGUAGE\tVOICE\tGENDER\tENGINES")
	for _, p := range profiles {
		voices := catalog.ForLanguage(string(p.Code()))
		if len(voices) == 0 {
			fmt.Fprintf(w, "%s\t%s\t\t\n", p.Name(), "No voices available")
			continue
		}
		for _, v := range voices {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name(), v.ID, v.Gender, engineList(v.Engines))
		}
	}
	return w.Flush()
}

func runTestVoice(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, nil)
	if err != nil {
		return err
	}
	defer a.engine.Close()

	tmp, err := os.CreateTemp("", "pdfspeech-voice-*.mp3")
	if err != nil {
		return err
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := a.engine.TestVoice(ctx, localeSel, voiceID, audio.NewFileSink(tmp.Name())); err != nil {
		return fmt.Errorf("failed to test voice: %w", err)
	}
	return play(ctx, tmp.Name())
}

func runPlay(cmd *cobra.Command, args []string) error {
	return play(cmd.Context(), args[0])
}

func play(ctx context.Context, path string) error {
	if err := sound.ValidateFile(path); err != nil {
		return err
	}

	player := sound.NewPortaudioPlayer(sound.GetDefaultConfig())
	if err := player.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize audio output: %w", err)
	}
	defer player.Terminate()

	done := make(chan error, 1)
	go func() { done <- player.Play(ctx, path) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		log.Info("stopping playback", "file", filepath.Base(path))
		if err := player.Stop(path); err != nil {
			return err
		}
		return <-done
	}
}

func runUsage(cmd *cobra.Command, _ []string) error {
	tracker := usage.NewTracker(cfg.UsageLogSize)
	if err := tracker.Load(cfg.UsageLog); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Usage log: %s\n\n", cfg.UsageLog)
	return tracker.WriteReport(cmd.OutOrStdout())
}

func engineList(engines []tts.Engine) string {
	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = string(e)
	}
	return strings.Join(names, ", ")
}
