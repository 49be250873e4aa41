// Package main provides the pdfspeech command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/d1nch8g/pdfspeech/config"
	"github.com/d1nch8g/pdfspeech/locale"
	"github.com/d1nch8g/pdfspeech/tts"
)

var (
	envFile string
	cfg     *config.Config

	rootCmd = &cobra.Command{
		Use:           "pdfspeech",
		Short:         "Convert PDF documents to speech",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}
			c, err := config.LoadConfig(files...)
			if err != nil {
				return err
			}
			log.SetLevel(c.Level())
			cfg = c
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env)")
	rootCmd.AddCommand(convertCmd, voicesCmd, testVoiceCmd, playCmd, usageCmd)
}

func newSynthesizer(ctx context.Context, c *config.Config) (tts.Synthesizer, error) {
	switch c.Backend {
	case config.BackendYandex:
		return tts.NewYandex(c.Yandex())
	case config.BackendPolly:
		awsCfg, err := c.AWS(ctx)
		if err != nil {
			return nil, err
		}
		return tts.NewPolly(awsCfg), nil
	default:
		return nil, fmt.Errorf("unknown synthesis backend %q", c.Backend)
	}
}

// loadCatalog fetches voices for every supported locale. Failures are
// logged and leave a partial catalog.
func loadCatalog(ctx context.Context, synth tts.Synthesizer) *tts.Catalog {
	codes := make([]string, 0, len(locale.Codes()))
	for _, c := range locale.Codes() {
		codes = append(codes, string(c))
	}
	catalog, err := tts.LoadCatalog(ctx, synth, codes...)
	if err != nil {
		log.Warn("failed to load voice capabilities", "err", err)
	}
	return catalog
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
