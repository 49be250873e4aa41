// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	gap "github.com/muesli/go-app-paths"

	"github.com/d1nch8g/pdfspeech/locale"
	"github.com/d1nch8g/pdfspeech/tts"
)

const (
	BackendPolly  = "polly"
	BackendYandex = "yandex"
)

const usageLogName = "polly_usage_log.json"

type Config struct {
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	Region          string `env:"AWS_REGION" envDefault:"us-west-2"`

	Backend        string `env:"SYNTH_BACKEND" envDefault:"polly"`
	YandexAPIKey   string `env:"YANDEX_API_KEY"`
	YandexFolderID string `env:"YANDEX_FOLDER_ID"`

	PauseLong     time.Duration `env:"PAUSE_LONG" envDefault:"1s"`
	PauseShort    time.Duration `env:"PAUSE_SHORT" envDefault:"500ms"`
	ProsodyRate   string        `env:"PROSODY_RATE" envDefault:"medium"`
	EmphasisLevel string        `env:"EMPHASIS_LEVEL" envDefault:"strong"`
	MaxTextLength int           `env:"MAX_TEXT_LENGTH" envDefault:"3000"`

	Keywords          []string `env:"KEYWORDS" envSeparator:"," envDefault:"importante,atenção,observe,veículos"`
	SlowRatePhrases   []string `env:"SLOW_RATE_PHRASES" envSeparator:"," envDefault:"Fundos de Tijolo,Fundos de Papel,Fundos Híbridos,Fundos de Desenvolvimento"`
	KeywordsEN        []string `env:"KEYWORDS_EN" envSeparator:"," envDefault:"important,attention,note,vehicles"`
	SlowRatePhrasesEN []string `env:"SLOW_RATE_PHRASES_EN" envSeparator:"," envDefault:"Brick Funds,Paper Funds,Hybrid Funds,Development Funds"`

	UsageLog     string `env:"USAGE_LOG"`
	UsageLogSize int    `env:"USAGE_LOG_SIZE" envDefault:"100"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads .env files (when present) into the process environment
// and parses it.
func LoadConfig(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
		log.Debug("no .env file found, using process environment")
	}
	return parse(env.Options{})
}

// Parse builds a Config from the given variables only.
func Parse(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if cfg.UsageLog == "" {
		path, err := gap.NewScope(gap.User, "pdfspeech").DataPath(usageLogName)
		if err != nil {
			path = usageLogName
		}
		cfg.UsageLog = path
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.MaxTextLength <= 0 {
		return fmt.Errorf("MAX_TEXT_LENGTH must be positive, got %d", c.MaxTextLength)
	}
	if c.UsageLogSize <= 0 {
		return fmt.Errorf("USAGE_LOG_SIZE must be positive, got %d", c.UsageLogSize)
	}
	switch c.Backend {
	case BackendPolly, BackendYandex:
	default:
		return fmt.Errorf("unknown SYNTH_BACKEND %q", c.Backend)
	}
	return nil
}

// LocaleSettings returns the preprocessing settings for every supported
// locale.
func (c *Config) LocaleSettings() map[locale.Code]locale.Settings {
	shared := func(keywords, phrases []string) locale.Settings {
		return locale.Settings{
			PauseLong:       c.PauseLong,
			PauseShort:      c.PauseShort,
			ProsodyRate:     c.ProsodyRate,
			EmphasisLevel:   c.EmphasisLevel,
			MaxTextLength:   c.MaxTextLength,
			Keywords:        keywords,
			SlowRatePhrases: phrases,
		}
	}
	return map[locale.Code]locale.Settings{
		locale.PortugueseBrazil: shared(c.Keywords, c.SlowRatePhrases),
		locale.EnglishUS:        shared(c.KeywordsEN, c.SlowRatePhrasesEN),
	}
}

// AWS returns an SDK config using the static keys when both are set, and
// the default credential chain otherwise.
func (c *Config) AWS(ctx context.Context) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(c.Region)}
	if c.AccessKeyID != "" && c.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}
	return cfg, nil
}

// Yandex returns the SpeechKit credentials.
func (c *Config) Yandex() tts.YandexConfig {
	return tts.YandexConfig{ApiKey: c.YandexAPIKey, FolderID: c.YandexFolderID}
}

// Level maps LOG_LEVEL to a logger level, falling back to info.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
