package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d1nch8g/pdfspeech/locale"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "us-west-2", cfg.Region)
	assert.Equal(t, BackendPolly, cfg.Backend)
	assert.Equal(t, time.Second, cfg.PauseLong)
	assert.Equal(t, 500*time.Millisecond, cfg.PauseShort)
	assert.Equal(t, 3000, cfg.MaxTextLength)
	assert.Equal(t, 100, cfg.UsageLogSize)
	assert.Equal(t, []string{"importante", "atenção", "observe", "veículos"}, cfg.Keywords)
	assert.Equal(t, []string{"Brick Funds", "Paper Funds", "Hybrid Funds", "Development Funds"}, cfg.SlowRatePhrasesEN)
	assert.Equal(t, usageLogName, filepath.Base(cfg.UsageLog))
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"ACCESS_KEY_ID":     "id",
		"SECRET_ACCESS_KEY": "secret",
		"AWS_REGION":        "sa-east-1",
		"MAX_TEXT_LENGTH":   "1500",
		"KEYWORDS_EN":       "alpha,beta",
		"USAGE_LOG":         "/tmp/usage.json",
		"LOG_LEVEL":         "debug",
		"SYNTH_BACKEND":     "yandex",
		"YANDEX_API_KEY":    "k",
		"YANDEX_FOLDER_ID":  "f",
	})
	require.NoError(t, err)

	assert.Equal(t, "sa-east-1", cfg.Region)
	assert.Equal(t, 1500, cfg.MaxTextLength)
	assert.Equal(t, "/tmp/usage.json", cfg.UsageLog)
	assert.Equal(t, log.DebugLevel, cfg.Level())
	assert.Equal(t, "k", cfg.Yandex().ApiKey)
	assert.Equal(t, "f", cfg.Yandex().FolderID)

	settings := cfg.LocaleSettings()
	assert.Equal(t, []string{"alpha", "beta"}, settings[locale.EnglishUS].Keywords)
	assert.Equal(t, 1500, settings[locale.PortugueseBrazil].MaxTextLength)
}

func TestParseBackendCase(t *testing.T) {
	for _, name := range []string{"Yandex", "YANDEX", " yandex "} {
		cfg, err := Parse(map[string]string{"SYNTH_BACKEND": name})
		require.NoError(t, err, name)
		assert.Equal(t, BackendYandex, cfg.Backend, name)
	}

	cfg, err := Parse(map[string]string{"SYNTH_BACKEND": "Polly"})
	require.NoError(t, err)
	assert.Equal(t, BackendPolly, cfg.Backend)
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"zero length":     {"MAX_TEXT_LENGTH": "0"},
		"bad number":      {"MAX_TEXT_LENGTH": "lots"},
		"bad duration":    {"PAUSE_LONG": "forever"},
		"zero log size":   {"USAGE_LOG_SIZE": "0"},
		"unknown backend": {"SYNTH_BACKEND": "espeak"},
	}
	for name, environ := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(environ)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingDotenv(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestLoadConfigDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("USAGE_LOG_SIZE=7\n"), 0o644))
	t.Setenv("USAGE_LOG_SIZE", "")
	os.Unsetenv("USAGE_LOG_SIZE")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.UsageLogSize)
}

func TestUnknownLevelFallsBack(t *testing.T) {
	cfg := &Config{LogLevel: "chatty"}
	assert.Equal(t, log.InfoLevel, cfg.Level())
}
