package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/d1nch8g/pdfspeech/audio"
	"github.com/d1nch8g/pdfspeech/locale"
	"github.com/d1nch8g/pdfspeech/tts"
	"github.com/d1nch8g/pdfspeech/usage"
)

// Recorder receives one entry per successful conversion
type Recorder interface {
	Add(e usage.Entry) usage.Entry
}

// EngineConfig holds the synthesis parameters shared by every chunk
type EngineConfig struct {
	PreferredEngine tts.Engine
	FallbackEngine  tts.Engine
	Format          tts.Format
	SampleRate      int

	// OnProgress, when set, is called on every chunk state change.
	OnProgress func(Progress)
}

// ConvertRequest describes one document conversion
type ConvertRequest struct {
	Text    string
	Locale  string
	VoiceID string
}

// Result describes a successful conversion
type Result struct {
	ID         string
	Locale     locale.Code
	VoiceID    string
	Normalized string
	Characters int
	Chunks     int
	Engines    []tts.Engine
	Bytes      int
	Elapsed    time.Duration
}

// Engine orchestrates preprocessing, chunked synthesis and output
type Engine struct {
	config  EngineConfig
	synth   tts.Synthesizer
	voices  *tts.Catalog
	locales *locale.Registry
	usage   Recorder

	running      bool
	runningMutex sync.Mutex
}

// NewEngine creates a new engine. A nil voices catalog disables voice
// validation; a nil recorder disables usage tracking.
func NewEngine(
	config EngineConfig,
	synth tts.Synthesizer,
	voices *tts.Catalog,
	locales *locale.Registry,
	recorder Recorder,
) *Engine {
	if config.PreferredEngine == "" {
		config.PreferredEngine = tts.EngineNeural
	}
	if config.FallbackEngine == "" {
		config.FallbackEngine = tts.EngineStandard
	}
	if config.Format == "" {
		config.Format = tts.FormatMP3
	}
	if config.SampleRate == 0 {
		config.SampleRate = tts.DefaultSampleRate
	}

	return &Engine{
		config:  config,
		synth:   synth,
		voices:  voices,
		locales: locales,
		usage:   recorder,
	}
}

// Resolve validates a locale and voice selection before any synthesis.
func (e *Engine) Resolve(localeSel, voiceID string) (*locale.Profile, error) {
	profile, err := e.locales.Lookup(localeSel)
	if err != nil {
		return nil, &selectionError{err: err}
	}

	voiceID = strings.TrimSpace(voiceID)
	if voiceID == "" {
		return nil, fmt.Errorf("%w: no voice selected", ErrInvalidVoice)
	}
	if e.voices == nil || e.voices.Len() == 0 {
		log.Warn("voice catalog unavailable, skipping voice validation", "voice", voiceID)
		return profile, nil
	}
	v, ok := e.voices.Lookup(voiceID)
	if !ok || v.LanguageCode != string(profile.Code()) {
		return nil, fmt.Errorf("%w %q for %s", ErrInvalidVoice, voiceID, profile.Name())
	}
	return profile, nil
}

// Convert normalizes, splits and synthesizes req, then writes the joined
// audio to sink. Usage is recorded only after the write succeeds. Every
// error is a *ConversionError.
func (e *Engine) Convert(ctx context.Context, req ConvertRequest, sink audio.Sink) (*Result, error) {
	res, err := e.convert(ctx, req, sink)
	if err != nil {
		return nil, &ConversionError{Err: err}
	}
	return res, nil
}

func (e *Engine) convert(ctx context.Context, req ConvertRequest, sink audio.Sink) (*Result, error) {
	if err := e.begin(); err != nil {
		return nil, err
	}
	defer e.end()

	started := time.Now()
	profile, err := e.Resolve(req.Locale, req.VoiceID)
	if err != nil {
		return nil, err
	}

	normalized := profile.Normalize(req.Text)
	chunks := profile.Split(normalized)
	if len(chunks) == 0 {
		return nil, errors.New("no text to convert")
	}

	res := &Result{
		ID:         uuid.NewString(),
		Locale:     profile.Code(),
		VoiceID:    strings.TrimSpace(req.VoiceID),
		Normalized: normalized,
		Characters: utf8.RuneCountInString(normalized),
		Chunks:     len(chunks),
	}
	logger := log.With("id", res.ID, "locale", res.Locale, "voice", res.VoiceID)
	logger.Info("converting", "characters", humanize.Comma(int64(res.Characters)), "chunks", res.Chunks)

	data, engines, err := e.synthesize(ctx, logger, profile, res.VoiceID, chunks)
	if err != nil {
		return nil, err
	}
	res.Engines = engines
	res.Bytes = len(data)

	if err := sink.Write(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", sink, err)
	}

	if e.usage != nil {
		e.usage.Add(usage.Entry{
			ID:         res.ID,
			Characters: res.Characters,
			VoiceID:    res.VoiceID,
			Engine:     joinEngines(engines),
		})
	}

	res.Elapsed = time.Since(started)
	logger.Info("conversion complete",
		"output", sink.String(),
		"size", humanize.Bytes(uint64(res.Bytes)),
		"elapsed", res.Elapsed.Round(time.Millisecond))
	return res, nil
}

// TestVoice synthesizes the locale's sample sentence to sink without
// recording usage.
func (e *Engine) TestVoice(ctx context.Context, localeSel, voiceID string, sink audio.Sink) error {
	profile, err := e.Resolve(localeSel, voiceID)
	if err != nil {
		return err
	}
	data, _, err := e.synthesize(ctx, log.With("voice", voiceID), profile, strings.TrimSpace(voiceID), profile.Split(profile.TestText()))
	if err != nil {
		return err
	}
	return sink.Write(ctx, data)
}

// Synthesize runs the chunks through the backend one at a time, in order,
// and returns the concatenated audio. It returns nothing unless every
// chunk succeeds.
func (e *Engine) Synthesize(ctx context.Context, profile *locale.Profile, voiceID string, chunks []string) ([]byte, error) {
	data, _, err := e.synthesize(ctx, log.Default(), profile, voiceID, chunks)
	return data, err
}

func (e *Engine) synthesize(ctx context.Context, logger *log.Logger, profile *locale.Profile, voiceID string, chunks []string) ([]byte, []tts.Engine, error) {
	total := len(chunks)
	for i := range chunks {
		e.progress(Progress{Chunk: i + 1, Total: total, State: StatePending})
	}

	var (
		fragments [][]byte
		size      int
		engines   []tts.Engine
	)
	for i, chunk := range chunks {
		req := tts.Request{
			Text:         chunk,
			VoiceID:      voiceID,
			LanguageCode: string(profile.Code()),
			Format:       e.config.Format,
			SampleRate:   e.config.SampleRate,
		}
		fragment, used, err := e.synthesizeChunk(ctx, logger, req, i+1, total)
		if err != nil {
			e.progress(Progress{Chunk: i + 1, Total: total, State: StateFailed, Engine: used, Err: err})
			return nil, nil, err
		}
		e.progress(Progress{Chunk: i + 1, Total: total, State: StateDone, Engine: used})

		fragments = append(fragments, fragment)
		size += len(fragment)
		if !slices.Contains(engines, used) {
			engines = append(engines, used)
		}
	}

	data := make([]byte, 0, size)
	for _, f := range fragments {
		data = append(data, f...)
	}
	return data, engines, nil
}

// synthesizeChunk tries the preferred engine and retries once with the
// fallback engine when the backend rejects the preferred one.
func (e *Engine) synthesizeChunk(ctx context.Context, logger *log.Logger, req tts.Request, n, total int) ([]byte, tts.Engine, error) {
	req.Engine = e.config.PreferredEngine
	e.progress(Progress{Chunk: n, Total: total, State: StateSynthesizing, Engine: req.Engine})
	logger.Debug("synthesizing chunk", "chunk", n, "total", total, "engine", req.Engine, "chars", utf8.RuneCountInString(req.Text))

	data, err := e.synth.Synthesize(ctx, req)
	if err == nil {
		return data, req.Engine, nil
	}
	if !tts.IsUnsupportedEngine(err) {
		return nil, req.Engine, &SynthesisError{Chunk: n, Total: total, Engine: req.Engine, Err: err}
	}

	logger.Warn("engine not supported, falling back", "chunk", n, "from", req.Engine, "to", e.config.FallbackEngine)
	req.Engine = e.config.FallbackEngine
	e.progress(Progress{Chunk: n, Total: total, State: StateSynthesizing, Engine: req.Engine})

	data, err = e.synth.Synthesize(ctx, req)
	if err != nil {
		return nil, req.Engine, &SynthesisError{Chunk: n, Total: total, Engine: req.Engine, Err: err}
	}
	return data, req.Engine, nil
}

func (e *Engine) progress(p Progress) {
	if e.config.OnProgress != nil {
		e.config.OnProgress(p)
	}
}

func (e *Engine) begin() error {
	e.runningMutex.Lock()
	defer e.runningMutex.Unlock()
	if e.running {
		return fmt.Errorf("engine is already running")
	}
	e.running = true
	return nil
}

func (e *Engine) end() {
	e.runningMutex.Lock()
	defer e.runningMutex.Unlock()
	e.running = false
}

// IsRunning returns whether a conversion is in progress
func (e *Engine) IsRunning() bool {
	e.runningMutex.Lock()
	defer e.runningMutex.Unlock()
	return e.running
}

// Close releases the synthesis backend
func (e *Engine) Close() error {
	if err := e.synth.Close(); err != nil {
		return fmt.Errorf("failed to close TTS client: %w", err)
	}
	return nil
}

func joinEngines(engines []tts.Engine) string {
	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = string(e)
	}
	return strings.Join(names, ",")
}
