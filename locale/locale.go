// Package locale holds the supported speech locales and their
// preprocessing settings.
package locale

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/d1nch8g/pdfspeech/text"
)

// Code is a BCP 47 locale code understood by the synthesis backends.
type Code string

const (
	PortugueseBrazil Code = "pt-BR"
	EnglishUS        Code = "en-US"
)

// ErrUnsupportedLocale is returned for locales outside the fixed set.
var ErrUnsupportedLocale = errors.New("unsupported locale")

// Settings configures preprocessing for one locale. Pause, rate and
// emphasis values are kept for markup-capable backends.
type Settings struct {
	PauseLong       time.Duration
	PauseShort      time.Duration
	ProsodyRate     string
	EmphasisLevel   string
	MaxTextLength   int
	Keywords        []string
	SlowRatePhrases []string
}

// DefaultSettings returns the built-in settings for code.
func DefaultSettings(code Code) Settings {
	s := Settings{
		PauseLong:     time.Second,
		PauseShort:    500 * time.Millisecond,
		ProsodyRate:   "medium",
		EmphasisLevel: "strong",
		MaxTextLength: 3000,
	}
	switch code {
	case PortugueseBrazil:
		s.Keywords = []string{"importante", "atenção", "observe", "veículos"}
		s.SlowRatePhrases = []string{"Fundos de Tijolo", "Fundos de Papel", "Fundos Híbridos", "Fundos de Desenvolvimento"}
	case EnglishUS:
		s.Keywords = []string{"important", "attention", "note", "vehicles"}
		s.SlowRatePhrases = []string{"Brick Funds", "Paper Funds", "Hybrid Funds", "Development Funds"}
	}
	return s
}

type definition struct {
	name         string
	tag          language.Tag
	testText     string
	speller      text.Speller
	contractions bool
}

var definitions = map[Code]definition{
	PortugueseBrazil: {
		name:     "Portuguese",
		tag:      language.BrazilianPortuguese,
		testText: "Este é um teste da voz selecionada em português.",
		speller:  text.Portuguese{},
	},
	EnglishUS: {
		name:         "English",
		tag:          language.AmericanEnglish,
		testText:     "This is a test of the selected voice in English.",
		speller:      text.English{},
		contractions: true,
	},
}

// Codes lists the supported locales in display order.
func Codes() []Code {
	return []Code{PortugueseBrazil, EnglishUS}
}

// Profile is an immutable locale with its normalization pipeline.
type Profile struct {
	code     Code
	def      definition
	settings Settings
	pipeline *text.Pipeline
}

// New builds the profile for code. A non-positive MaxTextLength is
// replaced with the default.
func New(code Code, s Settings) (*Profile, error) {
	def, ok := definitions[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, code)
	}
	if s.MaxTextLength <= 0 {
		s.MaxTextLength = DefaultSettings(code).MaxTextLength
	}
	s.Keywords = clean(s.Keywords)
	s.SlowRatePhrases = clean(s.SlowRatePhrases)

	return &Profile{
		code:     code,
		def:      def,
		settings: s,
		pipeline: text.NewPipeline(text.Options{
			Speller:            def.speller,
			ExpandContractions: def.contractions,
			Keywords:           s.Keywords,
			SlowRatePhrases:    s.SlowRatePhrases,
		}),
	}, nil
}

func (p *Profile) Code() Code { return p.code }
func (p *Profile) Name() string { return p.def.name }
func (p *Profile) Tag() language.Tag { return p.def.tag }
func (p *Profile) TestText() string { return p.def.testText }
func (p *Profile) MaxTextLength() int { return p.settings.MaxTextLength }
func (p *Profile) String() string { return string(p.code) }
func (p *Profile) Marks(s string) []text.Mark { return p.pipeline.Marks(s) }

// Settings returns a copy of the profile settings.
func (p *Profile) Settings() Settings {
	s := p.settings
	s.Keywords = append([]string(nil), s.Keywords...)
	s.SlowRatePhrases = append([]string(nil), s.SlowRatePhrases...)
	return s
}

// Normalize prepares raw document text for synthesis in this locale.
func (p *Profile) Normalize(raw string) string {
	return p.pipeline.Normalize(raw)
}

// Split cuts normalized text into chunks bounded by MaxTextLength.
func (p *Profile) Split(normalized string) []string {
	return text.Split(normalized, p.settings.MaxTextLength)
}

func clean(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
