package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnsupported(t *testing.T) {
	_, err := New("fr-FR", Settings{})
	require.ErrorIs(t, err, ErrUnsupportedLocale)
}

func TestNewFillsDefaults(t *testing.T) {
	p, err := New(EnglishUS, Settings{Keywords: []string{" note ", ""}})
	require.NoError(t, err)

	assert.Equal(t, 3000, p.MaxTextLength())
	assert.Equal(t, []string{"note"}, p.Settings().Keywords)
	assert.Equal(t, "English", p.Name())
	assert.Equal(t, "en-US", p.Tag().String())
}

func TestSettingsIsCopy(t *testing.T) {
	p, err := New(PortugueseBrazil, DefaultSettings(PortugueseBrazil))
	require.NoError(t, err)

	s := p.Settings()
	s.Keywords[0] = "changed"
	assert.Equal(t, "importante", p.Settings().Keywords[0])
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings(EnglishUS)
	assert.Equal(t, time.Second, s.PauseLong)
	assert.Equal(t, 500*time.Millisecond, s.PauseShort)
	assert.Equal(t, "medium", s.ProsodyRate)
	assert.Equal(t, "strong", s.EmphasisLevel)
	assert.Equal(t, 3000, s.MaxTextLength)
	assert.Contains(t, s.SlowRatePhrases, "Brick Funds")
}

func TestProfileNormalize(t *testing.T) {
	r, err := NewRegistry(nil)
	require.NoError(t, err)

	en, err := r.Lookup("en-US")
	require.NoError(t, err)
	assert.Equal(t, "I cannot believe it is twenty twentyfour!", en.Normalize("I can't believe it's 2024!"))

	pt, err := r.Lookup("pt-BR")
	require.NoError(t, err)
	assert.Equal(t, "São vinte e cinco páginas.", pt.Normalize("São 25 páginas."))
}

func TestProfileSplit(t *testing.T) {
	s := DefaultSettings(EnglishUS)
	s.MaxTextLength = 20
	p, err := New(EnglishUS, s)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"Hi there.", "This is a long sentence that exceeds twenty."},
		p.Split("Hi there. This is a long sentence that exceeds twenty."))
}

func TestRegistryLookup(t *testing.T) {
	r, err := NewRegistry(map[Code]Settings{EnglishUS: {MaxTextLength: 100}})
	require.NoError(t, err)

	for _, sel := range []string{"pt-BR", "pt-br", "pt_BR", "Portuguese", " portuguese "} {
		p, err := r.Lookup(sel)
		require.NoError(t, err, sel)
		assert.Equal(t, PortugueseBrazil, p.Code(), sel)
	}

	en, err := r.Lookup("English")
	require.NoError(t, err)
	assert.Equal(t, 100, en.MaxTextLength())

	for _, sel := range []string{"", "fr-FR", "Klingon", "pt-PT"} {
		_, err := r.Lookup(sel)
		assert.ErrorIs(t, err, ErrUnsupportedLocale, sel)
	}

	require.Len(t, r.Profiles(), 2)
	assert.Equal(t, PortugueseBrazil, r.Profiles()[0].Code())
}
