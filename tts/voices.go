package tts

import (
	"context"
	"errors"
	"fmt"
)

// Catalog indexes the voices a backend offers for a set of languages.
type Catalog struct {
	voices map[string]Voice
	order  []string
}

// NewCatalog builds a catalog from a fixed voice list. Later duplicates
// of an id are ignored.
func NewCatalog(voices ...Voice) *Catalog {
	c := &Catalog{voices: make(map[string]Voice)}
	for _, v := range voices {
		c.add(v)
	}
	return c
}

func (c *Catalog) add(v Voice) {
	if _, ok := c.voices[v.ID]; ok {
		return
	}
	c.voices[v.ID] = v
	c.order = append(c.order, v.ID)
}

// LoadCatalog queries s for every language code. A language that fails to
// load is skipped; its error is returned joined with the others next to
// the partial catalog.
func LoadCatalog(ctx context.Context, s Synthesizer, languageCodes ...string) (*Catalog, error) {
	c := NewCatalog()
	var errs []error
	for _, code := range languageCodes {
		voices, err := s.Voices(ctx, code)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to load voices for %s: %w", code, err))
			continue
		}
		for _, v := range voices {
			if v.LanguageCode == "" {
				v.LanguageCode = code
			}
			c.add(v)
		}
	}
	return c, errors.Join(errs...)
}

// Lookup returns the voice with the given id.
func (c *Catalog) Lookup(id string) (Voice, bool) {
	if c == nil {
		return Voice{}, false
	}
	v, ok := c.voices[id]
	return v, ok
}

// ForLanguage returns the voices of one language in load order.
func (c *Catalog) ForLanguage(languageCode string) []Voice {
	if c == nil {
		return nil
	}
	var out []Voice
	for _, id := range c.order {
		if v := c.voices[id]; v.LanguageCode == languageCode {
			out = append(out, v)
		}
	}
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}
