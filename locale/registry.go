package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Registry resolves user selections to profiles.
type Registry struct {
	profiles []*Profile
}

// NewRegistry builds one profile per supported locale, using settings to
// look up per-locale overrides. Locales missing from settings get
// DefaultSettings.
func NewRegistry(settings map[Code]Settings) (*Registry, error) {
	r := &Registry{}
	for _, code := range Codes() {
		s, ok := settings[code]
		if !ok {
			s = DefaultSettings(code)
		}
		p, err := New(code, s)
		if err != nil {
			return nil, err
		}
		r.profiles = append(r.profiles, p)
	}
	return r, nil
}

// Profiles returns the profiles in display order.
func (r *Registry) Profiles() []*Profile {
	return append([]*Profile(nil), r.profiles...)
}

// Lookup accepts a locale code in any case ("pt-br") or a display name
// ("Portuguese").
func (r *Registry) Lookup(selection string) (*Profile, error) {
	sel := strings.TrimSpace(selection)
	for _, p := range r.profiles {
		if strings.EqualFold(sel, string(p.code)) || strings.EqualFold(sel, p.def.name) {
			return p, nil
		}
	}
	if tag, err := language.Parse(sel); err == nil {
		for _, p := range r.profiles {
			if tag == p.def.tag {
				return p, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, selection)
}
