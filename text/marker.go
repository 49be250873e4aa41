package text

import (
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// MarkKind tells keyword matches from slow-rate phrase matches.
type MarkKind int

const (
	MarkKeyword MarkKind = iota
	MarkSlowPhrase
)

func (k MarkKind) String() string {
	if k == MarkSlowPhrase {
		return "slow-phrase"
	}
	return "keyword"
}

// Mark is one located keyword or phrase. Start and End are byte offsets.
type Mark struct {
	Kind  MarkKind
	Term  string
	Start int
	End   int
}

type term struct {
	kind MarkKind
	text string
	re   *regexp2.Regexp
}

// Marker locates configured emphasis keywords and slow-rate phrases as
// case-insensitive whole words. It does not rewrite text: backends that
// support markup can use the spans from Find.
type Marker struct {
	terms []term
}

// NewMarker compiles the keyword and phrase lists. Blank entries are
// dropped.
func NewMarker(keywords, phrases []string) *Marker {
	m := &Marker{}
	m.add(MarkKeyword, keywords)
	m.add(MarkSlowPhrase, phrases)
	return m
}

func (m *Marker) add(kind MarkKind, list []string) {
	for _, t := range list {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		re := regexp2.MustCompile(`\b`+regexp2.Escape(t)+`\b`, regexp2.IgnoreCase)
		m.terms = append(m.terms, term{kind: kind, text: t, re: re})
	}
}

// Find returns every match, keywords first then phrases, each in list
// order and then in text order.
func (m *Marker) Find(s string) []Mark {
	if m == nil || len(m.terms) == 0 || s == "" {
		return nil
	}
	offsets := byteOffsets(s)

	var marks []Mark
	for _, t := range m.terms {
		match, err := t.re.FindStringMatch(s)
		for err == nil && match != nil {
			marks = append(marks, Mark{
				Kind:  t.kind,
				Term:  t.text,
				Start: offsets[match.Index],
				End:   offsets[match.Index+match.Length],
			})
			match, err = t.re.FindNextMatch(match)
		}
	}
	return marks
}

// Apply runs the scan and returns s unchanged.
func (m *Marker) Apply(s string) string {
	_ = m.Find(s)
	return s
}

// byteOffsets maps rune indexes (as reported by regexp2) to byte offsets,
// with one extra entry for the end of the string.
func byteOffsets(s string) []int {
	out := make([]int, 0, utf8.RuneCountInString(s)+1)
	for i := range s {
		out = append(out, i)
	}
	return append(out, len(s))
}
