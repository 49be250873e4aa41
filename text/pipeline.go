// Package text prepares extracted document text for speech synthesis:
// number spelling, punctuation cleanup, contraction expansion, keyword
// marking and length-bounded chunking.
package text

// Options selects the steps of a Pipeline.
type Options struct {
	Speller            Speller
	ExpandContractions bool
	Keywords           []string
	SlowRatePhrases    []string
}

// Pipeline is a fixed normalization pass. It holds no mutable state and is
// safe for concurrent use.
type Pipeline struct {
	speller      Speller
	contractions bool
	marker       *Marker
}

func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{
		speller:      opts.Speller,
		contractions: opts.ExpandContractions,
		marker:       NewMarker(opts.Keywords, opts.SlowRatePhrases),
	}
}

// Normalize runs, in order: contraction expansion (when enabled), number
// spelling, punctuation and whitespace normalization, keyword marking.
// The result only holds word characters, single spaces and ". , ? !".
func (p *Pipeline) Normalize(s string) string {
	if p.contractions {
		s = ExpandContractions(s)
	}
	s = SpellNumbers(s, p.speller)
	s = NormalizePunctuation(s)
	return p.marker.Apply(s)
}

// Marks returns the keyword and phrase spans of already normalized text.
func (p *Pipeline) Marks(normalized string) []Mark {
	return p.marker.Find(normalized)
}
