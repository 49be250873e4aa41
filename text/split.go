package text

import (
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

var sentenceBreak = regexp2.MustCompile(`(?<=[.!?])\s+`, regexp2.None)

// Sentences splits s after every ". ! ?" that is followed by whitespace.
func Sentences(s string) []string {
	runes := []rune(s)
	var out []string
	last := 0
	m, err := sentenceBreak.FindRunesMatch(runes)
	for err == nil && m != nil {
		out = append(out, string(runes[last:m.Index]))
		last = m.Index + m.Length
		m, err = sentenceBreak.FindNextMatch(m)
	}
	return append(out, string(runes[last:]))
}

// Split groups sentences into chunks for synthesis requests. Sentences are
// added to the current chunk while its length plus the next sentence stays
// below maxLen (in characters); otherwise the chunk is closed. A single
// sentence longer than maxLen is never cut and becomes its own chunk.
func Split(s string, maxLen int) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var (
		chunks  []string
		current strings.Builder
		curLen  int
	)
	flush := func() {
		if c := strings.TrimSpace(current.String()); c != "" {
			chunks = append(chunks, c)
		}
		current.Reset()
		curLen = 0
	}

	for _, sentence := range Sentences(s) {
		n := utf8.RuneCountInString(sentence)
		if curLen+n >= maxLen {
			flush()
		}
		current.WriteString(sentence)
		current.WriteByte(' ')
		curLen += n + 1
	}
	flush()
	return chunks
}
