package text

import (
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	sentencePause = regexp2.MustCompile(`([.!?])(\s|$)`, regexp2.None)
	clausePause   = regexp2.MustCompile(`([,;])(\s|$)`, regexp2.None)
	disallowed    = regexp2.MustCompile(`[^\w\s.,?!]`, regexp2.None)
	whitespace    = regexp2.MustCompile(`\s+`, regexp2.None)
)

// NormalizePunctuation canonicalizes spacing after punctuation, removes
// every character that is not a word character, whitespace or one of
// ". , ? !", and collapses whitespace runs to a single space. Hyphens are
// removed like any other disallowed character, so "twenty-four" becomes
// "twentyfour".
//
// Word characters are Unicode aware, so accented letters survive.
func NormalizePunctuation(s string) string {
	// Pause insertion point: rewritten to the same spacing for now.
	s = replace(sentencePause, s, "$1$2")
	s = replace(clausePause, s, "$1$2")

	s = replace(disallowed, s, "")
	s = replace(whitespace, s, " ")
	return strings.TrimSpace(s)
}

func replace(re *regexp2.Regexp, s, repl string) string {
	out, err := re.Replace(s, repl, -1, -1)
	if err != nil {
		return s
	}
	return out
}

func replaceFunc(re *regexp2.Regexp, s string, fn regexp2.MatchEvaluator) string {
	out, err := re.ReplaceFunc(s, fn, -1, -1)
	if err != nil {
		return s
	}
	return out
}
