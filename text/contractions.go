package text

import (
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
)

// Contractions maps lowercase English contractions to their expansion.
var Contractions = map[string]string{
	"ain't":     "is not",
	"aren't":    "are not",
	"can't":     "cannot",
	"couldn't":  "could not",
	"didn't":    "did not",
	"doesn't":   "does not",
	"don't":     "do not",
	"hadn't":    "had not",
	"hasn't":    "has not",
	"haven't":   "have not",
	"he'd":      "he would",
	"he'll":     "he will",
	"he's":      "he is",
	"i'd":       "I would",
	"i'll":      "I will",
	"i'm":       "I am",
	"i've":      "I have",
	"isn't":     "is not",
	"it's":      "it is",
	"let's":     "let us",
	"mightn't":  "might not",
	"mustn't":   "must not",
	"shan't":    "shall not",
	"she'd":     "she would",
	"she'll":    "she will",
	"she's":     "she is",
	"shouldn't": "should not",
	"that's":    "that is",
	"there's":   "there is",
	"they'd":    "they would",
	"they'll":   "they will",
	"they're":   "they are",
	"they've":   "they have",
	"we'd":      "we would",
	"we're":     "we are",
	"we've":     "we have",
	"weren't":   "were not",
	"what'll":   "what will",
	"what're":   "what are",
	"what's":    "what is",
	"what've":   "what have",
	"where's":   "where is",
	"who'd":     "who would",
	"who'll":    "who will",
	"who're":    "who are",
	"who's":     "who is",
	"who've":    "who have",
	"won't":     "will not",
	"wouldn't":  "would not",
	"you'd":     "you would",
	"you'll":    "you will",
	"you're":    "you are",
	"you've":    "you have",
}

var contraction = compileContractions()

func compileContractions() *regexp2.Regexp {
	keys := make([]string, 0, len(Contractions))
	for k := range Contractions {
		keys = append(keys, k)
	}
	// Longest first so alternation order never shadows a longer form.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	alts := make([]string, len(keys))
	for i, k := range keys {
		alts[i] = strings.ReplaceAll(regexp2.Escape(k), "'", "['’]")
	}
	return regexp2.MustCompile(`\b(?:`+strings.Join(alts, "|")+`)\b`, regexp2.IgnoreCase)
}

// ExpandContractions replaces known contractions with their expansion.
// Matching ignores case and accepts typographic apostrophes; the
// replacement is always the table form, so "DON'T" becomes "do not".
func ExpandContractions(s string) string {
	return replaceFunc(contraction, s, func(m regexp2.Match) string {
		key := strings.ToLower(strings.ReplaceAll(m.String(), "’", "'"))
		if exp, ok := Contractions[key]; ok {
			return exp
		}
		return m.String()
	})
}
