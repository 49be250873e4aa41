package text

import (
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

// MaxSpelledDigits is the longest digit run that gets spelled out. Longer
// runs are left as digits.
const MaxSpelledDigits = 18

// Speller spells a non-negative integer in words.
type Speller interface {
	Spell(n uint64) string
}

var digitRun = regexp2.MustCompile(`\b[0-9]+\b`, regexp2.None)

// SpellNumbers replaces every standalone run of ASCII digits with its
// spelling. Digits glued to letters ("3rd", "mp3") are left alone.
func SpellNumbers(s string, speller Speller) string {
	if speller == nil {
		return s
	}
	return replaceFunc(digitRun, s, func(m regexp2.Match) string {
		digits := m.String()
		if len(strings.TrimLeft(digits, "0")) > MaxSpelledDigits {
			return digits
		}
		n, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			return digits
		}
		return speller.Spell(n)
	})
}

var (
	enOnes = [...]string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
		"seventeen", "eighteen", "nineteen",
	}
	enTens = [...]string{
		"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
	}
	enScales = [...]string{"", "thousand", "million", "billion", "trillion", "quadrillion", "quintillion"}
)

// English spells numbers in US English. Four digit numbers that look like
// years are read in pairs ("twenty twenty-four").
type English struct{}

func (English) Spell(n uint64) string {
	if isYear(n) {
		return enYear(n)
	}
	return enCardinal(n)
}

func isYear(n uint64) bool {
	return (n >= 1100 && n <= 1999) || (n >= 2010 && n <= 2099)
}

func enYear(n uint64) string {
	hi, lo := n/100, n%100
	switch {
	case lo == 0:
		return enBelow100(hi) + " hundred"
	case lo < 10:
		return enBelow100(hi) + " oh " + enOnes[lo]
	default:
		return enBelow100(hi) + " " + enBelow100(lo)
	}
}

func enCardinal(n uint64) string {
	if n == 0 {
		return enOnes[0]
	}
	var parts []string
	for i, g := range groups(n) {
		if g == 0 {
			continue
		}
		part := enBelow1000(g)
		if scale := enScales[i]; scale != "" {
			part += " " + scale
		}
		parts = append([]string{part}, parts...)
	}
	return strings.Join(parts, " ")
}

func enBelow1000(n uint64) string {
	if n < 100 {
		return enBelow100(n)
	}
	s := enOnes[n/100] + " hundred"
	if r := n % 100; r != 0 {
		s += " " + enBelow100(r)
	}
	return s
}

func enBelow100(n uint64) string {
	if n < 20 {
		return enOnes[n]
	}
	s := enTens[n/10]
	if r := n % 10; r != 0 {
		s += "-" + enOnes[r]
	}
	return s
}

var (
	ptOnes = [...]string{
		"zero", "um", "dois", "três", "quatro", "cinco", "seis", "sete", "oito", "nove",
		"dez", "onze", "doze", "treze", "quatorze", "quinze", "dezesseis",
		"dezessete", "dezoito", "dezenove",
	}
	ptTens = [...]string{
		"", "", "vinte", "trinta", "quarenta", "cinquenta", "sessenta", "setenta", "oitenta", "noventa",
	}
	ptHundreds = [...]string{
		"", "cento", "duzentos", "trezentos", "quatrocentos", "quinhentos",
		"seiscentos", "setecentos", "oitocentos", "novecentos",
	}
	ptScales = [...][2]string{
		{"", ""},
		{"mil", "mil"},
		{"milhão", "milhões"},
		{"bilhão", "bilhões"},
		{"trilhão", "trilhões"},
		{"quatrilhão", "quatrilhões"},
		{"quintilhão", "quintilhões"},
	}
)

// Portuguese spells numbers in Brazilian Portuguese ("vinte e cinco",
// "mil e quinhentos", "dois milhões").
type Portuguese struct{}

func (Portuguese) Spell(n uint64) string {
	if n == 0 {
		return ptOnes[0]
	}
	type part struct {
		words string
		value uint64
	}
	var parts []part
	for i, g := range groups(n) {
		if g == 0 {
			continue
		}
		var words string
		switch {
		case i == 0:
			words = ptBelow1000(g)
		case i == 1 && g == 1:
			words = "mil"
		case g == 1:
			words = "um " + ptScales[i][0]
		default:
			words = ptBelow1000(g) + " " + ptScales[i][1]
		}
		parts = append([]part{{words, g}}, parts...)
	}

	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			// "e" joins the last group when it is a round hundred or below 100.
			if i == len(parts)-1 && (p.value < 100 || p.value%100 == 0) {
				b.WriteString(" e ")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString(p.words)
	}
	return b.String()
}

func ptBelow1000(n uint64) string {
	if n == 100 {
		return "cem"
	}
	if n < 100 {
		return ptBelow100(n)
	}
	s := ptHundreds[n/100]
	if r := n % 100; r != 0 {
		s += " e " + ptBelow100(r)
	}
	return s
}

func ptBelow100(n uint64) string {
	if n < 20 {
		return ptOnes[n]
	}
	s := ptTens[n/10]
	if r := n % 10; r != 0 {
		s += " e " + ptOnes[r]
	}
	return s
}

// groups splits n into base-1000 groups, least significant first.
func groups(n uint64) []uint64 {
	var out []uint64
	for n > 0 {
		out = append(out, n%1000)
		n /= 1000
	}
	return out
}
