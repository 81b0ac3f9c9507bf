// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize rewrites raw slide text into a transcript: lowercase,
// whitespace-tokenized, no punctuation, numerals spelled out. The rewrite is
// a fixed sequence of eight stages; each stage's output is the next
// stage's input.
package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Stage is one named text rewrite.
type Stage struct {
	Name  string
	Apply func(string) (string, error)
}

// pure lifts an infallible rewrite into a Stage function.
func pure(f func(string) string) func(string) (string, error) {
	return func(s string) (string, error) { return f(s), nil }
}

var stages = []Stage{
	{Name: "dimension merge", Apply: pure(MergeDimensions)},
	{Name: "annotation strip", Apply: pure(StripAnnotations)},
	{Name: "speaker-line removal", Apply: pure(DropSpeakerLines)},
	{Name: "case fold", Apply: pure(Lower)},
	{Name: "punctuation strip", Apply: pure(StripPunctuation)},
	{Name: "numeral expansion", Apply: ExpandNumerals},
	{Name: "unicode canonicalization", Apply: pure(norm.NFKD.String)},
	{Name: "final punctuation strip", Apply: pure(StripPunctuationAndQuotes)},
}

// Stages returns the normalization stages in application order.
func Stages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

// Normalize applies every stage in order. The only failure is a digit token
// beyond the cardinal range, reported as a *NumeralRangeError.
func Normalize(raw string) (string, error) {
	text := raw
	for _, st := range stages {
		var err error
		if text, err = st.Apply(text); err != nil {
			return "", fmt.Errorf("%s: %w", st.Name, err)
		}
	}
	return text, nil
}

// Lower applies full Unicode lowercasing for the root locale. Unlike
// strings.ToLower it maps a word-final capital sigma to "ς" and expands
// "İ" to "i" plus a combining dot above.
func Lower(s string) string {
	// A Caser carries state, so each call gets its own.
	return cases.Lower(language.Und).String(s)
}

// isWord matches a regular-expression word character over Unicode:
// letters, numbers, and underscore.
func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// isSpace matches Unicode whitespace plus the ASCII information separators
// U+001C..U+001F, which also count as whitespace for tokenizing.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// MergeDimensions rewrites dimension runs such as "64 x 64" or "M X N x D"
// into "64 cross 64" and "M cross N cross D".
//
// A run is a word followed by one or more repetitions of whitespace, a
// standalone "x" or "X", whitespace, and another word. Inside a matched run
// every x or X (together with the whitespace around it) is a delimiter, so
// an x inside one of the words splits that word too: "box x fox" becomes
// "bo cross  cross fo cross ". Text outside runs is untouched.
func MergeDimensions(s string) string {
	rs := []rune(s)
	n := len(rs)

	var b strings.Builder
	last := 0
	for i := 0; i < n; {
		if !isWord(rs[i]) || (i > 0 && isWord(rs[i-1])) {
			i++
			continue
		}
		j := i
		for j < n && isWord(rs[j]) {
			j++
		}
		end := dimensionTail(rs, j)
		if end == j {
			i = j
			continue
		}
		b.WriteString(string(rs[last:i]))
		b.WriteString(splitOnX(rs[i:end]))
		last, i = end, end
	}
	if last == 0 {
		return s
	}
	b.WriteString(string(rs[last:]))
	return b.String()
}

// dimensionTail extends a word ending at k across repetitions of
// `\s*[xX]\s*\b\w+\b` and returns the end of the last repetition, or k.
func dimensionTail(rs []rune, k int) int {
	n := len(rs)
	for {
		a := k
		for a < n && isSpace(rs[a]) {
			a++
		}
		if a >= n || (rs[a] != 'x' && rs[a] != 'X') {
			return k
		}
		c := a + 1
		for c < n && isSpace(rs[c]) {
			c++
		}
		if c == a+1 || c >= n || !isWord(rs[c]) {
			return k
		}
		d := c
		for d < n && isWord(rs[d]) {
			d++
		}
		k = d
	}
}

// splitOnX splits run at every x or X together with its surrounding
// whitespace and joins the pieces with " cross ".
func splitOnX(run []rune) string {
	var (
		parts []string
		start int
	)
	for i := 0; i < len(run); i++ {
		if run[i] != 'x' && run[i] != 'X' {
			continue
		}
		left := i
		for left > start && isSpace(run[left-1]) {
			left--
		}
		right := i + 1
		for right < len(run) && isSpace(run[right]) {
			right++
		}
		parts = append(parts, string(run[start:left]))
		start = right
		i = right - 1
	}
	parts = append(parts, string(run[start:]))
	return strings.Join(parts, " cross ")
}

var annotationRE = regexp.MustCompile(`\(Refer (?:Slide )?Time: \p{Nd}{2}:\p{Nd}{2}\)`)

// StripAnnotations deletes "(Refer Slide Time: MM:SS)" and
// "(Refer Time: MM:SS)" markers without inserting whitespace.
func StripAnnotations(s string) string {
	return annotationRE.ReplaceAllLiteralString(s, "")
}

// speakerPrefix marks a line spoken by a student rather than the lecturer.
const speakerPrefix = "Student:"

// DropSpeakerLines removes every line whose trimmed content starts with
// "Student:" and joins the remaining lines with "\n".
func DropSpeakerLines(s string) string {
	lines := splitLines(s)
	kept := lines[:0]
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimFunc(l, isSpace), speakerPrefix) {
			continue
		}
		kept = append(kept, l)
	}
	return strings.Join(kept, "\n")
}

// splitLines splits s at line boundaries: \n, \r, \r\n, \v, \f, U+001C..
// U+001E, U+0085, U+2028 and U+2029. A trailing boundary does not produce
// an empty final line.
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch r {
		case '\r':
			lines = append(lines, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				size = 2
			}
			start = i + size
		case '\n', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
			lines = append(lines, s[start:i])
			start = i + size
		}
		i += size
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// asciiPunctuation is the ASCII punctuation set !"#$%&'()*+,-./:;<=>?@[\]^_`{|}~.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// quoteMarks are straight and curly quotes removed in the final pass.
const quoteMarks = "’'‘“”"

// StripPunctuation deletes ASCII punctuation. Nothing replaces a deleted
// character, so "don't" becomes "dont" and "3.14" becomes "314".
func StripPunctuation(s string) string {
	return deleteRunes(s, asciiPunctuation)
}

// StripPunctuationAndQuotes deletes ASCII punctuation and curly quotes. It
// runs after numeral expansion, so the hyphen in "twenty-one" is deleted
// and the result is the single token "twentyone".
func StripPunctuationAndQuotes(s string) string {
	return deleteRunes(s, asciiPunctuation+quoteMarks)
}

func deleteRunes(s, set string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(set, r) {
			return -1
		}
		return r
	}, s)
}

// ExpandNumerals replaces every whitespace-separated token made only of
// decimal digits with its English cardinal words. Other tokens pass
// through; tokens are rejoined with single spaces.
func ExpandNumerals(s string) (string, error) {
	tokens := strings.FieldsFunc(s, isSpace)
	for i, tok := range tokens {
		digits, ok := asciiDigits(tok)
		if !ok {
			continue
		}
		words, err := Cardinal(digits)
		if err != nil {
			var nre *NumeralRangeError
			if errors.As(err, &nre) {
				nre.Token = tok
			}
			return "", err
		}
		tokens[i] = words
	}
	return strings.Join(tokens, " "), nil
}

// asciiDigits maps a token of Unicode decimal digits (any script) to ASCII
// digits. It reports false when tok contains anything else.
func asciiDigits(tok string) (string, bool) {
	if tok == "" {
		return "", false
	}
	b := make([]byte, 0, len(tok))
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			return "", false
		}
		b = append(b, byte('0'+digitValue(r)))
	}
	return string(b), true
}

// digitValue returns the value of a decimal digit rune. Decimal digits are
// encoded in contiguous ascending runs that start at zero, so the value is
// the offset from the start of the run, modulo ten.
func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	base := r
	for unicode.IsDigit(base - 1) {
		base--
	}
	return int(r-base) % 10
}
