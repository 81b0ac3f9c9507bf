// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"
	"strings"
)

var (
	ones = [...]string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
		"seventeen", "eighteen", "nineteen",
	}
	tens = [...]string{
		"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
	}
	// scales[i] names 1000^i, from thousand through centillion (10^303).
	// Past decillion the names combine a Latin unit prefix with a Latin ten:
	// undecillion, duodecillion, ..., vigintillion, ..., novemnonagintillion.
	scales = buildScales()
)

func buildScales() []string {
	out := []string{"", "thousand"}
	for _, p := range []string{"m", "b", "tr", "quadr", "quint", "sext", "sept", "oct", "non"} {
		out = append(out, p+"illion")
	}
	units := []string{"", "un", "duo", "tre", "quattuor", "quin", "sex", "sept", "octo", "novem"}
	decades := []string{
		"dec", "vigint", "trigint", "quadragint", "quinquagint",
		"sexagint", "septuagint", "octogint", "nonagint",
	}
	for _, t := range decades {
		for _, u := range units {
			out = append(out, u+t+"illion")
		}
	}
	return append(out, "centillion")
}

// MaxCardinalDigits is the longest digit string (ignoring leading zeros)
// Cardinal can spell: values below one thousand centillion, 10^306.
const MaxCardinalDigits = 306

// NumeralRangeError reports a digit token too large to spell out.
type NumeralRangeError struct {
	Token string
}

func (e *NumeralRangeError) Error() string {
	return fmt.Sprintf("numeral %q exceeds the cardinal range (%d digits)", e.Token, MaxCardinalDigits)
}

// Cardinal spells a string of ASCII digits as an English cardinal number in
// British style: "and" joins hundreds to a smaller remainder, commas
// separate scale groups, and tens are hyphenated.
//
//	"21"   -> "twenty-one"
//	"120"  -> "one hundred and twenty"
//	"1001" -> "one thousand and one"
//	"1234" -> "one thousand, two hundred and thirty-four"
func Cardinal(digits string) (string, error) {
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return "", fmt.Errorf("cardinal: %q is not a digit string", digits)
		}
	}
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		if digits == "" {
			return "", fmt.Errorf("cardinal: empty digit string")
		}
		return ones[0], nil
	}
	if len(trimmed) > MaxCardinalDigits {
		return "", &NumeralRangeError{Token: digits}
	}

	// Split into groups of three, most significant first.
	lead := len(trimmed) % 3
	if lead == 0 {
		lead = 3
	}
	var groups []int
	groups = append(groups, atoi(trimmed[:lead]))
	for i := lead; i < len(trimmed); i += 3 {
		groups = append(groups, atoi(trimmed[i:i+3]))
	}

	var b strings.Builder
	for i, g := range groups {
		if g == 0 {
			continue
		}
		scale := len(groups) - 1 - i
		if b.Len() > 0 {
			if remainderBelowHundred(groups[i:]) {
				b.WriteString(" and ")
			} else {
				b.WriteString(", ")
			}
		}
		b.WriteString(underThousand(g))
		if scale > 0 {
			b.WriteByte(' ')
			b.WriteString(scales[scale])
		}
	}
	return b.String(), nil
}

// remainderBelowHundred reports whether the value formed by rest (groups of
// three, most significant first) is below 100.
func remainderBelowHundred(rest []int) bool {
	for _, g := range rest[:len(rest)-1] {
		if g != 0 {
			return false
		}
	}
	return rest[len(rest)-1] < 100
}

// underThousand spells 1..999.
func underThousand(n int) string {
	hundreds, rest := n/100, n%100
	switch {
	case hundreds == 0:
		return underHundred(rest)
	case rest == 0:
		return ones[hundreds] + " hundred"
	default:
		return ones[hundreds] + " hundred and " + underHundred(rest)
	}
}

// underHundred spells 0..99.
func underHundred(n int) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + "-" + ones[n%10]
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
