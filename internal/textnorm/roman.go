package textnorm

import "regexp"

// romanValues maps each roman numeral symbol to its value, used by the
// loose subtractive decoder below.
var romanValues = map[byte]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000,
}

// canonicalTable is the greedy encode table: largest value first, used to
// re-encode an integer and check it round-trips to the original token.
var canonicalTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// romanTokenRx matches a maximal run of ASCII letters and digits; a run made
// only of roman-numeral symbols (romanSymbolsRx) is then validated (not
// assumed valid) by intToRoman/romanToIntLoose. "_" separates runs here just
// as ReplaceSpecialChars turns it into a space, so scrubbing never exposes a
// new roman-numeral token.
var romanTokenRx = regexp.MustCompile(`[A-Za-z0-9]+`)

var romanSymbolsRx = regexp.MustCompile(`^[MDCLXVI]+$`)

func intToRoman(n int) string {
	var sb []byte
	for _, entry := range canonicalTable {
		for n >= entry.value {
			sb = append(sb, entry.symbol...)
			n -= entry.value
		}
	}
	return string(sb)
}

// romanToIntLoose decodes token via the standard subtractive rule (a
// smaller value before a larger one is subtracted), without verifying the
// result is the canonical spelling for that value — canonicality is
// checked separately by re-encoding and comparing.
func romanToIntLoose(token string) int {
	total := 0
	prev := 0
	for i := len(token) - 1; i >= 0; i-- {
		value := romanValues[token[i]]
		if value < prev {
			total -= value
		} else {
			total += value
			prev = value
		}
	}
	return total
}

// ReplaceRomanNumerals replaces each maximal roman-numeral token in text
// with its Arabic value, but only when the token round-trips through
// canonical encoding (value in 1..3999 and re-encoding it reproduces the
// exact original spelling). Non-canonical forms (e.g. "IC") are left
// untouched. An isolated "I" is always preserved, to avoid clobbering the
// first-person pronoun.
func ReplaceRomanNumerals(text string) string {
	return romanTokenRx.ReplaceAllStringFunc(text, func(token string) string {
		if token == "I" || !romanSymbolsRx.MatchString(token) {
			return token
		}
		value := romanToIntLoose(token)
		if value < 1 || value > 3999 {
			return token
		}
		if intToRoman(value) != token {
			return token
		}
		return itoa(value)
	})
}

// romanTokenCaseInsensitiveRx matches a word-boundary-delimited run of
// roman-numeral symbols without regard to case.
var romanTokenCaseInsensitiveRx = regexp.MustCompile(`(?i)\b[mdclxvi]+\b`)

// ReplaceRomanNumeralsCaseInsensitive behaves like ReplaceRomanNumerals but
// recognizes lower/mixed-case tokens, validating canonicality against the
// upper-cased form while substituting only the matched span (the
// surrounding text, and its case, is otherwise untouched).
func ReplaceRomanNumeralsCaseInsensitive(text string) string {
	return romanTokenCaseInsensitiveRx.ReplaceAllStringFunc(text, func(token string) string {
		upper := toUpper(token)
		if upper == "I" {
			return token
		}
		value := romanToIntLoose(upper)
		if value < 1 || value > 3999 {
			return token
		}
		if intToRoman(value) != upper {
			return token
		}
		return itoa(value)
	})
}

func toUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
