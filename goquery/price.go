package goquery

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Whitespace followed by exactly three digits is digit grouping ("1 234,56").
	spacedDigitsPattern  = regexp.MustCompile(`(\d)[\s\x{00a0}\x{202f}]+(\d{3})\b`)
	groupedDigitsPattern = regexp.MustCompile(`(\d),(\d)`)

	// A second decimal amount right after the first ("19.99 24.99").
	adjacentAmountPattern = regexp.MustCompile(`^[\s\x{00a0}\x{202f}]+\d+[.,]\d`)

	numberTokenPattern = regexp.MustCompile(`\d[\d.,]*`)
	decimalPattern     = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	integerPattern     = regexp.MustCompile(`\d+`)

	currencyPattern = regexp.MustCompile(`[$€£¥₹₨]|USD|EUR|GBP|JPY|INR|PKR|CNY|AUD|CAD|CHF|Rs\.?`)
)

// ParsePrice extracts a decimal amount from price text such as "$1,234.56"
// or "€1.234,56". When both separators appear the last one is the decimal
// mark; a lone comma followed by one or two digits is a decimal comma;
// anything else is digit grouping. Returns false if no number is found or
// the text is ambiguous, such as two amounts separated by a space.
func ParsePrice(s string) (float64, bool) {
	s = joinAll(spacedDigitsPattern, s)
	loc := numberTokenPattern.FindStringIndex(s)
	if loc == nil {
		return 0, false
	}
	if adjacentAmountPattern.MatchString(s[loc[1]:]) {
		return 0, false
	}
	token := strings.TrimRight(s[loc[0]:loc[1]], ".,")
	if token == "" {
		return 0, false
	}

	lastDot := strings.LastIndex(token, ".")
	lastComma := strings.LastIndex(token, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			token = strings.ReplaceAll(token, ".", "")
			token = replaceLast(token, ",", ".")
			token = strings.ReplaceAll(token, ",", "")
		} else {
			token = strings.ReplaceAll(token, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(token, ",") == 1 && len(token)-lastComma-1 <= 2 {
			token = strings.Replace(token, ",", ".", 1)
		} else {
			token = strings.ReplaceAll(token, ",", "")
		}
	case lastDot >= 0:
		if strings.Count(token, ".") > 1 {
			if !thousandsGroups(token, ".") {
				return 0, false
			}
			token = strings.ReplaceAll(token, ".", "")
		}
	}

	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// DetectCurrency returns the first currency symbol or ISO code in the text.
func DetectCurrency(s string) string {
	return currencyPattern.FindString(s)
}

// ParseRating returns the first decimal number in the text.
func ParseRating(s string) (float64, bool) {
	m := decimalPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(m, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseCount returns the first integer in the text, ignoring digit-grouping
// commas, or 0 if there is none.
func ParseCount(s string) int {
	m := integerPattern.FindString(joinAll(groupedDigitsPattern, s))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// joinAll removes the separators matched by re between digits until none
// remain. Matches overlap on their trailing digit, so one pass is not enough.
func joinAll(re *regexp.Regexp, s string) string {
	for {
		next := re.ReplaceAllString(s, "$1$2")
		if next == s {
			return s
		}
		s = next
	}
}

// thousandsGroups reports whether every group after the first sep is
// exactly three digits long.
func thousandsGroups(token, sep string) bool {
	groups := strings.Split(token, sep)
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}

func replaceLast(s, old, new string) string {
	i := strings.LastIndex(s, old)
	if i < 0 {
		return s
	}
	return s[:i] + new + s[i+len(old):]
}
