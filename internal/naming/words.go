// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package naming

import (
	"strings"
	"unicode"
)

// Pascal converts a property or schema name to a PascalCase identifier.
// It splits on non-alphanumeric separators and case boundaries, and prefixes
// an X when the result would start with a digit.
func Pascal(s string) string {
	var sb strings.Builder
	for _, w := range Words(s) {
		r := []rune(w)
		sb.WriteRune(unicode.ToUpper(r[0]))
		if len(r) > 1 {
			// Preserve uppercase runs (acronyms) as-is.
			rest := string(r[1:])
			if strings.ToUpper(w) != w {
				rest = strings.ToLower(rest)
			}
			sb.WriteString(rest)
		}
	}
	out := sb.String()
	if out != "" && out[0] >= '0' && out[0] <= '9' {
		out = "X" + out
	}
	return out
}

// Words splits an identifier into its case-aware word parts. Runs of
// uppercase letters count as a single word ("HTTPServer" -> "HTTP",
// "Server"); non-alphanumeric characters separate words.
func Words(s string) []string {
	var words []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = nil
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r):
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			prevUpper := i > 0 && unicode.IsUpper(runes[i-1])
			if prevLower || (prevUpper && nextLower) {
				flush()
			}
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return words
}

// forbiddenSuffixes are common suffixes too generic to serve as a shared
// type name on their own.
var forbiddenSuffixes = map[string]struct{}{
	"Object": {},
	"Value":  {},
	"Data":   {},
	"Item":   {},
	"Items":  {},
	"Type":   {},
	"Body":   {},
	"Schema": {},
}

// validSharedName reports whether a longest-common-suffix result may be used
// as the shared name for several inline schemas.
func validSharedName(name string) bool {
	if len(name) < 4 {
		return false
	}
	if !unicode.IsUpper([]rune(name)[0]) {
		return false
	}
	if _, bad := forbiddenSuffixes[name]; bad {
		return false
	}
	return true
}

// commonSuffix computes the longest common suffix of the given names,
// aligned on case-aware word boundaries. It returns "" when the names share
// no trailing words.
func commonSuffix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	split := make([][]string, len(names))
	shortest := -1
	for i, n := range names {
		split[i] = Words(n)
		if shortest < 0 || len(split[i]) < shortest {
			shortest = len(split[i])
		}
	}

	common := 0
	for k := 1; k <= shortest; k++ {
		w := split[0][len(split[0])-k]
		same := true
		for _, ws := range split[1:] {
			if ws[len(ws)-k] != w {
				same = false
				break
			}
		}
		if !same {
			break
		}
		common = k
	}
	if common == 0 {
		return ""
	}
	first := split[0]
	return strings.Join(first[len(first)-common:], "")
}
