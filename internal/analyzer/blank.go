package analyzer

import (
	"strings"
	"unicode"
)

// IsBlank reports whether text holds nothing but whitespace and line
// terminators as a browser's String.prototype.trim sees them. U+FEFF counts
// as whitespace there and U+0085 does not, unlike unicode.IsSpace.
func IsBlank(text string) bool {
	return strings.TrimFunc(text, isTrimmable) == ""
}

func isTrimmable(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}
