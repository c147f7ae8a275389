package utils

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsSeparator checks if a rune is a separator character
func IsSeparator(r rune) bool {
	return r == ' ' || r == '_' || r == '-' || r == '.' || r == '/'
}

// WordLength counts runes, not bytes, since Greek letters take two bytes.
func WordLength(s string) int {
	return utf8.RuneCountInString(s)
}

// CheckWord validates raw user input before it reaches the dictionary.
// An empty word is allowed; the dictionary treats it as a no-op or an empty query.
func CheckWord(s string, maxLen int) error {
	if maxLen > 0 && WordLength(s) > maxLen {
		return fmt.Errorf("word exceeds maximum length of %d characters", maxLen)
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return fmt.Errorf("word %q contains whitespace", s)
	}
	return nil
}

// SplitFields splits a line on separators, dropping empty pieces.
func SplitFields(line string) []string {
	return strings.FieldsFunc(line, IsSeparator)
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	if n < 0 {
		return "-" + FormatWithCommas(-n)
	}
	str := fmt.Sprintf("%d", n)
	if n < 1000 {
		return str
	}

	var sb strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(char)
	}
	return sb.String()
}
