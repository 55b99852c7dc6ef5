// Package sanitizer normalizes free-text identifiers before they are validated or stored.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims s and collapses every whitespace run to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeBerthName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeCargoCategory keeps case: category matching is exact.
func NormalizeCargoCategory(category string) string {
	return TrimAndNormalize(category)
}

func NormalizeVesselNumber(number string) string {
	return strings.TrimSpace(number)
}
