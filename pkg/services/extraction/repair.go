package extraction

import (
	"regexp"
	"strings"
)

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// StripFence removes a leading markdown fence line (with or without a
// language tag) and a matching trailing fence from the text.
func StripFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		trimmed = trimmed[idx+1:]
	} else {
		// Single-line fence such as "```json{...}```".
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
	}
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

// RemoveTrailingCommas drops commas that immediately precede a closing
// brace or bracket. Commas inside string values are not distinguished;
// the heuristic matches the failure modes models actually produce.
func RemoveTrailingCommas(s string) string {
	return trailingCommaRe.ReplaceAllString(s, "$1")
}

// EscapeEmbeddedQuotes re-escapes bare double quotes inside string
// values. A quote ends a value only when the next significant
// character is a JSON structural one; anything else means the quote is
// embedded prose and must become \". Already-escaped \" sequences pass
// through unchanged. Values whose embedded quote is itself followed by
// a structural character cannot be disambiguated and are left as-is.
func EscapeEmbeddedQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	inValue := false
	lastStructural := byte(0)

	for i := 0; i < len(s); i++ {
		c := s[i]

		if !inString {
			switch c {
			case '"':
				inString = true
				inValue = lastStructural == ':' || lastStructural == '[' || lastStructural == ','
				// Commas also precede keys inside objects; only treat
				// the string as a value when we are not right after a
				// comma that belongs to an object body.
				if lastStructural == ',' && !inArrayContext(s, i) {
					inValue = false
				}
			case ':', '{', '}', '[', ']', ',':
				lastStructural = c
			}
			b.WriteByte(c)
			continue
		}

		switch c {
		case '\\':
			b.WriteByte(c)
			if i+1 < len(s) {
				i++
				b.WriteByte(s[i])
			}
		case '"':
			if inValue && !isStringTerminator(s, i+1) {
				b.WriteString(`\"`)
				continue
			}
			inString = false
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// isStringTerminator reports whether the quote before s[i] closes its
// string, judged by the next significant character.
func isStringTerminator(s string, i int) bool {
	for ; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
			continue
		case ',', '}', ']', ':':
			return true
		default:
			return false
		}
	}
	return true // end of input closes the string
}

// inArrayContext walks back from the opening quote at s[i] to the
// nearest unmatched opener and reports whether it is a '['.
func inArrayContext(s string, i int) bool {
	depth := 0
	for j := i - 1; j >= 0; j-- {
		switch s[j] {
		case '}', ']':
			depth++
		case '{':
			if depth == 0 {
				return false
			}
			depth--
		case '[':
			if depth == 0 {
				return true
			}
			depth--
		}
	}
	return false
}

// Repair applies the structural repair stages to already-unfenced
// text: trailing-comma removal, then embedded-quote escaping.
func Repair(s string) string {
	s = RemoveTrailingCommas(s)
	s = EscapeEmbeddedQuotes(s)
	return s
}
