// Package parseutil implements small lexical helpers shared by the
// selector, transform, and format DSL parsers: whitespace trimming, name
// validation, and quote-aware byte scanning.
package parseutil

import "bytes"

// TrimASCIISpace trims leading/trailing ASCII whitespace from b, returning
// (nil, false) if b is entirely whitespace (or empty).
func TrimASCIISpace(b []byte) ([]byte, bool) {
	start := -1
	for i, c := range b {
		if !isASCIISpace(c) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, false
	}
	end := -1
	for i := len(b) - 1; i >= 0; i-- {
		if !isASCIISpace(b[i]) {
			end = i
			break
		}
	}
	return b[start : end+1], true
}

func isASCIISpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// CheckValidName reports whether every byte of b is alphanumeric, '_', or
// '*'.
func CheckValidName(b []byte) bool {
	for _, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '*':
		default:
			return false
		}
	}
	return len(b) > 0
}

// FindSkipQuotes returns the index of the first unescaped, unquoted
// occurrence of c in s, or -1 if none is found. Single-quoted spans (with
// '\' as the escape character) are skipped over entirely.
func FindSkipQuotes(s []byte, c byte) int {
	escape := false
	inQuotes := false

	for i, b := range s {
		switch {
		case b == '\'' && !escape && !inQuotes:
			inQuotes = true
		case b == '\'' && !escape && inQuotes:
			inQuotes = false
		case b == '\\' && !escape:
			escape = true
		case !inQuotes && !escape && b == c:
			return i
		default:
			escape = false
		}
	}
	return -1
}

// SplitTrimmed splits s on sep, trimming ASCII whitespace from each part.
func SplitTrimmed(s []byte, sep byte) [][]byte {
	parts := bytes.Split(s, []byte{sep})
	out := make([][]byte, len(parts))
	for i, p := range parts {
		if trimmed, ok := TrimASCIISpace(p); ok {
			out[i] = trimmed
		} else {
			out[i] = p[:0]
		}
	}
	return out
}
