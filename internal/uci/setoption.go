package uci

import (
	"strings"
	"unicode"
)

// SetOption is the parsed form of a setoption line. Name and Value are
// never empty; Context is empty when the optional trailing clause is
// absent.
type SetOption struct {
	Name    string
	Value   string
	Context string
}

// ParseSetOption parses the trimmed remainder of a setoption line:
//
//	name <NAME> value <VALUE> [context <CONTEXT>]
//
// The value payload is unstructured free text and may contain the word
// "context"; only the last whitespace-bounded occurrence after the
// value keyword is treated as the start of the context clause. Interior
// whitespace inside the value is preserved; leading and trailing
// whitespace is trimmed.
func ParseSetOption(args string) (SetOption, error) {
	const (
		nameTok    = "name"
		valueTok   = "value"
		contextTok = "context"
	)

	args = strings.TrimSpace(args)
	if !strings.HasPrefix(args, nameTok) || len(args) <= len(nameTok) ||
		!isSpaceAt(args, len(nameTok)) {
		return SetOption{}, grammarf("malformed setoption (expected name)")
	}
	rest := strings.TrimSpace(args[len(nameTok):])

	vi := boundedIndex(rest, valueTok)
	if vi < 0 {
		return SetOption{}, grammarf("malformed setoption (missing value)")
	}
	so := SetOption{Name: strings.TrimSpace(rest[:vi])}
	if so.Name == "" {
		return SetOption{}, grammarf("empty option name")
	}
	rest = strings.TrimSpace(rest[vi+len(valueTok):])

	if ci := boundedLastIndex(rest, contextTok); ci >= 0 {
		so.Value = strings.TrimSpace(rest[:ci])
		so.Context = strings.TrimSpace(rest[ci+len(contextTok):])
		if so.Context == "" {
			return SetOption{}, grammarf("empty context for %s", so.Name)
		}
	} else {
		so.Value = rest
	}

	if so.Value == "" {
		return SetOption{}, grammarf("empty option value")
	}
	return so, nil
}

// boundedIndex returns the first occurrence of kw in s that is preceded
// by start-of-text or whitespace and followed by end-of-text or
// whitespace, or -1. An occurrence embedded inside a larger word does
// not match.
func boundedIndex(s, kw string) int {
	for off := 0; off <= len(s)-len(kw); {
		i := strings.Index(s[off:], kw)
		if i < 0 {
			return -1
		}
		i += off
		if bounded(s, i, len(kw)) {
			return i
		}
		off = i + 1
	}
	return -1
}

// boundedLastIndex is boundedIndex scanning right to left.
func boundedLastIndex(s, kw string) int {
	for end := len(s); end >= len(kw); {
		i := strings.LastIndex(s[:end], kw)
		if i < 0 {
			return -1
		}
		if bounded(s, i, len(kw)) {
			return i
		}
		end = i + len(kw) - 1
	}
	return -1
}

func bounded(s string, i, n int) bool {
	return (i == 0 || isSpaceAt(s, i-1)) && (i+n == len(s) || isSpaceAt(s, i+n))
}

func isSpaceAt(s string, i int) bool {
	return unicode.IsSpace(rune(s[i]))
}
