package uci

import (
	"strings"
	"unicode"
)

// ParseCommand splits a raw protocol line into a command name and a
// keyword→value map, validated against the command's keyword schema.
// A blank line returns an empty command name with no error; the caller
// must treat that as a no-op.
//
// Values spanning multiple tokens are joined with a single space
// regardless of the original run of whitespace between them.
func ParseCommand(line string) (string, map[string]string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil, nil
	}

	name := line
	rest := ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		name = line[:i]
		rest = strings.TrimSpace(line[i:])
	}

	keywords, ok := knownCommands[name]
	if !ok {
		return "", nil, grammarf("unknown command: %s", name)
	}

	params := make(map[string]string)
	if name == "setoption" {
		params[setoptionArgsKey] = rest
		return name, params, nil
	}

	// slot is the keyword whose value is currently accumulating; sep is
	// empty before the first appended token and a single space after.
	slot := ""
	sep := ""
	for _, tok := range strings.Fields(rest) {
		if keywords[tok] {
			slot = tok
			sep = ""
			params[tok] = ""
			continue
		}
		if slot == "" {
			return "", nil, grammarf("unexpected token %s in command %s", tok, name)
		}
		params[slot] += sep + tok
		sep = " "
	}
	return name, params, nil
}
