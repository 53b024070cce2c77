package structured

import "strings"

// Extract returns the first balanced JSON object embedded in raw text, or
// false when none exists. Models frequently wrap payloads in markdown fences
// or prose; this is the bounded recovery applied before a decode is retried.
func Extract(raw string) (string, bool) {
	raw = stripFences(raw)

	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}

// stripFences unwraps a ```json ... ``` (or bare ```) code block when the
// text contains one.
func stripFences(raw string) string {
	open := strings.Index(raw, "```")
	if open < 0 {
		return raw
	}
	rest := raw[open+3:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		// Drop the language tag on the fence line, if any.
		rest = rest[nl+1:]
	}
	if close := strings.Index(rest, "```"); close >= 0 {
		rest = rest[:close]
	}
	return rest
}
