package formatter

import (
	"strings"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
)

// extractState is a step of the JSON extraction state machine.
type extractState int

const (
	stateFenced extractState = iota
	stateSpan
	stateWhole
	stateParse
)

// ExtractJSON pulls a JSON value out of model output that may wrap it in
// prose or markdown fences. Candidates are tried in a fixed order: a fenced
// ```json block, the first balanced {...} or [...] span, then the whole
// trimmed text. The first candidate found is parsed; objects come back as
// *Object.
func ExtractJSON(text string) (any, error) {
	var candidate string
	state := stateFenced

	for state != stateParse {
		var found bool
		switch state {
		case stateFenced:
			candidate, found = FencedBlock(text)
			state = stateSpan
		case stateSpan:
			candidate, found = BalancedSpan(text)
			state = stateWhole
		case stateWhole:
			candidate, found = strings.TrimSpace(text), true
		}
		if found {
			state = stateParse
		}
	}

	v, err := Parse(candidate)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrJSONExtraction, err, "failed to extract valid JSON from text")
	}
	return v, nil
}

// FencedBlock returns the body of the first ``` fence tagged json (or
// untagged) whose trimmed body is brace or bracket delimited.
func FencedBlock(text string) (string, bool) {
	const fence = "```"
	rest := text
	for {
		open := strings.Index(rest, fence)
		if open < 0 {
			return "", false
		}
		rest = rest[open+len(fence):]

		closing := strings.Index(rest, fence)
		if closing < 0 {
			return "", false
		}
		inner := rest[:closing]
		rest = rest[closing+len(fence):]

		tag, body := "", inner
		if nl := strings.IndexByte(inner, '\n'); nl >= 0 {
			tag, body = strings.TrimSpace(inner[:nl]), inner[nl+1:]
		}
		if strings.HasPrefix(tag, "{") || strings.HasPrefix(tag, "[") {
			tag, body = "", inner
		}
		if tag != "" && !strings.EqualFold(tag, "json") {
			continue
		}

		body = strings.TrimSpace(body)
		if isDelimited(body) {
			return body, true
		}
	}
}

func isDelimited(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return (first == '{' && last == '}') || (first == '[' && last == ']')
}

// BalancedSpan returns the first {...} or [...] span in text whose brackets
// balance, ignoring brackets inside string literals.
func BalancedSpan(text string) (string, bool) {
	for start := 0; start < len(text); start++ {
		if text[start] != '{' && text[start] != '[' {
			continue
		}
		if end, ok := matchSpan(text, start); ok {
			return text[start : end+1], true
		}
	}
	return "", false
}

// matchSpan returns the index closing the bracket opened at text[start].
func matchSpan(text string, start int) (int, bool) {
	var stack []byte
	inString, escaped := false, false

	for i := start; i < len(text); i++ {
		c := text[i]
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
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return 0, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
