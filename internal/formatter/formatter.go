package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
)

const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

const maxHeadingLevel = 6

// FormatMarkdownSummary renders text under an H1 title.
func FormatMarkdownSummary(text, title string) string {
	return fmt.Sprintf("# %s\n\n%s\n", title, text)
}

// JSON pretty-prints v with a two space indent. HTML characters and
// non-ASCII text are left as is.
func JSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// FormatStructuredOutput renders data as "json" or "markdown".
func FormatStructuredOutput(data any, format string) (string, error) {
	switch format {
	case FormatJSON:
		return JSON(data)
	case FormatMarkdown:
		return Markdown(data), nil
	default:
		return "", apperr.New(apperr.ErrUnsupportedFormat, "unsupported output format: %q", format)
	}
}

// Markdown renders objects as nested headings, lists as bullets and scalars
// as paragraphs. Headings deeper than level 6 become bold text.
func Markdown(data any) string {
	switch v := data.(type) {
	case *Object:
		return objectToMarkdown(v, 1)
	case map[string]any:
		return objectToMarkdown(fromMap(v), 1)
	case []any:
		return strings.Join(listToMarkdown(v, 1), "\n") + "\n"
	default:
		return scalar(v) + "\n"
	}
}

func objectToMarkdown(obj *Object, level int) string {
	var lines []string
	for _, key := range obj.Keys() {
		if level <= maxHeadingLevel {
			lines = append(lines, strings.Repeat("#", level)+" "+key)
		} else {
			lines = append(lines, "**"+key+"**")
		}

		value, _ := obj.Get(key)
		switch v := value.(type) {
		case *Object:
			lines = append(lines, objectToMarkdown(v, level+1))
		case map[string]any:
			lines = append(lines, objectToMarkdown(fromMap(v), level+1))
		case []any:
			lines = append(lines, listToMarkdown(v, level+1)...)
		default:
			lines = append(lines, scalar(v)+"\n")
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

func listToMarkdown(items []any, level int) []string {
	var lines []string
	for _, item := range items {
		switch v := item.(type) {
		case *Object:
			lines = append(lines, objectToMarkdown(v, level))
		case map[string]any:
			lines = append(lines, objectToMarkdown(fromMap(v), level))
		default:
			lines = append(lines, "- "+scalar(v))
		}
	}
	return lines
}

func scalar(v any) string {
	switch s := v.(type) {
	case nil:
		return "null"
	case string:
		return s
	case json.Number:
		return s.String()
	case []any:
		b, err := marshalNoEscape(s)
		if err != nil {
			return fmt.Sprint(s)
		}
		return string(b)
	default:
		return fmt.Sprint(s)
	}
}

func fromMap(m map[string]any) *Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	obj := NewObject()
	for _, k := range keys {
		obj.Set(k, m[k])
	}
	return obj
}

// ValidateJSONStructure checks that every required key is present. A key
// holding null counts as present.
func ValidateJSONStructure(obj *Object, required []string) error {
	var missing []string
	for _, key := range required {
		if _, ok := obj.Get(key); !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return apperr.New(apperr.ErrMissingKeys, "missing required keys in JSON structure: %s", strings.Join(missing, ", "))
	}
	return nil
}
