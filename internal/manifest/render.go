package manifest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// indentUnit is the per-level indentation in pretty mode.
const indentUnit = "  "

// render renders a value tree to JSON text. Pretty output is multi-line with
// two-space indentation and a single trailing newline; compact output has no
// insignificant whitespace and no trailing newline.
func render(v any, pretty bool) string {
	var buf bytes.Buffer

	if pretty {
		writePretty(&buf, v, 0)
		buf.WriteByte('\n')
	} else {
		writeCompact(&buf, v)
	}

	return buf.String()
}

func writePretty(buf *bytes.Buffer, v any, depth int) {
	switch t := v.(type) {
	case *Object:
		if len(t.Members) == 0 {
			buf.WriteString("{}")
			return
		}

		buf.WriteString("{\n")

		for i, m := range t.Members {
			buf.WriteString(strings.Repeat(indentUnit, depth+1))
			writeString(buf, m.Key)
			buf.WriteString(": ")
			writePretty(buf, m.Value, depth+1)

			if i < len(t.Members)-1 {
				buf.WriteByte(',')
			}

			buf.WriteByte('\n')
		}

		buf.WriteString(strings.Repeat(indentUnit, depth))
		buf.WriteByte('}')
	case []any:
		if len(t) == 0 {
			buf.WriteString("[]")
			return
		}

		buf.WriteString("[\n")

		for i, e := range t {
			buf.WriteString(strings.Repeat(indentUnit, depth+1))
			writePretty(buf, e, depth+1)

			if i < len(t)-1 {
				buf.WriteByte(',')
			}

			buf.WriteByte('\n')
		}

		buf.WriteString(strings.Repeat(indentUnit, depth))
		buf.WriteByte(']')
	default:
		writeScalar(buf, v)
	}
}

func writeCompact(buf *bytes.Buffer, v any) {
	switch t := v.(type) {
	case *Object:
		buf.WriteByte('{')

		for i, m := range t.Members {
			if i > 0 {
				buf.WriteByte(',')
			}

			writeString(buf, m.Key)
			buf.WriteByte(':')
			writeCompact(buf, m.Value)
		}

		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')

		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}

			writeCompact(buf, e)
		}

		buf.WriteByte(']')
	default:
		writeScalar(buf, v)
	}
}

func writeScalar(buf *bytes.Buffer, v any) {
	switch t := v.(type) {
	case string:
		writeString(buf, t)
	case json.Number:
		// The original numeric literal, untouched.
		buf.WriteString(t.String())
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case nil:
		buf.WriteString("null")
	}
}

// writeString appends a JSON string literal. HTML escaping is disabled so
// URLs and shell snippets in manifests stay readable.
func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // encoding a string cannot fail

	// Encode appends a newline; drop it.
	buf.Truncate(buf.Len() - 1)
}
