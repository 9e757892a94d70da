package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// bom is the UTF-8 byte-order marker occasionally found at the start of
// manifest files written on Windows. It is stripped before parsing and
// restored verbatim on output.
const bom = "\uFEFF"

// ParseError reports that the input text is not well-formed JSON. It is the
// only failure mode of the formatter.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing manifest: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// parse decodes text into an order-preserving value tree. Numbers are kept
// as json.Number so their input literal survives re-rendering. The caller
// must strip a leading BOM first.
func parse(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	// A well-formed document holds exactly one top-level value.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}

		return nil, &ParseError{Err: err}
	}

	return v, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	if delim, ok := tok.(json.Delim); ok {
		switch delim {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", delim.String())
		}
	}

	// string, bool, json.Number, or nil.
	return tok, nil
}

func parseObject(dec *json.Decoder) (*Object, error) {
	obj := &Object{}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key %v is not a string", keyTok)
		}

		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}

		obj.Members = append(obj.Members, Member{Key: key, Value: val})
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return obj, nil
}

func parseArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}

	for dec.More() {
		v, err := parseValue(dec)
		if err != nil {
			return nil, err
		}

		arr = append(arr, v)
	}

	// Consume the closing bracket.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return arr, nil
}
