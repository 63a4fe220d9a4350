package sse

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

const (
	fieldEvent = "event"
	fieldID    = "id"
	fieldData  = "data"

	// terminator ends every frame: the newline closing the last field line
	// followed by the blank line.
	terminator = "\n\n"
)

// Stringify encodes msg as a single SSE frame.
//
// The payload is shaped in this order of precedence:
//  1. ser, when non-nil, produces the only data line.
//  2. []byte is base64 encoded.
//  3. Structured values (maps, slices, structs, pointers, json.RawMessage)
//     are encoded as compact JSON.
//  4. Strings are split on "\n", one data line per piece.
//  5. Scalars (bools and numbers) use their direct text form.
//
// Zero numbers, false and empty collections are valid payloads. A nil
// payload, an empty string (of any string type) or an empty byte slice fails
// with ErrMissingData.
func Stringify(msg Message, ser Serializer) (string, error) {
	if isMissing(msg.Data) {
		return "", ErrMissingData
	}
	if !isSingleLine(msg.Event) {
		return "", fmt.Errorf("%w: %s must be a single line", ErrInvalidFieldType, fieldEvent)
	}
	if !isSingleLine(msg.ID) {
		return "", fmt.Errorf("%w: %s must be a single line", ErrInvalidFieldType, fieldID)
	}

	lines, err := dataLines(msg.Data, ser)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if msg.Event != "" {
		writeField(&b, fieldEvent, msg.Event)
	}
	if msg.ID != "" {
		writeField(&b, fieldID, msg.ID)
	}
	for _, line := range lines {
		writeField(&b, fieldData, line)
	}
	b.WriteByte('\n')

	return b.String(), nil
}

// StringifyAll encodes msgs in order and concatenates the frames. The blank
// line ending each frame acts as the separator. The first message that fails
// to encode aborts the batch and no partial output is returned.
func StringifyAll(msgs []Message, ser Serializer) (string, error) {
	var b strings.Builder
	for i, msg := range msgs {
		frame, err := Stringify(msg, ser)
		if err != nil {
			return "", fmt.Errorf("message %d: %w", i, err)
		}
		b.WriteString(frame)
	}
	return b.String(), nil
}

func writeField(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteByte('\n')
}

func isSingleLine(s string) bool {
	return !strings.ContainsAny(s, "\r\n")
}

// isMissing reports whether data cannot be used as a payload.
func isMissing(data any) bool {
	switch v := data.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []byte:
		return len(v) == 0
	case json.RawMessage:
		return len(v) == 0
	}

	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// dataLines shapes a payload into the text of its data lines.
func dataLines(data any, ser Serializer) ([]string, error) {
	if ser != nil {
		out, err := ser(data)
		if err != nil {
			return nil, fmt.Errorf("serializing data: %w", err)
		}
		if !isSingleLine(out) {
			return nil, fmt.Errorf("%w: output must be a single line", ErrInvalidSerializerOutput)
		}
		return []string{out}, nil
	}

	switch v := data.(type) {
	case string:
		return strings.Split(v, "\n"), nil
	case []byte:
		return []string{base64.StdEncoding.EncodeToString(v)}, nil
	case json.RawMessage:
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			return nil, fmt.Errorf("encoding data as JSON: %w", err)
		}
		return []string{buf.String()}, nil
	case json.Number:
		return []string{v.String()}, nil
	}

	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.String:
		return strings.Split(rv.String(), "\n"), nil
	case reflect.Bool:
		return []string{strconv.FormatBool(rv.Bool())}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return []string{strconv.FormatInt(rv.Int(), 10)}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return []string{strconv.FormatUint(rv.Uint(), 10)}, nil
	case reflect.Float32, reflect.Float64:
		if s, ok := nonFinite(rv.Float()); ok {
			return []string{s}, nil
		}
	}

	out, err := marshalJSON(data)
	if err != nil {
		return nil, fmt.Errorf("encoding data as JSON: %w", err)
	}
	return []string{out}, nil
}

// nonFinite returns the JavaScript text form of NaN and the infinities,
// which JSON cannot represent.
func nonFinite(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return "NaN", true
	case math.IsInf(f, 1):
		return "Infinity", true
	case math.IsInf(f, -1):
		return "-Infinity", true
	default:
		return "", false
	}
}

// marshalJSON encodes v as compact JSON without HTML escaping and without
// the trailing newline json.Encoder appends.
func marshalJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
