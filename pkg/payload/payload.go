// Package payload provides named payload formats that plug into the sse
// codec as Serializer/Deserializer pairs. Formats are selected by name from
// configuration or CLI flags.
//
// Usage:
//
//	f, err := payload.Lookup("base64")
//	frame, err := f.Codec().Encode(sse.Message{Data: []byte{0xff}})
package payload

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/papercomputeco/ssecodec/pkg/sse"
)

const (
	// Auto uses the codec's built-in payload shaping and JSON detection.
	Auto = "auto"

	// JSON always encodes payloads as JSON and always decodes data as JSON.
	JSON = "json"

	// Text writes payloads with fmt.Sprint and returns data verbatim.
	Text = "text"

	// Base64 encodes string or byte payloads as base64 and decodes data
	// back into bytes.
	Base64 = "base64"
)

// ErrUnknownFormat is returned when looking up an unregistered format name.
var ErrUnknownFormat = errors.New("unknown payload format")

// Format is a named pair of payload hooks. A nil hook means the codec's
// default behavior for that direction.
type Format struct {
	Name         string
	Serializer   sse.Serializer
	Deserializer sse.Deserializer
}

// Codec returns an sse.Codec using the format's hooks.
func (f Format) Codec() sse.Codec {
	return sse.Codec{
		Serializer:   f.Serializer,
		Deserializer: f.Deserializer,
	}
}

var formats = map[string]Format{
	Auto: {Name: Auto},
	JSON: {
		Name:         JSON,
		Serializer:   serializeJSON,
		Deserializer: deserializeJSON,
	},
	Text: {
		Name:         Text,
		Serializer:   serializeText,
		Deserializer: deserializeText,
	},
	Base64: {
		Name:         Base64,
		Serializer:   serializeBase64,
		Deserializer: deserializeBase64,
	},
}

// Lookup returns the format registered under name. Names are case
// insensitive and an empty name selects Auto.
func Lookup(name string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = Auto
	}

	f, ok := formats[key]
	if !ok {
		return Format{}, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownFormat, name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// IsValid reports whether name selects a registered format.
func IsValid(name string) bool {
	_, err := Lookup(name)
	return err == nil
}

// Names returns the sorted names of all registered formats.
func Names() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func serializeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshaling payload: %w", err)
	}
	return string(b), nil
}

func deserializeJSON(data string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, fmt.Errorf("unmarshaling payload: %w", err)
	}
	return v, nil
}

func serializeText(v any) (string, error) {
	return fmt.Sprint(v), nil
}

func deserializeText(data string) (any, error) {
	return data, nil
}

func serializeBase64(v any) (string, error) {
	switch p := v.(type) {
	case []byte:
		return base64.StdEncoding.EncodeToString(p), nil
	case string:
		return base64.StdEncoding.EncodeToString([]byte(p)), nil
	default:
		return "", fmt.Errorf("base64 payload must be string or []byte, got %T", v)
	}
}

func deserializeBase64(data string) (any, error) {
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 payload: %w", err)
	}
	return b, nil
}
