// Package sse provides a stateless codec for the SSE (Server-Sent Events)
// wire text format. It turns a Message into a single text frame and parses
// frames back into Messages, with batch variants for sequences of frames.
//
// The codec performs no I/O and keeps no state between calls: it does not
// read from connections, buffer partial input, or manage a live stream.
// Every function is safe for concurrent use.
//
// A frame produced by this package has the shape:
//
//	event: <event>\n   (optional)
//	id: <id>\n         (optional)
//	data: <line>\n     (one or more)
//	\n
//
// Wire format reference:
// https://html.spec.whatwg.org/multipage/server-sent-events.html
package sse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Message is a single SSE event as exchanged with callers.
type Message struct {
	// Event is the SSE event type from the "event:" field.
	// An empty string means the field is absent.
	Event string

	// ID is the event ID from the "id:" field, used by clients to resume
	// a stream. An empty string means the field is absent.
	ID string

	// Data is the payload. When encoding it may be a string, a []byte, a
	// JSON-serializable value, or a scalar. When decoding it holds the
	// newline-joined "data:" lines, the parsed JSON value, or whatever the
	// Deserializer returned. Nil means no "data:" field was present.
	Data any
}

// Serializer turns a payload into the text of a single data line.
type Serializer func(payload any) (string, error)

// Deserializer turns the newline-joined data lines of a frame into a payload.
type Deserializer func(data string) (any, error)

// wireMessage is the JSON shape of a Message.
type wireMessage struct {
	Event string `json:"event,omitempty"`
	ID    string `json:"id,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// MarshalJSON encodes the message as {"event":...,"id":...,"data":...},
// omitting absent fields. HTML characters are left unescaped; json.Marshal
// still escapes them when it calls this method.
func (m Message) MarshalJSON() ([]byte, error) {
	s, err := marshalJSON(wireMessage(m))
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalJSON decodes a JSON object into the message. Unlike a plain
// struct decode, it reports a non-object document as ErrInvalidInputType and
// a non-string "event" or "id" as ErrInvalidFieldType, unless the message
// also lacks usable data, which is ErrMissingData. A JSON null for
// either field is treated as absent. Numeric payloads keep their original
// text as a json.Number.
func (m *Message) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("%w: message must be a JSON object", ErrInvalidInputType)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return fmt.Errorf("decoding message: %w", err)
	}

	out := Message{}

	// Field type errors wait until data is known: a message without usable
	// data reports ErrMissingData first, the same order Stringify checks in.
	event, eventErr := stringField(fields, "event")
	id, idErr := stringField(fields, "id")

	if raw, ok := fields["data"]; ok {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&out.Data); err != nil {
			return fmt.Errorf("decoding data: %w", err)
		}
	}

	if fieldErr := errors.Join(eventErr, idErr); fieldErr != nil {
		if isMissing(out.Data) {
			return ErrMissingData
		}
		return fieldErr
	}

	out.Event, out.ID = event, id
	*m = out
	return nil
}

// stringField extracts an optional string field from a decoded JSON object.
func stringField(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %s must be a string", ErrInvalidFieldType, key)
	}
	return s, nil
}

// DecodeMessages decodes a JSON array of message objects. It is the entry
// point for untyped input such as files or request bodies, and is where
// shape errors surface: a document that is not an array, or an element that
// is not an object, fails with ErrInvalidInputType.
func DecodeMessages(raw []byte) ([]Message, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array of messages", ErrInvalidInputType)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("decoding messages: %w", err)
	}

	msgs := make([]Message, len(items))
	for i, item := range items {
		if err := msgs[i].UnmarshalJSON(item); err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
	}

	return msgs, nil
}
