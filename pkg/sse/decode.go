package sse

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Parse decodes a single SSE frame into a Message.
//
// An empty frame yields an empty Message and no error. Any other input must
// end with "\n\n" or Parse fails with ErrMalformedFrame.
//
// Each line is split on its colons. The first piece is the field name and
// the rest, each trimmed of surrounding whitespace, rejoin with ":" as the
// value. Lines with an empty field name are
// comments and are skipped. A repeated field is joined to the previous value
// with "\n", which reassembles multi-line data. Fields other than "event",
// "id" and "data" are ignored.
//
// When de is nil and the data starts with '{' or '[', it is decoded as JSON.
// Other data is left as a string.
func Parse(frame string, de Deserializer) (Message, error) {
	if frame == "" {
		return Message{}, nil
	}
	if !strings.HasSuffix(frame, terminator) {
		return Message{}, ErrMalformedFrame
	}

	fields := make(map[string]string, 3)
	for _, line := range strings.Split(strings.TrimSuffix(frame, terminator), "\n") {
		key, value := splitField(line)
		if key == "" {
			continue
		}

		if prev, ok := fields[key]; ok {
			fields[key] = prev + "\n" + value
		} else {
			fields[key] = value
		}
	}

	msg := Message{
		Event: fields[fieldEvent],
		ID:    fields[fieldID],
	}

	data, ok := fields[fieldData]
	switch {
	case !ok:
		return msg, nil
	case data == "":
		msg.Data = data
		return msg, nil
	}

	payload, err := decodeData(data, de)
	if err != nil {
		return Message{}, err
	}
	msg.Data = payload

	return msg, nil
}

// ParseBytes is Parse for a frame held in a byte slice.
func ParseBytes(frame []byte, de Deserializer) (Message, error) {
	return Parse(string(frame), de)
}

// ParseAll decodes text holding zero or more frames, in order. Empty
// segments between terminators are skipped, and the final frame may omit its
// terminator. Comment-only frames yield empty Messages so positions are
// preserved. The first frame that fails to decode aborts the batch.
func ParseAll(text string, de Deserializer) ([]Message, error) {
	if text == "" {
		return []Message{}, nil
	}

	segments := strings.Split(text, terminator)
	msgs := make([]Message, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}

		msg, err := Parse(segment+terminator, de)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", len(msgs), err)
		}
		msgs = append(msgs, msg)
	}

	return msgs, nil
}

// splitField splits a line into its trimmed field name and value. Colons
// after the first belong to the value; each colon-separated piece of the
// value is trimmed on its own. A line without a colon is a field name with
// an empty value.
func splitField(line string) (string, string) {
	parts := strings.Split(line, ":")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts[0], strings.Join(parts[1:], ":")
}

func decodeData(data string, de Deserializer) (any, error) {
	if de != nil {
		payload, err := de(data)
		if err != nil {
			return nil, fmt.Errorf("deserializing data: %w", err)
		}
		return payload, nil
	}

	if data[0] != '{' && data[0] != '[' {
		return data, nil
	}

	var payload any
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, fmt.Errorf("decoding data as JSON: %w", err)
	}
	return payload, nil
}
