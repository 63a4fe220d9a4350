package sse

import "errors"

var (
	// ErrMissingData is returned when encoding a message without a usable payload.
	ErrMissingData = errors.New("message has no data")

	// ErrInvalidFieldType is returned when "event" or "id" is not a
	// single-line string.
	ErrInvalidFieldType = errors.New("invalid field type")

	// ErrInvalidSerializerOutput is returned when a Serializer produces text
	// that cannot be carried on a single data line.
	ErrInvalidSerializerOutput = errors.New("invalid serializer output")

	// ErrInvalidInputType is returned when untyped input does not have the
	// expected shape (e.g. a batch that is not a list).
	ErrInvalidInputType = errors.New("invalid input type")

	// ErrMalformedFrame is returned when a frame is not terminated by a blank line.
	ErrMalformedFrame = errors.New(`malformed frame: must end with "\n\n"`)
)
