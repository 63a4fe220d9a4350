package sse

// Codec bundles an optional Serializer and Deserializer so callers can
// configure payload handling once. The zero Codec uses the default payload
// shaping and the JSON detection heuristic.
type Codec struct {
	Serializer   Serializer
	Deserializer Deserializer
}

// Encode is Stringify with the codec's Serializer.
func (c Codec) Encode(msg Message) (string, error) {
	return Stringify(msg, c.Serializer)
}

// EncodeAll is StringifyAll with the codec's Serializer.
func (c Codec) EncodeAll(msgs []Message) (string, error) {
	return StringifyAll(msgs, c.Serializer)
}

// Decode is Parse with the codec's Deserializer.
func (c Codec) Decode(frame string) (Message, error) {
	return Parse(frame, c.Deserializer)
}

// DecodeAll is ParseAll with the codec's Deserializer.
func (c Codec) DecodeAll(text string) ([]Message, error) {
	return ParseAll(text, c.Deserializer)
}
