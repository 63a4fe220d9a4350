package config

import "github.com/papercomputeco/ssecodec/pkg/payload"

const (
	defaultSerializer   = payload.Auto
	defaultDeserializer = payload.Auto
	defaultLogPretty    = true
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Codec: CodecConfig{
			Serializer:   defaultSerializer,
			Deserializer: defaultDeserializer,
		},
		Log: LogConfig{
			Pretty: defaultLogPretty,
		},
	}
}
