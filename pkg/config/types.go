package config

import (
	"fmt"
	"strconv"

	"github.com/papercomputeco/ssecodec/pkg/payload"
)

// Config represents the persistent ssecodec configuration stored as
// config.toml in the .ssecodec/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version int         `toml:"version"`
	Codec   CodecConfig `toml:"codec"`
	Log     LogConfig   `toml:"log"`
}

// CodecConfig selects the payload formats used by encode and decode.
// Format names are those registered in the payload package.
type CodecConfig struct {
	Serializer   string `toml:"serializer,omitempty"`
	Deserializer string `toml:"deserializer,omitempty"`

	// AutoID stamps a fresh UUID on encoded messages that carry no id.
	AutoID bool `toml:"auto_id"`
}

// LogConfig holds CLI logging settings. Logs always go to stderr; File adds
// a JSON log file alongside.
type LogConfig struct {
	Debug  bool   `toml:"debug"`
	JSON   bool   `toml:"json"`
	Pretty bool   `toml:"pretty"`
	File   string `toml:"file,omitempty"`

	// Source adds the file:line of each log call to records.
	Source bool `toml:"source"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"codec.serializer": {
		get: func(c *Config) string { return c.Codec.Serializer },
		set: func(c *Config, v string) error {
			if !payload.IsValid(v) {
				return fmt.Errorf("invalid value for codec.serializer: %w", unknownFormat(v))
			}
			c.Codec.Serializer = v
			return nil
		},
	},
	"codec.deserializer": {
		get: func(c *Config) string { return c.Codec.Deserializer },
		set: func(c *Config, v string) error {
			if !payload.IsValid(v) {
				return fmt.Errorf("invalid value for codec.deserializer: %w", unknownFormat(v))
			}
			c.Codec.Deserializer = v
			return nil
		},
	},
	"codec.auto_id": boolKey("codec.auto_id", func(c *Config) *bool { return &c.Codec.AutoID }),
	"log.debug":     boolKey("log.debug", func(c *Config) *bool { return &c.Log.Debug }),
	"log.json":      boolKey("log.json", func(c *Config) *bool { return &c.Log.JSON }),
	"log.pretty":    boolKey("log.pretty", func(c *Config) *bool { return &c.Log.Pretty }),
	"log.source": boolKey("log.source", func(c *Config) *bool { return &c.Log.Source }),
	"log.file": {
		get: func(c *Config) string { return c.Log.File },
		set: func(c *Config, v string) error { c.Log.File = v; return nil },
	},
}

func boolKey(name string, field func(c *Config) *bool) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string { return strconv.FormatBool(*field(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			*field(c) = b
			return nil
		},
	}
}

func unknownFormat(name string) error {
	_, err := payload.Lookup(name)
	return err
}
