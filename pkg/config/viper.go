package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/papercomputeco/ssecodec/pkg/dotdir"
)

// EnvPrefix prefixes every environment variable read by InitViper.
const EnvPrefix = "SSECODEC"

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the SSECODEC_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (SSECODEC_CODEC_SERIALIZER, SSECODEC_LOG_DEBUG, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	return initViper(dotdir.NewManager(), configDir)
}

func initViper(ddm *dotdir.Manager, configDir string) (*viper.Viper, error) {
	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Config file discovery via dotdir resolution.
	v.SetConfigName("config")
	v.SetConfigType("toml")

	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}
	v.AddConfigPath(target)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Environment variables: SSECODEC_CODEC_SERIALIZER, SSECODEC_LOG_JSON, etc.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// FromViper builds a validated Config from the resolved viper values.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Version: v.GetInt("version"),
		Codec: CodecConfig{
			Serializer:   v.GetString("codec.serializer"),
			Deserializer: v.GetString("codec.deserializer"),
			AutoID:       v.GetBool("codec.auto_id"),
		},
		Log: LogConfig{
			Debug:  v.GetBool("log.debug"),
			JSON:   v.GetBool("log.json"),
			Pretty: v.GetBool("log.pretty"),
			File:   v.GetString("log.file"),
			Source: v.GetBool("log.source"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Codec
	v.SetDefault("codec.serializer", d.Codec.Serializer)
	v.SetDefault("codec.deserializer", d.Codec.Deserializer)
	v.SetDefault("codec.auto_id", d.Codec.AutoID)

	// Log
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.pretty", d.Log.Pretty)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.source", d.Log.Source)
}
