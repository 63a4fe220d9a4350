package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/papercomputeco/ssecodec/pkg/dotdir"
	"github.com/papercomputeco/ssecodec/pkg/payload"
)

const (
	configFile = "config.toml"

	// v0 is the alpha version of the config
	v0 = 0

	// CurrentV is the currently supported version, points to v0
	CurrentV = v0
)

type Configer struct {
	ddm        *dotdir.Manager
	targetDir  string
	targetPath string
}

// NewConfiger resolves the .ssecodec/ directory (override first) and
// returns a Configer for the config.toml inside it. The directory is only
// created when the config is saved.
func NewConfiger(override string) (*Configer, error) {
	return newConfiger(dotdir.NewManager(), override)
}

func newConfiger(ddm *dotdir.Manager, override string) (*Configer, error) {
	target, err := ddm.Target(override)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(target, configFile)
	_, err = os.Stat(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return &Configer{
		ddm:        ddm,
		targetDir:  target,
		targetPath: path,
	}, nil
}

// ValidConfigKeys returns the list of all supported configuration key names,
// in the order they appear in config.toml.
func ValidConfigKeys() []string {
	ordered := []string{
		"codec.serializer",
		"codec.deserializer",
		"codec.auto_id",
		"log.debug",
		"log.json",
		"log.pretty",
		"log.file",
		"log.source",
	}

	result := make([]string, 0, len(ordered))
	for _, k := range ordered {
		if _, ok := configKeys[k]; ok {
			result = append(result, k)
		}
	}
	return result
}

// IsValidConfigKey returns true if the given key is a supported configuration key.
func IsValidConfigKey(key string) bool {
	_, ok := configKeys[key]
	return ok
}

func (c *Configer) GetTarget() string {
	return c.targetPath
}

// LoadConfig loads config.toml from the target .ssecodec/ directory.
// If the file does not exist, returns NewDefaultConfig() so callers always
// receive a fully-populated Config. Fields set in the file override the
// defaults, including explicit false values.
func (c *Configer) LoadConfig() (*Config, error) {
	data, err := os.ReadFile(c.targetPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return ParseConfigTOML(data)
}

// SaveConfig persists the configuration to config.toml, creating the
// .ssecodec/ directory if needed.
func (c *Configer) SaveConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("cannot save nil config")
	}

	if c.targetPath == "" {
		return errors.New("cannot save empty target path")
	}

	if err := c.ddm.Ensure(c.targetDir); err != nil {
		return err
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(c.targetPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// SetConfigValue loads the config, sets the given key to the given value, and saves it.
// Returns an error if the key is not a valid config key or the value is invalid.
func (c *Configer) SetConfigValue(key string, value string) error {
	info, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key: %q", key)
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		return err
	}

	if err := info.set(cfg, value); err != nil {
		return err
	}

	return c.SaveConfig(cfg)
}

// GetConfigValue loads the config and returns the string representation of the given key.
// Returns an error if the key is not a valid config key.
func (c *Configer) GetConfigValue(key string) (string, error) {
	info, ok := configKeys[key]
	if !ok {
		return "", fmt.Errorf("unknown config key: %q", key)
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		return "", err
	}

	return info.get(cfg), nil
}

// ParseConfigTOML parses raw TOML bytes on top of NewDefaultConfig, so
// keys missing from the document keep their defaults.
// Returns an error if the version is unsupported or a format name is unknown.
func ParseConfigTOML(data []byte) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config TOML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the config version and payload format names.
func (c *Config) Validate() error {
	if c.Version != CurrentV {
		return fmt.Errorf("unsupported config version %d (expected %d)", c.Version, CurrentV)
	}

	if _, err := payload.Lookup(c.Codec.Serializer); err != nil {
		return fmt.Errorf("codec.serializer: %w", err)
	}
	if _, err := payload.Lookup(c.Codec.Deserializer); err != nil {
		return fmt.Errorf("codec.deserializer: %w", err)
	}

	return nil
}
