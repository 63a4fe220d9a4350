package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands (e.g., --debug
// on "ssecodec encode" and "ssecodec decode").
type Flag struct {
	// Name is the long flag name (e.g. "serializer").
	Name string

	// Shorthand is the one-letter short flag (e.g. "s"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "codec.serializer").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag, AddBoolFlag,
// and BindRegisteredFlags to avoid typos or drift from one command to another.
const (
	FlagSerializer   = "serializer"
	FlagDeserializer = "deserializer"
	FlagAutoID       = "auto-id"
	FlagDebug        = "debug"
	FlagLogJSON      = "log-json"
	FlagLogFile      = "log-file"
	FlagLogSource    = "log-source"
)

// Flags is the registry shared by all ssecodec commands.
var Flags = FlagSet{
	FlagSerializer: {
		Name:        "serializer",
		Shorthand:   "s",
		ViperKey:    "codec.serializer",
		Description: "Payload format used to encode data (auto, json, text, base64)",
	},
	FlagDeserializer: {
		Name:        "deserializer",
		Shorthand:   "D",
		ViperKey:    "codec.deserializer",
		Description: "Payload format used to decode data (auto, json, text, base64)",
	},
	FlagAutoID: {
		Name:        "auto-id",
		ViperKey:    "codec.auto_id",
		Description: "Assign a UUID to messages without an id",
	},
	FlagDebug: {
		Name:        "debug",
		Shorthand:   "d",
		ViperKey:    "log.debug",
		Description: "Enable debug logging",
	},
	FlagLogJSON: {
		Name:        "log-json",
		ViperKey:    "log.json",
		Description: "Write logs to stderr as JSON",
	},
	FlagLogSource: {
		Name:        "log-source",
		ViperKey:    "log.source",
		Description: "Include the source file:line of each log call",
	},
	FlagLogFile: {
		Name:        "log-file",
		ViperKey:    "log.file",
		Description: "Also write JSON logs to this file",
	},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddBoolFlag registers a bool flag on cmd from the given FlagSet.
func AddBoolFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *bool) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultBool(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().BoolVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().BoolVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddPersistentBoolFlag registers a bool flag on cmd that its subcommands
// inherit. There is no target variable: the value is only read back through
// viper once BindRegisteredFlags has bound it.
func AddPersistentBoolFlag(cmd *cobra.Command, fs FlagSet, registryKey string) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}
	cmd.PersistentFlags().BoolP(def.Name, def.Shorthand, defaultBool(def.ViperKey), def.Description)
}

// AddPersistentStringFlag is AddPersistentBoolFlag for string flags.
func AddPersistentStringFlag(cmd *cobra.Command, fs FlagSet, registryKey string) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}
	cmd.PersistentFlags().StringP(def.Name, def.Shorthand, defaultString(def.ViperKey), def.Description)
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
// Persistent flags inherited from parent commands are found as well.
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			f = cmd.InheritedFlags().Lookup(def.Name)
		}
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	v := viper.New()
	setViperDefaults(v)
	return v.GetString(viperKey)
}

// defaultBool returns the default bool value for a viper key from NewDefaultConfig.
func defaultBool(viperKey string) bool {
	v := viper.New()
	setViperDefaults(v)
	return v.GetBool(viperKey)
}
