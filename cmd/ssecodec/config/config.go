// Package configcmder provides the config command for managing persistent
// ssecodec configuration stored in the .ssecodec/ directory.
package configcmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/ssecodec/cmd/ssecodec/cmdutil"
	"github.com/papercomputeco/ssecodec/pkg/config"
)

const configLongDesc string = `Manage persistent ssecodec configuration.

Configuration is stored as config.toml in the .ssecodec/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values.

Keys use dotted notation matching the TOML section structure:
  codec.serializer, codec.deserializer, codec.auto_id,
  log.debug, log.json, log.pretty, log.file, log.source

Use subcommands to get, set, or list configuration values:
  ssecodec config set <key> <value>    Set a configuration value
  ssecodec config get <key>            Get a configuration value
  ssecodec config list                 List all configuration values

Examples:
  ssecodec config set codec.deserializer text
  ssecodec config set codec.auto_id true
  ssecodec config get codec.serializer
  ssecodec config list`

const configShortDesc string = "Manage persistent ssecodec configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

// newConfiger resolves the Configer for cmd, honoring --config-dir.
func newConfiger(cmd *cobra.Command) (*config.Configer, error) {
	configDir, _ := cmd.Flags().GetString(cmdutil.ConfigDirFlag)

	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfger, nil
}

func unknownKeyErr(key string) error {
	return fmt.Errorf("unknown config key: %q\n\nValid keys: %s",
		key, strings.Join(config.ValidConfigKeys(), ", "))
}

func completeKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.ValidConfigKeys(), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}
