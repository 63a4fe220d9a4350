package configcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/ssecodec/pkg/cliui"
	"github.com/papercomputeco/ssecodec/pkg/config"
)

const getLongDesc string = `Get a configuration value.

Prints the value of the given key from config.toml, or its default when
the file or key is absent.

Examples:
  ssecodec config get codec.serializer
  ssecodec config get log.file`

const getShortDesc string = "Get a configuration value"

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "get <key>",
		Short:             getShortDesc,
		Long:              getLongDesc,
		Args:              cobra.ExactArgs(1),
		RunE:              func(cmd *cobra.Command, args []string) error { return runGet(cmd, args[0]) },
		ValidArgsFunction: completeKeys,
	}

	return cmd
}

func runGet(cmd *cobra.Command, key string) error {
	if !config.IsValidConfigKey(key) {
		return unknownKeyErr(key)
	}

	cfger, err := newConfiger(cmd)
	if err != nil {
		return err
	}

	value, err := cfger.GetConfigValue(key)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if value == "" {
		fmt.Fprintf(out, "%s  %s\n", cliui.KeyStyle.Render(key), cliui.DimStyle.Render("<not set>"))
	} else {
		fmt.Fprintf(out, "%s  %s\n", cliui.KeyStyle.Render(key), cliui.ValueStyle.Render(value))
	}

	return nil
}
