package configcmder

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/ssecodec/pkg/cliui"
	"github.com/papercomputeco/ssecodec/pkg/config"
)

const setLongDesc string = `Set a configuration value.

Sets the given key to the provided value in the config.toml file
stored in the .ssecodec/ directory, creating both if needed. Keys use
dotted notation matching the TOML section structure.

Valid keys:
  codec.serializer, codec.deserializer, codec.auto_id,
  log.debug, log.json, log.pretty, log.file, log.source

Examples:
  ssecodec config set codec.serializer json
  ssecodec config set log.pretty false`

const setShortDesc string = "Set a configuration value"

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: setShortDesc,
		Long:  setLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, args[0], args[1])
		},
		ValidArgsFunction: completeKeys,
	}

	return cmd
}

func runSet(cmd *cobra.Command, key, value string) error {
	if !config.IsValidConfigKey(key) {
		return unknownKeyErr(key)
	}

	cfger, err := newConfiger(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printTarget(out, cfger.GetTarget())

	err = cfger.SetConfigValue(key, value)
	fmt.Fprintf(out, "  %s Set %s = %s\n\n",
		cliui.Mark(err),
		cliui.KeyStyle.Render(key),
		cliui.ValueStyle.Render(value),
	)
	return err
}

func printTarget(out io.Writer, target string) {
	fmt.Fprintf(out, "\n  %s %s\n\n",
		cliui.KeyStyle.Render("Config file:"),
		cliui.DimStyle.Render(target),
	)
}
