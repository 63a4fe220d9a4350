// Package ssecodeccmder
package ssecodeccmder

import (
	"github.com/spf13/cobra"

	versioncmder "github.com/papercomputeco/ssecodec/cmd/version"
	"github.com/papercomputeco/ssecodec/cmd/ssecodec/cmdutil"
	configcmder "github.com/papercomputeco/ssecodec/cmd/ssecodec/config"
	decodecmder "github.com/papercomputeco/ssecodec/cmd/ssecodec/decode"
	encodecmder "github.com/papercomputeco/ssecodec/cmd/ssecodec/encode"
	"github.com/papercomputeco/ssecodec/pkg/config"
)

const ssecodecLongDesc string = `ssecodec converts between JSON messages and Server-Sent Events text.

Run the codec using:
  ssecodec encode [file]    JSON message array -> SSE frames
  ssecodec decode [file]    SSE frames -> JSON message array

Defaults for payload formats and logging are read from config.toml in the
.ssecodec/ directory and SSECODEC_* environment variables. Flags always win.`

const ssecodecShortDesc string = "ssecodec - Server-Sent Events codec"

func NewSSECodecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ssecodec",
		Short:         ssecodecShortDesc,
		Long:          ssecodecLongDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Global flags, read back through viper by each subcommand
	cmd.PersistentFlags().String(cmdutil.ConfigDirFlag, "", "Override the .ssecodec/ config directory")
	config.AddPersistentBoolFlag(cmd, config.Flags, config.FlagDebug)
	config.AddPersistentBoolFlag(cmd, config.Flags, config.FlagLogJSON)
	config.AddPersistentBoolFlag(cmd, config.Flags, config.FlagLogSource)
	config.AddPersistentStringFlag(cmd, config.Flags, config.FlagLogFile)

	// Add subcommands
	cmd.AddCommand(encodecmder.NewEncodeCmd())
	cmd.AddCommand(decodecmder.NewDecodeCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
