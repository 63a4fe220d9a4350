// Package versioncmder
package versioncmder

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/ssecodec/pkg/cliui"
	"github.com/papercomputeco/ssecodec/pkg/utils"
)

type VersionCommander struct{}

func NewVersionCmd() *cobra.Command {
	cmder := &VersionCommander{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "displays version",
		Long:  "displays the version of this CLI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.OutOrStdout())
		},
	}

	return cmd
}

func (c *VersionCommander) run(out io.Writer) error {
	fmt.Fprintf(out, "%s %s\n%s %s\n%s %s\n",
		cliui.KeyStyle.Render("Version:"), utils.Version,
		cliui.KeyStyle.Render("Sha:"), utils.Sha,
		cliui.KeyStyle.Render("Built at:"), utils.Buildtime,
	)
	return nil
}
