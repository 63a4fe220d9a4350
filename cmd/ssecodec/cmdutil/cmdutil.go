// Package cmdutil holds the plumbing shared by ssecodec subcommands:
// resolving the effective config, building the logger, and reading input.
package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/papercomputeco/ssecodec/pkg/config"
	"github.com/papercomputeco/ssecodec/pkg/logger"
)

// ConfigDirFlag is the persistent flag that overrides .ssecodec/ resolution.
const ConfigDirFlag = "config-dir"

// globalFlags are bound on every command that resolves config.
var globalFlags = []string{
	config.FlagDebug,
	config.FlagLogJSON,
	config.FlagLogFile,
	config.FlagLogSource,
}

// ResolveConfig layers defaults, config.toml, SSECODEC_* environment
// variables and the given registered flags into a validated Config.
func ResolveConfig(cmd *cobra.Command, registryKeys ...string) (*config.Config, error) {
	configDir, _ := cmd.Flags().GetString(ConfigDirFlag)

	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, err
	}

	keys := append(append([]string{}, globalFlags...), registryKeys...)
	config.BindRegisteredFlags(v, cmd, config.Flags, keys)

	return config.FromViper(v)
}

// NewLogger builds the command logger from cfg. Records go to stderr, and
// also to cfg.File as JSON when set. The returned close func releases the
// log file.
func NewLogger(cfg config.LogConfig, stderr io.Writer) (*slog.Logger, func() error, error) {
	format := logger.FormatFor(cfg.JSON, cfg.Pretty)
	opts := []logger.Option{
		logger.WithWriter(stderr),
		logger.WithFormat(format),
		logger.WithDebug(cfg.Debug),
		logger.WithSource(cfg.Source),
	}

	if cfg.File == "" {
		return logger.New(opts...), func() error { return nil }, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	// stderr is already JSON, so one handler can write both.
	if format == logger.FormatJSON {
		return logger.New(append(opts, logger.WithWriters(f))...), f.Close, nil
	}

	file := logger.New(
		logger.WithWriter(f),
		logger.WithFormat(logger.FormatJSON),
		logger.WithDebug(cfg.Debug),
		logger.WithSource(cfg.Source),
	)
	return logger.Multi(logger.New(opts...), file), f.Close, nil
}

// ErrNoInput is returned when input would be read from an interactive
// terminal.
var ErrNoInput = errors.New("no input: pass a file or pipe data on stdin")

// ReadInput reads the whole input named by args: the file in args[0], or
// the command's stdin when there is no argument or it is "-". Stdin attached
// to a terminal fails with ErrNoInput instead of blocking.
func ReadInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return nil, "", ErrNoInput
		}

		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("reading stdin: %w", err)
		}
		return b, "stdin", nil
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("reading input: %w", err)
	}
	return b, args[0], nil
}
