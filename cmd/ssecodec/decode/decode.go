// Package decodecmder provides the decode command, which parses SSE frames
// into JSON messages.
package decodecmder

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/ssecodec/cmd/ssecodec/cmdutil"
	"github.com/papercomputeco/ssecodec/pkg/config"
	"github.com/papercomputeco/ssecodec/pkg/logger"
	"github.com/papercomputeco/ssecodec/pkg/payload"
	"github.com/papercomputeco/ssecodec/pkg/utils"
)

const decodeLongDesc string = `Decode Server-Sent Events frames into JSON messages.

Reads SSE text from the given file, or from stdin when no file (or "-") is
given, and writes the messages to stdout as a JSON array. Frames are
separated by a blank line; the last frame may omit it. Comment-only frames
(e.g. ": keep-alive") decode to empty objects so positions are preserved.

Without a --deserializer, data starting with "{" or "[" is parsed as JSON
and anything else is kept as a string.

Examples:
  ssecodec decode capture.txt
  curl -sN https://example.com/stream | ssecodec decode --lines
  ssecodec decode --deserializer text capture.txt`

const decodeShortDesc string = "Decode SSE frames into JSON messages"

// previewLen bounds the input preview logged at debug level.
const previewLen = 64

type decodeCommander struct {
	deserializer string
	lines        bool

	logger *slog.Logger
}

// newDecodeCommander returns a commander that logs nowhere until RunE
// installs the configured logger.
func newDecodeCommander() *decodeCommander {
	return &decodeCommander{
		deserializer: payload.Auto,
		logger:       logger.Nop(),
	}
}

func NewDecodeCmd() *cobra.Command {
	cmder := newDecodeCommander()

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: decodeShortDesc,
		Long:  decodeLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.ResolveConfig(cmd, config.FlagDeserializer)
			if err != nil {
				return err
			}

			var closeLog func() error
			cmder.logger, closeLog, err = cmdutil.NewLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			cmder.deserializer = cfg.Codec.Deserializer

			input, source, err := cmdutil.ReadInput(cmd, args)
			if err != nil {
				return err
			}

			return cmder.run(input, source, cmd.OutOrStdout())
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagDeserializer, &cmder.deserializer)
	cmd.Flags().BoolVarP(&cmder.lines, "lines", "l", false, "Write one JSON object per line instead of an array")

	return cmd
}

func (c *decodeCommander) run(input []byte, source string, out io.Writer) error {
	format, err := payload.Lookup(c.deserializer)
	if err != nil {
		return err
	}

	c.logger.Debug("read input",
		"source", source,
		"bytes", len(input),
		"preview", utils.Truncate(string(input), previewLen),
	)

	msgs, err := format.Codec().DecodeAll(string(input))
	if err != nil {
		return fmt.Errorf("decoding frames from %s: %w", source, err)
	}

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	if c.lines {
		for _, msg := range msgs {
			if err := enc.Encode(msg); err != nil {
				return fmt.Errorf("writing message: %w", err)
			}
		}
	} else if err := enc.Encode(msgs); err != nil {
		return fmt.Errorf("writing messages: %w", err)
	}

	c.logger.Info("decoded frames",
		"count", len(msgs),
		"deserializer", format.Name,
	)
	return nil
}
