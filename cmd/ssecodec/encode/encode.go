// Package encodecmder provides the encode command, which turns a JSON array
// of messages into SSE frames.
package encodecmder

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/ssecodec/cmd/ssecodec/cmdutil"
	"github.com/papercomputeco/ssecodec/pkg/config"
	"github.com/papercomputeco/ssecodec/pkg/logger"
	"github.com/papercomputeco/ssecodec/pkg/payload"
	"github.com/papercomputeco/ssecodec/pkg/sse"
)

const encodeLongDesc string = `Encode messages as Server-Sent Events frames.

Reads a JSON array of message objects from the given file, or from stdin
when no file (or "-") is given, and writes the SSE frames to stdout:

  [{"event": "update", "id": "1", "data": {"status": "ok"}}]

becomes

  event: update
  id: 1
  data: {"status":"ok"}

String data containing newlines is written as one data line per line.
The --serializer flag selects a payload format that replaces the default
shaping (auto, json, text, base64).

Examples:
  ssecodec encode messages.json
  echo '[{"data":"hello"}]' | ssecodec encode
  ssecodec encode --serializer base64 --auto-id messages.json`

const encodeShortDesc string = "Encode JSON messages as SSE frames"

type encodeCommander struct {
	serializer string
	autoID     bool

	logger *slog.Logger
	newID  func() string
}

// newEncodeCommander returns a commander that logs nowhere until RunE
// installs the configured logger.
func newEncodeCommander() *encodeCommander {
	return &encodeCommander{
		serializer: payload.Auto,
		logger:     logger.Nop(),
		newID:      uuid.NewString,
	}
}

func NewEncodeCmd() *cobra.Command {
	cmder := newEncodeCommander()

	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: encodeShortDesc,
		Long:  encodeLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.ResolveConfig(cmd, config.FlagSerializer, config.FlagAutoID)
			if err != nil {
				return err
			}

			var closeLog func() error
			cmder.logger, closeLog, err = cmdutil.NewLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			cmder.serializer = cfg.Codec.Serializer
			cmder.autoID = cfg.Codec.AutoID

			input, source, err := cmdutil.ReadInput(cmd, args)
			if err != nil {
				return err
			}

			return cmder.run(input, source, cmd.OutOrStdout())
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagSerializer, &cmder.serializer)
	config.AddBoolFlag(cmd, config.Flags, config.FlagAutoID, &cmder.autoID)

	return cmd
}

func (c *encodeCommander) run(input []byte, source string, out io.Writer) error {
	format, err := payload.Lookup(c.serializer)
	if err != nil {
		return err
	}

	msgs, err := sse.DecodeMessages(input)
	if err != nil {
		return fmt.Errorf("reading messages from %s: %w", source, err)
	}
	c.logger.Debug("read messages", "source", source, "count", len(msgs))

	if c.autoID {
		stamped := 0
		for i := range msgs {
			if msgs[i].ID == "" {
				msgs[i].ID = c.newID()
				stamped++
			}
		}
		c.logger.Debug("assigned message ids", "count", stamped)
	}

	text, err := format.Codec().EncodeAll(msgs)
	if err != nil {
		return fmt.Errorf("encoding messages: %w", err)
	}

	if _, err := io.WriteString(out, text); err != nil {
		return fmt.Errorf("writing frames: %w", err)
	}

	c.logger.Info("encoded messages",
		"count", len(msgs),
		"serializer", format.Name,
		"bytes", len(text),
	)
	return nil
}
