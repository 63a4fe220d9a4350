package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/ssecodec/pkg/logger"
)

var errWriteFailed = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errWriteFailed }

func parseJSONLine(buf *bytes.Buffer) map[string]any {
	var parsed map[string]any
	err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &parsed)
	Expect(err).NotTo(HaveOccurred())
	return parsed
}

var _ = Describe("Logger", func() {
	Describe("New", func() {
		It("writes text records", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf))
			l.Info("decoded frames", "count", 3)

			output := buf.String()
			Expect(output).To(ContainSubstring("decoded frames"))
			Expect(output).To(ContainSubstring("count=3"))
		})

		It("respects debug level", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf), logger.WithDebug(true))
			l.Debug("frame split", "segments", 2)

			Expect(buf.String()).To(ContainSubstring("frame split"))
		})

		It("filters debug when not enabled", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf), logger.WithDebug(false))
			l.Debug("hidden")

			Expect(buf.String()).To(BeEmpty())
		})

		It("writes JSON records", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf), logger.WithFormat(logger.FormatJSON))
			l.Info("encoded messages", "count", 42)

			parsed := parseJSONLine(&buf)
			Expect(parsed["msg"]).To(Equal("encoded messages"))
			Expect(parsed["count"]).To(BeNumerically("==", 42))
		})

		It("prefers JSON over pretty output", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf), logger.WithFormat(logger.FormatFor(true, true)))
			l.Info("structured")

			parsed := parseJSONLine(&buf)
			Expect(parsed["msg"]).To(Equal("structured"))
		})

		It("writes pretty records", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf), logger.WithFormat(logger.FormatPretty))
			l.Info("pretty output", "format", "auto")

			Expect(buf.String()).To(ContainSubstring("pretty output"))
			Expect(buf.String()).To(ContainSubstring("auto"))
		})

		It("filters pretty debug records when not enabled", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf), logger.WithFormat(logger.FormatPretty))
			l.Debug("hidden")

			Expect(buf.String()).To(BeEmpty())
		})

		It("adds writers on top of the first one", func() {
			var buf1, buf2, buf3 bytes.Buffer
			l := logger.New(logger.WithWriter(&buf1), logger.WithWriters(&buf2, &buf3))
			l.Info("multi")

			Expect(buf1.String()).To(ContainSubstring("multi"))
			Expect(buf2.String()).To(Equal(buf1.String()))
			Expect(buf3.String()).To(Equal(buf1.String()))
		})

		It("replaces earlier writers with WithWriter", func() {
			var dropped, kept bytes.Buffer
			l := logger.New(logger.WithWriters(&dropped), logger.WithWriter(&kept))
			l.Info("replaced")

			Expect(dropped.String()).To(BeEmpty())
			Expect(kept.String()).To(ContainSubstring("replaced"))
		})

		It("includes the source location when asked", func() {
			var buf bytes.Buffer
			l := logger.New(logger.WithWriter(&buf), logger.WithFormat(logger.FormatJSON), logger.WithSource(true))
			l.Info("with source")

			parsed := parseJSONLine(&buf)
			Expect(parsed).To(HaveKey(slog.SourceKey))
		})
	})

	Describe("FormatFor", func() {
		It("prefers JSON, then pretty, then text", func() {
			Expect(logger.FormatFor(true, true)).To(Equal(logger.FormatJSON))
			Expect(logger.FormatFor(false, true)).To(Equal(logger.FormatPretty))
			Expect(logger.FormatFor(false, false)).To(Equal(logger.FormatText))
		})
	})

	Describe("Nop", func() {
		It("does not panic on any method", func() {
			l := logger.Nop()
			Expect(func() {
				l.Debug("msg")
				l.Info("msg")
				l.Warn("msg")
				l.Error("msg")
				l.With("key", "value").Info("msg")
				l.WithGroup("group").Info("msg")
			}).NotTo(Panic())
		})

		It("reports every level as disabled", func() {
			l := logger.Nop()
			Expect(l.Handler().Enabled(context.Background(), slog.LevelError)).To(BeFalse())
		})
	})

	Describe("Multi", func() {
		It("dispatches to all loggers", func() {
			var text, js bytes.Buffer
			multi := logger.Multi(
				logger.New(logger.WithWriter(&text)),
				logger.New(logger.WithWriter(&js), logger.WithFormat(logger.FormatJSON)),
			)

			multi.Info("broadcast", "key", "val")

			Expect(text.String()).To(ContainSubstring("broadcast"))
			Expect(parseJSONLine(&js)["key"]).To(Equal("val"))
		})

		It("only hands records to enabled handlers", func() {
			var quiet, verbose bytes.Buffer
			multi := logger.Multi(
				logger.New(logger.WithWriter(&quiet)),
				logger.New(logger.WithWriter(&verbose), logger.WithDebug(true)),
			)

			multi.Debug("details")

			Expect(quiet.String()).To(BeEmpty())
			Expect(verbose.String()).To(ContainSubstring("details"))
		})

		It("keeps writing after a handler fails", func() {
			var buf bytes.Buffer
			multi := logger.Multi(
				logger.New(logger.WithWriter(failingWriter{})),
				logger.New(logger.WithWriter(&buf)),
			)

			err := multi.Handler().Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "still here", 0))
			Expect(err).To(MatchError(errWriteFailed))
			Expect(buf.String()).To(ContainSubstring("still here"))
		})

		It("supports With and WithGroup", func() {
			var buf bytes.Buffer
			multi := logger.Multi(logger.New(logger.WithWriter(&buf), logger.WithFormat(logger.FormatJSON)))

			multi.With("command", "decode").WithGroup("input").Info("read", "bytes", 12)

			parsed := parseJSONLine(&buf)
			Expect(parsed["command"]).To(Equal("decode"))
			group, ok := parsed["input"].(map[string]any)
			Expect(ok).To(BeTrue(), "expected 'input' group in JSON output")
			Expect(group["bytes"]).To(BeNumerically("==", 12))
		})
	})
})
