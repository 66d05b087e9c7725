package core

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const loggerName = "skills-dashboard"

func newStdoutHandler(cfg Config, out io.Writer) slog.Handler {
	if cfg.IsProd() {
		return slog.NewJSONHandler(out, &slog.HandlerOptions{})
	}
	return slog.NewTextHandler(out, &slog.HandlerOptions{})
}

func NewLogger(cfg Config) *slog.Logger {
	return NewLoggerTo(cfg, os.Stdout)
}

func NewLoggerTo(cfg Config, out io.Writer) *slog.Logger {
	stdoutHandler := newStdoutHandler(cfg, out)
	return slog.New(stdoutHandler)
}

func NewLoggerWithOtel(cfg Config, otel OtelService) *slog.Logger {
	stdoutHandler := newStdoutHandler(cfg, os.Stdout)
	otelHandler := otelslog.NewHandler(
		loggerName,
		otelslog.WithLoggerProvider(otel.LoggerProvider()),
	)

	return slog.New(
		slogmulti.Fanout(
			stdoutHandler,
			otelHandler,
		),
	)
}
