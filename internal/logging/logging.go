// Package logging builds the zap logger shared by every command.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New. Empty fields fall back to the FIDASH_LOG_* env
// vars, then to warn-level console output on stderr.
type Options struct {
	Level    string // debug, info, warn, error or off
	Encoding string // console or json
	Output   string // file path; empty means stderr
}

// New returns a logger per opts. Level "off" yields a no-op logger.
func New(opts Options) (*zap.Logger, error) {
	level := firstNonEmpty(opts.Level, os.Getenv("FIDASH_LOG_LEVEL"), "warn")
	encoding := firstNonEmpty(opts.Encoding, os.Getenv("FIDASH_LOG_ENCODING"), "console")

	if strings.EqualFold(level, "off") {
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = encoding
	switch strings.ToLower(level) {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.Development = true
	case "info":
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	out := firstNonEmpty(opts.Output, "stderr")
	cfg.OutputPaths = []string{out}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Sampling = nil
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if encoding == "console" {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return l, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
