package config

import (
	"fmt"
	"io"

	"github.com/inconshreveable/log15/v3"
)

// NewLogger builds a logger writing to w at the configured level and format
func NewLogger(cfg *Config, w io.Writer) (log15.Logger, error) {
	lvl, err := log15.LvlFromString(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: log level %q", ErrInvalidConfig, cfg.LogLevel)
	}

	var format log15.Format
	switch cfg.LogFormat {
	case "json":
		format = log15.JsonFormat()
	case "logfmt":
		format = log15.LogfmtFormat()
	case "terminal", "":
		format = log15.TerminalFormat()
	default:
		return nil, fmt.Errorf("%w: log format %q", ErrInvalidConfig, cfg.LogFormat)
	}

	logger := log15.New()
	logger.SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(w, format)))
	return logger, nil
}

// DiscardLogger returns a logger that drops every record
func DiscardLogger() log15.Logger {
	logger := log15.New()
	logger.SetHandler(log15.DiscardHandler())
	return logger
}
