// Package logging builds the process logger handed to every component.
package logging

import (
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Supported log formats.
const (
	FormatLogfmt = "logfmt"
	FormatJSON   = "json"
)

// New returns a leveled logger writing to w. Unknown levels behave as info.
func New(w io.Writer, format, lvl string) log.Logger {
	var logger log.Logger
	if strings.EqualFold(format, FormatJSON) {
		logger = log.NewJSONLogger(log.NewSyncWriter(w))
	} else {
		logger = log.NewLogfmtLogger(log.NewSyncWriter(w))
	}
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)
	return level.NewFilter(logger, allow(lvl))
}

// Component tags logger with the component name.
func Component(logger log.Logger, name string) log.Logger {
	return log.With(logger, "component", name)
}

// ValidLevel reports whether lvl is a level New understands.
func ValidLevel(lvl string) bool {
	switch strings.ToLower(lvl) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

func allow(lvl string) level.Option {
	switch strings.ToLower(lvl) {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
