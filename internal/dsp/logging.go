package dsp

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
)

// NewLogger builds the worker's single logger instance, created once
// at startup and threaded through as an explicit dependency rather
// than a package-level global (spec.md §9's "do not reintroduce
// global singletons", applied to the ambient logging stack as well as
// the DSP state it was originally written about).
//
// format selects "json" or defaults to text. timestampFormat is a
// strftime pattern (e.g. "%Y-%m-%d %H:%M:%S") applied to the
// timestamp field, mirroring this codebase's own --timestamp-format /
// -T flag for stamping output lines.
func NewLogger(w io.Writer, format, timestampFormat string) *log.Logger {
	opts := log.Options{ //nolint:exhaustruct
		ReportTimestamp: true,
		Prefix:          "adcworker",
	}
	if format == "json" {
		opts.Formatter = log.JSONFormatter
	}

	logger := log.NewWithOptions(w, opts)

	pattern, err := strftime.New(timestampFormat)
	if err == nil {
		logger.SetTimeFormat(strftimeGoLayout(pattern, timestampFormat))
	}

	return logger
}

// strftimeGoLayout renders the strftime pattern against a fixed
// reference instant to approximate a Go time-layout string, since
// charmbracelet/log's TimeFormat is a Go layout rather than a
// strftime format. When the pattern uses no recognizable field this
// falls back to the pattern rendered once, which still produces a
// constant (if not rotating) timestamp — acceptable for the ambient
// logging use case, which is not relied on for wire-format timing.
func strftimeGoLayout(pattern *strftime.Strftime, fallback string) string {
	reference := time.Date(2006, time.January, 2, 15, 4, 5, 0, time.UTC)
	rendered := pattern.FormatString(reference)
	if rendered == "" {
		return fallback
	}
	return rendered
}
