package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"lodge-booking/internal/pkg/config"

	"github.com/lmittmann/tint"
)

const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatText = "text"
)

// New builds the process logger. With LOG_FORMAT=auto, release mode logs JSON and every
// other gin mode gets tint's coloured output.
func New(cfg config.LogConfig, ginMode string) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg, ginMode)
}

func NewWithWriter(w io.Writer, cfg config.LogConfig, ginMode string) *slog.Logger {
	level := ParseLevel(cfg.Level)
	zone := loadZone(cfg.TimeZone)

	replace := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
			a.Value = slog.StringValue(a.Value.Time().In(zone).Format(cfg.TimeFormat))
		}
		return a
	}

	var handler slog.Handler
	switch resolveFormat(cfg.Format, ginMode) {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, ReplaceAttr: replace})
	default:
		handler = tint.NewHandler(w, &tint.Options{
			Level:       level,
			TimeFormat:  cfg.TimeFormat,
			ReplaceAttr: replace,
			NoColor:     !isTerminal(w),
		})
	}
	return slog.New(handler)
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func resolveFormat(format, ginMode string) string {
	switch strings.ToLower(format) {
	case FormatJSON:
		return FormatJSON
	case FormatText:
		return FormatText
	default:
		if ginMode == "release" {
			return FormatJSON
		}
		return FormatText
	}
}

func loadZone(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
