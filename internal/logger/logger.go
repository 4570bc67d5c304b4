package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/dvcrn/jso-fetch/internal/env"
	"github.com/rs/zerolog"
)

const (
	colorRed     = 31
	colorGreen   = 32
	colorYellow  = 33
	colorMagenta = 35

	colorBold = 1
)

var (
	once   sync.Once
	logger *zerolog.Logger
)

// Get returns the singleton logger instance, initializing it on first call.
func Get() *zerolog.Logger {
	once.Do(func() {
		logger = New(os.Stderr)
	})
	return logger
}

func colorize(s interface{}, c int) string {
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}

// New builds a logger writing to out. ENV picks console or JSON output and
// LOG_LEVEL sets the minimum level (info when unset or invalid).
func New(out io.Writer) *zerolog.Logger {
	zl := zerolog.New(out)
	if env.IsDevelopment() {
		zl = zerolog.New(consoleWriter(out))
	}
	zl = zl.Level(parseLevel()).With().Timestamp().Logger()
	return &zl
}

func parseLevel() zerolog.Level {
	levelStr, ok := env.Get(env.KeyLogLevel)
	if !ok {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid LOG_LEVEL %q; defaulting to 'info'\n", levelStr)
		return zerolog.InfoLevel
	}
	return level
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:         out,
		TimeFormat:  "2006-01-02 15:04:05",
		FormatLevel: formatLevel,
	}
}

func formatLevel(i interface{}) string {
	ll, ok := i.(string)
	if !ok || ll == "" {
		return "???"
	}
	switch ll {
	case "trace":
		return colorize("TRC", colorMagenta)
	case "debug":
		return colorize("DBG", colorYellow)
	case "info":
		return colorize("INF", colorGreen)
	case "warn":
		return colorize("WRN", colorRed)
	case "error":
		return colorize("ERR", colorRed)
	case "fatal":
		return colorize("FTL", colorRed)
	case "panic":
		return colorize("PNC", colorRed)
	}
	upper := strings.ToUpper(ll)
	if len(upper) > 3 {
		upper = upper[:3]
	}
	return colorize(upper, colorBold)
}
