package logx

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level mirrors zerolog levels so callers never import zerolog directly.
type Level int8

const (
	LevelDebug Level = Level(zerolog.DebugLevel)
	LevelInfo  Level = Level(zerolog.InfoLevel)
	LevelWarn  Level = Level(zerolog.WarnLevel)
	LevelError Level = Level(zerolog.ErrorLevel)
)

var logger = zerolog.New(zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.RFC3339,
}).With().Timestamp().Logger()

// SetLevel sets the global minimum log level.
func SetLevel(level Level) {
	logger = logger.Level(zerolog.Level(level))
}

// SetLevelString parses a level name (debug, info, warn, error) and applies
// it, defaulting to info on unknown input.
func SetLevelString(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	logger = logger.Level(parsed)
}

func Debug(msg string) {
	logger.Debug().Msg(msg)
}

func Debugf(format string, args ...any) {
	logger.Debug().Msg(fmt.Sprintf(format, args...))
}

func Info(msg string) {
	logger.Info().Msg(msg)
}

func Infof(format string, args ...any) {
	logger.Info().Msg(fmt.Sprintf(format, args...))
}

func Warn(msg string) {
	logger.Warn().Msg(msg)
}

func Warnf(format string, args ...any) {
	logger.Warn().Msg(fmt.Sprintf(format, args...))
}

func Error(msg string) {
	logger.Error().Msg(msg)
}

func Errorf(format string, args ...any) {
	logger.Error().Msg(fmt.Sprintf(format, args...))
}

func Fatalf(format string, args ...any) {
	logger.Fatal().Msg(fmt.Sprintf(format, args...))
}
