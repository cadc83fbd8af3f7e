package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultLevel = zerolog.InfoLevel

// Init cấu hình global logger theo môi trường chạy.
// development: console dễ đọc; các môi trường khác: JSON một dòng.
func Init(env string) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.DurationFieldUnit = time.Millisecond

	log.Logger = New(output(env), env)
	zerolog.SetGlobalLevel(ParseLevel(os.Getenv("LOG_LEVEL")))
}

// New tạo logger có timestamp và field env
func New(w io.Writer, env string) zerolog.Logger {
	ctx := zerolog.New(w).With().Timestamp()
	if env != "" {
		ctx = ctx.Str("env", env)
	}
	return ctx.Logger()
}

// ParseLevel đọc LOG_LEVEL, giá trị rỗng hoặc sai thì dùng info
func ParseLevel(raw string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil || lvl == zerolog.NoLevel {
		return defaultLevel
	}
	return lvl
}

func output(env string) io.Writer {
	if env == "development" {
		return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	return os.Stdout
}

func Info(msg string, fields map[string]interface{}) {
	log.Info().Fields(fields).Msg(msg)
}

func Debug(msg string) {
	log.Debug().Msg(msg)
}

func Warn(msg string, fields map[string]interface{}) {
	log.Warn().Fields(fields).Msg(msg)
}

func Error(msg string, err error) {
	log.Error().Err(err).Msg(msg)
}
