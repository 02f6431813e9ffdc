package utils

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger development ใช้ console writer อ่านง่าย, env อื่นเป็น JSON
func NewLogger(env string) zerolog.Logger {
	var w io.Writer = os.Stdout
	level := zerolog.InfoLevel
	if env == "development" || env == "local" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("service", "school-results").Logger()
}
