// Package logger menyiapkan logger zerolog untuk seluruh aplikasi.
// Level dan format diatur lewat LOG_LEVEL (debug|info|warn|error) dan LOG_FORMAT (console|json).
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// nama field yang dipakai konsisten di semua log
const (
	PACKAGE = "pkg"
	EVENT   = "event"
	LAYER   = "layer"
	ID      = "id"
)

var (
	mu            sync.Mutex
	defaultLogger *zerolog.Logger
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// Setup membaca konfigurasi dari environment dan memasang logger default.
func Setup() zerolog.Logger {
	return SetupWith(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// SetupWith sama dengan Setup tetapi dengan tujuan keluaran dan nilai yang diberikan langsung.
func SetupWith(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if strings.ToLower(format) != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	l := zerolog.New(out).Level(lvl).With().Timestamp().Logger()

	mu.Lock()
	defaultLogger = &l
	mu.Unlock()
	return l
}

// L mengembalikan logger default, menyiapkannya jika belum ada.
func L() zerolog.Logger {
	mu.Lock()
	l := defaultLogger
	mu.Unlock()
	if l == nil {
		return Setup()
	}
	return *l
}

// For mengembalikan logger turunan dengan field pkg.
func For(pkg string) zerolog.Logger {
	return L().With().Str(PACKAGE, pkg).Logger()
}
