package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// levelFilter drops records below min before they reach w.
type levelFilter struct {
	w   io.Writer
	min zerolog.Level
}

func (f levelFilter) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

func (f levelFilter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < f.min {
		return len(p), nil
	}
	return f.w.Write(p)
}

// initLogger points the global zerolog logger at two sinks.
// Console gets Error and above in human-readable form.
// The rotated file under cfg.LogDir gets everything at cfg.LogLevel and above as JSON.
// The returned cleanup closes the log file.
func initLogger(cfg agentConfig) (func(), error) {
	if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.LogLevel, err)
	}

	lj := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, "go-service.log"),
		MaxSize:    10, // MB
		MaxBackups: 3,
		LocalTime:  true,
	}

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime}

	writer := newLogWriter(console, lj)
	log.Logger = zerolog.New(writer).Level(level).With().Timestamp().Caller().Logger()

	cleanup := func() {
		if err := lj.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}
	return cleanup, nil
}

func newLogWriter(console, file io.Writer) zerolog.LevelWriter {
	return zerolog.MultiLevelWriter(
		levelFilter{w: console, min: zerolog.ErrorLevel},
		levelFilter{w: file, min: zerolog.TraceLevel},
	)
}
