package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type logLevelFlag struct {
	value slog.Level
}

func (l logLevelFlag) String() string {
	return l.value.String()
}

func (l *logLevelFlag) Set(value string) error {
	m := map[string]slog.Level{"DEBUG": slog.LevelDebug, "INFO": slog.LevelInfo, "WARN": slog.LevelWarn, "ERROR": slog.LevelError}
	v, ok := m[strings.ToUpper(value)]
	if !ok {
		return fmt.Errorf("unknown log level")
	}
	l.value = v
	return nil
}

func (l logLevelFlag) Type() string { return "level" }

type logMode int

const (
	logConsole logMode = iota
	// logWindow is for window hosts: the console stays quiet below warn.
	logWindow
	// logTerminal is for the terminal host: nothing reaches the console
	// while the UI owns it.
	logTerminal
)

// logSink is where the log goes once any UI has released the console.
var logSink io.Writer = os.Stderr

func setupLogging(mode logMode) {
	level := levelFlag.value
	if logFile != "" {
		logSink = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		}
		log.SetOutput(logSink)
		slog.SetLogLoggerLevel(level)
		return
	}

	switch mode {
	case logTerminal:
		log.SetOutput(io.Discard)
	case logWindow:
		level = max(level, slog.LevelWarn)
		log.SetOutput(logSink)
	default:
		log.SetOutput(logSink)
	}
	slog.SetLogLoggerLevel(level)
}

// restoreLogging points the log back at its sink after a UI exits.
func restoreLogging() {
	log.SetOutput(logSink)
}
