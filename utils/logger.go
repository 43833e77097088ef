package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger provides leveled logging throughout the pipeline.
type Logger struct {
	info     *log.Logger
	warn     *log.Logger
	err      *log.Logger
	debug    *log.Logger
	critical *log.Logger
}

// NewLogger creates a Logger writing to stdout/stderr.
func NewLogger() *Logger {
	return NewLoggerTo(os.Stdout, os.Stderr)
}

// NewLoggerTo creates a Logger with explicit destinations. Errors and critical
// messages go to errOut, everything else to out.
func NewLoggerTo(out, errOut io.Writer) *Logger {
	flags := 0
	return &Logger{
		info:     log.New(out, "", flags),
		warn:     log.New(out, "", flags),
		err:      log.New(errOut, "", flags),
		debug:    log.New(out, "", flags),
		critical: log.New(errOut, "", flags),
	}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return NewLoggerTo(io.Discard, io.Discard)
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) line(tag, format string, args ...any) string {
	return fmt.Sprintf("[%s] %s %s", l.timestamp(), tag, fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...any) {
	l.info.Println(l.line("\033[32mINFO\033[0m    ", format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.warn.Println(l.line("\033[33mWARN\033[0m    ", format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Println(l.line("\033[31mERROR\033[0m   ", format, args...))
}

func (l *Logger) Debug(format string, args ...any) {
	l.debug.Println(l.line("\033[36mDEBUG\033[0m   ", format, args...))
}

// Critical logs a failure that ends the current stage.
func (l *Logger) Critical(format string, args ...any) {
	l.critical.Println(l.line("\033[1;31mCRITICAL\033[0m", format, args...))
}
