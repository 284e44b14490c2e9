package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/keisukeshimizu/wt/internal/style"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig configures the rotating debug log.
type FileConfig struct {
	Path       string // Path to log file; empty disables file logging
	Level      string // Minimum level (debug, info, warn, error)
	MaxSizeMB  int    // Max size in MB before rotation
	MaxBackups int    // Max number of old log files to keep
	MaxAgeDays int    // Max days to keep old log files
}

// Logger writes human-readable status lines to the error stream and,
// when a log file is attached, structured records to a rotating file.
type Logger struct {
	mu         sync.Mutex
	out        io.Writer
	style      *style.Style
	verbose    bool
	zap        *zap.Logger
	fileWriter *lumberjack.Logger
}

// New creates a new logger writing status lines to out
func New(out io.Writer, st *style.Style, verbose bool) *Logger {
	if st == nil {
		st = style.Plain()
	}
	return &Logger{
		out:     out,
		style:   st,
		verbose: verbose,
		zap:     zap.NewNop(),
	}
}

// AttachFile starts recording structured entries to cfg.Path.
func (l *Logger) AttachFile(cfg FileConfig) error {
	if cfg.Path == "" {
		return nil
	}

	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays == 0 {
		cfg.MaxAgeDays = 7
	}

	level := zapcore.DebugLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(fileWriter),
		level,
	)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.fileWriter = fileWriter
	l.zap = zap.New(core).With(zap.Int("pid", os.Getpid()))
	return nil
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_ = l.zap.Sync()
	if l.fileWriter == nil {
		return nil
	}
	err := l.fileWriter.Close()
	l.fileWriter = nil
	l.zap = zap.NewNop()
	return err
}

// SetVerbose sets the verbose flag
func (l *Logger) SetVerbose(verbose bool) {
	l.verbose = verbose
}

// IsVerbose returns whether verbose logging is enabled
func (l *Logger) IsVerbose() bool {
	return l.verbose
}

// Style returns the style used for the error stream.
func (l *Logger) Style() *style.Style {
	return l.style
}

func (l *Logger) println(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, line)
}

// Info prints an info message
func (l *Logger) Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.println(msg)
	l.zap.Info(msg)
}

// Done prints a completed action, e.g. "created worktree x at y", with
// the verb highlighted.
func (l *Logger) Done(verb string, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.println(l.style.Green(verb) + " " + msg)
	l.zap.Info(verb+" "+msg, zap.String("action", verb))
}

// Warning prints a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.println(l.style.Yellow("warning:") + " " + msg)
	l.zap.Warn(msg)
}

// Debug prints a debug message (only in verbose mode)
func (l *Logger) Debug(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.verbose {
		timestamp := time.Now().Format("15:04:05")
		l.println(l.style.Dim(fmt.Sprintf("[%s] %s", timestamp, msg)))
	}
	l.zap.Debug(msg)
}

// Command records one external command invocation.
func (l *Logger) Command(dir string, args []string, elapsed time.Duration, err error) {
	fields := []zap.Field{
		zap.String("dir", dir),
		zap.Strings("args", args),
		zap.Duration("elapsed", elapsed),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	l.zap.Debug("exec", fields...)

	if l.verbose {
		timestamp := time.Now().Format("15:04:05")
		line := fmt.Sprintf("[%s] git %s (%s)", timestamp, strings.Join(args, " "), elapsed.Round(time.Millisecond))
		l.println(l.style.Dim(line))
	}
}

// Global logger instance
var (
	globalMu     sync.RWMutex
	globalLogger = New(os.Stderr, nil, false)
)

// GetLogger returns the global logger instance
func GetLogger() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetLogger replaces the global logger instance
func SetLogger(l *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

// Convenience functions for global logger
func Info(format string, args ...interface{}) {
	GetLogger().Info(format, args...)
}

func Done(verb string, format string, args ...interface{}) {
	GetLogger().Done(verb, format, args...)
}

func Warning(format string, args ...interface{}) {
	GetLogger().Warning(format, args...)
}

func Debug(format string, args ...interface{}) {
	GetLogger().Debug(format, args...)
}

func IsVerbose() bool {
	return GetLogger().IsVerbose()
}
