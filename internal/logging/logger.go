package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultMaxLogs = 10

// CrashRecorder keeps the last few log lines in memory so they can be written
// out to a crash file when a panic is recovered.
type CrashRecorder struct {
	mu       sync.Mutex
	logs     []string
	logIndex int
	maxLogs  int
	crashDir string
}

// NewCrashRecorder creates a recorder holding the last maxLogs entries.
func NewCrashRecorder(crashDir string, maxLogs int) *CrashRecorder {
	if maxLogs <= 0 {
		maxLogs = defaultMaxLogs
	}
	return &CrashRecorder{
		logs:     make([]string, maxLogs),
		maxLogs:  maxLogs,
		crashDir: crashDir,
	}
}

// Record stores a line in the ring buffer, overwriting the oldest one
func (l *CrashRecorder) Record(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs[l.logIndex] = line
	l.logIndex = (l.logIndex + 1) % l.maxLogs
}

// GetRecentLogs returns the stored lines, oldest first
func (l *CrashRecorder) GetRecentLogs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var recentLogs []string
	for i := 0; i < l.maxLogs; i++ {
		index := (l.logIndex + i) % l.maxLogs
		if l.logs[index] != "" {
			recentLogs = append(recentLogs, l.logs[index])
		}
	}
	return recentLogs
}

// RecoverAndLogPanic is meant to be deferred. It writes a crash file and re-panics.
func (l *CrashRecorder) RecoverAndLogPanic() {
	if r := recover(); r != nil {
		if _, err := l.WriteCrashFile(r); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write crash file: %v\n", err)
		}
		panic(r)
	}
}

// WriteCrashFile writes the recent log lines and the panic value to a new file
// in the crash directory and returns its path
func (l *CrashRecorder) WriteCrashFile(r any) (string, error) {
	recentLogs := l.GetRecentLogs()

	if err := os.MkdirAll(l.crashDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	now := time.Now()
	crashFile := filepath.Join(l.crashDir, fmt.Sprintf("crash-%s.log", now.Format("20060102-150405.000000000")))
	file, err := os.Create(crashFile)
	if err != nil {
		return "", fmt.Errorf("failed to create crash file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "==== Crash Report ====\n")
	fmt.Fprintf(file, "Time: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "Panic: %v\n\n", r)
	fmt.Fprintf(file, "==== Last %d Logs ====\n", l.maxLogs)
	for _, log := range recentLogs {
		fmt.Fprintln(file, log)
	}

	return crashFile, nil
}

// Core returns a zapcore.Core that feeds every entry into the recorder.
func (l *CrashRecorder) Core(level zapcore.LevelEnabler) zapcore.Core {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = "T"
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	return zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(recorderWriter{l}), level)
}

type recorderWriter struct {
	recorder *CrashRecorder
}

func (w recorderWriter) Write(p []byte) (int, error) {
	line := string(p)
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	w.recorder.Record(line)
	return len(p), nil
}

// NewLogger creates a zap logger for the given environment, teed into recorder
// when it is not nil. prod uses JSON output, every other environment uses the
// colored console output. level (if non-empty) overrides the default level.
func NewLogger(env string, level string, recorder *CrashRecorder) (*zap.Logger, error) {
	var cfg zap.Config
	switch env {
	case "prod":
		cfg = zap.NewProductionConfig()
	case "local", "dev", "docker":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown environment %q for logger", env)
	}

	if level != "" {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if recorder != nil {
		opts = append(opts, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, recorder.Core(cfg.Level))
		}))
	}

	logger, err := cfg.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

type ctxKey struct{}

// ContextWithLogger stores a logger in the context.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext extracts a logger from the context.
// Returns zap.NewNop() if no logger is found.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
