// Package logging provides the aggregator's structured, colorized console
// logger. Ported from the teacher's bridge-sdk/logger.go BridgeLogger:
// zap for structured/file output, fatih/color for the CLI, trimmed down to
// this module's domain (no log-buffer pub/sub, since nothing here serves a
// dashboard) and recolored for the router/planner/executor/indexer
// components instead of ethereum/solana/bridge.
package logging

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Component names this logger colorizes distinctly; any other string falls
// back to a neutral color.
const (
	ComponentRouter     = "router"
	ComponentPlanner    = "planner"
	ComponentExecutor   = "executor"
	ComponentIndexer    = "indexer"
	ComponentUniqueness = "uniqueness"
	ComponentStorage    = "storage"
)

// Config configures a Logger.
type Config struct {
	Level        zapcore.Level
	EnableColors bool
	EnableJSON   bool
	FilePath     string // empty means console-only
}

// DefaultConfig returns an info-level, colorized console logger config.
func DefaultConfig() Config {
	return Config{Level: zapcore.InfoLevel, EnableColors: true}
}

// Logger wraps a zap.Logger with domain-aware colorized console output.
type Logger struct {
	zap          *zap.Logger
	colorEnabled bool
}

// New builds a Logger from cfg.
func New(cfg Config) (*Logger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(cfg.Level)

	outputPaths := []string{"stdout"}
	if cfg.FilePath != "" {
		outputPaths = append(outputPaths, cfg.FilePath)
	}
	zapConfig.OutputPaths = outputPaths
	zapConfig.ErrorOutputPaths = outputPaths

	if cfg.EnableJSON {
		zapConfig.Encoding = "json"
	} else {
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig = zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}
	}

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build zap logger: %w", err)
	}

	return &Logger{zap: zapLogger, colorEnabled: cfg.EnableColors && !cfg.EnableJSON}, nil
}

func (l *Logger) colorizeComponent(component string) string {
	if !l.colorEnabled {
		return component
	}
	switch component {
	case ComponentRouter:
		return color.HiBlueString(component)
	case ComponentPlanner:
		return color.HiMagentaString(component)
	case ComponentExecutor:
		return color.HiGreenString(component)
	case ComponentIndexer:
		return color.HiCyanString(component)
	case ComponentUniqueness:
		return color.HiYellowString(component)
	case ComponentStorage:
		return color.HiBlackString(component)
	default:
		return component
	}
}

func (l *Logger) console(level, component, message string, fields []zap.Field) {
	if !l.colorEnabled {
		return
	}
	var coloredLevel string
	switch level {
	case "DEBUG":
		coloredLevel = color.HiBlackString(level)
	case "INFO":
		coloredLevel = color.CyanString(level)
	case "WARN":
		coloredLevel = color.YellowString(level)
	case "ERROR":
		coloredLevel = color.RedString(level)
	default:
		coloredLevel = level
	}

	fmt.Printf("[%s] %s [%s] %s\n",
		time.Now().Format("15:04:05"),
		coloredLevel,
		l.colorizeComponent(component),
		message,
	)
	for _, f := range fields {
		fmt.Printf("  %s\n", color.HiBlackString(f.Key+"="+fieldString(f)))
	}
}

func fieldString(f zap.Field) string {
	switch f.Type {
	case zapcore.StringType:
		return f.String
	case zapcore.ErrorType:
		if f.Interface != nil {
			return f.Interface.(error).Error()
		}
		return ""
	default:
		return fmt.Sprintf("%v", f.Interface)
	}
}

// Debug logs a debug-level message for component.
func (l *Logger) Debug(component, message string, fields ...zap.Field) {
	l.console("DEBUG", component, message, fields)
	l.zap.Debug(message, append(fields, zap.String("component", component))...)
}

// Info logs an info-level message for component.
func (l *Logger) Info(component, message string, fields ...zap.Field) {
	l.console("INFO", component, message, fields)
	l.zap.Info(message, append(fields, zap.String("component", component))...)
}

// Warn logs a warn-level message for component.
func (l *Logger) Warn(component, message string, fields ...zap.Field) {
	l.console("WARN", component, message, fields)
	l.zap.Warn(message, append(fields, zap.String("component", component))...)
}

// Error logs an error-level message for component.
func (l *Logger) Error(component, message string, err error, fields ...zap.Field) {
	allFields := append(fields, zap.Error(err))
	l.console("ERROR", component, message, allFields)
	l.zap.Error(message, append(allFields, zap.String("component", component))...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}
