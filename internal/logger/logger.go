package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/brizzai/google-connect/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger = zap.NewNop()

func encoderFor(format string) (string, zapcore.EncoderConfig, error) {
	switch format {
	case "json":
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		return "json", ec, nil
	case "console", "":
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.EncodeCaller = zapcore.ShortCallerEncoder
		ec.EncodeDuration = zapcore.StringDurationEncoder
		return "console", ec, nil
	default:
		return "", zapcore.EncoderConfig{}, fmt.Errorf("unsupported log format %q", format)
	}
}

// sinks resolves where log lines go. In stdio mode the console must stay
// clear of stdout, which carries the MCP protocol.
func sinks(cfg *config.LoggingConfig, stdoutReserved bool) ([]string, []string, error) {
	var out, errOut []string

	if !cfg.DisableConsole {
		if stdoutReserved {
			out = append(out, "stderr")
		} else {
			out = append(out, "stdout")
		}
		errOut = append(errOut, "stderr")
	}

	if cfg.OutputPath != "" {
		if dir := filepath.Dir(cfg.OutputPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}
		if !cfg.AppendToFile {
			_ = os.Remove(cfg.OutputPath)
		}
		out = append(out, cfg.OutputPath)
		errOut = append(errOut, cfg.OutputPath)
	}

	if len(out) == 0 {
		out = []string{"stderr"}
	}
	if len(errOut) == 0 {
		errOut = []string{"stderr"}
	}
	return out, errOut, nil
}

// NewLogger creates a new zap logger with the given configuration
func NewLogger(cfg *config.LoggingConfig, stdoutReserved bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	encoding, encoderConfig, err := encoderFor(cfg.Format)
	if err != nil {
		return nil, err
	}

	outputPaths, errorOutputPaths, err := sinks(cfg, stdoutReserved)
	if err != nil {
		return nil, err
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      encoding == "console",
		Encoding:         encoding,
		OutputPaths:      outputPaths,
		ErrorOutputPaths: errorOutputPaths,
		EncoderConfig:    encoderConfig,
	}

	opts := []zap.Option{zap.AddCallerSkip(1)}
	if !cfg.DisableStacktrace {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	logger, err := zapConfig.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// InitLogger builds a logger and installs it as the package-level logger
func InitLogger(cfg *config.LoggingConfig, stdoutReserved bool) error {
	logger, err := NewLogger(cfg, stdoutReserved)
	if err != nil {
		return err
	}
	globalLogger = logger
	return nil
}

// SetLogger replaces the package-level logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	globalLogger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	return globalLogger
}

func Debug(msg string, fields ...zap.Field) {
	globalLogger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	globalLogger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	globalLogger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	globalLogger.Error(msg, fields...)
}

// Sync flushes any buffered log entries
func Sync() error {
	return globalLogger.Sync()
}
