// zaplogger_config.go
package logger

// Ref: https://betterstack.com/community/guides/logging/go/zap/#logging-errors-with-zap

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	LogOutputJSON   = "json"
	LogOutputPretty = "pretty"
)

// Rotation settings for exported log files.
const (
	exportMaxSizeMB  = 10
	exportMaxBackups = 5
	exportMaxAgeDays = 14
)

// BuildLogger creates a new Logger writing to stdout in either "json" or "pretty" (console) encoding.
// When exportPath is set, entries are additionally written as JSON to a size-rotated file at that
// location. Credential-bearing fields are masked by the redacting core regardless of output.
func BuildLogger(logLevel LogLevel, encoding string, logConsoleSeparator string, exportPath string) (Logger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.MessageKey = "msg"
	encoderCfg.LevelKey = "level"
	encoderCfg.NameKey = "logger"
	encoderCfg.EncodeDuration = zapcore.StringDurationEncoder

	zapLogLevel := zap.NewAtomicLevelAt(convertToZapLevel(logLevel))

	var stdoutEncoder zapcore.Encoder
	if encoding == LogOutputPretty {
		consoleCfg := encoderCfg
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if logConsoleSeparator != "" {
			consoleCfg.ConsoleSeparator = logConsoleSeparator
		}
		stdoutEncoder = zapcore.NewConsoleEncoder(consoleCfg)
	} else {
		stdoutEncoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(stdoutEncoder, zapcore.Lock(os.Stdout), zapLogLevel),
	}

	if exportPath != "" {
		logFile, err := EnsureLogFilePath(exportPath)
		if err != nil {
			return nil, err
		}
		rotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    exportMaxSizeMB,
			MaxBackups: exportMaxBackups,
			MaxAge:     exportMaxAgeDays,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(rotator), zapLogLevel))
	}

	wrappedCore := &redactingCore{zapcore.NewTee(cores...)}

	return &defaultLogger{
		logger:   zap.New(wrappedCore),
		logLevel: logLevel,
	}, nil
}

// convertToZapLevel converts the custom LogLevel to a zapcore.Level
func convertToZapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LogLevelDebug:
		return zap.DebugLevel
	case LogLevelInfo:
		return zap.InfoLevel
	case LogLevelWarn:
		return zap.WarnLevel
	case LogLevelError:
		return zap.ErrorLevel
	case LogLevelDPanic:
		return zap.DPanicLevel
	case LogLevelPanic:
		return zap.PanicLevel
	case LogLevelFatal:
		return zap.FatalLevel
	default:
		return zap.InfoLevel // Default to InfoLevel
	}
}
