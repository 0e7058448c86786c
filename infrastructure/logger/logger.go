// ABOUTME: Logger factory selecting the logrus, zap or zerolog backend from configuration
// ABOUTME: Optional file output is rotated with lumberjack

package logger

import (
	"io"
	"os"
	"path/filepath"

	"rssgen-api/core/interfaces"
	"rssgen-api/infrastructure/logger/logruslog"
	"rssgen-api/infrastructure/logger/zaplog"
	"rssgen-api/infrastructure/logger/zerologlog"
	"rssgen-api/pkg/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for LOG_FILE
const (
	maxSizeMB  = 64
	maxBackups = 3
	maxAgeDays = 7
)

// New builds the configured logger. The returned closer flushes and closes
// the log file, if any, and is always non-nil.
func New(cfg *config.Config) (interfaces.Logger, io.Closer, error) {
	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return nil, nil, err
		}
		file := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stderr, file)
		closer = file
	}

	json := cfg.Env == config.EnvProduction

	switch cfg.Log.Backend {
	case "zap":
		z := zaplog.New(out, cfg.Log.Level, json)
		return z, closerFunc(func() error {
			_ = z.Sync()
			return closer.Close()
		}), nil
	case "zerolog":
		return zerologlog.New(out, cfg.Log.Level, json), closer, nil
	default:
		return logruslog.New(out, cfg.Log.Level, json), closer, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
