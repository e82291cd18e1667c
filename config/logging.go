package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

func (c *Config) GetLogLevel() log.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return log.DebugLevel
	case "WARN":
		return log.WarnLevel
	case "ERROR":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ConfigureLogging logs to stdout and, when LOG_FILE is set, to a rotated
// file as well.
func ConfigureLogging(cfg *Config) error {
	log.SetLevel(cfg.GetLogLevel())
	log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: false})
	log.SetOutput(os.Stdout)

	if cfg.LogFilePath == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFilePath), 0o755); err != nil {
		return err
	}

	rotated := &lumberjack.Logger{
		Filename:   cfg.LogFilePath,
		MaxSize:    100,
		MaxBackups: 30,
		MaxAge:     cfg.LogMaxAgeDays,
		Compress:   true,
	}

	writers := lfshook.WriterMap{}
	for _, lvl := range log.AllLevels {
		writers[lvl] = rotated
	}
	log.AddHook(lfshook.NewHook(writers, &log.TextFormatter{DisableColors: true, FullTimestamp: true}))
	return nil
}
