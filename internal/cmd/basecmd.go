package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpscout/internal/flags"
	"github.com/mozilla-ai/mcpscout/internal/perms"
	"github.com/mozilla-ai/mcpscout/internal/status"
)

// BaseCmd carries the logger and diagnostic log shared by every command.
// The zero value is ready to use: the logger is built from flags on first use.
type BaseCmd struct {
	once        sync.Once
	logger      hclog.InterceptLogger
	diagnostics *status.Ring
}

// SetLogger replaces the command's logger. The diagnostic log is subscribed to it.
func (c *BaseCmd) SetLogger(logger hclog.InterceptLogger) {
	c.once.Do(func() {})
	c.logger = logger
	c.diagnostics = status.NewRing(status.DefaultCapacity)
	c.logger.RegisterSink(status.NewSink(c.diagnostics, sinkLevel(logger.GetLevel())))
}

// Logger returns the current logger for the command.
func (c *BaseCmd) Logger() hclog.Logger {
	c.init()
	return c.logger
}

// Diagnostics returns the rolling diagnostic log fed by the command's logger.
func (c *BaseCmd) Diagnostics() *status.Ring {
	c.init()
	return c.diagnostics
}

func (c *BaseCmd) init() {
	c.once.Do(func() {
		level := hclog.LevelFromString(LogLevel())

		c.logger = hclog.NewInterceptLogger(&hclog.LoggerOptions{
			Name:   AppName,
			Level:  level,
			Output: logOutput(),
		})
		c.diagnostics = status.NewRing(status.DefaultCapacity)
		c.logger.RegisterSink(status.NewSink(c.diagnostics, sinkLevel(level)))
	})
}

// LogLevel returns the configured log level, from flags first, then environment, then default.
// Unknown levels fall back to the default.
func LogLevel() string {
	lvl := strings.ToLower(strings.TrimSpace(flags.LogLevel))
	if lvl == "" {
		lvl = strings.ToLower(strings.TrimSpace(os.Getenv(flags.EnvVarLogLevel)))
	}

	switch lvl {
	case "trace", "debug", "info", "warn", "error", "off":
		return lvl
	default:
		return flags.DefaultLogLevel
	}
}

// sinkLevel returns the threshold for the diagnostic log.
// It follows the logger level when that is more verbose than info, and is info otherwise.
func sinkLevel(level hclog.Level) hclog.Level {
	if level == hclog.NoLevel || level == hclog.Off || level > hclog.Info {
		return hclog.Info
	}
	return level
}

// logOutput opens the configured log file, or discards output when none is configured.
func logOutput() io.Writer {
	logPath := strings.TrimSpace(flags.LogPath)
	if logPath == "" {
		logPath = strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))
	}
	if logPath == "" {
		return io.Discard
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, perms.RegularFile)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to open log file (%s): %v, logging disabled\n", logPath, err)
		return io.Discard
	}

	return f
}
