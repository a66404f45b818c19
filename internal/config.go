package internal

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type Config struct {
	Host            string        `env:"HOST,default=0.0.0.0"`
	Port            int           `env:"PORT,default=3000"`
	SendBufferSize  int           `env:"SEND_BUFFER_SIZE,default=16"`
	ReadLimit       int64         `env:"READ_LIMIT,default=4096"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ParseLevel maps the LOG_LEVEL variable onto a slog level.
func ParseLevel(str string) (slog.Level, error) {
	switch strings.ToUpper(str) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", str)
}
