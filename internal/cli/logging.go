package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogLevelEnv is consulted when --log-level is not set.
const LogLevelEnv = "LOG_LEVEL"

func newLogger(w io.Writer, level string) (*logrus.Logger, error) {
	if strings.TrimSpace(level) == "" {
		level = os.Getenv(LogLevelEnv)
	}
	if strings.TrimSpace(level) == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
	return log, nil
}
