package config

import (
	"os"
	"strings"

	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NewLogger creates the logger shared by every component.
//
// Parameters:
// - level: a logrus level name, e.g. "debug" or "info".
// - format: "text" or "json".
//
// Returns:
// - *logrus.Logger: the configured logger writing to stderr.
// - error: ErrInvalidConfig for an unknown level or format.
func NewLogger(level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(xerrors.ErrInvalidConfig, "log level: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, errors.Wrapf(xerrors.ErrInvalidConfig, "unknown log format %q", format)
	}

	return logger, nil
}
