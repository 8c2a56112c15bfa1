package composables

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/openpol/registry/pkg/constants"
	"github.com/openpol/registry/pkg/logging"
)

func WithLogger(ctx context.Context, logger *logrus.Logger) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// UseLogger returns the logger bound to the context, falling back to a plain
// console logger so callers never have to nil-check.
func UseLogger(ctx context.Context) *logrus.Logger {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		return logging.ConsoleLogger(logrus.ErrorLevel)
	}
	return logger.(*logrus.Logger)
}
