package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/org-rollup/pkg/logging"
)

func logWithFields(ctx context.Context, level logrus.Level, msg string, fields logrus.Fields) {
	logger := logging.FromContext(ctx)
	if logger == nil {
		return
	}
	logger.WithFields(fields).Log(level, msg)
}
