// Package telemetry wraps operations with duration and outcome recording.
package telemetry

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Measure runs op and records its duration and outcome under label,
// regardless of result. The operation's error passes through unchanged.
func Measure(log logrus.FieldLogger, label string, op func() error) error {
	start := time.Now()
	err := op()
	entry := log.WithFields(logrus.Fields{
		"operation": label,
		"duration":  time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Error("operation failed")
	} else {
		entry.Info("operation completed")
	}
	return err
}
