package obs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Time logs the duration of an operation. Use as
// defer obs.Time(ctx, "op")(&err) so the outcome is logged too.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		entry := FromContext(ctx).WithFields(logrus.Fields{
			"op":     name,
			"dur_ms": time.Since(start).Milliseconds(),
		})

		if errp != nil && *errp != nil {
			entry.WithError(*errp).Warn("operation failed")
			return
		}
		entry.Debug("operation done")
	}
}
