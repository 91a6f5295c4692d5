package kafka

import (
	"context"
	"time"
)

// ProbeEvents publishes requests for one recording run. The recorder group
// consumes them so that a single writer touches the history at a time.
type ProbeEvents interface {
	PublishProbeRequested(ctx context.Context, runID string, at time.Time) error
}
