package probe

import (
	"context"
	"time"
)

type Prober interface {
	Probe(ctx context.Context, url string) Record
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
