package obs

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CronLogger routes robfig/cron's internal logging through zap.
type CronLogger struct {
	l *zap.SugaredLogger
}

var _ cron.Logger = CronLogger{}

func NewCronLogger(l *zap.Logger) CronLogger {
	return CronLogger{l: l.With(zap.String("component", "cron")).Sugar()}
}

func (c CronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c CronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
