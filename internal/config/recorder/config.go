package recorder_config

import (
	"errors"
	"fmt"
	"time"

	common "github.com/NordCoder/Uptimer/internal/config/common"
	pginfra "github.com/NordCoder/Uptimer/internal/repository/postgres"
)

const (
	TriggerCron  = "cron"
	TriggerKafka = "kafka"
)

type RecorderCfg struct {
	Trigger           string        `mapstructure:"trigger"`
	Schedule          string        `mapstructure:"schedule"`
	InvocationTimeout time.Duration `mapstructure:"invocation_timeout"`
	ConflictRetries   int           `mapstructure:"conflict_retries"`
	MetricsAddr       string        `mapstructure:"metrics_addr"`
}

type Config struct {
	App      common.App     `mapstructure:"app"`
	Log      common.Log     `mapstructure:"log"`
	OTEL     common.OTEL    `mapstructure:"otel"`
	Store    common.Store   `mapstructure:"store"`
	DB       pginfra.Config `mapstructure:"db"`
	Ping     common.Ping    `mapstructure:"ping"`
	Probe    common.Probe   `mapstructure:"probe"`
	Recorder RecorderCfg    `mapstructure:"recorder"`
	Kafka    common.Kafka   `mapstructure:"kafka"`
}

// ValidateStore checks only what reading and writing the history needs.
func (c *Config) ValidateStore() error {
	errs := []error{c.Store.Validate()}
	if c.Store.Driver == common.DriverPostgres {
		errs = append(errs, common.Require("db.dsn", c.DB.DSN))
	}
	return errors.Join(errs...)
}

func (c *Config) Validate() error {
	errs := []error{c.ValidateStore(), c.Ping.Validate()}
	switch c.Recorder.Trigger {
	case TriggerCron:
		errs = append(errs, common.Require("recorder.schedule", c.Recorder.Schedule))
	case TriggerKafka:
		errs = append(errs, c.Kafka.Validate(), common.Require("kafka.group_id", c.Kafka.GroupID))
	default:
		errs = append(errs, fmt.Errorf("recorder.trigger: unsupported value %q", c.Recorder.Trigger))
	}
	return errors.Join(errs...)
}
