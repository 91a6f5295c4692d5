package scheduler_config

import (
	"errors"

	common "github.com/NordCoder/Uptimer/internal/config/common"
)

type SchedCfg struct {
	Schedule    string `mapstructure:"schedule"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

type Config struct {
	App   common.App   `mapstructure:"app"`
	Log   common.Log   `mapstructure:"log"`
	OTEL  common.OTEL  `mapstructure:"otel"`
	Kafka common.Kafka `mapstructure:"kafka"`
	Sched SchedCfg     `mapstructure:"sched"`
}

func (c *Config) Validate() error {
	return errors.Join(c.Kafka.Validate(), common.Require("sched.schedule", c.Sched.Schedule))
}
