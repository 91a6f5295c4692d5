package scheduler_config

import (
	common "github.com/NordCoder/Uptimer/internal/config/common"
)

func Load(path string) (*Config, error) {
	v := common.NewViper(path)

	common.SetDefaults(v, "scheduler")
	common.SetKafkaDefaults(v, "")

	v.SetDefault("sched.schedule", "@every 5m")
	v.SetDefault("sched.metrics_addr", ":8081")

	var cfg Config
	if err := common.Unmarshal(v, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
