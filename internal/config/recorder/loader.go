package recorder_config

import (
	common "github.com/NordCoder/Uptimer/internal/config/common"
)

// Load builds the recorder config without validating it; callers pick
// Validate or ValidateStore depending on what they run.
func Load(path string) (*Config, error) {
	v := common.NewViper(path)

	common.SetDefaults(v, "recorder")
	common.SetStoreDefaults(v)
	common.SetKafkaDefaults(v, "recorder")

	// no default: PING_URL must be provided
	v.SetDefault("ping.url", "")

	v.SetDefault("probe.timeout", "30s")
	v.SetDefault("probe.user_agent", "Uptimer/1.0")
	v.SetDefault("probe.follow_redirects", true)
	v.SetDefault("probe.verify_tls", true)

	v.SetDefault("recorder.trigger", TriggerCron)
	v.SetDefault("recorder.schedule", "@every 5m")
	v.SetDefault("recorder.invocation_timeout", "2m")
	v.SetDefault("recorder.conflict_retries", 5)
	v.SetDefault("recorder.metrics_addr", ":8082")

	var cfg Config
	if err := common.Unmarshal(v, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
