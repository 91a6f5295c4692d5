package recorder_config

import (
	"testing"

	common "github.com/NordCoder/Uptimer/internal/config/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "result", cfg.Store.Key)
	assert.Equal(t, TriggerCron, cfg.Recorder.Trigger)
	assert.Equal(t, "@every 5m", cfg.Recorder.Schedule)
	assert.Equal(t, 5, cfg.Recorder.ConflictRetries)
	assert.Equal(t, "uptimer.probe.requested", cfg.Kafka.Topic)
	assert.Equal(t, "recorder", cfg.Kafka.GroupID)
}

func TestValidate_RequiresPingURLAndNamespace(t *testing.T) {
	t.Setenv("PING_URL", "")
	t.Setenv("STORE_NAMESPACE", "")

	cfg, err := Load("")
	require.NoError(t, err)

	err = cfg.Validate()
	require.ErrorIs(t, err, common.ErrConfigMissing)
	assert.Contains(t, err.Error(), "ping.url")
	assert.Contains(t, err.Error(), "store.namespace")
}

func TestValidate_FromEnvironment(t *testing.T) {
	t.Setenv("PING_URL", "https://example.com")
	t.Setenv("STORE_NAMESPACE", "megumiso-uptime")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://example.com", cfg.Ping.URL)
	assert.Equal(t, "megumiso-uptime", cfg.Store.Namespace)
}

func TestValidateStore_IgnoresPingURL(t *testing.T) {
	t.Setenv("PING_URL", "")
	t.Setenv("STORE_NAMESPACE", "ns")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.NoError(t, cfg.ValidateStore())
	assert.Error(t, cfg.Validate())
}

func TestValidate_Trigger(t *testing.T) {
	t.Setenv("PING_URL", "https://example.com")
	t.Setenv("STORE_NAMESPACE", "ns")

	t.Run("kafka with defaults", func(t *testing.T) {
		t.Setenv("RECORDER_TRIGGER", "kafka")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.NoError(t, cfg.Validate())
	})
	t.Run("unknown", func(t *testing.T) {
		t.Setenv("RECORDER_TRIGGER", "webhook")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.ErrorContains(t, cfg.Validate(), "recorder.trigger")
	})
}
