package common_config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreValidate(t *testing.T) {
	t.Run("missing namespace", func(t *testing.T) {
		s := Store{Driver: DriverMemory, Key: "result"}
		err := s.Validate()
		require.ErrorIs(t, err, ErrConfigMissing)
		assert.Contains(t, err.Error(), "store.namespace")
	})
	t.Run("sqlite needs a path", func(t *testing.T) {
		s := Store{Driver: DriverSQLite, Namespace: "ns", Key: "result"}
		err := s.Validate()
		require.ErrorIs(t, err, ErrConfigMissing)
		assert.Contains(t, err.Error(), "store.sqlite_path")
	})
	t.Run("unknown driver", func(t *testing.T) {
		s := Store{Driver: "redis", Namespace: "ns", Key: "result"}
		assert.ErrorContains(t, s.Validate(), "unsupported")
	})
	t.Run("ok", func(t *testing.T) {
		s := Store{Driver: DriverPostgres, Namespace: "ns", Key: "result"}
		assert.NoError(t, s.Validate())
	})
}

func TestKafkaValidate(t *testing.T) {
	k := Kafka{}
	err := k.Validate()
	require.ErrorIs(t, err, ErrConfigMissing)
	assert.Contains(t, err.Error(), "kafka.brokers")
	assert.Contains(t, err.Error(), "kafka.topic")
}

func TestUnmarshal_EnvOverridesFileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  namespace: from-file\n  key: custom\n"), 0o600))
	t.Setenv("STORE_NAMESPACE", "from-env")

	v := NewViper(path)
	SetDefaults(v, "test")
	SetStoreDefaults(v)

	var out struct {
		App   App   `mapstructure:"app"`
		Store Store `mapstructure:"store"`
	}
	require.NoError(t, Unmarshal(v, &out))

	assert.Equal(t, "from-env", out.Store.Namespace)
	assert.Equal(t, "custom", out.Store.Key)
	assert.Equal(t, DriverPostgres, out.Store.Driver)
	assert.Equal(t, "test", out.App.Name)
}

func TestNewViper_MissingFileIsIgnored(t *testing.T) {
	v := NewViper(filepath.Join(t.TempDir(), "nope.yaml"))
	SetStoreDefaults(v)
	var out struct {
		Store Store `mapstructure:"store"`
	}
	require.NoError(t, Unmarshal(v, &out))
	assert.Equal(t, "result", out.Store.Key)
}

func TestAsOTELConfig_FallsBackToAppName(t *testing.T) {
	o := OTEL{Enable: true}
	c := o.AsOTELConfig(App{Name: "api", Version: "1.2.3"})
	assert.Equal(t, "api", c.ServiceName)
	assert.Equal(t, "1.2.3", c.ServiceVersion)
}
