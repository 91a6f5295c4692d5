package common_config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NordCoder/Uptimer/internal/obs"
)

var ErrConfigMissing = errors.New("required configuration missing")

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type App struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

type Log struct {
	Level   string   `mapstructure:"level"`
	Pretty  bool     `mapstructure:"pretty"`
	Outputs []string `mapstructure:"outputs"`
}

func (lc *Log) AsLoggerConfig(app App) *obs.LogConfig {
	return &obs.LogConfig{
		Level:   lc.Level,
		Pretty:  lc.Pretty,
		Outputs: lc.Outputs,
		App:     app.Name,
		Env:     app.Env,
		Ver:     app.Version,
	}
}

type OTEL struct {
	Enable       bool    `mapstructure:"enable"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	ServiceName  string  `mapstructure:"service_name"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

func (oc *OTEL) AsOTELConfig(app App) *obs.OTELConfig {
	name := oc.ServiceName
	if name == "" {
		name = app.Name
	}
	return &obs.OTELConfig{
		Enable:         oc.Enable,
		Endpoint:       oc.OTLPEndpoint,
		ServiceName:    name,
		ServiceVersion: app.Version,
		SampleRatio:    oc.SampleRatio,
	}
}

// Store binds the history to one key of one key-value namespace.
type Store struct {
	Driver     string `mapstructure:"driver"`
	Namespace  string `mapstructure:"namespace"`
	Key        string `mapstructure:"key"`
	SQLitePath string `mapstructure:"sqlite_path"`
	Debug      bool   `mapstructure:"debug"`
}

func (s *Store) Validate() error {
	var errs []error
	errs = append(errs, Require("store.namespace", s.Namespace), Require("store.key", s.Key))
	switch s.Driver {
	case DriverPostgres, DriverMemory:
	case DriverSQLite:
		errs = append(errs, Require("store.sqlite_path", s.SQLitePath))
	default:
		errs = append(errs, fmt.Errorf("store.driver: unsupported value %q", s.Driver))
	}
	return errors.Join(errs...)
}

type Kafka struct {
	Brokers       []string `mapstructure:"brokers"`
	Topic         string   `mapstructure:"topic"`
	GroupID       string   `mapstructure:"group_id"`
	FromBeginning bool     `mapstructure:"from_beginning"`
}

func (k *Kafka) Validate() error {
	var errs []error
	if len(k.Brokers) == 0 {
		errs = append(errs, fmt.Errorf("%w: kafka.brokers", ErrConfigMissing))
	}
	errs = append(errs, Require("kafka.topic", k.Topic))
	return errors.Join(errs...)
}

type Ping struct {
	URL string `mapstructure:"url"`
}

func (p *Ping) Validate() error { return Require("ping.url", p.URL) }

type Probe struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	UserAgent       string        `mapstructure:"user_agent"`
	FollowRedirects bool          `mapstructure:"follow_redirects"`
	VerifyTLS       bool          `mapstructure:"verify_tls"`
}

// Require reports ErrConfigMissing naming key when value is blank.
func Require(key, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", ErrConfigMissing, key)
	}
	return nil
}
