package api_config

import (
	"errors"
	"time"

	common "github.com/NordCoder/Uptimer/internal/config/common"
	pginfra "github.com/NordCoder/Uptimer/internal/repository/postgres"
)

type Server struct {
	HTTPAddr           string        `mapstructure:"http_addr"`
	GRPCAddr           string        `mapstructure:"grpc_addr"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	IdleTimeout        time.Duration `mapstructure:"idle_timeout"`
	GracefulTimeout    time.Duration `mapstructure:"graceful_timeout"`
	MaxMultipartMemory int64         `mapstructure:"max_multipart_memory"`
	HealthInterval     time.Duration `mapstructure:"health_interval"`
}

type API struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type Config struct {
	App    common.App     `mapstructure:"app"`
	Log    common.Log     `mapstructure:"log"`
	OTEL   common.OTEL    `mapstructure:"otel"`
	Store  common.Store   `mapstructure:"store"`
	DB     pginfra.Config `mapstructure:"db"`
	Server Server         `mapstructure:"server"`
	API    API            `mapstructure:"api"`
}

func (c *Config) Validate() error {
	errs := []error{c.Store.Validate(), common.Require("server.http_addr", c.Server.HTTPAddr)}
	if c.Store.Driver == common.DriverPostgres {
		errs = append(errs, common.Require("db.dsn", c.DB.DSN))
	}
	return errors.Join(errs...)
}
