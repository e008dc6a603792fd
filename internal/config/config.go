// Package config loads the command line tool's settings from the environment.
package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Index *Index `env:",prefix=PYPI_"`
	Log   *Log   `env:",prefix=LOG_"`
}

type Index struct {
	BaseURL   string        `env:"BASE_URL,default=https://pypi.org"`
	Name      string        `env:"INDEX"`
	UserAgent string        `env:"USER_AGENT,default=pypi"`
	Timeout   time.Duration `env:"TIMEOUT,default=30s"`
}

func (i *Index) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("baseURL", i.BaseURL)
	enc.AddString("name", i.Name)
	enc.AddDuration("timeout", i.Timeout)
	return nil
}

type Log struct {
	Format string `env:"FORMAT,default=console"`
	Level  string `env:"LEVEL,default=warn"`
}

func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &cfg, l); err != nil {
		return nil, err
	}

	return &cfg, nil
}
