package config

import (
	"fmt"
	"time"
)

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Manager Store Jobs Authentication

type Server struct {
	ServerMode string  `default:"dev" debugmap:"visible"`
	HTTPPort   int     `default:"8000" debugmap:"visible"`
	RateLimit  float64 `default:"50" debugmap:"visible"`
	RateBurst  int     `default:"100" debugmap:"visible"`
}

type Manager struct {
	MaxConcurrency int           `default:"0" debugmap:"visible"`
	DefaultTimeout time.Duration `default:"0s" debugmap:"visible"`
}

type Store struct {
	DataFolder string `default:"" debugmap:"visible"`
}

type Jobs struct {
	File  string `default:"" debugmap:"visible"`
	Watch bool   `default:"true" debugmap:"visible"`
}

type Authentication struct {
	Enabled bool   `default:"false" debugmap:"visible"`
	Secret  string `default:"" debugmap:"sensitive"`
}

type Configuration struct {
	Server    Server         `debugmap:"visible"`
	Manager   Manager        `debugmap:"visible"`
	Store     Store          `debugmap:"visible"`
	Jobs      Jobs           `debugmap:"visible"`
	Auth      Authentication `debugmap:"visible"`
	LogFormat string         `default:"console" debugmap:"visible"`
	LogLevel  string         `default:"debug" debugmap:"visible"`
}

func (c *Configuration) Validate() error {
	switch c.Server.ServerMode {
	case "dev", "prod":
	default:
		return fmt.Errorf("invalid server mode %q: must be dev or prod", c.Server.ServerMode)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port %d", c.Server.HTTPPort)
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return fmt.Errorf("rate limit and burst must not be negative")
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst == 0 {
		return fmt.Errorf("rate burst must be positive when rate limit is set")
	}
	if c.Manager.MaxConcurrency < 0 {
		return fmt.Errorf("max concurrency must not be negative")
	}
	if c.Manager.DefaultTimeout < 0 {
		return fmt.Errorf("default timeout must not be negative")
	}
	if c.Auth.Enabled && c.Auth.Secret == "" {
		return fmt.Errorf("authentication is enabled but no secret was provided")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be console or json", c.LogFormat)
	}
	return nil
}
