package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Redis:  RedisConfig{Host: "localhost", Port: 6379},
		Notify: NotifyConfig{Channel: "studio:notifications"},
		JWT:    JWTConfig{SecretKey: strings.Repeat("k", 32)},
	}
}

func TestValidate(t *testing.T) {
	if err := validate(validConfig()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing jwt secret", func(c *Config) { c.JWT.SecretKey = "" }},
		{"short jwt secret", func(c *Config) { c.JWT.SecretKey = "short" }},
		{"missing redis host", func(c *Config) { c.Redis.Host = "" }},
		{"missing redis port", func(c *Config) { c.Redis.Port = 0 }},
		{"missing notify channel", func(c *Config) { c.Notify.Channel = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := validate(cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
