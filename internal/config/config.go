// Package config loads gocoap's host-supplied configuration surface
// (spec §6) from environment variables and an optional file, following
// the same viper-based precedence (env > file > defaults) as the
// pack's dittofs config loader.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the configuration surface spec §6 names.
type Config struct {
	// ServerPort is the well-known port a gnrccoap server binds.
	ServerPort int `mapstructure:"server_port"`

	// EphemeralMin/EphemeralMax bound client source ports.
	EphemeralMin int `mapstructure:"ephemeral_min"`
	EphemeralMax int `mapstructure:"ephemeral_max"`

	// ResponseBufferSize sizes every pool buffer.
	ResponseBufferSize int `mapstructure:"response_buffer_size"`

	// NanoURLMaxLen bounds an inbound URL the nano variant will accept.
	NanoURLMaxLen int `mapstructure:"nano_url_max_len"`

	// QueueDepth sizes the dispatcher's mailbox.
	QueueDepth int `mapstructure:"queue_depth"`
}

// DefaultConfig returns the spec §6 defaults.
func DefaultConfig() Config {
	return Config{
		ServerPort:         5683,
		EphemeralMin:       20000,
		EphemeralMax:       21000,
		ResponseBufferSize: 128,
		NanoURLMaxLen:      64,
		QueueDepth:         4,
	}
}

// Load reads configuration from environment variables (prefix
// GOCOAP_, e.g. GOCOAP_SERVER_PORT) and, if configPath is non-empty, a
// YAML/TOML file, falling back to DefaultConfig for anything unset.
// Environment variables take precedence over the file.
func Load(configPath string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GOCOAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("server_port", def.ServerPort)
	v.SetDefault("ephemeral_min", def.EphemeralMin)
	v.SetDefault("ephemeral_max", def.EphemeralMax)
	v.SetDefault("response_buffer_size", def.ResponseBufferSize)
	v.SetDefault("nano_url_max_len", def.NanoURLMaxLen)
	v.SetDefault("queue_depth", def.QueueDepth)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}
