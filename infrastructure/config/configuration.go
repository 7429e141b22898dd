package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

type SlackConfig struct {
	Token     string `yaml:"token"`
	ChannelID string `yaml:"channel_id"`
}

type Config struct {
	Listen        string      `yaml:"listen"`
	StorePath     string      `yaml:"store_path"`
	SigningSecret string      `yaml:"signing_secret"` // base64
	// Pointer so an explicit 0 (UTC) is distinguishable from an omitted field.
	TimezoneOffsetHours *int        `yaml:"timezone_offset_hours"`
	Slack               SlackConfig `yaml:"slack"`
}

// TimezoneOffset returns the configured UTC offset in hours, defaulting to
// 9 (KST) when the field is omitted.
func (c *Config) TimezoneOffset() int {
	if c.TimezoneOffsetHours == nil {
		return 9
	}
	return *c.TimezoneOffsetHours
}

var (
	once    sync.Once
	cfg     *Config
	loadErr error
)

// Load reads the yaml config once. Path comes from OFFWORK_CONFIG and
// defaults to config.yaml; a missing file yields defaults, not an error.
func Load() (*Config, error) {
	once.Do(func() {
		path := os.Getenv("OFFWORK_CONFIG")
		if path == "" {
			path = "config.yaml"
		}

		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			loadErr = fmt.Errorf("read config %s: %w", path, err)
			return
		}

		cfg, loadErr = parse(data)
	})

	return cfg, loadErr
}

func parse(data []byte) (*Config, error) {
	parsed := &Config{}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, parsed); err != nil {
			return nil, fmt.Errorf("unmarshal yaml: %w", err)
		}
	}

	if parsed.Listen == "" {
		parsed.Listen = ":8090"
	}
	if parsed.StorePath == "" {
		parsed.StorePath = "offwork.db"
	}
	if parsed.SigningSecret == "" {
		parsed.SigningSecret = os.Getenv("OFFWORK_SIGNING_SECRET")
	}
	if parsed.Slack.Token == "" {
		parsed.Slack.Token = os.Getenv("SLACK_BOT_TOKEN")
		parsed.Slack.ChannelID = os.Getenv("SLACK_CHANNEL")
	}

	return parsed, nil
}
