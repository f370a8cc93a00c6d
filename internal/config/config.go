package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const devSessionSecret = "dev-secret-key-change-in-production"

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port                  string `yaml:"port"`
		Env                   string `yaml:"env"`
		RequestTimeoutSeconds int64  `yaml:"request_timeout_seconds"`
	} `yaml:"server"`
	Database struct {
		URL          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
	} `yaml:"database"`
	Admin struct {
		Username        string `yaml:"username"`
		Password        string `yaml:"password"`
		SessionSecret   string `yaml:"session_secret"`
		SessionTTLHours int64  `yaml:"session_ttl_hours"`
	} `yaml:"admin"`
	Telegram struct {
		Enabled  bool   `yaml:"enabled"`
		BotToken string `yaml:"bot_token"`
		ChatID   int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyDefaults()
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.RequestTimeoutSeconds <= 0 {
		c.Server.RequestTimeoutSeconds = 5
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns <= 0 {
		c.Database.MaxIdleConns = 2
	}
	if c.Admin.SessionSecret == "" {
		c.Admin.SessionSecret = devSessionSecret
	}
	if c.Admin.SessionTTLHours <= 0 {
		c.Admin.SessionTTLHours = 8
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required")
	}
	if c.Admin.Username == "" || c.Admin.Password == "" {
		return fmt.Errorf("admin.username and admin.password are required")
	}
	if c.IsProduction() && c.Admin.SessionSecret == devSessionSecret {
		return fmt.Errorf("admin.session_secret must be set in production environment")
	}
	return nil
}

// IsProduction reports whether the server runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
