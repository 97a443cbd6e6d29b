package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DatabaseConfig holds PostgreSQL connection parameters.
// When Enabled is false the server keeps accounts in memory.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// MessagingConfig holds the GM notice bus settings.
//
// Modes:
//   - Enabled=false: in-process bus
//   - Enabled, Embedded: start a NATS server inside the process and connect to it
//   - Enabled, !Embedded: connect to URL
type MessagingConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Embedded      bool   `yaml:"embedded"`
	URL           string `yaml:"url"`
	Host          string `yaml:"host"` // embedded server
	Port          int    `yaml:"port"` // embedded server
	NoticeSubject string `yaml:"notice_subject"`
}

// load reads YAML from path over cfg.
// A missing file leaves cfg untouched.
func load(path string, cfg any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}
