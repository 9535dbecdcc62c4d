package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// GenerateConfig holds defaults for `pgseed generate`.
type GenerateConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Table  string `yaml:"table"`
}

type ConnectionConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	Database       string `yaml:"database"`
	SSLMode        string `yaml:"sslmode"`
	AuthMethod     string `yaml:"auth_method,omitempty"`
	AzureTenantID  string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID  string `yaml:"azure_client_id,omitempty"`
	AWSRegion      string `yaml:"aws_region,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
}

// ExecConfig holds defaults for `pgseed exec`.
type ExecConfig struct {
	Files       []string `yaml:"files"`
	VerifyTable string   `yaml:"verify_table"`
	Timeout     string   `yaml:"timeout"`
}

// TimeoutDuration parses Timeout. An empty value yields zero.
func (e ExecConfig) TimeoutDuration() (time.Duration, error) {
	if e.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(e.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid exec.timeout %q: %w", e.Timeout, err)
	}
	return d, nil
}

type ProjectConfig struct {
	Generate   GenerateConfig   `yaml:"generate"`
	Connection ConnectionConfig `yaml:"connection"`
	Exec       ExecConfig       `yaml:"exec"`
}

const ConfigFileName = "pgseed.yaml"

// Load reads pgseed.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a config file at an explicit path.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
