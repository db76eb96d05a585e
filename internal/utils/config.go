package utils

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config struct holds application configuration
type Config struct {
	Port            int    `yaml:"port"`
	HealthPort      int    `yaml:"health_port"`
	CleanupInterval int    `yaml:"cleanup_interval_ms"`
	LogFile         string `yaml:"log_file"`
	Debug           bool   `yaml:"debug"`
}

const (
	defaultPort            = 6379
	defaultCleanupInterval = 100
)

var (
	configInstance *Config   // Singleton configInstance
	configOnce     sync.Once // Ensures thread-safe initialization
	configErr      error
)

// LoadConfig initializes the singleton configInstance. A missing file
// yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	configOnce.Do(func() {
		configInstance, configErr = loadConfigFromFile(filename)
	})
	return configInstance, configErr
}

// loadConfigFromFile reads and parses the config file
func loadConfigFromFile(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return getDefaultConfig(), nil
		}
		return nil, err
	}
	defer file.Close()

	config := &Config{}
	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	applyDefaults(config)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return config, nil
}

// GetConfig returns the singleton config configInstance
func GetConfig() (*Config, error) {
	if configInstance == nil {
		return nil, errors.New("config not initialized, call LoadConfig() first")
	}
	return configInstance, nil
}

// Validate rejects ports outside the TCP range and a health port that
// collides with the client port.
func (c *Config) Validate() error {
	for name, port := range map[string]int{"port": c.Port, "health_port": c.HealthPort} {
		if port < 0 || port > 65535 {
			return fmt.Errorf("%s %d out of range", name, port)
		}
	}
	if c.HealthPort == c.Port {
		return fmt.Errorf("health_port must differ from port %d", c.Port)
	}
	return nil
}

// getDefaultConfig returns default config values
func getDefaultConfig() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// applyDefaults ensures missing values get defaults
func applyDefaults(config *Config) {
	if config.Port == 0 {
		config.Port = defaultPort
	}
	if config.HealthPort == 0 {
		config.HealthPort = config.Port + 1000
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = defaultCleanupInterval
	}
}
