// Package config loads runtime parameters from a YAML file so entrypoints
// never hard-code tuning values.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is a typed view over a flat YAML key/value file.
type Config struct {
	values map[string]any
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	values := make(map[string]any)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return &Config{values: values}, nil
}

// Empty returns a config with no values, so every getter yields its default.
func Empty() *Config {
	return &Config{values: map[string]any{}}
}

// GetString returns a string parameter, or "" when missing or mistyped.
func (c *Config) GetString(key string) string {
	value, ok := c.values[key]
	if !ok {
		return ""
	}
	str, ok := value.(string)
	if !ok {
		return ""
	}
	return str
}

// GetStringOrDefault returns a string parameter, or defaultValue when
// missing or mistyped.
func (c *Config) GetStringOrDefault(key, defaultValue string) string {
	if value := c.GetString(key); value != "" {
		return value
	}
	return defaultValue
}

// GetIntOrDefault returns an integer parameter, or defaultValue when
// missing or mistyped.
func (c *Config) GetIntOrDefault(key string, defaultValue int) int {
	value, ok := c.values[key]
	if !ok {
		return defaultValue
	}
	intValue, ok := value.(int)
	if !ok {
		return defaultValue
	}
	return intValue
}

// GetDurationOrDefault returns a duration parameter given in milliseconds,
// or defaultValue when missing or negative.
func (c *Config) GetDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	intValue := c.GetIntOrDefault(key, -1)
	if intValue < 0 {
		return defaultValue
	}
	return time.Duration(intValue) * time.Millisecond
}
