// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"time"
)

type Config struct {
	// Provider Configuration
	APIKey string
	Model  string

	// Performance Configuration
	Timeout time.Duration

	// Model Parameters
	Temperature float32
	TopP        float32
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return NewConfigError("GEMINI_API_KEY is required")
	}
	if c.Model == "" {
		return NewConfigError("model name is required")
	}
	if c.Timeout <= 0 {
		return NewConfigError("timeout must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Model:       "gemini-2.5-flash",
		Timeout:     60 * time.Second,
		Temperature: 0.7,
		TopP:        0.95,
	}
}

func (c *Config) String() string {
	return fmt.Sprintf("ai.Config{Model:%s Timeout:%s}", c.Model, c.Timeout)
}
