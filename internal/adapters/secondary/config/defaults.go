package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
)

const (
	DefaultOutputDir   = "/mnt/user-data/outputs"
	DefaultFallbackDir = "outputs"
	DefaultTheme       = "software_professional"
	DefaultUploadsDir  = "/mnt/user-data/uploads"
	DefaultPort        = 8080
)

// GetDefaultConfig returns the built-in configuration
func GetDefaultConfig() *entities.Config {
	return &entities.Config{
		Output: entities.OutputConfig{
			PreferredDirs: []string{DefaultOutputDir},
			FallbackDir:   DefaultFallbackDir,
			Format:        entities.Format16x9,
		},
		Theme: entities.ThemeConfig{
			Name: DefaultTheme,
		},
		Template: entities.TemplateConfig{
			UploadsDir: DefaultUploadsDir,
		},
		Generator: entities.GeneratorConfig{
			Provider:    "anthropic",
			Model:       "claude-sonnet-4-20250514",
			BaseURL:     "https://api.anthropic.com",
			APIKeyEnv:   "ANTHROPIC_API_KEY",
			MaxTokens:   4000,
			Temperature: 0.7,
			Timeout:     120,
			MaxRetries:  2,
		},
		Export: entities.ExportConfig{
			PreviewQuality: "medium",
		},
		Server: entities.ServerConfig{
			Host:            "localhost",
			Port:            DefaultPort,
			ReadTimeout:     30,
			WriteTimeout:    180,
			ShutdownTimeout: 5,
			Environment:     "development",
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"http://localhost:8080",
				"http://127.0.0.1:8080",
			},
		},
		Logging: entities.LoggingConfig{
			Level: "info",
		},
	}
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvSliceOrDefault splits a comma separated variable
func getEnvSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
