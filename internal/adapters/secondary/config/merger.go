package config

import (
	"os"
	"strconv"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

// ConfigMerger implements the ConfigMerger interface
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	result := deepCopy(configs[0])
	if result == nil {
		result = &entities.Config{}
	}

	for i := 1; i < len(configs); i++ {
		if configs[i] != nil {
			m.mergeInto(result, configs[i])
		}
	}

	return result
}

// ApplyFlags applies CLI flag overrides to a configuration. Only flags
// the user actually set should be present in the map.
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if dir, ok := flags["output-dir"].(string); ok && dir != "" {
		result.Output.Dir = dir
	}

	if format, ok := flags["format"].(string); ok && format != "" {
		result.Output.Format = format
	}

	if theme, ok := flags["theme"].(string); ok && theme != "" {
		result.Theme.Name = theme
	}

	if brand, ok := flags["brand"].(string); ok && brand != "" {
		result.Theme.BrandKit = brand
	}

	if template, ok := flags["template"].(string); ok && template != "" {
		result.Template.Path = template
	}

	if model, ok := flags["model"].(string); ok && model != "" {
		result.Generator.Model = model
	}

	if preview, ok := flags["preview"].(bool); ok {
		result.Export.Preview = preview
	}

	if handout, ok := flags["handout"].(bool); ok {
		result.Export.Handout = handout
	}

	if port, ok := flags["port"].(int); ok && port > 0 {
		result.Server.Port = port
	}

	if host, ok := flags["host"].(string); ok && host != "" {
		result.Server.Host = host
	}

	if verbose, ok := flags["verbose"].(bool); ok && verbose {
		result.Logging.Verbose = true
		result.Logging.Level = string(entities.LogLevelDebug)
	}

	return result
}

// ApplyEnvVars applies SLIDECRAFT_* environment overrides to a configuration
func (m *ConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)

	if dir := os.Getenv("SLIDECRAFT_OUTPUT_DIR"); dir != "" {
		result.Output.Dir = dir
	}

	if theme := os.Getenv("SLIDECRAFT_THEME"); theme != "" {
		result.Theme.Name = theme
	}

	if brand := os.Getenv("SLIDECRAFT_BRAND_KIT"); brand != "" {
		result.Theme.BrandKit = brand
	}

	if template := os.Getenv("SLIDECRAFT_TEMPLATE"); template != "" {
		result.Template.Path = template
	}

	if model := os.Getenv("SLIDECRAFT_MODEL"); model != "" {
		result.Generator.Model = model
	}

	if baseURL := os.Getenv("SLIDECRAFT_API_BASE_URL"); baseURL != "" {
		result.Generator.BaseURL = baseURL
	}

	if host := os.Getenv("SLIDECRAFT_HOST"); host != "" {
		result.Server.Host = host
	}

	if port := getEnvIntOrDefault("SLIDECRAFT_PORT", 0); port > 0 {
		result.Server.Port = port
	}

	result.Server.CORSOrigins = getEnvSliceOrDefault("SLIDECRAFT_CORS_ORIGINS", result.Server.CORSOrigins)

	if level := os.Getenv("SLIDECRAFT_LOG_LEVEL"); level != "" {
		result.Logging.Level = level
	}

	result.Logging.Verbose = getEnvBoolOrDefault("SLIDECRAFT_LOG_VERBOSE", result.Logging.Verbose)

	if timeout := os.Getenv("SLIDECRAFT_GENERATOR_TIMEOUT"); timeout != "" {
		if seconds, err := strconv.Atoi(timeout); err == nil && seconds > 0 {
			result.Generator.Timeout = seconds
		}
	}

	return result
}

// mergeInto merges source configuration into target configuration.
// TOML cannot distinguish false from unset, so booleans only ever turn on.
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	// Output config
	if source.Output.Dir != "" {
		target.Output.Dir = source.Output.Dir
	}
	if len(source.Output.PreferredDirs) > 0 {
		target.Output.PreferredDirs = copyStrings(source.Output.PreferredDirs)
	}
	if source.Output.FallbackDir != "" {
		target.Output.FallbackDir = source.Output.FallbackDir
	}
	if source.Output.Format != "" {
		target.Output.Format = source.Output.Format
	}

	// Theme config
	if source.Theme.Name != "" {
		target.Theme.Name = source.Theme.Name
	}
	if source.Theme.BrandKit != "" {
		target.Theme.BrandKit = source.Theme.BrandKit
	}

	// Template config
	if source.Template.Path != "" {
		target.Template.Path = source.Template.Path
	}
	if source.Template.UploadsDir != "" {
		target.Template.UploadsDir = source.Template.UploadsDir
	}

	// Generator config
	if source.Generator.Provider != "" {
		target.Generator.Provider = source.Generator.Provider
	}
	if source.Generator.Model != "" {
		target.Generator.Model = source.Generator.Model
	}
	if source.Generator.BaseURL != "" {
		target.Generator.BaseURL = source.Generator.BaseURL
	}
	if source.Generator.APIKeyEnv != "" {
		target.Generator.APIKeyEnv = source.Generator.APIKeyEnv
	}
	if source.Generator.MaxTokens != 0 {
		target.Generator.MaxTokens = source.Generator.MaxTokens
	}
	if source.Generator.Temperature != 0 {
		target.Generator.Temperature = source.Generator.Temperature
	}
	if source.Generator.Timeout != 0 {
		target.Generator.Timeout = source.Generator.Timeout
	}
	if source.Generator.MaxRetries != 0 {
		target.Generator.MaxRetries = source.Generator.MaxRetries
	}

	// Export config
	target.Export.Preview = target.Export.Preview || source.Export.Preview
	target.Export.Handout = target.Export.Handout || source.Export.Handout
	if source.Export.PreviewQuality != "" {
		target.Export.PreviewQuality = source.Export.PreviewQuality
	}

	// Server config
	if source.Server.Port != 0 {
		target.Server.Port = source.Server.Port
	}
	if source.Server.Host != "" {
		target.Server.Host = source.Server.Host
	}
	if source.Server.ReadTimeout != 0 {
		target.Server.ReadTimeout = source.Server.ReadTimeout
	}
	if source.Server.WriteTimeout != 0 {
		target.Server.WriteTimeout = source.Server.WriteTimeout
	}
	if source.Server.ShutdownTimeout != 0 {
		target.Server.ShutdownTimeout = source.Server.ShutdownTimeout
	}
	if source.Server.Environment != "" {
		target.Server.Environment = source.Server.Environment
	}
	if len(source.Server.CORSOrigins) > 0 {
		target.Server.CORSOrigins = copyStrings(source.Server.CORSOrigins)
	}

	// Logging config
	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	target.Logging.Verbose = target.Logging.Verbose || source.Logging.Verbose
	if source.Logging.File != "" {
		target.Logging.File = source.Logging.File
	}
}

// deepCopy creates a deep copy of a configuration
func deepCopy(src *entities.Config) *entities.Config {
	if src == nil {
		return nil
	}

	dst := *src
	dst.Output.PreferredDirs = copyStrings(src.Output.PreferredDirs)
	dst.Server.CORSOrigins = copyStrings(src.Server.CORSOrigins)
	return &dst
}

func copyStrings(src []string) []string {
	if src == nil {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

// Ensure ConfigMerger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*ConfigMerger)(nil)
