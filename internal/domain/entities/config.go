package entities

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Output    OutputConfig    `toml:"output"`
	Theme     ThemeConfig     `toml:"theme"`
	Template  TemplateConfig  `toml:"template"`
	Generator GeneratorConfig `toml:"generator"`
	Export    ExportConfig    `toml:"export"`
	Server    ServerConfig    `toml:"server"`
	Logging   LoggingConfig   `toml:"logging"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := c.Theme.Validate(); err != nil {
		return fmt.Errorf("theme config: %w", err)
	}

	if err := c.Template.Validate(); err != nil {
		return fmt.Errorf("template config: %w", err)
	}

	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("generator config: %w", err)
	}

	if err := c.Export.Validate(); err != nil {
		return fmt.Errorf("export config: %w", err)
	}

	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// OutputConfig controls where finished decks are written
type OutputConfig struct {
	// Dir forces a single output directory
	Dir string `toml:"dir"`

	// PreferredDirs are tried in order; the first existing one wins
	PreferredDirs []string `toml:"preferred_dirs"`

	// FallbackDir is created when no preferred directory exists
	FallbackDir string `toml:"fallback_dir"`

	// Format is the aspect-ratio tag
	Format string `toml:"format"`
}

// Validate validates output configuration
func (o OutputConfig) Validate() error {
	for _, dir := range o.PreferredDirs {
		if strings.TrimSpace(dir) == "" {
			return errors.New("preferred output directory cannot be empty")
		}
	}
	if o.Format != "" && o.Format != Format16x9 {
		return fmt.Errorf("unsupported format %q (only %s is defined)", o.Format, Format16x9)
	}
	return nil
}

// GetFallbackDir returns the fallback directory with default
func (o OutputConfig) GetFallbackDir() string {
	if o.FallbackDir == "" {
		return "outputs"
	}
	return o.FallbackDir
}

// ThemeConfig contains theme configuration
type ThemeConfig struct {
	Name     string `toml:"name"`
	BrandKit string `toml:"brand_kit"`
}

// Validate validates theme configuration
func (t ThemeConfig) Validate() error {
	if t.Name == "" {
		return errors.New("theme name cannot be empty")
	}

	if t.BrandKit != "" {
		if _, err := os.Stat(t.BrandKit); os.IsNotExist(err) {
			return fmt.Errorf("brand kit does not exist: %s", t.BrandKit)
		}
	}

	return nil
}

// TemplateConfig contains base-document configuration
type TemplateConfig struct {
	// Path is an optional base .pptx used for every build
	Path string `toml:"path"`

	// UploadsDir is scanned for custom templates
	UploadsDir string `toml:"uploads_dir"`
}

// Validate validates template configuration
func (t TemplateConfig) Validate() error {
	if t.Path != "" {
		ext := strings.ToLower(filepath.Ext(t.Path))
		if ext != ".pptx" && ext != ".ppt" {
			return fmt.Errorf("template must be a .pptx or .ppt file: %s", t.Path)
		}
	}
	return nil
}

// GeneratorConfig contains language-model configuration
type GeneratorConfig struct {
	Provider    string  `toml:"provider"`
	Model       string  `toml:"model"`
	BaseURL     string  `toml:"base_url"`
	APIKeyEnv   string  `toml:"api_key_env"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
	Timeout     int     `toml:"timeout"`
	MaxRetries  int     `toml:"max_retries"`
}

// Validate validates generator configuration
func (g GeneratorConfig) Validate() error {
	if g.Provider != "" && g.Provider != "anthropic" {
		return fmt.Errorf("unsupported provider: %s", g.Provider)
	}

	if g.MaxTokens < 0 {
		return errors.New("max tokens must be non-negative")
	}

	if g.Temperature < 0 || g.Temperature > 1 {
		return errors.New("temperature must be between 0 and 1")
	}

	if g.Timeout < 0 {
		return errors.New("timeout must be non-negative")
	}

	if g.MaxRetries < 0 {
		return errors.New("max retries must be non-negative")
	}

	if g.BaseURL != "" && !strings.HasPrefix(g.BaseURL, "http://") && !strings.HasPrefix(g.BaseURL, "https://") {
		return fmt.Errorf("base URL must start with http:// or https://: %s", g.BaseURL)
	}

	return nil
}

// GetAPIKeyEnv returns the environment variable holding the API key
func (g GeneratorConfig) GetAPIKeyEnv() string {
	if g.APIKeyEnv == "" {
		return "ANTHROPIC_API_KEY"
	}
	return g.APIKeyEnv
}

// GetModel returns the model name with default
func (g GeneratorConfig) GetModel() string {
	if g.Model == "" {
		return "claude-sonnet-4-20250514"
	}
	return g.Model
}

// GetMaxTokens returns the token limit with default
func (g GeneratorConfig) GetMaxTokens() int {
	if g.MaxTokens <= 0 {
		return 4000
	}
	return g.MaxTokens
}

// GetTimeout returns the request timeout as a duration
func (g GeneratorConfig) GetTimeout() time.Duration {
	if g.Timeout <= 0 {
		return 120 * time.Second
	}
	return time.Duration(g.Timeout) * time.Second
}

// ExportConfig controls side outputs produced after a build
type ExportConfig struct {
	Preview        bool   `toml:"preview"`
	Handout        bool   `toml:"handout"`
	PreviewQuality string `toml:"preview_quality"` // low, medium, high
}

// Validate validates export configuration
func (e ExportConfig) Validate() error {
	switch e.PreviewQuality {
	case "", "low", "medium", "high":
		return nil
	default:
		return fmt.Errorf("invalid preview quality: %s (must be low, medium, or high)", e.PreviewQuality)
	}
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	Environment     string   `toml:"environment"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// Validate validates server configuration
func (s ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	if s.Host != "" {
		if ip := net.ParseIP(s.Host); ip == nil {
			if _, err := net.LookupHost(s.Host); err != nil {
				return fmt.Errorf("invalid host: %w", err)
			}
		}
	}

	if s.ReadTimeout < 0 {
		return errors.New("read timeout must be non-negative")
	}

	if s.WriteTimeout < 0 {
		return errors.New("write timeout must be non-negative")
	}

	if s.ShutdownTimeout < 0 {
		return errors.New("shutdown timeout must be non-negative")
	}

	for _, origin := range s.CORSOrigins {
		if origin == "" {
			return errors.New("CORS origin cannot be empty")
		}
		if origin == "*" {
			continue
		}
		if len(origin) < 7 || (!strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://")) {
			return fmt.Errorf("invalid CORS origin format: %s (must start with http:// or https://)", origin)
		}
	}

	return nil
}

// GetReadTimeout returns the read timeout as a duration
func (s ServerConfig) GetReadTimeout() time.Duration {
	if s.ReadTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the write timeout as a duration.
// Builds that call the language model run inside the request, so the default is generous.
func (s ServerConfig) GetWriteTimeout() time.Duration {
	if s.WriteTimeout <= 0 {
		return 180 * time.Second
	}
	return time.Duration(s.WriteTimeout) * time.Second
}

// GetShutdownTimeout returns the shutdown timeout as a duration
func (s ServerConfig) GetShutdownTimeout() time.Duration {
	if s.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// GetCORSOrigins returns CORS origins with defaults if empty
func (s ServerConfig) GetCORSOrigins() []string {
	if len(s.CORSOrigins) == 0 {
		return []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:8080",
			"http://127.0.0.1:8080",
		}
	}
	return s.CORSOrigins
}

// IsDevelopment returns true if the server is running in development mode
func (s ServerConfig) IsDevelopment() bool {
	return s.Environment == "development" || s.Environment == ""
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level   string `toml:"level"`   // debug, info, warn, error
	Verbose bool   `toml:"verbose"` // Enable verbose logging
	File    string `toml:"file"`    // Log to file (optional)
}

// Validate validates logging configuration
func (l LoggingConfig) Validate() error {
	switch LogLevel(l.Level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	case "":
		// Empty is okay, will use default
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l.Level)
	}

	if l.File != "" {
		if !filepath.IsAbs(l.File) {
			return errors.New("log file path must be absolute")
		}

		dir := filepath.Dir(l.File)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("log file directory does not exist: %s", dir)
		}
	}

	return nil
}

// GetLevel returns the log level with default
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Level == "" {
		return LogLevelInfo
	}
	return LogLevel(l.Level)
}
