package domain

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the server configuration.
// This is the root configuration structure loaded from YAML files.
type Config struct {
	Transport TransportConfig `yaml:"transport"`
	Server    ServerConfig    `yaml:"server"`
	Deploy    DeployConfig    `yaml:"deploy"`
	Templates TemplatesConfig `yaml:"templates"`
}

// TransportConfig defines transport settings.
// Specifies whether to use stdio or HTTP transport.
type TransportConfig struct {
	Type string     `yaml:"type"` // "stdio" or "http"
	HTTP HTTPConfig `yaml:"http,omitempty"`
}

// HTTPConfig defines HTTP transport settings.
// Only used when transport type is "http".
type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// ServerConfig identifies the server in initialize responses and
// discovery metadata.
type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// DeployConfig defines deployment stub settings.
// Token is accepted for a future real hosting integration; the stub never
// uses it. An empty token falls back to the VERCEL_TOKEN environment
// variable so the credential is resolved once, at load time.
type DeployConfig struct {
	DomainSuffix string `yaml:"domain_suffix"`
	DelayMS      int    `yaml:"delay_ms"`
	Token        string `yaml:"token,omitempty"`
}

// TemplatesConfig selects the template catalog provider.
type TemplatesConfig struct {
	Provider string `yaml:"provider"` // "memory" or "sqlite"
	Path     string `yaml:"path,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
// The original server ran entirely on defaults plus environment variables.
func DefaultConfig() *Config {
	return &Config{
		Transport: TransportConfig{
			Type: "http",
			HTTP: HTTPConfig{Host: "0.0.0.0", Port: 3000},
		},
		Server: ServerConfig{
			Name:    "website-mcp-server",
			Version: "1.0.0",
		},
		Deploy: DeployConfig{
			DomainSuffix: ".vercel.app",
			DelayMS:      1000,
		},
		Templates: TemplatesConfig{
			Provider: "memory",
		},
	}
}

// LoadConfig reads and validates configuration from a YAML file.
// A missing file is not an error: defaults are returned instead.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			config.applyEnv()
			return config, nil
		}
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("invalid YAML syntax in configuration file: %w", err)
	}

	config.applyDefaults()
	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// applyDefaults fills fields the file left empty.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Transport.Type == "" {
		c.Transport.Type = defaults.Transport.Type
	}
	if c.Transport.HTTP.Host == "" {
		c.Transport.HTTP.Host = defaults.Transport.HTTP.Host
	}
	if c.Transport.HTTP.Port == 0 {
		c.Transport.HTTP.Port = defaults.Transport.HTTP.Port
	}
	if c.Server.Name == "" {
		c.Server.Name = defaults.Server.Name
	}
	if c.Server.Version == "" {
		c.Server.Version = defaults.Server.Version
	}
	if c.Deploy.DomainSuffix == "" {
		c.Deploy.DomainSuffix = defaults.Deploy.DomainSuffix
	}
	if c.Deploy.DelayMS == 0 {
		c.Deploy.DelayMS = defaults.Deploy.DelayMS
	}
	if c.Templates.Provider == "" {
		c.Templates.Provider = defaults.Templates.Provider
	}
}

// applyEnv resolves environment-backed settings once, at load time,
// instead of ad hoc reads at call sites.
func (c *Config) applyEnv() {
	if c.Deploy.Token == "" {
		c.Deploy.Token = os.Getenv("VERCEL_TOKEN")
	}
}

// Validate checks the configuration for completeness and correctness.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errors []string

	if err := c.validateTransport(); err != nil {
		errors = append(errors, err.Error())
	}

	if err := c.validateDeploy(); err != nil {
		errors = append(errors, err.Error())
	}

	if err := c.validateTemplates(); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// validateTransport validates the transport configuration.
func (c *Config) validateTransport() error {
	var errors []string

	if c.Transport.Type != "stdio" && c.Transport.Type != "http" {
		errors = append(errors, fmt.Sprintf("invalid transport type '%s': must be 'stdio' or 'http'", c.Transport.Type))
	}

	if c.Transport.Type == "http" {
		if c.Transport.HTTP.Host == "" {
			errors = append(errors, "HTTP host is required when transport type is 'http'")
		}
		if c.Transport.HTTP.Port <= 0 || c.Transport.HTTP.Port > 65535 {
			errors = append(errors, fmt.Sprintf("invalid HTTP port %d: must be between 1 and 65535", c.Transport.HTTP.Port))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}

// validateDeploy validates the deployment stub configuration.
func (c *Config) validateDeploy() error {
	var errors []string

	if c.Deploy.DelayMS < 0 {
		errors = append(errors, fmt.Sprintf("invalid deploy delay %dms: must not be negative", c.Deploy.DelayMS))
	}
	if !strings.HasPrefix(c.Deploy.DomainSuffix, ".") {
		errors = append(errors, fmt.Sprintf("invalid domain suffix '%s': must start with '.'", c.Deploy.DomainSuffix))
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}

// validateTemplates validates the template provider configuration.
func (c *Config) validateTemplates() error {
	var errors []string

	switch c.Templates.Provider {
	case "memory":
	case "sqlite":
		if c.Templates.Path == "" {
			errors = append(errors, "templates path is required when provider is 'sqlite'")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid templates provider '%s': must be 'memory' or 'sqlite'", c.Templates.Provider))
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}
