package domain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLoadConfigDefaults verifies that a missing file yields the default
// configuration instead of an error.
func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Transport.Type != "http" {
		t.Errorf("Transport.Type = %s, want http", config.Transport.Type)
	}
	if config.Transport.HTTP.Port != 3000 {
		t.Errorf("Transport.HTTP.Port = %d, want 3000", config.Transport.HTTP.Port)
	}
	if config.Deploy.DomainSuffix != ".vercel.app" {
		t.Errorf("Deploy.DomainSuffix = %s, want .vercel.app", config.Deploy.DomainSuffix)
	}
	if config.Deploy.DelayMS != 1000 {
		t.Errorf("Deploy.DelayMS = %d, want 1000", config.Deploy.DelayMS)
	}
	if config.Templates.Provider != "memory" {
		t.Errorf("Templates.Provider = %s, want memory", config.Templates.Provider)
	}
}

// TestLoadConfigFromFile verifies YAML loading with partial overrides.
func TestLoadConfigFromFile(t *testing.T) {
	content := `
transport:
  type: stdio

server:
  name: test-server

deploy:
  domain_suffix: .example.dev
  delay_ms: 50

templates:
  provider: sqlite
  path: templates.db
`
	path := writeConfigFile(t, content)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Transport.Type != "stdio" {
		t.Errorf("Transport.Type = %s, want stdio", config.Transport.Type)
	}
	if config.Server.Name != "test-server" {
		t.Errorf("Server.Name = %s, want test-server", config.Server.Name)
	}
	if config.Server.Version != "1.0.0" {
		t.Errorf("Server.Version = %s, want default 1.0.0", config.Server.Version)
	}
	if config.Deploy.DomainSuffix != ".example.dev" {
		t.Errorf("Deploy.DomainSuffix = %s, want .example.dev", config.Deploy.DomainSuffix)
	}
	if config.Deploy.DelayMS != 50 {
		t.Errorf("Deploy.DelayMS = %d, want 50", config.Deploy.DelayMS)
	}
	if config.Templates.Provider != "sqlite" {
		t.Errorf("Templates.Provider = %s, want sqlite", config.Templates.Provider)
	}
}

// TestLoadConfigValidation verifies invalid configurations are rejected
// with descriptive messages.
func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "invalid transport type",
			content: `
transport:
  type: tcp
`,
			wantErr: "invalid transport type",
		},
		{
			name: "invalid port",
			content: `
transport:
  type: http
  http:
    host: 0.0.0.0
    port: 70000
`,
			wantErr: "invalid HTTP port",
		},
		{
			name: "sqlite without path",
			content: `
templates:
  provider: sqlite
`,
			wantErr: "templates path is required",
		},
		{
			name: "unknown template provider",
			content: `
templates:
  provider: postgres
`,
			wantErr: "invalid templates provider",
		},
		{
			name: "domain suffix without dot",
			content: `
deploy:
  domain_suffix: vercel.app
`,
			wantErr: "invalid domain suffix",
		},
		{
			name: "negative deploy delay",
			content: `
deploy:
  domain_suffix: .vercel.app
  delay_ms: -5
`,
			wantErr: "invalid deploy delay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)

			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

// TestDeployTokenEnvFallback verifies that an empty deploy token is
// resolved from VERCEL_TOKEN at load time.
func TestDeployTokenEnvFallback(t *testing.T) {
	t.Setenv("VERCEL_TOKEN", "env-token")

	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if config.Deploy.Token != "env-token" {
		t.Errorf("Deploy.Token = %s, want env-token", config.Deploy.Token)
	}

	// An explicit token wins over the environment.
	path := writeConfigFile(t, `
deploy:
  domain_suffix: .vercel.app
  token: file-token
`)
	config, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if config.Deploy.Token != "file-token" {
		t.Errorf("Deploy.Token = %s, want file-token", config.Deploy.Token)
	}
}

// writeConfigFile writes YAML content to a temp file and returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}
