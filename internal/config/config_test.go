package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func setRequiredSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "auth-secret")
	t.Setenv("JWT_DOWNLOAD_SECRET", "download-secret")
	t.Setenv("ADMIN_REGISTRATION_PASSWORD", "let-me-in")
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	setRequiredSecrets(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "research_portal" {
		t.Errorf("Database.Name = %s", cfg.Database.Name)
	}
	if cfg.JWT.AccessTokenExpiration != "1h" {
		t.Errorf("JWT.AccessTokenExpiration = %s", cfg.JWT.AccessTokenExpiration)
	}
	if cfg.IsProduction() {
		t.Error("default mode should not be production")
	}
}

func TestLoadConfigReadsFile(t *testing.T) {
	setRequiredSecrets(t)
	path := writeConfigFile(t, `
server:
  port: "9090"
  mode: production
database:
  name: portal_test
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Name != "portal_test" {
		t.Errorf("Database.Name = %s, want portal_test", cfg.Database.Name)
	}
	if !cfg.IsProduction() {
		t.Error("mode production should report IsProduction")
	}
	// Untouched keys keep their defaults
	if cfg.Database.URI != "mongodb://localhost:27017" {
		t.Errorf("Database.URI = %s", cfg.Database.URI)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("SMTP_PORT", "2525")
	path := writeConfigFile(t, `
server:
  port: "9090"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "7070" {
		t.Errorf("Server.Port = %s, want env value 7070", cfg.Server.Port)
	}
	if cfg.SMTP.Port != 2525 {
		t.Errorf("SMTP.Port = %d, want 2525", cfg.SMTP.Port)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name: "missing JWT secret",
			env: map[string]string{
				"JWT_DOWNLOAD_SECRET":         "download-secret",
				"ADMIN_REGISTRATION_PASSWORD": "let-me-in",
			},
			wantErr: "JWT secret is required",
		},
		{
			name: "missing download secret",
			env: map[string]string{
				"JWT_SECRET":                  "auth-secret",
				"ADMIN_REGISTRATION_PASSWORD": "let-me-in",
			},
			wantErr: "JWT download secret is required",
		},
		{
			name: "shared secrets",
			env: map[string]string{
				"JWT_SECRET":                  "same-secret",
				"JWT_DOWNLOAD_SECRET":         "same-secret",
				"ADMIN_REGISTRATION_PASSWORD": "let-me-in",
			},
			wantErr: "secrets must differ",
		},
		{
			name: "missing admin password",
			env: map[string]string{
				"JWT_SECRET":          "auth-secret",
				"JWT_DOWNLOAD_SECRET": "download-secret",
			},
			wantErr: "admin registration password is required",
		},
		{
			name: "bad token expiration",
			env: map[string]string{
				"JWT_SECRET":                  "auth-secret",
				"JWT_DOWNLOAD_SECRET":         "download-secret",
				"ADMIN_REGISTRATION_PASSWORD": "let-me-in",
				"JWT_ACCESS_TOKEN_EXPIRATION": "one hour",
			},
			wantErr: "access token expiration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}
