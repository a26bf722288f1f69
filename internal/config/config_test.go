package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: Config{
				Port:           "8081",
				APIBaseURL:     "http://localhost:8000/api",
				RequestTimeout: 10 * time.Second,
				SessionDBPath:  "./test.db",
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:           "abc",
				APIBaseURL:     "http://localhost:8000/api",
				RequestTimeout: 10 * time.Second,
				SessionDBPath:  "./test.db",
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:           "70000",
				APIBaseURL:     "http://localhost:8000/api",
				RequestTimeout: 10 * time.Second,
				SessionDBPath:  "./test.db",
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "empty API base URL",
			config: Config{
				Port:           "8081",
				APIBaseURL:     "",
				RequestTimeout: 10 * time.Second,
				SessionDBPath:  "./test.db",
			},
			wantErr:     true,
			errorString: "API base URL cannot be empty",
		},
		{
			name: "bad API base URL scheme",
			config: Config{
				Port:           "8081",
				APIBaseURL:     "ftp://backend/api",
				RequestTimeout: 10 * time.Second,
				SessionDBPath:  "./test.db",
			},
			wantErr:     true,
			errorString: "invalid API base URL scheme 'ftp'",
		},
		{
			name: "non-positive timeout",
			config: Config{
				Port:           "8081",
				APIBaseURL:     "http://localhost:8000/api",
				RequestTimeout: 0,
				SessionDBPath:  "./test.db",
			},
			wantErr:     true,
			errorString: "request timeout must be positive",
		},
		{
			name: "empty session db path",
			config: Config{
				Port:           "8081",
				APIBaseURL:     "http://localhost:8000/api",
				RequestTimeout: 10 * time.Second,
				SessionDBPath:  "",
			},
			wantErr:     true,
			errorString: "session database path cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Validate() expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "API_BASE_URL", "API_REQUEST_TIMEOUT", "SESSION_DB_PATH"} {
		os.Unsetenv(key)
	}

	cfg := Load()
	if cfg.Port != "8081" {
		t.Errorf("Port = %q, want 8081", cfg.Port)
	}
	if cfg.APIBaseURL != "http://localhost:8000/api" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.SessionDBPath != "./data/sessions.db" {
		t.Errorf("SessionDBPath = %q", cfg.SessionDBPath)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_BASE_URL", "https://api.example.com/api")
	t.Setenv("API_REQUEST_TIMEOUT", "5s")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.APIBaseURL != "https://api.example.com/api" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
}
