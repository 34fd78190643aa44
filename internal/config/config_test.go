package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr error
	}{
		{
			name: "valid config",
			envVars: map[string]string{
				"CHATGPT_API_KEY":  "abc123",
				"CHATGPT_ENDPOINT": "https://example.test",
			},
			wantErr: nil,
		},
		{
			name: "missing api key",
			envVars: map[string]string{
				"CHATGPT_ENDPOINT": "https://example.test",
			},
			wantErr: ErrMissingAPIKey,
		},
		{
			name: "missing endpoint",
			envVars: map[string]string{
				"CHATGPT_API_KEY": "abc123",
			},
			wantErr: ErrMissingEndpoint,
		},
		{
			name: "post auth method",
			envVars: map[string]string{
				"CHATGPT_API_KEY":     "abc123",
				"CHATGPT_ENDPOINT":    "https://example.test",
				"CHATGPT_AUTH_METHOD": "post",
			},
			wantErr: nil,
		},
		{
			name: "invalid auth method",
			envVars: map[string]string{
				"CHATGPT_API_KEY":     "abc123",
				"CHATGPT_ENDPOINT":    "https://example.test",
				"CHATGPT_AUTH_METHOD": "DELETE",
			},
			wantErr: ErrInvalidAuthMethod,
		},
		{
			name: "negative timeout",
			envVars: map[string]string{
				"CHATGPT_API_KEY":     "abc123",
				"CHATGPT_ENDPOINT":    "https://example.test",
				"CHATGPT_TIMEOUT_SEC": "-1",
			},
			wantErr: ErrInvalidTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars()

			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}
			defer clearEnvVars()

			err := Load().Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	cfg := Load()

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %v, want %v", cfg.Log.Level, "info")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %v, want json", cfg.Log.Format)
	}
	if cfg.ChatGPT.Timeout != 60*time.Second {
		t.Errorf("ChatGPT.Timeout = %v, want 60s", cfg.ChatGPT.Timeout)
	}
	if cfg.ChatGPT.TokenURL != "https://api.cognitive.microsoft.com/sts/v1.0/issueToken" {
		t.Errorf("ChatGPT.TokenURL = %v", cfg.ChatGPT.TokenURL)
	}
	if cfg.ChatGPT.Engine != "davinci" {
		t.Errorf("ChatGPT.Engine = %v, want davinci", cfg.ChatGPT.Engine)
	}
	if cfg.ChatGPT.AuthMethod != "GET" {
		t.Errorf("ChatGPT.AuthMethod = %v, want GET", cfg.ChatGPT.AuthMethod)
	}
	if cfg.ChatGPT.CheckStatus {
		t.Error("ChatGPT.CheckStatus = true, want false")
	}
	if cfg.Metrics.PushgatewayURL != "" {
		t.Errorf("Metrics.PushgatewayURL = %v, want empty", cfg.Metrics.PushgatewayURL)
	}
	if cfg.Metrics.Job != "chatgpt_plugin" {
		t.Errorf("Metrics.Job = %v", cfg.Metrics.Job)
	}
}

func TestGetEnvIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		envValue   string
		defaultVal int
		want       int
	}{
		{"valid int", "42", 10, 42},
		{"empty string", "", 10, 10},
		{"invalid int", "abc", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("TEST_INT", tt.envValue)
			defer os.Unsetenv("TEST_INT")

			got := getEnvIntOrDefault("TEST_INT", tt.defaultVal)
			if got != tt.want {
				t.Errorf("getEnvIntOrDefault() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvBoolOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		envValue   string
		defaultVal bool
		want       bool
	}{
		{"true", "true", false, true},
		{"one", "1", false, true},
		{"false", "false", true, false},
		{"empty string", "", true, true},
		{"invalid", "yes please", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("TEST_BOOL", tt.envValue)
			defer os.Unsetenv("TEST_BOOL")

			got := getEnvBoolOrDefault("TEST_BOOL", tt.defaultVal)
			if got != tt.want {
				t.Errorf("getEnvBoolOrDefault() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	path := filepath.Join(t.TempDir(), ".env")
	content := "CHATGPT_API_KEY=from_file\nCHATGPT_ENDPOINT=https://file.test\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	os.Setenv("CHATGPT_ENDPOINT", "https://env.test")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	cfg := Load()
	if cfg.ChatGPT.APIKey != "from_file" {
		t.Errorf("APIKey = %v, want from_file", cfg.ChatGPT.APIKey)
	}
	// уже выставленная переменная важнее файла
	if cfg.ChatGPT.Endpoint != "https://env.test" {
		t.Errorf("Endpoint = %v, want https://env.test", cfg.ChatGPT.Endpoint)
	}
}

func TestLoadDotEnv_Missing(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("LoadDotEnv() error = %v, want nil", err)
	}
	if err := LoadDotEnv(""); err != nil {
		t.Errorf("LoadDotEnv(\"\") error = %v, want nil", err)
	}
}

func clearEnvVars() {
	envVars := []string{
		"CHATGPT_API_KEY",
		"CHATGPT_ENDPOINT",
		"CHATGPT_TOKEN_URL",
		"CHATGPT_ENGINE",
		"CHATGPT_AUTH_METHOD",
		"CHATGPT_TIMEOUT_SEC",
		"CHATGPT_CHECK_STATUS",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"PUSHGATEWAY_URL",
		"PUSHGATEWAY_JOB",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}
