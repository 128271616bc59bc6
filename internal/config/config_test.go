package config

import (
	"errors"
	"os"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Remove(tmpFile.Name())
	})

	if _, err := tmpFile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	_ = tmpFile.Close()

	return tmpFile.Name()
}

func TestLoad(t *testing.T) {
	yamlContent := `consoleURL: "https://array.example.com/"
driver: chromedp
showBrowser: true
screenshotDir: "/tmp/shots"
credentials:
  username: "3paradm"
  password: "secret"
titles:
  console: "3PAR StoreServ"
  adminConsole: "3PAR Admin"
locators:
  username: "#user"
timeouts:
  availability: 20s
  pollInterval: 250ms
`

	cfg, err := Load(writeTempConfig(t, yamlContent))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ConsoleURL != "https://array.example.com/" {
		t.Errorf("Expected consoleURL 'https://array.example.com/', got '%s'", cfg.ConsoleURL)
	}

	if cfg.Driver != "chromedp" {
		t.Errorf("Expected driver 'chromedp', got '%s'", cfg.Driver)
	}

	if !cfg.ShowBrowser {
		t.Error("Expected showBrowser to be true")
	}

	if cfg.Credentials.Username != "3paradm" {
		t.Errorf("Expected username '3paradm', got '%s'", cfg.Credentials.Username)
	}

	if cfg.Titles.AdminConsole != "3PAR Admin" {
		t.Errorf("Expected admin title '3PAR Admin', got '%s'", cfg.Titles.AdminConsole)
	}

	if cfg.Timeouts.Availability != 20*time.Second {
		t.Errorf("Expected availability timeout 20s, got %v", cfg.Timeouts.Availability)
	}

	if cfg.Timeouts.PollInterval != 250*time.Millisecond {
		t.Errorf("Expected pollInterval 250ms, got %v", cfg.Timeouts.PollInterval)
	}

	if cfg.Locators.Username != "#user" {
		t.Errorf("Expected username locator '#user', got '%s'", cfg.Locators.Username)
	}

	// Keys absent from the file keep their defaults
	if cfg.Locators.Password != Defaults().Locators.Password {
		t.Errorf("Expected default password locator, got '%s'", cfg.Locators.Password)
	}

	if cfg.Timeouts.SettleDelay != time.Second {
		t.Errorf("Expected default settleDelay 1s, got %v", cfg.Timeouts.SettleDelay)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("does-not-exist.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "Unknown driver",
			content: "driver: selenium\n",
		},
		{
			name:    "Interval not shorter than timeout",
			content: "timeouts:\n  availability: 1s\n  pollInterval: 1s\n",
		},
		{
			name:    "Zero interval",
			content: "timeouts:\n  pollInterval: 0s\n",
		},
		{
			name:    "Negative tutorial wait",
			content: "timeouts:\n  tutorial: -1s\n",
		},
		{
			name:    "Empty title",
			content: "titles:\n  console: \"\"\n",
		},
		{
			name:    "Empty locator",
			content: "locators:\n  submit: \"\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeTempConfig(t, tt.content))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestDefaults_Valid(t *testing.T) {
	if err := Validate(Defaults()); err != nil {
		t.Errorf("Defaults() should validate, got %v", err)
	}
}
