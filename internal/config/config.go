package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"console-login-harness/internal/models"

	"gopkg.in/yaml.v2"
)

// ErrInvalid is returned by Validate for unusable configurations
var ErrInvalid = errors.New("invalid configuration")

// Load reads the configuration from the specified YAML file, fills unset values with Defaults and validates it
func Load(filepath string) (*models.Config, error) {
	configFile, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	config := Defaults()
	if err := yaml.Unmarshal(configFile, config); err != nil {
		return nil, err
	}

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Defaults returns the configuration used when a key is absent from the YAML file
func Defaults() *models.Config {
	return &models.Config{
		Driver:        "rod",
		ScreenshotDir: "screenshots",
		LogLevel:      "info",
		Titles: models.TitleConfig{
			Console:      "3PAR StoreServ",
			AdminConsole: "3PAR StoreServ Administrator",
		},
		Locators: models.LocatorConfig{
			Username:      "input[name='username']",
			Password:      "input[name='password']",
			Submit:        "button[type='submit']",
			AdminCheckbox: "input[name='adminConsole']",
			ConsoleTitle:  ".page-title",
			Tutorial:      ".tutorial-overlay",
			TutorialClose: ".tutorial-overlay .close",
		},
		Timeouts: models.TimeoutsConfig{
			Element:          10 * time.Second,
			OptionalElement:  2 * time.Second,
			Availability:     10 * time.Second,
			PollInterval:     500 * time.Millisecond,
			SettleDelay:      1 * time.Second,
			AdminSettleDelay: 3 * time.Second,
			Tutorial:         3 * time.Second,
		},
	}
}

// Validate checks that every timeout is usable and that the titles and locators the login flow relies on are set
func Validate(cfg *models.Config) error {
	switch cfg.Driver {
	case "rod", "chromedp":
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalid, cfg.Driver)
	}

	t := cfg.Timeouts
	if t.PollInterval <= 0 {
		return fmt.Errorf("%w: pollInterval must be positive", ErrInvalid)
	}
	if t.PollInterval >= t.Availability {
		return fmt.Errorf("%w: pollInterval %s must be shorter than availability timeout %s", ErrInvalid, t.PollInterval, t.Availability)
	}
	for name, d := range map[string]time.Duration{
		"element":          t.Element,
		"optionalElement":  t.OptionalElement,
		"settleDelay":      t.SettleDelay,
		"adminSettleDelay": t.AdminSettleDelay,
		"tutorial":         t.Tutorial,
	} {
		if d < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalid, name)
		}
	}

	if cfg.Titles.Console == "" || cfg.Titles.AdminConsole == "" {
		return fmt.Errorf("%w: console and adminConsole titles are required", ErrInvalid)
	}

	l := cfg.Locators
	for name, sel := range map[string]string{
		"username":      l.Username,
		"password":      l.Password,
		"submit":        l.Submit,
		"adminCheckbox": l.AdminCheckbox,
		"consoleTitle":  l.ConsoleTitle,
		"tutorial":      l.Tutorial,
		"tutorialClose": l.TutorialClose,
	} {
		if sel == "" {
			return fmt.Errorf("%w: locator %s is empty", ErrInvalid, name)
		}
	}

	return nil
}
