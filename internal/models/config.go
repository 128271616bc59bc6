package models

import "time"

// Config represents the harness configuration
type Config struct {
	ConsoleURL    string         `yaml:"consoleURL"`
	Driver        string         `yaml:"driver"`      // "rod" or "chromedp"
	ShowBrowser   bool           `yaml:"showBrowser"` // headless unless set, for debugging
	ScreenshotDir string         `yaml:"screenshotDir"`
	LogLevel      string         `yaml:"logLevel"`
	Credentials   Credentials    `yaml:"credentials"`
	Titles        TitleConfig    `yaml:"titles"`
	Locators      LocatorConfig  `yaml:"locators"`
	Timeouts      TimeoutsConfig `yaml:"timeouts"`
}

// TitleConfig holds the exact title texts signalling a rendered console
type TitleConfig struct {
	Console      string `yaml:"console"`
	AdminConsole string `yaml:"adminConsole"`
}

// LocatorConfig maps each element used by the login flow to a CSS selector
type LocatorConfig struct {
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	Submit        string `yaml:"submit"`
	AdminCheckbox string `yaml:"adminCheckbox"`
	ConsoleTitle  string `yaml:"consoleTitle"`
	Tutorial      string `yaml:"tutorial"`
	TutorialClose string `yaml:"tutorialClose"`
}

// TimeoutsConfig represents every bounded wait of the login flow
type TimeoutsConfig struct {
	Element          time.Duration `yaml:"element"`          // ex: "10s"
	OptionalElement  time.Duration `yaml:"optionalElement"`  // admin checkbox probe
	Availability     time.Duration `yaml:"availability"`     // console title poll
	PollInterval     time.Duration `yaml:"pollInterval"`     // ex: "500ms"
	SettleDelay      time.Duration `yaml:"settleDelay"`      // before the first title poll
	AdminSettleDelay time.Duration `yaml:"adminSettleDelay"` // before switching windows
	Tutorial         time.Duration `yaml:"tutorial"`
}
