package main

import (
	"fmt"
	"time"

	"console-login-harness/internal/availability"
	"console-login-harness/internal/config"
	"console-login-harness/internal/logging"
	"console-login-harness/internal/login"
	"console-login-harness/internal/models"
	"console-login-harness/internal/ui"
	"console-login-harness/internal/waiter"

	"github.com/spf13/cobra"
)

var (
	flagConfig string

	flagMode     string
	flagUsername string
	flagPassword string

	flagTitle   string
	flagTimeout time.Duration
	flagEvery   time.Duration

	cfg *models.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "config.yaml", "path to the YAML configuration")

	loginCmd.Flags().StringVarP(&flagMode, "mode", "m", "standard", "session mode: standard or admin")
	loginCmd.Flags().StringVarP(&flagUsername, "username", "u", "", "console user (overrides the configuration)")
	loginCmd.Flags().StringVarP(&flagPassword, "password", "p", "", "console password (overrides the configuration)")

	availableCmd.Flags().StringVarP(&flagTitle, "title", "t", "", "expected console title (defaults to titles.console)")
	availableCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "how long to poll (defaults to timeouts.availability)")
	availableCmd.Flags().DurationVar(&flagEvery, "every", 0, "repeat the check at this interval instead of exiting")

	rootCmd.AddCommand(loginCmd, availableCmd)
}

var rootCmd = &cobra.Command{
	Use:           "console-harness",
	Short:         "Log into the storage management console and check that it is ready",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("reading configuration file: %w", err)
		}
		if err := logging.SetLevel(loaded.LogLevel); err != nil {
			return fmt.Errorf("invalid logLevel: %w", err)
		}
		cfg = loaded

		// Profiles of crashed runs are never removed by Close
		ui.CleanupProfiles()
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Run the login sequence and report the outcome",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := models.ParseSessionMode(flagMode)
		if err != nil {
			return err
		}

		creds := cfg.Credentials
		if flagUsername != "" {
			creds.Username = flagUsername
		}
		if flagPassword != "" {
			creds.Password = flagPassword
		}

		driver, err := ui.Open(cfg.Driver, cfg.ConsoleURL, !cfg.ShowBrowser)
		if err != nil {
			return err
		}
		defer func() { _ = driver.Close() }()

		sequencer := login.NewSequencer(cfg, waiter.New(nil), login.RecorderSinks(cfg.ScreenshotDir))
		outcome, err := sequencer.Run(ui.NewSession(driver), creds, mode)
		if err != nil {
			return fmt.Errorf("login aborted: %w", err)
		}
		if !outcome.Success {
			return fmt.Errorf("login failed at step %s, see screenshot %s (trace %s)",
				outcome.FailedStep, outcome.ScreenshotTag, outcome.TraceID)
		}
		return nil
	},
}

var availableCmd = &cobra.Command{
	Use:   "available",
	Short: "Check that the console title is shown",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		title := flagTitle
		if title == "" {
			title = cfg.Titles.Console
		}

		if flagEvery <= 0 {
			return checkAvailable(title)
		}

		ui.StartCleanup()
		logging.Log.Infof("Checking console availability every %s", flagEvery)
		for {
			if err := checkAvailable(title); err != nil {
				logging.Log.WithError(err).Warn("Console check failed")
			}
			time.Sleep(flagEvery)
		}
	},
}

// checkAvailable opens a fresh browser, polls for title and closes the browser again
func checkAvailable(title string) error {
	driver, err := ui.Open(cfg.Driver, cfg.ConsoleURL, !cfg.ShowBrowser)
	if err != nil {
		return err
	}
	defer func() { _ = driver.Close() }()

	checker := availability.NewChecker(driver, waiter.New(nil), cfg.Locators.ConsoleTitle, cfg.Timeouts)
	verdict, err := checker.Check(title, flagTimeout)
	if err != nil {
		return err
	}
	if !verdict.Available {
		return fmt.Errorf("console %q not available after %.1fs", title, verdict.ElapsedPollSeconds)
	}

	logging.Log.Infof("Console %q available after %.1fs", title, verdict.ElapsedPollSeconds)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Log.Fatalf("%v", err)
	}
}
