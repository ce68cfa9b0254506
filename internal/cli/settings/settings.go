package settings

import (
	"fmt"

	"github.com/julianstephens/mozd/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	DefaultWage         *string `help:"Default daily wage for employers without their own. An empty value clears it."`
	OnboardingCompleted *bool   `help:"Mark the first-run welcome as done or pending."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		num := ctx.Number()
		wage := "not set"
		if settings.HasDefaultWage() {
			wage = num.Currency(*settings.DefaultWage)
		}

		cfg := ctx.Settings()
		configFile := cfg.Path()
		if configFile == "" {
			configFile = "(defaults)"
		}

		fmt.Println("Current Settings:")
		fmt.Printf("  Default Wage:          %s\n", wage)
		fmt.Printf("  Onboarding Completed:  %v\n", settings.OnboardingCompleted)
		fmt.Println("\nConfiguration:")
		fmt.Printf("  Config File:           %s\n", configFile)
		fmt.Printf("  Data File:             %s\n", ctx.Store.GetConfigPath())
		fmt.Printf("  Calendar:              %s\n", cfg.Calendar)
		fmt.Printf("  Persian Digits:        %v\n", cfg.PersianDigits)
		fmt.Printf("  Currency:              %s\n", cfg.Currency)
		fmt.Printf("  Report Directory:      %s\n", cfg.ReportDir)
		fmt.Printf("  Max Backups:           %d\n", cfg.MaxBackups)
		return nil
	}

	updated := false
	if c.DefaultWage != nil {
		wage, err := cli.ParseWage(*c.DefaultWage)
		if err != nil {
			return err
		}
		settings.DefaultWage = wage
		updated = true
	}
	if c.OnboardingCompleted != nil {
		settings.OnboardingCompleted = *c.OnboardingCompleted
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	release, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer release()

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
