package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/config"
	"github.com/julianstephens/mozd/internal/constants"
)

type InitCmd struct {
	Force       bool   `help:"Force reset by deleting the existing data file before initialization."`
	DefaultWage string `help:"Default daily wage for employers without their own."`
	WriteConfig bool   `help:"Also write a config file with the default settings if none exists."`
}

func (c *InitCmd) Validate() error {
	_, err := cli.ParseWage(c.DefaultWage)
	return err
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	dataPath := ctx.Store.GetConfigPath()

	// If force flag is provided, delete existing data file
	if c.Force {
		if _, err := os.Stat(dataPath); err == nil {
			// Close first to release the file
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing data file: %w", err)
			}
			if err := os.Remove(dataPath); err != nil {
				return fmt.Errorf("failed to delete existing data file: %w", err)
			}
			fmt.Printf("Deleted existing data file at: %s\n", dataPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing data file: %w", err)
		}
	}

	release, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer release()

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized %s storage at: %s\n", constants.AppName, dataPath)

	if c.DefaultWage != "" {
		wage, err := cli.ParseWage(c.DefaultWage)
		if err != nil {
			return err
		}
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		settings.DefaultWage = wage
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Printf("Default wage set to %s\n", ctx.Number().Currency(*wage))
	}

	if c.WriteConfig {
		path := ctx.Settings().Path()
		if path == "" {
			path = constants.DefaultConfigFile
		}
		written, err := config.WriteDefault(path)
		if err != nil {
			return err
		}
		if written {
			fmt.Printf("Wrote default config to: %s\n", config.ExpandPath(path))
		}
	}

	return nil
}
