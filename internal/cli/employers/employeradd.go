package employers

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/logger"
	"github.com/julianstephens/mozd/internal/models"
)

type EmployerAddCmd struct {
	Name  string `arg:"" help:"Employer name."`
	Color string `short:"c" help:"Display colour (#rrggbb). Defaults to the next palette colour."`
	Wage  string `short:"w" help:"Daily wage for an 8-hour day."`
}

func (c *EmployerAddCmd) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("employer name cannot be empty")
	}
	_, err := cli.ParseWage(c.Wage)
	return err
}

func (c *EmployerAddCmd) Run(ctx *cli.Context) error {
	release, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer release()

	wage, err := cli.ParseWage(c.Wage)
	if err != nil {
		return err
	}

	existing, err := ctx.Store.GetAllEmployers()
	if err != nil {
		return fmt.Errorf("failed to get employers: %w", err)
	}

	color := c.Color
	if color == "" {
		color = models.NextColor(len(existing))
	}

	employer := models.Employer{
		ID:    models.NewID(),
		Name:  strings.TrimSpace(c.Name),
		Color: color,
		Wage:  wage,
	}
	if err := ctx.Store.AddEmployer(employer); err != nil {
		return fmt.Errorf("failed to add employer: %w", err)
	}
	logger.Info("employer added", "id", employer.ID)

	fmt.Printf("Added employer: %s (ID: %s)\n", employer.Name, employer.ID)
	return nil
}
