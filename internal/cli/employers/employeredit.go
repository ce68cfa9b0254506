package employers

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mozd/internal/cli"
)

type EmployerEditCmd struct {
	Employer string  `arg:"" help:"Employer ID or name."`
	Name     *string `help:"New employer name."`
	Color    *string `short:"c" help:"New display colour (#rrggbb)."`
	Wage     *string `short:"w" help:"New daily wage. An empty value clears it."`
}

func (c *EmployerEditCmd) Run(ctx *cli.Context) error {
	release, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer release()

	employer, err := ctx.ResolveEmployer(c.Employer)
	if err != nil {
		return fmt.Errorf("failed to find employer: %w", err)
	}

	if c.Name != nil {
		employer.Name = strings.TrimSpace(*c.Name)
	}
	if c.Color != nil {
		employer.Color = *c.Color
	}
	if c.Wage != nil {
		wage, err := cli.ParseWage(*c.Wage)
		if err != nil {
			return err
		}
		employer.Wage = wage
	}

	if err := ctx.Store.UpdateEmployer(employer); err != nil {
		return fmt.Errorf("failed to update employer: %w", err)
	}

	fmt.Printf("Updated employer: %s (ID: %s)\n", employer.Name, employer.ID)
	return nil
}
