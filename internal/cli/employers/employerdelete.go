package employers

import (
	"fmt"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/logger"
)

type EmployerDeleteCmd struct {
	Employer string `arg:"" help:"Employer ID or name to delete."`
}

func (c *EmployerDeleteCmd) Run(ctx *cli.Context) error {
	release, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer release()

	employer, err := ctx.ResolveEmployer(c.Employer)
	if err != nil {
		return fmt.Errorf("failed to find employer: %w", err)
	}

	contracts, err := ctx.Store.GetAllContracts()
	if err != nil {
		return fmt.Errorf("failed to get contracts: %w", err)
	}
	removed := 0
	for _, ct := range contracts {
		if ct.EmployerID == employer.ID {
			removed++
		}
	}

	if err := ctx.Store.DeleteEmployer(employer.ID); err != nil {
		return fmt.Errorf("failed to delete employer: %w", err)
	}
	logger.Info("employer deleted", "id", employer.ID, "contracts", removed)

	fmt.Printf("Deleted employer: %s (ID: %s)\n", employer.Name, employer.ID)
	if removed > 0 {
		fmt.Printf("Removed %d contract(s) of this employer.\n", removed)
	}
	return nil
}
