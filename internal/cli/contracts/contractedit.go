package contracts

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/utils"
)

type ContractEditCmd struct {
	ID          string  `arg:"" help:"Contract ID."`
	Title       *string `help:"New title."`
	Amount      *string `short:"a" help:"New total amount."`
	Employer    *string `short:"e" help:"New employer ID or name."`
	Start       *string `short:"s" help:"New start date."`
	End         *string `help:"New end date. An empty value clears it."`
	Description *string `help:"New description."`
}

func (c *ContractEditCmd) Run(ctx *cli.Context) error {
	release, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer release()

	contract, err := ctx.Store.GetContract(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find contract: %w", err)
	}

	if c.Title != nil {
		contract.Title = strings.TrimSpace(*c.Title)
	}
	if c.Amount != nil {
		if contract.TotalAmount, err = utils.ParseAmount(*c.Amount); err != nil {
			return err
		}
	}
	if c.Employer != nil {
		employer, err := ctx.ResolveEmployer(*c.Employer)
		if err != nil {
			return err
		}
		contract.EmployerID = employer.ID
	}
	if c.Start != nil {
		if contract.StartDate, err = ctx.ParseDate(*c.Start); err != nil {
			return err
		}
	}
	if c.End != nil {
		if strings.TrimSpace(*c.End) == "" {
			contract.EndDate = nil
		} else {
			end, err := ctx.ParseDate(*c.End)
			if err != nil {
				return err
			}
			contract.EndDate = &end
		}
	}
	if c.Description != nil {
		contract.Description = strings.TrimSpace(*c.Description)
	}

	if err := ctx.Store.UpdateContract(contract); err != nil {
		return fmt.Errorf("failed to update contract: %w", err)
	}

	fmt.Printf("Updated contract: %s (ID: %s)\n", contract.Title, contract.ID)
	return nil
}
