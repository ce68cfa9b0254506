package contracts

import (
	"fmt"

	"github.com/julianstephens/mozd/internal/cli"
)

type ContractDeleteCmd struct {
	ID string `arg:"" help:"Contract ID to delete."`
}

func (c *ContractDeleteCmd) Run(ctx *cli.Context) error {
	release, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer release()

	contract, err := ctx.Store.GetContract(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find contract with ID %s: %w", c.ID, err)
	}

	if err := ctx.Store.DeleteContract(c.ID); err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}

	fmt.Printf("Deleted contract: %s (ID: %s)\n", contract.Title, c.ID)
	return nil
}

type ContractToggleCmd struct {
	ID string `arg:"" help:"Contract ID."`
}

func (c *ContractToggleCmd) Run(ctx *cli.Context) error {
	release, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer release()

	contract, err := ctx.Store.GetContract(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find contract: %w", err)
	}

	contract.ToggleStatus()
	if err := ctx.Store.UpdateContract(contract); err != nil {
		return fmt.Errorf("failed to update contract: %w", err)
	}

	fmt.Printf("Contract %s is now %s\n", contract.Title, contract.Status)
	return nil
}
