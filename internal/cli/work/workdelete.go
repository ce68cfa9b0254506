package work

import (
	"fmt"

	"github.com/julianstephens/mozd/internal/cli"
)

type WorkDeleteCmd struct {
	ID string `arg:"" help:"Work day ID to delete."`
}

func (c *WorkDeleteCmd) Run(ctx *cli.Context) error {
	release, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer release()

	day, err := ctx.Store.GetWorkDay(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find work day with ID %s: %w", c.ID, err)
	}

	if err := ctx.Store.DeleteWorkDay(c.ID); err != nil {
		return fmt.Errorf("failed to delete work day: %w", err)
	}

	fmt.Printf("Deleted work day: %s (ID: %s)\n", ctx.FormatDate(day.Date), c.ID)
	return nil
}
