package payments

import (
	"fmt"

	"github.com/julianstephens/mozd/internal/cli"
)

type PaymentDeleteCmd struct {
	ID string `arg:"" help:"Payment ID to delete."`
}

func (c *PaymentDeleteCmd) Run(ctx *cli.Context) error {
	release, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer release()

	payment, err := ctx.Store.GetPayment(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find payment with ID %s: %w", c.ID, err)
	}

	if err := ctx.Store.DeletePayment(c.ID); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	fmt.Printf("Deleted payment: %s on %s (ID: %s)\n", ctx.Number().Currency(payment.Amount), ctx.FormatDate(payment.Date), c.ID)
	return nil
}
