package payments

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/utils"
)

type PaymentEditCmd struct {
	ID          string  `arg:"" help:"Payment ID."`
	Amount      *string `short:"a" help:"New amount."`
	Employer    *string `short:"e" help:"New employer ID or name."`
	Method      *string `short:"m" help:"New payment method."`
	Date        *string `short:"d" help:"New payment date."`
	Description *string `help:"New description."`
}

func (c *PaymentEditCmd) Run(ctx *cli.Context) error {
	release, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer release()

	payment, err := ctx.Store.GetPayment(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find payment: %w", err)
	}

	if c.Amount != nil {
		if payment.Amount, err = utils.ParseAmount(*c.Amount); err != nil {
			return err
		}
	}
	if c.Employer != nil {
		employer, err := ctx.ResolveEmployer(*c.Employer)
		if err != nil {
			return err
		}
		payment.EmployerID = employer.ID
	}
	if c.Method != nil {
		payment.Method = strings.TrimSpace(*c.Method)
	}
	if c.Date != nil {
		if payment.Date, err = ctx.ParseDate(*c.Date); err != nil {
			return err
		}
	}
	if c.Description != nil {
		payment.Description = strings.TrimSpace(*c.Description)
	}

	if err := ctx.Store.UpdatePayment(payment); err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	fmt.Printf("Updated payment: %s (ID: %s)\n", ctx.Number().Currency(payment.Amount), payment.ID)
	return nil
}
