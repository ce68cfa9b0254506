package payments

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/logger"
	"github.com/julianstephens/mozd/internal/models"
	"github.com/julianstephens/mozd/internal/utils"
)

type PaymentAddCmd struct {
	Amount      string `arg:"" help:"Amount received."`
	Employer    string `short:"e" help:"Employer ID or name. May be omitted when there is only one employer."`
	Method      string `short:"m" default:"cash" enum:"cash,card,check,transfer,other" help:"Payment method (cash|card|check|transfer|other)."`
	Date        string `short:"d" default:"today" help:"Payment date."`
	Description string `help:"Optional description."`
}

func (c *PaymentAddCmd) Validate() error {
	_, err := utils.ParseAmount(c.Amount)
	return err
}

func (c *PaymentAddCmd) Run(ctx *cli.Context) error {
	release, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer release()

	employer, err := ctx.SelectEmployer(c.Employer)
	if err != nil {
		return err
	}

	amount, err := utils.ParseAmount(c.Amount)
	if err != nil {
		return err
	}

	payment := models.Payment{
		ID:          models.NewID(),
		EmployerID:  employer.ID,
		Amount:      amount,
		Method:      c.Method,
		Description: strings.TrimSpace(c.Description),
	}
	if payment.Date, err = ctx.ParseDate(c.Date); err != nil {
		return err
	}

	if err := ctx.Store.AddPayment(payment); err != nil {
		return fmt.Errorf("failed to add payment: %w", err)
	}
	logger.Info("payment added", "id", payment.ID, "employer", employer.ID)

	fmt.Printf("Added payment: %s from %s (ID: %s)\n", ctx.Number().Currency(payment.Amount), employer.Name, payment.ID)
	return nil
}
