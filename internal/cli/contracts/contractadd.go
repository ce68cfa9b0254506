package contracts

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/logger"
	"github.com/julianstephens/mozd/internal/models"
	"github.com/julianstephens/mozd/internal/utils"
)

type ContractAddCmd struct {
	Title       string `arg:"" help:"Contract title."`
	Amount      string `short:"a" required:"" help:"Total contract amount."`
	Employer    string `short:"e" help:"Employer ID or name. May be omitted when there is only one employer."`
	Start       string `short:"s" default:"today" help:"Start date."`
	End         string `help:"Optional end date."`
	Completed   bool   `help:"Record the contract as already completed."`
	Description string `help:"Optional description."`
}

func (c *ContractAddCmd) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("contract title cannot be empty")
	}
	_, err := utils.ParseAmount(c.Amount)
	return err
}

func (c *ContractAddCmd) Run(ctx *cli.Context) error {
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

	contract := models.ContractWork{
		ID:          models.NewID(),
		EmployerID:  employer.ID,
		Title:       strings.TrimSpace(c.Title),
		TotalAmount: amount,
		Description: strings.TrimSpace(c.Description),
		Status:      constants.ContractInProgress,
	}
	if c.Completed {
		contract.Status = constants.ContractCompleted
	}
	if contract.StartDate, err = ctx.ParseDate(c.Start); err != nil {
		return err
	}
	if c.End != "" {
		end, err := ctx.ParseDate(c.End)
		if err != nil {
			return err
		}
		contract.EndDate = &end
	}

	if err := ctx.Store.AddContract(contract); err != nil {
		return fmt.Errorf("failed to add contract: %w", err)
	}
	logger.Info("contract added", "id", contract.ID, "employer", employer.ID)

	fmt.Printf("Added contract: %s for %s (ID: %s)\n", contract.Title, employer.Name, contract.ID)
	return nil
}
