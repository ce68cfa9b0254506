package work

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/ledger"
	"github.com/julianstephens/mozd/internal/logger"
	"github.com/julianstephens/mozd/internal/models"
	"github.com/julianstephens/mozd/internal/utils"
)

type WorkAddCmd struct {
	Employer    string   `arg:"" optional:"" help:"Employer ID or name. May be omitted when there is only one employer."`
	Date        string   `short:"d" default:"today" help:"Work date (1403/05/12, 2024-08-02, today or yesterday)."`
	Hours       string   `default:"8" help:"Hours worked, up to 24."`
	Overtime    *float64 `short:"o" help:"Overtime hours."`
	Wage        string   `short:"w" help:"Daily wage for this entry. Defaults to the employer's wage, then the default wage."`
	Description string   `help:"Optional description."`
}

func (c *WorkAddCmd) Validate() error {
	if _, err := utils.ParseHours(c.Hours); err != nil {
		return err
	}
	_, err := cli.ParseWage(c.Wage)
	return err
}

func (c *WorkAddCmd) Run(ctx *cli.Context) error {
	release, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer release()

	employer, err := ctx.SelectEmployer(c.Employer)
	if err != nil {
		return err
	}

	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	hours, err := utils.ParseHours(c.Hours)
	if err != nil {
		return err
	}

	wage, err := entryWage(ctx, employer, c.Wage)
	if err != nil {
		return err
	}

	day := models.WorkDay{
		ID:          models.NewID(),
		EmployerID:  employer.ID,
		Date:        date,
		Hours:       hours,
		Amount:      ledger.DailyAmount(wage, hours),
		Overtime:    c.Overtime,
		Description: strings.TrimSpace(c.Description),
	}
	if err := ctx.Store.AddWorkDay(day); err != nil {
		return fmt.Errorf("failed to add work day: %w", err)
	}
	logger.Info("work day added", "id", day.ID, "employer", employer.ID)

	num := ctx.Number()
	fmt.Printf("Added work day: %s, %s (ID: %s)\n", employer.Name, ctx.FormatDate(day.Date), day.ID)
	fmt.Printf("  %s hours = %s", num.Hours(day.Hours), num.Currency(day.Amount))
	if ot := ledger.OvertimePay(day); ot.IsPositive() {
		fmt.Printf(" + %s overtime = %s", num.Currency(ot), num.Currency(ledger.TotalPay(day)))
	}
	fmt.Println()
	return nil
}

// entryWage picks the wage flag if given, else the employer or default wage.
func entryWage(ctx *cli.Context, employer models.Employer, flag string) (decimal.Decimal, error) {
	override, err := cli.ParseWage(flag)
	if err != nil {
		return decimal.Zero, err
	}
	if override != nil {
		return *override, nil
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get settings: %w", err)
	}
	return ledger.WageFor(employer, settings)
}
