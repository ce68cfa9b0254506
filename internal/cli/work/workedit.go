package work

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/ledger"
	"github.com/julianstephens/mozd/internal/models"
	"github.com/julianstephens/mozd/internal/utils"
)

type WorkEditCmd struct {
	ID          string  `arg:"" help:"Work day ID."`
	Employer    *string `help:"New employer ID or name."`
	Date        *string `short:"d" help:"New work date."`
	Hours       *string `help:"New hours worked."`
	Overtime    *string `short:"o" help:"New overtime hours. An empty value clears it."`
	Wage        string  `short:"w" help:"Daily wage to recompute the amount with."`
	Description *string `help:"New description."`
}

func (c *WorkEditCmd) Run(ctx *cli.Context) error {
	release, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer release()

	day, err := ctx.Store.GetWorkDay(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find work day: %w", err)
	}

	if c.Employer != nil {
		employer, err := ctx.ResolveEmployer(*c.Employer)
		if err != nil {
			return err
		}
		day.EmployerID = employer.ID
	}
	if c.Date != nil {
		if day.Date, err = ctx.ParseDate(*c.Date); err != nil {
			return err
		}
	}
	if c.Hours != nil {
		if day.Hours, err = utils.ParseHours(*c.Hours); err != nil {
			return err
		}
	}
	if c.Overtime != nil {
		if strings.TrimSpace(*c.Overtime) == "" {
			day.Overtime = nil
		} else {
			ot, err := strconv.ParseFloat(utils.ToLatinDigits(strings.TrimSpace(*c.Overtime)), 64)
			if err != nil {
				return fmt.Errorf("invalid overtime %q", *c.Overtime)
			}
			day.Overtime = &ot
		}
	}
	if c.Description != nil {
		day.Description = strings.TrimSpace(*c.Description)
	}

	// The amount follows the employer's current wage and the new hours.
	employer, err := ctx.Store.GetEmployer(day.EmployerID)
	if err != nil {
		return fmt.Errorf("failed to find employer: %w", err)
	}
	wage, err := entryWage(ctx, employer, c.Wage)
	switch {
	case err == nil:
		day.Amount = ledger.DailyAmount(wage, day.Hours)
	case errors.Is(err, models.ErrNoWage) && c.Hours == nil:
		// nothing to recompute from; keep the recorded amount
	default:
		return err
	}

	if err := ctx.Store.UpdateWorkDay(day); err != nil {
		return fmt.Errorf("failed to update work day: %w", err)
	}

	fmt.Printf("Updated work day: %s, %s (ID: %s)\n", employer.Name, ctx.FormatDate(day.Date), day.ID)
	fmt.Printf("  Total: %s\n", ctx.Number().Currency(ledger.TotalPay(day)))
	return nil
}
