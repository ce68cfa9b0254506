package work

import (
	"fmt"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/ledger"
)

type WorkListCmd struct {
	Employer string `short:"e" help:"Only show work for this employer (ID or name)."`
	Limit    int    `short:"n" help:"Show at most this many days. 0 shows all."`
	ShowIDs  bool   `help:"Show work day IDs." name:"show-ids"`
}

func (c *WorkListCmd) Run(ctx *cli.Context) error {
	ds, err := ctx.Dataset()
	if err != nil {
		return err
	}

	var f ledger.Filter
	if c.Employer != "" {
		employer, err := ctx.ResolveEmployer(c.Employer)
		if err != nil {
			return err
		}
		f.EmployerID = employer.ID
	}

	days := f.WorkDays(ds)
	if len(days) == 0 {
		fmt.Println("No work days found")
		return nil
	}
	if c.Limit > 0 && len(days) > c.Limit {
		days = days[:c.Limit]
	}

	names := cli.EmployerNames(ds.Employers)
	num := ctx.Number()

	fmt.Println("Work days:")
	for _, w := range days {
		name, ok := names[w.EmployerID]
		if !ok {
			name = constants.UnknownEmployer
		}

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", w.ID)
		}

		fmt.Printf("  %s  %s%s - %s h", ctx.FormatDate(w.Date), name, idStr, num.Hours(w.Hours))
		if ot := w.OvertimeHours(); ot > 0 {
			fmt.Printf(" + %s h overtime", num.Hours(ot))
		}
		fmt.Printf(" - %s\n", num.Currency(ledger.TotalPay(w)))
		if w.Description != "" {
			fmt.Printf("      %s\n", w.Description)
		}
	}

	fmt.Printf("\nTotal: %s\n", num.Currency(ledger.DailyTotal(f.WorkDays(ds))))
	return nil
}
