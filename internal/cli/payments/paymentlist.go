package payments

import (
	"fmt"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/ledger"
)

type PaymentListCmd struct {
	Employer string `short:"e" help:"Only show payments from this employer (ID or name)."`
	ShowIDs  bool   `help:"Show payment IDs." name:"show-ids"`
}

func (c *PaymentListCmd) Run(ctx *cli.Context) error {
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

	names := cli.EmployerNames(ds.Employers)
	num := ctx.Number()

	shown := 0
	for _, p := range ds.Payments {
		if !f.Matches(p.EmployerID) {
			continue
		}
		if shown == 0 {
			fmt.Println("Payments:")
		}
		shown++

		name, ok := names[p.EmployerID]
		if !ok {
			name = constants.UnknownEmployer
		}

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", p.ID)
		}

		fmt.Printf("  %s  %s%s - %s (%s)\n", ctx.FormatDate(p.Date), name, idStr, num.Currency(p.Amount), p.MethodLabel())
		if p.Description != "" {
			fmt.Printf("      %s\n", p.Description)
		}
	}

	if shown == 0 {
		fmt.Println("No payments found")
	}
	return nil
}
