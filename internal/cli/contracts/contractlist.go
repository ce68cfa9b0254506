package contracts

import (
	"fmt"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/ledger"
)

type ContractListCmd struct {
	Employer string `short:"e" help:"Only show contracts for this employer (ID or name)."`
	Open     bool   `help:"Only show contracts still in progress."`
	ShowIDs  bool   `help:"Show contract IDs." name:"show-ids"`
}

func (c *ContractListCmd) Run(ctx *cli.Context) error {
	ds, err := ctx.Dataset()
	if err != nil {
		return err
	}

	f := ledger.Filter{WorkType: constants.WorkTypeContract}
	if c.Employer != "" {
		employer, err := ctx.ResolveEmployer(c.Employer)
		if err != nil {
			return err
		}
		f.EmployerID = employer.ID
	}

	stats := ledger.ContractStats(ds, f)
	if len(stats) == 0 {
		fmt.Println("No contracts found")
		return nil
	}

	num := ctx.Number()
	for _, st := range stats {
		fmt.Printf("%s: %d contract(s), %d completed, %d in progress, %s\n",
			st.Employer.Name, st.Count, st.Completed, st.InProgress, num.Currency(st.TotalAmount))

		for _, ct := range st.Contracts {
			if c.Open && ct.IsCompleted() {
				continue
			}

			status := "in progress"
			if ct.IsCompleted() {
				status = "completed"
			}

			idStr := ""
			if c.ShowIDs {
				idStr = fmt.Sprintf(" (ID: %s)", ct.ID)
			}

			period := ctx.FormatDate(ct.StartDate)
			if ct.EndDate != nil {
				period += " - " + ctx.FormatDate(*ct.EndDate)
			}

			fmt.Printf("  [%s] %s%s - %s (%s)\n", status, ct.Title, idStr, num.Currency(ct.TotalAmount), period)
			if ct.Description != "" {
				fmt.Printf("      %s\n", ct.Description)
			}
		}
	}
	return nil
}
