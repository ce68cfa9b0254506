package reports

import (
	"fmt"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/ledger"
)

type BalanceCmd struct {
	Employer string `short:"e" help:"Only show the balance of this employer (ID or name)."`
}

func (c *BalanceCmd) Run(ctx *cli.Context) error {
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

	balances := ledger.Balances(ds, f)
	if len(balances) == 0 {
		fmt.Println("No earnings or payments recorded")
		return nil
	}

	num := ctx.Number()
	for _, b := range balances {
		fmt.Printf("%s\n", b.Employer.Name)
		fmt.Printf("  Earned:   %s (daily %s, contracts %s)\n",
			num.Currency(b.TotalEarned), num.Currency(b.DailyEarned), num.Currency(b.ContractEarned))
		fmt.Printf("  Received: %s in %d payment(s)\n", num.Currency(b.TotalPaid), len(b.Payments))
		fmt.Printf("  %s: %s\n", b.Direction().Label(), num.Currency(b.Remaining.Abs()))
	}
	return nil
}
