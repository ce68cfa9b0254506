package reports

import (
	"fmt"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/jalali"
	"github.com/julianstephens/mozd/internal/ledger"
	"github.com/julianstephens/mozd/internal/utils"
)

type DashboardCmd struct{}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	ds, err := ctx.Dataset()
	if err != nil {
		return err
	}

	cfg := ctx.Settings()
	num := ctx.Number()
	d := ledger.Summarize(ds, utils.Now(), cfg.Calendar)

	fmt.Printf("Total earnings:    %s\n", num.Currency(d.TotalEarnings))
	fmt.Printf("  Daily work:      %s\n", num.Currency(d.DailyEarnings))
	fmt.Printf("  Contracts:       %s\n", num.Currency(d.ContractEarnings))
	fmt.Printf("This month (%s): %s\n", jalali.MonthLabel(d.MonthKey, cfg.Calendar, cfg.PersianDigits), num.Currency(d.ThisMonth))
	fmt.Printf("Received:          %s\n", num.Currency(d.TotalPaid))
	fmt.Printf("Outstanding:       %s\n", num.Currency(d.Outstanding))
	fmt.Printf("Employers: %s  Work days: %s  Contracts: %s\n",
		num.Int(d.EmployerCount), num.Int(d.WorkDayCount), num.Int(d.ContractCount))

	if len(d.Recent) == 0 {
		return nil
	}

	names := cli.EmployerNames(ds.Employers)
	fmt.Println("\nRecent work:")
	for _, w := range d.Recent {
		name, ok := names[w.EmployerID]
		if !ok {
			name = constants.UnknownEmployer
		}
		fmt.Printf("  %s  %s - %s h - %s\n",
			ctx.FormatDate(w.Date), name, num.Hours(ledger.Hours(w)), num.Currency(ledger.TotalPay(w)))
	}
	return nil
}
