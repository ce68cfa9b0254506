package employers

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/ledger"
)

type EmployerListCmd struct {
	ShowIDs bool `help:"Show employer IDs." name:"show-ids"`
}

func (c *EmployerListCmd) Run(ctx *cli.Context) error {
	ds, err := ctx.Dataset()
	if err != nil {
		return err
	}
	if len(ds.Employers) == 0 {
		fmt.Println("No employers found")
		return nil
	}

	num := ctx.Number()
	stats := ledger.EmployerStats(ds, ledger.Filter{})

	fmt.Println("Employers:")
	for _, st := range stats {
		e := st.Employer
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color)).Render("●")

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", e.ID)
		}

		wage := "no wage"
		if e.HasWage() {
			wage = num.Currency(*e.Wage) + " / day"
		}

		fmt.Printf("  %s %s%s - %s\n", swatch, e.Name, idStr, wage)
		fmt.Printf("      %d day(s), %s hours, earned %s\n",
			st.DaysCount, num.Hours(st.TotalHours), num.Currency(st.TotalAmount))
	}

	if ds.Settings.HasDefaultWage() {
		fmt.Printf("\nDefault wage: %s / day\n", num.Currency(*ds.Settings.DefaultWage))
	}
	return nil
}
