package system

import (
	"fmt"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/jalali"
	"github.com/julianstephens/mozd/internal/utils"
)

type DateCmd struct {
	Value       string `arg:"" optional:"" default:"today" help:"Date to convert (1403/05/12, 2024-08-02, today or yesterday)."`
	ToGregorian bool   `short:"g" help:"Print only the Gregorian date."`
}

func (c *DateCmd) Run(ctx *cli.Context) error {
	iso, err := jalali.ParseInput(c.Value, utils.Now())
	if err != nil {
		return err
	}

	if c.ToGregorian {
		fmt.Println(iso)
		return nil
	}

	d, err := jalali.ParseISO(iso)
	if err != nil {
		return err
	}

	digits := ctx.Settings().PersianDigits
	fmt.Printf("Jalali:    %s (%s)\n", maybePersian(d.String(), digits), d.Long(digits))
	fmt.Printf("Gregorian: %s\n", iso)
	return nil
}

func maybePersian(s string, persian bool) string {
	if persian {
		return utils.ToPersianDigits(s)
	}
	return s
}
