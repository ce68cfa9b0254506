// Package ledger derives earnings, balances and monthly rollups from the
// recorded employers, work days, contracts and payments.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/models"
	"github.com/julianstephens/mozd/internal/utils"
)

var hoursPerDay = decimal.NewFromInt(constants.HoursPerDay)

// HourlyRate is the implied hourly rate of a daily wage.
func HourlyRate(wage decimal.Decimal) decimal.Decimal {
	return wage.Div(hoursPerDay)
}

// OvertimePay is the extra pay for a work day's overtime, at the same hourly
// rate as its base amount. It is zero when no overtime was recorded.
func OvertimePay(w models.WorkDay) decimal.Decimal {
	if w.OvertimeHours() == 0 {
		return decimal.Zero
	}
	return HourlyRate(w.Amount).Mul(decimal.NewFromFloat(w.OvertimeHours()))
}

// TotalPay is the base amount plus overtime pay.
func TotalPay(w models.WorkDay) decimal.Decimal {
	return w.Amount.Add(OvertimePay(w))
}

// DailyAmount computes the base amount for hours worked at a daily wage,
// rounded to whole currency units.
func DailyAmount(wage decimal.Decimal, hours float64) decimal.Decimal {
	return utils.RoundAmount(HourlyRate(wage).Mul(decimal.NewFromFloat(hours)))
}

// WageFor returns the wage to use for new work with an employer: the
// employer's own wage, else the default wage from settings.
func WageFor(e models.Employer, s models.Settings) (decimal.Decimal, error) {
	switch {
	case e.HasWage():
		return *e.Wage, nil
	case s.HasDefaultWage():
		return *s.DefaultWage, nil
	default:
		return decimal.Zero, fmt.Errorf("employer %q: %w", e.Name, models.ErrNoWage)
	}
}

// Hours is the total worked time of a work day, overtime included.
func Hours(w models.WorkDay) float64 {
	return w.Hours + w.OvertimeHours()
}
