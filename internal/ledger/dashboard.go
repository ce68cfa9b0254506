package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/jalali"
	"github.com/julianstephens/mozd/internal/models"
)

// Dashboard is the at-a-glance summary shown on the first tab.
type Dashboard struct {
	TotalEarnings     decimal.Decimal
	DailyEarnings     decimal.Decimal
	ContractEarnings  decimal.Decimal
	ThisMonth         decimal.Decimal
	ThisMonthDaily    decimal.Decimal
	ThisMonthContract decimal.Decimal
	MonthKey          string
	TotalPaid         decimal.Decimal
	Outstanding       decimal.Decimal
	EmployerCount     int
	WorkDayCount      int
	ContractCount     int
	Recent            []models.WorkDay
}

// Summarize builds the dashboard for the month containing now. Work days
// count toward the month by date and contracts by start date.
func Summarize(ds models.Dataset, now time.Time, cal constants.Calendar) Dashboard {
	d := Dashboard{
		DailyEarnings:     DailyTotal(ds.WorkDays),
		ContractEarnings:  ContractTotal(ds.Contracts),
		ThisMonthDaily:    decimal.Zero,
		ThisMonthContract: decimal.Zero,
		TotalPaid:         TotalPaid(ds),
		EmployerCount:     len(ds.Employers),
		WorkDayCount:      len(ds.WorkDays),
		ContractCount:     len(ds.Contracts),
	}
	d.TotalEarnings = d.DailyEarnings.Add(d.ContractEarnings)
	d.Outstanding = d.TotalEarnings.Sub(d.TotalPaid)

	d.MonthKey, _ = jalali.MonthKeyOf(now.Format(constants.DateFormat), cal)
	for _, w := range ds.WorkDays {
		if key, err := jalali.MonthKeyOf(w.Date, cal); err == nil && key == d.MonthKey {
			d.ThisMonthDaily = d.ThisMonthDaily.Add(TotalPay(w))
		}
	}
	for _, c := range ds.Contracts {
		if key, err := jalali.MonthKeyOf(c.StartDate, cal); err == nil && key == d.MonthKey {
			d.ThisMonthContract = d.ThisMonthContract.Add(c.TotalAmount)
		}
	}
	d.ThisMonth = d.ThisMonthDaily.Add(d.ThisMonthContract)

	d.Recent = RecentWorkDays(ds.WorkDays, constants.RecentWorkDays)
	return d
}

// RecentWorkDays returns up to n work days, latest date first.
func RecentWorkDays(days []models.WorkDay, n int) []models.WorkDay {
	sorted := make([]models.WorkDay, len(days))
	copy(sorted, days)
	models.SortWorkDays(sorted)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
