package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/jalali"
	"github.com/julianstephens/mozd/internal/logger"
	"github.com/julianstephens/mozd/internal/models"
)

// EmployerStat summarizes daily work done for one employer.
type EmployerStat struct {
	Employer       models.Employer
	TotalAmount    decimal.Decimal
	TotalHours     float64
	AveragePerHour decimal.Decimal
	DaysCount      int
}

// ContractStat summarizes contract work done for one employer.
type ContractStat struct {
	Employer    models.Employer
	TotalAmount decimal.Decimal
	Count       int
	Completed   int
	InProgress  int
	Contracts   []models.ContractWork
}

// MonthStat is the daily work done in one calendar month.
type MonthStat struct {
	Key    string
	Amount decimal.Decimal
	Hours  float64
	Days   int
}

// EmployerStats returns one row per selected employer, including employers
// with no work days.
func EmployerStats(ds models.Dataset, f Filter) []EmployerStat {
	employers := f.Employers(ds)
	stats := make([]EmployerStat, 0, len(employers))
	for _, e := range employers {
		s := EmployerStat{Employer: e, TotalAmount: decimal.Zero, AveragePerHour: decimal.Zero}
		for _, w := range ds.WorkDays {
			if w.EmployerID != e.ID {
				continue
			}
			s.TotalAmount = s.TotalAmount.Add(TotalPay(w))
			s.TotalHours += Hours(w)
			s.DaysCount++
		}
		if s.TotalHours > 0 {
			s.AveragePerHour = s.TotalAmount.Div(decimal.NewFromFloat(s.TotalHours))
		}
		stats = append(stats, s)
	}
	return stats
}

// ContractStats returns a row for each selected employer that has contracts.
func ContractStats(ds models.Dataset, f Filter) []ContractStat {
	var stats []ContractStat
	for _, e := range f.Employers(ds) {
		s := ContractStat{Employer: e, TotalAmount: decimal.Zero}
		for _, c := range ds.Contracts {
			if c.EmployerID != e.ID {
				continue
			}
			s.TotalAmount = s.TotalAmount.Add(c.TotalAmount)
			s.Count++
			switch c.Status {
			case constants.ContractCompleted:
				s.Completed++
			case constants.ContractInProgress:
				s.InProgress++
			}
			s.Contracts = append(s.Contracts, c)
		}
		if s.Count > 0 {
			stats = append(stats, s)
		}
	}
	return stats
}

// MonthlyStats groups the selected daily work by month, newest month first.
// Work days with unparseable dates are skipped.
func MonthlyStats(ds models.Dataset, f Filter, cal constants.Calendar) []MonthStat {
	byKey := make(map[string]*MonthStat)
	for _, w := range f.WorkDays(ds) {
		key, err := jalali.MonthKeyOf(w.Date, cal)
		if err != nil {
			logger.Warn("skipping work day with bad date", "id", w.ID, "date", w.Date)
			continue
		}
		m, ok := byKey[key]
		if !ok {
			m = &MonthStat{Key: key, Amount: decimal.Zero}
			byKey[key] = m
		}
		m.Amount = m.Amount.Add(TotalPay(w))
		m.Hours += Hours(w)
		m.Days++
	}

	months := make([]MonthStat, 0, len(byKey))
	for _, m := range byKey {
		months = append(months, *m)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Key > months[j].Key
	})
	return months
}

// DailyTotal sums the pay of every work day.
func DailyTotal(days []models.WorkDay) decimal.Decimal {
	total := decimal.Zero
	for _, w := range days {
		total = total.Add(TotalPay(w))
	}
	return total
}

// ContractTotal sums the amount of every contract.
func ContractTotal(contracts []models.ContractWork) decimal.Decimal {
	total := decimal.Zero
	for _, c := range contracts {
		total = total.Add(c.TotalAmount)
	}
	return total
}

// PaymentTotal sums every payment.
func PaymentTotal(payments []models.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// TotalEarned is everything earned across all employers.
func TotalEarned(ds models.Dataset) decimal.Decimal {
	return DailyTotal(ds.WorkDays).Add(ContractTotal(ds.Contracts))
}

// TotalPaid is everything received across all employers.
func TotalPaid(ds models.Dataset) decimal.Decimal {
	return PaymentTotal(ds.Payments)
}
