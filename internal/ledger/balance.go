package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/julianstephens/mozd/internal/models"
)

// Direction says who owes whom once payments are set against earnings.
type Direction int

const (
	// Settled means earnings and payments match
	Settled Direction = iota
	// Owed means the employer still owes the worker
	Owed
	// Overpaid means the worker has received more than earned so far
	Overpaid
)

// Label returns the display label used on balance rows.
func (d Direction) Label() string {
	switch d {
	case Owed:
		return "مانده طلب"
	case Overpaid:
		return "مانده بدهی"
	default:
		return "تسویه"
	}
}

// Balance reconciles what an employer owes against what they paid.
type Balance struct {
	Employer       models.Employer
	DailyEarned    decimal.Decimal
	ContractEarned decimal.Decimal
	TotalEarned    decimal.Decimal
	TotalPaid      decimal.Decimal
	Remaining      decimal.Decimal
	Payments       []models.Payment
}

// Direction classifies the remaining balance by its sign.
func (b Balance) Direction() Direction {
	switch b.Remaining.Sign() {
	case 1:
		return Owed
	case -1:
		return Overpaid
	default:
		return Settled
	}
}

// Balances returns the balance of each selected employer that has earnings
// or payments. All kinds of work count regardless of the filter's work type.
func Balances(ds models.Dataset, f Filter) []Balance {
	var out []Balance
	for _, e := range f.Employers(ds) {
		b := Balance{
			Employer:       e,
			DailyEarned:    decimal.Zero,
			ContractEarned: decimal.Zero,
			TotalPaid:      decimal.Zero,
		}
		for _, w := range ds.WorkDays {
			if w.EmployerID == e.ID {
				b.DailyEarned = b.DailyEarned.Add(TotalPay(w))
			}
		}
		for _, c := range ds.Contracts {
			if c.EmployerID == e.ID {
				b.ContractEarned = b.ContractEarned.Add(c.TotalAmount)
			}
		}
		for _, p := range ds.Payments {
			if p.EmployerID == e.ID {
				b.TotalPaid = b.TotalPaid.Add(p.Amount)
				b.Payments = append(b.Payments, p)
			}
		}
		b.TotalEarned = b.DailyEarned.Add(b.ContractEarned)
		b.Remaining = b.TotalEarned.Sub(b.TotalPaid)

		if b.TotalEarned.IsPositive() || len(b.Payments) > 0 {
			out = append(out, b)
		}
	}
	return out
}

// BalanceFor returns the balance of a single employer, even when empty.
func BalanceFor(ds models.Dataset, employerID string) (Balance, bool) {
	e, ok := ds.Employer(employerID)
	if !ok {
		return Balance{}, false
	}
	if rows := Balances(ds, Filter{EmployerID: employerID}); len(rows) == 1 {
		return rows[0], true
	}
	return Balance{
		Employer:       e,
		DailyEarned:    decimal.Zero,
		ContractEarned: decimal.Zero,
		TotalEarned:    decimal.Zero,
		TotalPaid:      decimal.Zero,
		Remaining:      decimal.Zero,
	}, true
}
