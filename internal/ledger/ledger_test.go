package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/models"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func dp(v int64) *decimal.Decimal {
	x := decimal.NewFromInt(v)
	return &x
}

func fp(f float64) *float64 { return &f }

func testDataset() models.Dataset {
	return models.Dataset{
		Employers: []models.Employer{
			{ID: "a", Name: "Ali", Color: "#3b82f6", Wage: dp(800000)},
			{ID: "b", Name: "Reza", Color: "#10b981"},
			{ID: "c", Name: "Sara", Color: "#f59e0b"},
		},
		WorkDays: []models.WorkDay{
			{ID: "w1", EmployerID: "a", Date: "2024-08-02", Hours: 8, Amount: d(800000), Overtime: fp(2)},
			{ID: "w2", EmployerID: "a", Date: "2024-07-10", Hours: 4, Amount: d(400000)},
			{ID: "w3", EmployerID: "b", Date: "2024-08-05", Hours: 8, Amount: d(600000)},
		},
		Contracts: []models.ContractWork{
			{ID: "c1", EmployerID: "b", Title: "Paint", TotalAmount: d(5000000), StartDate: "2024-08-01", Status: constants.ContractCompleted},
			{ID: "c2", EmployerID: "b", Title: "Tile", TotalAmount: d(3000000), StartDate: "2024-06-01", Status: constants.ContractInProgress},
		},
		Payments: []models.Payment{
			{ID: "p1", EmployerID: "a", Amount: d(600000), Method: "cash", Date: "2024-08-03"},
			{ID: "p2", EmployerID: "c", Amount: d(100000), Method: "card", Date: "2024-08-03"},
		},
	}
}

func TestOvertimeAndTotalPay(t *testing.T) {
	w := models.WorkDay{Hours: 8, Amount: d(800000), Overtime: fp(2)}
	assert.True(t, OvertimePay(w).Equal(d(200000)))
	assert.True(t, TotalPay(w).Equal(d(1000000)))

	w.Overtime = nil
	assert.True(t, OvertimePay(w).IsZero())
	assert.True(t, TotalPay(w).Equal(d(800000)))

	half := models.WorkDay{Amount: d(100000), Overtime: fp(0.5)}
	assert.Equal(t, "6250", OvertimePay(half).String())
}

func TestTotalPayProperty(t *testing.T) {
	for _, amount := range []int64{1, 7, 800000, 123457} {
		for _, o := range []float64{0, 0.5, 1, 2.25, 8} {
			w := models.WorkDay{Amount: d(amount), Overtime: fp(o)}
			want := d(amount).Add(d(amount).Div(d(8)).Mul(decimal.NewFromFloat(o)))
			assert.True(t, TotalPay(w).Equal(want), "amount=%d overtime=%v", amount, o)
		}
	}
}

func TestDailyAmount(t *testing.T) {
	assert.Equal(t, "800000", DailyAmount(d(800000), 8).String())
	assert.Equal(t, "400000", DailyAmount(d(800000), 4).String())
	assert.Equal(t, "450000", DailyAmount(d(800000), 4.5).String())
	assert.Equal(t, "1", DailyAmount(d(3), 3).String(), "1.125 rounds down")
	assert.Equal(t, "2", DailyAmount(d(3), 4).String(), "1.5 rounds up")
}

func TestWageFor(t *testing.T) {
	withWage := models.Employer{Name: "Ali", Wage: dp(800000)}
	noWage := models.Employer{Name: "Reza"}
	defaults := models.Settings{DefaultWage: dp(500000)}

	w, err := WageFor(withWage, defaults)
	require.NoError(t, err)
	assert.True(t, w.Equal(d(800000)))

	w, err = WageFor(noWage, defaults)
	require.NoError(t, err)
	assert.True(t, w.Equal(d(500000)))

	_, err = WageFor(noWage, models.Settings{})
	assert.True(t, errors.Is(err, models.ErrNoWage))
}

func TestEmployerStats(t *testing.T) {
	stats := EmployerStats(testDataset(), Filter{})
	require.Len(t, stats, 3)

	a := stats[0]
	assert.Equal(t, "a", a.Employer.ID)
	assert.True(t, a.TotalAmount.Equal(d(1400000)))
	assert.Equal(t, 14.0, a.TotalHours)
	assert.Equal(t, 2, a.DaysCount)
	assert.True(t, a.AveragePerHour.Equal(d(100000)))

	empty := stats[2]
	assert.Equal(t, 0, empty.DaysCount)
	assert.True(t, empty.AveragePerHour.IsZero())

	only := EmployerStats(testDataset(), Filter{EmployerID: "b"})
	require.Len(t, only, 1)
	assert.True(t, only[0].TotalAmount.Equal(d(600000)))
}

func TestContractStats(t *testing.T) {
	stats := ContractStats(testDataset(), Filter{})
	require.Len(t, stats, 1, "only employers with contracts")
	assert.Equal(t, "b", stats[0].Employer.ID)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, 1, stats[0].Completed)
	assert.Equal(t, 1, stats[0].InProgress)
	assert.True(t, stats[0].TotalAmount.Equal(d(8000000)))

	assert.Empty(t, ContractStats(testDataset(), Filter{EmployerID: "a"}))
}

func TestBalances(t *testing.T) {
	rows := Balances(testDataset(), Filter{})
	require.Len(t, rows, 3)

	byID := map[string]Balance{}
	for _, r := range rows {
		byID[r.Employer.ID] = r
	}

	a := byID["a"]
	assert.True(t, a.TotalEarned.Equal(d(1400000)))
	assert.True(t, a.TotalPaid.Equal(d(600000)))
	assert.True(t, a.Remaining.Equal(d(800000)))
	assert.Equal(t, Owed, a.Direction())
	assert.Equal(t, "مانده طلب", a.Direction().Label())

	b := byID["b"]
	assert.True(t, b.DailyEarned.Equal(d(600000)))
	assert.True(t, b.ContractEarned.Equal(d(8000000)))
	assert.Empty(t, b.Payments)

	c := byID["c"]
	assert.True(t, c.Remaining.Equal(d(-100000)))
	assert.Equal(t, Overpaid, c.Direction())
}

func TestBalances_ExampleOwed(t *testing.T) {
	ds := models.Dataset{
		Employers: []models.Employer{{ID: "a", Name: "A"}},
		WorkDays: []models.WorkDay{
			{ID: "w", EmployerID: "a", Date: "2024-08-02", Hours: 8, Amount: d(800000), Overtime: fp(2)},
		},
		Payments: []models.Payment{{ID: "p", EmployerID: "a", Amount: d(600000)}},
	}
	b, ok := BalanceFor(ds, "a")
	require.True(t, ok)
	assert.True(t, b.TotalEarned.Equal(d(1000000)))
	assert.True(t, b.Remaining.Equal(d(400000)))
	assert.Equal(t, Owed, b.Direction())
}

func TestBalanceFor_EmptyAndMissing(t *testing.T) {
	ds := models.Dataset{Employers: []models.Employer{{ID: "a", Name: "A"}}}
	b, ok := BalanceFor(ds, "a")
	require.True(t, ok)
	assert.Equal(t, Settled, b.Direction())

	_, ok = BalanceFor(ds, "missing")
	assert.False(t, ok)
}

func TestBalanceIdentity(t *testing.T) {
	ds := testDataset()
	sumRemaining := decimal.Zero
	for _, b := range Balances(ds, Filter{}) {
		sumRemaining = sumRemaining.Add(b.Remaining)
	}
	assert.True(t, sumRemaining.Equal(TotalEarned(ds).Sub(TotalPaid(ds))))
}

func TestMonthlyStats(t *testing.T) {
	ds := testDataset()

	greg := MonthlyStats(ds, Filter{}, constants.CalendarGregorian)
	require.Len(t, greg, 2)
	assert.Equal(t, "2024-08", greg[0].Key)
	assert.Equal(t, 2, greg[0].Days)
	assert.True(t, greg[0].Amount.Equal(d(1600000)))
	assert.Equal(t, "2024-07", greg[1].Key)

	jal := MonthlyStats(ds, Filter{}, constants.CalendarJalali)
	require.Len(t, jal, 2)
	// 2024-08-02 and 2024-08-05 are both in Mordad 1403; 2024-07-10 is Tir.
	assert.Equal(t, "1403-05", jal[0].Key)
	assert.Equal(t, "1403-04", jal[1].Key)

	for _, months := range [][]MonthStat{greg, jal} {
		sum := decimal.Zero
		for _, m := range months {
			sum = sum.Add(m.Amount)
		}
		assert.True(t, sum.Equal(DailyTotal(ds.WorkDays)), "monthly rollup must cover the all-time total")
	}
}

func TestMonthlyStats_SkipsBadDates(t *testing.T) {
	ds := models.Dataset{WorkDays: []models.WorkDay{
		{ID: "ok", Date: "2024-08-02", Amount: d(1)},
		{ID: "bad", Date: "yesterday", Amount: d(1)},
	}}
	assert.Len(t, MonthlyStats(ds, Filter{}, constants.CalendarGregorian), 1)
}

func TestFilter(t *testing.T) {
	all := Filter{}
	assert.True(t, all.Daily())
	assert.True(t, all.Contract())

	daily := Filter{WorkType: constants.WorkTypeDaily}
	assert.True(t, daily.Daily())
	assert.False(t, daily.Contract())

	wt, err := ParseWorkType("contract")
	require.NoError(t, err)
	assert.Equal(t, constants.WorkTypeContract, wt)

	_, err = ParseWorkType("hourly")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	ds := testDataset()
	now := time.Date(2024, 8, 10, 12, 0, 0, 0, time.Local)

	dash := Summarize(ds, now, constants.CalendarGregorian)
	assert.True(t, dash.DailyEarnings.Equal(d(2000000)))
	assert.True(t, dash.ContractEarnings.Equal(d(8000000)))
	assert.True(t, dash.TotalEarnings.Equal(d(10000000)))
	assert.True(t, dash.ThisMonthDaily.Equal(d(1600000)))
	assert.True(t, dash.ThisMonthContract.Equal(d(5000000)))
	assert.True(t, dash.ThisMonth.Equal(d(6600000)))
	assert.True(t, dash.Outstanding.Equal(d(9300000)))
	assert.Equal(t, 3, dash.EmployerCount)
	assert.Equal(t, 3, dash.WorkDayCount)

	require.Len(t, dash.Recent, 3)
	assert.Equal(t, "w3", dash.Recent[0].ID)
	assert.Equal(t, "w2", dash.Recent[2].ID)
}

func TestRecentWorkDays_Limit(t *testing.T) {
	var days []models.WorkDay
	for i := 1; i <= 8; i++ {
		days = append(days, models.WorkDay{ID: string(rune('0' + i)), Date: time.Date(2024, 1, i, 0, 0, 0, 0, time.UTC).Format(constants.DateFormat)})
	}
	recent := RecentWorkDays(days, constants.RecentWorkDays)
	require.Len(t, recent, 5)
	assert.Equal(t, "8", recent[0].ID)
	assert.Equal(t, "1", days[0].ID, "input must not be reordered")
}
