package work

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/ledger"
	"github.com/julianstephens/mozd/internal/models"
	"github.com/julianstephens/mozd/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	return &cli.Context{Store: store}
}

func addEmployer(t *testing.T, ctx *cli.Context, id, name string, wage int64) {
	t.Helper()
	e := models.Employer{ID: id, Name: name, Color: "#3b82f6"}
	if wage > 0 {
		w := decimal.NewFromInt(wage)
		e.Wage = &w
	}
	require.NoError(t, ctx.Store.AddEmployer(e))
}

func onlyWorkDay(t *testing.T, ctx *cli.Context) models.WorkDay {
	t.Helper()
	days, err := ctx.Store.GetAllWorkDays()
	require.NoError(t, err)
	require.Len(t, days, 1)
	return days[0]
}

func TestWorkAddCmd_OvertimeExample(t *testing.T) {
	ctx := setupTestDB(t)
	addEmployer(t, ctx, "e1", "Ali", 800000)

	ot := 2.0
	cmd := &WorkAddCmd{Employer: "Ali", Date: "1403/05/12", Hours: "8", Overtime: &ot}
	require.NoError(t, cmd.Validate())
	require.NoError(t, cmd.Run(ctx))

	day := onlyWorkDay(t, ctx)
	assert.Equal(t, "2024-08-02", day.Date)
	assert.True(t, day.Amount.Equal(decimal.NewFromInt(800000)))
	assert.True(t, ledger.OvertimePay(day).Equal(decimal.NewFromInt(200000)))
	assert.True(t, ledger.TotalPay(day).Equal(decimal.NewFromInt(1000000)))
}

func TestWorkAddCmd_SingleEmployerAndDefaultWage(t *testing.T) {
	ctx := setupTestDB(t)
	addEmployer(t, ctx, "e1", "Ali", 0)

	err := (&WorkAddCmd{Date: "2024-08-02", Hours: "4"}).Run(ctx)
	assert.True(t, errors.Is(err, models.ErrNoWage))

	wage := decimal.NewFromInt(600000)
	require.NoError(t, ctx.Store.SaveSettings(models.Settings{DefaultWage: &wage}))

	require.NoError(t, (&WorkAddCmd{Date: "2024-08-02", Hours: "۴"}).Run(ctx))
	day := onlyWorkDay(t, ctx)
	assert.Equal(t, "e1", day.EmployerID)
	assert.True(t, day.Amount.Equal(decimal.NewFromInt(300000)))
}

func TestWorkAddCmd_RequiresEmployerWhenSeveral(t *testing.T) {
	ctx := setupTestDB(t)
	addEmployer(t, ctx, "e1", "Ali", 800000)
	addEmployer(t, ctx, "e2", "Reza", 800000)

	assert.Error(t, (&WorkAddCmd{Date: "today", Hours: "8"}).Run(ctx))
}

func TestWorkAddCmd_WageOverrideAndRounding(t *testing.T) {
	ctx := setupTestDB(t)
	addEmployer(t, ctx, "e1", "Ali", 800000)

	require.NoError(t, (&WorkAddCmd{Employer: "e1", Date: "today", Hours: "3", Wage: "1000001"}).Run(ctx))
	day := onlyWorkDay(t, ctx)
	// 1000001 / 8 * 3 = 375000.375
	assert.True(t, day.Amount.Equal(decimal.NewFromInt(375000)))
}

func TestWorkAddCmd_Validate(t *testing.T) {
	assert.Error(t, (&WorkAddCmd{Hours: "x"}).Validate())
	assert.Error(t, (&WorkAddCmd{Hours: "8", Wage: "0"}).Validate())
	assert.NoError(t, (&WorkAddCmd{Hours: "7.5"}).Validate())
}

func TestWorkAddCmd_InvalidHours(t *testing.T) {
	ctx := setupTestDB(t)
	addEmployer(t, ctx, "e1", "Ali", 800000)

	err := (&WorkAddCmd{Employer: "Ali", Date: "today", Hours: "25"}).Run(ctx)
	ve, ok := models.AsValidationErrors(err)
	require.True(t, ok)
	assert.NotEmpty(t, ve.Field("hours"))
}

func TestWorkEditCmd_RecomputesAmount(t *testing.T) {
	ctx := setupTestDB(t)
	addEmployer(t, ctx, "e1", "Ali", 800000)
	require.NoError(t, (&WorkAddCmd{Employer: "Ali", Date: "2024-08-02", Hours: "8"}).Run(ctx))
	day := onlyWorkDay(t, ctx)

	// The employer's wage changed since the day was recorded.
	e, err := ctx.Store.GetEmployer("e1")
	require.NoError(t, err)
	w := decimal.NewFromInt(960000)
	e.Wage = &w
	require.NoError(t, ctx.Store.UpdateEmployer(e))

	hours := "4"
	ot := "1"
	desc := "  plastering "
	require.NoError(t, (&WorkEditCmd{ID: day.ID, Hours: &hours, Overtime: &ot, Description: &desc}).Run(ctx))

	day = onlyWorkDay(t, ctx)
	assert.Equal(t, 4.0, day.Hours)
	assert.True(t, day.Amount.Equal(decimal.NewFromInt(480000)))
	require.NotNil(t, day.Overtime)
	assert.Equal(t, 1.0, *day.Overtime)
	assert.Equal(t, "plastering", day.Description)

	empty := ""
	require.NoError(t, (&WorkEditCmd{ID: day.ID, Overtime: &empty}).Run(ctx))
	assert.Nil(t, onlyWorkDay(t, ctx).Overtime)
}

func TestWorkEditCmd_KeepsAmountWithoutWage(t *testing.T) {
	ctx := setupTestDB(t)
	addEmployer(t, ctx, "e1", "Ali", 0)
	require.NoError(t, ctx.Store.AddWorkDay(models.WorkDay{
		ID: "w1", EmployerID: "e1", Date: "2024-08-02", Hours: 8, Amount: decimal.NewFromInt(500000),
	}))

	date := "2024-08-03"
	require.NoError(t, (&WorkEditCmd{ID: "w1", Date: &date}).Run(ctx))
	day := onlyWorkDay(t, ctx)
	assert.Equal(t, "2024-08-03", day.Date)
	assert.True(t, day.Amount.Equal(decimal.NewFromInt(500000)))

	hours := "4"
	err := (&WorkEditCmd{ID: "w1", Hours: &hours}).Run(ctx)
	assert.True(t, errors.Is(err, models.ErrNoWage))
}

func TestWorkDeleteCmd(t *testing.T) {
	ctx := setupTestDB(t)
	addEmployer(t, ctx, "e1", "Ali", 800000)
	require.NoError(t, (&WorkAddCmd{Employer: "Ali", Date: "today", Hours: "8"}).Run(ctx))
	day := onlyWorkDay(t, ctx)

	require.NoError(t, (&WorkDeleteCmd{ID: day.ID}).Run(ctx))
	err := (&WorkDeleteCmd{ID: day.ID}).Run(ctx)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestWorkListCmd(t *testing.T) {
	ctx := setupTestDB(t)
	assert.NoError(t, (&WorkListCmd{}).Run(ctx))

	addEmployer(t, ctx, "e1", "Ali", 800000)
	require.NoError(t, (&WorkAddCmd{Employer: "Ali", Date: "today", Hours: "8"}).Run(ctx))
	assert.NoError(t, (&WorkListCmd{Employer: "Ali", Limit: 1, ShowIDs: true}).Run(ctx))
	assert.Error(t, (&WorkListCmd{Employer: "nobody"}).Run(ctx))
}
