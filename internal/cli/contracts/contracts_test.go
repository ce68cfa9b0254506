package contracts

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/models"
	"github.com/julianstephens/mozd/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.AddEmployer(models.Employer{ID: "e1", Name: "Ali", Color: "#3b82f6"}))
	return &cli.Context{Store: store}
}

func onlyContract(t *testing.T, ctx *cli.Context) models.ContractWork {
	t.Helper()
	contracts, err := ctx.Store.GetAllContracts()
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	return contracts[0]
}

func TestContractAddCmd(t *testing.T) {
	ctx := setupTestDB(t)

	cmd := &ContractAddCmd{Title: " Kitchen tiling ", Amount: "۵,۰۰۰,۰۰۰", Start: "1403/05/01", End: "1403/05/12"}
	require.NoError(t, cmd.Validate())
	require.NoError(t, cmd.Run(ctx))

	ct := onlyContract(t, ctx)
	assert.Equal(t, "e1", ct.EmployerID)
	assert.Equal(t, "Kitchen tiling", ct.Title)
	assert.True(t, ct.TotalAmount.Equal(decimal.NewFromInt(5000000)))
	assert.Equal(t, "2024-07-22", ct.StartDate)
	require.NotNil(t, ct.EndDate)
	assert.Equal(t, "2024-08-02", *ct.EndDate)
	assert.Equal(t, constants.ContractInProgress, ct.Status)
}

func TestContractAddCmd_Validate(t *testing.T) {
	assert.Error(t, (&ContractAddCmd{Title: " ", Amount: "10"}).Validate())
	assert.Error(t, (&ContractAddCmd{Title: "Roof", Amount: "ten"}).Validate())
}

func TestContractAddCmd_EndBeforeStart(t *testing.T) {
	ctx := setupTestDB(t)
	err := (&ContractAddCmd{Title: "Roof", Amount: "10", Start: "2024-08-02", End: "2024-08-01"}).Run(ctx)
	ve, ok := models.AsValidationErrors(err)
	require.True(t, ok)
	assert.NotEmpty(t, ve.Field("endDate"))
}

func TestContractEditAndToggle(t *testing.T) {
	ctx := setupTestDB(t)
	require.NoError(t, (&ContractAddCmd{Title: "Roof", Amount: "100", Start: "2024-08-01", End: "2024-08-05"}).Run(ctx))
	ct := onlyContract(t, ctx)

	title := "Roof repair"
	amount := "150"
	end := ""
	require.NoError(t, (&ContractEditCmd{ID: ct.ID, Title: &title, Amount: &amount, End: &end}).Run(ctx))

	ct = onlyContract(t, ctx)
	assert.Equal(t, "Roof repair", ct.Title)
	assert.True(t, ct.TotalAmount.Equal(decimal.NewFromInt(150)))
	assert.Nil(t, ct.EndDate)

	require.NoError(t, (&ContractToggleCmd{ID: ct.ID}).Run(ctx))
	assert.True(t, onlyContract(t, ctx).IsCompleted())
	require.NoError(t, (&ContractToggleCmd{ID: ct.ID}).Run(ctx))
	assert.False(t, onlyContract(t, ctx).IsCompleted())
}

func TestContractDeleteCmd(t *testing.T) {
	ctx := setupTestDB(t)
	require.NoError(t, (&ContractAddCmd{Title: "Roof", Amount: "100", Start: "today", Completed: true}).Run(ctx))
	ct := onlyContract(t, ctx)
	assert.True(t, ct.IsCompleted())

	require.NoError(t, (&ContractDeleteCmd{ID: ct.ID}).Run(ctx))
	err := (&ContractToggleCmd{ID: ct.ID}).Run(ctx)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestContractListCmd(t *testing.T) {
	ctx := setupTestDB(t)
	assert.NoError(t, (&ContractListCmd{}).Run(ctx))

	require.NoError(t, (&ContractAddCmd{Title: "Roof", Amount: "100", Start: "today"}).Run(ctx))
	assert.NoError(t, (&ContractListCmd{Employer: "ali", Open: true, ShowIDs: true}).Run(ctx))
}
