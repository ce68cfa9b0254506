package transfer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/models"
)

// A dump as the browser keeps it: every value is a string.
const localStorageDump = `{
  "work_tracker_employers": "[{\"id\":\"1722580000000\",\"name\":\"علی\",\"color\":\"#3b82f6\",\"wage\":800000,\"createdAt\":\"2024-08-02T06:26:40.000Z\"}]",
  "work_tracker_workdays": "[{\"id\":\"1722580001000\",\"employerId\":\"1722580000000\",\"date\":\"2024-08-02\",\"hours\":8,\"amount\":800000,\"overtime\":2,\"createdAt\":\"2024-08-02T06:26:41.000Z\"}]",
  "work_tracker_contract_works": "[{\"id\":\"1722580002000\",\"employerId\":\"1722580000000\",\"title\":\"نقاشی\",\"totalAmount\":5000000,\"startDate\":\"2024-08-01\",\"endDate\":\"\",\"status\":\"in-progress\",\"createdAt\":\"2024-08-02T06:26:42.000Z\"}]",
  "work_tracker_payments": "[{\"id\":\"1722580003000\",\"employerId\":\"1722580000000\",\"amount\":600000,\"paymentMethod\":\"cash\",\"date\":\"2024-08-03\",\"createdAt\":\"2024-08-03T06:26:43.000Z\"}]",
  "work_tracker_default_wage": "750000",
  "work_tracker_onboarding_completed": "true"
}`

func TestDecode_LocalStorage(t *testing.T) {
	ds, err := Decode([]byte(localStorageDump))
	require.NoError(t, err)

	require.Len(t, ds.Employers, 1)
	e := ds.Employers[0]
	assert.Equal(t, "1722580000000", e.ID)
	assert.Equal(t, "علی", e.Name)
	require.NotNil(t, e.Wage)
	assert.True(t, e.Wage.Equal(decimal.NewFromInt(800000)))
	assert.Equal(t, time.Date(2024, 8, 2, 6, 26, 40, 0, time.UTC), e.CreatedAt.UTC())

	require.Len(t, ds.WorkDays, 1)
	assert.Equal(t, 2.0, ds.WorkDays[0].OvertimeHours())

	require.Len(t, ds.Contracts, 1)
	assert.Nil(t, ds.Contracts[0].EndDate, "empty end date becomes nil")

	require.Len(t, ds.Payments, 1)
	assert.Equal(t, "cash", ds.Payments[0].Method)

	require.True(t, ds.Settings.HasDefaultWage())
	assert.Equal(t, "750000", ds.Settings.DefaultWage.String())
	assert.True(t, ds.Settings.OnboardingCompleted)
}

func TestDecode_RawAndMissing(t *testing.T) {
	ds, err := Decode([]byte(`{"work_tracker_default_wage": 500000, "work_tracker_payments": null}`))
	require.NoError(t, err)
	assert.Empty(t, ds.Employers)
	assert.NotNil(t, ds.Employers, "missing collections decode to empty slices")
	assert.Empty(t, ds.Payments)
	assert.Equal(t, "500000", ds.Settings.DefaultWage.String())
	assert.False(t, ds.Settings.OnboardingCompleted)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	assert.ErrorContains(t, err, "failed to parse dump")

	_, err = Decode([]byte(`{"work_tracker_employers": "[{broken"}`))
	assert.ErrorContains(t, err, constants.KeyEmployers)

	_, err = Decode([]byte(`{"work_tracker_default_wage": "lots"}`))
	assert.ErrorContains(t, err, constants.SettingDefaultWage)
}

func TestRoundTrip(t *testing.T) {
	original, err := Decode([]byte(localStorageDump))
	require.NoError(t, err)

	for _, format := range []Format{FormatRaw, FormatLocalStorage} {
		data, err := Encode(original, format)
		require.NoError(t, err)

		again, err := Decode(data)
		require.NoError(t, err)

		assert.Equal(t, original.Employers[0].ID, again.Employers[0].ID)
		assert.True(t, original.Employers[0].Wage.Equal(*again.Employers[0].Wage))
		assert.True(t, original.Employers[0].CreatedAt.Equal(again.Employers[0].CreatedAt))
		assert.Equal(t, original.WorkDays[0].Date, again.WorkDays[0].Date)
		assert.True(t, original.WorkDays[0].Amount.Equal(again.WorkDays[0].Amount))
		assert.Equal(t, original.Contracts[0].Title, again.Contracts[0].Title)
		assert.Equal(t, original.Payments[0].Method, again.Payments[0].Method)
		assert.True(t, original.Settings.DefaultWage.Equal(*again.Settings.DefaultWage))
		assert.Equal(t, original.Settings.OnboardingCompleted, again.Settings.OnboardingCompleted)
	}
}

func TestEncode_NumbersStayNumeric(t *testing.T) {
	ds := models.Dataset{
		Employers: []models.Employer{{ID: "1", Name: "Ali", Color: "#3b82f6"}},
	}
	data, err := Encode(ds, FormatRaw)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"wage"`, "unset wage is omitted")
	assert.Contains(t, string(data), `"work_tracker_workdays": []`)
	assert.NotContains(t, string(data), constants.SettingOnboardingCompleted)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.json")

	wage := decimal.NewFromInt(900000)
	ds := models.Dataset{Settings: models.Settings{DefaultWage: &wage, OnboardingCompleted: true}}
	require.NoError(t, WriteFile(path, ds, FormatLocalStorage))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.True(t, got.Settings.DefaultWage.Equal(wage))
	assert.True(t, got.Settings.OnboardingCompleted)
}

func TestDropOrphanContracts(t *testing.T) {
	ds := models.Dataset{
		Employers: []models.Employer{{ID: "e1", Name: "Ali"}},
		Contracts: []models.ContractWork{
			{ID: "c1", EmployerID: "e1", Title: "Roof"},
			{ID: "c2", EmployerID: "gone", Title: "Fence"},
			{ID: "c3", EmployerID: "e1", Title: "Wall"},
		},
	}

	dropped := DropOrphanContracts(&ds)

	require.Len(t, dropped, 1)
	assert.Equal(t, "c2", dropped[0].ID)
	require.Len(t, ds.Contracts, 2)
	assert.Equal(t, "c1", ds.Contracts[0].ID)
	assert.Equal(t, "c3", ds.Contracts[1].ID)

	assert.Empty(t, DropOrphanContracts(&ds), "nothing left to drop")
}
