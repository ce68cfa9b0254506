package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/models"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// setupTestStores returns an initialized store of each backend.
func setupTestStores(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()
	stores := map[string]Provider{
		"sqlite": Open(filepath.Join(dir, "test.db")),
		"json":   Open(filepath.Join(dir, "test.json")),
	}
	for name, store := range stores {
		if err := store.Init(); err != nil {
			t.Fatalf("%s: Init() error = %v", name, err)
		}
		t.Cleanup(func() { store.Close() })
	}
	return stores
}

func forEachStore(t *testing.T, fn func(t *testing.T, store Provider)) {
	for name, store := range setupTestStores(t) {
		t.Run(name, func(t *testing.T) {
			fn(t, store)
		})
	}
}

func addEmployer(t *testing.T, store Provider, id, name string) models.Employer {
	t.Helper()
	e := models.Employer{
		ID:        id,
		Name:      name,
		Color:     "#3b82f6",
		Wage:      decPtr(800000),
		CreatedAt: time.Now().UTC(),
	}
	if err := store.AddEmployer(e); err != nil {
		t.Fatalf("AddEmployer(%s) error = %v", name, err)
	}
	return e
}

func TestOpen_PicksBackend(t *testing.T) {
	if KindOf("/x/data.json") != KindJSON || KindOf("/x/DATA.JSON") != KindJSON {
		t.Error("KindOf() should pick json for .json paths")
	}
	if KindOf("/x/mozd.db") != KindSQLite || KindOf("/x/mozd") != KindSQLite {
		t.Error("KindOf() should default to sqlite")
	}
}

func TestLoad_Uninitialized(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"missing.db", "missing.json"} {
		store := Open(filepath.Join(dir, name))
		err := store.Load()
		if err == nil {
			t.Fatalf("%s: Load() expected error", name)
		}
		if want := "storage not initialized"; !strings.Contains(err.Error(), want) {
			t.Errorf("%s: Load() error = %v, want %q", name, err, want)
		}
	}
}

func TestInit_Idempotent(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		addEmployer(t, store, "e1", "Ali")
		if err := store.Init(); err != nil {
			t.Fatalf("second Init() error = %v", err)
		}
		all, err := store.GetAllEmployers()
		if err != nil || len(all) != 1 {
			t.Errorf("GetAllEmployers() after re-init = %d, %v; want 1 employer kept", len(all), err)
		}
	})
}

func TestEmployerCRUD(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		e := addEmployer(t, store, "e1", "  Ali  ")

		got, err := store.GetEmployer("e1")
		if err != nil {
			t.Fatalf("GetEmployer() error = %v", err)
		}
		if got.Name != "Ali" {
			t.Errorf("Name = %q, want trimmed %q", got.Name, "Ali")
		}
		if got.Wage == nil || !got.Wage.Equal(dec(800000)) {
			t.Errorf("Wage = %v, want 800000", got.Wage)
		}
		if !got.CreatedAt.Equal(e.CreatedAt) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, e.CreatedAt)
		}

		got.Name = "Ali Rezaei"
		got.Wage = nil
		if err := store.UpdateEmployer(got); err != nil {
			t.Fatalf("UpdateEmployer() error = %v", err)
		}
		got, _ = store.GetEmployer("e1")
		if got.Name != "Ali Rezaei" || got.Wage != nil {
			t.Errorf("after update got %+v", got)
		}

		if err := store.DeleteEmployer("e1"); err != nil {
			t.Fatalf("DeleteEmployer() error = %v", err)
		}
		if _, err := store.GetEmployer("e1"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("GetEmployer() after delete error = %v, want ErrNotFound", err)
		}
	})
}

func TestEmployer_Ordering(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		for i, name := range []string{"Third", "First", "Second"} {
			offset := map[string]int{"First": 0, "Second": 1, "Third": 2}[name]
			e := models.Employer{ID: name, Name: name, Color: models.NextColor(i), CreatedAt: base.Add(time.Duration(offset) * time.Hour)}
			if err := store.AddEmployer(e); err != nil {
				t.Fatalf("AddEmployer() error = %v", err)
			}
		}
		all, _ := store.GetAllEmployers()
		if len(all) != 3 || all[0].Name != "First" || all[2].Name != "Third" {
			t.Errorf("GetAllEmployers() order = %v", names(all))
		}
	})
}

func TestEmployer_OrderingWithinSecond(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		base := time.Date(2024, 8, 2, 6, 26, 40, 0, time.UTC)
		created := map[string]time.Time{
			"Whole":  base,
			"Tenth":  base.Add(120 * time.Millisecond),
			"Later":  base.Add(123 * time.Millisecond),
			"Second": base.Add(time.Second),
		}
		for i, name := range []string{"Second", "Later", "Whole", "Tenth"} {
			e := models.Employer{ID: name, Name: name, Color: models.NextColor(i), CreatedAt: created[name]}
			if err := store.AddEmployer(e); err != nil {
				t.Fatalf("AddEmployer() error = %v", err)
			}
		}
		all, _ := store.GetAllEmployers()
		if got, want := strings.Join(names(all), ","), "Whole,Tenth,Later,Second"; got != want {
			t.Errorf("GetAllEmployers() order = %s, want %s", got, want)
		}
		if !all[2].CreatedAt.Equal(created["Later"]) {
			t.Errorf("CreatedAt = %v, want %v", all[2].CreatedAt, created["Later"])
		}
	})
}

func TestEmployer_DuplicateName(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		addEmployer(t, store, "e1", "Ali")
		err := store.AddEmployer(models.Employer{ID: "e2", Name: " ali ", Color: "#10b981"})
		if !errors.Is(err, models.ErrDuplicateEmployerName) {
			t.Errorf("AddEmployer() duplicate error = %v, want ErrDuplicateEmployerName", err)
		}

		addEmployer(t, store, "e3", "Reza")
		reza, _ := store.GetEmployer("e3")
		reza.Name = "ALI"
		if err := store.UpdateEmployer(reza); !errors.Is(err, models.ErrDuplicateEmployerName) {
			t.Errorf("UpdateEmployer() rename to existing error = %v", err)
		}
	})
}

func TestEmployer_Validation(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		err := store.AddEmployer(models.Employer{ID: "e1", Name: "A", Color: "#3b82f6"})
		if _, ok := models.AsValidationErrors(err); !ok {
			t.Errorf("AddEmployer() short name error = %v, want ValidationErrors", err)
		}
		if err := store.AddEmployer(models.Employer{Name: "Ali", Color: "#3b82f6"}); err == nil {
			t.Error("AddEmployer() without id should fail")
		}
	})
}

func TestDeleteEmployer_Guard(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		addEmployer(t, store, "busy", "Busy")
		addEmployer(t, store, "paid", "Paid")
		addEmployer(t, store, "free", "Free")

		if err := store.AddWorkDay(models.WorkDay{ID: "w1", EmployerID: "busy", Date: "2024-08-02", Hours: 8, Amount: dec(800000)}); err != nil {
			t.Fatalf("AddWorkDay() error = %v", err)
		}
		if err := store.AddPayment(models.Payment{ID: "p1", EmployerID: "paid", Amount: dec(100), Method: "cash", Date: "2024-08-02"}); err != nil {
			t.Fatalf("AddPayment() error = %v", err)
		}
		if err := store.AddContract(models.ContractWork{ID: "c1", EmployerID: "free", Title: "Tiles", TotalAmount: dec(5000000), StartDate: "2024-08-01"}); err != nil {
			t.Fatalf("AddContract() error = %v", err)
		}

		for _, id := range []string{"busy", "paid"} {
			if err := store.DeleteEmployer(id); !errors.Is(err, models.ErrEmployerInUse) {
				t.Errorf("DeleteEmployer(%s) error = %v, want ErrEmployerInUse", id, err)
			}
		}

		// Contracts do not block deletion; they go with the employer.
		if err := store.DeleteEmployer("free"); err != nil {
			t.Fatalf("DeleteEmployer(free) error = %v", err)
		}
		if _, err := store.GetContract("c1"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("contract of deleted employer still present: %v", err)
		}

		// Removing the references unblocks the delete.
		if err := store.DeleteWorkDay("w1"); err != nil {
			t.Fatalf("DeleteWorkDay() error = %v", err)
		}
		if err := store.DeleteEmployer("busy"); err != nil {
			t.Errorf("DeleteEmployer(busy) after clearing work days error = %v", err)
		}

		if err := store.DeleteEmployer("ghost"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("DeleteEmployer(ghost) error = %v, want ErrNotFound", err)
		}
	})
}

func TestWorkDayCRUD(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		addEmployer(t, store, "e1", "Ali")
		overtime := 2.0
		w := models.WorkDay{ID: "w1", EmployerID: "e1", Date: "2024-08-02", Hours: 8, Amount: dec(800000), Overtime: &overtime, Description: "روز اول"}
		if err := store.AddWorkDay(w); err != nil {
			t.Fatalf("AddWorkDay() error = %v", err)
		}
		if err := store.AddWorkDay(models.WorkDay{ID: "w2", EmployerID: "e1", Date: "2024-08-05", Hours: 4.5, Amount: dec(450000)}); err != nil {
			t.Fatalf("AddWorkDay() error = %v", err)
		}

		got, err := store.GetWorkDay("w1")
		if err != nil {
			t.Fatalf("GetWorkDay() error = %v", err)
		}
		if got.OvertimeHours() != 2 || got.Description != "روز اول" || !got.Amount.Equal(dec(800000)) {
			t.Errorf("GetWorkDay() = %+v", got)
		}
		if got.CreatedAt.IsZero() {
			t.Error("CreatedAt should be stamped on insert")
		}

		all, _ := store.GetAllWorkDays()
		if len(all) != 2 || all[0].ID != "w2" {
			t.Errorf("GetAllWorkDays() should list newest date first, got %v", all)
		}

		got.Hours = 6
		got.Overtime = nil
		if err := store.UpdateWorkDay(got); err != nil {
			t.Fatalf("UpdateWorkDay() error = %v", err)
		}
		got, _ = store.GetWorkDay("w1")
		if got.Hours != 6 || got.Overtime != nil {
			t.Errorf("after update got %+v", got)
		}

		if err := store.UpdateWorkDay(models.WorkDay{ID: "nope", EmployerID: "e1", Date: "2024-08-02", Hours: 1, Amount: dec(1)}); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("UpdateWorkDay(unknown) error = %v, want ErrNotFound", err)
		}
		if err := store.AddWorkDay(models.WorkDay{ID: "w3", EmployerID: "ghost", Date: "2024-08-02", Hours: 1, Amount: dec(1)}); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("AddWorkDay(unknown employer) error = %v, want ErrNotFound", err)
		}
		if err := store.DeleteWorkDay("nope"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("DeleteWorkDay(unknown) error = %v, want ErrNotFound", err)
		}
	})
}

func TestContractCRUD(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		addEmployer(t, store, "e1", "Ali")
		c := models.ContractWork{ID: "c1", EmployerID: "e1", Title: "Paint", TotalAmount: dec(5000000), StartDate: "2024-08-01"}
		if err := store.AddContract(c); err != nil {
			t.Fatalf("AddContract() error = %v", err)
		}

		got, err := store.GetContract("c1")
		if err != nil {
			t.Fatalf("GetContract() error = %v", err)
		}
		if got.Status != constants.ContractInProgress {
			t.Errorf("new contract status = %q, want in-progress", got.Status)
		}
		if got.EndDate != nil {
			t.Errorf("EndDate = %v, want nil", *got.EndDate)
		}

		end := "2024-08-20"
		got.EndDate = &end
		got.ToggleStatus()
		if err := store.UpdateContract(got); err != nil {
			t.Fatalf("UpdateContract() error = %v", err)
		}
		got, _ = store.GetContract("c1")
		if !got.IsCompleted() || got.EndDate == nil || *got.EndDate != end {
			t.Errorf("after update got %+v", got)
		}

		if err := store.DeleteContract("c1"); err != nil {
			t.Fatalf("DeleteContract() error = %v", err)
		}
		all, _ := store.GetAllContracts()
		if len(all) != 0 {
			t.Errorf("GetAllContracts() after delete = %d", len(all))
		}
	})
}

func TestPaymentCRUD(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		addEmployer(t, store, "e1", "Ali")
		p := models.Payment{ID: "p1", EmployerID: "e1", Amount: dec(600000), Method: "card", Date: "2024-08-03"}
		if err := store.AddPayment(p); err != nil {
			t.Fatalf("AddPayment() error = %v", err)
		}
		if err := store.AddPayment(models.Payment{ID: "p2", EmployerID: "e1", Amount: dec(1), Method: "bitcoin", Date: "2024-08-03"}); err == nil {
			t.Error("AddPayment() with unknown method should fail")
		}

		got, err := store.GetPayment("p1")
		if err != nil {
			t.Fatalf("GetPayment() error = %v", err)
		}
		if got.Method != "card" || !got.Amount.Equal(dec(600000)) {
			t.Errorf("GetPayment() = %+v", got)
		}

		got.Amount = dec(650000)
		if err := store.UpdatePayment(got); err != nil {
			t.Fatalf("UpdatePayment() error = %v", err)
		}
		got, _ = store.GetPayment("p1")
		if !got.Amount.Equal(dec(650000)) {
			t.Errorf("Amount after update = %s", got.Amount)
		}

		if err := store.DeletePayment("p1"); err != nil {
			t.Fatalf("DeletePayment() error = %v", err)
		}
		if _, err := store.GetPayment("p1"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("GetPayment() after delete error = %v", err)
		}
	})
}

func TestSettings(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings() error = %v", err)
		}
		if settings.HasDefaultWage() || settings.OnboardingCompleted {
			t.Errorf("fresh settings = %+v, want empty", settings)
		}

		settings.DefaultWage = decPtr(750000)
		settings.OnboardingCompleted = true
		if err := store.SaveSettings(settings); err != nil {
			t.Fatalf("SaveSettings() error = %v", err)
		}
		got, _ := store.GetSettings()
		if !got.HasDefaultWage() || !got.DefaultWage.Equal(dec(750000)) || !got.OnboardingCompleted {
			t.Errorf("GetSettings() = %+v", got)
		}

		got.DefaultWage = nil
		if err := store.SaveSettings(got); err != nil {
			t.Fatalf("SaveSettings() clearing wage error = %v", err)
		}
		got, _ = store.GetSettings()
		if got.DefaultWage != nil {
			t.Errorf("DefaultWage = %v after clearing, want nil", got.DefaultWage)
		}

		if err := store.SaveSettings(models.Settings{DefaultWage: decPtr(-1)}); err == nil {
			t.Error("SaveSettings() with negative wage should fail")
		}
	})
}

func TestReplaceAllAndLoadDataset(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Provider) {
		addEmployer(t, store, "old", "Old")

		created := time.Date(2024, 8, 2, 6, 26, 40, 0, time.UTC)
		ds := models.Dataset{
			Employers: []models.Employer{{ID: "1722580000000", Name: "علی", Color: "#3b82f6", Wage: decPtr(800000), CreatedAt: created}},
			WorkDays:  []models.WorkDay{{ID: "w", EmployerID: "1722580000000", Date: "2024-08-02", Hours: 8, Amount: dec(800000), CreatedAt: created}},
			Contracts: []models.ContractWork{{ID: "c", EmployerID: "1722580000000", Title: "نقاشی", TotalAmount: dec(5000000), StartDate: "2024-08-01", Status: constants.ContractCompleted, CreatedAt: created}},
			Payments:  []models.Payment{{ID: "p", EmployerID: "1722580000000", Amount: dec(600000), Method: "cash", Date: "2024-08-03", CreatedAt: created}},
			Settings:  models.Settings{DefaultWage: decPtr(700000), OnboardingCompleted: true},
		}
		if err := store.ReplaceAll(ds); err != nil {
			t.Fatalf("ReplaceAll() error = %v", err)
		}

		got, err := LoadDataset(store)
		if err != nil {
			t.Fatalf("LoadDataset() error = %v", err)
		}
		if len(got.Employers) != 1 || got.Employers[0].ID != "1722580000000" {
			t.Errorf("Employers = %v, want only the imported one", names(got.Employers))
		}
		if !got.Employers[0].CreatedAt.Equal(created) {
			t.Errorf("CreatedAt = %v, want %v", got.Employers[0].CreatedAt, created)
		}
		if len(got.WorkDays) != 1 || len(got.Contracts) != 1 || len(got.Payments) != 1 {
			t.Errorf("LoadDataset() counts = %d/%d/%d", len(got.WorkDays), len(got.Contracts), len(got.Payments))
		}
		if !got.Settings.OnboardingCompleted || !got.Settings.DefaultWage.Equal(dec(700000)) {
			t.Errorf("Settings = %+v", got.Settings)
		}
	})
}

func TestJSONStore_PersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	addEmployer(t, store, "e1", "Ali")

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("file mode = %v, want 0600", info.Mode().Perm())
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := reopened.GetEmployer("e1"); err != nil {
		t.Errorf("GetEmployer() after reload error = %v", err)
	}
}

func TestJSONStore_NotLoaded(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "data.json"))
	if _, err := store.GetAllEmployers(); err == nil {
		t.Error("GetAllEmployers() before Load should fail")
	}
	if err := store.AddEmployer(models.Employer{ID: "e1", Name: "Ali", Color: "#3b82f6"}); err == nil {
		t.Error("AddEmployer() before Load should fail")
	}
}

func names(employers []models.Employer) []string {
	out := make([]string, len(employers))
	for i, e := range employers {
		out[i] = e.Name
	}
	return out
}
