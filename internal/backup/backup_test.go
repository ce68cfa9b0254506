package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/mozd/internal/models"
	"github.com/julianstephens/mozd/internal/transfer"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "mozd.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE employers (id TEXT PRIMARY KEY, name TEXT)`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO employers (id, name) VALUES ('e1', 'Ali'), ('e2', 'Reza')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

func countEmployers(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM employers").Scan(&count); err != nil {
		t.Fatalf("failed to query database: %v", err)
	}
	return count
}

// clock returns a now func that advances by step on every call.
func clock(start time.Time, step time.Duration) func() time.Time {
	current := start.Add(-step)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 0)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Dir(backupPath) != filepath.Join(filepath.Dir(dbPath), "backups") {
		t.Errorf("backup written to %s, want the backups dir", backupPath)
	}
	if filepath.Ext(backupPath) != ".db" {
		t.Errorf("backup extension = %q, want .db", filepath.Ext(backupPath))
	}
	if got := countEmployers(t, backupPath); got != 2 {
		t.Errorf("expected 2 rows in backup, got %d", got)
	}
}

func TestCreateBackup_MissingDataFile(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"), 0)
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("CreateBackup should fail without a data file")
	}
}

func TestCreateBackup_SameMinute(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 0)
	fixed := time.Date(2024, 8, 2, 10, 30, 15, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("CreateBackup reused %s", path)
		}
		seen[path] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 4)
	mgr.now = clock(time.Date(2024, 8, 2, 10, 0, 0, 0, time.Local), time.Minute)

	for i := 0; i < 7; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 4 {
		t.Fatalf("expected 4 backups after rotation, got %d", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups are not sorted newest first at %d", i)
		}
	}
	if want := time.Date(2024, 8, 2, 10, 6, 0, 0, time.Local); !backups[0].Timestamp.Equal(want) {
		t.Errorf("newest backup = %v, want %v", backups[0].Timestamp, want)
	}
}

func TestListBackups(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 0)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected 0 backups initially, got %d", len(backups))
	}

	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	// Files that do not follow the naming scheme are ignored.
	for _, name := range []string{"notes.txt", "mozd-garbage.db", "mozd-20240802-1030.json", "other-20240802-1030.db"} {
		if err := os.WriteFile(filepath.Join(mgr.BackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Size == 0 || backups[0].Timestamp.IsZero() {
		t.Errorf("backup info incomplete: %+v", backups[0])
	}
}

func TestParseName(t *testing.T) {
	mgr := NewManager("/data/mozd.db", 0)
	tests := []struct {
		name string
		ok   bool
		want time.Time
	}{
		{"mozd-20240802-1030.db", true, time.Date(2024, 8, 2, 10, 30, 0, 0, time.Local)},
		{"mozd-20240802-103015.db", true, time.Date(2024, 8, 2, 10, 30, 15, 0, time.Local)},
		{"mozd-20240802-103015-3.db", true, time.Date(2024, 8, 2, 10, 30, 15, 0, time.Local)},
		{"mozd-20240802.db", false, time.Time{}},
		{"mozd-20240802-1030.json", false, time.Time{}},
		{"other-20240802-1030.db", false, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := mgr.parseName(tt.name)
			if ok != tt.ok {
				t.Fatalf("parseName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 0)
	mgr.now = clock(time.Date(2024, 8, 2, 10, 0, 0, 0, time.Local), time.Minute)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec("INSERT INTO employers (id, name) VALUES ('e3', 'Sara')"); err != nil {
		t.Fatalf("failed to insert data: %v", err)
	}
	db.Close()

	previous, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if got := countEmployers(t, dbPath); got != 2 {
		t.Errorf("expected 2 rows after restore, got %d", got)
	}

	// The pre-restore snapshot keeps the third employer.
	if previous == "" {
		t.Fatal("RestoreBackup should report the pre-restore backup")
	}
	if got := countEmployers(t, previous); got != 3 {
		t.Errorf("expected 3 rows in pre-restore backup, got %d", got)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestoreBackup_Invalid(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 0)

	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("RestoreBackup should fail for a missing file")
	}

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("this is not a database file at all, just some text padding it out"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(bogus); err == nil {
		t.Error("RestoreBackup should reject a corrupt backup")
	}
	if got := countEmployers(t, dbPath); got != 2 {
		t.Errorf("data file changed by a rejected restore: %d rows", got)
	}
}

func TestJSONBackupAndRestore(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "data.json")
	wage := decimal.NewFromInt(800000)
	original := models.Dataset{
		Employers: []models.Employer{{ID: "e1", Name: "Ali", Color: "#3b82f6", Wage: &wage}},
	}
	transfer.Normalize(&original)
	if err := transfer.WriteFile(dataPath, original, transfer.FormatRaw); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	mgr := NewManager(dataPath, 0)
	mgr.now = clock(time.Date(2024, 8, 2, 10, 0, 0, 0, time.Local), time.Minute)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("backup extension = %q, want .json", filepath.Ext(backupPath))
	}

	emptied := models.Dataset{}
	transfer.Normalize(&emptied)
	if err := transfer.WriteFile(dataPath, emptied, transfer.FormatRaw); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	restored, err := transfer.ReadFile(dataPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(restored.Employers) != 1 || restored.Employers[0].Name != "Ali" {
		t.Errorf("restored employers = %+v", restored.Employers)
	}
}

func TestCreateBackup_InvalidJSON(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(dataPath, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewManager(dataPath, 0).CreateBackup(); err == nil {
		t.Error("CreateBackup should refuse to snapshot an unreadable JSON file")
	}
}
