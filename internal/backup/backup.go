package backup

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/logger"
	"github.com/julianstephens/mozd/internal/transfer"
)

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

// namePattern matches "<timestamp>" or "<timestamp>-<counter>" once prefix and extension are stripped.
var namePattern = regexp.MustCompile(`^(\d{8}-\d{4}(?:\d{2})?)(?:-\d+)?$`)

// Info describes one backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager creates, lists and restores snapshots of a data file. SQLite
// databases are snapshotted with VACUUM INTO, JSON files are copied.
type Manager struct {
	dataPath   string
	backupDir  string
	ext        string
	maxBackups int
	now        func() time.Time
}

// NewManager returns a manager keeping backups next to dataPath.
// maxBackups <= 0 falls back to constants.MaxBackups.
func NewManager(dataPath string, maxBackups int) *Manager {
	if maxBackups <= 0 {
		maxBackups = constants.MaxBackups
	}
	ext := filepath.Ext(dataPath)
	if ext == "" {
		ext = ".db"
	}
	return &Manager{
		dataPath:   dataPath,
		backupDir:  filepath.Join(filepath.Dir(dataPath), constants.BackupDirName),
		ext:        strings.ToLower(ext),
		maxBackups: maxBackups,
		now:        time.Now,
	}
}

func (m *Manager) BackupDir() string {
	return m.backupDir
}

func (m *Manager) isJSON() bool {
	return m.ext == ".json"
}

// CreateBackup snapshots the data file and prunes backups beyond the limit.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.dataPath); os.IsNotExist(err) {
		return "", fmt.Errorf("data file does not exist: %s", m.dataPath)
	}

	dest, err := m.nextPath()
	if err != nil {
		return "", err
	}

	if m.isJSON() {
		err = m.snapshotJSON(dest)
	} else {
		err = m.snapshotSQLite(dest)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", m.dataPath, err)
	}
	logger.Info("backup created", "path", dest)

	if !skipRotation {
		if err := m.rotate(); err != nil {
			logger.Warn("failed to rotate old backups", "error", err)
		}
	}
	return dest, nil
}

// nextPath picks an unused file name, widening to seconds and then a counter on collision.
func (m *Manager) nextPath() (string, error) {
	now := m.now()
	candidate := m.pathFor(now.Format(minuteLayout))
	if !exists(candidate) {
		return candidate, nil
	}

	stamp := now.Format(secondLayout)
	candidate = m.pathFor(stamp)
	for counter := 1; exists(candidate); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		candidate = m.pathFor(fmt.Sprintf("%s-%d", stamp, counter))
	}
	return candidate, nil
}

func (m *Manager) pathFor(stamp string) string {
	return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+m.ext)
}

func (m *Manager) snapshotSQLite(dest string) error {
	db, err := sql.Open("sqlite", m.dataPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := pingSchema(db); err != nil {
		return fmt.Errorf("database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dest); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		return copyFile(m.dataPath, dest)
	}
	return nil
}

func (m *Manager) snapshotJSON(dest string) error {
	if _, err := transfer.ReadFile(m.dataPath); err != nil {
		return fmt.Errorf("data file is not valid: %w", err)
	}
	return copyFile(m.dataPath, dest)
}

// ListBackups returns the backups for this data file, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := m.parseName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	slices.SortStableFunc(backups, func(a, b Info) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(b.Path, a.Path)
	})
	return backups, nil
}

func (m *Manager) parseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.EqualFold(filepath.Ext(name), m.ext) {
		return time.Time{}, false
	}
	core := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), filepath.Ext(name))
	match := namePattern.FindStringSubmatch(core)
	if match == nil {
		return time.Time{}, false
	}
	layout := minuteLayout
	if len(match[1]) == len(secondLayout) {
		layout = secondLayout
	}
	ts, err := time.ParseInLocation(layout, match[1], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func (m *Manager) rotate() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for _, old := range backups[min(len(backups), m.maxBackups):] {
		if err := os.Remove(old.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", old.Path, err)
		}
		logger.Debug("backup rotated out", "path", old.Path)
	}
	return nil
}

// RestoreBackup replaces the data file with backupPath after verifying it.
// The current data file is backed up first and its path returned ("" when
// there was nothing to back up). Close any open store on the file before
// calling.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := m.Verify(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous string
	if exists(m.dataPath) {
		var err error
		if previous, err = m.createBackup(true); err != nil {
			return "", fmt.Errorf("failed to back up current data before restore: %w", err)
		}
	}

	tempPath := m.dataPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return previous, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.dataPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return previous, fmt.Errorf("failed to restore data file: %w", err)
	}
	logger.Info("backup restored", "from", backupPath, "previous", previous)
	return previous, nil
}

// Verify checks that path is a readable SQLite database or JSON data file.
func (m *Manager) Verify(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		_, err := transfer.ReadFile(path)
		return err
	}
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	return pingSchema(db)
}

func pingSchema(db *sql.DB) error {
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
