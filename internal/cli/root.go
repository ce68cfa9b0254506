package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/mozd/internal/backup"
	"github.com/julianstephens/mozd/internal/config"
	"github.com/julianstephens/mozd/internal/jalali"
	"github.com/julianstephens/mozd/internal/lock"
	"github.com/julianstephens/mozd/internal/logger"
	"github.com/julianstephens/mozd/internal/models"
	"github.com/julianstephens/mozd/internal/storage"
	"github.com/julianstephens/mozd/internal/utils"
)

type Context struct {
	Store  storage.Provider
	Config *config.Config
}

// Settings returns the active configuration, falling back to the defaults.
func (c *Context) Settings() *config.Config {
	if c.Config == nil {
		return config.Default()
	}
	return c.Config
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.BackupManager().CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// BackupManager returns the backup manager for the active data file.
func (c *Context) BackupManager() *backup.Manager {
	return backup.NewManager(c.Store.GetConfigPath(), c.Settings().MaxBackups)
}

// Lock takes the single-writer lock for the data file. The returned func
// releases it and is safe to defer.
func (c *Context) Lock() (func(), error) {
	l, err := lock.Acquire(c.Store.GetConfigPath())
	if err != nil {
		return func() {}, err
	}
	return func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release lock", "error", err)
		}
	}, nil
}

// Dataset loads every record from the store.
func (c *Context) Dataset() (models.Dataset, error) {
	return storage.LoadDataset(c.Store)
}

// ResolveEmployer finds an employer by id or, failing that, by its unique
// name (trimmed, case-insensitive).
func (c *Context) ResolveEmployer(ref string) (models.Employer, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Employer{}, fmt.Errorf("employer is required")
	}

	employers, err := c.Store.GetAllEmployers()
	if err != nil {
		return models.Employer{}, fmt.Errorf("failed to get employers: %w", err)
	}

	for _, e := range employers {
		if e.ID == ref {
			return e, nil
		}
	}

	var matches []models.Employer
	for _, e := range employers {
		if models.SameName(e.Name, ref) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return models.Employer{}, fmt.Errorf("employer %q: %w", ref, models.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.Employer{}, fmt.Errorf("employer name %q is ambiguous, use the id", ref)
	}
}

// SelectEmployer resolves ref, or picks the only employer when ref is empty.
func (c *Context) SelectEmployer(ref string) (models.Employer, error) {
	if strings.TrimSpace(ref) != "" {
		return c.ResolveEmployer(ref)
	}
	employers, err := c.Store.GetAllEmployers()
	if err != nil {
		return models.Employer{}, fmt.Errorf("failed to get employers: %w", err)
	}
	switch len(employers) {
	case 0:
		return models.Employer{}, fmt.Errorf("no employers yet, add one with 'mozd employer add'")
	case 1:
		return employers[0], nil
	default:
		return models.Employer{}, fmt.Errorf("employer is required when more than one employer exists")
	}
}

// ParseDate turns user input into the persisted date form.
func (c *Context) ParseDate(s string) (string, error) {
	return jalali.ParseInput(s, utils.Now())
}

// FormatDate renders a persisted date in the configured calendar.
func (c *Context) FormatDate(iso string) string {
	cfg := c.Settings()
	return jalali.Format(iso, cfg.Calendar, cfg.PersianDigits)
}

// Number returns the configured amount format.
func (c *Context) Number() utils.NumberFormat {
	return c.Settings().NumberFormat()
}

// ParseWage parses an optional wage flag. Empty input means no wage.
func ParseWage(s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	w, err := utils.ParseAmount(s)
	if err != nil {
		return nil, err
	}
	if !w.IsPositive() {
		return nil, fmt.Errorf("wage must be positive")
	}
	return &w, nil
}

// EmployerNames maps employer ids to names for list output.
func EmployerNames(employers []models.Employer) map[string]string {
	names := make(map[string]string, len(employers))
	for _, e := range employers {
		names[e.ID] = e.Name
	}
	return names
}
