package sqlite

import (
	"fmt"

	"github.com/julianstephens/mozd/internal/logger"
	"github.com/julianstephens/mozd/internal/models"
)

// ReplaceAll deletes every record and inserts ds in a single transaction.
// Employers go in first so foreign keys hold throughout.
func (s *Store) ReplaceAll(ds models.Dataset) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"work_days", "payments", "contract_works", "employers", "settings"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, e := range ds.Employers {
		_, err := tx.Exec(`INSERT INTO employers (`+employerColumns+`) VALUES (?, ?, ?, ?, ?)`,
			e.ID, e.Name, e.Color, nullWage(e.Wage), formatTime(e.CreatedAt))
		if err != nil {
			return fmt.Errorf("failed to insert employer %s: %w", e.ID, err)
		}
	}
	for _, w := range ds.WorkDays {
		if err := insertWorkDay(tx, w); err != nil {
			return fmt.Errorf("work day %s: %w", w.ID, err)
		}
	}
	for _, c := range ds.Contracts {
		if err := insertContract(tx, c); err != nil {
			return fmt.Errorf("contract %s: %w", c.ID, err)
		}
	}
	for _, p := range ds.Payments {
		if err := insertPayment(tx, p); err != nil {
			return fmt.Errorf("payment %s: %w", p.ID, err)
		}
	}
	if err := saveSettings(tx, ds.Settings); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Info("storage replaced", "path", s.path, "employers", len(ds.Employers), "work_days", len(ds.WorkDays))
	return nil
}
