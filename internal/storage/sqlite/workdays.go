package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/mozd/internal/models"
)

const workDayColumns = `id, employer_id, date, hours, amount, overtime, description, created_at`

func scanWorkDay(row scanner) (models.WorkDay, error) {
	var w models.WorkDay
	var overtime sql.NullFloat64
	var createdAt string
	if err := row.Scan(&w.ID, &w.EmployerID, &w.Date, &w.Hours, &w.Amount, &overtime, &w.Description, &createdAt); err != nil {
		return models.WorkDay{}, err
	}
	if overtime.Valid {
		o := overtime.Float64
		w.Overtime = &o
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return models.WorkDay{}, err
	}
	w.CreatedAt = t
	return w, nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func insertWorkDay(tx *sql.Tx, w models.WorkDay) error {
	_, err := tx.Exec(`INSERT INTO work_days (`+workDayColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.EmployerID, w.Date, w.Hours, w.Amount, nullFloat(w.Overtime), w.Description, formatTime(w.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert work day: %w", err)
	}
	return nil
}

func (s *Store) AddWorkDay(w models.WorkDay) error {
	if err := requireID(w.ID); err != nil {
		return err
	}
	if err := w.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := requireEmployer(tx, w.EmployerID); err != nil {
		return err
	}
	if err := insertWorkDay(tx, w); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) GetWorkDay(id string) (models.WorkDay, error) {
	row := s.db.QueryRow(`SELECT `+workDayColumns+` FROM work_days WHERE id = ?`, id)
	w, err := scanWorkDay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.WorkDay{}, notFound("work day", id)
	}
	return w, err
}

func (s *Store) GetAllWorkDays() ([]models.WorkDay, error) {
	rows, err := s.db.Query(`SELECT ` + workDayColumns + ` FROM work_days ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := []models.WorkDay{}
	for rows.Next() {
		w, err := scanWorkDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, w)
	}
	return days, rows.Err()
}

func (s *Store) UpdateWorkDay(w models.WorkDay) error {
	if err := w.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := requireEmployer(tx, w.EmployerID); err != nil {
		return err
	}
	res, err := tx.Exec(`UPDATE work_days
		SET employer_id = ?, date = ?, hours = ?, amount = ?, overtime = ?, description = ?
		WHERE id = ?`,
		w.EmployerID, w.Date, w.Hours, w.Amount, nullFloat(w.Overtime), w.Description, w.ID)
	if err != nil {
		return fmt.Errorf("failed to update work day: %w", err)
	}
	if err := checkAffected(res, "work day", w.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) DeleteWorkDay(id string) error {
	res, err := s.db.Exec("DELETE FROM work_days WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete work day: %w", err)
	}
	return checkAffected(res, "work day", id)
}
