package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/mozd/internal/logger"
	"github.com/julianstephens/mozd/internal/models"
)

const employerColumns = `id, name, color, wage, created_at`

func scanEmployer(row scanner) (models.Employer, error) {
	var e models.Employer
	var wage decimal.NullDecimal
	var createdAt string
	if err := row.Scan(&e.ID, &e.Name, &e.Color, &wage, &createdAt); err != nil {
		return models.Employer{}, err
	}
	if wage.Valid {
		e.Wage = &wage.Decimal
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return models.Employer{}, err
	}
	e.CreatedAt = t
	return e, nil
}

func nullWage(w *decimal.Decimal) decimal.NullDecimal {
	if w == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *w, Valid: true}
}

func (s *Store) checkUniqueName(tx *sql.Tx, e models.Employer) error {
	rows, err := tx.Query("SELECT id, name FROM employers")
	if err != nil {
		return fmt.Errorf("failed to read employer names: %w", err)
	}
	defer rows.Close()

	var existing []models.Employer
	for rows.Next() {
		var other models.Employer
		if err := rows.Scan(&other.ID, &other.Name); err != nil {
			return err
		}
		existing = append(existing, other)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return models.CheckUniqueName(existing, e)
}

func (s *Store) AddEmployer(e models.Employer) error {
	if err := requireID(e.ID); err != nil {
		return err
	}
	if err := e.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.checkUniqueName(tx, e); err != nil {
		return err
	}
	_, err = tx.Exec(`INSERT INTO employers (`+employerColumns+`) VALUES (?, ?, ?, ?, ?)`,
		e.ID, strings.TrimSpace(e.Name), e.Color, nullWage(e.Wage), formatTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert employer: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Debug("employer added", "id", e.ID)
	return nil
}

func (s *Store) GetEmployer(id string) (models.Employer, error) {
	row := s.db.QueryRow(`SELECT `+employerColumns+` FROM employers WHERE id = ?`, id)
	e, err := scanEmployer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Employer{}, notFound("employer", id)
	}
	return e, err
}

func (s *Store) GetAllEmployers() ([]models.Employer, error) {
	rows, err := s.db.Query(`SELECT ` + employerColumns + ` FROM employers ORDER BY created_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employers := []models.Employer{}
	for rows.Next() {
		e, err := scanEmployer(rows)
		if err != nil {
			return nil, err
		}
		employers = append(employers, e)
	}
	return employers, rows.Err()
}

func (s *Store) UpdateEmployer(e models.Employer) error {
	if err := e.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.checkUniqueName(tx, e); err != nil {
		return err
	}
	res, err := tx.Exec(`UPDATE employers SET name = ?, color = ?, wage = ? WHERE id = ?`,
		strings.TrimSpace(e.Name), e.Color, nullWage(e.Wage), e.ID)
	if err != nil {
		return fmt.Errorf("failed to update employer: %w", err)
	}
	if err := checkAffected(res, "employer", e.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) DeleteEmployer(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := requireEmployer(tx, id); err != nil {
		return err
	}

	var days, payments int
	err = tx.QueryRow(`SELECT
		(SELECT count(*) FROM work_days WHERE employer_id = ?),
		(SELECT count(*) FROM payments WHERE employer_id = ?)`, id, id).Scan(&days, &payments)
	if err != nil {
		return fmt.Errorf("failed to count employer references: %w", err)
	}
	if days > 0 || payments > 0 {
		return fmt.Errorf("employer %s has %d work days and %d payments: %w", id, days, payments, models.ErrEmployerInUse)
	}

	if _, err := tx.Exec("DELETE FROM contract_works WHERE employer_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete employer contracts: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM employers WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete employer: %w", err)
	}
	return tx.Commit()
}
