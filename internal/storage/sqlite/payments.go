package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/mozd/internal/models"
)

const paymentColumns = `id, employer_id, amount, payment_method, date, description, created_at`

func scanPayment(row scanner) (models.Payment, error) {
	var p models.Payment
	var createdAt string
	if err := row.Scan(&p.ID, &p.EmployerID, &p.Amount, &p.Method, &p.Date, &p.Description, &createdAt); err != nil {
		return models.Payment{}, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return models.Payment{}, err
	}
	p.CreatedAt = t
	return p, nil
}

func insertPayment(tx *sql.Tx, p models.Payment) error {
	_, err := tx.Exec(`INSERT INTO payments (`+paymentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.EmployerID, p.Amount, p.Method, p.Date, p.Description, formatTime(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

func (s *Store) AddPayment(p models.Payment) error {
	if err := requireID(p.ID); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := requireEmployer(tx, p.EmployerID); err != nil {
		return err
	}
	if err := insertPayment(tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) GetPayment(id string) (models.Payment, error) {
	row := s.db.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id)
	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, notFound("payment", id)
	}
	return p, err
}

func (s *Store) GetAllPayments() ([]models.Payment, error) {
	rows, err := s.db.Query(`SELECT ` + paymentColumns + ` FROM payments ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (s *Store) UpdatePayment(p models.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := requireEmployer(tx, p.EmployerID); err != nil {
		return err
	}
	res, err := tx.Exec(`UPDATE payments
		SET employer_id = ?, amount = ?, payment_method = ?, date = ?, description = ?
		WHERE id = ?`,
		p.EmployerID, p.Amount, p.Method, p.Date, p.Description, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if err := checkAffected(res, "payment", p.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) DeletePayment(id string) error {
	res, err := s.db.Exec("DELETE FROM payments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return checkAffected(res, "payment", id)
}
