package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/models"
)

const contractColumns = `id, employer_id, title, total_amount, start_date, end_date, description, status, created_at`

func scanContract(row scanner) (models.ContractWork, error) {
	var c models.ContractWork
	var endDate sql.NullString
	var createdAt string
	if err := row.Scan(&c.ID, &c.EmployerID, &c.Title, &c.TotalAmount, &c.StartDate, &endDate, &c.Description, &c.Status, &createdAt); err != nil {
		return models.ContractWork{}, err
	}
	if endDate.Valid && endDate.String != "" {
		c.EndDate = &endDate.String
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return models.ContractWork{}, err
	}
	c.CreatedAt = t
	return c, nil
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func insertContract(tx *sql.Tx, c models.ContractWork) error {
	_, err := tx.Exec(`INSERT INTO contract_works (`+contractColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.EmployerID, c.Title, c.TotalAmount, c.StartDate, nullString(c.EndDate), c.Description, c.Status, formatTime(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert contract: %w", err)
	}
	return nil
}

func (s *Store) AddContract(c models.ContractWork) error {
	if err := requireID(c.ID); err != nil {
		return err
	}
	if c.Status == "" {
		c.Status = constants.ContractInProgress
	}
	if err := c.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := requireEmployer(tx, c.EmployerID); err != nil {
		return err
	}
	if err := insertContract(tx, c); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) GetContract(id string) (models.ContractWork, error) {
	row := s.db.QueryRow(`SELECT `+contractColumns+` FROM contract_works WHERE id = ?`, id)
	c, err := scanContract(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ContractWork{}, notFound("contract", id)
	}
	return c, err
}

func (s *Store) GetAllContracts() ([]models.ContractWork, error) {
	rows, err := s.db.Query(`SELECT ` + contractColumns + ` FROM contract_works ORDER BY start_date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contracts := []models.ContractWork{}
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

func (s *Store) UpdateContract(c models.ContractWork) error {
	if err := c.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := requireEmployer(tx, c.EmployerID); err != nil {
		return err
	}
	res, err := tx.Exec(`UPDATE contract_works
		SET employer_id = ?, title = ?, total_amount = ?, start_date = ?, end_date = ?, description = ?, status = ?
		WHERE id = ?`,
		c.EmployerID, c.Title, c.TotalAmount, c.StartDate, nullString(c.EndDate), c.Description, c.Status, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update contract: %w", err)
	}
	if err := checkAffected(res, "contract", c.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) DeleteContract(id string) error {
	res, err := s.db.Exec("DELETE FROM contract_works WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	return checkAffected(res, "contract", id)
}
