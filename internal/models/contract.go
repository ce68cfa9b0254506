package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/mozd/internal/constants"
)

// ContractWork is a fixed lump-sum job.
type ContractWork struct {
	ID          string          `json:"id"`
	EmployerID  string          `json:"employerId"`
	Title       string          `json:"title"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	StartDate   string          `json:"startDate"`
	EndDate     *string         `json:"endDate,omitempty"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// IsCompleted reports whether the contract is marked completed.
func (c ContractWork) IsCompleted() bool {
	return c.Status == constants.ContractCompleted
}

// ToggleStatus flips the contract between in-progress and completed.
func (c *ContractWork) ToggleStatus() {
	if c.IsCompleted() {
		c.Status = constants.ContractInProgress
	} else {
		c.Status = constants.ContractCompleted
	}
}

// StatusLabel returns the display label of the status.
func (c ContractWork) StatusLabel() string {
	if c.IsCompleted() {
		return "تکمیل شده"
	}
	return "در حال انجام"
}

// Validate checks field rules for a contract.
func (c ContractWork) Validate() error {
	var v ValidationErrors

	checkEmployerRef(&v, c.EmployerID)

	title := strings.TrimSpace(c.Title)
	switch {
	case title == "":
		v.add("title", msgRequired)
	case utf8.RuneCountInString(title) > constants.ContractTitleMax:
		v.add("title", maxLength(constants.ContractTitleMax))
	}

	checkPositive(&v, "totalAmount", c.TotalAmount)
	checkDate(&v, "startDate", c.StartDate)

	if c.EndDate != nil && *c.EndDate != "" {
		switch {
		case !ValidDate(*c.EndDate):
			v.add("endDate", msgInvalidDate)
		case ValidDate(c.StartDate) && *c.EndDate < c.StartDate:
			v.add("endDate", msgEndBeforeStart)
		}
	}

	checkDescription(&v, c.Description)

	if c.Status != constants.ContractInProgress && c.Status != constants.ContractCompleted {
		v.add("status", msgInvalidStatus)
	}

	return v.orNil()
}
