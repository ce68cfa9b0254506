package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/mozd/internal/constants"
)

// WorkDay is one daily-wage work session. Amount is fixed when the day is recorded.
type WorkDay struct {
	ID          string          `json:"id"`
	EmployerID  string          `json:"employerId"`
	Date        string          `json:"date"`
	Hours       float64         `json:"hours"`
	Amount      decimal.Decimal `json:"amount"`
	Overtime    *float64        `json:"overtime,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// OvertimeHours returns the recorded overtime, or 0.
func (w WorkDay) OvertimeHours() float64 {
	if w.Overtime == nil {
		return 0
	}
	return *w.Overtime
}

// Validate checks field rules for a work day.
func (w WorkDay) Validate() error {
	var v ValidationErrors

	checkEmployerRef(&v, w.EmployerID)
	checkDate(&v, "date", w.Date)

	if w.Hours <= 0 || w.Hours > constants.MaxHoursPerDay {
		v.add("hours", msgHoursRange)
	}
	checkPositive(&v, "amount", w.Amount)

	if w.Overtime != nil && (*w.Overtime < 0 || *w.Overtime > constants.MaxOvertimeHours) {
		v.add("overtime", msgOvertimeRange)
	}
	checkDescription(&v, w.Description)

	return v.orNil()
}
