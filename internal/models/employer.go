package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/mozd/internal/constants"
)

// Employer is someone the worker is paid by. Wage is the pay for one 8-hour day.
type Employer struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Color     string           `json:"color"`
	Wage      *decimal.Decimal `json:"wage,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// HasWage reports whether the employer carries its own daily wage.
func (e Employer) HasWage() bool {
	return e.Wage != nil && e.Wage.IsPositive()
}

// Validate checks field rules for an employer.
func (e Employer) Validate() error {
	var v ValidationErrors

	name := strings.TrimSpace(e.Name)
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		v.add("name", msgRequired)
	case n < constants.EmployerNameMin:
		v.add("name", minLength(constants.EmployerNameMin))
	case n > constants.EmployerNameMax:
		v.add("name", maxLength(constants.EmployerNameMax))
	}

	switch {
	case e.Color == "":
		v.add("color", msgRequired)
	case !colorPattern.MatchString(e.Color):
		v.add("color", msgInvalidColor)
	}

	if e.Wage != nil {
		checkPositive(&v, "wage", *e.Wage)
	}

	return v.orNil()
}

// SameName reports whether two employer names collide (trimmed, case-insensitive).
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// CheckUniqueName returns ErrDuplicateEmployerName if another employer in
// existing already uses e's name.
func CheckUniqueName(existing []Employer, e Employer) error {
	for _, other := range existing {
		if other.ID != e.ID && SameName(other.Name, e.Name) {
			return fmt.Errorf("%q: %w", strings.TrimSpace(e.Name), ErrDuplicateEmployerName)
		}
	}
	return nil
}

// NextColor picks the palette colour for the n-th employer.
func NextColor(existing int) string {
	if existing < 0 {
		existing = 0
	}
	return constants.EmployerColors[existing%len(constants.EmployerColors)]
}
