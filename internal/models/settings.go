package models

import "github.com/shopspring/decimal"

// Settings represents application-wide settings
type Settings struct {
	DefaultWage         *decimal.Decimal `json:"default_wage,omitempty"` // wage used when an employer has none
	OnboardingCompleted bool             `json:"onboarding_completed"`   // whether the first-run flow has been shown
}

// HasDefaultWage reports whether a usable default wage is set.
func (s Settings) HasDefaultWage() bool {
	return s.DefaultWage != nil && s.DefaultWage.IsPositive()
}

// Validate checks the default wage, if any.
func (s Settings) Validate() error {
	var v ValidationErrors
	if s.DefaultWage != nil {
		checkPositive(&v, "defaultWage", *s.DefaultWage)
	}
	return v.orNil()
}
