package models

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is wrapped by storage lookups that find no record
	ErrNotFound = errors.New("not found")
	// ErrEmployerInUse is returned when deleting an employer that work days or payments still reference
	ErrEmployerInUse = errors.New("employer has work days or payments")
	// ErrDuplicateEmployerName is returned when an employer name is already taken
	ErrDuplicateEmployerName = errors.New("an employer with this name already exists")
	// ErrNoWage is returned when neither the employer nor the settings carry a wage
	ErrNoWage = errors.New("no wage set for employer and no default wage configured")
)

// Validation messages
const (
	msgRequired       = "این فیلد الزامی است"
	msgPositive       = "مقدار باید بزرگتر از صفر باشد"
	msgInvalidDate    = "تاریخ نامعتبر است"
	msgInvalidColor   = "رنگ نامعتبر است"
	msgHoursRange     = "ساعت کاری باید بین ۰ تا ۲۴ باشد"
	msgOvertimeRange  = "اضافه‌کاری باید بین ۰ تا ۲۴ ساعت باشد"
	msgInvalidMethod  = "روش پرداخت نامعتبر است"
	msgInvalidStatus  = "وضعیت نامعتبر است"
	msgEndBeforeStart = "تاریخ پایان نباید قبل از تاریخ شروع باشد"
)

// FieldError describes a single invalid field
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every invalid field of a record
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

// Field returns the message for the named field, or "" if it is valid.
func (v ValidationErrors) Field(name string) string {
	for _, fe := range v {
		if fe.Field == name {
			return fe.Message
		}
	}
	return ""
}

func (v *ValidationErrors) add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// AsValidationErrors unwraps err into its field errors, if it carries any.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
