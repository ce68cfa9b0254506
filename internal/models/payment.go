package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/mozd/internal/constants"
)

// Payment is money received from an employer.
type Payment struct {
	ID          string          `json:"id"`
	EmployerID  string          `json:"employerId"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"paymentMethod"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// MethodLabel returns the display label for the payment method, or the raw code if unknown.
func (p Payment) MethodLabel() string {
	if label, ok := constants.PaymentMethods[p.Method]; ok {
		return label
	}
	return p.Method
}

// ValidPaymentMethod reports whether code is a known payment method.
func ValidPaymentMethod(code string) bool {
	_, ok := constants.PaymentMethods[code]
	return ok
}

// Validate checks field rules for a payment.
func (p Payment) Validate() error {
	var v ValidationErrors

	checkEmployerRef(&v, p.EmployerID)
	checkPositive(&v, "amount", p.Amount)

	switch {
	case strings.TrimSpace(p.Method) == "":
		v.add("paymentMethod", msgRequired)
	case !ValidPaymentMethod(p.Method):
		v.add("paymentMethod", msgInvalidMethod)
	}

	checkDate(&v, "date", p.Date)
	checkDescription(&v, p.Description)

	return v.orNil()
}
