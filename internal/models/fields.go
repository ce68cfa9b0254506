package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/mozd/internal/constants"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func init() {
	// Legacy dumps store money as bare JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

func minLength(n int) string { return fmt.Sprintf("حداقل %d کاراکتر وارد کنید", n) }
func maxLength(n int) string { return fmt.Sprintf("حداکثر %d کاراکتر مجاز است", n) }

// ValidDate reports whether s is a persisted (YYYY-MM-DD) date.
func ValidDate(s string) bool {
	_, err := time.Parse(constants.DateFormat, s)
	return err == nil
}

func checkDate(v *ValidationErrors, field, value string) {
	switch {
	case strings.TrimSpace(value) == "":
		v.add(field, msgRequired)
	case !ValidDate(value):
		v.add(field, msgInvalidDate)
	}
}

func checkPositive(v *ValidationErrors, field string, value decimal.Decimal) {
	if !value.IsPositive() {
		v.add(field, msgPositive)
	}
}

func checkDescription(v *ValidationErrors, value string) {
	if utf8.RuneCountInString(value) > constants.DescriptionMax {
		v.add("description", maxLength(constants.DescriptionMax))
	}
}

func checkEmployerRef(v *ValidationErrors, employerID string) {
	if strings.TrimSpace(employerID) == "" {
		v.add("employerId", msgRequired)
	}
}
