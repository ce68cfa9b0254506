package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/logger"
	"github.com/julianstephens/mozd/internal/models"
)

// Format formats an error message with a consistent "Error: " prefix.
// Field validation failures are listed one per line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	if ve, ok := models.AsValidationErrors(err); ok {
		lines := make([]string, 0, len(ve))
		for _, fe := range ve {
			lines = append(lines, "  "+fe.Error())
		}
		return "Error: invalid input\n" + strings.Join(lines, "\n")
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// UserMessage returns the message shown to the user for known domain errors,
// falling back to err.Error().
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, models.ErrEmployerInUse):
		return constants.EmployerInUseText
	case stderrors.Is(err, models.ErrDuplicateEmployerName):
		return "کارفرمایی با این نام قبلاً ثبت شده است"
	case stderrors.Is(err, models.ErrNoWage):
		return "دستمزد روزانه برای کارفرما یا دستمزد پیش‌فرض تعیین نشده است"
	}
	if ve, ok := models.AsValidationErrors(err); ok && len(ve) > 0 {
		return ve[0].Message
	}
	return err.Error()
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
