package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/jalali"
	"github.com/julianstephens/mozd/internal/models"
	"github.com/julianstephens/mozd/internal/utils"
)

// EmployerFormModel backs the employer form. An empty ID adds a new employer.
type EmployerFormModel struct {
	ID    string
	Name  string
	Color string
	Wage  string
}

// WorkDayFormModel backs the work day form. Wage is only used to compute
// the amount and is not stored on the work day.
type WorkDayFormModel struct {
	ID          string
	EmployerID  string
	Date        string
	Hours       string
	Overtime    string
	Wage        string
	Description string

	// hours as loaded, to tell whether an edit changed them
	originalHours string
}

// ContractFormModel backs the contract form.
type ContractFormModel struct {
	ID          string
	EmployerID  string
	Title       string
	Amount      string
	StartDate   string
	EndDate     string
	Status      string
	Description string
}

// PaymentFormModel backs the payment form.
type PaymentFormModel struct {
	ID          string
	EmployerID  string
	Amount      string
	Method      string
	Date        string
	Description string
}

// SettingsFormModel backs the settings form.
type SettingsFormModel struct {
	DefaultWage string
}

// OnboardingFormModel backs the first-run welcome form.
type OnboardingFormModel struct {
	DefaultWage  string
	EmployerName string
	EmployerWage string
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("این فیلد الزامی است")
	}
	return nil
}

func validateAmount(s string) error {
	d, err := utils.ParseAmount(s)
	if err != nil {
		return fmt.Errorf("مبلغ نامعتبر است")
	}
	if !d.IsPositive() {
		return fmt.Errorf("مبلغ باید بیشتر از صفر باشد")
	}
	return nil
}

func validateOptionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateAmount(s)
}

func validateHours(s string) error {
	h, err := utils.ParseHours(s)
	if err != nil {
		return fmt.Errorf("ساعت نامعتبر است")
	}
	if h <= 0 || h > constants.MaxHoursPerDay {
		return fmt.Errorf("ساعت باید بین ۰ و %d باشد", constants.MaxHoursPerDay)
	}
	return nil
}

func validateOvertime(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := parseOvertime(s); err != nil {
		return fmt.Errorf("اضافه‌کار نامعتبر است")
	}
	return nil
}

func validateDate(s string) error {
	if _, err := jalali.ParseInput(s, utils.Now()); err != nil {
		return fmt.Errorf("تاریخ نامعتبر است (مثال: ۱۴۰۳/۰۵/۱۲)")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateDate(s)
}

// parseOvertime parses optional overtime hours. Empty input means none.
func parseOvertime(s string) (*float64, error) {
	s = strings.TrimSpace(utils.ToLatinDigits(s))
	if s == "" {
		return nil, nil
	}
	ot, err := strconv.ParseFloat(s, 64)
	if err != nil || ot < 0 {
		return nil, fmt.Errorf("invalid overtime %q", s)
	}
	return &ot, nil
}

func (m Model) employerOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(m.ds.Employers))
	for _, e := range m.ds.Employers {
		opts = append(opts, huh.NewOption(e.Name, e.ID))
	}
	return opts
}

// NewEmployerForm creates the form for adding or editing an employer
func NewEmployerForm(fm *EmployerFormModel) *huh.Form {
	colors := make([]huh.Option[string], 0, len(constants.EmployerColors))
	for _, c := range constants.EmployerColors {
		colors = append(colors, huh.NewOption(c, c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("نام کارفرما").
				Value(&fm.Name).
				Validate(validateRequired),
			huh.NewSelect[string]().
				Title("رنگ").
				Options(colors...).
				Value(&fm.Color),
			huh.NewInput().
				Title("دستمزد روزانه (اختیاری)").
				Description("برای ۸ ساعت کار").
				Value(&fm.Wage).
				Validate(validateOptionalAmount),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewWorkDayForm creates the form for recording a day of work
func (m Model) NewWorkDayForm(fm *WorkDayFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("کارفرما").
				Options(m.employerOptions()...).
				Value(&fm.EmployerID).
				Validate(validateRequired),
			huh.NewInput().
				Title("تاریخ").
				Description("۱۴۰۳/۰۵/۱۲، امروز یا دیروز").
				Value(&fm.Date).
				Validate(validateDate),
			huh.NewInput().
				Title("ساعت کار").
				Value(&fm.Hours).
				Validate(validateHours),
			huh.NewInput().
				Title("اضافه‌کار (ساعت، اختیاری)").
				Value(&fm.Overtime).
				Validate(validateOvertime),
			huh.NewInput().
				Title("دستمزد روزانه").
				Description("خالی: دستمزد کارفرما یا دستمزد پیش‌فرض").
				Value(&fm.Wage).
				Validate(validateOptionalAmount),
			huh.NewText().
				Title("توضیحات").
				Value(&fm.Description),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewContractForm creates the form for a contract job
func (m Model) NewContractForm(fm *ContractFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("کارفرما").
				Options(m.employerOptions()...).
				Value(&fm.EmployerID).
				Validate(validateRequired),
			huh.NewInput().
				Title("عنوان کار").
				Value(&fm.Title).
				Validate(validateRequired),
			huh.NewInput().
				Title("مبلغ کل").
				Value(&fm.Amount).
				Validate(validateAmount),
			huh.NewInput().
				Title("تاریخ شروع").
				Value(&fm.StartDate).
				Validate(validateDate),
			huh.NewInput().
				Title("تاریخ پایان (اختیاری)").
				Value(&fm.EndDate).
				Validate(validateOptionalDate),
			huh.NewSelect[string]().
				Title("وضعیت").
				Options(
					huh.NewOption("در حال انجام", constants.ContractInProgress),
					huh.NewOption("تکمیل شده", constants.ContractCompleted),
				).
				Value(&fm.Status),
			huh.NewText().
				Title("توضیحات").
				Value(&fm.Description),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewPaymentForm creates the form for a payment received
func (m Model) NewPaymentForm(fm *PaymentFormModel) *huh.Form {
	methods := make([]huh.Option[string], 0, len(constants.PaymentMethodOrder))
	for _, code := range constants.PaymentMethodOrder {
		methods = append(methods, huh.NewOption(constants.PaymentMethods[code], code))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("کارفرما").
				Options(m.employerOptions()...).
				Value(&fm.EmployerID).
				Validate(validateRequired),
			huh.NewInput().
				Title("مبلغ").
				Value(&fm.Amount).
				Validate(validateAmount),
			huh.NewSelect[string]().
				Title("روش پرداخت").
				Options(methods...).
				Value(&fm.Method),
			huh.NewInput().
				Title("تاریخ").
				Value(&fm.Date).
				Validate(validateDate),
			huh.NewText().
				Title("توضیحات").
				Value(&fm.Description),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewSettingsForm creates the settings form
func NewSettingsForm(fm *SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("دستمزد روزانه پیش‌فرض").
				Description("برای کارفرمایانی که دستمزد ندارند. خالی: بدون پیش‌فرض").
				Value(&fm.DefaultWage).
				Validate(validateOptionalAmount),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewOnboardingForm creates the first-run welcome form
func NewOnboardingForm(fm *OnboardingFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("به مزد خوش آمدید").
				Description("دستمزد پیش‌فرض و اولین کارفرما را وارد کنید. برای رد شدن esc را بزنید."),
			huh.NewInput().
				Title("دستمزد روزانه پیش‌فرض (اختیاری)").
				Value(&fm.DefaultWage).
				Validate(validateOptionalAmount),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("نام اولین کارفرما (اختیاری)").
				Value(&fm.EmployerName),
			huh.NewInput().
				Title("دستمزد این کارفرما (اختیاری)").
				Value(&fm.EmployerWage).
				Validate(validateOptionalAmount),
		),
	).WithTheme(huh.ThemeDracula())
}

// formDate renders a stored date for editing in a form field.
func (m Model) formDate(iso string) string {
	return jalali.Format(iso, m.cfg.Calendar, false)
}

// wageText renders an employer's own wage for a form field.
func wageText(e models.Employer) string {
	if e.HasWage() {
		return e.Wage.String()
	}
	return ""
}
