package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/jalali"
	"github.com/julianstephens/mozd/internal/ledger"
	"github.com/julianstephens/mozd/internal/logger"
	"github.com/julianstephens/mozd/internal/models"
	"github.com/julianstephens/mozd/internal/report"
	"github.com/julianstephens/mozd/internal/tui/components/records"
	"github.com/julianstephens/mozd/internal/utils"
)

const msgNoEmployers = "ابتدا یک کارفرما اضافه کنید"

// enterForm remembers the tab to return to and shows the form.
func (m *Model) enterForm(state constants.SessionState) tea.Cmd {
	if m.isTab() {
		m.previousState = m.state
	}
	m.state = state
	m.status = ""
	return m.form.Init()
}

// leaveForm drops the active form and returns to the tab it was opened from.
func (m *Model) leaveForm() {
	m.form = nil
	m.employerForm = nil
	m.workDayForm = nil
	m.contractForm = nil
	m.paymentForm = nil
	m.settingsForm = nil
	m.onboardingForm = nil
	m.state = m.previousState
}

// defaultEmployer is preselected on new records: the filtered employer, or
// the only employer there is.
func (m Model) defaultEmployer() string {
	if m.filter.EmployerID != "" {
		return m.filter.EmployerID
	}
	if len(m.ds.Employers) == 1 {
		return m.ds.Employers[0].ID
	}
	return ""
}

func (m *Model) openEmployerForm(e *models.Employer) tea.Cmd {
	fm := &EmployerFormModel{Color: models.NextColor(len(m.ds.Employers))}
	if e != nil {
		fm = &EmployerFormModel{ID: e.ID, Name: e.Name, Color: e.Color, Wage: wageText(*e)}
	}
	m.employerForm = fm
	m.form = NewEmployerForm(fm)
	return m.enterForm(constants.StateEmployerForm)
}

func (m *Model) openWorkDayForm(w *models.WorkDay) tea.Cmd {
	if len(m.ds.Employers) == 0 {
		m.setError(msgNoEmployers)
		return nil
	}

	fm := &WorkDayFormModel{
		EmployerID:    m.defaultEmployer(),
		Date:          m.formDate(utils.Today()),
		Hours:         fmt.Sprint(constants.HoursPerDay),
		originalHours: fmt.Sprint(constants.HoursPerDay),
	}
	if w != nil {
		fm = &WorkDayFormModel{
			ID:            w.ID,
			EmployerID:    w.EmployerID,
			Date:          m.formDate(w.Date),
			Hours:         fmt.Sprint(w.Hours),
			Description:   w.Description,
			originalHours: fmt.Sprint(w.Hours),
		}
		if w.Overtime != nil {
			fm.Overtime = fmt.Sprint(*w.Overtime)
		}
	}
	if e, ok := m.ds.Employer(fm.EmployerID); ok {
		if wage, err := ledger.WageFor(e, m.ds.Settings); err == nil {
			fm.Wage = wage.String()
		}
	}

	m.workDayForm = fm
	m.form = m.NewWorkDayForm(fm)
	return m.enterForm(constants.StateWorkDayForm)
}

func (m *Model) openContractForm(c *models.ContractWork) tea.Cmd {
	if len(m.ds.Employers) == 0 {
		m.setError(msgNoEmployers)
		return nil
	}

	fm := &ContractFormModel{
		EmployerID: m.defaultEmployer(),
		StartDate:  m.formDate(utils.Today()),
		Status:     constants.ContractInProgress,
	}
	if c != nil {
		fm = &ContractFormModel{
			ID:          c.ID,
			EmployerID:  c.EmployerID,
			Title:       c.Title,
			Amount:      c.TotalAmount.String(),
			StartDate:   m.formDate(c.StartDate),
			Status:      c.Status,
			Description: c.Description,
		}
		if c.EndDate != nil {
			fm.EndDate = m.formDate(*c.EndDate)
		}
	}

	m.contractForm = fm
	m.form = m.NewContractForm(fm)
	return m.enterForm(constants.StateContractForm)
}

func (m *Model) openPaymentForm(p *models.Payment) tea.Cmd {
	if len(m.ds.Employers) == 0 {
		m.setError(msgNoEmployers)
		return nil
	}

	fm := &PaymentFormModel{
		EmployerID: m.defaultEmployer(),
		Method:     constants.PaymentMethodOrder[0],
		Date:       m.formDate(utils.Today()),
	}
	if p != nil {
		fm = &PaymentFormModel{
			ID:          p.ID,
			EmployerID:  p.EmployerID,
			Amount:      p.Amount.String(),
			Method:      p.Method,
			Date:        m.formDate(p.Date),
			Description: p.Description,
		}
	}

	m.paymentForm = fm
	m.form = m.NewPaymentForm(fm)
	return m.enterForm(constants.StatePaymentForm)
}

func (m *Model) openSettingsForm() tea.Cmd {
	fm := &SettingsFormModel{}
	if m.ds.Settings.HasDefaultWage() {
		fm.DefaultWage = m.ds.Settings.DefaultWage.String()
	}
	m.settingsForm = fm
	m.form = NewSettingsForm(fm)
	return m.enterForm(constants.StateSettingsForm)
}

func (m *Model) startOnboarding() {
	m.previousState = constants.StateDashboard
	m.state = constants.StateOnboarding
	m.onboardingForm = &OnboardingFormModel{}
	m.form = NewOnboardingForm(m.onboardingForm)
}

// submitForm saves the active form's record.
func (m *Model) submitForm() error {
	switch m.state {
	case constants.StateEmployerForm:
		return m.saveEmployer(m.employerForm)
	case constants.StateWorkDayForm:
		return m.saveWorkDay(m.workDayForm)
	case constants.StateContractForm:
		return m.saveContract(m.contractForm)
	case constants.StatePaymentForm:
		return m.savePayment(m.paymentForm)
	case constants.StateSettingsForm:
		return m.saveSettings(m.settingsForm)
	case constants.StateOnboarding:
		return m.completeOnboarding(m.onboardingForm)
	}
	return nil
}

func parseOptionalWage(s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	w, err := utils.ParseAmount(s)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (m *Model) saveEmployer(fm *EmployerFormModel) error {
	wage, err := parseOptionalWage(fm.Wage)
	if err != nil {
		return err
	}

	e := models.Employer{ID: fm.ID, Name: strings.TrimSpace(fm.Name), Color: fm.Color, Wage: wage}
	if e.ID == "" {
		e.ID = models.NewID()
		if err := m.store.AddEmployer(e); err != nil {
			return err
		}
		logger.Info("employer added", "id", e.ID)
		m.setStatus(fmt.Sprintf("کارفرما «%s» اضافه شد", e.Name))
		return nil
	}

	existing, err := m.store.GetEmployer(e.ID)
	if err != nil {
		return err
	}
	e.CreatedAt = existing.CreatedAt
	if err := m.store.UpdateEmployer(e); err != nil {
		return err
	}
	m.setStatus(fmt.Sprintf("کارفرما «%s» ویرایش شد", e.Name))
	return nil
}

// entryWage picks the typed wage if any, else the employer or default wage.
func (m Model) entryWage(employer models.Employer, typed string) (decimal.Decimal, error) {
	override, err := parseOptionalWage(typed)
	if err != nil {
		return decimal.Zero, err
	}
	if override != nil {
		return *override, nil
	}
	return ledger.WageFor(employer, m.ds.Settings)
}

func (m *Model) saveWorkDay(fm *WorkDayFormModel) error {
	employer, err := m.store.GetEmployer(fm.EmployerID)
	if err != nil {
		return err
	}
	date, err := jalali.ParseInput(fm.Date, utils.Now())
	if err != nil {
		return err
	}
	hours, err := utils.ParseHours(fm.Hours)
	if err != nil {
		return err
	}
	overtime, err := parseOvertime(fm.Overtime)
	if err != nil {
		return err
	}

	day := models.WorkDay{ID: fm.ID}
	if fm.ID != "" {
		if day, err = m.store.GetWorkDay(fm.ID); err != nil {
			return err
		}
	}
	day.EmployerID = employer.ID
	day.Date = date
	day.Hours = hours
	day.Overtime = overtime
	day.Description = strings.TrimSpace(fm.Description)

	wage, err := m.entryWage(employer, fm.Wage)
	switch {
	case err == nil:
		day.Amount = ledger.DailyAmount(wage, hours)
	case errors.Is(err, models.ErrNoWage) && fm.ID != "" && fm.Hours == fm.originalHours:
		// nothing to recompute from; keep the recorded amount
	default:
		return err
	}

	if fm.ID == "" {
		day.ID = models.NewID()
		if err := m.store.AddWorkDay(day); err != nil {
			return err
		}
		logger.Info("work day added", "id", day.ID, "employer", employer.ID)
	} else if err := m.store.UpdateWorkDay(day); err != nil {
		return err
	}

	m.setStatus(fmt.Sprintf("روز کاری %s برای %s ثبت شد: %s",
		m.date(day.Date), employer.Name, m.cfg.NumberFormat().Currency(ledger.TotalPay(day))))
	return nil
}

func (m *Model) saveContract(fm *ContractFormModel) error {
	amount, err := utils.ParseAmount(fm.Amount)
	if err != nil {
		return err
	}
	start, err := jalali.ParseInput(fm.StartDate, utils.Now())
	if err != nil {
		return err
	}
	var end *string
	if strings.TrimSpace(fm.EndDate) != "" {
		e, err := jalali.ParseInput(fm.EndDate, utils.Now())
		if err != nil {
			return err
		}
		end = &e
	}

	c := models.ContractWork{ID: fm.ID}
	if fm.ID != "" {
		if c, err = m.store.GetContract(fm.ID); err != nil {
			return err
		}
	}
	c.EmployerID = fm.EmployerID
	c.Title = strings.TrimSpace(fm.Title)
	c.TotalAmount = amount
	c.StartDate = start
	c.EndDate = end
	c.Status = fm.Status
	c.Description = strings.TrimSpace(fm.Description)

	if fm.ID == "" {
		c.ID = models.NewID()
		if err := m.store.AddContract(c); err != nil {
			return err
		}
		logger.Info("contract added", "id", c.ID, "employer", c.EmployerID)
	} else if err := m.store.UpdateContract(c); err != nil {
		return err
	}

	m.setStatus(fmt.Sprintf("کار کنتراتی «%s» ثبت شد", c.Title))
	return nil
}

func (m *Model) savePayment(fm *PaymentFormModel) error {
	amount, err := utils.ParseAmount(fm.Amount)
	if err != nil {
		return err
	}
	date, err := jalali.ParseInput(fm.Date, utils.Now())
	if err != nil {
		return err
	}

	p := models.Payment{ID: fm.ID}
	if fm.ID != "" {
		if p, err = m.store.GetPayment(fm.ID); err != nil {
			return err
		}
	}
	p.EmployerID = fm.EmployerID
	p.Amount = amount
	p.Method = fm.Method
	p.Date = date
	p.Description = strings.TrimSpace(fm.Description)

	if fm.ID == "" {
		p.ID = models.NewID()
		if err := m.store.AddPayment(p); err != nil {
			return err
		}
		logger.Info("payment added", "id", p.ID, "employer", p.EmployerID)
	} else if err := m.store.UpdatePayment(p); err != nil {
		return err
	}

	m.setStatus(fmt.Sprintf("دریافتی %s ثبت شد", m.cfg.NumberFormat().Currency(p.Amount)))
	return nil
}

func (m *Model) saveSettings(fm *SettingsFormModel) error {
	wage, err := parseOptionalWage(fm.DefaultWage)
	if err != nil {
		return err
	}
	settings := m.ds.Settings
	settings.DefaultWage = wage
	if err := m.store.SaveSettings(settings); err != nil {
		return err
	}
	m.setStatus("تنظیمات ذخیره شد")
	return nil
}

// completeOnboarding saves whatever the welcome form collected and marks
// onboarding as done.
func (m *Model) completeOnboarding(fm *OnboardingFormModel) error {
	wage, err := parseOptionalWage(fm.DefaultWage)
	if err != nil {
		return err
	}

	if name := strings.TrimSpace(fm.EmployerName); name != "" {
		if err := m.saveEmployer(&EmployerFormModel{
			Name:  name,
			Color: models.NextColor(len(m.ds.Employers)),
			Wage:  fm.EmployerWage,
		}); err != nil {
			return err
		}
	}

	settings, err := m.store.GetSettings()
	if err != nil {
		return err
	}
	if wage != nil {
		settings.DefaultWage = wage
	}
	settings.OnboardingCompleted = true
	if err := m.store.SaveSettings(settings); err != nil {
		return err
	}
	m.setStatus("خوش آمدید! برای ثبت روز کاری به زبانه Work بروید")
	return nil
}

// skipOnboarding marks onboarding as done without saving anything else.
func (m *Model) skipOnboarding() error {
	settings, err := m.store.GetSettings()
	if err != nil {
		return err
	}
	settings.OnboardingCompleted = true
	return m.store.SaveSettings(settings)
}

func (m *Model) deleteRecord(item records.Item) error {
	var err error
	switch item.Kind {
	case records.KindEmployer:
		err = m.store.DeleteEmployer(item.ID)
	case records.KindWorkDay:
		err = m.store.DeleteWorkDay(item.ID)
	case records.KindContract:
		err = m.store.DeleteContract(item.ID)
	case records.KindPayment:
		err = m.store.DeletePayment(item.ID)
	}
	if err != nil {
		return err
	}
	logger.Info("record deleted", "id", item.ID, "kind", item.Kind)
	m.setStatus("حذف شد")
	return nil
}

func (m *Model) toggleContract(id string) error {
	c, err := m.store.GetContract(id)
	if err != nil {
		return err
	}
	c.ToggleStatus()
	if err := m.store.UpdateContract(c); err != nil {
		return err
	}
	m.setStatus(fmt.Sprintf("وضعیت «%s»: %s", c.Title, c.StatusLabel()))
	return nil
}

// exportReport writes the report for the current filter to the report directory.
func (m *Model) exportReport(format report.Format) (string, error) {
	opts := report.Options{
		Calendar:    m.cfg.Calendar,
		Number:      m.cfg.NumberFormat(),
		FontRegular: m.cfg.FontRegular,
		FontBold:    m.cfg.FontBold,
		Now:         utils.Now(),
	}
	path := report.DefaultPath(m.cfg.ReportDir, format, opts.Now, m.cfg.Calendar)
	if err := report.WriteFile(path, format, report.Build(m.ds, m.filter, opts), opts); err != nil {
		return "", err
	}
	logger.Info("report written", "path", path, "format", format)
	m.setStatus("گزارش ذخیره شد: " + path)
	return path, nil
}
