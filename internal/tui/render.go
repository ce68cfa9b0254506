package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/jalali"
	"github.com/julianstephens/mozd/internal/ledger"
	"github.com/julianstephens/mozd/internal/models"
	"github.com/julianstephens/mozd/internal/tui/components/records"
	"github.com/julianstephens/mozd/internal/utils"
)

func (m Model) date(iso string) string {
	return jalali.Format(iso, m.cfg.Calendar, m.cfg.PersianDigits)
}

func (m Model) employerName(id string) string {
	if e, ok := m.ds.Employer(id); ok {
		return e.Name
	}
	return constants.UnknownEmployer
}

func (m Model) employerColor(id string) string {
	if e, ok := m.ds.Employer(id); ok {
		return e.Color
	}
	return ""
}

// workItems lists daily work and contracts that pass the filter, daily work first.
func (m Model) workItems() []records.Item {
	num := m.cfg.NumberFormat()
	var items []records.Item

	if m.filter.Daily() {
		for _, w := range m.filter.WorkDays(m.ds) {
			detail := fmt.Sprintf("%s · %s ساعت", m.date(w.Date), num.Hours(w.Hours))
			if ot := w.OvertimeHours(); ot > 0 {
				detail += fmt.Sprintf(" + %s اضافه‌کار", num.Hours(ot))
			}
			detail += " · " + num.Currency(ledger.TotalPay(w))
			if w.Description != "" {
				detail += " · " + w.Description
			}
			items = append(items, records.Item{
				ID:     w.ID,
				Kind:   records.KindWorkDay,
				Label:  m.employerName(w.EmployerID),
				Detail: detail,
				Color:  m.employerColor(w.EmployerID),
			})
		}
	}

	if m.filter.Contract() {
		for _, c := range m.ds.Contracts {
			if !m.filter.Matches(c.EmployerID) {
				continue
			}
			period := m.date(c.StartDate)
			if c.EndDate != nil && *c.EndDate != "" {
				period += " تا " + m.date(*c.EndDate)
			}
			items = append(items, records.Item{
				ID:     c.ID,
				Kind:   records.KindContract,
				Label:  fmt.Sprintf("%s: %s", m.employerName(c.EmployerID), c.Title),
				Detail: fmt.Sprintf("کنترات · %s · %s · %s", period, num.Currency(c.TotalAmount), c.StatusLabel()),
				Color:  m.employerColor(c.EmployerID),
			})
		}
	}
	return items
}

func (m Model) employerItems() []records.Item {
	num := m.cfg.NumberFormat()
	stats := ledger.EmployerStats(m.ds, ledger.Filter{})

	items := make([]records.Item, 0, len(stats))
	for _, s := range stats {
		wage := "بدون دستمزد"
		if s.Employer.HasWage() {
			wage = "دستمزد " + num.Currency(*s.Employer.Wage)
		}
		items = append(items, records.Item{
			ID:     s.Employer.ID,
			Kind:   records.KindEmployer,
			Label:  s.Employer.Name,
			Detail: fmt.Sprintf("%s · %s روز · %s", wage, num.Int(s.DaysCount), num.Currency(s.TotalAmount)),
			Color:  s.Employer.Color,
		})
	}
	return items
}

func (m Model) paymentItems() []records.Item {
	num := m.cfg.NumberFormat()
	items := make([]records.Item, 0, len(m.ds.Payments))
	for _, p := range m.ds.Payments {
		if !m.filter.Matches(p.EmployerID) {
			continue
		}
		detail := fmt.Sprintf("%s · %s · %s", m.date(p.Date), num.Currency(p.Amount), p.MethodLabel())
		if p.Description != "" {
			detail += " · " + p.Description
		}
		items = append(items, records.Item{
			ID:     p.ID,
			Kind:   records.KindPayment,
			Label:  m.employerName(p.EmployerID),
			Detail: detail,
			Color:  m.employerColor(p.EmployerID),
		})
	}
	return items
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

func (m Model) renderDashboard() string {
	num := m.cfg.NumberFormat()
	d := ledger.Summarize(m.ds, utils.Now(), m.cfg.Calendar)
	month := jalali.MonthLabel(d.MonthKey, m.cfg.Calendar, m.cfg.PersianDigits)

	summary := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("خلاصه"),
		row("کل درآمد", num.Currency(d.TotalEarnings)),
		row("  روزمزد", num.Currency(d.DailyEarnings)),
		row("  کنترات", num.Currency(d.ContractEarnings)),
		row("درآمد "+month, num.Currency(d.ThisMonth)),
		row("کل دریافتی", num.Currency(d.TotalPaid)),
		row("مانده", num.Currency(d.Outstanding)),
		row("کارفرمایان", num.Int(d.EmployerCount)),
		row("روزهای کاری", num.Int(d.WorkDayCount)),
		row("کارهای کنتراتی", num.Int(d.ContractCount)),
	)

	var recent []string
	recent = append(recent, titleStyle.Render("آخرین روزهای کاری"))
	if len(d.Recent) == 0 {
		recent = append(recent, "هنوز کاری ثبت نشده است")
	}
	for _, w := range d.Recent {
		recent = append(recent, fmt.Sprintf("%s  %s · %s ساعت · %s",
			m.date(w.Date), m.employerName(w.EmployerID), num.Hours(ledger.Hours(w)), num.Currency(ledger.TotalPay(w))))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		summary,
		sectionStyle.Render(strings.Join(recent, "\n")),
	)
}

// renderReports shows the sections of the printable report for the current filter.
func (m Model) renderReports() string {
	num := m.cfg.NumberFormat()
	var sections []string

	if m.filter.Daily() {
		lines := []string{titleStyle.Render("روزمزد به تفکیک کارفرما")}
		for _, s := range ledger.EmployerStats(m.ds, m.filter) {
			lines = append(lines, fmt.Sprintf("%s: %s روز · %s ساعت · %s · میانگین %s در ساعت",
				s.Employer.Name, num.Int(s.DaysCount), num.Hours(s.TotalHours),
				num.Currency(s.TotalAmount), num.Currency(s.AveragePerHour)))
		}
		sections = append(sections, strings.Join(lines, "\n"))

		lines = []string{titleStyle.Render("روزمزد ماهانه")}
		for _, ms := range ledger.MonthlyStats(m.ds, m.filter, m.cfg.Calendar) {
			lines = append(lines, fmt.Sprintf("%s: %s روز · %s ساعت · %s",
				jalali.MonthLabel(ms.Key, m.cfg.Calendar, m.cfg.PersianDigits),
				num.Int(ms.Days), num.Hours(ms.Hours), num.Currency(ms.Amount)))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if m.filter.Contract() {
		lines := []string{titleStyle.Render("کارهای کنتراتی")}
		for _, s := range ledger.ContractStats(m.ds, m.filter) {
			lines = append(lines, fmt.Sprintf("%s: %s کار (%s تکمیل، %s در حال انجام) · %s",
				s.Employer.Name, num.Int(s.Count), num.Int(s.Completed), num.Int(s.InProgress), num.Currency(s.TotalAmount)))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	lines := []string{titleStyle.Render("دریافتی‌ها و مانده حساب")}
	for _, b := range ledger.Balances(m.ds, m.filter) {
		lines = append(lines, fmt.Sprintf("%s: درآمد %s · دریافتی %s · %s %s",
			b.Employer.Name, num.Currency(b.TotalEarned), num.Currency(b.TotalPaid),
			b.Direction().Label(), num.Currency(b.Remaining.Abs())))
	}
	sections = append(sections, strings.Join(lines, "\n"))

	return strings.Join(sections, "\n\n")
}

// filterLine describes the active employer and work type filters.
func (m Model) filterLine() string {
	employer := "همه کارفرمایان"
	if m.filter.EmployerID != "" {
		employer = m.employerName(m.filter.EmployerID)
	}
	return filterStyle.Render(fmt.Sprintf("کارفرما: %s · نوع کار: %s", employer, workTypeLabel(m.filter.WorkType)))
}

func workTypeLabel(wt constants.WorkType) string {
	switch wt {
	case constants.WorkTypeDaily:
		return "روزمزد"
	case constants.WorkTypeContract:
		return "کنترات"
	default:
		return "همه"
	}
}

// nextEmployerFilter cycles all → each employer → all.
func nextEmployerFilter(employers []models.Employer, current string) string {
	if current == "" {
		if len(employers) == 0 {
			return ""
		}
		return employers[0].ID
	}
	for i, e := range employers {
		if e.ID == current && i+1 < len(employers) {
			return employers[i+1].ID
		}
	}
	return ""
}

// nextWorkType cycles all → daily → contract → all.
func nextWorkType(wt constants.WorkType) constants.WorkType {
	switch wt {
	case constants.WorkTypeAll, "":
		return constants.WorkTypeDaily
	case constants.WorkTypeDaily:
		return constants.WorkTypeContract
	default:
		return constants.WorkTypeAll
	}
}
