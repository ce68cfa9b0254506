package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/tui/components/records"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateDashboard:
		content = docStyle.Render(m.dashboard.View())
	case constants.StateWork:
		content = docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.filterLine(), m.work.View()))
	case constants.StateEmployers:
		content = docStyle.Render(m.employers.View())
	case constants.StatePayments:
		content = docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.filterLine(), m.payments.View()))
	case constants.StateReports:
		content = docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.filterLine(), m.reports.View()))
	case constants.StateOnboarding, constants.StateEmployerForm, constants.StateWorkDayForm,
		constants.StateContractForm, constants.StatePaymentForm, constants.StateSettingsForm:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == constants.SessionState(i) || (!m.isTab() && m.previousState == constants.SessionState(i)) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return dangerStyle.Render("✗ " + m.status)
	}
	return successStyle.Render("✓ " + m.status)
}

func (m Model) viewConfirmDelete() string {
	if m.pendingDelete == nil {
		return ""
	}

	var what string
	switch m.pendingDelete.Kind {
	case records.KindEmployer:
		what = fmt.Sprintf("کارفرما «%s»", m.pendingDelete.Label)
		if days, payments := m.ds.References(m.pendingDelete.ID); days == 0 && payments == 0 {
			what += " و کارهای کنتراتی او"
		}
	case records.KindWorkDay:
		what = "این روز کاری"
	case records.KindContract:
		what = "این کار کنتراتی"
	case records.KindPayment:
		what = "این دریافتی"
	}

	return docStyle.Render(dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		dangerStyle.Render("حذف"),
		fmt.Sprintf("آیا از حذف %s مطمئن هستید؟", what),
		m.pendingDelete.Detail,
		"",
		"(y) بله  (n) خیر",
	)))
}
