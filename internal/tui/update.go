package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/errors"
	"github.com/julianstephens/mozd/internal/logger"
	"github.com/julianstephens/mozd/internal/models"
	"github.com/julianstephens/mozd/internal/report"
	"github.com/julianstephens/mozd/internal/tui/components/records"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.setSize(msg.Width, msg.Height)
	}
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case constants.StateOnboarding:
		return m.updateOnboarding(msg)
	case constants.StateEmployerForm, constants.StateWorkDayForm, constants.StateContractForm,
		constants.StatePaymentForm, constants.StateSettingsForm:
		return m.updateForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = constants.SessionState((int(m.state) + 1) % len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = constants.SessionState((int(m.state) + len(tabTitles) - 1) % len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Settings):
			return m, m.openSettingsForm()
		case key.Matches(msg, m.keys.Filter):
			m.filter.EmployerID = nextEmployerFilter(m.ds.Employers, m.filter.EmployerID)
			m.refreshViews()
			return m, nil
		case key.Matches(msg, m.keys.WorkType):
			m.filter.WorkType = nextWorkType(m.filter.WorkType)
			m.refreshViews()
			return m, nil
		case m.state == constants.StateWork && key.Matches(msg, m.keys.AddContract):
			return m, m.openContractForm(nil)
		case m.state == constants.StateReports && key.Matches(msg, m.keys.Export):
			m.export(report.FormatHTML)
			return m, nil
		case m.state == constants.StateReports && key.Matches(msg, m.keys.ExportXLSX):
			m.export(report.FormatXLSX)
			return m, nil
		}

	case records.AddMsg:
		return m, m.openAdd()
	case records.EditMsg:
		return m, m.openEdit(msg.Item)
	case records.DeleteMsg:
		item := msg.Item
		m.pendingDelete = &item
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil
	case records.ToggleMsg:
		if err := m.toggleContract(msg.Item.ID); err != nil {
			m.fail(err)
		}
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case constants.StateWork:
		m.work, cmd = m.work.Update(msg)
	case constants.StateEmployers:
		m.employers, cmd = m.employers.Update(msg)
	case constants.StatePayments:
		m.payments, cmd = m.payments.Update(msg)
	case constants.StateReports:
		m.reports, cmd = m.reports.Update(msg)
	}
	return m, cmd
}

// fail shows err on the status line.
func (m *Model) fail(err error) {
	logger.Debug("action failed", "error", err)
	m.setError(errors.UserMessage(err))
}

func (m *Model) export(format report.Format) {
	if _, err := m.exportReport(format); err != nil {
		logger.Error("failed to write report", "error", err)
		m.fail(err)
	}
}

func (m *Model) openAdd() tea.Cmd {
	switch m.state {
	case constants.StateWork:
		if m.filter.WorkType == constants.WorkTypeContract {
			return m.openContractForm(nil)
		}
		return m.openWorkDayForm(nil)
	case constants.StateEmployers:
		return m.openEmployerForm(nil)
	case constants.StatePayments:
		return m.openPaymentForm(nil)
	}
	return nil
}

func (m *Model) openEdit(item records.Item) tea.Cmd {
	switch item.Kind {
	case records.KindEmployer:
		if e, ok := m.ds.Employer(item.ID); ok {
			return m.openEmployerForm(&e)
		}
	case records.KindWorkDay:
		for _, w := range m.ds.WorkDays {
			if w.ID == item.ID {
				return m.openWorkDayForm(&w)
			}
		}
	case records.KindContract:
		for _, c := range m.ds.Contracts {
			if c.ID == item.ID {
				return m.openContractForm(&c)
			}
		}
	case records.KindPayment:
		for _, p := range m.ds.Payments {
			if p.ID == item.ID {
				return m.openPaymentForm(&p)
			}
		}
	}
	m.fail(models.ErrNotFound)
	return nil
}

// updateForm drives the active huh form. Save errors keep the form open
// with the first message on the status line.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.status = ""
		m.leaveForm()
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.submitForm(); err != nil {
			m.fail(err)
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		m.leaveForm()
		m.reload()
	case huh.StateAborted:
		m.status = ""
		m.leaveForm()
	}
	return m, tea.Batch(cmds...)
}

// updateOnboarding drives the welcome form. Skipping it with esc also
// completes onboarding.
func (m Model) updateOnboarding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		if err := m.skipOnboarding(); err != nil {
			m.fail(err)
			return m, nil
		}
		m.leaveForm()
		m.reload()
		return m, nil
	}
	return m.updateForm(msg)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		if m.pendingDelete != nil {
			if err := m.deleteRecord(*m.pendingDelete); err != nil {
				m.fail(err)
			}
		}
		m.pendingDelete = nil
		m.state = m.previousState
		m.reload()
	case key.Matches(keyMsg, m.keys.Cancel):
		m.pendingDelete = nil
		m.state = m.previousState
	}
	return m, nil
}
