package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mozd/internal/config"
	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/ledger"
	"github.com/julianstephens/mozd/internal/logger"
	"github.com/julianstephens/mozd/internal/models"
	"github.com/julianstephens/mozd/internal/storage"
	"github.com/julianstephens/mozd/internal/tui/components/panel"
	"github.com/julianstephens/mozd/internal/tui/components/records"
)

// tabs in display order; the index of each equals its session state
var tabTitles = []string{"Dashboard", "Work", "Employers", "Payments", "Reports"}

type Model struct {
	store         storage.Provider
	cfg           *config.Config
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	ds     models.Dataset
	filter ledger.Filter

	dashboard panel.Model
	work      records.Model
	employers records.Model
	payments  records.Model
	reports   panel.Model

	form           *huh.Form
	employerForm   *EmployerFormModel
	workDayForm    *WorkDayFormModel
	contractForm   *ContractFormModel
	paymentForm    *PaymentFormModel
	settingsForm   *SettingsFormModel
	onboardingForm *OnboardingFormModel
	pendingDelete  *records.Item

	status    string
	statusErr bool
	quitting  bool
	width     int
	height    int
}

// NewModel loads the store's records and starts on the dashboard, or on
// the welcome form when onboarding has not been completed.
func NewModel(store storage.Provider, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.Default()
	}

	m := Model{
		store:     store,
		cfg:       cfg,
		state:     constants.StateDashboard,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		filter:    ledger.Filter{WorkType: constants.WorkTypeAll},
		dashboard: panel.New(0, 0),
		work:      records.New("Work", "هنوز کاری ثبت نشده است (a: روز کاری، c: کار کنتراتی)", 0, 0),
		employers: records.New("Employers", "هنوز کارفرمایی ثبت نشده است (a: افزودن)", 0, 0),
		payments:  records.New("Payments", "هنوز دریافتی ثبت نشده است (a: افزودن)", 0, 0),
		reports:   panel.New(0, 0),
	}
	m.reload()

	if !m.ds.Settings.OnboardingCompleted {
		m.startOnboarding()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}

// reload reads every record from the store and refreshes all tabs.
func (m *Model) reload() {
	ds, err := storage.LoadDataset(m.store)
	if err != nil {
		logger.Error("failed to load data", "error", err)
		m.setError(fmt.Sprintf("خطا در بارگذاری داده‌ها: %v", err))
		return
	}
	m.ds = ds

	// A filter on a deleted employer falls back to everyone
	if m.filter.EmployerID != "" {
		if _, ok := ds.Employer(m.filter.EmployerID); !ok {
			m.filter.EmployerID = ""
		}
	}
	m.refreshViews()
}

// refreshViews re-renders every tab from the loaded dataset.
func (m *Model) refreshViews() {
	m.dashboard.SetContent(m.renderDashboard())
	m.work.SetItems(m.workItems())
	m.employers.SetItems(m.employerItems())
	m.payments.SetItems(m.paymentItems())
	m.reports.SetContent(m.renderReports())
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	// tabs, filter line, status line and help
	h := height - 8
	if h < 3 {
		h = 3
	}
	w := width - 4
	m.dashboard.SetSize(w, h)
	m.work.SetSize(w, h)
	m.employers.SetSize(w, h)
	m.payments.SetSize(w, h)
	m.reports.SetSize(w, h)
}

func (m Model) isTab() bool {
	return int(m.state) < len(tabTitles)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateWork:
		keys = append(keys, m.keys.Add, m.keys.AddContract, m.keys.Edit, m.keys.Delete, m.keys.Toggle, m.keys.Filter, m.keys.WorkType)
	case constants.StateEmployers, constants.StatePayments:
		keys = append(keys, m.keys.Add, m.keys.Edit, m.keys.Delete)
	case constants.StateReports:
		keys = append(keys, m.keys.Filter, m.keys.WorkType, m.keys.Export, m.keys.ExportXLSX)
	case constants.StateConfirmDelete:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return append(keys, m.keys.Settings)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Settings}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case constants.StateWork:
		actions = []key.Binding{m.keys.Add, m.keys.AddContract, m.keys.Edit, m.keys.Delete, m.keys.Toggle, m.keys.Filter, m.keys.WorkType}
	case constants.StateEmployers, constants.StatePayments:
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete}
	case constants.StateReports:
		actions = []key.Binding{m.keys.Filter, m.keys.WorkType, m.keys.Export, m.keys.ExportXLSX}
	}

	return [][]key.Binding{global, navigation, actions}
}
