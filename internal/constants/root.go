package constants

// SessionState represents the current state of the TUI application
type SessionState int

// ConflictType represents the type of validation conflict
type ConflictType string

// WorkType selects which kinds of work a report or list covers
type WorkType string

// Calendar selects the month boundaries used for rollups
type Calendar string

const (
	AppName           = "mozd"
	DefaultConfigDir  = "~/.config/mozd"
	DefaultConfigPath = "~/.config/mozd/mozd.db"
	DefaultConfigFile = "~/.config/mozd/config.yaml"
	Version           = "v0.3.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "mozd-"

	// Lock constants
	LockfileName = "mozd.lock"

	// HoursPerDay is the length of the work day a daily wage pays for
	HoursPerDay = 8
	// RecentWorkDays is how many work days the dashboard lists
	RecentWorkDays = 5

	// Field limits
	EmployerNameMin   = 2
	EmployerNameMax   = 50
	ContractTitleMax  = 100
	DescriptionMax    = 500
	MaxHoursPerDay    = 24
	MaxOvertimeHours  = 24
	DefaultCurrency   = "تومان"
	UnknownEmployer   = "نامشخص"
	EmployerInUseText = "امکان حذف کارفرما وجود ندارد. ابتدا روزهای کاری و/یا دریافتی‌های مرتبط را حذف کنید."

	// Contract status values
	ContractInProgress = "in-progress"
	ContractCompleted  = "completed"

	// Work types
	WorkTypeAll      WorkType = "all"
	WorkTypeDaily    WorkType = "daily"
	WorkTypeContract WorkType = "contract"

	// Calendars
	CalendarJalali    Calendar = "jalali"
	CalendarGregorian Calendar = "gregorian"

	// Conflict Types
	ConflictOrphanWorkDay         ConflictType = "orphan_work_day"
	ConflictOrphanContract        ConflictType = "orphan_contract"
	ConflictOrphanPayment         ConflictType = "orphan_payment"
	ConflictDuplicateEmployerName ConflictType = "duplicate_employer_name"
	ConflictDuplicateID           ConflictType = "duplicate_id"
	ConflictInvalidDate           ConflictType = "invalid_date"
	ConflictInvalidRecord         ConflictType = "invalid_record"
)

// Session States
const (
	StateDashboard SessionState = iota
	StateWork
	StateEmployers
	StatePayments
	StateReports
	StateOnboarding
	StateEmployerForm
	StateWorkDayForm
	StateContractForm
	StatePaymentForm
	StateSettingsForm
	StateConfirmDelete
)

// EmployerColors is the palette new employers are assigned from, in order.
var EmployerColors = []string{
	"#3b82f6",
	"#10b981",
	"#f59e0b",
	"#ef4444",
	"#8b5cf6",
	"#ec4899",
	"#f97316",
	"#84cc16",
}

// PaymentMethods maps payment method codes to their display labels.
var PaymentMethods = map[string]string{
	"cash":     "نقدی",
	"card":     "کارت به کارت",
	"check":    "چک",
	"transfer": "انتقال بانکی",
	"other":    "سایر",
}

// PaymentMethodOrder lists payment method codes in display order.
var PaymentMethodOrder = []string{"cash", "card", "check", "transfer", "other"}
