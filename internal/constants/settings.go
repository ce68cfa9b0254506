package constants

const (
	// Settings keys (shared by the SQLite settings table and the legacy JSON layout)
	SettingDefaultWage         = "work_tracker_default_wage"
	SettingOnboardingCompleted = "work_tracker_onboarding_completed"

	// Legacy collection keys
	KeyEmployers     = "work_tracker_employers"
	KeyWorkDays      = "work_tracker_workdays"
	KeyPayments      = "work_tracker_payments"
	KeyContractWorks = "work_tracker_contract_works"

	// Default Settings Values
	DefaultOnboardingCompleted = false
)
