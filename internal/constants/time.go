package constants

const (
	// DateFormat is the persisted date format (Gregorian, YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is the key format for monthly rollups (YYYY-MM)
	MonthFormat = "2006-01"

	// JalaliDateFormat is the entry/display pattern for Jalali dates (YYYY/MM/DD)
	JalaliDateFormat = "%04d/%02d/%02d"
)
