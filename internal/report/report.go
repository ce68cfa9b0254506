package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/jalali"
	"github.com/julianstephens/mozd/internal/ledger"
	"github.com/julianstephens/mozd/internal/models"
	"github.com/julianstephens/mozd/internal/utils"
)

// DefaultTitle heads every report.
const DefaultTitle = "گزارش کامل کارها و دریافتی‌ها"

// Format is an output file format.
type Format string

const (
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format name. Empty means html.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatHTML:
		return FormatHTML, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want html or xlsx)", s)
	}
}

// Options controls how a report is rendered.
type Options struct {
	Title       string
	Calendar    constants.Calendar
	Number      utils.NumberFormat
	FontRegular string
	FontBold    string
	Now         time.Time
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Calendar == "" {
		o.Calendar = constants.CalendarJalali
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// Data is the view model shared by the HTML and XLSX renderers.
type Data struct {
	Title        string
	PrintDate    string
	Filter       ledger.Filter
	EmployerName string

	ShowDaily    bool
	ShowContract bool

	Employers []ledger.EmployerStat
	Contracts []ledger.ContractStat
	Months    []ledger.MonthStat
	Balances  []ledger.Balance

	TotalEarned decimal.Decimal
	TotalPaid   decimal.Decimal
	Remaining   decimal.Decimal
}

// Build computes every section of the report for the records selected by f.
// Balances always count both kinds of work.
func Build(ds models.Dataset, f ledger.Filter, opts Options) Data {
	opts = opts.withDefaults()

	d := Data{
		Title:        opts.Title,
		PrintDate:    PrintDate(opts.Now, opts.Calendar, opts.Number.PersianDigits),
		Filter:       f,
		ShowDaily:    f.Daily(),
		ShowContract: f.Contract(),
		Balances:     ledger.Balances(ds, f),
		TotalEarned:  decimal.Zero,
		TotalPaid:    decimal.Zero,
	}
	if f.EmployerID != "" {
		if e, ok := ds.Employer(f.EmployerID); ok {
			d.EmployerName = e.Name
		}
	}
	if d.ShowDaily {
		d.Employers = ledger.EmployerStats(ds, f)
		d.Months = ledger.MonthlyStats(ds, f, opts.Calendar)
	}
	if d.ShowContract {
		d.Contracts = ledger.ContractStats(ds, f)
	}

	for _, b := range d.Balances {
		d.TotalEarned = d.TotalEarned.Add(b.TotalEarned)
		d.TotalPaid = d.TotalPaid.Add(b.TotalPaid)
	}
	d.Remaining = d.TotalEarned.Sub(d.TotalPaid)
	return d
}

// PrintDate renders the report date in the configured calendar.
func PrintDate(now time.Time, cal constants.Calendar, persianDigits bool) string {
	return jalali.Format(now.Format(time.DateOnly), cal, persianDigits)
}

// DefaultPath is where a report lands when no output file is given:
// <dir>/mozd-report-<date>.<format>, dated in the configured calendar.
func DefaultPath(dir string, format Format, now time.Time, cal constants.Calendar) string {
	stamp := now.Format(time.DateOnly)
	if cal != constants.CalendarGregorian {
		stamp = strings.ReplaceAll(jalali.FromTime(now).String(), "/", "-")
	}
	name := fmt.Sprintf("%s-report-%s.%s", constants.AppName, stamp, format)
	return filepath.Join(dir, name)
}

// WriteFile renders data to path in the given format, creating the parent
// directory. A partially written file is removed on failure.
func WriteFile(path string, format Format, data Data, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if format == FormatXLSX {
		err = XLSX(file, data, opts)
	} else {
		err = HTML(file, data, opts)
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
