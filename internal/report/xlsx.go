package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/mozd/internal/jalali"
)

// Sheet names, in workbook order.
const (
	SheetEmployers = "Employers"
	SheetContracts = "Contracts"
	SheetMonthly   = "Monthly"
	SheetBalances  = "Balances"
	SheetPayments  = "Payments"
)

type sheet struct {
	name   string
	header []any
	rows   [][]any
	widths []float64
}

// XLSX writes data as a workbook with one sheet per report section.
// Amounts and counts are numeric cells; dates use the configured calendar.
func XLSX(w io.Writer, data Data, opts Options) error {
	opts = opts.withDefaults()

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F0F0F0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}

	for i, s := range sheets(data, opts) {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return err
		}
		if err := writeSheet(f, s, headerStyle, amountStyle); err != nil {
			return fmt.Errorf("sheet %s: %w", s.name, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle, amountStyle int) error {
	rtl := true
	if err := f.SetSheetView(s.name, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return err
	}

	if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(s.header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
		for j, v := range row {
			if _, ok := v.(float64); !ok {
				continue
			}
			c, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellStyle(s.name, c, c, amountStyle); err != nil {
				return err
			}
		}
	}

	for i, width := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.name, col, col, width); err != nil {
			return err
		}
	}

	return f.SetPanes(s.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func sheets(data Data, opts Options) []sheet {
	date := func(iso string) string { return jalali.Format(iso, opts.Calendar, false) }

	employers := sheet{
		name:   SheetEmployers,
		header: []any{"کارفرما", "تعداد روزها", "مجموع ساعات", "کل درآمد", "متوسط در ساعت"},
		widths: []float64{24, 12, 12, 18, 16},
	}
	for _, s := range data.Employers {
		employers.rows = append(employers.rows, []any{
			s.Employer.Name, s.DaysCount, s.TotalHours, money(s.TotalAmount), money(s.AveragePerHour),
		})
	}

	contracts := sheet{
		name:   SheetContracts,
		header: []any{"کارفرما", "عنوان", "مبلغ", "تاریخ شروع", "تاریخ پایان", "وضعیت"},
		widths: []float64{24, 30, 18, 14, 14, 14},
	}
	for _, s := range data.Contracts {
		for _, c := range s.Contracts {
			end := ""
			if c.EndDate != nil {
				end = date(*c.EndDate)
			}
			contracts.rows = append(contracts.rows, []any{
				s.Employer.Name, c.Title, money(c.TotalAmount), date(c.StartDate), end, c.StatusLabel(),
			})
		}
	}

	monthly := sheet{
		name:   SheetMonthly,
		header: []any{"ماه", "تعداد روزها", "مجموع ساعات", "درآمد ماه"},
		widths: []float64{18, 12, 12, 18},
	}
	for _, m := range data.Months {
		monthly.rows = append(monthly.rows, []any{
			jalali.MonthLabel(m.Key, opts.Calendar, false), m.Days, m.Hours, money(m.Amount),
		})
	}

	balances := sheet{
		name:   SheetBalances,
		header: []any{"کارفرما", "درآمد روزمزد", "درآمد کنترات", "کل درآمد", "کل دریافتی", "مانده", "وضعیت"},
		widths: []float64{24, 16, 16, 16, 16, 16, 12},
	}
	payments := sheet{
		name:   SheetPayments,
		header: []any{"کارفرما", "تاریخ", "مبلغ", "روش پرداخت", "توضیحات"},
		widths: []float64{24, 14, 18, 16, 30},
	}
	for _, b := range data.Balances {
		balances.rows = append(balances.rows, []any{
			b.Employer.Name, money(b.DailyEarned), money(b.ContractEarned), money(b.TotalEarned),
			money(b.TotalPaid), money(b.Remaining), b.Direction().Label(),
		})
		for _, p := range b.Payments {
			payments.rows = append(payments.rows, []any{
				b.Employer.Name, date(p.Date), money(p.Amount), p.MethodLabel(), p.Description,
			})
		}
	}

	return []sheet{employers, contracts, monthly, balances, payments}
}
