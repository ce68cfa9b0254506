package reports

import (
	"fmt"

	"github.com/pkg/browser"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/ledger"
	"github.com/julianstephens/mozd/internal/logger"
	"github.com/julianstephens/mozd/internal/report"
	"github.com/julianstephens/mozd/internal/utils"
)

// openFunc hands a file to the desktop's default application.
var openFunc = browser.OpenFile

type ReportCmd struct {
	Employer string `short:"e" help:"Only report on this employer (ID or name)."`
	Type     string `short:"t" default:"all" enum:"all,daily,contract" help:"Kind of work to include (all|daily|contract)."`
	Format   string `short:"f" default:"html" enum:"html,xlsx" help:"Output format (html|xlsx)."`
	Out      string `short:"o" help:"Output file. Defaults to the report directory."`
	Title    string `help:"Report title."`
	Open     bool   `help:"Open the report when done."`
}

func (c *ReportCmd) Run(ctx *cli.Context) error {
	ds, err := ctx.Dataset()
	if err != nil {
		return err
	}

	workType, err := ledger.ParseWorkType(c.Type)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	f := ledger.Filter{WorkType: workType}
	if c.Employer != "" {
		employer, err := ctx.ResolveEmployer(c.Employer)
		if err != nil {
			return err
		}
		f.EmployerID = employer.ID
	}

	cfg := ctx.Settings()
	opts := report.Options{
		Title:       c.Title,
		Calendar:    cfg.Calendar,
		Number:      cfg.NumberFormat(),
		FontRegular: cfg.FontRegular,
		FontBold:    cfg.FontBold,
		Now:         utils.Now(),
	}

	out := c.Out
	if out == "" {
		out = report.DefaultPath(cfg.ReportDir, format, opts.Now, cfg.Calendar)
	}
	data := report.Build(ds, f, opts)
	if err := report.WriteFile(out, format, data, opts); err != nil {
		return err
	}
	logger.Info("report written", "path", out, "format", format)

	fmt.Printf("✓ Report written: %s\n", out)

	if c.Open {
		if err := openFunc(out); err != nil {
			return fmt.Errorf("failed to open report: %w", err)
		}
	}
	return nil
}
