package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/cli/backups"
	"github.com/julianstephens/mozd/internal/cli/contracts"
	"github.com/julianstephens/mozd/internal/cli/employers"
	"github.com/julianstephens/mozd/internal/cli/payments"
	"github.com/julianstephens/mozd/internal/cli/reports"
	"github.com/julianstephens/mozd/internal/cli/settings"
	"github.com/julianstephens/mozd/internal/cli/system"
	"github.com/julianstephens/mozd/internal/cli/work"
	"github.com/julianstephens/mozd/internal/config"
	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/errors"
	"github.com/julianstephens/mozd/internal/logger"
	"github.com/julianstephens/mozd/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"YAML config file (default ~/.config/mozd/config.yaml)." type:"path"`
	DB      string `name:"db" help:"Data file; a .json path selects the JSON store, anything else SQLite." type:"path"`
	Verbose bool   `name:"debug" help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize mozd storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Employer struct {
		Add    employers.EmployerAddCmd    `cmd:"" help:"Add a new employer."`
		Edit   employers.EmployerEditCmd   `cmd:"" help:"Edit an existing employer."`
		Delete employers.EmployerDeleteCmd `cmd:"" help:"Delete an employer."`
		List   employers.EmployerListCmd   `cmd:"" help:"List all employers."`
	} `cmd:"" help:"Manage employers."`
	Work struct {
		Add    work.WorkAddCmd    `cmd:"" help:"Record a day of work."`
		Edit   work.WorkEditCmd   `cmd:"" help:"Edit a work day."`
		Delete work.WorkDeleteCmd `cmd:"" help:"Delete a work day."`
		List   work.WorkListCmd   `cmd:"" help:"List work days."`
	} `cmd:"" help:"Manage daily work entries."`
	Contract struct {
		Add    contracts.ContractAddCmd    `cmd:"" help:"Add a contract job."`
		Edit   contracts.ContractEditCmd   `cmd:"" help:"Edit a contract job."`
		Toggle contracts.ContractToggleCmd `cmd:"" help:"Switch a contract between in progress and completed."`
		Delete contracts.ContractDeleteCmd `cmd:"" help:"Delete a contract job."`
		List   contracts.ContractListCmd   `cmd:"" help:"List contract jobs."`
	} `cmd:"" help:"Manage contract work."`
	Payment struct {
		Add    payments.PaymentAddCmd    `cmd:"" help:"Record a payment received."`
		Edit   payments.PaymentEditCmd   `cmd:"" help:"Edit a payment."`
		Delete payments.PaymentDeleteCmd `cmd:"" help:"Delete a payment."`
		List   payments.PaymentListCmd   `cmd:"" help:"List payments."`
	} `cmd:"" help:"Manage payments."`

	Dashboard reports.DashboardCmd `cmd:"" help:"Show earnings, payments and recent work."`
	Balance   reports.BalanceCmd   `cmd:"" help:"Show what each employer owes."`
	Report    reports.ReportCmd    `cmd:"" help:"Export an HTML or XLSX report."`
	Settings  settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup    struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage data backups."`
	Import system.ImportCmd `cmd:"" help:"Import a data dump."`
	Export system.ExportCmd `cmd:"" help:"Export all data as a dump."`
	Date   system.DateCmd   `cmd:"" help:"Convert between Jalali and Gregorian dates."`
	Debug  system.DebugCmd  `cmd:"" help:"Debug commands for troubleshooting."`
}

// Commands that open the data file themselves, or never touch it.
var selfLoading = map[string]bool{
	"init":   true,
	"doctor": true,
	"tui":    true,
	"date":   true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Work and income tracker for daily and contract labor"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.DB != "" {
		cfg.DBPath = config.ExpandPath(CLI.DB)
	}
	if CLI.Verbose {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store := storage.Open(cfg.DBPath)
	defer store.Close()

	appCtx := &cli.Context{
		Store:  store,
		Config: cfg,
	}

	// Load the store before running the command
	if cmd := ctx.Selected(); cmd != nil && !selfLoading[cmd.Name] {
		if err := store.Load(); err != nil {
			store.Close()
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
