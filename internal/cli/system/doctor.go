package system

import (
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/lock"
	"github.com/julianstephens/mozd/internal/storage/sqlite"
	"github.com/julianstephens/mozd/internal/validation"
)

type DoctorCmd struct {
	Fix bool `help:"Remove work days, contracts and payments whose employer no longer exists."`
}

// check is one diagnostic. Warnings are reported but do not fail the run.
type check struct {
	name     string
	warnOnly bool
	needsDB  bool
	run      func(ctx *cli.Context) error
}

func (cmd *DoctorCmd) checks() []check {
	return []check{
		{name: "Configuration", run: checkConfig},
		{name: "Schema version", needsDB: true, run: checkSchemaVersion},
		{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
		{name: "Data validation", needsDB: true, run: cmd.checkValidation},
		{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
		{name: "Lockfile", warnOnly: true, run: checkLock},
		{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone() }},
	}
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Data file reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Data file reachable: OK\n")
		dbReachable = true
	}

	for _, c := range cmd.checks() {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (data file not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load data file: %w", err)
	}

	// For SQLite, also try a simple query
	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkConfig(ctx *cli.Context) error {
	return ctx.Settings().Validate()
}

func checkSchemaVersion(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		// JSON store doesn't have schema version
		return nil
	}

	st, err := sqliteStore.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		// JSON store doesn't have migrations
		return nil
	}

	st, err := sqliteStore.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if !st.UpToDate() {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run '%s migrate')", st.Current, st.Latest, constants.AppName)
	}
	return nil
}

func (cmd *DoctorCmd) checkValidation(ctx *cli.Context) error {
	ds, err := ctx.Dataset()
	if err != nil {
		return err
	}

	result := validation.New().ValidateDataset(ds)
	if !result.HasConflicts() {
		return nil
	}

	if cmd.Fix {
		release, err := ctx.Lock()
		if err != nil {
			return err
		}
		actions := validation.AutoFixOrphans(result.Conflicts, ctx.Store)
		release()
		for _, a := range actions {
			fmt.Printf("   Fixed: %s\n", a.Action)
		}

		if ds, err = ctx.Dataset(); err != nil {
			return err
		}
		result = validation.New().ValidateDataset(ds)
		if !result.HasConflicts() {
			return nil
		}
	}

	return fmt.Errorf("found %d problem(s)\n%s", len(result.Conflicts), result.FormatReport())
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.BackupManager().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}

	return nil
}

func checkLock(ctx *cli.Context) error {
	dataPath := ctx.Store.GetConfigPath()
	holder, alive, err := lock.Status(dataPath)
	if err != nil {
		return fmt.Errorf("failed to read lockfile: %w", err)
	}
	if alive {
		return fmt.Errorf("data file is locked by pid %d since %s", holder.PID, holder.Started.Format(time.DateTime))
	}
	if _, err := os.Stat(lock.PathFor(dataPath)); err == nil {
		return fmt.Errorf("stale lockfile at %s will be replaced on next write", lock.PathFor(dataPath))
	}
	return nil
}

func checkClockTimezone() error {
	// Check if system time is reasonable
	now := time.Now()

	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	return nil
}
