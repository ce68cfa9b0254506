package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/logger"
	"github.com/julianstephens/mozd/internal/models"
	"github.com/julianstephens/mozd/internal/transfer"
	"github.com/julianstephens/mozd/internal/validation"
)

type ImportCmd struct {
	File    string `arg:"" type:"existingfile" help:"Data dump exported from the web app or by 'mozd export'."`
	Replace bool   `help:"Replace all current data instead of merging."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	incoming, err := transfer.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}

	release, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer release()

	current, err := ctx.Dataset()
	if err != nil {
		return err
	}

	next := incoming
	if !c.Replace {
		next = merge(current, incoming)
	}

	skipped := transfer.DropOrphanContracts(&next)
	for _, orphan := range skipped {
		logger.Warn("skipping contract with missing employer", "id", orphan.ID, "employer", orphan.EmployerID)
		fmt.Fprintf(os.Stderr, "Warning: skipped contract %s (%s): employer %s no longer exists\n", orphan.ID, orphan.Title, orphan.EmployerID)
	}

	result := validation.New().ValidateDataset(next)
	if result.HasConflicts() {
		return fmt.Errorf("import rejected\n%s", result.FormatReport())
	}

	// Keep a copy of what is about to be overwritten
	ctx.PerformAutomaticBackup()

	if err := ctx.Store.ReplaceAll(next); err != nil {
		return fmt.Errorf("failed to import data: %w", err)
	}
	logger.Info("data imported", "file", c.File, "replace", c.Replace)

	fmt.Printf("Imported %d employer(s), %d work day(s), %d contract(s), %d payment(s) from %s\n",
		len(incoming.Employers), len(incoming.WorkDays), len(incoming.Contracts)-len(skipped), len(incoming.Payments), c.File)
	return nil
}

// merge adds incoming records to current. Records whose id already exists
// are replaced by the incoming version; incoming settings win when set.
func merge(current, incoming models.Dataset) models.Dataset {
	out := models.Dataset{
		Employers: mergeByID(current.Employers, incoming.Employers, func(e models.Employer) string { return e.ID }),
		WorkDays:  mergeByID(current.WorkDays, incoming.WorkDays, func(w models.WorkDay) string { return w.ID }),
		Contracts: mergeByID(current.Contracts, incoming.Contracts, func(c models.ContractWork) string { return c.ID }),
		Payments:  mergeByID(current.Payments, incoming.Payments, func(p models.Payment) string { return p.ID }),
		Settings:  current.Settings,
	}
	if incoming.Settings.DefaultWage != nil {
		out.Settings.DefaultWage = incoming.Settings.DefaultWage
	}
	if incoming.Settings.OnboardingCompleted {
		out.Settings.OnboardingCompleted = true
	}
	return out
}

func mergeByID[T any](current, incoming []T, id func(T) string) []T {
	index := make(map[string]int, len(current))
	out := make([]T, len(current), len(current)+len(incoming))
	copy(out, current)
	for i, v := range out {
		index[id(v)] = i
	}
	for _, v := range incoming {
		if i, ok := index[id(v)]; ok {
			out[i] = v
			continue
		}
		index[id(v)] = len(out)
		out = append(out, v)
	}
	return out
}

type ExportCmd struct {
	File   string `arg:"" help:"Output file."`
	Format string `default:"raw" enum:"raw,localstorage" help:"Value encoding: plain JSON (raw) or JSON strings as the web app stores them (localstorage)."`
	Force  bool   `help:"Overwrite an existing file."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if _, err := os.Stat(c.File); err == nil && !c.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", c.File)
	}

	ds, err := ctx.Dataset()
	if err != nil {
		return err
	}

	format := transfer.FormatRaw
	if c.Format == "localstorage" {
		format = transfer.FormatLocalStorage
	}

	if err := transfer.WriteFile(c.File, ds, format); err != nil {
		return fmt.Errorf("failed to export data: %w", err)
	}

	fmt.Printf("Exported %d employer(s), %d work day(s), %d contract(s), %d payment(s) to %s\n",
		len(ds.Employers), len(ds.WorkDays), len(ds.Contracts), len(ds.Payments), c.File)
	return nil
}
