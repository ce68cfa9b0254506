package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/mozd/internal/cli"
	"github.com/julianstephens/mozd/internal/logger"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show data file, config and log paths."`
	DumpEmployer *DebugDumpEmployerCmd `cmd:"" help:"Dump employer data as JSON."`
	DumpWorkDay  *DebugDumpWorkDayCmd  `cmd:"" help:"Dump work day data as JSON."`
	DumpContract *DebugDumpContractCmd `cmd:"" help:"Dump contract data as JSON."`
	DumpPayment  *DebugDumpPaymentCmd  `cmd:"" help:"Dump payment data as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings data as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	// Output in machine-readable format
	return printJSON(map[string]string{
		"path":   ctx.Store.GetConfigPath(),
		"config": ctx.Settings().Path(),
		"log":    logger.Path(),
	})
}

type DebugDumpEmployerCmd struct {
	Employer string `arg:"" help:"ID or name of the employer to dump."`
}

func (cmd *DebugDumpEmployerCmd) Run(ctx *cli.Context) error {
	employer, err := ctx.ResolveEmployer(cmd.Employer)
	if err != nil {
		return fmt.Errorf("failed to get employer: %w", err)
	}
	return printJSON(employer)
}

type DebugDumpWorkDayCmd struct {
	ID string `arg:"" help:"ID of the work day to dump."`
}

func (cmd *DebugDumpWorkDayCmd) Run(ctx *cli.Context) error {
	day, err := ctx.Store.GetWorkDay(cmd.ID)
	if err != nil {
		return fmt.Errorf("failed to get work day: %w", err)
	}
	return printJSON(day)
}

type DebugDumpContractCmd struct {
	ID string `arg:"" help:"ID of the contract to dump."`
}

func (cmd *DebugDumpContractCmd) Run(ctx *cli.Context) error {
	contract, err := ctx.Store.GetContract(cmd.ID)
	if err != nil {
		return fmt.Errorf("failed to get contract: %w", err)
	}
	return printJSON(contract)
}

type DebugDumpPaymentCmd struct {
	ID string `arg:"" help:"ID of the payment to dump."`
}

func (cmd *DebugDumpPaymentCmd) Run(ctx *cli.Context) error {
	payment, err := ctx.Store.GetPayment(cmd.ID)
	if err != nil {
		return fmt.Errorf("failed to get payment: %w", err)
	}
	return printJSON(payment)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(settings)
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
