package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/opsdd/ddx/internal/app/reportget"
	"github.com/opsdd/ddx/internal/printer"
)

type ReportGetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	reportID string
}

// NewReportGetCommand returns the report get command.
func NewReportGetCommand(rootCmd *RootCommand, parent *ReportCommand) *ReportGetCommand {
	c := &ReportGetCommand{rootCmd: rootCmd}

	c.Cmd = parent.Cmd.Command("get", "Fetch a single report's raw JSON.")
	c.Cmd.Arg("report-id", "Report identifier.").Required().StringVar(&c.reportID)

	return c
}

func (c ReportGetCommand) Name() string { return c.Cmd.FullCommand() }

func (c ReportGetCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	sess := newSession(c.rootCmd)
	gateway, err := newGateway(c.rootCmd, sess, logger)
	if err != nil {
		return err
	}

	svc, err := reportget.NewService(reportget.ServiceConfig{
		Gateway: gateway,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	report, err := svc.Run(ctx, c.reportID)
	if err != nil {
		return fmt.Errorf("could not fetch report: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	if err := p.PrintReport(report); err != nil {
		return fmt.Errorf("could not print report: %w", err)
	}

	return nil
}
