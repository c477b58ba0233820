package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/opsdd/ddx/internal/app/reportlist"
	"github.com/opsdd/ddx/internal/printer"
)

type ReportListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewReportListCommand returns the report list command.
func NewReportListCommand(rootCmd *RootCommand, parent *ReportCommand) *ReportListCommand {
	c := &ReportListCommand{rootCmd: rootCmd}

	c.Cmd = parent.Cmd.Command("list", "List prior reports.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ReportListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ReportListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	sess := newSession(c.rootCmd)
	gateway, err := newGateway(c.rootCmd, sess, logger)
	if err != nil {
		return err
	}

	svc, err := reportlist.NewService(reportlist.ServiceConfig{
		Gateway: gateway,
		Session: sess,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	reports, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("could not list reports: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintReportList(reports); err != nil {
		return fmt.Errorf("could not print report list: %w", err)
	}

	return nil
}
