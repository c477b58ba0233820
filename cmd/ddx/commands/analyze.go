package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/opsdd/ddx/internal/app/analyze"
	"github.com/opsdd/ddx/internal/printer"
	"github.com/opsdd/ddx/internal/storage/sqlite"
	"github.com/opsdd/ddx/internal/tracker"
)

type AnalyzeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	companyName string
	format      string
}

// NewAnalyzeCommand returns the analyze command.
func NewAnalyzeCommand(rootCmd *RootCommand, app *kingpin.Application) *AnalyzeCommand {
	c := &AnalyzeCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("analyze", "Run a due-diligence analysis for a company.")
	c.Cmd.Arg("company", "Company name to analyze.").Required().StringVar(&c.companyName)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c AnalyzeCommand) Name() string { return c.Cmd.FullCommand() }

func (c AnalyzeCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	sess := newSession(c.rootCmd)
	gateway, err := newGateway(c.rootCmd, sess, logger)
	if err != nil {
		return err
	}

	// Initialize storage (SQLite).
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}
	defer repo.Close()

	track, err := tracker.New(tracker.Config{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create tracker: %w", err)
	}

	svc, err := analyze.NewService(analyze.ServiceConfig{
		Gateway:    gateway,
		Tracker:    track,
		Session:    sess,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	result, err := svc.Run(ctx, analyze.Request{
		CompanyName: c.companyName,
		OnProgress:  newProgressReporter(c.rootCmd.Stderr),
	})
	if err != nil {
		return fmt.Errorf("could not analyze company: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintAnalysis(*result); err != nil {
		return fmt.Errorf("could not print analysis: %w", err)
	}

	return nil
}
