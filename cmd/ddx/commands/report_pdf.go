package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/opsdd/ddx/internal/app/reportpdf"
	"github.com/opsdd/ddx/internal/printer"
	"github.com/opsdd/ddx/internal/recovery"
	"github.com/opsdd/ddx/internal/storage/sqlite"
	"github.com/opsdd/ddx/internal/tracker"
)

type ReportPDFCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	reportID string
	retries  int
}

// NewReportPDFCommand returns the report pdf command.
func NewReportPDFCommand(rootCmd *RootCommand, parent *ReportCommand) *ReportPDFCommand {
	c := &ReportPDFCommand{rootCmd: rootCmd}

	c.Cmd = parent.Cmd.Command("pdf", "Generate the PDF artifact for a report.")
	c.Cmd.Arg("report-id", "Report identifier.").Required().StringVar(&c.reportID)
	c.Cmd.Flag("retry", "Number of manual retries on failure before giving up.").Default("0").IntVar(&c.retries)

	return c
}

func (c ReportPDFCommand) Name() string { return c.Cmd.FullCommand() }

func (c ReportPDFCommand) Run(ctx context.Context) error {
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

	rec, err := recovery.New(recovery.Config{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create recovery controller: %w", err)
	}

	svc, err := reportpdf.NewService(reportpdf.ServiceConfig{
		Gateway:    gateway,
		Tracker:    track,
		Recovery:   rec,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)

	// Every attempt is explicit: the service never retries on its own, each
	// retry reuses the report data fetched on the first attempt.
	var result *reportpdf.Result
	for attempt := 0; ; attempt++ {
		result, err = svc.Run(ctx, reportpdf.Request{
			ReportID:   c.reportID,
			OnProgress: newProgressReporter(c.rootCmd.Stderr),
		})
		if err == nil {
			return p.PrintPDFArtifact(*result.Artifact)
		}

		if attempt >= c.retries {
			break
		}
		fmt.Fprintf(c.rootCmd.Stderr, "PDF generation failed (%s), retrying (%d/%d)\n", err, attempt+1, c.retries)
	}

	// The derived artifact could not be produced: offer the raw report data
	// so the operator is not left with nothing.
	if result != nil && result.Fallback != nil {
		fmt.Fprintln(c.rootCmd.Stderr, "PDF generation failed, showing the report's raw JSON instead.")
		if perr := p.PrintReport(result.Fallback); perr != nil {
			return fmt.Errorf("could not print fallback report: %w", perr)
		}
	}

	return fmt.Errorf("could not generate PDF: %w", err)
}
