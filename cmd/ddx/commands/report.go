package commands

import (
	"github.com/alecthomas/kingpin/v2"
)

// ReportCommand is the parent command for report subcommands.
type ReportCommand struct {
	Cmd *kingpin.CmdClause
}

// NewReportCommand returns the report parent command.
func NewReportCommand(app *kingpin.Application) *ReportCommand {
	c := &ReportCommand{}
	c.Cmd = app.Command("report", "Browse and export due-diligence reports.")
	return c
}
