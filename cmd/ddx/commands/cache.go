package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/opsdd/ddx/internal/app/cacheclear"
	"github.com/opsdd/ddx/internal/printer"
)

// CacheCommand is the parent command for backend cache subcommands.
type CacheCommand struct {
	Cmd *kingpin.CmdClause
}

// NewCacheCommand returns the cache parent command.
func NewCacheCommand(app *kingpin.Application) *CacheCommand {
	c := &CacheCommand{}
	c.Cmd = app.Command("cache", "Manage the backend response cache.")
	return c
}

type CacheClearCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewCacheClearCommand returns the cache clear command.
func NewCacheClearCommand(rootCmd *RootCommand, parent *CacheCommand) *CacheClearCommand {
	c := &CacheClearCommand{rootCmd: rootCmd}
	c.Cmd = parent.Cmd.Command("clear", "Clear the backend response cache (requires the admin token).")
	return c
}

func (c CacheClearCommand) Name() string { return c.Cmd.FullCommand() }

func (c CacheClearCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	sess := newSession(c.rootCmd)
	gateway, err := newGateway(c.rootCmd, sess, logger)
	if err != nil {
		return err
	}

	svc, err := cacheclear.NewService(cacheclear.ServiceConfig{
		Gateway: gateway,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	msg, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("could not clear cache: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	if err := p.PrintMessage(msg); err != nil {
		return fmt.Errorf("could not print message: %w", err)
	}

	return nil
}
