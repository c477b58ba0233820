package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/opsdd/ddx/internal/backend"
	"github.com/opsdd/ddx/internal/config"
	"github.com/opsdd/ddx/internal/conventions"
	"github.com/opsdd/ddx/internal/log"
	"github.com/opsdd/ddx/internal/session"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// DefaultBackendURL is the backend API base used when nothing is configured.
const DefaultBackendURL = "http://localhost:8000/api/v1"

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug          bool
	NoLog          bool
	NoColor        bool
	LoggerType     string
	BackendURL     string
	AuthToken      string
	TimeoutSeconds int
	DBPath         string
	ConfigPath     string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	app.Flag("backend-url", "Base URL of the due-diligence backend API.").Envar("DDX_BACKEND_URL").Default(DefaultBackendURL).StringVar(&c.BackendURL)
	app.Flag("token", "Admin credential sent as X-Auth-Token. Empty means no credential.").Envar("DDX_AUTH_TOKEN").StringVar(&c.AuthToken)
	app.Flag("timeout", "Backend request timeout in seconds.").Envar("DDX_BACKEND_TIMEOUT").Default("120").IntVar(&c.TimeoutSeconds)

	defaultDBPath := conventions.HistoryDBPath(homedir.HomeDir())
	app.Flag("db-path", "Path to the SQLite history database file.").Envar("DDX_DB_PATH").Default(defaultDBPath).StringVar(&c.DBPath)

	defaultConfigPath := conventions.ConfigPath(homedir.HomeDir())
	app.Flag("config", "Path to the config file.").Envar("DDX_CONFIG").Default(defaultConfigPath).StringVar(&c.ConfigPath)

	return c
}

// LoadConfigFile merges the optional config file into the root command:
// flags and environment variables win over file values.
func (c *RootCommand) LoadConfigFile() error {
	fileCfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return err
	}

	if c.BackendURL == DefaultBackendURL && fileCfg.BackendURL != "" {
		c.BackendURL = fileCfg.BackendURL
	}
	if c.AuthToken == "" && fileCfg.AuthToken != "" {
		c.AuthToken = fileCfg.AuthToken
	}
	if c.TimeoutSeconds == 120 && fileCfg.TimeoutSeconds > 0 {
		c.TimeoutSeconds = fileCfg.TimeoutSeconds
	}

	return nil
}

// newSession creates the session store seeded with the configured credential.
func newSession(rootCmd *RootCommand) *session.Store {
	sess := session.New()
	sess.SetToken(rootCmd.AuthToken)
	return sess
}

// newGateway wires endpoint, transport and gateway client. Failed calls are
// surfaced to the operator on stderr through the notifier.
func newGateway(rootCmd *RootCommand, sess *session.Store, logger log.Logger) (*backend.Client, error) {
	endpoint, err := backend.NewEndpoint(rootCmd.BackendURL)
	if err != nil {
		return nil, fmt.Errorf("could not create endpoint: %w", err)
	}

	transport, err := backend.NewTransport(backend.TransportConfig{
		Timeout: time.Duration(rootCmd.TimeoutSeconds) * time.Second,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create transport: %w", err)
	}

	client, err := backend.NewClient(backend.ClientConfig{
		Endpoint: endpoint,
		Sender:   transport,
		Tokens:   sess,
		Notifier: backend.NotifierFunc(func(_ context.Context, message string) {
			fmt.Fprintln(rootCmd.Stderr, message)
		}),
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create gateway client: %w", err)
	}

	return client, nil
}
