package lib

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/opsdd/ddx/internal/app/analyze"
	"github.com/opsdd/ddx/internal/app/cacheclear"
	"github.com/opsdd/ddx/internal/app/history"
	"github.com/opsdd/ddx/internal/app/reportget"
	"github.com/opsdd/ddx/internal/app/reportlist"
	"github.com/opsdd/ddx/internal/app/reportpdf"
	"github.com/opsdd/ddx/internal/app/status"
	"github.com/opsdd/ddx/internal/backend"
	"github.com/opsdd/ddx/internal/log"
	"github.com/opsdd/ddx/internal/recovery"
	"github.com/opsdd/ddx/internal/session"
	"github.com/opsdd/ddx/internal/storage"
	"github.com/opsdd/ddx/internal/storage/memory"
	"github.com/opsdd/ddx/internal/storage/sqlite"
	"github.com/opsdd/ddx/internal/tracker"
)

const defaultBackendURL = "http://localhost:8000/api/v1"

// Config configures the SDK client.
//
// All fields are optional and have sensible defaults. An empty Config{}
// talks to http://localhost:8000/api/v1 without a credential and keeps the
// operation history in memory.
type Config struct {
	// BackendURL is the base URL of the due-diligence backend API.
	// Default: http://localhost:8000/api/v1.
	BackendURL string

	// AuthToken is the admin credential sent as X-Auth-Token on every
	// request. Empty (default) means the header is never sent.
	AuthToken string

	// Timeout is the per-request timeout for backend calls.
	// Default: 120s.
	Timeout time.Duration

	// HTTPClient is the HTTP client used for backend calls.
	// Default: a dedicated client without its own timeout (the per-call
	// timeout governs).
	HTTPClient *http.Client

	// HistoryDBPath is the SQLite database path for the local operation
	// history. When empty (default), history is kept in memory and lost
	// when the client closes. Point it at the ddx CLI database to share
	// history with the console.
	HistoryDBPath string

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger

	// OnWarning receives the operator-facing message of every failed
	// backend call. Default: discard.
	OnWarning func(message string)
}

func (c *Config) defaults() error {
	if c.BackendURL == "" {
		c.BackendURL = defaultBackendURL
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	return nil
}

// Client is the main SDK entry point for running due-diligence operations
// programmatically.
//
// Create a Client with [New] and release its resources with [Client.Close].
type Client struct {
	gateway *backend.Client
	sess    *session.Store
	rec     *recovery.Controller
	repo    storage.Repository

	analyzeSvc    *analyze.Service
	reportListSvc *reportlist.Service
	reportGetSvc  *reportget.Service
	reportPDFSvc  *reportpdf.Service
	statusSvc     *status.Service
	cacheClearSvc *cacheclear.Service
	historySvc    *history.Service

	closeFn func() error
}

// New creates a new SDK client.
//
// The caller must call [Client.Close] when done to release resources.
// Typically used with defer:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	endpoint, err := backend.NewEndpoint(cfg.BackendURL)
	if err != nil {
		return nil, fmt.Errorf("could not create endpoint: %w", err)
	}

	transport, err := backend.NewTransport(backend.TransportConfig{
		Client:  cfg.HTTPClient,
		Timeout: cfg.Timeout,
		Logger:  cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create transport: %w", err)
	}

	sess := session.New()
	sess.SetToken(cfg.AuthToken)

	notifier := backend.NotifierFunc(func(context.Context, string) {})
	if cfg.OnWarning != nil {
		onWarning := cfg.OnWarning
		notifier = backend.NotifierFunc(func(_ context.Context, message string) { onWarning(message) })
	}

	gateway, err := backend.NewClient(backend.ClientConfig{
		Endpoint: endpoint,
		Sender:   transport,
		Tokens:   sess,
		Notifier: notifier,
		Logger:   cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create gateway client: %w", err)
	}

	repo, closeFn, err := newRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	track, err := tracker.New(tracker.Config{Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create tracker: %w", err)
	}

	rec, err := recovery.New(recovery.Config{Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create recovery controller: %w", err)
	}

	c := &Client{
		gateway: gateway,
		sess:    sess,
		rec:     rec,
		repo:    repo,
		closeFn: closeFn,
	}

	c.analyzeSvc, err = analyze.NewService(analyze.ServiceConfig{
		Gateway: gateway, Tracker: track, Session: sess, Repository: repo, Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create analyze service: %w", err)
	}

	c.reportListSvc, err = reportlist.NewService(reportlist.ServiceConfig{
		Gateway: gateway, Session: sess, Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create report list service: %w", err)
	}

	c.reportGetSvc, err = reportget.NewService(reportget.ServiceConfig{
		Gateway: gateway, Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create report get service: %w", err)
	}

	c.reportPDFSvc, err = reportpdf.NewService(reportpdf.ServiceConfig{
		Gateway: gateway, Tracker: track, Recovery: rec, Repository: repo, Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create report pdf service: %w", err)
	}

	c.statusSvc, err = status.NewService(status.ServiceConfig{
		Gateway: gateway, Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create status service: %w", err)
	}

	c.cacheClearSvc, err = cacheclear.NewService(cacheclear.ServiceConfig{
		Gateway: gateway, Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create cache clear service: %w", err)
	}

	c.historySvc, err = history.NewService(history.ServiceConfig{
		Repository: repo, Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create history service: %w", err)
	}

	return c, nil
}

func newRepository(ctx context.Context, cfg Config) (storage.Repository, func() error, error) {
	if cfg.HistoryDBPath == "" {
		repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: cfg.Logger})
		if err != nil {
			return nil, nil, fmt.Errorf("could not create repository: %w", err)
		}
		return repo, nil, nil
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: cfg.HistoryDBPath,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not create repository: %w", err)
	}
	return repo, repo.Close, nil
}

// Close releases resources held by the client. After Close returns, the
// client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}

// AnalyzeOpts are the optional parameters of [Client.Analyze].
type AnalyzeOpts struct {
	// OnProgress receives simulated progress updates while the backend
	// works on the analysis.
	OnProgress ProgressFunc
}

// Analyze runs a due-diligence analysis for a company and waits for the
// result. It blocks until the backend replies or ctx is cancelled.
func (c *Client) Analyze(ctx context.Context, companyName string, opts *AnalyzeOpts) (*AnalysisResult, error) {
	req := analyze.Request{CompanyName: companyName}
	if opts != nil {
		req.OnProgress = progressFunc(opts.OnProgress)
	}

	result, err := c.analyzeSvc.Run(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalAnalysis(result), nil
}

// ListReports returns the summaries of all prior reports.
func (c *Client) ListReports(ctx context.Context) ([]ReportSummary, error) {
	reports, err := c.reportListSvc.Run(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return fromInternalReports(reports), nil
}

// GetReport returns a report's raw JSON payload.
func (c *Client) GetReport(ctx context.Context, reportID string) (Document, error) {
	doc, err := c.reportGetSvc.Run(ctx, reportID)
	if err != nil {
		return nil, mapError(err)
	}
	return Document(doc), nil
}

// GeneratePDFOpts are the optional parameters of [Client.GeneratePDF].
type GeneratePDFOpts struct {
	// OnProgress receives simulated progress updates while the backend
	// renders the PDF.
	OnProgress ProgressFunc
}

// GeneratePDF generates the PDF artifact for a report. Calling it again
// with the same report ID retries the generation, reusing the already
// fetched report data. On failure the returned result carries the report's
// raw JSON as fallback when it was available.
func (c *Client) GeneratePDF(ctx context.Context, reportID string, opts *GeneratePDFOpts) (*PDFResult, error) {
	req := reportpdf.Request{ReportID: reportID}
	if opts != nil {
		req.OnProgress = progressFunc(opts.OnProgress)
	}

	result, err := c.reportPDFSvc.Run(ctx, req)
	if err != nil {
		res := &PDFResult{ReportID: reportID}
		if result != nil {
			res.Fallback = Document(result.Fallback)
		}
		return res, mapError(err)
	}

	return &PDFResult{
		ReportID:    result.Artifact.ReportID,
		DownloadURL: result.Artifact.DownloadURL,
	}, nil
}

// Status aggregates the backend admin endpoints: health, circuit breakers
// and cache statistics.
func (c *Client) Status(ctx context.Context) (*BackendStatus, error) {
	s, err := c.statusSvc.Run(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return fromInternalStatus(s), nil
}

// ClearCache clears the backend response cache. Requires the admin
// credential.
func (c *Client) ClearCache(ctx context.Context) (string, error) {
	msg, err := c.cacheClearSvc.Run(ctx)
	if err != nil {
		return "", mapError(err)
	}
	return msg, nil
}

// History returns the locally recorded long-running operations, newest
// first.
func (c *Client) History(ctx context.Context) ([]Operation, error) {
	ops, err := c.historySvc.Run(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return fromInternalOperations(ops), nil
}
