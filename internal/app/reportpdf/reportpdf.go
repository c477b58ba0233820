package reportpdf

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/opsdd/ddx/internal/backend"
	"github.com/opsdd/ddx/internal/log"
	"github.com/opsdd/ddx/internal/model"
	"github.com/opsdd/ddx/internal/recovery"
	"github.com/opsdd/ddx/internal/storage"
	"github.com/opsdd/ddx/internal/tracker"
)

// pdfEstimate is the fixed duration estimate used to simulate PDF
// generation progress.
const pdfEstimate = 20 * time.Second

var milestones = []tracker.Milestone{
	{Label: "Requesting PDF generation", Threshold: 0},
	{Label: "Rendering document", Threshold: 0.3},
	{Label: "Preparing download", Threshold: 0.8},
}

// ServiceConfig is the configuration for the report PDF service.
type ServiceConfig struct {
	Gateway    backend.API
	Tracker    *tracker.Tracker
	Recovery   *recovery.Controller
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Gateway == nil {
		return fmt.Errorf("gateway is required")
	}
	if c.Tracker == nil {
		return fmt.Errorf("tracker is required")
	}
	if c.Recovery == nil {
		return fmt.Errorf("recovery controller is required")
	}
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ReportPDF"})
	return nil
}

// Service generates PDF artifacts for reports, wrapped in the recovery
// controller: when the derived PDF cannot be produced the operator is
// offered the report's raw JSON and an explicit retry keyed by report ID.
type Service struct {
	gateway backend.API
	tracker *tracker.Tracker
	rec     *recovery.Controller
	repo    storage.Repository
	logger  log.Logger
}

// NewService creates a new report PDF service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		gateway: cfg.Gateway,
		tracker: cfg.Tracker,
		rec:     cfg.Recovery,
		repo:    cfg.Repository,
		logger:  cfg.Logger,
	}, nil
}

// Request contains the parameters for a PDF generation run.
type Request struct {
	ReportID   string
	OnProgress tracker.ReportFunc
}

// Result is the outcome of a PDF generation attempt. Fallback carries the
// report's raw JSON when the PDF could not be produced but the data was
// already fetched.
type Result struct {
	Artifact *model.PDFArtifact
	Fallback model.Document
}

// Run attempts to generate the PDF for a report. Calling it again with the
// same report ID retries the derivation, reusing the already fetched report
// data.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if req.ReportID == "" {
		return nil, fmt.Errorf("report ID cannot be empty: %w", model.ErrNotValid)
	}

	op := recovery.Operation{
		Fetch: func(ctx context.Context) (model.Document, error) {
			out := s.gateway.Get(ctx, "/reports/"+req.ReportID, nil)
			if !out.OK() {
				return nil, out.Failure()
			}
			return out.Doc(), nil
		},
		Derive: func(ctx context.Context, input model.Document) (interface{}, error) {
			return s.generate(ctx, req)
		},
	}

	startedAt := time.Now()
	value, err := s.rec.Attempt(ctx, req.ReportID, op)
	s.record(ctx, req.ReportID, startedAt, err)
	if err != nil {
		fallback, _ := s.rec.Fallback(req.ReportID)
		return &Result{Fallback: fallback}, err
	}

	return &Result{Artifact: value.(*model.PDFArtifact)}, nil
}

// generate runs the tracked PDF generation call and validates the reply.
func (s *Service) generate(ctx context.Context, req Request) (*model.PDFArtifact, error) {
	action := func(ctx context.Context) (interface{}, error) {
		out := s.gateway.Post(ctx, fmt.Sprintf("/reports/%s/pdf", req.ReportID), nil)
		if !out.OK() {
			return nil, out.Failure()
		}
		return out.Doc(), nil
	}

	value, err := s.tracker.Run(ctx, action, pdfEstimate, milestones, req.OnProgress)
	if err != nil {
		return nil, err
	}

	doc := value.(model.Document)
	downloadURL := doc.Str("download_url")
	if doc.Str("status") != "success" || downloadURL == "" {
		return nil, fmt.Errorf("pdf reply has no download reference: %w", model.ErrSoftFailure)
	}

	// Generated file links are rooted outside the API prefix.
	return &model.PDFArtifact{
		ReportID:    req.ReportID,
		DownloadURL: s.gateway.ResolveAbsolute(downloadURL),
	}, nil
}

func (s *Service) record(ctx context.Context, reportID string, startedAt time.Time, runErr error) {
	op := model.OperationRecord{
		ID:         ulid.Make().String(),
		Kind:       model.OperationKindPDF,
		Subject:    reportID,
		Status:     model.OperationStatusCompleted,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}
	if runErr != nil {
		op.Status = model.OperationStatusFailed
		op.Error = runErr.Error()
	}

	if err := s.repo.RecordOperation(ctx, op); err != nil {
		s.logger.Warningf("could not record pdf generation in history: %s", err)
	}
}
