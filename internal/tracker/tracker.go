package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/opsdd/ddx/internal/log"
)

const (
	// maxRunningFraction caps the reported fraction while the action is
	// still outstanding, so the progress bar never falsely claims
	// completion before the backend actually finished.
	maxRunningFraction = 0.9

	defaultInterval  = 500 * time.Millisecond
	defaultJoinGrace = 2 * time.Second

	completedLabel = "Completed"
)

// Milestone is one labeled progress step, activated once the elapsed
// fraction reaches its threshold.
type Milestone struct {
	Label     string
	Threshold float64
}

// Progress is a single progress report. It is recomputed on every tick, not
// accumulated: fraction and step index are monotonically non-decreasing
// within one operation.
type Progress struct {
	StepIndex int
	StepLabel string
	Fraction  float64
	Remaining string
}

// ReportFunc receives progress reports. Called synchronously between ticks
// on the caller's goroutine, never concurrently.
type ReportFunc func(Progress)

// Action is the blocking work executed on the background goroutine. It must
// not touch shared session state, only its return values are collected.
type Action func(ctx context.Context) (interface{}, error)

// Config is the configuration for a tracker.
type Config struct {
	// Interval is how often progress is recomputed.
	Interval time.Duration
	// JoinGrace bounds how long the tracker waits for the background
	// goroutine when the caller's context is cancelled.
	JoinGrace time.Duration
	Logger    log.Logger
}

func (c *Config) defaults() error {
	if c.Interval <= 0 {
		c.Interval = defaultInterval
	}
	if c.JoinGrace <= 0 {
		c.JoinGrace = defaultJoinGrace
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "tracker.Tracker"})
	return nil
}

// Tracker drives a long-running backend action to completion while emitting
// synthetic, time based progress reports. The backend offers no server
// pushed progress events, so progress is simulated from elapsed wall clock
// time against a fixed estimate.
type Tracker struct {
	interval  time.Duration
	joinGrace time.Duration
	logger    log.Logger
}

// New creates a new tracker.
func New(cfg Config) (*Tracker, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Tracker{
		interval:  cfg.Interval,
		joinGrace: cfg.JoinGrace,
		logger:    cfg.Logger,
	}, nil
}

type actionResult struct {
	value interface{}
	err   error
}

// Run executes action on a background goroutine and polls elapsed time on
// the calling goroutine to emit progress, so the caller is never blocked
// directly on the network call.
//
// While the action is outstanding the fraction is capped below 1.0; the
// terminal 1.0 report is emitted exactly once, on success, as the last
// report. The background goroutine is always joined before returning,
// bounded by the configured grace period when the context is cancelled.
func (t *Tracker) Run(ctx context.Context, action Action, estimate time.Duration, milestones []Milestone, report ReportFunc) (interface{}, error) {
	if action == nil {
		return nil, fmt.Errorf("action is required")
	}
	if estimate <= 0 {
		return nil, fmt.Errorf("estimated duration must be positive")
	}
	if report == nil {
		report = func(Progress) {}
	}

	resCh := make(chan actionResult, 1)
	start := time.Now()

	go func() {
		value, err := action(ctx)
		resCh <- actionResult{value: value, err: err}
	}()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	lastStep := 0
	for {
		select {
		case res := <-resCh:
			if res.err != nil {
				t.logger.Debugf("tracked operation failed after %s: %s", time.Since(start), res.err)
				return nil, res.err
			}

			report(Progress{
				StepIndex: max(lastStep, len(milestones)-1),
				StepLabel: completedLabel,
				Fraction:  1.0,
				Remaining: "",
			})
			return res.value, nil

		case <-ticker.C:
			elapsed := time.Since(start)

			fraction := elapsed.Seconds() / estimate.Seconds()
			if fraction > maxRunningFraction {
				fraction = maxRunningFraction
			}

			step := stepFor(milestones, fraction)
			if step < lastStep {
				step = lastStep
			}
			lastStep = step

			p := Progress{
				StepIndex: step,
				Fraction:  fraction,
				Remaining: FormatRemaining(estimate - elapsed),
			}
			if len(milestones) > 0 {
				p.StepLabel = milestones[step].Label
			}
			report(p)

		case <-ctx.Done():
			// Navigation-away analog: the action is expected to complete on
			// its own and be discarded, never left running unobserved.
			select {
			case <-resCh:
			case <-time.After(t.joinGrace):
				t.logger.Warningf("background operation did not finish within %s grace period, abandoning it", t.joinGrace)
			}
			return nil, fmt.Errorf("operation cancelled: %w", ctx.Err())
		}
	}
}

// stepFor returns the index of the last milestone whose threshold is at or
// below the current fraction.
func stepFor(milestones []Milestone, fraction float64) int {
	step := 0
	for i, m := range milestones {
		if m.Threshold <= fraction {
			step = i
		}
	}
	return step
}

// FormatRemaining renders the estimated remaining time for display:
// minutes+seconds above a minute, plain seconds below it, and a terminal
// finishing label once the estimate is exhausted but the action has not
// completed yet.
func FormatRemaining(remaining time.Duration) string {
	secs := int(remaining.Round(time.Second).Seconds())
	switch {
	case secs <= 0:
		return "finishing up"
	case secs >= 60:
		return fmt.Sprintf("about %dm %ds remaining", secs/60, secs%60)
	default:
		return fmt.Sprintf("about %ds remaining", secs)
	}
}
