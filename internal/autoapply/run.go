package autoapply

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/applywise/applywise-cli/internal/api"
	"github.com/applywise/applywise-cli/internal/app"
	"github.com/applywise/applywise-cli/pkg/models"
)

// runTimeout bounds the synchronous run request. The backend searches,
// tailors and submits before responding, so this is much longer than the
// client's default timeout.
const runTimeout = 120 * time.Second

// Phase is the run controller's state.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSearching Phase = "searching"
	PhaseCompleted Phase = "completed"
	PhaseNoJobs    Phase = "no_jobs"
	PhaseError     Phase = "error"
)

// Terminal reports whether the phase ends a run. Terminal phases persist
// until the next run resets to searching.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseNoJobs || p == PhaseError
}

// Progress is the ephemeral view state of one run. It is created at run
// start, replaced wholesale on completion or error, and discarded when the
// next run starts.
type Progress struct {
	IsRunning      bool
	CurrentJob     string
	JobsProcessed  int
	TotalJobs      int
	SubmittedCount int
	FailedCount    int
	Phase          Phase
	Results        []models.RunApplication
	Note           string // informational, e.g. automation unavailable
}

// Event is a run state machine input.
type Event interface{ isRunEvent() }

// Started begins a run: prior progress is discarded.
type Started struct{}

// Finished carries the backend's run outcome.
type Finished struct {
	Result *models.RunResult
}

// Failed carries the message of a failed run request.
type Failed struct {
	Message string
}

func (Started) isRunEvent()  {}
func (Finished) isRunEvent() {}
func (Failed) isRunEvent()   {}

const (
	defaultNoJobsMessage = "No new matching jobs found"
	defaultErrorMessage  = "Auto-apply run failed"
)

// Reduce is the pure transition function of the run state machine.
func Reduce(p Progress, ev Event) Progress {
	switch ev := ev.(type) {
	case Started:
		return Progress{
			IsRunning:  true,
			Phase:      PhaseSearching,
			CurrentJob: "Searching for matching jobs...",
		}
	case Finished:
		return reduceFinished(ev.Result)
	case Failed:
		msg := ev.Message
		if msg == "" {
			msg = defaultErrorMessage
		}
		return Progress{Phase: PhaseError, CurrentJob: msg}
	}
	return p
}

func reduceFinished(result *models.RunResult) Progress {
	if result.AppliedCount == 0 {
		msg := result.Message
		if msg == "" {
			msg = defaultNoJobsMessage
		}
		return Progress{Phase: PhaseNoJobs, CurrentJob: msg}
	}

	next := Progress{
		Phase:         PhaseCompleted,
		JobsProcessed: result.AppliedCount,
		TotalJobs:     result.AppliedCount,
		Results:       result.Applications,
	}
	for _, a := range result.Applications {
		if a.Success {
			next.SubmittedCount++
		} else {
			next.FailedCount++
		}
	}
	// Automation being unavailable is informational, not a failure: the
	// applications were still prepared, just not submitted by the backend.
	if result.AutomationUnavailable {
		next.Note = result.Message
		if next.Note == "" {
			next.Note = "Automated submission is unavailable; applications were prepared for manual submission"
		}
	}
	return next
}

// RunBackend is the slice of the API client the controller needs.
type RunBackend interface {
	RunAutoApply(ctx context.Context, source string) (*models.RunResult, error)
	AutoApplyStatus(ctx context.Context) (*models.AutoApplyStatus, error)
	AutoApplyHistory(ctx context.Context, limit int) ([]models.HistoryEntry, error)
}

// Controller sequences an auto-apply run: gate check, the blocking run
// request, and the post-run refreshes. Only one run may be in flight.
type Controller struct {
	backend      RunBackend
	historyLimit int

	progress Progress
	status   *models.AutoApplyStatus
	history  []models.HistoryEntry
}

// NewController creates a run controller in the idle state.
func NewController(backend RunBackend, historyLimit int) *Controller {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Controller{
		backend:      backend,
		historyLimit: historyLimit,
		progress:     Progress{Phase: PhaseIdle},
	}
}

// Progress returns the current run view state.
func (c *Controller) Progress() Progress { return c.progress }

// Status returns the latest fetched usage snapshot, or nil.
func (c *Controller) Status() *models.AutoApplyStatus { return c.status }

// History returns the latest fetched history page.
func (c *Controller) History() []models.HistoryEntry { return c.history }

// Run executes one auto-apply run. A rejected run (in flight, or gate
// closed) returns an error without touching state or the network. Once the
// request is sent the outcome lands in Progress; the returned error is nil
// even when the run itself failed — the failure is a terminal state, not a
// Go error.
func (c *Controller) Run(ctx context.Context, source string, settings models.AutoApplySettings, completeness *models.ProfileCompleteness) (Progress, error) {
	if c.progress.IsRunning {
		return c.progress, app.ErrRunInFlight
	}
	if gate := CanRunAutoApply(settings, completeness); !gate.Allowed {
		return c.progress, fmt.Errorf("%w: %s", app.ErrNotEligible, gate.Reason)
	}

	c.progress = Reduce(c.progress, Started{})

	runCtx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	result, err := c.backend.RunAutoApply(runCtx, source)
	if err != nil {
		c.progress = Reduce(c.progress, Failed{Message: api.Detail(err, defaultErrorMessage)})
	} else {
		c.progress = Reduce(c.progress, Finished{Result: result})
	}

	// Regardless of outcome the snapshot and history are refreshed, status
	// first, then history. Refresh failures are logged, never surfaced.
	if status, err := c.backend.AutoApplyStatus(ctx); err != nil {
		log.Printf("auto-apply: status refresh failed: %v", err)
	} else {
		c.status = status
	}
	if entries, err := c.backend.AutoApplyHistory(ctx, c.historyLimit); err != nil {
		log.Printf("auto-apply: history refresh failed: %v", err)
	} else {
		c.history = entries
	}

	return c.progress, nil
}
