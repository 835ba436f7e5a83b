package autoapply

import (
	"context"
	"errors"
	"testing"

	"github.com/applywise/applywise-cli/internal/api"
	"github.com/applywise/applywise-cli/internal/app"
	"github.com/applywise/applywise-cli/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunBackend struct {
	result     *models.RunResult
	runErr     error
	status     *models.AutoApplyStatus
	statusErr  error
	history    []models.HistoryEntry
	historyErr error

	calls []string
}

func (f *fakeRunBackend) RunAutoApply(ctx context.Context, source string) (*models.RunResult, error) {
	f.calls = append(f.calls, "run:"+source)
	return f.result, f.runErr
}

func (f *fakeRunBackend) AutoApplyStatus(ctx context.Context) (*models.AutoApplyStatus, error) {
	f.calls = append(f.calls, "status")
	return f.status, f.statusErr
}

func (f *fakeRunBackend) AutoApplyHistory(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	f.calls = append(f.calls, "history")
	return f.history, f.historyErr
}

var eligible = struct {
	settings     models.AutoApplySettings
	completeness *models.ProfileCompleteness
}{
	settings:     models.AutoApplySettings{ResumeID: "res_1"},
	completeness: &models.ProfileCompleteness{Percentage: 90},
}

func TestRunBlockedByGateMakesNoRequest(t *testing.T) {
	backend := &fakeRunBackend{}
	c := NewController(backend, 0)

	_, err := c.Run(context.Background(), models.SourceFree,
		eligible.settings, &models.ProfileCompleteness{Percentage: 50})

	require.ErrorIs(t, err, app.ErrNotEligible)
	assert.Empty(t, backend.calls, "a gated run must not touch the network")
	assert.Equal(t, PhaseIdle, c.Progress().Phase, "state unchanged")
}

func TestRunCompleted(t *testing.T) {
	backend := &fakeRunBackend{
		result: &models.RunResult{
			AppliedCount: 5,
			Applications: []models.RunApplication{
				{JobTitle: "A", Success: true},
				{JobTitle: "B", Success: true},
				{JobTitle: "C", Success: true},
				{JobTitle: "D", Success: false, Error: "captcha"},
				{JobTitle: "E", Success: false, Error: "form timeout"},
			},
		},
		status:  &models.AutoApplyStatus{ApplicationsToday: 5},
		history: []models.HistoryEntry{{ID: "h1"}},
	}
	c := NewController(backend, 0)

	progress, err := c.Run(context.Background(), models.SourceFree, eligible.settings, eligible.completeness)

	require.NoError(t, err)
	assert.Equal(t, PhaseCompleted, progress.Phase)
	assert.False(t, progress.IsRunning)
	assert.Equal(t, 5, progress.JobsProcessed)
	assert.Equal(t, 5, progress.TotalJobs)
	assert.Equal(t, 3, progress.SubmittedCount)
	assert.Equal(t, 2, progress.FailedCount)
	assert.Len(t, progress.Results, 5)
	assert.Equal(t, 5, c.Status().ApplicationsToday)
	assert.Len(t, c.History(), 1)
}

func TestRunNoJobs(t *testing.T) {
	backend := &fakeRunBackend{result: &models.RunResult{AppliedCount: 0}}
	c := NewController(backend, 0)

	progress, err := c.Run(context.Background(), models.SourceFree, eligible.settings, eligible.completeness)

	require.NoError(t, err)
	assert.Equal(t, PhaseNoJobs, progress.Phase)
	assert.False(t, progress.IsRunning)
	assert.Equal(t, "No new matching jobs found", progress.CurrentJob)
}

func TestRunRequestFailure(t *testing.T) {
	backend := &fakeRunBackend{runErr: &api.Error{StatusCode: 429, Detail: "Daily limit reached"}}
	c := NewController(backend, 0)

	progress, err := c.Run(context.Background(), models.SourceFree, eligible.settings, eligible.completeness)

	require.NoError(t, err, "a failed run is a terminal state, not a Go error")
	assert.Equal(t, PhaseError, progress.Phase)
	assert.Equal(t, "Daily limit reached", progress.CurrentJob)
}

func TestRunAutomationUnavailableIsNotAFailure(t *testing.T) {
	backend := &fakeRunBackend{
		result: &models.RunResult{
			AppliedCount:          2,
			AutomationUnavailable: true,
			Message:               "Automated submission is down for maintenance",
			Applications: []models.RunApplication{
				{JobTitle: "A", Success: true},
				{JobTitle: "B", Success: true},
			},
		},
	}
	c := NewController(backend, 0)

	progress, err := c.Run(context.Background(), models.SourceFree, eligible.settings, eligible.completeness)

	require.NoError(t, err)
	assert.Equal(t, PhaseCompleted, progress.Phase)
	assert.Equal(t, "Automated submission is down for maintenance", progress.Note)
}

func TestRunRefreshesStatusThenHistory(t *testing.T) {
	backend := &fakeRunBackend{result: &models.RunResult{AppliedCount: 0}}
	c := NewController(backend, 0)

	_, err := c.Run(context.Background(), models.SourcePremium, eligible.settings, eligible.completeness)

	require.NoError(t, err)
	assert.Equal(t, []string{"run:premium", "status", "history"}, backend.calls)
}

func TestRunRefreshFailuresAreSwallowed(t *testing.T) {
	backend := &fakeRunBackend{
		result:     &models.RunResult{AppliedCount: 0},
		statusErr:  errors.New("status down"),
		historyErr: errors.New("history down"),
	}
	c := NewController(backend, 0)

	progress, err := c.Run(context.Background(), models.SourceFree, eligible.settings, eligible.completeness)

	require.NoError(t, err)
	assert.Equal(t, PhaseNoJobs, progress.Phase)
	assert.Nil(t, c.Status())
	assert.Nil(t, c.History())
}

func TestReduceStartedDiscardsPriorProgress(t *testing.T) {
	prior := Progress{Phase: PhaseError, CurrentJob: "old failure", FailedCount: 3}

	next := Reduce(prior, Started{})

	assert.True(t, next.IsRunning)
	assert.Equal(t, PhaseSearching, next.Phase)
	assert.Zero(t, next.FailedCount)
	assert.Empty(t, next.Results)
}

func TestPhaseTerminal(t *testing.T) {
	assert.False(t, PhaseIdle.Terminal())
	assert.False(t, PhaseSearching.Terminal())
	assert.True(t, PhaseCompleted.Terminal())
	assert.True(t, PhaseNoJobs.Terminal())
	assert.True(t, PhaseError.Terminal())
}
