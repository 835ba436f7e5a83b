// Package wizard implements the per-job apply flow: a three step state
// machine (tailor, review, submit) producing one application record through
// the backend. The wizard is independent of the bulk auto-apply run.
package wizard

import (
	"context"
	"fmt"

	"github.com/applywise/applywise-cli/internal/api"
	"github.com/applywise/applywise-cli/internal/app"
	"github.com/applywise/applywise-cli/pkg/models"
)

// Step is the wizard position. StepClosed means no job is being applied to.
type Step int

const (
	StepClosed Step = iota
	StepTailor
	StepReview
	StepConfirm
)

func (s Step) String() string {
	switch s {
	case StepTailor:
		return "tailor"
	case StepReview:
		return "review"
	case StepConfirm:
		return "submit"
	}
	return "closed"
}

// Backend is the slice of the API client the wizard needs.
type Backend interface {
	TailorResume(ctx context.Context, req api.TailorRequest) (*models.TailorResult, error)
	GenerateCoverLetter(ctx context.Context, req api.CoverLetterRequest) (string, error)
	CreateApplication(ctx context.Context, application models.Application) (*models.Application, error)
}

// Wizard holds the per-job apply state. Opening a job resets everything;
// nothing here is persisted — only the final submission becomes a durable
// record via the backend.
type Wizard struct {
	backend Backend

	job  models.Job
	step Step

	ResumeID          string
	AICommand         string
	TailoredContent   string
	TailoredVersions  []models.TailoredVersion
	ExtractedKeywords string
	CoverLetter       string

	tailored bool
}

// New creates a closed wizard.
func New(backend Backend) *Wizard {
	return &Wizard{backend: backend}
}

// Open starts the flow for a job: all fields reset, step 1.
func (w *Wizard) Open(job models.Job) {
	*w = Wizard{backend: w.backend, job: job, step: StepTailor}
}

// Close abandons the flow and clears all state.
func (w *Wizard) Close() {
	*w = Wizard{backend: w.backend}
}

// Step returns the current position.
func (w *Wizard) Step() Step { return w.step }

// Job returns the job being applied to.
func (w *Wizard) Job() models.Job { return w.job }

// Tailor invokes the tailoring operation and advances to review on success.
// Requires a selected resume; the check happens before any request. On
// failure the wizard stays at the tailor step.
func (w *Wizard) Tailor(ctx context.Context) error {
	if w.step != StepTailor {
		return fmt.Errorf("cannot tailor at step %s", w.step)
	}
	if w.ResumeID == "" {
		return app.ErrNoResumeSelected
	}

	result, err := w.backend.TailorResume(ctx, api.TailorRequest{
		ResumeID:       w.ResumeID,
		JobTitle:       w.job.Title,
		JobDescription: w.job.Description,
		Company:        w.job.Company,
		Instructions:   w.AICommand,
	})
	if err != nil {
		return fmt.Errorf("%s", api.Detail(err, "Failed to tailor resume"))
	}

	w.TailoredContent = result.TailoredContent
	w.TailoredVersions = result.Versions
	w.ExtractedKeywords = result.ExtractedKeywords
	w.tailored = true
	w.step = StepReview
	return nil
}

// SkipTailoring advances to review without tailoring. The submission will
// carry a null tailored resume. Still requires a selected resume since the
// submit step needs one.
func (w *Wizard) SkipTailoring() error {
	if w.step != StepTailor {
		return fmt.Errorf("cannot skip tailoring at step %s", w.step)
	}
	if w.ResumeID == "" {
		return app.ErrNoResumeSelected
	}
	w.step = StepReview
	return nil
}

// SelectVersion replaces the displayed content with a pre-generated
// alternate version. No re-fetch happens.
func (w *Wizard) SelectVersion(i int) error {
	if i < 0 || i >= len(w.TailoredVersions) {
		return fmt.Errorf("no tailored version %d", i)
	}
	w.TailoredContent = w.TailoredVersions[i].Content
	return nil
}

// SetContent records a user edit of the tailored content.
func (w *Wizard) SetContent(content string) {
	w.TailoredContent = content
	w.tailored = true
}

// GenerateCoverLetter runs the separate cover letter operation. It never
// moves the step and may be retried any number of times.
func (w *Wizard) GenerateCoverLetter(ctx context.Context) error {
	if w.step == StepClosed {
		return fmt.Errorf("no job selected")
	}
	letter, err := w.backend.GenerateCoverLetter(ctx, api.CoverLetterRequest{
		ResumeID:       w.ResumeID,
		JobTitle:       w.job.Title,
		JobDescription: w.job.Description,
		Company:        w.job.Company,
	})
	if err != nil {
		return fmt.Errorf("%s", api.Detail(err, "Failed to generate cover letter"))
	}
	w.CoverLetter = letter
	return nil
}

// Next advances review to confirm. The transition is unconditional; getting
// to review at all required tailoring or an explicit skip.
func (w *Wizard) Next() error {
	if w.step != StepReview {
		return fmt.Errorf("cannot advance at step %s", w.step)
	}
	w.step = StepConfirm
	return nil
}

// Back moves one step toward tailor. Already-generated content is kept.
func (w *Wizard) Back() {
	if w.step > StepTailor {
		w.step--
	}
}

// Submit creates the application record. On success the wizard closes and
// the job's external URL (if any) is returned for opening. On failure the
// wizard stays at the confirm step.
func (w *Wizard) Submit(ctx context.Context) (*models.Application, string, error) {
	if w.step != StepConfirm {
		return nil, "", fmt.Errorf("cannot submit at step %s", w.step)
	}
	if w.ResumeID == "" {
		return nil, "", app.ErrNoResumeSelected
	}

	application := models.Application{
		JobTitle: w.job.Title,
		Company:  w.job.Company,
		JobURL:   w.job.URL,
		ResumeID: w.ResumeID,
		Status:   models.StatusPending,
	}
	if w.tailored && w.TailoredContent != "" {
		content := w.TailoredContent
		application.TailoredResume = &content
	}
	if w.CoverLetter != "" {
		letter := w.CoverLetter
		application.CoverLetter = &letter
	}

	created, err := w.backend.CreateApplication(ctx, application)
	if err != nil {
		return nil, "", fmt.Errorf("%s", api.Detail(err, "Failed to create application"))
	}

	externalURL := w.job.URL
	w.Close()
	return created, externalURL, nil
}
