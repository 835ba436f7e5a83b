package models

import "time"

// User is the authenticated account as the backend reports it
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Location  string    `json:"location,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileCompleteness gates auto-apply eligibility
type ProfileCompleteness struct {
	Percentage    int      `json:"percentage"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

// Schedule frequencies accepted by the backend
const (
	FrequencyHourly      = "1h"
	FrequencyEverySix    = "6h"
	FrequencyEveryTwelve = "12h"
	FrequencyDaily       = "daily"
)

// Daily application cap bounds enforced by the backend
const (
	MinApplicationsPerDay = 1
	MaxApplicationsPerDay = 25
)

// AutoApplySettings is the full auto-apply configuration. Saves always send
// the complete object; reads may omit fields (see SettingsPatch).
type AutoApplySettings struct {
	Enabled               bool     `json:"enabled"`
	ResumeID              string   `json:"resume_id"`
	JobKeywords           []string `json:"job_keywords"`
	Locations             []string `json:"locations"`
	MaxApplicationsPerDay int      `json:"max_applications_per_day"`
	AutoTailorResume      bool     `json:"auto_tailor_resume"`
	GenerateCoverLetter   bool     `json:"generate_cover_letter"`
	AutoSubmitEnabled     bool     `json:"auto_submit_enabled"`
	ScheduleEnabled       bool     `json:"schedule_enabled"`
	ScheduleFrequency     string   `json:"schedule_frequency"`
}

// SettingsPatch is a partial settings payload. The backend omits fields it
// has no value for; nil means "leave the current value alone".
type SettingsPatch struct {
	Enabled               *bool     `json:"enabled,omitempty"`
	ResumeID              *string   `json:"resume_id,omitempty"`
	JobKeywords           *[]string `json:"job_keywords,omitempty"`
	Locations             *[]string `json:"locations,omitempty"`
	MaxApplicationsPerDay *int      `json:"max_applications_per_day,omitempty"`
	AutoTailorResume      *bool     `json:"auto_tailor_resume,omitempty"`
	GenerateCoverLetter   *bool     `json:"generate_cover_letter,omitempty"`
	AutoSubmitEnabled     *bool     `json:"auto_submit_enabled,omitempty"`
	ScheduleEnabled       *bool     `json:"schedule_enabled,omitempty"`
	ScheduleFrequency     *string   `json:"schedule_frequency,omitempty"`
}

// AutoApplyStatus is a read-only usage snapshot, replaced wholesale on refresh
type AutoApplyStatus struct {
	ApplicationsToday int     `json:"applications_today"`
	TotalSubmitted    int     `json:"total_submitted"`
	TotalFailed       int     `json:"total_failed"`
	SuccessRate       float64 `json:"success_rate"`
}

// Run source variants
const (
	SourceFree    = "free"
	SourcePremium = "premium"
)

// RunResult is the synchronous response of an auto-apply run
type RunResult struct {
	AppliedCount          int              `json:"applied_count"`
	Message               string           `json:"message,omitempty"`
	AutomationUnavailable bool             `json:"automation_unavailable,omitempty"`
	Applications          []RunApplication `json:"submitted_applications,omitempty"`
}

// RunApplication is one per-job outcome inside a run result
type RunApplication struct {
	JobTitle string `json:"job_title"`
	Company  string `json:"company"`
	JobURL   string `json:"job_url,omitempty"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

// Application statuses reported by the backend
const (
	StatusReadyToApply = "ready_to_apply"
	StatusPending      = "pending"
	StatusSubmitted    = "submitted"
	StatusApplied      = "applied"
	StatusFailed       = "failed"
	StatusError        = "error"
)

// HistoryEntry is one past auto-apply outcome. TailoredResume is inlined by
// the backend so viewing it needs no extra fetch.
type HistoryEntry struct {
	ID             string    `json:"id"`
	JobTitle       string    `json:"job_title"`
	Company        string    `json:"company"`
	Location       string    `json:"location,omitempty"`
	JobURL         string    `json:"job_url,omitempty"`
	Status         string    `json:"status"`
	TailoredResume string    `json:"tailored_resume,omitempty"`
	CoverLetter    string    `json:"cover_letter,omitempty"`
	Error          string    `json:"error,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Resume is a stored resume owned by the backend
type Resume struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Job is a posting returned by the live job search
type Job struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url,omitempty"`
	Source      string     `json:"source,omitempty"`
	SalaryRange string     `json:"salary_range,omitempty"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
}

// TailoredVersion is one alternate rendering of a tailored resume
type TailoredVersion struct {
	Label   string `json:"label"`
	Content string `json:"content"`
}

// TailorResult is the response of a resume tailoring call
type TailorResult struct {
	TailoredContent   string            `json:"tailored_content"`
	Versions          []TailoredVersion `json:"versions,omitempty"`
	ExtractedKeywords string            `json:"extracted_keywords,omitempty"`
	ATSScore          *int              `json:"ats_score,omitempty"`
}

// Application is a durable application record. TailoredResume and CoverLetter
// are null when the corresponding step was skipped.
type Application struct {
	ID             string    `json:"id,omitempty"`
	JobTitle       string    `json:"job_title"`
	Company        string    `json:"company"`
	JobURL         string    `json:"job_url,omitempty"`
	ResumeID       string    `json:"resume_id"`
	TailoredResume *string   `json:"tailored_resume"`
	CoverLetter    *string   `json:"cover_letter"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}
