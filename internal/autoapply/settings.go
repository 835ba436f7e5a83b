// Package autoapply holds the client-side orchestration for the backend's
// bulk auto-apply process: the settings store, the eligibility gate, the run
// controller and the history view logic. The backend owns job matching and
// submission; everything here is request sequencing and local view state.
package autoapply

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/applywise/applywise-cli/pkg/models"
)

// SettingsBackend is the slice of the API client the settings store needs.
type SettingsBackend interface {
	AutoApplyStatus(ctx context.Context) (*models.AutoApplyStatus, error)
	AutoApplySettings(ctx context.Context) (*models.SettingsPatch, error)
	UpdateAutoApplySettings(ctx context.Context, settings models.AutoApplySettings) error
	ToggleAutoApply(ctx context.Context, enabled bool) error
	AutoFillSettings(ctx context.Context) (*models.SettingsPatch, error)
}

// Store holds the auto-apply configuration and usage snapshot. Mutators are
// local and synchronous; only Load, Save, AutoFill and Toggle touch the
// network. Local edits survive a failed save.
type Store struct {
	backend SettingsBackend

	Settings models.AutoApplySettings
	Status   *models.AutoApplyStatus
}

// NewStore creates a settings store with client-side defaults. The defaults
// are replaced field by field as the backend reports stored values.
func NewStore(backend SettingsBackend) *Store {
	return &Store{
		backend: backend,
		Settings: models.AutoApplySettings{
			JobKeywords:           []string{},
			Locations:             []string{},
			MaxApplicationsPerDay: 10,
			AutoTailorResume:      true,
			GenerateCoverLetter:   true,
			ScheduleFrequency:     models.FrequencyDaily,
		},
	}
}

// LoadOutcome reports the two independent fetches of Load. Either may fail
// without affecting the other.
type LoadOutcome struct {
	StatusErr   error
	SettingsErr error
}

// Load fetches the status snapshot and the stored settings in parallel.
// Settings merge into existing state by shallow overwrite so fields the
// backend omits keep their current value.
func (s *Store) Load(ctx context.Context) LoadOutcome {
	var out LoadOutcome
	var wg sync.WaitGroup
	var patch *models.SettingsPatch
	var status *models.AutoApplyStatus

	wg.Add(2)
	go func() {
		defer wg.Done()
		status, out.StatusErr = s.backend.AutoApplyStatus(ctx)
	}()
	go func() {
		defer wg.Done()
		patch, out.SettingsErr = s.backend.AutoApplySettings(ctx)
	}()
	wg.Wait()

	if out.StatusErr == nil {
		s.Status = status
	}
	if out.SettingsErr == nil && patch != nil {
		ApplyPatch(&s.Settings, patch)
	}
	return out
}

// Save persists the full settings object. On success only the status
// snapshot is refreshed (quota and usage may have changed); the stored
// settings are already what we sent. On failure local edits stay intact.
func (s *Store) Save(ctx context.Context) error {
	if err := Validate(s.Settings); err != nil {
		return err
	}
	if err := s.backend.UpdateAutoApplySettings(ctx, s.Settings); err != nil {
		return err
	}
	s.refreshStatus(ctx)
	return nil
}

// AutoFill merges backend-derived settings from the profile into the current
// settings. The status snapshot is refreshed regardless of outcome.
func (s *Store) AutoFill(ctx context.Context) error {
	patch, err := s.backend.AutoFillSettings(ctx)
	if err == nil && patch != nil {
		ApplyPatch(&s.Settings, patch)
	}
	s.refreshStatus(ctx)
	return err
}

// Toggle flips the enabled flag server-side and mirrors it locally on success.
func (s *Store) Toggle(ctx context.Context, enabled bool) error {
	if err := s.backend.ToggleAutoApply(ctx, enabled); err != nil {
		return err
	}
	s.Settings.Enabled = enabled
	s.refreshStatus(ctx)
	return nil
}

func (s *Store) refreshStatus(ctx context.Context) {
	if status, err := s.backend.AutoApplyStatus(ctx); err == nil {
		s.Status = status
	}
}

// AddKeyword adds a keyword to the list. No-op when the trimmed input is
// empty or already present (case-sensitive exact match). Reports whether the
// list changed.
func (s *Store) AddKeyword(raw string) bool {
	return addUnique(&s.Settings.JobKeywords, raw)
}

// RemoveKeyword removes a keyword by exact match.
func (s *Store) RemoveKeyword(keyword string) bool {
	return removeExact(&s.Settings.JobKeywords, keyword)
}

// AddLocation adds a location to the list with the same rules as AddKeyword.
func (s *Store) AddLocation(raw string) bool {
	return addUnique(&s.Settings.Locations, raw)
}

// RemoveLocation removes a location by exact match.
func (s *Store) RemoveLocation(location string) bool {
	return removeExact(&s.Settings.Locations, location)
}

func addUnique(list *[]string, raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}
	for _, existing := range *list {
		if existing == trimmed {
			return false
		}
	}
	*list = append(*list, trimmed)
	return true
}

func removeExact(list *[]string, value string) bool {
	kept := (*list)[:0]
	removed := false
	for _, existing := range *list {
		if existing == value {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	*list = kept
	return removed
}

// ApplyPatch shallow-merges a partial settings payload: non-nil fields
// replace, nil fields keep the current value.
func ApplyPatch(settings *models.AutoApplySettings, patch *models.SettingsPatch) {
	if patch.Enabled != nil {
		settings.Enabled = *patch.Enabled
	}
	if patch.ResumeID != nil {
		settings.ResumeID = *patch.ResumeID
	}
	if patch.JobKeywords != nil {
		settings.JobKeywords = *patch.JobKeywords
	}
	if patch.Locations != nil {
		settings.Locations = *patch.Locations
	}
	if patch.MaxApplicationsPerDay != nil {
		settings.MaxApplicationsPerDay = *patch.MaxApplicationsPerDay
	}
	if patch.AutoTailorResume != nil {
		settings.AutoTailorResume = *patch.AutoTailorResume
	}
	if patch.GenerateCoverLetter != nil {
		settings.GenerateCoverLetter = *patch.GenerateCoverLetter
	}
	if patch.AutoSubmitEnabled != nil {
		settings.AutoSubmitEnabled = *patch.AutoSubmitEnabled
	}
	if patch.ScheduleEnabled != nil {
		settings.ScheduleEnabled = *patch.ScheduleEnabled
	}
	if patch.ScheduleFrequency != nil {
		settings.ScheduleFrequency = *patch.ScheduleFrequency
	}
}

// Validate checks the invariants the backend enforces so bad values are
// caught before any request is made.
func Validate(settings models.AutoApplySettings) error {
	if settings.MaxApplicationsPerDay < models.MinApplicationsPerDay ||
		settings.MaxApplicationsPerDay > models.MaxApplicationsPerDay {
		return fmt.Errorf("max applications per day must be between %d and %d",
			models.MinApplicationsPerDay, models.MaxApplicationsPerDay)
	}
	switch settings.ScheduleFrequency {
	case models.FrequencyHourly, models.FrequencyEverySix, models.FrequencyEveryTwelve, models.FrequencyDaily:
	default:
		return fmt.Errorf("invalid schedule frequency: %q", settings.ScheduleFrequency)
	}
	return nil
}
