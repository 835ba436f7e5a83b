package autoapply

import (
	"context"
	"errors"
	"testing"

	"github.com/applywise/applywise-cli/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSettingsBackend records calls and serves canned responses.
type fakeSettingsBackend struct {
	status      *models.AutoApplyStatus
	statusErr   error
	settings    *models.SettingsPatch
	settingsErr error
	updateErr   error
	toggleErr   error
	autofill    *models.SettingsPatch
	autofillErr error

	updated     []models.AutoApplySettings
	toggled     []bool
	statusCalls int
}

func (f *fakeSettingsBackend) AutoApplyStatus(ctx context.Context) (*models.AutoApplyStatus, error) {
	f.statusCalls++
	return f.status, f.statusErr
}

func (f *fakeSettingsBackend) AutoApplySettings(ctx context.Context) (*models.SettingsPatch, error) {
	return f.settings, f.settingsErr
}

func (f *fakeSettingsBackend) UpdateAutoApplySettings(ctx context.Context, settings models.AutoApplySettings) error {
	f.updated = append(f.updated, settings)
	return f.updateErr
}

func (f *fakeSettingsBackend) ToggleAutoApply(ctx context.Context, enabled bool) error {
	f.toggled = append(f.toggled, enabled)
	return f.toggleErr
}

func (f *fakeSettingsBackend) AutoFillSettings(ctx context.Context) (*models.SettingsPatch, error) {
	return f.autofill, f.autofillErr
}

func TestNewStoreDefaults(t *testing.T) {
	s := NewStore(&fakeSettingsBackend{})

	assert.False(t, s.Settings.Enabled)
	assert.Equal(t, 10, s.Settings.MaxApplicationsPerDay)
	assert.True(t, s.Settings.AutoTailorResume)
	assert.True(t, s.Settings.GenerateCoverLetter)
	assert.Equal(t, models.FrequencyDaily, s.Settings.ScheduleFrequency)
	assert.Empty(t, s.Settings.JobKeywords)
}

func TestLoadMergesPartialSettings(t *testing.T) {
	enabled := true
	cap := 5
	backend := &fakeSettingsBackend{
		status:   &models.AutoApplyStatus{ApplicationsToday: 3},
		settings: &models.SettingsPatch{Enabled: &enabled, MaxApplicationsPerDay: &cap},
	}
	s := NewStore(backend)

	out := s.Load(context.Background())

	require.NoError(t, out.StatusErr)
	require.NoError(t, out.SettingsErr)
	assert.Equal(t, 3, s.Status.ApplicationsToday)
	assert.True(t, s.Settings.Enabled)
	assert.Equal(t, 5, s.Settings.MaxApplicationsPerDay)
	// Omitted fields keep their defaults.
	assert.True(t, s.Settings.AutoTailorResume)
	assert.Equal(t, models.FrequencyDaily, s.Settings.ScheduleFrequency)
}

func TestLoadPartialFailure(t *testing.T) {
	enabled := true
	backend := &fakeSettingsBackend{
		statusErr: errors.New("boom"),
		settings:  &models.SettingsPatch{Enabled: &enabled},
	}
	s := NewStore(backend)

	out := s.Load(context.Background())

	assert.Error(t, out.StatusErr)
	assert.NoError(t, out.SettingsErr)
	assert.Nil(t, s.Status)
	assert.True(t, s.Settings.Enabled, "settings fetch still applies when status fetch fails")
}

func TestSaveValidatesBeforeSending(t *testing.T) {
	backend := &fakeSettingsBackend{}
	s := NewStore(backend)
	s.Settings.MaxApplicationsPerDay = 100

	err := s.Save(context.Background())

	assert.Error(t, err)
	assert.Empty(t, backend.updated, "invalid settings must not reach the backend")
}

func TestSaveKeepsLocalEditsOnFailure(t *testing.T) {
	backend := &fakeSettingsBackend{updateErr: errors.New("500")}
	s := NewStore(backend)
	s.AddKeyword("golang")

	err := s.Save(context.Background())

	assert.Error(t, err)
	assert.Equal(t, []string{"golang"}, s.Settings.JobKeywords)
}

func TestSaveRefreshesStatusOnSuccess(t *testing.T) {
	backend := &fakeSettingsBackend{status: &models.AutoApplyStatus{ApplicationsToday: 7}}
	s := NewStore(backend)

	require.NoError(t, s.Save(context.Background()))

	require.Len(t, backend.updated, 1)
	assert.Equal(t, 7, s.Status.ApplicationsToday)
}

func TestToggleMirrorsOnSuccessOnly(t *testing.T) {
	backend := &fakeSettingsBackend{toggleErr: errors.New("503")}
	s := NewStore(backend)

	assert.Error(t, s.Toggle(context.Background(), true))
	assert.False(t, s.Settings.Enabled)

	backend.toggleErr = nil
	require.NoError(t, s.Toggle(context.Background(), true))
	assert.True(t, s.Settings.Enabled)
}

func TestAutoFillMerges(t *testing.T) {
	keywords := []string{"go", "kubernetes"}
	backend := &fakeSettingsBackend{
		autofill: &models.SettingsPatch{JobKeywords: &keywords},
		status:   &models.AutoApplyStatus{},
	}
	s := NewStore(backend)
	s.Settings.ResumeID = "res_1"

	require.NoError(t, s.AutoFill(context.Background()))

	assert.Equal(t, keywords, s.Settings.JobKeywords)
	assert.Equal(t, "res_1", s.Settings.ResumeID, "omitted fields survive autofill")
}

func TestAddKeyword(t *testing.T) {
	s := NewStore(&fakeSettingsBackend{})

	assert.True(t, s.AddKeyword("  golang  "), "trimmed insert")
	assert.False(t, s.AddKeyword("golang"), "exact duplicate is a no-op")
	assert.True(t, s.AddKeyword("Golang"), "dedup is case-sensitive")
	assert.False(t, s.AddKeyword("   "), "blank input is a no-op")
	assert.Equal(t, []string{"golang", "Golang"}, s.Settings.JobKeywords)
}

func TestRemoveKeyword(t *testing.T) {
	s := NewStore(&fakeSettingsBackend{})
	s.AddKeyword("golang")
	s.AddKeyword("rust")

	assert.True(t, s.RemoveKeyword("golang"))
	assert.False(t, s.RemoveKeyword("golang"), "second remove is a no-op")
	assert.Equal(t, []string{"rust"}, s.Settings.JobKeywords)
}

func TestLocationListMutations(t *testing.T) {
	s := NewStore(&fakeSettingsBackend{})

	assert.True(t, s.AddLocation("Berlin"))
	assert.False(t, s.AddLocation("Berlin"))
	assert.True(t, s.RemoveLocation("Berlin"))
	assert.False(t, s.RemoveLocation("Munich"))
	assert.Empty(t, s.Settings.Locations)
}

func TestApplyPatchShallowOverwrite(t *testing.T) {
	settings := models.AutoApplySettings{
		ResumeID:              "res_old",
		MaxApplicationsPerDay: 10,
		JobKeywords:           []string{"go"},
	}
	resume := "res_new"
	ApplyPatch(&settings, &models.SettingsPatch{ResumeID: &resume})

	assert.Equal(t, "res_new", settings.ResumeID)
	assert.Equal(t, 10, settings.MaxApplicationsPerDay, "nil fields keep current values")
	assert.Equal(t, []string{"go"}, settings.JobKeywords)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.AutoApplySettings)
		wantError bool
	}{
		{"defaults are valid", func(s *models.AutoApplySettings) {}, false},
		{"cap at lower bound", func(s *models.AutoApplySettings) { s.MaxApplicationsPerDay = 1 }, false},
		{"cap at upper bound", func(s *models.AutoApplySettings) { s.MaxApplicationsPerDay = 25 }, false},
		{"cap below bound", func(s *models.AutoApplySettings) { s.MaxApplicationsPerDay = 0 }, true},
		{"cap above bound", func(s *models.AutoApplySettings) { s.MaxApplicationsPerDay = 26 }, true},
		{"hourly frequency", func(s *models.AutoApplySettings) { s.ScheduleFrequency = models.FrequencyHourly }, false},
		{"unknown frequency", func(s *models.AutoApplySettings) { s.ScheduleFrequency = "weekly" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := NewStore(&fakeSettingsBackend{}).Settings
			tt.mutate(&settings)
			err := Validate(settings)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
