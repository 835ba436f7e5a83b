package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/applywise/applywise-cli/pkg/models"
	"github.com/google/uuid"
)

// AutoApplyStatus fetches the current usage snapshot.
func (c *Client) AutoApplyStatus(ctx context.Context) (*models.AutoApplyStatus, error) {
	var status models.AutoApplyStatus
	if err := c.do(ctx, http.MethodGet, "/api/v1/auto-apply/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// AutoApplySettings fetches the stored settings. The backend may omit fields,
// so the response is a patch to merge over local state, never a replacement.
func (c *Client) AutoApplySettings(ctx context.Context) (*models.SettingsPatch, error) {
	var patch models.SettingsPatch
	if err := c.do(ctx, http.MethodGet, "/api/v1/auto-apply/settings", nil, &patch); err != nil {
		return nil, err
	}
	return &patch, nil
}

// UpdateAutoApplySettings persists the full settings object.
func (c *Client) UpdateAutoApplySettings(ctx context.Context, settings models.AutoApplySettings) error {
	return c.do(ctx, http.MethodPut, "/api/v1/auto-apply/settings", settings, nil)
}

// ToggleAutoApply flips the enabled flag server-side.
func (c *Client) ToggleAutoApply(ctx context.Context, enabled bool) error {
	body := map[string]bool{"enabled": enabled}
	return c.do(ctx, http.MethodPost, "/api/v1/auto-apply/toggle", body, nil)
}

// RunAutoApply triggers a run against the given job source variant and blocks
// until the backend returns the run outcome. The idempotency key lets the
// backend dedupe a retried request after a dropped connection.
func (c *Client) RunAutoApply(ctx context.Context, source string) (*models.RunResult, error) {
	body := map[string]string{
		"source":          source,
		"idempotency_key": uuid.NewString(),
	}
	var result models.RunResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/auto-apply/run", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AutoApplyHistory fetches up to limit past run outcomes, newest first.
func (c *Client) AutoApplyHistory(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	path := fmt.Sprintf("/api/v1/auto-apply/history?limit=%d", limit)
	var entries []models.HistoryEntry
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AutoFillSettings asks the backend to derive settings from the profile.
// The response is a patch to merge over current settings.
func (c *Client) AutoFillSettings(ctx context.Context) (*models.SettingsPatch, error) {
	var patch models.SettingsPatch
	if err := c.do(ctx, http.MethodPost, "/api/v1/auto-apply/auto-fill-settings", nil, &patch); err != nil {
		return nil, err
	}
	return &patch, nil
}

// SubmitApplication retries submission of a single history entry.
func (c *Client) SubmitApplication(ctx context.Context, id string) error {
	path := "/api/v1/auto-apply/submit/" + url.PathEscape(id)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}
