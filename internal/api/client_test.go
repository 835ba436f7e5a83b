package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok_123")
	_, err := client.AutoApplyStatus(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok_123", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.AutoApplyStatus(context.Background())
	require.NoError(t, err)

	assert.Empty(t, got.Get("Authorization"))
}

func TestErrorDetailExtraction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"detail": "Daily application limit reached"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	_, err := client.RunAutoApply(context.Background(), "free")

	require.Error(t, err)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "Daily application limit reached", apiErr.Detail)
	assert.Equal(t, "Daily application limit reached", Detail(err, "fallback"))
}

func TestErrorWithoutDetailUsesFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream exploded`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	_, err := client.AutoApplyStatus(context.Background())

	require.Error(t, err)
	assert.Equal(t, "fallback", Detail(err, "fallback"))
	assert.Equal(t, "fallback", Detail(errors.New("plain error"), "fallback"))
}

func TestSettingsPatchKeepsOmittedFieldsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"enabled": true, "max_applications_per_day": 5}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	patch, err := client.AutoApplySettings(context.Background())

	require.NoError(t, err)
	require.NotNil(t, patch.Enabled)
	assert.True(t, *patch.Enabled)
	require.NotNil(t, patch.MaxApplicationsPerDay)
	assert.Equal(t, 5, *patch.MaxApplicationsPerDay)
	assert.Nil(t, patch.ResumeID, "omitted fields stay nil so merges leave them alone")
	assert.Nil(t, patch.JobKeywords)
}

func TestRunAutoApplySendsSource(t *testing.T) {
	var body map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auto-apply/run", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"applied_count": 1, "submitted_applications": [{"job_title": "A", "company": "X", "success": true}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	result, err := client.RunAutoApply(context.Background(), "premium")

	require.NoError(t, err)
	assert.Equal(t, "premium", body["source"])
	assert.NotEmpty(t, body["idempotency_key"])
	assert.Equal(t, 1, result.AppliedCount)
	require.Len(t, result.Applications, 1)
	assert.True(t, result.Applications[0].Success)
}

func TestAutoApplyHistoryLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auto-apply/history", r.URL.Path)
		assert.Equal(t, "15", r.URL.Query().Get("limit"))
		w.Write([]byte(`[{"id": "h1", "job_title": "A", "company": "X", "status": "submitted"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	entries, err := client.AutoApplyHistory(context.Background(), 15)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "submitted", entries[0].Status)
}

func TestSubmitApplicationEscapesID(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	err := client.SubmitApplication(context.Background(), "app/1")

	require.NoError(t, err)
	assert.Equal(t, "/api/v1/auto-apply/submit/app%2F1", path)
}

func TestGenerateCoverLetterUnwrapsResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cover_letter": "Dear team"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	letter, err := client.GenerateCoverLetter(context.Background(), CoverLetterRequest{ResumeID: "res_1"})

	require.NoError(t, err)
	assert.Equal(t, "Dear team", letter)
}

func TestDownloadResumeReturnsRawBytes(t *testing.T) {
	payload := []byte{0x50, 0x4b, 0x03, 0x04} // docx magic
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/resumes/res_1/download", r.URL.Path)
		w.Write(payload)
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	data, err := client.DownloadResume(context.Background(), "res_1")

	require.NoError(t, err)
	assert.Equal(t, payload, data)
}
