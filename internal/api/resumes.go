package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/applywise/applywise-cli/pkg/models"
)

// TailorRequest carries the job context for a resume tailoring call.
// Instructions is optional free-text guidance for the AI.
type TailorRequest struct {
	ResumeID       string `json:"resume_id"`
	JobTitle       string `json:"job_title"`
	JobDescription string `json:"job_description"`
	Company        string `json:"company"`
	Instructions   string `json:"instructions,omitempty"`
}

// CoverLetterRequest carries the job context for cover letter generation.
type CoverLetterRequest struct {
	ResumeID       string `json:"resume_id"`
	JobTitle       string `json:"job_title"`
	JobDescription string `json:"job_description"`
	Company        string `json:"company"`
}

// ListResumes fetches the user's stored resumes.
func (c *Client) ListResumes(ctx context.Context) ([]models.Resume, error) {
	var resumes []models.Resume
	if err := c.do(ctx, http.MethodGet, "/api/v1/resumes", nil, &resumes); err != nil {
		return nil, err
	}
	return resumes, nil
}

// TailorResume rewrites resume content for a specific job.
func (c *Client) TailorResume(ctx context.Context, req TailorRequest) (*models.TailorResult, error) {
	var result models.TailorResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/resumes/tailor", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateWord renders resume content as a Word document and returns the bytes.
func (c *Client) GenerateWord(ctx context.Context, name, content string) ([]byte, error) {
	body := map[string]string{"name": name, "content": content}
	return c.doRaw(ctx, http.MethodPost, "/api/v1/resumes/generate-word", body)
}

// DownloadResume fetches the stored resume file.
func (c *Client) DownloadResume(ctx context.Context, id string) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, "/api/v1/resumes/"+url.PathEscape(id)+"/download", nil)
}

// GenerateCoverLetter produces a cover letter for the given job context.
func (c *Client) GenerateCoverLetter(ctx context.Context, req CoverLetterRequest) (string, error) {
	var result struct {
		CoverLetter string `json:"cover_letter"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/cover-letters/generate", req, &result); err != nil {
		return "", err
	}
	return result.CoverLetter, nil
}

// CreateApplication records one application with the backend.
func (c *Client) CreateApplication(ctx context.Context, app models.Application) (*models.Application, error) {
	var created models.Application
	if err := c.do(ctx, http.MethodPost, "/api/v1/applications", app, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// SavedResume downloads the resume file attached to an application record.
func (c *Client) SavedResume(ctx context.Context, appID string) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, "/api/v1/applications/"+url.PathEscape(appID)+"/saved-resume", nil)
}
