package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/applywise/applywise-cli/pkg/models"
)

// SearchJobs queries the live job search. Source selects the aggregation
// variant ("free" or "premium").
func (c *Client) SearchJobs(ctx context.Context, source, query, location string, limit int) ([]models.Job, error) {
	params := url.Values{}
	params.Set("source", source)
	if query != "" {
		params.Set("q", query)
	}
	if location != "" {
		params.Set("location", location)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var jobs []models.Job
	if err := c.do(ctx, http.MethodGet, "/api/v1/jobs/search?"+params.Encode(), nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// RecommendedJobs fetches backend-matched postings for the user profile.
func (c *Client) RecommendedJobs(ctx context.Context, source string, limit int) ([]models.Job, error) {
	params := url.Values{}
	params.Set("source", source)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var jobs []models.Job
	if err := c.do(ctx, http.MethodGet, "/api/v1/jobs/recommended?"+params.Encode(), nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
