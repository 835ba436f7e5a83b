package matcher

import (
	"sort"
	"strings"

	"github.com/applywise/applywise-cli/pkg/models"
)

// Score calculates how well a job posting matches the configured auto-apply
// settings. Returns a score between 0.0 and 1.0. This is a display ordering
// hint only; the backend owns the real matching.
func Score(job models.Job, settings models.AutoApplySettings) float64 {
	score := 0.0

	// Factor 1: keyword match against title and description (70% weight)
	score += matchKeywords(job, settings.JobKeywords) * 0.7

	// Factor 2: location preference (30% weight)
	score += matchLocation(job, settings.Locations) * 0.3

	return score
}

// matchKeywords checks how many configured keywords appear in the posting
func matchKeywords(job models.Job, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0.5 // Neutral if nothing is configured
	}

	haystack := strings.ToLower(job.Title + " " + job.Description)
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			matched++
		}
	}
	return float64(matched) / float64(len(keywords))
}

// matchLocation checks the posting location against the configured locations
func matchLocation(job models.Job, locations []string) float64 {
	if len(locations) == 0 {
		return 0.5
	}
	if job.Location == "" {
		return 0.5 // Neutral if the posting doesn't say
	}

	jobLoc := strings.ToLower(job.Location)
	if strings.Contains(jobLoc, "remote") {
		return 1.0
	}
	for _, loc := range locations {
		if strings.Contains(jobLoc, strings.ToLower(loc)) {
			return 1.0
		}
	}
	return 0.0
}

// SortByScore orders jobs by descending match score, keeping the backend's
// order for ties.
func SortByScore(jobs []models.Job, settings models.AutoApplySettings) {
	sort.SliceStable(jobs, func(i, j int) bool {
		return Score(jobs[i], settings) > Score(jobs[j], settings)
	})
}
