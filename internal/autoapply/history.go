package autoapply

import "github.com/applywise/applywise-cli/pkg/models"

// DefaultHistoryLimit is the fixed page size of the history fetch. There is
// no cursor; older entries are unreachable from this client.
const DefaultHistoryLimit = 20

// HistoryCounts are derived client-side from the fetched page.
type HistoryCounts struct {
	Submitted int
	Failed    int
	Pending   int
}

// CountByOutcome buckets history entries by status.
func CountByOutcome(entries []models.HistoryEntry) HistoryCounts {
	var counts HistoryCounts
	for _, e := range entries {
		switch e.Status {
		case models.StatusSubmitted, models.StatusApplied:
			counts.Submitted++
		case models.StatusFailed, models.StatusError:
			counts.Failed++
		case models.StatusPending, models.StatusReadyToApply:
			counts.Pending++
		}
	}
	return counts
}

// FindEntry locates a history entry by ID within a fetched page, or nil.
func FindEntry(entries []models.HistoryEntry, id string) *models.HistoryEntry {
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i]
		}
	}
	return nil
}

// CanRetry reports whether an entry is eligible for manual submission:
// anything that failed or never went out.
func CanRetry(e models.HistoryEntry) bool {
	switch e.Status {
	case models.StatusFailed, models.StatusError, models.StatusPending, models.StatusReadyToApply:
		return true
	}
	return false
}

// CanApplyExternally reports whether the entry supports the manual
// apply-on-the-job-board affordance.
func CanApplyExternally(e models.HistoryEntry) bool {
	return CanRetry(e) && e.JobURL != ""
}
