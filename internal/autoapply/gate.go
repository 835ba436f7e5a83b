package autoapply

import (
	"fmt"
	"strings"

	"github.com/applywise/applywise-cli/pkg/models"
)

// MinCompletenessPercent is the hard floor for running auto-apply.
const MinCompletenessPercent = 80

// Decision is the outcome of the eligibility gate.
type Decision struct {
	Allowed bool
	Reason  string
}

// CanRunAutoApply decides whether a run (or enabling the toggle) may proceed.
// An unknown completeness (nil, e.g. the fetch failed) blocks: the floor is a
// hard product constraint, so the gate fails closed.
func CanRunAutoApply(settings models.AutoApplySettings, completeness *models.ProfileCompleteness) Decision {
	if settings.ResumeID == "" {
		return Decision{Reason: "select a resume before running auto-apply"}
	}
	if completeness == nil {
		return Decision{Reason: "profile completeness is unknown; refresh your profile and try again"}
	}
	if completeness.Percentage < MinCompletenessPercent {
		reason := fmt.Sprintf("profile is %d%% complete; %d%% required",
			completeness.Percentage, MinCompletenessPercent)
		if len(completeness.MissingFields) > 0 {
			reason += " (missing: " + strings.Join(completeness.MissingFields, ", ") + ")"
		}
		return Decision{Reason: reason}
	}
	return Decision{Allowed: true}
}
