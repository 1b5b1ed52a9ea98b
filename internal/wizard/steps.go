package wizard

import "careers-api/internal/models"

// Step identifies one state of the submission wizard.
type Step string

const (
	StepJobSelection           Step = "job_selection"
	StepPharmacistRequirements Step = "pharmacist_requirements"
	StepPersonalInfo           Step = "personal_info"
	StepExperience             Step = "experience"
	StepReview                 Step = "review"
	StepSubmitted              Step = "submitted"
)

// StepOrder returns the ordered step sequence for the given job. The
// pharmacist-requirements step is skipped for every other job.
func StepOrder(job models.Job) []Step {
	if job == models.JobPharmacist {
		return []Step{StepJobSelection, StepPharmacistRequirements, StepPersonalInfo, StepExperience, StepReview, StepSubmitted}
	}
	return []Step{StepJobSelection, StepPersonalInfo, StepExperience, StepReview, StepSubmitted}
}

func stepIndex(order []Step, step Step) int {
	for i, s := range order {
		if s == step {
			return i
		}
	}
	return -1
}
