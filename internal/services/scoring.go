package services

import "careers-api/internal/models"

// Scoring policy for the automatic component of an application's score.
// Education and experience are independent; the document component applies
// to pharmacist applications only and gives no partial credit.
const (
	experiencePointsPerEntry = 5
	experienceScoreCap       = 20
	pharmacistDocumentScore  = 20
)

var educationScores = map[models.EducationLevel]int{
	models.EducationPhd:      30,
	models.EducationMaster:   25,
	models.EducationBachelor: 20,
	models.EducationDiploma:  15,
	models.EducationNone:     0,
}

// EducationScore returns the fixed point value for an education level.
// Unknown levels score zero.
func EducationScore(level models.EducationLevel) int {
	return educationScores[level]
}

// ExperienceScore returns min(5*n, 20) for n experience entries.
func ExperienceScore(count int) int {
	score := count * experiencePointsPerEntry
	if score > experienceScoreCap {
		return experienceScoreCap
	}
	if score < 0 {
		return 0
	}
	return score
}

// DocumentScore awards a flat 20 points only when the job is pharmacist and
// both the license and syndicate card are on file. Non-pharmacist
// applications always score zero here regardless of what was uploaded.
func DocumentScore(job models.Job, docs map[models.DocumentKind]string) int {
	if job != models.JobPharmacist {
		return 0
	}
	if docs[models.DocPharmacistLicense] != "" && docs[models.DocSyndicateCard] != "" {
		return pharmacistDocumentScore
	}
	return 0
}

// AutoScore computes the automatic score from the application's attributes.
// Deterministic and idempotent: the same inputs always produce the same
// score, and absent fields simply contribute zero.
func AutoScore(app *models.Application) int {
	return EducationScore(app.EducationLevel) +
		ExperienceScore(len(app.Experiences)) +
		DocumentScore(app.SelectedJob, app.Documents)
}
