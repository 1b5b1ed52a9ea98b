package wizard

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"careers-api/internal/models"
)

// FieldErrors maps field names to their validation messages. A failed step
// surfaces these inline and blocks advancement.
type FieldErrors map[string]string

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// JobSelectionPayload is the input of the job-selection step.
type JobSelectionPayload struct {
	SelectedJob models.Job `json:"selected_job"`
}

func (p *JobSelectionPayload) validate() FieldErrors {
	errs := FieldErrors{}
	if !p.SelectedJob.IsValid() {
		errs["selected_job"] = "a known job must be selected"
	}
	return errs
}

// PersonalInfoPayload is the input of the personal-info step. The file
// attachments it depends on are validated against the draft's file store.
type PersonalInfoPayload struct {
	FullName       string                `json:"full_name"`
	Email          string                `json:"email"`
	Phone          string                `json:"phone"`
	NationalID     string                `json:"national_id"`
	Address        string                `json:"address"`
	EducationLevel models.EducationLevel `json:"education_level"`
	Transportation models.Transportation `json:"transportation"`
}

func (p *PersonalInfoPayload) validate() FieldErrors {
	errs := FieldErrors{}
	if len(strings.TrimSpace(p.FullName)) < 6 {
		errs["full_name"] = "full name must be at least 6 characters"
	}
	if !emailPattern.MatchString(p.Email) {
		errs["email"] = "a valid email address is required"
	}
	if !models.EgyptMobilePattern.MatchString(p.Phone) {
		errs["phone"] = "phone must start with 01 and contain 11 digits"
	}
	if !models.NationalIDPattern.MatchString(p.NationalID) {
		errs["national_id"] = "national ID must contain exactly 14 digits"
	}
	if len(strings.TrimSpace(p.Address)) < 10 {
		errs["address"] = "address must be at least 10 characters"
	}
	if !p.EducationLevel.IsValid() {
		errs["education_level"] = "an education level must be selected"
	}
	if !p.Transportation.IsValid() {
		errs["transportation"] = "a transportation means must be selected"
	}
	return errs
}

// ExperienceEntry is one prior-employment entry as entered in the wizard.
// Dates arrive as strings ("2006-01-02" or RFC3339) and are parsed during
// validation.
type ExperienceEntry struct {
	CompanyName      string  `json:"company_name"`
	ManagerPhone     string  `json:"manager_phone"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	ReasonForLeaving string  `json:"reason_for_leaving"`
	AverageSales     float64 `json:"average_sales"`
}

// ExperiencePayload is the input of the experience step.
type ExperiencePayload struct {
	Experiences []ExperienceEntry `json:"experiences"`
}

func (p *ExperiencePayload) validate() FieldErrors {
	errs := FieldErrors{}
	if len(p.Experiences) == 0 {
		errs["experiences"] = "at least one experience entry is required"
		return errs
	}

	for i, exp := range p.Experiences {
		prefix := "experiences[" + strconv.Itoa(i) + "]."
		if strings.TrimSpace(exp.CompanyName) == "" {
			errs[prefix+"company_name"] = "company name is required"
		}
		if !models.EgyptMobilePattern.MatchString(exp.ManagerPhone) {
			errs[prefix+"manager_phone"] = "manager phone must start with 01 and contain 11 digits"
		}
		start, startErr := parseDate(exp.StartDate)
		if startErr != nil {
			errs[prefix+"start_date"] = "start date is required"
		}
		end, endErr := parseDate(exp.EndDate)
		if endErr != nil {
			errs[prefix+"end_date"] = "end date is required"
		}
		if startErr == nil && endErr == nil && end.Before(start) {
			errs[prefix+"end_date"] = "end date cannot be before start date"
		}
		if strings.TrimSpace(exp.ReasonForLeaving) == "" {
			errs[prefix+"reason_for_leaving"] = "reason for leaving is required"
		}
		if exp.AverageSales <= 0 {
			errs[prefix+"average_sales"] = "average sales must be a positive number"
		} else if exp.AverageSales > 1000000 {
			errs[prefix+"average_sales"] = "average sales must not exceed 1,000,000"
		}
	}
	return errs
}

func (p *ExperiencePayload) toModel() []models.Experience {
	experiences := make([]models.Experience, 0, len(p.Experiences))
	for _, exp := range p.Experiences {
		start, _ := parseDate(exp.StartDate)
		end, _ := parseDate(exp.EndDate)
		experiences = append(experiences, models.Experience{
			CompanyName:      exp.CompanyName,
			ManagerPhone:     exp.ManagerPhone,
			StartDate:        start,
			EndDate:          end,
			ReasonForLeaving: exp.ReasonForLeaving,
			AverageSales:     exp.AverageSales,
		})
	}
	return experiences
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
