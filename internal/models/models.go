package models

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// --- Job Enum ---
type Job string

const (
	JobPharmacist Job = "pharmacist"
	JobAssistant  Job = "assistant"
	JobAccountant Job = "accountant"
	JobFinancial  Job = "financial"
)

// Scan implements the sql.Scanner interface for Job
func (j *Job) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Job: value is not string or []byte")
		}
	}
	v := Job(strVal)
	switch v {
	case JobPharmacist, JobAssistant, JobAccountant, JobFinancial:
		*j = v
		return nil
	default:
		return fmt.Errorf("invalid Job value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for Job
func (j Job) Value() (driver.Value, error) {
	return string(j), nil
}

// IsValid reports whether j is one of the known job identifiers.
func (j Job) IsValid() bool {
	switch j {
	case JobPharmacist, JobAssistant, JobAccountant, JobFinancial:
		return true
	}
	return false
}

// --- Education Level Enum ---
type EducationLevel string

const (
	EducationNone     EducationLevel = "none"
	EducationDiploma  EducationLevel = "diploma"
	EducationBachelor EducationLevel = "bachelor"
	EducationMaster   EducationLevel = "master"
	EducationPhd      EducationLevel = "phd"
)

// Scan implements the sql.Scanner interface for EducationLevel
func (el *EducationLevel) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan EducationLevel: value is not string or []byte")
		}
	}
	v := EducationLevel(strVal)
	switch v {
	case EducationNone, EducationDiploma, EducationBachelor, EducationMaster, EducationPhd:
		*el = v
		return nil
	default:
		return fmt.Errorf("invalid EducationLevel value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for EducationLevel
func (el EducationLevel) Value() (driver.Value, error) {
	return string(el), nil
}

func (el EducationLevel) IsValid() bool {
	switch el {
	case EducationNone, EducationDiploma, EducationBachelor, EducationMaster, EducationPhd:
		return true
	}
	return false
}

// --- Transportation Enum ---
type Transportation string

const (
	TransportationCar        Transportation = "car"
	TransportationMotorcycle Transportation = "motorcycle"
	TransportationBicycle    Transportation = "bicycle"
	TransportationPublic     Transportation = "public"
	TransportationNone       Transportation = "none"
)

// Scan implements the sql.Scanner interface for Transportation
func (tr *Transportation) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Transportation: value is not string or []byte")
		}
	}
	v := Transportation(strVal)
	switch v {
	case TransportationCar, TransportationMotorcycle, TransportationBicycle, TransportationPublic, TransportationNone:
		*tr = v
		return nil
	default:
		return fmt.Errorf("invalid Transportation value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for Transportation
func (tr Transportation) Value() (driver.Value, error) {
	return string(tr), nil
}

func (tr Transportation) IsValid() bool {
	switch tr {
	case TransportationCar, TransportationMotorcycle, TransportationBicycle, TransportationPublic, TransportationNone:
		return true
	}
	return false
}

// --- Application Status Enum ---
type Status string

const (
	StatusUnderReview   Status = "under_review"
	StatusNeedsRevision Status = "needs_revision"
	StatusAccepted      Status = "accepted"
	StatusRejected      Status = "rejected"
)

// Scan implements the sql.Scanner interface for Status
func (s *Status) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Status: value is not string or []byte")
		}
	}
	v := Status(strVal)
	switch v {
	case StatusUnderReview, StatusNeedsRevision, StatusAccepted, StatusRejected:
		*s = v
		return nil
	default:
		return fmt.Errorf("invalid Status value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for Status
func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}

func (s Status) IsValid() bool {
	switch s {
	case StatusUnderReview, StatusNeedsRevision, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// --- Document Kinds ---
// DocumentKind identifies one uploaded document slot on an application.
type DocumentKind string

const (
	DocNationalIDFront       DocumentKind = "national_id_front"
	DocNationalIDBack        DocumentKind = "national_id_back"
	DocEducationCertificate  DocumentKind = "education_certificate"
	DocCV                    DocumentKind = "cv"
	DocPharmacistLicense     DocumentKind = "pharmacist_license"
	DocSyndicateCard         DocumentKind = "syndicate_card"
	DocGraduationCertificate DocumentKind = "graduation_certificate"
)

// Validation patterns shared by the creation boundary and the wizard steps.
var (
	NationalIDPattern  = regexp.MustCompile(`^[0-9]{14}$`)
	EgyptMobilePattern = regexp.MustCompile(`^01[0-9]{9}$`)
)

// Experience is one prior-employment entry on an application.
type Experience struct {
	CompanyName      string    `json:"company_name"`
	ManagerPhone     string    `json:"manager_phone"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	ReasonForLeaving string    `json:"reason_for_leaving"`
	AverageSales     float64   `json:"average_sales"`
}

// StatusChange is one immutable entry in an application's status history.
type StatusChange struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// Application is one applicant's submitted record.
type Application struct {
	ID             uuid.UUID               `json:"id" db:"id"`
	FullName       string                  `json:"full_name" db:"full_name"`
	Email          string                  `json:"email" db:"email"`
	Phone          string                  `json:"phone" db:"phone"`
	NationalID     string                  `json:"national_id" db:"national_id"`
	Address        string                  `json:"address" db:"address"`
	SelectedJob    Job                     `json:"selected_job" db:"selected_job"`
	EducationLevel EducationLevel          `json:"education_level" db:"education_level"`
	Transportation Transportation          `json:"transportation" db:"transportation"`
	Documents      map[DocumentKind]string `json:"documents" db:"documents"` // kind -> stored file URL
	Experiences    []Experience            `json:"experiences" db:"experiences"`
	Status         Status                  `json:"status" db:"status"`
	StatusHistory  []StatusChange          `json:"status_history" db:"status_history"`
	AutoScore      int                     `json:"auto_score" db:"auto_score"`
	ManualScore    int                     `json:"manual_score" db:"manual_score"`
	TotalScore     int                     `json:"total_score" db:"total_score"`
	AdminNotes     string                  `json:"admin_notes" db:"admin_notes"`
	CreatedAt      time.Time               `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at" db:"updated_at"`
}

// ChangeStatus sets the status field and appends exactly one history entry.
// Prior entries are never mutated or removed. The appended entry is returned
// so the caller can hand it to the notification dispatcher.
func (a *Application) ChangeStatus(newStatus Status, note string) StatusChange {
	change := StatusChange{
		Status:    newStatus,
		Timestamp: time.Now().UTC(),
		Note:      note,
	}
	a.Status = newStatus
	a.StatusHistory = append(a.StatusHistory, change)
	return change
}

// RecalculateTotal keeps the invariant: total is always auto + manual.
func (a *Application) RecalculateTotal() {
	a.TotalScore = a.AutoScore + a.ManualScore
}

// Admin represents a reviewer account.
type Admin struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
