package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusScan(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    Status
		wantErr bool
	}{
		{"Valid string", "accepted", StatusAccepted, false},
		{"Valid bytes", []byte("under_review"), StatusUnderReview, false},
		{"Unknown value", "pending", "", true},
		{"Wrong type", 42, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Status
			err := s.Scan(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestChangeStatusAppendsOnly(t *testing.T) {
	app := &Application{Status: StatusUnderReview}

	first := app.ChangeStatus(StatusNeedsRevision, "missing certificate")
	assert.Equal(t, StatusNeedsRevision, app.Status)
	require.Len(t, app.StatusHistory, 1)
	assert.Equal(t, first, app.StatusHistory[0])
	assert.False(t, first.Timestamp.IsZero())

	second := app.ChangeStatus(StatusAccepted, "")
	assert.Equal(t, StatusAccepted, app.Status)
	require.Len(t, app.StatusHistory, 2)
	// The earlier entry is untouched.
	assert.Equal(t, first, app.StatusHistory[0])
	assert.Equal(t, second, app.StatusHistory[1])
}

func TestRequiredDocuments(t *testing.T) {
	tests := []struct {
		name  string
		job   Job
		level EducationLevel
		want  []DocumentKind
	}{
		{
			name:  "Assistant with bachelor",
			job:   JobAssistant,
			level: EducationBachelor,
			want:  []DocumentKind{DocNationalIDFront, DocNationalIDBack, DocCV, DocEducationCertificate},
		},
		{
			name:  "Assistant with no education",
			job:   JobAssistant,
			level: EducationNone,
			want:  []DocumentKind{DocNationalIDFront, DocNationalIDBack, DocCV},
		},
		{
			name:  "Pharmacist with master",
			job:   JobPharmacist,
			level: EducationMaster,
			want: []DocumentKind{
				DocNationalIDFront, DocNationalIDBack, DocCV, DocEducationCertificate,
				DocGraduationCertificate, DocPharmacistLicense, DocSyndicateCard,
			},
		},
		{
			name:  "Pharmacist with no education still needs the profession documents",
			job:   JobPharmacist,
			level: EducationNone,
			want: []DocumentKind{
				DocNationalIDFront, DocNationalIDBack, DocCV,
				DocGraduationCertificate, DocPharmacistLicense, DocSyndicateCard,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RequiredDocuments(tt.job, tt.level))
		})
	}
}

func TestMissingDocuments(t *testing.T) {
	docs := map[DocumentKind]string{
		DocNationalIDFront: "https://files.example/front",
		DocNationalIDBack:  "https://files.example/back",
		DocCV:              "", // empty locator counts as missing
	}

	missing := MissingDocuments(JobAssistant, EducationBachelor, docs)
	assert.Equal(t, []DocumentKind{DocCV, DocEducationCertificate}, missing)

	complete := map[DocumentKind]string{
		DocNationalIDFront: "a",
		DocNationalIDBack:  "b",
		DocCV:              "c",
	}
	assert.Empty(t, MissingDocuments(JobAssistant, EducationNone, complete))
}

func TestValidationPatterns(t *testing.T) {
	assert.True(t, NationalIDPattern.MatchString("29901011234567"))
	assert.False(t, NationalIDPattern.MatchString("2990101123456"))   // 13 digits
	assert.False(t, NationalIDPattern.MatchString("299010112345678")) // 15 digits
	assert.False(t, NationalIDPattern.MatchString("2990101123456a"))

	assert.True(t, EgyptMobilePattern.MatchString("01012345678"))
	assert.False(t, EgyptMobilePattern.MatchString("0101234567"))    // 10 digits
	assert.False(t, EgyptMobilePattern.MatchString("02012345678"))   // wrong prefix
	assert.False(t, EgyptMobilePattern.MatchString("+201012345678")) // country code
}
