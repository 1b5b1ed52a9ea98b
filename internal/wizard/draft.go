package wizard

import "context"

// Fixed key names for per-step draft state. Structured step input and file
// attachments live in separate stores because the field store is
// string-oriented and sized for small JSON payloads, while files are
// inlined byte representations.
const (
	KeySelectedJob    = "selectedJob"
	KeyPharmacistDocs = "pharmacistDocs"
	KeyPersonalInfo   = "personalInfo"
	KeyExperiences    = "experiences"
	KeyCurrentStep    = "currentStep"
)

// DraftStore persists one applicant's in-progress wizard input keyed by
// session. Implementations must treat a missing key as ("", nil).
type DraftStore interface {
	GetField(ctx context.Context, session, key string) (string, error)
	SetField(ctx context.Context, session, key, value string) error
	DeleteField(ctx context.Context, session, key string) error

	// Files are stored separately from structured fields, base64-encoded.
	GetFile(ctx context.Context, session, kind string) (string, error)
	SetFile(ctx context.Context, session, kind, encoded string) error
	Files(ctx context.Context, session string) (map[string]string, error)

	// Clear removes every field, file and lock for the session. Invoked
	// only on confirmed successful submission.
	Clear(ctx context.Context, session string) error

	// AcquireSubmitLock guards the final submission against re-entrancy.
	AcquireSubmitLock(ctx context.Context, session string) (bool, error)
	ReleaseSubmitLock(ctx context.Context, session string) error
}
