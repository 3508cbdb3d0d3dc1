// Package domain holds the typed identifiers shared across the platform.
//
// Every entity gets its own UUID-backed type so the compiler catches a
// DocumentID passed where a UserID belongs. Parse helpers enforce the
// invariant that IDs crossing a trust boundary are valid, non-nil UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "docshelf/pkg/domain-errors"
)

type (
	// UserID identifies any platform user regardless of role.
	UserID uuid.UUID

	// DocumentID identifies an uploaded document.
	DocumentID uuid.UUID

	// OrgID identifies an organization profile.
	OrgID uuid.UUID

	// ReviewRequestID identifies a reviewer assignment on a document.
	ReviewRequestID uuid.UUID

	// ReviewID identifies a submitted document review.
	ReviewID uuid.UUID

	// RedemptionID identifies a reader's purchase of a premium document.
	RedemptionID uuid.UUID
)

func (id UserID) String() string          { return uuid.UUID(id).String() }
func (id DocumentID) String() string      { return uuid.UUID(id).String() }
func (id OrgID) String() string           { return uuid.UUID(id).String() }
func (id ReviewRequestID) String() string { return uuid.UUID(id).String() }
func (id ReviewID) String() string        { return uuid.UUID(id).String() }
func (id RedemptionID) String() string    { return uuid.UUID(id).String() }

// MarshalText renders IDs as canonical UUID strings in JSON payloads.
func (id UserID) MarshalText() ([]byte, error)          { return []byte(id.String()), nil }
func (id DocumentID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }
func (id OrgID) MarshalText() ([]byte, error)           { return []byte(id.String()), nil }
func (id ReviewRequestID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id ReviewID) MarshalText() ([]byte, error)        { return []byte(id.String()), nil }
func (id RedemptionID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(text []byte) error {
	parsed, err := uuid.Parse(string(text))
	if err != nil {
		return err
	}
	*id = UserID(parsed)
	return nil
}

func (id *DocumentID) UnmarshalText(text []byte) error {
	parsed, err := uuid.Parse(string(text))
	if err != nil {
		return err
	}
	*id = DocumentID(parsed)
	return nil
}

func (id UserID) IsZero() bool          { return uuid.UUID(id) == uuid.Nil }
func (id DocumentID) IsZero() bool      { return uuid.UUID(id) == uuid.Nil }
func (id OrgID) IsZero() bool           { return uuid.UUID(id) == uuid.Nil }
func (id ReviewRequestID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }
func (id ReviewID) IsZero() bool        { return uuid.UUID(id) == uuid.Nil }
func (id RedemptionID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }

// NewUserID returns a fresh random UserID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewDocumentID returns a fresh random DocumentID.
func NewDocumentID() DocumentID { return DocumentID(uuid.New()) }

// NewOrgID returns a fresh random OrgID.
func NewOrgID() OrgID { return OrgID(uuid.New()) }

// NewReviewRequestID returns a fresh random ReviewRequestID.
func NewReviewRequestID() ReviewRequestID { return ReviewRequestID(uuid.New()) }

// NewReviewID returns a fresh random ReviewID.
func NewReviewID() ReviewID { return ReviewID(uuid.New()) }

// NewRedemptionID returns a fresh random RedemptionID.
func NewRedemptionID() RedemptionID { return RedemptionID(uuid.New()) }

func parseUUID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is required")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is not a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return parsed, nil
}

// ParseUserID parses and validates a UserID from its string form.
func ParseUserID(raw string) (UserID, error) {
	parsed, err := parseUUID(raw)
	if err != nil {
		return UserID{}, err
	}
	return UserID(parsed), nil
}

// ParseDocumentID parses and validates a DocumentID from its string form.
func ParseDocumentID(raw string) (DocumentID, error) {
	parsed, err := parseUUID(raw)
	if err != nil {
		return DocumentID{}, err
	}
	return DocumentID(parsed), nil
}

// ParseOrgID parses and validates an OrgID from its string form.
func ParseOrgID(raw string) (OrgID, error) {
	parsed, err := parseUUID(raw)
	if err != nil {
		return OrgID{}, err
	}
	return OrgID(parsed), nil
}

// ParseReviewRequestID parses and validates a ReviewRequestID from its string form.
func ParseReviewRequestID(raw string) (ReviewRequestID, error) {
	parsed, err := parseUUID(raw)
	if err != nil {
		return ReviewRequestID{}, err
	}
	return ReviewRequestID(parsed), nil
}

// ParseReviewID parses and validates a ReviewID from its string form.
func ParseReviewID(raw string) (ReviewID, error) {
	parsed, err := parseUUID(raw)
	if err != nil {
		return ReviewID{}, err
	}
	return ReviewID(parsed), nil
}

// ParseRedemptionID parses and validates a RedemptionID from its string form.
func ParseRedemptionID(raw string) (RedemptionID, error) {
	parsed, err := parseUUID(raw)
	if err != nil {
		return RedemptionID{}, err
	}
	return RedemptionID(parsed), nil
}
