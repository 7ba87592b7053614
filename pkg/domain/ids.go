// Package domain holds shared domain primitives: typed identifiers used
// across modules so a profile ID can never be passed where a user ID is
// expected.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "worklink/pkg/domain-errors"
)

// ProfileID identifies a profile aggregate. Profile rows predate this
// service and are not guaranteed to be UUIDs, so the type wraps a validated
// opaque string rather than uuid.UUID.
type ProfileID string

// UserID identifies the account owning a profile. Same representation
// caveat as ProfileID.
type UserID string

const maxIDLength = 128

// NewProfileID mints a fresh UUID-backed profile ID for newly created
// aggregates.
func NewProfileID() ProfileID {
	return ProfileID(uuid.NewString())
}

// ParseProfileID validates an externally supplied profile ID. Call at trust
// boundaries; direct conversion bypasses validation.
func ParseProfileID(s string) (ProfileID, error) {
	if err := validateID(s, "profile_id"); err != nil {
		return "", err
	}
	return ProfileID(s), nil
}

// ParseUserID validates an externally supplied user ID.
func ParseUserID(s string) (UserID, error) {
	if err := validateID(s, "user_id"); err != nil {
		return "", err
	}
	return UserID(s), nil
}

func validateID(s, field string) error {
	if s == "" {
		return dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be empty", field)
	}
	if strings.TrimSpace(s) == "" {
		return dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be blank", field)
	}
	if len(s) > maxIDLength {
		return dErrors.Newf(dErrors.CodeInvalidInput, "%s exceeds %d characters", field, maxIDLength)
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return dErrors.Newf(dErrors.CodeInvalidInput, "%s contains control characters", field)
		}
	}
	return nil
}

func (id ProfileID) String() string { return string(id) }
func (id ProfileID) IsNil() bool { return id == "" }

func (id UserID) String() string { return string(id) }
func (id UserID) IsNil() bool { return id == "" }
