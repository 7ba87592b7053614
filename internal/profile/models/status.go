package models

// Status is the lifecycle state of a profile aggregate.
//
// Invariants:
//   - Transitions happen only through aggregate methods, never by assigning
//     a Status directly from external input.
//   - archived is terminal. rejected is practically terminal: no
//     rejected→draft transition exists; resubmission (if supported at all)
//     means constructing a new aggregate.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusUnderReview Status = "under_review"
	StatusActive      Status = "active"
	StatusRejected    Status = "rejected"
	StatusArchived    Status = "archived"
)

// validStatuses is the single source of truth for recognized states.
var validStatuses = map[Status]bool{
	StatusDraft:       true,
	StatusUnderReview: true,
	StatusActive:      true,
	StatusRejected:    true,
	StatusArchived:    true,
}

// StatusFromString maps a persisted string to a Status. Unknown or empty
// input falls back to draft so loading legacy rows never fails; it never
// returns an error.
func StatusFromString(s string) Status {
	status := Status(s)
	if !validStatuses[status] {
		return StatusDraft
	}
	return status
}

// IsValid checks if the status is one of the recognized states.
func (s Status) IsValid() bool { return validStatuses[s] }

func (s Status) IsDraft() bool { return s == StatusDraft }
func (s Status) IsUnderReview() bool { return s == StatusUnderReview }
func (s Status) IsActive() bool { return s == StatusActive }
func (s Status) IsRejected() bool { return s == StatusRejected }
func (s Status) IsArchived() bool { return s == StatusArchived }

// String returns the canonical persisted representation.
func (s Status) String() string { return string(s) }
