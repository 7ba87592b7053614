package models

import (
	"math"
	"time"

	"worklink/pkg/domain"
	dErrors "worklink/pkg/domain-errors"
)

// DefaultCountry is applied at construction when no country is supplied.
// This mirrors the marketplace's home market; do not change without a data
// migration, stored completion percentages depend on it.
const DefaultCountry = "ET"

// MaxRating bounds the running review average.
const MaxRating = 5.0

// base carries the state and behavior every profile variant shares:
// identity, lifecycle status, verification flags, the review average,
// timestamps and the domain-event buffer.
//
// All mutations flow through the owning aggregate's methods. Each method
// either fully applies its effect (field changes, completion recompute,
// updatedAt bump, exactly one buffered event) or rejects with a coded error
// and no observable state change.
type base struct {
	id         domain.ProfileID
	userID     domain.UserID
	status     Status
	isVerified bool
	verifiedAt time.Time

	completion   int
	rating       float64
	totalReviews int

	createdAt time.Time
	updatedAt time.Time

	events []Event
}

func newBase(id domain.ProfileID, userID domain.UserID, now time.Time) (base, error) {
	if id.IsNil() {
		return base{}, dErrors.New(dErrors.CodeInvariantViolation, "profile id cannot be empty")
	}
	if userID.IsNil() {
		return base{}, dErrors.New(dErrors.CodeInvariantViolation, "user id cannot be empty")
	}
	if now.IsZero() {
		now = time.Now()
	}
	return base{
		id:        id,
		userID:    userID,
		status:    StatusDraft,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func (b *base) ID() domain.ProfileID { return b.id }
func (b *base) UserID() domain.UserID { return b.userID }
func (b *base) Status() Status { return b.status }
func (b *base) IsVerified() bool { return b.isVerified }
func (b *base) VerifiedAt() time.Time { return b.verifiedAt }
func (b *base) CompletionPercentage() int { return b.completion }
func (b *base) Rating() float64 { return b.rating }
func (b *base) TotalReviews() int { return b.totalReviews }
func (b *base) CreatedAt() time.Time { return b.createdAt }
func (b *base) UpdatedAt() time.Time { return b.updatedAt }

// IsComplete reports whether every required field is populated.
func (b *base) IsComplete() bool { return b.completion >= 100 }

// PullEvents drains the event buffer: it returns all buffered events in
// emission order and clears the buffer, so each event is retrieved exactly
// once per buffering cycle. Delivery after the pull is the caller's problem.
func (b *base) PullEvents() []Event {
	events := b.events
	b.events = nil
	return events
}

// bufferedEvents reports the current buffer size without draining. Test hook.
func (b *base) bufferedEvents() int { return len(b.events) }

// touch bumps updatedAt and returns the effective mutation time. updatedAt
// must strictly advance on every mutating call even when the caller's clock
// has not moved (sub-nanosecond call spacing, frozen test clocks).
func (b *base) touch(now time.Time) time.Time {
	if now.IsZero() {
		now = time.Now()
	}
	if !now.After(b.updatedAt) {
		now = b.updatedAt.Add(time.Nanosecond)
	}
	b.updatedAt = now
	return now
}

// record appends one domain event to the buffer.
func (b *base) record(evtType EventType, occurredAt time.Time, payload map[string]any) {
	b.events = append(b.events, newEvent(evtType, b.id, b.userID, occurredAt, payload))
}

// guardNotArchived rejects mutations on archived profiles where the variant
// chooses to enforce it. Not every mutation path carries this guard; see the
// per-variant method docs.
func (b *base) guardNotArchived() error {
	if b.status.IsArchived() {
		return dErrors.New(dErrors.CodeArchived, "profile is archived")
	}
	return nil
}

// canSubmit validates the draft→under_review transition shared by all
// variants. Role-specific validity checks (license, passport) live in the
// variants.
func (b *base) canSubmit() error {
	if !b.status.IsDraft() {
		return dErrors.Newf(dErrors.CodeInvalidState, "cannot submit profile in status %q", b.status)
	}
	if !b.IsComplete() {
		return dErrors.Newf(dErrors.CodeIncompleteProfile, "profile is %d%% complete, submission requires 100%%", b.completion)
	}
	return nil
}

func (b *base) applySubmit(evtType EventType, now time.Time) {
	b.status = StatusUnderReview
	occurredAt := b.touch(now)
	b.record(evtType, occurredAt, map[string]any{
		"profile_id": b.id.String(),
		"user_id":    b.userID.String(),
	})
}

func (b *base) canReview() error {
	if !b.status.IsUnderReview() {
		return dErrors.Newf(dErrors.CodeInvalidState, "profile in status %q is not under review", b.status)
	}
	return nil
}

func (b *base) applyVerify(evtType EventType, verifiedBy string, now time.Time) {
	b.status = StatusActive
	b.isVerified = true
	occurredAt := b.touch(now)
	b.verifiedAt = occurredAt
	b.record(evtType, occurredAt, map[string]any{
		"profile_id":  b.id.String(),
		"user_id":     b.userID.String(),
		"verified_by": verifiedBy,
	})
}

func (b *base) applyReject(evtType EventType, reason, rejectedBy string, now time.Time) {
	b.status = StatusRejected
	occurredAt := b.touch(now)
	b.record(evtType, occurredAt, map[string]any{
		"profile_id":  b.id.String(),
		"user_id":     b.userID.String(),
		"reason":      reason,
		"rejected_by": rejectedBy,
	})
}

func (b *base) canArchive() error {
	if b.status.IsArchived() {
		return dErrors.New(dErrors.CodeAlreadyArchived, "profile is already archived")
	}
	return nil
}

func (b *base) applyArchive(evtType EventType, reason string, now time.Time) {
	b.status = StatusArchived
	occurredAt := b.touch(now)
	b.record(evtType, occurredAt, map[string]any{
		"profile_id": b.id.String(),
		"user_id":    b.userID.String(),
		"reason":     reason,
	})
}

// applyRating folds one new review into the running average:
// (old*count + new) / (count+1). The average is never rebuilt from raw
// scores; removal or editing of a past rating is unsupported.
func (b *base) applyRating(value float64, evtType EventType, now time.Time) error {
	if value < 0 || value > MaxRating {
		return dErrors.Newf(dErrors.CodeInvalidRating, "rating %.2f outside [0,%.0f]", value, MaxRating)
	}
	b.rating = (b.rating*float64(b.totalReviews) + value) / float64(b.totalReviews+1)
	b.totalReviews++
	occurredAt := b.touch(now)
	b.record(evtType, occurredAt, map[string]any{
		"profile_id":    b.id.String(),
		"rating":        b.rating,
		"total_reviews": b.totalReviews,
	})
	return nil
}

// completionOf rounds the filled/required ratio to a whole percentage.
// The required-field list of each variant is a stable contract: extending it
// retroactively lowers stored percentages, which is a migration concern.
func completionOf(required []bool) int {
	if len(required) == 0 {
		return 0
	}
	filled := 0
	for _, ok := range required {
		if ok {
			filled++
		}
	}
	return int(math.Round(float64(filled) * 100 / float64(len(required))))
}

// expiringCredentialValid implements the shared "credential present and not
// yet expired" rule (agency license, maid passport).
func expiringCredentialValid(number string, expiry, now time.Time) bool {
	return number != "" && !expiry.IsZero() && expiry.After(now)
}
