package models

import (
	"time"

	"worklink/pkg/domain"
	dErrors "worklink/pkg/domain-errors"
)

// SponsorProfile is the aggregate root for a hiring household.
//
// Sponsors carry no expiring credential, so submission requires only 100%
// completion. Completion requires 9 fields: full name, phone, email,
// country, city, address, household size, at least one preferred
// nationality, ID-copy document.
type SponsorProfile struct {
	base

	fullName string
	phone    string
	email    string
	country  string
	city     string
	address  string

	householdSize          int
	budgetMin              int
	budgetMax              int
	preferredNationalities []string

	documents documentSet

	totalHires int
}

// NewSponsorProfile constructs a draft sponsor profile owned by userID.
func NewSponsorProfile(id domain.ProfileID, userID domain.UserID, now time.Time) (*SponsorProfile, error) {
	b, err := newBase(id, userID, now)
	if err != nil {
		return nil, err
	}
	p := &SponsorProfile{
		base:      b,
		country:   DefaultCountry,
		documents: newDocumentSet(DocIDCopy, DocProofOfAddress),
	}
	p.recomputeCompletion()
	p.record(EventSponsorProfileCreated, p.updatedAt, map[string]any{
		"profile_id": p.id.String(),
		"user_id":    p.userID.String(),
	})
	return p, nil
}

func (p *SponsorProfile) FullName() string { return p.fullName }
func (p *SponsorProfile) Phone() string { return p.phone }
func (p *SponsorProfile) Email() string { return p.email }
func (p *SponsorProfile) Country() string { return p.country }
func (p *SponsorProfile) City() string { return p.city }
func (p *SponsorProfile) Address() string { return p.address }
func (p *SponsorProfile) HouseholdSize() int { return p.householdSize }
func (p *SponsorProfile) BudgetMin() int { return p.budgetMin }
func (p *SponsorProfile) BudgetMax() int { return p.budgetMax }
func (p *SponsorProfile) PreferredNationalities() []string {
	return append([]string(nil), p.preferredNationalities...)
}
func (p *SponsorProfile) Document(docType string) string { return p.documents.get(docType) }
func (p *SponsorProfile) TotalHires() int { return p.totalHires }

// SponsorBasicInfoUpdate is a partial update; nil fields are left untouched.
type SponsorBasicInfoUpdate struct {
	FullName *string
	Phone    *string
	Email    *string
	Country  *string
	City     *string
	Address  *string
}

// SponsorHouseholdUpdate is a partial update of household and budget fields.
type SponsorHouseholdUpdate struct {
	HouseholdSize          *int
	BudgetMin              *int
	BudgetMax              *int
	PreferredNationalities []string
}

// UpdateBasicInfo merges contact fields. Rejected on archived profiles.
func (p *SponsorProfile) UpdateBasicInfo(update SponsorBasicInfoUpdate, now time.Time) error {
	if err := p.guardNotArchived(); err != nil {
		return err
	}
	touched := make([]string, 0, 6)
	applyString(&p.fullName, update.FullName, "full_name", &touched)
	applyString(&p.phone, update.Phone, "phone", &touched)
	applyString(&p.email, update.Email, "email", &touched)
	applyString(&p.country, update.Country, "country", &touched)
	applyString(&p.city, update.City, "city", &touched)
	applyString(&p.address, update.Address, "address", &touched)
	p.recomputeCompletion()
	occurredAt := p.touch(now)
	p.record(EventSponsorBasicInfoUpdated, occurredAt, map[string]any{
		"profile_id": p.id.String(),
		"fields":     touched,
	})
	return nil
}

// UpdateHouseholdInfo merges household fields. The budget range must stay
// ordered: if both ends are present after the merge, min ≤ max. No archived
// guard, matching the agency asymmetry.
func (p *SponsorProfile) UpdateHouseholdInfo(update SponsorHouseholdUpdate, now time.Time) error {
	min, max := p.budgetMin, p.budgetMax
	if update.BudgetMin != nil {
		min = *update.BudgetMin
	}
	if update.BudgetMax != nil {
		max = *update.BudgetMax
	}
	if min > 0 && max > 0 && min > max {
		return dErrors.Newf(dErrors.CodeValidation, "budget range invalid: min %d exceeds max %d", min, max)
	}

	touched := make([]string, 0, 4)
	if update.HouseholdSize != nil {
		p.householdSize = *update.HouseholdSize
		touched = append(touched, "household_size")
	}
	if update.BudgetMin != nil {
		p.budgetMin = min
		touched = append(touched, "budget_min")
	}
	if update.BudgetMax != nil {
		p.budgetMax = max
		touched = append(touched, "budget_max")
	}
	if update.PreferredNationalities != nil {
		p.preferredNationalities = append([]string(nil), update.PreferredNationalities...)
		touched = append(touched, "preferred_nationalities")
	}
	p.recomputeCompletion()
	occurredAt := p.touch(now)
	p.record(EventSponsorHouseholdInfoUpdated, occurredAt, map[string]any{
		"profile_id": p.id.String(),
		"fields":     touched,
	})
	return nil
}

// UploadDocument assigns an already-uploaded blob URL to a named slot.
func (p *SponsorProfile) UploadDocument(docType, url string, now time.Time) error {
	if err := p.documents.set(docType, url); err != nil {
		return err
	}
	p.recomputeCompletion()
	occurredAt := p.touch(now)
	p.record(EventSponsorDocumentUploaded, occurredAt, map[string]any{
		"profile_id":    p.id.String(),
		"document_type": docType,
		"document_url":  url,
	})
	return nil
}

// SubmitForVerification moves a complete draft profile into review.
func (p *SponsorProfile) SubmitForVerification(now time.Time) error {
	if err := p.canSubmit(); err != nil {
		return err
	}
	p.applySubmit(EventSponsorProfileSubmitted, now)
	return nil
}

// Verify approves an under-review profile.
func (p *SponsorProfile) Verify(verifiedBy string, now time.Time) error {
	if err := p.canReview(); err != nil {
		return err
	}
	p.applyVerify(EventSponsorProfileVerified, verifiedBy, now)
	return nil
}

// Reject declines an under-review profile.
func (p *SponsorProfile) Reject(reason, rejectedBy string, now time.Time) error {
	if err := p.canReview(); err != nil {
		return err
	}
	p.applyReject(EventSponsorProfileRejected, reason, rejectedBy, now)
	return nil
}

// Archive retires the profile. Terminal.
func (p *SponsorProfile) Archive(reason string, now time.Time) error {
	if err := p.canArchive(); err != nil {
		return err
	}
	p.applyArchive(EventSponsorProfileArchived, reason, now)
	return nil
}

// RecordHire increments the monotonic hire counter.
func (p *SponsorProfile) RecordHire(now time.Time) {
	p.totalHires++
	occurredAt := p.touch(now)
	p.record(EventSponsorHireRecorded, occurredAt, map[string]any{
		"profile_id":  p.id.String(),
		"total_hires": p.totalHires,
	})
}

// UpdateRating folds one review score into the running average.
func (p *SponsorProfile) UpdateRating(value float64, now time.Time) error {
	return p.applyRating(value, EventSponsorRatingUpdated, now)
}

func (p *SponsorProfile) recomputeCompletion() {
	p.completion = completionOf([]bool{
		p.fullName != "",
		p.phone != "",
		p.email != "",
		p.country != "",
		p.city != "",
		p.address != "",
		p.householdSize > 0,
		len(p.preferredNationalities) > 0,
		p.documents.has(DocIDCopy),
	})
}
