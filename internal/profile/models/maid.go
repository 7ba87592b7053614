package models

import (
	"time"

	"worklink/pkg/domain"
	dErrors "worklink/pkg/domain-errors"
)

// MaidProfile is the aggregate root for a domestic-worker candidate.
//
// The lifecycle, event buffering and atomicity rules match AgencyProfile.
// The expiring credential here is the passport: submission requires a
// passport number with an expiry strictly in the future, mirroring the
// agency license rule.
//
// Completion requires 11 fields: full name, date of birth, nationality,
// phone, passport number, passport expiry, experience years, at least one
// skill, at least one language, passport-copy document, medical-certificate
// document.
type MaidProfile struct {
	base

	fullName    string
	dateOfBirth time.Time
	nationality string
	phone       string
	country     string
	city        string

	passportNumber string
	passportExpiry time.Time

	experienceYears int
	skills          []string
	languages       []string
	expectedSalary  int
	available       bool

	isPassportValid bool
	documents       documentSet

	completedContracts int
}

// NewMaidProfile constructs a draft candidate profile owned by userID.
func NewMaidProfile(id domain.ProfileID, userID domain.UserID, now time.Time) (*MaidProfile, error) {
	b, err := newBase(id, userID, now)
	if err != nil {
		return nil, err
	}
	p := &MaidProfile{
		base:      b,
		country:   DefaultCountry,
		documents: newDocumentSet(DocPassportCopy, DocMedicalCertificate, DocPoliceClearance),
	}
	p.recomputeCompletion()
	p.record(EventMaidProfileCreated, p.updatedAt, map[string]any{
		"profile_id": p.id.String(),
		"user_id":    p.userID.String(),
	})
	return p, nil
}

func (p *MaidProfile) FullName() string { return p.fullName }
func (p *MaidProfile) DateOfBirth() time.Time { return p.dateOfBirth }
func (p *MaidProfile) Nationality() string { return p.nationality }
func (p *MaidProfile) Phone() string { return p.phone }
func (p *MaidProfile) Country() string { return p.country }
func (p *MaidProfile) City() string { return p.city }
func (p *MaidProfile) PassportNumber() string { return p.passportNumber }
func (p *MaidProfile) PassportExpiry() time.Time { return p.passportExpiry }
func (p *MaidProfile) ExperienceYears() int { return p.experienceYears }
func (p *MaidProfile) Skills() []string { return append([]string(nil), p.skills...) }
func (p *MaidProfile) Languages() []string { return append([]string(nil), p.languages...) }
func (p *MaidProfile) ExpectedSalary() int { return p.expectedSalary }
func (p *MaidProfile) IsAvailable() bool { return p.available }
func (p *MaidProfile) IsPassportValid() bool { return p.isPassportValid }
func (p *MaidProfile) Document(docType string) string { return p.documents.get(docType) }
func (p *MaidProfile) CompletedContracts() int { return p.completedContracts }

// MaidPersonalInfoUpdate is a partial update; nil fields are left untouched.
type MaidPersonalInfoUpdate struct {
	FullName       *string
	DateOfBirth    *time.Time
	Nationality    *string
	Phone          *string
	Country        *string
	City           *string
	PassportNumber *string
	PassportExpiry *time.Time
}

// MaidWorkProfileUpdate is a partial update of employability fields. Nil
// slices are left untouched; non-nil empty slices clear the list.
type MaidWorkProfileUpdate struct {
	ExperienceYears *int
	Skills          []string
	Languages       []string
	ExpectedSalary  *int
}

// UpdatePersonalInfo merges identity and passport fields. Rejected on
// archived profiles. Passport validity is recomputed whenever passport
// fields are part of the update.
func (p *MaidProfile) UpdatePersonalInfo(update MaidPersonalInfoUpdate, now time.Time) error {
	if err := p.guardNotArchived(); err != nil {
		return err
	}
	touched := make([]string, 0, 8)
	applyString(&p.fullName, update.FullName, "full_name", &touched)
	if update.DateOfBirth != nil {
		p.dateOfBirth = *update.DateOfBirth
		touched = append(touched, "date_of_birth")
	}
	applyString(&p.nationality, update.Nationality, "nationality", &touched)
	applyString(&p.phone, update.Phone, "phone", &touched)
	applyString(&p.country, update.Country, "country", &touched)
	applyString(&p.city, update.City, "city", &touched)
	applyString(&p.passportNumber, update.PassportNumber, "passport_number", &touched)
	if update.PassportExpiry != nil {
		p.passportExpiry = *update.PassportExpiry
		touched = append(touched, "passport_expiry")
	}

	occurredAt := p.touch(now)
	p.isPassportValid = expiringCredentialValid(p.passportNumber, p.passportExpiry, occurredAt)
	p.recomputeCompletion()
	p.record(EventMaidPersonalInfoUpdated, occurredAt, map[string]any{
		"profile_id": p.id.String(),
		"fields":     touched,
	})
	return nil
}

// UpdateWorkProfile merges employability fields. No archived guard, matching
// the agency license/business asymmetry.
func (p *MaidProfile) UpdateWorkProfile(update MaidWorkProfileUpdate, now time.Time) error {
	touched := make([]string, 0, 4)
	if update.ExperienceYears != nil {
		p.experienceYears = *update.ExperienceYears
		touched = append(touched, "experience_years")
	}
	if update.Skills != nil {
		p.skills = append([]string(nil), update.Skills...)
		touched = append(touched, "skills")
	}
	if update.Languages != nil {
		p.languages = append([]string(nil), update.Languages...)
		touched = append(touched, "languages")
	}
	if update.ExpectedSalary != nil {
		p.expectedSalary = *update.ExpectedSalary
		touched = append(touched, "expected_salary")
	}
	p.recomputeCompletion()
	occurredAt := p.touch(now)
	p.record(EventMaidWorkProfileUpdated, occurredAt, map[string]any{
		"profile_id": p.id.String(),
		"fields":     touched,
	})
	return nil
}

// SetAvailability flips the bookable flag.
func (p *MaidProfile) SetAvailability(available bool, now time.Time) {
	p.available = available
	occurredAt := p.touch(now)
	p.record(EventMaidAvailabilityChanged, occurredAt, map[string]any{
		"profile_id": p.id.String(),
		"available":  available,
	})
}

// UploadDocument assigns an already-uploaded blob URL to a named slot.
func (p *MaidProfile) UploadDocument(docType, url string, now time.Time) error {
	if err := p.documents.set(docType, url); err != nil {
		return err
	}
	p.recomputeCompletion()
	occurredAt := p.touch(now)
	p.record(EventMaidDocumentUploaded, occurredAt, map[string]any{
		"profile_id":    p.id.String(),
		"document_type": docType,
		"document_url":  url,
	})
	return nil
}

// SubmitForVerification moves a complete draft profile into review. The
// passport is re-evaluated against the supplied clock.
func (p *MaidProfile) SubmitForVerification(now time.Time) error {
	if err := p.canSubmit(); err != nil {
		return err
	}
	if !expiringCredentialValid(p.passportNumber, p.passportExpiry, now) {
		return dErrors.New(dErrors.CodeInvalidLicense, "passport is missing or expired")
	}
	p.applySubmit(EventMaidProfileSubmitted, now)
	return nil
}

// Verify approves an under-review profile.
func (p *MaidProfile) Verify(verifiedBy string, now time.Time) error {
	if err := p.canReview(); err != nil {
		return err
	}
	p.applyVerify(EventMaidProfileVerified, verifiedBy, now)
	return nil
}

// Reject declines an under-review profile.
func (p *MaidProfile) Reject(reason, rejectedBy string, now time.Time) error {
	if err := p.canReview(); err != nil {
		return err
	}
	p.applyReject(EventMaidProfileRejected, reason, rejectedBy, now)
	return nil
}

// Archive retires the profile. Terminal.
func (p *MaidProfile) Archive(reason string, now time.Time) error {
	if err := p.canArchive(); err != nil {
		return err
	}
	p.applyArchive(EventMaidProfileArchived, reason, now)
	return nil
}

// RecordPlacement increments the monotonic completed-contract counter.
func (p *MaidProfile) RecordPlacement(now time.Time) {
	p.completedContracts++
	occurredAt := p.touch(now)
	p.record(EventMaidPlacementRecorded, occurredAt, map[string]any{
		"profile_id":          p.id.String(),
		"completed_contracts": p.completedContracts,
	})
}

// UpdateRating folds one review score into the running average.
func (p *MaidProfile) UpdateRating(value float64, now time.Time) error {
	return p.applyRating(value, EventMaidRatingUpdated, now)
}

func (p *MaidProfile) recomputeCompletion() {
	p.completion = completionOf([]bool{
		p.fullName != "",
		!p.dateOfBirth.IsZero(),
		p.nationality != "",
		p.phone != "",
		p.passportNumber != "",
		!p.passportExpiry.IsZero(),
		p.experienceYears > 0,
		len(p.skills) > 0,
		len(p.languages) > 0,
		p.documents.has(DocPassportCopy),
		p.documents.has(DocMedicalCertificate),
	})
}
