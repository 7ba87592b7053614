package models

import (
	"time"

	"worklink/pkg/domain"
	dErrors "worklink/pkg/domain-errors"
)

// agencyRequiredFields is the divisor for agency completion scoring.
// The list below must stay in sync with recomputeCompletion.
const agencyRequiredFields = 11

// AgencyProfile is the aggregate root for a placement agency.
//
// Invariants (must hold after every method call):
//   - CompletionPercentage ∈ [0,100] and reflects current field values
//   - IsLicenseValid is recomputed whenever license fields change
//   - Rating ∈ [0,5]
//   - UpdatedAt ≥ CreatedAt and strictly advances on every mutating call
//   - Status transitions follow draft → under_review → active/rejected,
//     any non-archived → archived
//
// Known asymmetry, preserved pending product clarification: only
// UpdateBasicInfo guards against archived profiles. License and business
// updates, documents and counters still apply after archival (the compliance
// team relies on post-archival license corrections; whether that was ever a
// deliberate decision is an open product question).
type AgencyProfile struct {
	base

	name    string
	phone   string
	email   string
	website string
	country string
	city    string
	address string

	licenseNumber      string
	licenseExpiry      time.Time
	registrationNumber string
	yearEstablished    int
	servicesOffered    []string
	operatingCountries []string
	specializations    []string

	isLicenseValid bool
	documents      documentSet

	totalPlacements int
	activeMaids     int
}

// NewAgencyProfile constructs a draft agency profile owned by userID.
// Country defaults to DefaultCountry; every other field starts empty.
func NewAgencyProfile(id domain.ProfileID, userID domain.UserID, now time.Time) (*AgencyProfile, error) {
	b, err := newBase(id, userID, now)
	if err != nil {
		return nil, err
	}
	p := &AgencyProfile{
		base:      b,
		country:   DefaultCountry,
		documents: newDocumentSet(DocBusinessLicense, DocTaxCertificate, DocInsuranceCertificate),
	}
	p.recomputeCompletion()
	p.record(EventAgencyProfileCreated, p.updatedAt, map[string]any{
		"profile_id": p.id.String(),
		"user_id":    p.userID.String(),
	})
	return p, nil
}

func (p *AgencyProfile) Name() string { return p.name }
func (p *AgencyProfile) Phone() string { return p.phone }
func (p *AgencyProfile) Email() string { return p.email }
func (p *AgencyProfile) Website() string { return p.website }
func (p *AgencyProfile) Country() string { return p.country }
func (p *AgencyProfile) City() string { return p.city }
func (p *AgencyProfile) Address() string { return p.address }
func (p *AgencyProfile) LicenseNumber() string { return p.licenseNumber }
func (p *AgencyProfile) LicenseExpiry() time.Time { return p.licenseExpiry }
func (p *AgencyProfile) RegistrationNumber() string { return p.registrationNumber }
func (p *AgencyProfile) YearEstablished() int { return p.yearEstablished }
func (p *AgencyProfile) ServicesOffered() []string { return append([]string(nil), p.servicesOffered...) }
func (p *AgencyProfile) OperatingCountries() []string { return append([]string(nil), p.operatingCountries...) }
func (p *AgencyProfile) Specializations() []string { return append([]string(nil), p.specializations...) }
func (p *AgencyProfile) IsLicenseValid() bool { return p.isLicenseValid }
func (p *AgencyProfile) Document(docType string) string { return p.documents.get(docType) }
func (p *AgencyProfile) TotalPlacements() int { return p.totalPlacements }
func (p *AgencyProfile) ActiveMaids() int { return p.activeMaids }

// AgencyBasicInfoUpdate is a partial update: nil fields are left untouched
// (merge, not replace). Pointer fields keep "not supplied" distinct from
// "explicitly empty".
type AgencyBasicInfoUpdate struct {
	Name    *string
	Phone   *string
	Email   *string
	Website *string
	Country *string
	City    *string
	Address *string
}

// AgencyLicenseUpdate is a partial update of license and registration
// fields.
type AgencyLicenseUpdate struct {
	LicenseNumber      *string
	LicenseExpiry      *time.Time
	RegistrationNumber *string
}

// AgencyBusinessUpdate is a partial update of business metadata. Nil slices
// are left untouched; a non-nil empty slice explicitly clears the list.
type AgencyBusinessUpdate struct {
	YearEstablished    *int
	ServicesOffered    []string
	OperatingCountries []string
	Specializations    []string
}

// UpdateBasicInfo merges the supplied contact fields. Rejected on archived
// profiles. A call with no fields set still bumps UpdatedAt and emits an
// event with an empty field list.
func (p *AgencyProfile) UpdateBasicInfo(update AgencyBasicInfoUpdate, now time.Time) error {
	if err := p.guardNotArchived(); err != nil {
		return err
	}
	touched := make([]string, 0, 7)
	applyString(&p.name, update.Name, "name", &touched)
	applyString(&p.phone, update.Phone, "phone", &touched)
	applyString(&p.email, update.Email, "email", &touched)
	applyString(&p.website, update.Website, "website", &touched)
	applyString(&p.country, update.Country, "country", &touched)
	applyString(&p.city, update.City, "city", &touched)
	applyString(&p.address, update.Address, "address", &touched)
	p.recomputeCompletion()
	occurredAt := p.touch(now)
	p.record(EventAgencyBasicInfoUpdated, occurredAt, map[string]any{
		"profile_id": p.id.String(),
		"fields":     touched,
	})
	return nil
}

// UpdateLicenseInfo merges license fields and recomputes license validity
// against the supplied clock. Note: no archived guard here, see the type
// doc.
func (p *AgencyProfile) UpdateLicenseInfo(update AgencyLicenseUpdate, now time.Time) error {
	touched := make([]string, 0, 3)
	applyString(&p.licenseNumber, update.LicenseNumber, "license_number", &touched)
	if update.LicenseExpiry != nil {
		p.licenseExpiry = *update.LicenseExpiry
		touched = append(touched, "license_expiry")
	}
	applyString(&p.registrationNumber, update.RegistrationNumber, "registration_number", &touched)

	occurredAt := p.touch(now)
	p.isLicenseValid = expiringCredentialValid(p.licenseNumber, p.licenseExpiry, occurredAt)
	p.recomputeCompletion()
	p.record(EventAgencyLicenseInfoUpdated, occurredAt, map[string]any{
		"profile_id": p.id.String(),
		"fields":     touched,
	})
	return nil
}

// UpdateBusinessInfo merges business metadata. No archived guard here
// either.
func (p *AgencyProfile) UpdateBusinessInfo(update AgencyBusinessUpdate, now time.Time) error {
	touched := make([]string, 0, 4)
	if update.YearEstablished != nil {
		p.yearEstablished = *update.YearEstablished
		touched = append(touched, "year_established")
	}
	if update.ServicesOffered != nil {
		p.servicesOffered = append([]string(nil), update.ServicesOffered...)
		touched = append(touched, "services_offered")
	}
	if update.OperatingCountries != nil {
		p.operatingCountries = append([]string(nil), update.OperatingCountries...)
		touched = append(touched, "operating_countries")
	}
	if update.Specializations != nil {
		p.specializations = append([]string(nil), update.Specializations...)
		touched = append(touched, "specializations")
	}
	occurredAt := p.touch(now)
	p.record(EventAgencyBusinessInfoUpdated, occurredAt, map[string]any{
		"profile_id": p.id.String(),
		"fields":     touched,
	})
	return nil
}

// UploadDocument assigns an already-uploaded blob URL to a named slot.
// The aggregate validates the slot name only, never document content.
func (p *AgencyProfile) UploadDocument(docType, url string, now time.Time) error {
	if err := p.documents.set(docType, url); err != nil {
		return err
	}
	p.recomputeCompletion()
	occurredAt := p.touch(now)
	p.record(EventAgencyDocumentUploaded, occurredAt, map[string]any{
		"profile_id":    p.id.String(),
		"document_type": docType,
		"document_url":  url,
	})
	return nil
}

// SubmitForVerification moves a complete draft profile into review. The
// license is re-evaluated against the supplied clock so a license that
// lapsed since the last update cannot slip through on a stale flag.
func (p *AgencyProfile) SubmitForVerification(now time.Time) error {
	if err := p.canSubmit(); err != nil {
		return err
	}
	if !expiringCredentialValid(p.licenseNumber, p.licenseExpiry, now) {
		return dErrors.New(dErrors.CodeInvalidLicense, "license is missing or expired")
	}
	p.applySubmit(EventAgencyProfileSubmitted, now)
	return nil
}

// Verify approves an under-review profile.
func (p *AgencyProfile) Verify(verifiedBy string, now time.Time) error {
	if err := p.canReview(); err != nil {
		return err
	}
	p.applyVerify(EventAgencyProfileVerified, verifiedBy, now)
	return nil
}

// Reject declines an under-review profile. There is no modeled path back to
// draft; resubmission means a new aggregate.
func (p *AgencyProfile) Reject(reason, rejectedBy string, now time.Time) error {
	if err := p.canReview(); err != nil {
		return err
	}
	p.applyReject(EventAgencyProfileRejected, reason, rejectedBy, now)
	return nil
}

// Archive retires the profile. Terminal.
func (p *AgencyProfile) Archive(reason string, now time.Time) error {
	if err := p.canArchive(); err != nil {
		return err
	}
	p.applyArchive(EventAgencyProfileArchived, reason, now)
	return nil
}

// AddMaid increments the active-maid count. The aggregate tracks counts
// only; the maid identity travels in the event payload, not in state.
func (p *AgencyProfile) AddMaid(maidID string, now time.Time) {
	p.activeMaids++
	occurredAt := p.touch(now)
	p.record(EventAgencyMaidAdded, occurredAt, map[string]any{
		"profile_id":   p.id.String(),
		"maid_id":      maidID,
		"active_maids": p.activeMaids,
	})
}

// RemoveMaid decrements the active-maid count, floor-clamped at zero. The
// event fires even when clamped so subscribers observe the attempt.
func (p *AgencyProfile) RemoveMaid(maidID string, now time.Time) {
	if p.activeMaids > 0 {
		p.activeMaids--
	}
	occurredAt := p.touch(now)
	p.record(EventAgencyMaidRemoved, occurredAt, map[string]any{
		"profile_id":   p.id.String(),
		"maid_id":      maidID,
		"active_maids": p.activeMaids,
	})
}

// RecordPlacement increments the monotonic placement counter.
func (p *AgencyProfile) RecordPlacement(now time.Time) {
	p.totalPlacements++
	occurredAt := p.touch(now)
	p.record(EventAgencyPlacementRecorded, occurredAt, map[string]any{
		"profile_id":       p.id.String(),
		"total_placements": p.totalPlacements,
	})
}

// UpdateRating folds one review score into the running average.
func (p *AgencyProfile) UpdateRating(value float64, now time.Time) error {
	return p.applyRating(value, EventAgencyRatingUpdated, now)
}

// recomputeCompletion scores the 11 required agency fields: name, license
// number, license expiry, registration number, phone, email, country, city,
// address, business-license document, tax-certificate document.
func (p *AgencyProfile) recomputeCompletion() {
	p.completion = completionOf([]bool{
		p.name != "",
		p.licenseNumber != "",
		!p.licenseExpiry.IsZero(),
		p.registrationNumber != "",
		p.phone != "",
		p.email != "",
		p.country != "",
		p.city != "",
		p.address != "",
		p.documents.has(DocBusinessLicense),
		p.documents.has(DocTaxCertificate),
	})
}

// applyString merges one optional string field and tracks its name.
func applyString(dst *string, src *string, field string, touched *[]string) {
	if src == nil {
		return
	}
	*dst = *src
	*touched = append(*touched, field)
}
