package handler

import (
	"strings"
	"time"

	"worklink/internal/profile/models"
	dErrors "worklink/pkg/domain-errors"
	strutil "worklink/pkg/platform/strings"
)

// Update request bodies mirror the aggregate update structs: a field left
// out of the JSON stays nil and the stored value is untouched. Sending an
// explicit empty string or empty list clears the field.

// AgencyBasicInfoRequest is the body for PUT .../agencies/{id}/basic-info.
type AgencyBasicInfoRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Website *string `json:"website"`
	Country *string `json:"country"`
	City    *string `json:"city"`
	Address *string `json:"address"`
}

func (r *AgencyBasicInfoRequest) Validate() error {
	trimAll(r.Name, r.Phone, r.Email, r.Website, r.Country, r.City, r.Address)
	return nil
}

func (r *AgencyBasicInfoRequest) ToUpdate() models.AgencyBasicInfoUpdate {
	return models.AgencyBasicInfoUpdate{
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		Website: r.Website,
		Country: r.Country,
		City:    r.City,
		Address: r.Address,
	}
}

// AgencyLicenseRequest is the body for PUT .../agencies/{id}/license.
type AgencyLicenseRequest struct {
	LicenseNumber      *string    `json:"license_number"`
	LicenseExpiry      *time.Time `json:"license_expiry"`
	RegistrationNumber *string    `json:"registration_number"`
}

func (r *AgencyLicenseRequest) Validate() error {
	trimAll(r.LicenseNumber, r.RegistrationNumber)
	return nil
}

func (r *AgencyLicenseRequest) ToUpdate() models.AgencyLicenseUpdate {
	return models.AgencyLicenseUpdate{
		LicenseNumber:      r.LicenseNumber,
		LicenseExpiry:      r.LicenseExpiry,
		RegistrationNumber: r.RegistrationNumber,
	}
}

// AgencyBusinessRequest is the body for PUT .../agencies/{id}/business.
type AgencyBusinessRequest struct {
	YearEstablished    *int     `json:"year_established"`
	ServicesOffered    []string `json:"services_offered"`
	OperatingCountries []string `json:"operating_countries"`
	Specializations    []string `json:"specializations"`
}

func (r *AgencyBusinessRequest) Validate() error {
	if r.YearEstablished != nil && (*r.YearEstablished < 1800 || *r.YearEstablished > time.Now().Year()) {
		return dErrors.New(dErrors.CodeValidation, "year_established is out of range")
	}
	// Dedupe keeps the slices canonical without disturbing the nil vs
	// empty distinction the merge semantics depend on.
	r.ServicesOffered = strutil.DedupeAndTrim(r.ServicesOffered)
	r.OperatingCountries = strutil.DedupeAndTrim(r.OperatingCountries)
	r.Specializations = strutil.DedupeAndTrim(r.Specializations)
	return nil
}

func (r *AgencyBusinessRequest) ToUpdate() models.AgencyBusinessUpdate {
	return models.AgencyBusinessUpdate{
		YearEstablished:    r.YearEstablished,
		ServicesOffered:    r.ServicesOffered,
		OperatingCountries: r.OperatingCountries,
		Specializations:    r.Specializations,
	}
}

// MaidPersonalInfoRequest is the body for PUT .../maids/{id}/personal-info.
type MaidPersonalInfoRequest struct {
	FullName       *string    `json:"full_name"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Nationality    *string    `json:"nationality"`
	Phone          *string    `json:"phone"`
	Country        *string    `json:"country"`
	City           *string    `json:"city"`
	PassportNumber *string    `json:"passport_number"`
	PassportExpiry *time.Time `json:"passport_expiry"`
}

func (r *MaidPersonalInfoRequest) Validate() error {
	trimAll(r.FullName, r.Nationality, r.Phone, r.Country, r.City, r.PassportNumber)
	if r.DateOfBirth != nil && r.DateOfBirth.After(time.Now()) {
		return dErrors.New(dErrors.CodeValidation, "date_of_birth cannot be in the future")
	}
	return nil
}

func (r *MaidPersonalInfoRequest) ToUpdate() models.MaidPersonalInfoUpdate {
	return models.MaidPersonalInfoUpdate{
		FullName:       r.FullName,
		DateOfBirth:    r.DateOfBirth,
		Nationality:    r.Nationality,
		Phone:          r.Phone,
		Country:        r.Country,
		City:           r.City,
		PassportNumber: r.PassportNumber,
		PassportExpiry: r.PassportExpiry,
	}
}

// MaidWorkProfileRequest is the body for PUT .../maids/{id}/work-profile.
type MaidWorkProfileRequest struct {
	ExperienceYears *int     `json:"experience_years"`
	Skills          []string `json:"skills"`
	Languages       []string `json:"languages"`
	ExpectedSalary  *int     `json:"expected_salary"`
}

func (r *MaidWorkProfileRequest) Validate() error {
	if r.ExperienceYears != nil && *r.ExperienceYears < 0 {
		return dErrors.New(dErrors.CodeValidation, "experience_years cannot be negative")
	}
	if r.ExpectedSalary != nil && *r.ExpectedSalary < 0 {
		return dErrors.New(dErrors.CodeValidation, "expected_salary cannot be negative")
	}
	r.Skills = strutil.DedupeAndTrim(r.Skills)
	r.Languages = strutil.DedupeAndTrimLower(r.Languages)
	return nil
}

func (r *MaidWorkProfileRequest) ToUpdate() models.MaidWorkProfileUpdate {
	return models.MaidWorkProfileUpdate{
		ExperienceYears: r.ExperienceYears,
		Skills:          r.Skills,
		Languages:       r.Languages,
		ExpectedSalary:  r.ExpectedSalary,
	}
}

// AvailabilityRequest is the body for PUT .../maids/{id}/availability.
type AvailabilityRequest struct {
	Available *bool `json:"available"`
}

func (r *AvailabilityRequest) Validate() error {
	if r.Available == nil {
		return dErrors.New(dErrors.CodeValidation, "available is required")
	}
	return nil
}

// SponsorBasicInfoRequest is the body for PUT .../sponsors/{id}/basic-info.
type SponsorBasicInfoRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Country  *string `json:"country"`
	City     *string `json:"city"`
	Address  *string `json:"address"`
}

func (r *SponsorBasicInfoRequest) Validate() error {
	trimAll(r.FullName, r.Phone, r.Email, r.Country, r.City, r.Address)
	return nil
}

func (r *SponsorBasicInfoRequest) ToUpdate() models.SponsorBasicInfoUpdate {
	return models.SponsorBasicInfoUpdate{
		FullName: r.FullName,
		Phone:    r.Phone,
		Email:    r.Email,
		Country:  r.Country,
		City:     r.City,
		Address:  r.Address,
	}
}

// SponsorHouseholdRequest is the body for PUT .../sponsors/{id}/household.
type SponsorHouseholdRequest struct {
	HouseholdSize          *int     `json:"household_size"`
	BudgetMin              *int     `json:"budget_min"`
	BudgetMax              *int     `json:"budget_max"`
	PreferredNationalities []string `json:"preferred_nationalities"`
}

func (r *SponsorHouseholdRequest) Validate() error {
	if r.HouseholdSize != nil && *r.HouseholdSize < 0 {
		return dErrors.New(dErrors.CodeValidation, "household_size cannot be negative")
	}
	if r.BudgetMin != nil && *r.BudgetMin < 0 {
		return dErrors.New(dErrors.CodeValidation, "budget_min cannot be negative")
	}
	if r.BudgetMax != nil && *r.BudgetMax < 0 {
		return dErrors.New(dErrors.CodeValidation, "budget_max cannot be negative")
	}
	r.PreferredNationalities = strutil.DedupeAndTrim(r.PreferredNationalities)
	return nil
}

func (r *SponsorHouseholdRequest) ToUpdate() models.SponsorHouseholdUpdate {
	return models.SponsorHouseholdUpdate{
		HouseholdSize:          r.HouseholdSize,
		BudgetMin:              r.BudgetMin,
		BudgetMax:              r.BudgetMax,
		PreferredNationalities: r.PreferredNationalities,
	}
}

// DocumentUploadRequest is the body for POST .../{id}/documents.
type DocumentUploadRequest struct {
	DocumentType string `json:"document_type"`
	URL          string `json:"url"`
}

func (r *DocumentUploadRequest) Validate() error {
	r.DocumentType = strings.TrimSpace(r.DocumentType)
	r.URL = strings.TrimSpace(r.URL)
	if r.DocumentType == "" {
		return dErrors.New(dErrors.CodeValidation, "document_type is required")
	}
	if r.URL == "" {
		return dErrors.New(dErrors.CodeValidation, "url is required")
	}
	return nil
}

// RejectRequest is the body for POST .../{id}/reject.
type RejectRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeValidation, "reason is required")
	}
	return nil
}

// ArchiveRequest is the body for POST .../{id}/archive. Reason is optional.
type ArchiveRequest struct {
	Reason string `json:"reason"`
}

func (r *ArchiveRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	return nil
}

// MaidRefRequest is the body for POST .../agencies/{id}/maids.
type MaidRefRequest struct {
	MaidID string `json:"maid_id"`
}

func (r *MaidRefRequest) Validate() error {
	r.MaidID = strings.TrimSpace(r.MaidID)
	if r.MaidID == "" {
		return dErrors.New(dErrors.CodeValidation, "maid_id is required")
	}
	return nil
}

// RatingRequest is the body for POST .../{id}/ratings.
type RatingRequest struct {
	Rating *float64 `json:"rating"`
}

func (r *RatingRequest) Validate() error {
	if r.Rating == nil {
		return dErrors.New(dErrors.CodeValidation, "rating is required")
	}
	return nil
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}
