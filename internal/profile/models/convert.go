package models

import (
	"time"

	"worklink/pkg/domain"
)

// Records are the flat persistence/wire shape of the aggregates. They must
// round-trip losslessly: FromRecord(p.ToRecord()).ToRecord() deep-equals
// p.ToRecord(). Derived fields (completion, validity, rating) are stored as
// persisted and never recomputed during reconstruction.

// AgencyRecord mirrors AgencyProfile for stores and caches.
type AgencyRecord struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Status string `json:"status"`

	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`
	Address string `json:"address,omitempty"`

	LicenseNumber      string    `json:"license_number,omitempty"`
	LicenseExpiry      time.Time `json:"license_expiry,omitzero"`
	RegistrationNumber string    `json:"registration_number,omitempty"`
	YearEstablished    int       `json:"year_established,omitempty"`
	ServicesOffered    []string  `json:"services_offered,omitempty"`
	OperatingCountries []string  `json:"operating_countries,omitempty"`
	Specializations    []string  `json:"specializations,omitempty"`

	Documents map[string]string `json:"documents,omitempty"`

	CompletionPercentage int     `json:"completion_percentage"`
	IsLicenseValid       bool    `json:"is_license_valid"`
	Rating               float64 `json:"rating"`
	TotalReviews         int     `json:"total_reviews"`
	TotalPlacements      int     `json:"total_placements"`
	ActiveMaids          int     `json:"active_maids"`

	IsVerified bool      `json:"is_verified"`
	VerifiedAt time.Time `json:"verified_at,omitzero"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToRecord converts the aggregate to its persistence shape.
func (p *AgencyProfile) ToRecord() AgencyRecord {
	return AgencyRecord{
		ID:                   p.id.String(),
		UserID:               p.userID.String(),
		Status:               p.status.String(),
		Name:                 p.name,
		Phone:                p.phone,
		Email:                p.email,
		Website:              p.website,
		Country:              p.country,
		City:                 p.city,
		Address:              p.address,
		LicenseNumber:        p.licenseNumber,
		LicenseExpiry:        p.licenseExpiry,
		RegistrationNumber:   p.registrationNumber,
		YearEstablished:      p.yearEstablished,
		ServicesOffered:      append([]string(nil), p.servicesOffered...),
		OperatingCountries:   append([]string(nil), p.operatingCountries...),
		Specializations:      append([]string(nil), p.specializations...),
		Documents:            p.documents.toMap(),
		CompletionPercentage: p.completion,
		IsLicenseValid:       p.isLicenseValid,
		Rating:               p.rating,
		TotalReviews:         p.totalReviews,
		TotalPlacements:      p.totalPlacements,
		ActiveMaids:          p.activeMaids,
		IsVerified:           p.isVerified,
		VerifiedAt:           p.verifiedAt,
		CreatedAt:            p.createdAt,
		UpdatedAt:            p.updatedAt,
	}
}

// AgencyFromRecord reconstructs an aggregate from persisted state. Unknown
// statuses degrade to draft via StatusFromString; no events are emitted and
// no derived fields are recomputed.
func AgencyFromRecord(rec AgencyRecord) (*AgencyProfile, error) {
	id, err := domain.ParseProfileID(rec.ID)
	if err != nil {
		return nil, err
	}
	userID, err := domain.ParseUserID(rec.UserID)
	if err != nil {
		return nil, err
	}
	p := &AgencyProfile{
		base:               baseFromRecord(id, userID, rec.Status, rec.IsVerified, rec.VerifiedAt, rec.CompletionPercentage, rec.Rating, rec.TotalReviews, rec.CreatedAt, rec.UpdatedAt),
		name:               rec.Name,
		phone:              rec.Phone,
		email:              rec.Email,
		website:            rec.Website,
		country:            rec.Country,
		city:               rec.City,
		address:            rec.Address,
		licenseNumber:      rec.LicenseNumber,
		licenseExpiry:      rec.LicenseExpiry,
		registrationNumber: rec.RegistrationNumber,
		yearEstablished:    rec.YearEstablished,
		servicesOffered:    append([]string(nil), rec.ServicesOffered...),
		operatingCountries: append([]string(nil), rec.OperatingCountries...),
		specializations:    append([]string(nil), rec.Specializations...),
		isLicenseValid:     rec.IsLicenseValid,
		documents:          newDocumentSet(DocBusinessLicense, DocTaxCertificate, DocInsuranceCertificate),
		totalPlacements:    rec.TotalPlacements,
		activeMaids:        rec.ActiveMaids,
	}
	p.documents.fromMap(rec.Documents)
	return p, nil
}

// MaidRecord mirrors MaidProfile.
type MaidRecord struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Status string `json:"status"`

	FullName    string    `json:"full_name,omitempty"`
	DateOfBirth time.Time `json:"date_of_birth,omitzero"`
	Nationality string    `json:"nationality,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Country     string    `json:"country,omitempty"`
	City        string    `json:"city,omitempty"`

	PassportNumber string    `json:"passport_number,omitempty"`
	PassportExpiry time.Time `json:"passport_expiry,omitzero"`

	ExperienceYears int      `json:"experience_years,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	Languages       []string `json:"languages,omitempty"`
	ExpectedSalary  int      `json:"expected_salary,omitempty"`
	Available       bool     `json:"available"`

	Documents map[string]string `json:"documents,omitempty"`

	CompletionPercentage int     `json:"completion_percentage"`
	IsPassportValid      bool    `json:"is_passport_valid"`
	Rating               float64 `json:"rating"`
	TotalReviews         int     `json:"total_reviews"`
	CompletedContracts   int     `json:"completed_contracts"`

	IsVerified bool      `json:"is_verified"`
	VerifiedAt time.Time `json:"verified_at,omitzero"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToRecord converts the aggregate to its persistence shape.
func (p *MaidProfile) ToRecord() MaidRecord {
	return MaidRecord{
		ID:                   p.id.String(),
		UserID:               p.userID.String(),
		Status:               p.status.String(),
		FullName:             p.fullName,
		DateOfBirth:          p.dateOfBirth,
		Nationality:          p.nationality,
		Phone:                p.phone,
		Country:              p.country,
		City:                 p.city,
		PassportNumber:       p.passportNumber,
		PassportExpiry:       p.passportExpiry,
		ExperienceYears:      p.experienceYears,
		Skills:               append([]string(nil), p.skills...),
		Languages:            append([]string(nil), p.languages...),
		ExpectedSalary:       p.expectedSalary,
		Available:            p.available,
		Documents:            p.documents.toMap(),
		CompletionPercentage: p.completion,
		IsPassportValid:      p.isPassportValid,
		Rating:               p.rating,
		TotalReviews:         p.totalReviews,
		CompletedContracts:   p.completedContracts,
		IsVerified:           p.isVerified,
		VerifiedAt:           p.verifiedAt,
		CreatedAt:            p.createdAt,
		UpdatedAt:            p.updatedAt,
	}
}

// MaidFromRecord reconstructs an aggregate from persisted state.
func MaidFromRecord(rec MaidRecord) (*MaidProfile, error) {
	id, err := domain.ParseProfileID(rec.ID)
	if err != nil {
		return nil, err
	}
	userID, err := domain.ParseUserID(rec.UserID)
	if err != nil {
		return nil, err
	}
	p := &MaidProfile{
		base:               baseFromRecord(id, userID, rec.Status, rec.IsVerified, rec.VerifiedAt, rec.CompletionPercentage, rec.Rating, rec.TotalReviews, rec.CreatedAt, rec.UpdatedAt),
		fullName:           rec.FullName,
		dateOfBirth:        rec.DateOfBirth,
		nationality:        rec.Nationality,
		phone:              rec.Phone,
		country:            rec.Country,
		city:               rec.City,
		passportNumber:     rec.PassportNumber,
		passportExpiry:     rec.PassportExpiry,
		experienceYears:    rec.ExperienceYears,
		skills:             append([]string(nil), rec.Skills...),
		languages:          append([]string(nil), rec.Languages...),
		expectedSalary:     rec.ExpectedSalary,
		available:          rec.Available,
		isPassportValid:    rec.IsPassportValid,
		documents:          newDocumentSet(DocPassportCopy, DocMedicalCertificate, DocPoliceClearance),
		completedContracts: rec.CompletedContracts,
	}
	p.documents.fromMap(rec.Documents)
	return p, nil
}

// SponsorRecord mirrors SponsorProfile.
type SponsorRecord struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Status string `json:"status"`

	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Country  string `json:"country,omitempty"`
	City     string `json:"city,omitempty"`
	Address  string `json:"address,omitempty"`

	HouseholdSize          int      `json:"household_size,omitempty"`
	BudgetMin              int      `json:"budget_min,omitempty"`
	BudgetMax              int      `json:"budget_max,omitempty"`
	PreferredNationalities []string `json:"preferred_nationalities,omitempty"`

	Documents map[string]string `json:"documents,omitempty"`

	CompletionPercentage int     `json:"completion_percentage"`
	Rating               float64 `json:"rating"`
	TotalReviews         int     `json:"total_reviews"`
	TotalHires           int     `json:"total_hires"`

	IsVerified bool      `json:"is_verified"`
	VerifiedAt time.Time `json:"verified_at,omitzero"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToRecord converts the aggregate to its persistence shape.
func (p *SponsorProfile) ToRecord() SponsorRecord {
	return SponsorRecord{
		ID:                     p.id.String(),
		UserID:                 p.userID.String(),
		Status:                 p.status.String(),
		FullName:               p.fullName,
		Phone:                  p.phone,
		Email:                  p.email,
		Country:                p.country,
		City:                   p.city,
		Address:                p.address,
		HouseholdSize:          p.householdSize,
		BudgetMin:              p.budgetMin,
		BudgetMax:              p.budgetMax,
		PreferredNationalities: append([]string(nil), p.preferredNationalities...),
		Documents:              p.documents.toMap(),
		CompletionPercentage:   p.completion,
		Rating:                 p.rating,
		TotalReviews:           p.totalReviews,
		TotalHires:             p.totalHires,
		IsVerified:             p.isVerified,
		VerifiedAt:             p.verifiedAt,
		CreatedAt:              p.createdAt,
		UpdatedAt:              p.updatedAt,
	}
}

// SponsorFromRecord reconstructs an aggregate from persisted state.
func SponsorFromRecord(rec SponsorRecord) (*SponsorProfile, error) {
	id, err := domain.ParseProfileID(rec.ID)
	if err != nil {
		return nil, err
	}
	userID, err := domain.ParseUserID(rec.UserID)
	if err != nil {
		return nil, err
	}
	p := &SponsorProfile{
		base:                   baseFromRecord(id, userID, rec.Status, rec.IsVerified, rec.VerifiedAt, rec.CompletionPercentage, rec.Rating, rec.TotalReviews, rec.CreatedAt, rec.UpdatedAt),
		fullName:               rec.FullName,
		phone:                  rec.Phone,
		email:                  rec.Email,
		country:                rec.Country,
		city:                   rec.City,
		address:                rec.Address,
		householdSize:          rec.HouseholdSize,
		budgetMin:              rec.BudgetMin,
		budgetMax:              rec.BudgetMax,
		preferredNationalities: append([]string(nil), rec.PreferredNationalities...),
		documents:              newDocumentSet(DocIDCopy, DocProofOfAddress),
		totalHires:             rec.TotalHires,
	}
	p.documents.fromMap(rec.Documents)
	return p, nil
}

func baseFromRecord(id domain.ProfileID, userID domain.UserID, status string, isVerified bool, verifiedAt time.Time, completion int, rating float64, totalReviews int, createdAt, updatedAt time.Time) base {
	return base{
		id:           id,
		userID:       userID,
		status:       StatusFromString(status),
		isVerified:   isVerified,
		verifiedAt:   verifiedAt,
		completion:   completion,
		rating:       rating,
		totalReviews: totalReviews,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}
