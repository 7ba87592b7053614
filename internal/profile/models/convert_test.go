package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"worklink/internal/profile/models"
	dErrors "worklink/pkg/domain-errors"
)

type ConvertSuite struct {
	suite.Suite
}

func TestConvertSuite(t *testing.T) {
	suite.Run(t, new(ConvertSuite))
}

// mutated returns an agency with a representative spread of state: partial
// fields, a document, counters, a rating and a lifecycle transition.
func (s *ConvertSuite) mutatedAgency() *models.AgencyProfile {
	p, err := models.NewAgencyProfile("a1", "u1", frozenNow)
	s.Require().NoError(err)
	s.Require().NoError(p.UpdateBasicInfo(models.AgencyBasicInfoUpdate{
		Name:  str("Addis Placements"),
		Phone: str("+251911000000"),
	}, frozenNow))
	s.Require().NoError(p.UpdateLicenseInfo(models.AgencyLicenseUpdate{
		LicenseNumber: str("LIC-1"),
		LicenseExpiry: timep(futureExpiry),
	}, frozenNow))
	s.Require().NoError(p.UploadDocument(models.DocBusinessLicense, "https://blobs.example/bl.pdf", frozenNow))
	p.AddMaid("m1", frozenNow)
	s.Require().NoError(p.UpdateRating(4, frozenNow))
	return p
}

func (s *ConvertSuite) TestAgencyRoundTrip() {
	p := s.mutatedAgency()
	rec := p.ToRecord()

	restored, err := models.AgencyFromRecord(rec)
	s.Require().NoError(err)
	s.Equal(rec, restored.ToRecord())

	s.Run("reconstruction emits no events", func() {
		s.Empty(restored.PullEvents())
	})

	s.Run("derived fields come from the record, not a recompute", func() {
		rec := p.ToRecord()
		rec.CompletionPercentage = 42
		rec.IsLicenseValid = false
		restored, err := models.AgencyFromRecord(rec)
		s.Require().NoError(err)
		s.Equal(42, restored.CompletionPercentage())
		s.False(restored.IsLicenseValid())
	})
}

func (s *ConvertSuite) TestAgencyJSONRoundTrip() {
	p := s.mutatedAgency()
	rec := p.ToRecord()

	raw, err := json.Marshal(rec)
	s.Require().NoError(err)

	var decoded models.AgencyRecord
	s.Require().NoError(json.Unmarshal(raw, &decoded))
	s.Equal(rec, decoded)

	restored, err := models.AgencyFromRecord(decoded)
	s.Require().NoError(err)
	s.Equal(rec, restored.ToRecord())
}

func (s *ConvertSuite) TestMaidRoundTrip() {
	p, err := models.NewMaidProfile("m1", "u2", frozenNow)
	s.Require().NoError(err)
	s.Require().NoError(p.UpdatePersonalInfo(models.MaidPersonalInfoUpdate{
		FullName:       str("Meseret Alemu"),
		PassportNumber: str("EP1234567"),
		PassportExpiry: timep(futureExpiry),
	}, frozenNow))
	s.Require().NoError(p.UpdateWorkProfile(models.MaidWorkProfileUpdate{
		Skills:    []string{"cooking"},
		Languages: []string{"amharic"},
	}, frozenNow))
	p.SetAvailability(true, frozenNow)

	rec := p.ToRecord()
	restored, err := models.MaidFromRecord(rec)
	s.Require().NoError(err)
	s.Equal(rec, restored.ToRecord())
	s.True(restored.IsAvailable())
}

func (s *ConvertSuite) TestSponsorRoundTrip() {
	p, err := models.NewSponsorProfile("s1", "u3", frozenNow)
	s.Require().NoError(err)
	s.Require().NoError(p.UpdateHouseholdInfo(models.SponsorHouseholdUpdate{
		HouseholdSize:          intp(4),
		BudgetMin:              intp(300),
		BudgetMax:              intp(500),
		PreferredNationalities: []string{"Ethiopian"},
	}, frozenNow))
	p.RecordHire(frozenNow)

	rec := p.ToRecord()
	restored, err := models.SponsorFromRecord(rec)
	s.Require().NoError(err)
	s.Equal(rec, restored.ToRecord())
}

func (s *ConvertSuite) TestFromRecordValidation() {
	s.Run("unknown status degrades to draft", func() {
		p, err := models.NewSponsorProfile("s1", "u3", frozenNow)
		s.Require().NoError(err)
		rec := p.ToRecord()
		rec.Status = "pending"

		restored, err := models.SponsorFromRecord(rec)
		s.Require().NoError(err)
		s.Equal(models.StatusDraft, restored.Status())
	})

	s.Run("empty id is rejected", func() {
		_, err := models.AgencyFromRecord(models.AgencyRecord{UserID: "u1"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("unknown document slots are dropped", func() {
		p, err := models.NewSponsorProfile("s1", "u3", frozenNow)
		s.Require().NoError(err)
		rec := p.ToRecord()
		rec.Documents = map[string]string{
			"idCopy":       "https://blobs.example/id.pdf",
			"businessPlan": "https://blobs.example/bp.pdf",
		}

		restored, err := models.SponsorFromRecord(rec)
		s.Require().NoError(err)
		s.Equal("https://blobs.example/id.pdf", restored.Document(models.DocIDCopy))
		s.Equal("", restored.Document("businessPlan"))
	})
}
