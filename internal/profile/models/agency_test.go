package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"worklink/internal/profile/models"
	"worklink/pkg/domain"
	dErrors "worklink/pkg/domain-errors"
)

var (
	frozenNow    = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	futureExpiry = time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)
	pastExpiry   = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
)

func str(v string) *string { return &v }
func intp(v int) *int { return &v }
func timep(v time.Time) *time.Time { return &v }

type AgencySuite struct {
	suite.Suite
}

func TestAgencySuite(t *testing.T) {
	suite.Run(t, new(AgencySuite))
}

func (s *AgencySuite) newDraft() *models.AgencyProfile {
	p, err := models.NewAgencyProfile("a1", "u1", frozenNow)
	s.Require().NoError(err)
	return p
}

// newComplete returns a draft agency with all eleven required fields filled
// and a license valid past futureExpiry. Events are drained.
func (s *AgencySuite) newComplete() *models.AgencyProfile {
	p := s.newDraft()
	s.Require().NoError(p.UpdateBasicInfo(models.AgencyBasicInfoUpdate{
		Name:    str("Addis Placements"),
		Phone:   str("+251911000000"),
		Email:   str("office@addisplacements.example"),
		City:    str("Addis Ababa"),
		Address: str("Bole Road 12"),
	}, frozenNow))
	s.Require().NoError(p.UpdateLicenseInfo(models.AgencyLicenseUpdate{
		LicenseNumber:      str("LIC-2026-001"),
		LicenseExpiry:      timep(futureExpiry),
		RegistrationNumber: str("REG-88"),
	}, frozenNow))
	s.Require().NoError(p.UploadDocument(models.DocBusinessLicense, "https://blobs.example/bl.pdf", frozenNow))
	s.Require().NoError(p.UploadDocument(models.DocTaxCertificate, "https://blobs.example/tax.pdf", frozenNow))
	p.PullEvents()
	return p
}

func (s *AgencySuite) TestNew() {
	s.Run("starts as draft with default country", func() {
		p := s.newDraft()
		s.Equal(models.StatusDraft, p.Status())
		s.Equal(models.DefaultCountry, p.Country())
		s.False(p.IsVerified())
		s.False(p.IsComplete())

		events := p.PullEvents()
		s.Require().Len(events, 1)
		s.Equal(models.EventAgencyProfileCreated, events[0].Type)
		s.Equal(domain.ProfileID("a1"), events[0].AggregateID)
	})

	s.Run("default country counts toward completion", func() {
		p := s.newDraft()
		// 1 of 11 required fields filled.
		s.Equal(9, p.CompletionPercentage())
	})

	s.Run("rejects empty identifiers", func() {
		_, err := models.NewAgencyProfile("", "u1", frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))

		_, err = models.NewAgencyProfile("a1", "", frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func (s *AgencySuite) TestUpdatedAtStrictlyAdvances() {
	p := s.newDraft()
	prev := p.UpdatedAt()

	// Same frozen clock on every call; updatedAt must still move.
	for i := 0; i < 3; i++ {
		s.Require().NoError(p.UpdateBasicInfo(models.AgencyBasicInfoUpdate{}, frozenNow))
		s.True(p.UpdatedAt().After(prev), "call %d did not advance updatedAt", i)
		prev = p.UpdatedAt()
	}
}

func (s *AgencySuite) TestNoOpUpdateStillEmitsEvent() {
	p := s.newDraft()
	p.PullEvents()

	s.Require().NoError(p.UpdateBasicInfo(models.AgencyBasicInfoUpdate{}, frozenNow))
	events := p.PullEvents()
	s.Require().Len(events, 1)
	s.Equal(models.EventAgencyBasicInfoUpdated, events[0].Type)
	s.Empty(events[0].Payload["fields"])
}

func (s *AgencySuite) TestPartialUpdateMerges() {
	p := s.newDraft()
	s.Require().NoError(p.UpdateBasicInfo(models.AgencyBasicInfoUpdate{
		Name:  str("Addis Placements"),
		Phone: str("+251911000000"),
	}, frozenNow))

	s.Run("untouched fields survive later updates", func() {
		s.Require().NoError(p.UpdateBasicInfo(models.AgencyBasicInfoUpdate{
			City: str("Addis Ababa"),
		}, frozenNow))
		s.Equal("Addis Placements", p.Name())
		s.Equal("+251911000000", p.Phone())
		s.Equal("Addis Ababa", p.City())
	})

	s.Run("explicit empty string clears a field", func() {
		s.Require().NoError(p.UpdateBasicInfo(models.AgencyBasicInfoUpdate{
			Phone: str(""),
		}, frozenNow))
		s.Equal("", p.Phone())
		s.Equal("Addis Placements", p.Name())
	})

	s.Run("nil slice is untouched, empty slice clears", func() {
		s.Require().NoError(p.UpdateBusinessInfo(models.AgencyBusinessUpdate{
			ServicesOffered: []string{"recruitment", "training"},
		}, frozenNow))
		s.Require().NoError(p.UpdateBusinessInfo(models.AgencyBusinessUpdate{
			YearEstablished: intp(2015),
		}, frozenNow))
		s.Equal([]string{"recruitment", "training"}, p.ServicesOffered())

		s.Require().NoError(p.UpdateBusinessInfo(models.AgencyBusinessUpdate{
			ServicesOffered: []string{},
		}, frozenNow))
		s.Empty(p.ServicesOffered())
	})
}

func (s *AgencySuite) TestLicenseValidity() {
	cases := []struct {
		name   string
		number *string
		expiry *time.Time
		want   bool
	}{
		{"number and future expiry", str("LIC-1"), timep(futureExpiry), true},
		{"missing number", nil, timep(futureExpiry), false},
		{"missing expiry", str("LIC-1"), nil, false},
		{"expiry in the past", str("LIC-1"), timep(pastExpiry), false},
		{"expiry equal to now", str("LIC-1"), timep(frozenNow), false},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			p := s.newDraft()
			s.Require().NoError(p.UpdateLicenseInfo(models.AgencyLicenseUpdate{
				LicenseNumber: tc.number,
				LicenseExpiry: tc.expiry,
			}, frozenNow))
			s.Equal(tc.want, p.IsLicenseValid())
		})
	}
}

func (s *AgencySuite) TestSubmitForVerification() {
	s.Run("rejects incomplete draft", func() {
		p := s.newDraft()
		err := p.SubmitForVerification(frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeIncompleteProfile))
		s.Equal(models.StatusDraft, p.Status())
	})

	s.Run("rejects expired license even when complete", func() {
		p := s.newComplete()
		s.Require().NoError(p.UpdateLicenseInfo(models.AgencyLicenseUpdate{
			LicenseExpiry: timep(pastExpiry),
		}, frozenNow))
		p.PullEvents()
		before := p.UpdatedAt()

		err := p.SubmitForVerification(frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidLicense))
		s.Equal(models.StatusDraft, p.Status())
		s.Empty(p.PullEvents(), "failed submission must not buffer events")
		s.Equal(before, p.UpdatedAt(), "failed submission must not touch updatedAt")
	})

	s.Run("catches a license that lapsed since the last update", func() {
		p := s.newComplete()
		// Flag still says valid; the submission clock is past expiry.
		s.True(p.IsLicenseValid())
		err := p.SubmitForVerification(futureExpiry.Add(24 * time.Hour))
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidLicense))
		s.Equal(models.StatusDraft, p.Status())
	})

	s.Run("moves complete valid draft to under_review", func() {
		p := s.newComplete()
		s.Require().NoError(p.SubmitForVerification(frozenNow))
		s.Equal(models.StatusUnderReview, p.Status())

		events := p.PullEvents()
		s.Require().Len(events, 1)
		s.Equal(models.EventAgencyProfileSubmitted, events[0].Type)
	})

	s.Run("rejects resubmission from under_review", func() {
		p := s.newComplete()
		s.Require().NoError(p.SubmitForVerification(frozenNow))
		err := p.SubmitForVerification(frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})
}

func (s *AgencySuite) TestLifecycle() {
	s.Run("verify requires under_review", func() {
		p := s.newDraft()
		p.PullEvents()
		err := p.Verify("admin-1", frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
		s.Empty(p.PullEvents())
	})

	s.Run("verify activates and stamps verification", func() {
		p := s.newComplete()
		s.Require().NoError(p.SubmitForVerification(frozenNow))
		s.Require().NoError(p.Verify("admin-1", frozenNow))

		s.Equal(models.StatusActive, p.Status())
		s.True(p.IsVerified())
		s.Equal(p.UpdatedAt(), p.VerifiedAt())
	})

	s.Run("reject requires under_review", func() {
		p := s.newDraft()
		err := p.Reject("incomplete docs", "admin-1", frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	s.Run("reject is terminal, no path back to draft", func() {
		p := s.newComplete()
		s.Require().NoError(p.SubmitForVerification(frozenNow))
		s.Require().NoError(p.Reject("forged license", "admin-1", frozenNow))
		s.Equal(models.StatusRejected, p.Status())

		err := p.SubmitForVerification(frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	s.Run("archive allowed from any non-archived status", func() {
		for _, prepare := range []func() *models.AgencyProfile{
			func() *models.AgencyProfile { return s.newDraft() },
			func() *models.AgencyProfile {
				p := s.newComplete()
				s.Require().NoError(p.SubmitForVerification(frozenNow))
				return p
			},
			func() *models.AgencyProfile {
				p := s.newComplete()
				s.Require().NoError(p.SubmitForVerification(frozenNow))
				s.Require().NoError(p.Verify("admin-1", frozenNow))
				return p
			},
			func() *models.AgencyProfile {
				p := s.newComplete()
				s.Require().NoError(p.SubmitForVerification(frozenNow))
				s.Require().NoError(p.Reject("no", "admin-1", frozenNow))
				return p
			},
		} {
			p := prepare()
			s.Require().NoError(p.Archive("cleanup", frozenNow))
			s.Equal(models.StatusArchived, p.Status())
		}
	})

	s.Run("archiving twice fails with a distinct code", func() {
		p := s.newDraft()
		s.Require().NoError(p.Archive("cleanup", frozenNow))
		err := p.Archive("again", frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyArchived))
		s.False(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})
}

func (s *AgencySuite) TestArchivedGuardAsymmetry() {
	p := s.newComplete()
	s.Require().NoError(p.Archive("cleanup", frozenNow))
	p.PullEvents()

	s.Run("basic info update is blocked", func() {
		err := p.UpdateBasicInfo(models.AgencyBasicInfoUpdate{Name: str("x")}, frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeArchived))
	})

	s.Run("license and business updates still apply", func() {
		s.NoError(p.UpdateLicenseInfo(models.AgencyLicenseUpdate{
			LicenseNumber: str("LIC-CORRECTED"),
		}, frozenNow))
		s.NoError(p.UpdateBusinessInfo(models.AgencyBusinessUpdate{
			YearEstablished: intp(2010),
		}, frozenNow))
		s.Equal("LIC-CORRECTED", p.LicenseNumber())
	})

	s.Run("documents and counters still apply", func() {
		s.NoError(p.UploadDocument(models.DocInsuranceCertificate, "https://blobs.example/ins.pdf", frozenNow))
		p.AddMaid("m9", frozenNow)
		s.Equal(1, p.ActiveMaids())
	})
}

func (s *AgencySuite) TestRatingRunningMean() {
	p := s.newDraft()
	p.PullEvents()

	s.Require().NoError(p.UpdateRating(5, frozenNow))
	s.Require().NoError(p.UpdateRating(4, frozenNow))
	s.InDelta(4.5, p.Rating(), 1e-9)
	s.Equal(2, p.TotalReviews())

	s.Run("out of range scores are rejected atomically", func() {
		before := p.Rating()
		err := p.UpdateRating(5.1, frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidRating))
		err = p.UpdateRating(-0.1, frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidRating))
		s.Equal(before, p.Rating())
		s.Equal(2, p.TotalReviews())
	})

	s.Run("zero is a legal score", func() {
		s.NoError(p.UpdateRating(0, frozenNow))
		s.Equal(3, p.TotalReviews())
		s.InDelta(3.0, p.Rating(), 1e-9)
	})
}

func (s *AgencySuite) TestMaidCounterClamp() {
	p := s.newDraft()
	p.PullEvents()

	p.AddMaid("m1", frozenNow)
	s.Equal(1, p.ActiveMaids())

	p.RemoveMaid("m1", frozenNow)
	s.Equal(0, p.ActiveMaids())

	// Clamped at zero; the event still fires so subscribers see the attempt.
	p.RemoveMaid("m1", frozenNow)
	s.Equal(0, p.ActiveMaids())

	events := p.PullEvents()
	s.Require().Len(events, 3)
	last := events[2]
	s.Equal(models.EventAgencyMaidRemoved, last.Type)
	s.Equal(0, last.Payload["active_maids"])
}

func (s *AgencySuite) TestPlacementCounter() {
	p := s.newDraft()
	p.RecordPlacement(frozenNow)
	p.RecordPlacement(frozenNow)
	s.Equal(2, p.TotalPlacements())
}

func (s *AgencySuite) TestDocumentSlots() {
	p := s.newDraft()
	p.PullEvents()

	s.Run("unknown slot is rejected without state change", func() {
		before := p.UpdatedAt()
		err := p.UploadDocument("passportCopy", "https://blobs.example/x.pdf", frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidDocumentType))
		s.Empty(p.PullEvents())
		s.Equal(before, p.UpdatedAt())
	})

	s.Run("re-upload replaces the slot", func() {
		s.Require().NoError(p.UploadDocument(models.DocBusinessLicense, "https://blobs.example/v1.pdf", frozenNow))
		s.Require().NoError(p.UploadDocument(models.DocBusinessLicense, "https://blobs.example/v2.pdf", frozenNow))
		s.Equal("https://blobs.example/v2.pdf", p.Document(models.DocBusinessLicense))
	})
}

func (s *AgencySuite) TestEventDrain() {
	p := s.newDraft()
	p.PullEvents()

	s.Require().NoError(p.UpdateBasicInfo(models.AgencyBasicInfoUpdate{Name: str("A")}, frozenNow))
	p.AddMaid("m1", frozenNow)
	p.RecordPlacement(frozenNow)

	events := p.PullEvents()
	s.Require().Len(events, 3)
	s.Equal(models.EventAgencyBasicInfoUpdated, events[0].Type)
	s.Equal(models.EventAgencyMaidAdded, events[1].Type)
	s.Equal(models.EventAgencyPlacementRecorded, events[2].Type)

	s.Empty(p.PullEvents(), "second drain must be empty")
}

// TestFullJourney walks one agency from creation to active the way the
// product flow does.
func (s *AgencySuite) TestFullJourney() {
	p, err := models.NewAgencyProfile("a1", "u1", frozenNow)
	s.Require().NoError(err)

	s.Require().NoError(p.UpdateBasicInfo(models.AgencyBasicInfoUpdate{
		Name:    str("Addis Placements"),
		Phone:   str("+251911000000"),
		Email:   str("office@addisplacements.example"),
		City:    str("Addis Ababa"),
		Address: str("Bole Road 12"),
	}, frozenNow))
	s.Less(p.CompletionPercentage(), 100)

	s.Require().NoError(p.UpdateLicenseInfo(models.AgencyLicenseUpdate{
		LicenseNumber:      str("LIC-2026-001"),
		LicenseExpiry:      timep(futureExpiry),
		RegistrationNumber: str("REG-88"),
	}, frozenNow))
	s.True(p.IsLicenseValid())

	s.Require().NoError(p.UploadDocument(models.DocBusinessLicense, "https://blobs.example/bl.pdf", frozenNow))
	s.Require().NoError(p.UploadDocument(models.DocTaxCertificate, "https://blobs.example/tax.pdf", frozenNow))
	s.Equal(100, p.CompletionPercentage())
	s.True(p.IsComplete())

	s.Require().NoError(p.SubmitForVerification(frozenNow))
	s.Require().NoError(p.Verify("admin-1", frozenNow))
	s.Equal(models.StatusActive, p.Status())
	s.True(p.IsVerified())

	// created + 2 info updates + 2 documents + submit + verify
	events := p.PullEvents()
	s.Len(events, 7)
	s.Equal(models.EventAgencyProfileVerified, events[len(events)-1].Type)
}
