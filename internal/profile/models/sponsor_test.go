package models_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"worklink/internal/profile/models"
	dErrors "worklink/pkg/domain-errors"
)

type SponsorSuite struct {
	suite.Suite
}

func TestSponsorSuite(t *testing.T) {
	suite.Run(t, new(SponsorSuite))
}

func (s *SponsorSuite) newDraft() *models.SponsorProfile {
	p, err := models.NewSponsorProfile("s1", "u3", frozenNow)
	s.Require().NoError(err)
	return p
}

func (s *SponsorSuite) newComplete() *models.SponsorProfile {
	p := s.newDraft()
	s.Require().NoError(p.UpdateBasicInfo(models.SponsorBasicInfoUpdate{
		FullName: str("Hanna Tesfaye"),
		Phone:    str("+251933000000"),
		Email:    str("hanna@example.com"),
		City:     str("Addis Ababa"),
		Address:  str("Kazanchis 4"),
	}, frozenNow))
	s.Require().NoError(p.UpdateHouseholdInfo(models.SponsorHouseholdUpdate{
		HouseholdSize:          intp(4),
		PreferredNationalities: []string{"Ethiopian", "Kenyan"},
	}, frozenNow))
	s.Require().NoError(p.UploadDocument(models.DocIDCopy, "https://blobs.example/id.pdf", frozenNow))
	p.PullEvents()
	return p
}

func (s *SponsorSuite) TestCompletion() {
	p := s.newComplete()
	s.Equal(100, p.CompletionPercentage())

	s.Run("household size zero does not count", func() {
		q := s.newDraft()
		s.Require().NoError(q.UpdateHouseholdInfo(models.SponsorHouseholdUpdate{
			HouseholdSize: intp(0),
		}, frozenNow))
		// country only: 1 of 9.
		s.Equal(11, q.CompletionPercentage())
	})
}

func (s *SponsorSuite) TestBudgetRangeValidatedBeforeApplying() {
	p := s.newDraft()
	s.Require().NoError(p.UpdateHouseholdInfo(models.SponsorHouseholdUpdate{
		BudgetMin: intp(300),
		BudgetMax: intp(500),
	}, frozenNow))
	p.PullEvents()
	before := p.UpdatedAt()

	s.Run("merged range is checked, not just the supplied ends", func() {
		// Only min supplied, but it collides with the stored max.
		err := p.UpdateHouseholdInfo(models.SponsorHouseholdUpdate{
			BudgetMin: intp(800),
		}, frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal(300, p.BudgetMin())
		s.Equal(500, p.BudgetMax())
		s.Equal(before, p.UpdatedAt(), "rejected update must not touch state")
		s.Empty(p.PullEvents())
	})

	s.Run("nothing from a rejected update is applied", func() {
		err := p.UpdateHouseholdInfo(models.SponsorHouseholdUpdate{
			HouseholdSize: intp(6),
			BudgetMin:     intp(900),
		}, frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal(0, p.HouseholdSize())
	})

	s.Run("widening the range is fine", func() {
		s.NoError(p.UpdateHouseholdInfo(models.SponsorHouseholdUpdate{
			BudgetMax: intp(1000),
		}, frozenNow))
		s.Equal(1000, p.BudgetMax())
	})
}

func (s *SponsorSuite) TestSubmitNeedsNoCredential() {
	p := s.newComplete()
	s.Require().NoError(p.SubmitForVerification(frozenNow))
	s.Equal(models.StatusUnderReview, p.Status())
}

func (s *SponsorSuite) TestLifecycle() {
	p := s.newComplete()
	s.Require().NoError(p.SubmitForVerification(frozenNow))
	s.Require().NoError(p.Reject("identity mismatch", "admin-1", frozenNow))
	s.Equal(models.StatusRejected, p.Status())

	s.Run("rejected sponsor cannot resubmit", func() {
		err := p.SubmitForVerification(frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	s.Run("rejected sponsor can still be archived", func() {
		s.NoError(p.Archive("cleanup", frozenNow))
		s.Equal(models.StatusArchived, p.Status())
	})
}

func (s *SponsorSuite) TestArchivedGuardAsymmetry() {
	p := s.newComplete()
	s.Require().NoError(p.Archive("cleanup", frozenNow))

	err := p.UpdateBasicInfo(models.SponsorBasicInfoUpdate{FullName: str("x")}, frozenNow)
	s.True(dErrors.HasCode(err, dErrors.CodeArchived))

	s.NoError(p.UpdateHouseholdInfo(models.SponsorHouseholdUpdate{HouseholdSize: intp(5)}, frozenNow))
	p.RecordHire(frozenNow)
	s.Equal(1, p.TotalHires())
}

func (s *SponsorSuite) TestHireCounterAndRating() {
	p := s.newDraft()
	p.PullEvents()

	p.RecordHire(frozenNow)
	p.RecordHire(frozenNow)
	s.Equal(2, p.TotalHires())

	s.Require().NoError(p.UpdateRating(3, frozenNow))
	s.Require().NoError(p.UpdateRating(4, frozenNow))
	s.InDelta(3.5, p.Rating(), 1e-9)

	events := p.PullEvents()
	s.Require().Len(events, 4)
	s.Equal(models.EventSponsorHireRecorded, events[0].Type)
	s.Equal(models.EventSponsorRatingUpdated, events[3].Type)
	s.Empty(p.PullEvents())
}
