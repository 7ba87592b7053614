package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"worklink/internal/profile/models"
	dErrors "worklink/pkg/domain-errors"
)

type MaidSuite struct {
	suite.Suite
}

func TestMaidSuite(t *testing.T) {
	suite.Run(t, new(MaidSuite))
}

func (s *MaidSuite) newDraft() *models.MaidProfile {
	p, err := models.NewMaidProfile("m1", "u2", frozenNow)
	s.Require().NoError(err)
	return p
}

func (s *MaidSuite) newComplete() *models.MaidProfile {
	p := s.newDraft()
	dob := time.Date(1995, 3, 2, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(p.UpdatePersonalInfo(models.MaidPersonalInfoUpdate{
		FullName:       str("Meseret Alemu"),
		DateOfBirth:    timep(dob),
		Nationality:    str("Ethiopian"),
		Phone:          str("+251922000000"),
		PassportNumber: str("EP1234567"),
		PassportExpiry: timep(futureExpiry),
	}, frozenNow))
	s.Require().NoError(p.UpdateWorkProfile(models.MaidWorkProfileUpdate{
		ExperienceYears: intp(4),
		Skills:          []string{"cooking", "childcare"},
		Languages:       []string{"amharic", "arabic"},
	}, frozenNow))
	s.Require().NoError(p.UploadDocument(models.DocPassportCopy, "https://blobs.example/pp.pdf", frozenNow))
	s.Require().NoError(p.UploadDocument(models.DocMedicalCertificate, "https://blobs.example/med.pdf", frozenNow))
	p.PullEvents()
	return p
}

func (s *MaidSuite) TestCompletionRequiresExperienceAndLists() {
	p := s.newComplete()
	s.Equal(100, p.CompletionPercentage())

	s.Run("zero experience does not count", func() {
		q := s.newDraft()
		s.Require().NoError(q.UpdateWorkProfile(models.MaidWorkProfileUpdate{
			ExperienceYears: intp(0),
			Skills:          []string{"cooking"},
			Languages:       []string{"amharic"},
		}, frozenNow))
		s.Less(q.CompletionPercentage(), 100)
	})

	s.Run("clearing skills lowers completion", func() {
		s.Require().NoError(p.UpdateWorkProfile(models.MaidWorkProfileUpdate{
			Skills: []string{},
		}, frozenNow))
		s.Less(p.CompletionPercentage(), 100)
	})
}

func (s *MaidSuite) TestPassportValidity() {
	p := s.newDraft()

	s.Require().NoError(p.UpdatePersonalInfo(models.MaidPersonalInfoUpdate{
		PassportNumber: str("EP1234567"),
		PassportExpiry: timep(futureExpiry),
	}, frozenNow))
	s.True(p.IsPassportValid())

	s.Require().NoError(p.UpdatePersonalInfo(models.MaidPersonalInfoUpdate{
		PassportExpiry: timep(pastExpiry),
	}, frozenNow))
	s.False(p.IsPassportValid())
}

func (s *MaidSuite) TestSubmitRequiresValidPassport() {
	s.Run("expired passport blocks submission", func() {
		p := s.newComplete()
		s.Require().NoError(p.UpdatePersonalInfo(models.MaidPersonalInfoUpdate{
			PassportExpiry: timep(pastExpiry),
		}, frozenNow))
		p.PullEvents()

		err := p.SubmitForVerification(frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidLicense))
		s.Equal(models.StatusDraft, p.Status())
		s.Empty(p.PullEvents())
	})

	s.Run("complete profile with valid passport submits", func() {
		p := s.newComplete()
		s.Require().NoError(p.SubmitForVerification(frozenNow))
		s.Equal(models.StatusUnderReview, p.Status())
	})
}

func (s *MaidSuite) TestLifecycle() {
	p := s.newComplete()
	s.Require().NoError(p.SubmitForVerification(frozenNow))
	s.Require().NoError(p.Verify("admin-2", frozenNow))
	s.Equal(models.StatusActive, p.Status())
	s.True(p.IsVerified())

	s.Run("active profile cannot be verified again", func() {
		err := p.Verify("admin-2", frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	s.Run("archive is terminal", func() {
		s.Require().NoError(p.Archive("left the market", frozenNow))
		err := p.Archive("again", frozenNow)
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyArchived))
	})
}

func (s *MaidSuite) TestArchivedGuardAsymmetry() {
	p := s.newComplete()
	s.Require().NoError(p.Archive("left the market", frozenNow))

	err := p.UpdatePersonalInfo(models.MaidPersonalInfoUpdate{FullName: str("x")}, frozenNow)
	s.True(dErrors.HasCode(err, dErrors.CodeArchived))

	// Work profile, availability, documents and counters are not guarded.
	s.NoError(p.UpdateWorkProfile(models.MaidWorkProfileUpdate{ExperienceYears: intp(5)}, frozenNow))
	p.SetAvailability(false, frozenNow)
	s.NoError(p.UploadDocument(models.DocPoliceClearance, "https://blobs.example/pc.pdf", frozenNow))
	p.RecordPlacement(frozenNow)
	s.Equal(1, p.CompletedContracts())
}

func (s *MaidSuite) TestAvailabilityEvent() {
	p := s.newDraft()
	p.PullEvents()

	p.SetAvailability(true, frozenNow)
	s.True(p.IsAvailable())

	events := p.PullEvents()
	s.Require().Len(events, 1)
	s.Equal(models.EventMaidAvailabilityChanged, events[0].Type)
	s.Equal(true, events[0].Payload["available"])
}

func (s *MaidSuite) TestRatingRunningMean() {
	p := s.newDraft()
	s.Require().NoError(p.UpdateRating(5, frozenNow))
	s.Require().NoError(p.UpdateRating(4, frozenNow))
	s.InDelta(4.5, p.Rating(), 1e-9)
	s.Equal(2, p.TotalReviews())
}

func (s *MaidSuite) TestUpdatedAtStrictlyAdvances() {
	p := s.newDraft()
	prev := p.UpdatedAt()
	p.SetAvailability(true, frozenNow)
	s.True(p.UpdatedAt().After(prev))
	prev = p.UpdatedAt()
	p.SetAvailability(true, frozenNow)
	s.True(p.UpdatedAt().After(prev))
}
