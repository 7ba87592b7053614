package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"worklink/internal/profile/handler"
	"worklink/internal/profile/models"
	"worklink/internal/profile/service"
	"worklink/internal/profile/store"
	"worklink/pkg/testutil"
)

var handlerNow = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

type HandlerSuite struct {
	suite.Suite

	router chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(store.NewMemoryStore(),
		service.WithLogger(logger),
		service.WithClock(func() time.Time { return handlerNow }),
	)
	h := handler.New(svc, logger)

	s.router = chi.NewRouter()
	h.Register(s.router)
}

// do executes an authenticated request as user u1.
func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	req := testutil.NewJSONRequest(s.T(), method, path, body)
	req = testutil.WithAuth(req, "u1", "admin@worklink")
	return testutil.DoRequest(s.router, req)
}

// createAgency creates an agency profile and returns its ID.
func (s *HandlerSuite) createAgency() string {
	rr := s.do(http.MethodPost, "/profiles/agencies", nil)
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	rec := testutil.UnmarshalResponse[models.AgencyRecord](s.T(), rr)
	s.Require().NotEmpty(rec.ID)
	return rec.ID
}

// completeAgency fills in every field submission requires.
func (s *HandlerSuite) completeAgency(id string) {
	base := "/profiles/agencies/" + id
	rr := s.do(http.MethodPut, base+"/basic-info", map[string]any{
		"name":    "Habesha Placements",
		"phone":   "+251911000000",
		"email":   "info@habesha.example",
		"country": "ET",
		"city":    "Addis Ababa",
		"address": "Bole Road 12",
	})
	testutil.AssertStatusOK(s.T(), rr)

	rr = s.do(http.MethodPut, base+"/license", map[string]any{
		"license_number":      "LIC-2026-001",
		"license_expiry":      handlerNow.AddDate(1, 0, 0).Format(time.RFC3339),
		"registration_number": "REG-88",
	})
	testutil.AssertStatusOK(s.T(), rr)

	for _, doc := range []string{"businessLicense", "taxCertificate"} {
		rr = s.do(http.MethodPost, base+"/documents", map[string]any{
			"document_type": doc,
			"url":           "https://blob/" + doc + ".pdf",
		})
		testutil.AssertStatusOK(s.T(), rr)
	}
}

func (s *HandlerSuite) TestUnauthenticatedCreateIsRejected() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/profiles/agencies", nil)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
}

func (s *HandlerSuite) TestCreateAndGetAgency() {
	id := s.createAgency()

	rr := s.do(http.MethodGet, "/profiles/agencies/"+id, nil)
	testutil.AssertStatusOK(s.T(), rr)
	rec := testutil.UnmarshalResponse[models.AgencyRecord](s.T(), rr)
	s.Equal("u1", rec.UserID)
	s.Equal("draft", rec.Status)
	s.Equal("ET", rec.Country)
}

func (s *HandlerSuite) TestGetUnknownProfile() {
	rr := s.do(http.MethodGet, "/profiles/agencies/nope", nil)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *HandlerSuite) TestPartialUpdateReturnsMergedRecord() {
	id := s.createAgency()

	rr := s.do(http.MethodPut, "/profiles/agencies/"+id+"/basic-info", map[string]any{
		"name": "Addis Agency",
	})
	testutil.AssertStatusOK(s.T(), rr)
	rec := testutil.UnmarshalResponse[models.AgencyRecord](s.T(), rr)
	s.Equal("Addis Agency", rec.Name)
	s.Equal("ET", rec.Country, "untouched fields survive")
}

func (s *HandlerSuite) TestMalformedBody() {
	id := s.createAgency()

	req := testutil.NewRequestWithBody(s.T(), http.MethodPut, "/profiles/agencies/"+id+"/basic-info", "{not json")
	req = testutil.WithUserID(req, "u1")
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
}

func (s *HandlerSuite) TestSubmitIncompleteProfile() {
	id := s.createAgency()

	rr := s.do(http.MethodPost, "/profiles/agencies/"+id+"/submit", nil)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "incomplete_profile")
}

func (s *HandlerSuite) TestRejectRequiresReason() {
	id := s.createAgency()

	rr := s.do(http.MethodPost, "/profiles/agencies/"+id+"/reject", map[string]any{})
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation")
}

func (s *HandlerSuite) TestRatingValidation() {
	id := s.createAgency()

	s.Run("missing rating", func() {
		rr := s.do(http.MethodPost, "/profiles/agencies/"+id+"/ratings", map[string]any{})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation")
	})

	s.Run("out of range rating leaves profile untouched", func() {
		rr := s.do(http.MethodPost, "/profiles/agencies/"+id+"/ratings", map[string]any{"rating": 5.5})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_rating")

		get := s.do(http.MethodGet, "/profiles/agencies/"+id, nil)
		rec := testutil.UnmarshalResponse[models.AgencyRecord](s.T(), get)
		s.Zero(rec.TotalReviews)
	})
}

func (s *HandlerSuite) TestAgencyJourney() {
	id := s.createAgency()
	s.completeAgency(id)
	base := "/profiles/agencies/" + id

	rr := s.do(http.MethodPost, base+"/submit", nil)
	testutil.AssertStatusOK(s.T(), rr)
	rec := testutil.UnmarshalResponse[models.AgencyRecord](s.T(), rr)
	s.Equal("under_review", rec.Status)

	rr = s.do(http.MethodPost, base+"/verify", nil)
	testutil.AssertStatusOK(s.T(), rr)
	rec = testutil.UnmarshalResponse[models.AgencyRecord](s.T(), rr)
	s.Equal("active", rec.Status)
	s.True(rec.IsVerified)

	s.Run("maid roster and placements", func() {
		rr := s.do(http.MethodPost, base+"/maids", map[string]any{"maid_id": "m1"})
		testutil.AssertStatusOK(s.T(), rr)
		rec := testutil.UnmarshalResponse[models.AgencyRecord](s.T(), rr)
		s.Equal(1, rec.ActiveMaids)

		rr = s.do(http.MethodPost, base+"/placements", nil)
		testutil.AssertStatusOK(s.T(), rr)

		rr = s.do(http.MethodDelete, base+"/maids/m1", nil)
		testutil.AssertStatusOK(s.T(), rr)
		rec = testutil.UnmarshalResponse[models.AgencyRecord](s.T(), rr)
		s.Equal(0, rec.ActiveMaids)
		s.Equal(1, rec.TotalPlacements)
	})

	s.Run("archive ends the journey", func() {
		rr := s.do(http.MethodPost, base+"/archive", map[string]any{"reason": "closing"})
		testutil.AssertStatusOK(s.T(), rr)
		rec := testutil.UnmarshalResponse[models.AgencyRecord](s.T(), rr)
		s.Equal("archived", rec.Status)

		again := s.do(http.MethodPost, base+"/archive", map[string]any{})
		testutil.AssertStatusAndError(s.T(), again, http.StatusConflict, "already_archived")
	})
}

func (s *HandlerSuite) TestMaidAvailability() {
	rr := s.do(http.MethodPost, "/profiles/maids", nil)
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	rec := testutil.UnmarshalResponse[models.MaidRecord](s.T(), rr)
	base := "/profiles/maids/" + rec.ID

	s.Run("missing flag fails validation", func() {
		rr := s.do(http.MethodPut, base+"/availability", map[string]any{})
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation")
	})

	rr = s.do(http.MethodPut, base+"/availability", map[string]any{"available": false})
	testutil.AssertStatusOK(s.T(), rr)
	rec = testutil.UnmarshalResponse[models.MaidRecord](s.T(), rr)
	s.False(rec.Available)
}

func (s *HandlerSuite) TestSponsorBudgetValidation() {
	rr := s.do(http.MethodPost, "/profiles/sponsors", nil)
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	rec := testutil.UnmarshalResponse[models.SponsorRecord](s.T(), rr)
	base := "/profiles/sponsors/" + rec.ID

	rr = s.do(http.MethodPut, base+"/household", map[string]any{
		"budget_min": 500,
		"budget_max": 200,
	})
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation")

	rr = s.do(http.MethodPut, base+"/household", map[string]any{
		"household_size": 4,
		"budget_min":     200,
		"budget_max":     500,
	})
	testutil.AssertStatusOK(s.T(), rr)
	rec = testutil.UnmarshalResponse[models.SponsorRecord](s.T(), rr)
	s.Equal(200, rec.BudgetMin)
	s.Equal(500, rec.BudgetMax)
}

func (s *HandlerSuite) TestListProfiles() {
	s.createAgency()
	rr := s.do(http.MethodPost, "/profiles/maids", nil)
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)

	list := s.do(http.MethodGet, "/profiles", nil)
	testutil.AssertStatusOK(s.T(), list)

	body := testutil.UnmarshalResponse[map[string][]service.ProfileSummary](s.T(), list)
	s.Len((*body)["profiles"], 2)
}
