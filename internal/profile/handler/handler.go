// Package handler exposes the profile service over HTTP. Request bodies are
// decoded and validated here; everything stateful lives in the service.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"worklink/internal/profile/models"
	"worklink/internal/profile/service"
	"worklink/pkg/domain"
	dErrors "worklink/pkg/domain-errors"
	"worklink/pkg/platform/httputil"
	"worklink/pkg/platform/middleware/auth"
)

// Service defines the profile operations the transport layer depends on.
type Service interface {
	ListByUser(ctx context.Context, userID domain.UserID) ([]service.ProfileSummary, error)

	CreateAgency(ctx context.Context, userID domain.UserID) (*models.AgencyProfile, error)
	GetAgency(ctx context.Context, id domain.ProfileID) (*models.AgencyProfile, error)
	UpdateAgencyBasicInfo(ctx context.Context, id domain.ProfileID, update models.AgencyBasicInfoUpdate) (*models.AgencyProfile, error)
	UpdateAgencyLicenseInfo(ctx context.Context, id domain.ProfileID, update models.AgencyLicenseUpdate) (*models.AgencyProfile, error)
	UpdateAgencyBusinessInfo(ctx context.Context, id domain.ProfileID, update models.AgencyBusinessUpdate) (*models.AgencyProfile, error)
	UploadAgencyDocument(ctx context.Context, id domain.ProfileID, docType, url string) (*models.AgencyProfile, error)
	SubmitAgency(ctx context.Context, id domain.ProfileID) (*models.AgencyProfile, error)
	VerifyAgency(ctx context.Context, id domain.ProfileID, verifiedBy string) (*models.AgencyProfile, error)
	RejectAgency(ctx context.Context, id domain.ProfileID, reason, rejectedBy string) (*models.AgencyProfile, error)
	ArchiveAgency(ctx context.Context, id domain.ProfileID, reason string) (*models.AgencyProfile, error)
	AddAgencyMaid(ctx context.Context, id domain.ProfileID, maidID string) (*models.AgencyProfile, error)
	RemoveAgencyMaid(ctx context.Context, id domain.ProfileID, maidID string) (*models.AgencyProfile, error)
	RecordAgencyPlacement(ctx context.Context, id domain.ProfileID) (*models.AgencyProfile, error)
	UpdateAgencyRating(ctx context.Context, id domain.ProfileID, rating float64) (*models.AgencyProfile, error)

	CreateMaid(ctx context.Context, userID domain.UserID) (*models.MaidProfile, error)
	GetMaid(ctx context.Context, id domain.ProfileID) (*models.MaidProfile, error)
	UpdateMaidPersonalInfo(ctx context.Context, id domain.ProfileID, update models.MaidPersonalInfoUpdate) (*models.MaidProfile, error)
	UpdateMaidWorkProfile(ctx context.Context, id domain.ProfileID, update models.MaidWorkProfileUpdate) (*models.MaidProfile, error)
	SetMaidAvailability(ctx context.Context, id domain.ProfileID, available bool) (*models.MaidProfile, error)
	UploadMaidDocument(ctx context.Context, id domain.ProfileID, docType, url string) (*models.MaidProfile, error)
	SubmitMaid(ctx context.Context, id domain.ProfileID) (*models.MaidProfile, error)
	VerifyMaid(ctx context.Context, id domain.ProfileID, verifiedBy string) (*models.MaidProfile, error)
	RejectMaid(ctx context.Context, id domain.ProfileID, reason, rejectedBy string) (*models.MaidProfile, error)
	ArchiveMaid(ctx context.Context, id domain.ProfileID, reason string) (*models.MaidProfile, error)
	RecordMaidPlacement(ctx context.Context, id domain.ProfileID) (*models.MaidProfile, error)
	UpdateMaidRating(ctx context.Context, id domain.ProfileID, rating float64) (*models.MaidProfile, error)

	CreateSponsor(ctx context.Context, userID domain.UserID) (*models.SponsorProfile, error)
	GetSponsor(ctx context.Context, id domain.ProfileID) (*models.SponsorProfile, error)
	UpdateSponsorBasicInfo(ctx context.Context, id domain.ProfileID, update models.SponsorBasicInfoUpdate) (*models.SponsorProfile, error)
	UpdateSponsorHouseholdInfo(ctx context.Context, id domain.ProfileID, update models.SponsorHouseholdUpdate) (*models.SponsorProfile, error)
	UploadSponsorDocument(ctx context.Context, id domain.ProfileID, docType, url string) (*models.SponsorProfile, error)
	SubmitSponsor(ctx context.Context, id domain.ProfileID) (*models.SponsorProfile, error)
	VerifySponsor(ctx context.Context, id domain.ProfileID, verifiedBy string) (*models.SponsorProfile, error)
	RejectSponsor(ctx context.Context, id domain.ProfileID, reason, rejectedBy string) (*models.SponsorProfile, error)
	ArchiveSponsor(ctx context.Context, id domain.ProfileID, reason string) (*models.SponsorProfile, error)
	RecordSponsorHire(ctx context.Context, id domain.ProfileID) (*models.SponsorProfile, error)
	UpdateSponsorRating(ctx context.Context, id domain.ProfileID, rating float64) (*models.SponsorProfile, error)
}

// Handler wires profile endpoints to the profile service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a profile handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts profile endpoints on the router. The router is expected
// to already carry the auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Route("/profiles", func(r chi.Router) {
		r.Get("/", h.HandleList)

		r.Route("/agencies", func(r chi.Router) {
			r.Post("/", h.HandleCreateAgency)
			r.Route("/{profileID}", func(r chi.Router) {
				r.Get("/", h.HandleGetAgency)
				r.Put("/basic-info", h.HandleUpdateAgencyBasicInfo)
				r.Put("/license", h.HandleUpdateAgencyLicense)
				r.Put("/business", h.HandleUpdateAgencyBusiness)
				r.Post("/documents", h.HandleUploadAgencyDocument)
				r.Post("/submit", h.HandleSubmitAgency)
				r.Post("/verify", h.HandleVerifyAgency)
				r.Post("/reject", h.HandleRejectAgency)
				r.Post("/archive", h.HandleArchiveAgency)
				r.Post("/maids", h.HandleAddAgencyMaid)
				r.Delete("/maids/{maidID}", h.HandleRemoveAgencyMaid)
				r.Post("/placements", h.HandleRecordAgencyPlacement)
				r.Post("/ratings", h.HandleUpdateAgencyRating)
			})
		})

		r.Route("/maids", func(r chi.Router) {
			r.Post("/", h.HandleCreateMaid)
			r.Route("/{profileID}", func(r chi.Router) {
				r.Get("/", h.HandleGetMaid)
				r.Put("/personal-info", h.HandleUpdateMaidPersonalInfo)
				r.Put("/work-profile", h.HandleUpdateMaidWorkProfile)
				r.Put("/availability", h.HandleSetMaidAvailability)
				r.Post("/documents", h.HandleUploadMaidDocument)
				r.Post("/submit", h.HandleSubmitMaid)
				r.Post("/verify", h.HandleVerifyMaid)
				r.Post("/reject", h.HandleRejectMaid)
				r.Post("/archive", h.HandleArchiveMaid)
				r.Post("/placements", h.HandleRecordMaidPlacement)
				r.Post("/ratings", h.HandleUpdateMaidRating)
			})
		})

		r.Route("/sponsors", func(r chi.Router) {
			r.Post("/", h.HandleCreateSponsor)
			r.Route("/{profileID}", func(r chi.Router) {
				r.Get("/", h.HandleGetSponsor)
				r.Put("/basic-info", h.HandleUpdateSponsorBasicInfo)
				r.Put("/household", h.HandleUpdateSponsorHousehold)
				r.Post("/documents", h.HandleUploadSponsorDocument)
				r.Post("/submit", h.HandleSubmitSponsor)
				r.Post("/verify", h.HandleVerifySponsor)
				r.Post("/reject", h.HandleRejectSponsor)
				r.Post("/archive", h.HandleArchiveSponsor)
				r.Post("/hires", h.HandleRecordSponsorHire)
				r.Post("/ratings", h.HandleUpdateSponsorRating)
			})
		})
	})
}

// HandleList handles GET /profiles.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}
	summaries, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		h.writeServiceError(r, w, "list profiles", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"profiles": summaries})
}

// --- agency ---

func (h *Handler) HandleCreateAgency(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}
	p, err := h.service.CreateAgency(r.Context(), userID)
	if err != nil {
		h.writeServiceError(r, w, "create agency profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p.ToRecord())
}

func (h *Handler) HandleGetAgency(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	p, err := h.service.GetAgency(r.Context(), id)
	if err != nil {
		h.writeServiceError(r, w, "get agency profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleUpdateAgencyBasicInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AgencyBasicInfoRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.UpdateAgencyBasicInfo(r.Context(), id, req.ToUpdate())
	if err != nil {
		h.writeServiceError(r, w, "update agency basic info", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleUpdateAgencyLicense(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AgencyLicenseRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.UpdateAgencyLicenseInfo(r.Context(), id, req.ToUpdate())
	if err != nil {
		h.writeServiceError(r, w, "update agency license", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleUpdateAgencyBusiness(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AgencyBusinessRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.UpdateAgencyBusinessInfo(r.Context(), id, req.ToUpdate())
	if err != nil {
		h.writeServiceError(r, w, "update agency business info", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleUploadAgencyDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[DocumentUploadRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.UploadAgencyDocument(r.Context(), id, req.DocumentType, req.URL)
	if err != nil {
		h.writeServiceError(r, w, "upload agency document", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleSubmitAgency(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	p, err := h.service.SubmitAgency(r.Context(), id)
	if err != nil {
		h.writeServiceError(r, w, "submit agency profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleVerifyAgency(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	p, err := h.service.VerifyAgency(r.Context(), id, auth.Actor(r.Context()))
	if err != nil {
		h.writeServiceError(r, w, "verify agency profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleRejectAgency(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RejectRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.RejectAgency(r.Context(), id, req.Reason, auth.Actor(r.Context()))
	if err != nil {
		h.writeServiceError(r, w, "reject agency profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleArchiveAgency(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ArchiveRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.ArchiveAgency(r.Context(), id, req.Reason)
	if err != nil {
		h.writeServiceError(r, w, "archive agency profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleAddAgencyMaid(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[MaidRefRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.AddAgencyMaid(r.Context(), id, req.MaidID)
	if err != nil {
		h.writeServiceError(r, w, "add agency maid", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleRemoveAgencyMaid(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	maidID := chi.URLParam(r, "maidID")
	p, err := h.service.RemoveAgencyMaid(r.Context(), id, maidID)
	if err != nil {
		h.writeServiceError(r, w, "remove agency maid", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleRecordAgencyPlacement(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	p, err := h.service.RecordAgencyPlacement(r.Context(), id)
	if err != nil {
		h.writeServiceError(r, w, "record agency placement", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleUpdateAgencyRating(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RatingRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.UpdateAgencyRating(r.Context(), id, *req.Rating)
	if err != nil {
		h.writeServiceError(r, w, "update agency rating", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

// --- maid ---

func (h *Handler) HandleCreateMaid(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}
	p, err := h.service.CreateMaid(r.Context(), userID)
	if err != nil {
		h.writeServiceError(r, w, "create maid profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p.ToRecord())
}

func (h *Handler) HandleGetMaid(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	p, err := h.service.GetMaid(r.Context(), id)
	if err != nil {
		h.writeServiceError(r, w, "get maid profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleUpdateMaidPersonalInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[MaidPersonalInfoRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.UpdateMaidPersonalInfo(r.Context(), id, req.ToUpdate())
	if err != nil {
		h.writeServiceError(r, w, "update maid personal info", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleUpdateMaidWorkProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[MaidWorkProfileRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.UpdateMaidWorkProfile(r.Context(), id, req.ToUpdate())
	if err != nil {
		h.writeServiceError(r, w, "update maid work profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleSetMaidAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AvailabilityRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.SetMaidAvailability(r.Context(), id, *req.Available)
	if err != nil {
		h.writeServiceError(r, w, "set maid availability", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleUploadMaidDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[DocumentUploadRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.UploadMaidDocument(r.Context(), id, req.DocumentType, req.URL)
	if err != nil {
		h.writeServiceError(r, w, "upload maid document", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleSubmitMaid(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	p, err := h.service.SubmitMaid(r.Context(), id)
	if err != nil {
		h.writeServiceError(r, w, "submit maid profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleVerifyMaid(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	p, err := h.service.VerifyMaid(r.Context(), id, auth.Actor(r.Context()))
	if err != nil {
		h.writeServiceError(r, w, "verify maid profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleRejectMaid(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RejectRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.RejectMaid(r.Context(), id, req.Reason, auth.Actor(r.Context()))
	if err != nil {
		h.writeServiceError(r, w, "reject maid profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleArchiveMaid(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ArchiveRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.ArchiveMaid(r.Context(), id, req.Reason)
	if err != nil {
		h.writeServiceError(r, w, "archive maid profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleRecordMaidPlacement(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	p, err := h.service.RecordMaidPlacement(r.Context(), id)
	if err != nil {
		h.writeServiceError(r, w, "record maid placement", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleUpdateMaidRating(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RatingRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.UpdateMaidRating(r.Context(), id, *req.Rating)
	if err != nil {
		h.writeServiceError(r, w, "update maid rating", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

// --- sponsor ---

func (h *Handler) HandleCreateSponsor(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}
	p, err := h.service.CreateSponsor(r.Context(), userID)
	if err != nil {
		h.writeServiceError(r, w, "create sponsor profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p.ToRecord())
}

func (h *Handler) HandleGetSponsor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	p, err := h.service.GetSponsor(r.Context(), id)
	if err != nil {
		h.writeServiceError(r, w, "get sponsor profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleUpdateSponsorBasicInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SponsorBasicInfoRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.UpdateSponsorBasicInfo(r.Context(), id, req.ToUpdate())
	if err != nil {
		h.writeServiceError(r, w, "update sponsor basic info", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleUpdateSponsorHousehold(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SponsorHouseholdRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.UpdateSponsorHouseholdInfo(r.Context(), id, req.ToUpdate())
	if err != nil {
		h.writeServiceError(r, w, "update sponsor household info", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleUploadSponsorDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[DocumentUploadRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.UploadSponsorDocument(r.Context(), id, req.DocumentType, req.URL)
	if err != nil {
		h.writeServiceError(r, w, "upload sponsor document", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleSubmitSponsor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	p, err := h.service.SubmitSponsor(r.Context(), id)
	if err != nil {
		h.writeServiceError(r, w, "submit sponsor profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleVerifySponsor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	p, err := h.service.VerifySponsor(r.Context(), id, auth.Actor(r.Context()))
	if err != nil {
		h.writeServiceError(r, w, "verify sponsor profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleRejectSponsor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RejectRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.RejectSponsor(r.Context(), id, req.Reason, auth.Actor(r.Context()))
	if err != nil {
		h.writeServiceError(r, w, "reject sponsor profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleArchiveSponsor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ArchiveRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.ArchiveSponsor(r.Context(), id, req.Reason)
	if err != nil {
		h.writeServiceError(r, w, "archive sponsor profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleRecordSponsorHire(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	p, err := h.service.RecordSponsorHire(r.Context(), id)
	if err != nil {
		h.writeServiceError(r, w, "record sponsor hire", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

func (h *Handler) HandleUpdateSponsorRating(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RatingRequest](w, r)
	if !ok {
		return
	}
	p, err := h.service.UpdateSponsorRating(r.Context(), id, *req.Rating)
	if err != nil {
		h.writeServiceError(r, w, "update sponsor rating", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToRecord())
}

// --- helpers ---

func (h *Handler) authedUser(w http.ResponseWriter, r *http.Request) (domain.UserID, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return "", false
	}
	return userID, true
}

func (h *Handler) profileID(w http.ResponseWriter, r *http.Request) (domain.ProfileID, bool) {
	id, err := domain.ParseProfileID(chi.URLParam(r, "profileID"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return id, true
}

func (h *Handler) writeServiceError(r *http.Request, w http.ResponseWriter, op string, err error) {
	code := dErrors.CodeOf(err)
	if code == dErrors.CodeInternal {
		h.logger.ErrorContext(r.Context(), op+" failed", "error", err)
	}
	httputil.WriteError(w, err)
}
