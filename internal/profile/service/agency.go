package service

import (
	"context"
	"encoding/json"
	"time"

	"worklink/internal/profile/models"
	"worklink/internal/profile/store"
	"worklink/pkg/domain"
	dErrors "worklink/pkg/domain-errors"
)

// CreateAgency mints a draft agency profile for userID.
func (s *Service) CreateAgency(ctx context.Context, userID domain.UserID) (*models.AgencyProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.CreateAgency")
	defer span.End()

	p, err := models.NewAgencyProfile(domain.NewProfileID(), userID, s.now())
	if err != nil {
		return nil, err
	}
	row, err := agencyRow(p)
	if err != nil {
		return nil, err
	}
	if err := s.createRow(ctx, row, p.PullEvents()); err != nil {
		return nil, err
	}
	s.logger.Info("agency profile created", "profile_id", p.ID().String(), "user_id", userID.String())
	return p, nil
}

// GetAgency loads an agency aggregate, cache-first.
func (s *Service) GetAgency(ctx context.Context, id domain.ProfileID) (*models.AgencyProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.GetAgency")
	defer span.End()
	defer s.observeGet(time.Now())

	row, err := s.loadRow(ctx, id, store.KindAgency)
	if err != nil {
		return nil, err
	}
	return agencyFromRow(row)
}

// mutateAgency runs one load-mutate-save cycle under the per-profile
// transaction boundary. fn sees a freshly reconstructed aggregate; any
// error from fn aborts the cycle with nothing persisted.
func (s *Service) mutateAgency(ctx context.Context, id domain.ProfileID, fn func(p *models.AgencyProfile) error) (*models.AgencyProfile, error) {
	defer s.observeMutate(time.Now())

	var result *models.AgencyProfile
	err := s.tx.RunInTx(ctx, id.String(), func(ctx context.Context) error {
		row, err := s.storeRow(ctx, id, store.KindAgency)
		if err != nil {
			return err
		}
		p, err := agencyFromRow(row)
		if err != nil {
			return err
		}
		loadedAt := p.UpdatedAt()

		if err := fn(p); err != nil {
			return err
		}

		newRow, err := agencyRow(p)
		if err != nil {
			return err
		}
		if err := s.saveRow(ctx, newRow, loadedAt, p.PullEvents()); err != nil {
			return err
		}
		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateAgencyBasicInfo merges contact fields into the profile.
func (s *Service) UpdateAgencyBasicInfo(ctx context.Context, id domain.ProfileID, update models.AgencyBasicInfoUpdate) (*models.AgencyProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.UpdateAgencyBasicInfo")
	defer span.End()
	return s.mutateAgency(ctx, id, func(p *models.AgencyProfile) error {
		return p.UpdateBasicInfo(update, s.now())
	})
}

// UpdateAgencyLicenseInfo merges license and registration fields.
func (s *Service) UpdateAgencyLicenseInfo(ctx context.Context, id domain.ProfileID, update models.AgencyLicenseUpdate) (*models.AgencyProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.UpdateAgencyLicenseInfo")
	defer span.End()
	return s.mutateAgency(ctx, id, func(p *models.AgencyProfile) error {
		return p.UpdateLicenseInfo(update, s.now())
	})
}

// UpdateAgencyBusinessInfo merges business metadata.
func (s *Service) UpdateAgencyBusinessInfo(ctx context.Context, id domain.ProfileID, update models.AgencyBusinessUpdate) (*models.AgencyProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.UpdateAgencyBusinessInfo")
	defer span.End()
	return s.mutateAgency(ctx, id, func(p *models.AgencyProfile) error {
		return p.UpdateBusinessInfo(update, s.now())
	})
}

// UploadAgencyDocument assigns an uploaded blob URL to a document slot.
func (s *Service) UploadAgencyDocument(ctx context.Context, id domain.ProfileID, docType, url string) (*models.AgencyProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.UploadAgencyDocument")
	defer span.End()
	p, err := s.mutateAgency(ctx, id, func(p *models.AgencyProfile) error {
		return p.UploadDocument(docType, url, s.now())
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.DocumentsUploaded.WithLabelValues(string(store.KindAgency)).Inc()
	}
	return p, nil
}

// SubmitAgency moves a complete draft into review.
func (s *Service) SubmitAgency(ctx context.Context, id domain.ProfileID) (*models.AgencyProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.SubmitAgency")
	defer span.End()
	p, err := s.mutateAgency(ctx, id, func(p *models.AgencyProfile) error {
		return p.SubmitForVerification(s.now())
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ProfilesSubmitted.WithLabelValues(string(store.KindAgency)).Inc()
	}
	return p, nil
}

// VerifyAgency approves an under-review profile.
func (s *Service) VerifyAgency(ctx context.Context, id domain.ProfileID, verifiedBy string) (*models.AgencyProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.VerifyAgency")
	defer span.End()
	p, err := s.mutateAgency(ctx, id, func(p *models.AgencyProfile) error {
		return p.Verify(verifiedBy, s.now())
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ProfilesVerified.WithLabelValues(string(store.KindAgency)).Inc()
	}
	s.logger.Info("agency profile verified", "profile_id", id.String(), "verified_by", verifiedBy)
	return p, nil
}

// RejectAgency declines an under-review profile.
func (s *Service) RejectAgency(ctx context.Context, id domain.ProfileID, reason, rejectedBy string) (*models.AgencyProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.RejectAgency")
	defer span.End()
	p, err := s.mutateAgency(ctx, id, func(p *models.AgencyProfile) error {
		return p.Reject(reason, rejectedBy, s.now())
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ProfilesRejected.WithLabelValues(string(store.KindAgency)).Inc()
	}
	return p, nil
}

// ArchiveAgency retires the profile.
func (s *Service) ArchiveAgency(ctx context.Context, id domain.ProfileID, reason string) (*models.AgencyProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.ArchiveAgency")
	defer span.End()
	p, err := s.mutateAgency(ctx, id, func(p *models.AgencyProfile) error {
		return p.Archive(reason, s.now())
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ProfilesArchived.WithLabelValues(string(store.KindAgency)).Inc()
	}
	return p, nil
}

// AddAgencyMaid increments the agency's active-maid count.
func (s *Service) AddAgencyMaid(ctx context.Context, id domain.ProfileID, maidID string) (*models.AgencyProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.AddAgencyMaid")
	defer span.End()
	if maidID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "maid_id cannot be empty")
	}
	return s.mutateAgency(ctx, id, func(p *models.AgencyProfile) error {
		p.AddMaid(maidID, s.now())
		return nil
	})
}

// RemoveAgencyMaid decrements the agency's active-maid count.
func (s *Service) RemoveAgencyMaid(ctx context.Context, id domain.ProfileID, maidID string) (*models.AgencyProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.RemoveAgencyMaid")
	defer span.End()
	if maidID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "maid_id cannot be empty")
	}
	return s.mutateAgency(ctx, id, func(p *models.AgencyProfile) error {
		p.RemoveMaid(maidID, s.now())
		return nil
	})
}

// RecordAgencyPlacement increments the placement counter.
func (s *Service) RecordAgencyPlacement(ctx context.Context, id domain.ProfileID) (*models.AgencyProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.RecordAgencyPlacement")
	defer span.End()
	return s.mutateAgency(ctx, id, func(p *models.AgencyProfile) error {
		p.RecordPlacement(s.now())
		return nil
	})
}

// UpdateAgencyRating folds one review score into the running average.
func (s *Service) UpdateAgencyRating(ctx context.Context, id domain.ProfileID, rating float64) (*models.AgencyProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.UpdateAgencyRating")
	defer span.End()
	return s.mutateAgency(ctx, id, func(p *models.AgencyProfile) error {
		return p.UpdateRating(rating, s.now())
	})
}

func agencyRow(p *models.AgencyProfile) (store.Row, error) {
	rec := p.ToRecord()
	payload, err := marshalPayload(rec)
	if err != nil {
		return store.Row{}, err
	}
	return store.Row{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Kind:      store.KindAgency,
		Status:    rec.Status,
		Payload:   payload,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

func agencyFromRow(row store.Row) (*models.AgencyProfile, error) {
	var rec models.AgencyRecord
	if err := json.Unmarshal(row.Payload, &rec); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to decode agency profile")
	}
	return models.AgencyFromRecord(rec)
}
