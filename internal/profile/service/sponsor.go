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

// CreateSponsor mints a draft sponsor profile for userID.
func (s *Service) CreateSponsor(ctx context.Context, userID domain.UserID) (*models.SponsorProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.CreateSponsor")
	defer span.End()

	p, err := models.NewSponsorProfile(domain.NewProfileID(), userID, s.now())
	if err != nil {
		return nil, err
	}
	row, err := sponsorRow(p)
	if err != nil {
		return nil, err
	}
	if err := s.createRow(ctx, row, p.PullEvents()); err != nil {
		return nil, err
	}
	s.logger.Info("sponsor profile created", "profile_id", p.ID().String(), "user_id", userID.String())
	return p, nil
}

// GetSponsor loads a sponsor aggregate, cache-first.
func (s *Service) GetSponsor(ctx context.Context, id domain.ProfileID) (*models.SponsorProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.GetSponsor")
	defer span.End()
	defer s.observeGet(time.Now())

	row, err := s.loadRow(ctx, id, store.KindSponsor)
	if err != nil {
		return nil, err
	}
	return sponsorFromRow(row)
}

func (s *Service) mutateSponsor(ctx context.Context, id domain.ProfileID, fn func(p *models.SponsorProfile) error) (*models.SponsorProfile, error) {
	defer s.observeMutate(time.Now())

	var result *models.SponsorProfile
	err := s.tx.RunInTx(ctx, id.String(), func(ctx context.Context) error {
		row, err := s.storeRow(ctx, id, store.KindSponsor)
		if err != nil {
			return err
		}
		p, err := sponsorFromRow(row)
		if err != nil {
			return err
		}
		loadedAt := p.UpdatedAt()

		if err := fn(p); err != nil {
			return err
		}

		newRow, err := sponsorRow(p)
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

// UpdateSponsorBasicInfo merges contact fields.
func (s *Service) UpdateSponsorBasicInfo(ctx context.Context, id domain.ProfileID, update models.SponsorBasicInfoUpdate) (*models.SponsorProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.UpdateSponsorBasicInfo")
	defer span.End()
	return s.mutateSponsor(ctx, id, func(p *models.SponsorProfile) error {
		return p.UpdateBasicInfo(update, s.now())
	})
}

// UpdateSponsorHouseholdInfo merges household and budget fields.
func (s *Service) UpdateSponsorHouseholdInfo(ctx context.Context, id domain.ProfileID, update models.SponsorHouseholdUpdate) (*models.SponsorProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.UpdateSponsorHouseholdInfo")
	defer span.End()
	return s.mutateSponsor(ctx, id, func(p *models.SponsorProfile) error {
		return p.UpdateHouseholdInfo(update, s.now())
	})
}

// UploadSponsorDocument assigns an uploaded blob URL to a document slot.
func (s *Service) UploadSponsorDocument(ctx context.Context, id domain.ProfileID, docType, url string) (*models.SponsorProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.UploadSponsorDocument")
	defer span.End()
	p, err := s.mutateSponsor(ctx, id, func(p *models.SponsorProfile) error {
		return p.UploadDocument(docType, url, s.now())
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.DocumentsUploaded.WithLabelValues(string(store.KindSponsor)).Inc()
	}
	return p, nil
}

// SubmitSponsor moves a complete draft into review.
func (s *Service) SubmitSponsor(ctx context.Context, id domain.ProfileID) (*models.SponsorProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.SubmitSponsor")
	defer span.End()
	p, err := s.mutateSponsor(ctx, id, func(p *models.SponsorProfile) error {
		return p.SubmitForVerification(s.now())
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ProfilesSubmitted.WithLabelValues(string(store.KindSponsor)).Inc()
	}
	return p, nil
}

// VerifySponsor approves an under-review profile.
func (s *Service) VerifySponsor(ctx context.Context, id domain.ProfileID, verifiedBy string) (*models.SponsorProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.VerifySponsor")
	defer span.End()
	p, err := s.mutateSponsor(ctx, id, func(p *models.SponsorProfile) error {
		return p.Verify(verifiedBy, s.now())
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ProfilesVerified.WithLabelValues(string(store.KindSponsor)).Inc()
	}
	s.logger.Info("sponsor profile verified", "profile_id", id.String(), "verified_by", verifiedBy)
	return p, nil
}

// RejectSponsor declines an under-review profile.
func (s *Service) RejectSponsor(ctx context.Context, id domain.ProfileID, reason, rejectedBy string) (*models.SponsorProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.RejectSponsor")
	defer span.End()
	p, err := s.mutateSponsor(ctx, id, func(p *models.SponsorProfile) error {
		return p.Reject(reason, rejectedBy, s.now())
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ProfilesRejected.WithLabelValues(string(store.KindSponsor)).Inc()
	}
	return p, nil
}

// ArchiveSponsor retires the profile.
func (s *Service) ArchiveSponsor(ctx context.Context, id domain.ProfileID, reason string) (*models.SponsorProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.ArchiveSponsor")
	defer span.End()
	p, err := s.mutateSponsor(ctx, id, func(p *models.SponsorProfile) error {
		return p.Archive(reason, s.now())
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ProfilesArchived.WithLabelValues(string(store.KindSponsor)).Inc()
	}
	return p, nil
}

// RecordSponsorHire increments the hire counter.
func (s *Service) RecordSponsorHire(ctx context.Context, id domain.ProfileID) (*models.SponsorProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.RecordSponsorHire")
	defer span.End()
	return s.mutateSponsor(ctx, id, func(p *models.SponsorProfile) error {
		p.RecordHire(s.now())
		return nil
	})
}

// UpdateSponsorRating folds one review score into the running average.
func (s *Service) UpdateSponsorRating(ctx context.Context, id domain.ProfileID, rating float64) (*models.SponsorProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.UpdateSponsorRating")
	defer span.End()
	return s.mutateSponsor(ctx, id, func(p *models.SponsorProfile) error {
		return p.UpdateRating(rating, s.now())
	})
}

func sponsorRow(p *models.SponsorProfile) (store.Row, error) {
	rec := p.ToRecord()
	payload, err := marshalPayload(rec)
	if err != nil {
		return store.Row{}, err
	}
	return store.Row{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Kind:      store.KindSponsor,
		Status:    rec.Status,
		Payload:   payload,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

func sponsorFromRow(row store.Row) (*models.SponsorProfile, error) {
	var rec models.SponsorRecord
	if err := json.Unmarshal(row.Payload, &rec); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to decode sponsor profile")
	}
	return models.SponsorFromRecord(rec)
}
