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

// CreateMaid mints a draft candidate profile for userID.
func (s *Service) CreateMaid(ctx context.Context, userID domain.UserID) (*models.MaidProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.CreateMaid")
	defer span.End()

	p, err := models.NewMaidProfile(domain.NewProfileID(), userID, s.now())
	if err != nil {
		return nil, err
	}
	row, err := maidRow(p)
	if err != nil {
		return nil, err
	}
	if err := s.createRow(ctx, row, p.PullEvents()); err != nil {
		return nil, err
	}
	s.logger.Info("maid profile created", "profile_id", p.ID().String(), "user_id", userID.String())
	return p, nil
}

// GetMaid loads a candidate aggregate, cache-first.
func (s *Service) GetMaid(ctx context.Context, id domain.ProfileID) (*models.MaidProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.GetMaid")
	defer span.End()
	defer s.observeGet(time.Now())

	row, err := s.loadRow(ctx, id, store.KindMaid)
	if err != nil {
		return nil, err
	}
	return maidFromRow(row)
}

func (s *Service) mutateMaid(ctx context.Context, id domain.ProfileID, fn func(p *models.MaidProfile) error) (*models.MaidProfile, error) {
	defer s.observeMutate(time.Now())

	var result *models.MaidProfile
	err := s.tx.RunInTx(ctx, id.String(), func(ctx context.Context) error {
		row, err := s.storeRow(ctx, id, store.KindMaid)
		if err != nil {
			return err
		}
		p, err := maidFromRow(row)
		if err != nil {
			return err
		}
		loadedAt := p.UpdatedAt()

		if err := fn(p); err != nil {
			return err
		}

		newRow, err := maidRow(p)
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

// UpdateMaidPersonalInfo merges identity and passport fields.
func (s *Service) UpdateMaidPersonalInfo(ctx context.Context, id domain.ProfileID, update models.MaidPersonalInfoUpdate) (*models.MaidProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.UpdateMaidPersonalInfo")
	defer span.End()
	return s.mutateMaid(ctx, id, func(p *models.MaidProfile) error {
		return p.UpdatePersonalInfo(update, s.now())
	})
}

// UpdateMaidWorkProfile merges employability fields.
func (s *Service) UpdateMaidWorkProfile(ctx context.Context, id domain.ProfileID, update models.MaidWorkProfileUpdate) (*models.MaidProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.UpdateMaidWorkProfile")
	defer span.End()
	return s.mutateMaid(ctx, id, func(p *models.MaidProfile) error {
		return p.UpdateWorkProfile(update, s.now())
	})
}

// SetMaidAvailability flips the bookable flag.
func (s *Service) SetMaidAvailability(ctx context.Context, id domain.ProfileID, available bool) (*models.MaidProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.SetMaidAvailability")
	defer span.End()
	return s.mutateMaid(ctx, id, func(p *models.MaidProfile) error {
		p.SetAvailability(available, s.now())
		return nil
	})
}

// UploadMaidDocument assigns an uploaded blob URL to a document slot.
func (s *Service) UploadMaidDocument(ctx context.Context, id domain.ProfileID, docType, url string) (*models.MaidProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.UploadMaidDocument")
	defer span.End()
	p, err := s.mutateMaid(ctx, id, func(p *models.MaidProfile) error {
		return p.UploadDocument(docType, url, s.now())
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.DocumentsUploaded.WithLabelValues(string(store.KindMaid)).Inc()
	}
	return p, nil
}

// SubmitMaid moves a complete draft into review.
func (s *Service) SubmitMaid(ctx context.Context, id domain.ProfileID) (*models.MaidProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.SubmitMaid")
	defer span.End()
	p, err := s.mutateMaid(ctx, id, func(p *models.MaidProfile) error {
		return p.SubmitForVerification(s.now())
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ProfilesSubmitted.WithLabelValues(string(store.KindMaid)).Inc()
	}
	return p, nil
}

// VerifyMaid approves an under-review profile.
func (s *Service) VerifyMaid(ctx context.Context, id domain.ProfileID, verifiedBy string) (*models.MaidProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.VerifyMaid")
	defer span.End()
	p, err := s.mutateMaid(ctx, id, func(p *models.MaidProfile) error {
		return p.Verify(verifiedBy, s.now())
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ProfilesVerified.WithLabelValues(string(store.KindMaid)).Inc()
	}
	s.logger.Info("maid profile verified", "profile_id", id.String(), "verified_by", verifiedBy)
	return p, nil
}

// RejectMaid declines an under-review profile.
func (s *Service) RejectMaid(ctx context.Context, id domain.ProfileID, reason, rejectedBy string) (*models.MaidProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.RejectMaid")
	defer span.End()
	p, err := s.mutateMaid(ctx, id, func(p *models.MaidProfile) error {
		return p.Reject(reason, rejectedBy, s.now())
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ProfilesRejected.WithLabelValues(string(store.KindMaid)).Inc()
	}
	return p, nil
}

// ArchiveMaid retires the profile.
func (s *Service) ArchiveMaid(ctx context.Context, id domain.ProfileID, reason string) (*models.MaidProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.ArchiveMaid")
	defer span.End()
	p, err := s.mutateMaid(ctx, id, func(p *models.MaidProfile) error {
		return p.Archive(reason, s.now())
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ProfilesArchived.WithLabelValues(string(store.KindMaid)).Inc()
	}
	return p, nil
}

// RecordMaidPlacement increments the completed-contract counter.
func (s *Service) RecordMaidPlacement(ctx context.Context, id domain.ProfileID) (*models.MaidProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.RecordMaidPlacement")
	defer span.End()
	return s.mutateMaid(ctx, id, func(p *models.MaidProfile) error {
		p.RecordPlacement(s.now())
		return nil
	})
}

// UpdateMaidRating folds one review score into the running average.
func (s *Service) UpdateMaidRating(ctx context.Context, id domain.ProfileID, rating float64) (*models.MaidProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.UpdateMaidRating")
	defer span.End()
	return s.mutateMaid(ctx, id, func(p *models.MaidProfile) error {
		return p.UpdateRating(rating, s.now())
	})
}

func maidRow(p *models.MaidProfile) (store.Row, error) {
	rec := p.ToRecord()
	payload, err := marshalPayload(rec)
	if err != nil {
		return store.Row{}, err
	}
	return store.Row{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Kind:      store.KindMaid,
		Status:    rec.Status,
		Payload:   payload,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

func maidFromRow(row store.Row) (*models.MaidProfile, error) {
	var rec models.MaidRecord
	if err := json.Unmarshal(row.Payload, &rec); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to decode maid profile")
	}
	return models.MaidFromRecord(rec)
}
