package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/audit"
	"github.com/senpai80085/sevasetu/internal/data/entity"
	"github.com/senpai80085/sevasetu/internal/data/repository"
	"github.com/senpai80085/sevasetu/internal/domain"
	"github.com/senpai80085/sevasetu/internal/dto/request"
	"github.com/senpai80085/sevasetu/internal/dto/response"
	"github.com/senpai80085/sevasetu/internal/trust"
	"github.com/senpai80085/sevasetu/pkg/utils"
)

type CaregiverService interface {
	UpsertCaregiver(ctx context.Context, actorID uuid.UUID, caregiverID string, req *request.UpsertCaregiverRequest) (*response.CaregiverResponse, error)
	GetCaregiver(ctx context.Context, caregiverID string) (*response.CaregiverResponse, error)
	RecordComplaint(ctx context.Context, actorID uuid.UUID, caregiverID string, req *request.CaregiverIncidentRequest) (*response.CaregiverResponse, error)
	RecordAnomaly(ctx context.Context, actorID uuid.UUID, caregiverID string, req *request.CaregiverIncidentRequest) (*response.CaregiverResponse, error)
}

type caregiverService struct {
	repo  *repository.Repository
	audit audit.Recorder
	trust trust.Scheduler
	now   func() time.Time
	log   *zap.Logger
}

func NewCaregiverService(repo *repository.Repository, collab Collaborators, log *zap.Logger) CaregiverService {
	now := collab.Now
	if now == nil {
		now = time.Now
	}
	return &caregiverService{
		repo:  repo,
		audit: collab.Audit,
		trust: collab.Trust,
		now:   now,
		log:   log.With(zap.String("service", "caregiver")),
	}
}

// UpsertCaregiver syncs the profile fields owned by the caregiver service.
// Reputation counters of an existing caregiver are kept.
func (s *caregiverService) UpsertCaregiver(ctx context.Context, actorID uuid.UUID, caregiverID string, req *request.UpsertCaregiverRequest) (*response.CaregiverResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Upsert caregiver validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	id, ok := utils.ParseUUID(caregiverID)
	if !ok {
		return nil, domain.ValidationError{Field: "id", Msg: "invalid caregiver ID"}
	}

	var (
		saved   *entity.Caregiver
		changed bool
	)
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Lock.LockCaregiver(ctx, id); err != nil {
			return err
		}

		existing, err := tx.Caregiver.FindByID(ctx, id)
		if err != nil {
			return err
		}
		changed = existing == nil || existing.Verified != req.Verified

		err = tx.Caregiver.Upsert(ctx, &entity.Caregiver{
			ID:         id,
			Name:       req.Name,
			Verified:   req.Verified,
			TrustScore: domain.ComputeTrustScore(domain.TrustInput{Verified: req.Verified}),
			UpdatedAt:  s.now().UTC(),
		})
		if err != nil {
			return err
		}

		saved, err = tx.Caregiver.FindByID(ctx, id)
		return err
	})
	if err != nil {
		s.log.Error("Failed to upsert caregiver", zap.Error(err), zap.String("caregiver_id", caregiverID))
		return nil, err
	}

	s.audit.Record(actorID, audit.ActionCaregiverUpdated, audit.EntityCaregiver, &id, "")
	if changed {
		s.trust.Schedule(id)
	}

	resp := response.CaregiverToResponse(saved)
	return &resp, nil
}

// GetCaregiver returns the cached profile with a breakdown of the trust
// score computed from current inputs.
func (s *caregiverService) GetCaregiver(ctx context.Context, caregiverID string) (*response.CaregiverResponse, error) {
	id, ok := utils.ParseUUID(caregiverID)
	if !ok {
		return nil, domain.ValidationError{Field: "id", Msg: "invalid caregiver ID"}
	}

	caregiver, err := s.repo.Caregiver.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get caregiver", zap.Error(err), zap.String("caregiver_id", caregiverID))
		return nil, err
	}
	if caregiver == nil {
		return nil, domain.NotFoundError{Resource: "caregiver", ID: caregiverID}
	}

	completed, err := s.repo.Booking.CountCompletedByCaregiver(ctx, id)
	if err != nil {
		return nil, err
	}

	breakdown := domain.ExplainTrust(domain.TrustInput{
		Verified:      caregiver.Verified,
		RatingAverage: caregiver.RatingAverage,
		CompletedJobs: completed,
		Complaints:    caregiver.Complaints,
		AnomalyFlags:  caregiver.AnomalyFlags,
	})

	resp := response.CaregiverToResponse(caregiver)
	resp.Breakdown = &breakdown
	return &resp, nil
}

func (s *caregiverService) RecordComplaint(ctx context.Context, actorID uuid.UUID, caregiverID string, req *request.CaregiverIncidentRequest) (*response.CaregiverResponse, error) {
	return s.recordIncident(ctx, actorID, caregiverID, req, audit.ActionComplaintRecorded,
		func(ctx context.Context, tx *repository.Repository, id uuid.UUID, at time.Time) error {
			return tx.Caregiver.IncrementComplaints(ctx, id, at)
		})
}

func (s *caregiverService) RecordAnomaly(ctx context.Context, actorID uuid.UUID, caregiverID string, req *request.CaregiverIncidentRequest) (*response.CaregiverResponse, error) {
	return s.recordIncident(ctx, actorID, caregiverID, req, audit.ActionAnomalyFlagged,
		func(ctx context.Context, tx *repository.Repository, id uuid.UUID, at time.Time) error {
			return tx.Caregiver.IncrementAnomalyFlags(ctx, id, at)
		})
}

func (s *caregiverService) recordIncident(ctx context.Context, actorID uuid.UUID, caregiverID string,
	req *request.CaregiverIncidentRequest, action string,
	increment func(ctx context.Context, tx *repository.Repository, id uuid.UUID, at time.Time) error) (*response.CaregiverResponse, error) {
	if req != nil {
		if errs := utils.ValidateStruct(req); len(errs) > 0 {
			return nil, validationError(errs)
		}
	}

	id, ok := utils.ParseUUID(caregiverID)
	if !ok {
		return nil, domain.ValidationError{Field: "id", Msg: "invalid caregiver ID"}
	}

	var saved *entity.Caregiver
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Lock.LockCaregiver(ctx, id); err != nil {
			return err
		}
		if err := increment(ctx, tx, id, s.now().UTC()); err != nil {
			return err
		}
		var err error
		saved, err = tx.Caregiver.FindByID(ctx, id)
		return err
	})
	if err != nil {
		s.log.Warn("Failed to record caregiver incident", zap.Error(err),
			zap.String("caregiver_id", caregiverID), zap.String("action", action))
		return nil, err
	}
	if saved == nil {
		return nil, domain.NotFoundError{Resource: "caregiver", ID: caregiverID}
	}

	detail := ""
	if req != nil {
		detail = req.Detail
	}
	s.log.Info("Caregiver incident recorded", zap.String("caregiver_id", caregiverID), zap.String("action", action))
	s.audit.Record(actorID, action, audit.EntityCaregiver, &id, detail)
	s.trust.Schedule(id)

	resp := response.CaregiverToResponse(saved)
	return &resp, nil
}
