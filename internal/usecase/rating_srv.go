package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/audit"
	"github.com/senpai80085/sevasetu/internal/data/entity"
	"github.com/senpai80085/sevasetu/internal/data/repository"
	"github.com/senpai80085/sevasetu/internal/domain"
	"github.com/senpai80085/sevasetu/internal/dto/request"
	"github.com/senpai80085/sevasetu/internal/dto/response"
	"github.com/senpai80085/sevasetu/internal/ledger"
	"github.com/senpai80085/sevasetu/pkg/utils"
)

type RatingService interface {
	// ReportLedgerStatus handles the anchoring service's HTTP callback.
	ReportLedgerStatus(ctx context.Context, actorID uuid.UUID, ratingID string, req *request.UpdateLedgerStatusRequest) (*response.RatingResponse, error)
	// UpdateLedgerStatus applies a result from the message bus.
	UpdateLedgerStatus(ctx context.Context, ratingID uuid.UUID, status entity.LedgerStatus, txHash *string) (*entity.Rating, error)
}

type ratingService struct {
	repo  *repository.Repository
	audit audit.Recorder
	log   *zap.Logger
}

func NewRatingService(repo *repository.Repository, collab Collaborators, log *zap.Logger) RatingService {
	return &ratingService{
		repo:  repo,
		audit: collab.Audit,
		log:   log.With(zap.String("service", "rating")),
	}
}

func (s *ratingService) ReportLedgerStatus(ctx context.Context, actorID uuid.UUID, ratingID string, req *request.UpdateLedgerStatusRequest) (*response.RatingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Ledger status validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	id, ok := utils.ParseUUID(ratingID)
	if !ok {
		return nil, domain.ValidationError{Field: "id", Msg: "invalid rating ID"}
	}

	rating, err := s.apply(ctx, id, entity.LedgerStatus(req.Status), req.TxHash)
	if err != nil {
		return nil, err
	}

	s.audit.Record(actorID, audit.ActionLedgerUpdated, audit.EntityRating, &rating.ID, string(rating.LedgerStatus))
	resp := response.RatingToResponse(rating)
	return &resp, nil
}

func (s *ratingService) UpdateLedgerStatus(ctx context.Context, ratingID uuid.UUID, status entity.LedgerStatus, txHash *string) (*entity.Rating, error) {
	rating, err := s.apply(ctx, ratingID, status, txHash)
	if err != nil {
		return nil, err
	}
	s.audit.Record(uuid.Nil, audit.ActionLedgerUpdated, audit.EntityRating, &rating.ID, string(rating.LedgerStatus))
	return rating, nil
}

// apply moves the rating's ledger status. Repeating the current status is a
// no-op so redelivered results are harmless.
func (s *ratingService) apply(ctx context.Context, ratingID uuid.UUID, status entity.LedgerStatus, txHash *string) (*entity.Rating, error) {
	if err := ledger.ValidateStatus(status); err != nil {
		return nil, domain.ValidationError{Field: "status", Msg: err.Error()}
	}

	var rating *entity.Rating
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		found, err := tx.Rating.FindByID(ctx, ratingID)
		if err != nil {
			return err
		}
		if found == nil {
			return domain.NotFoundError{Resource: "rating", ID: ratingID.String()}
		}
		rating = found

		if found.LedgerStatus == status {
			return nil
		}
		if !ledger.CanTransition(found.LedgerStatus, status) {
			return domain.ValidationError{
				Field: "status",
				Msg:   fmt.Sprintf("cannot move ledger status from '%s' to '%s'", found.LedgerStatus, status),
			}
		}

		found.LedgerStatus = status
		if txHash != nil {
			found.LedgerTxHash = txHash
		}
		return tx.Rating.UpdateLedger(ctx, found)
	})
	if err != nil {
		s.log.Warn("Failed to update ledger status", zap.Error(err), zap.String("rating_id", ratingID.String()))
		return nil, err
	}

	s.log.Info("Ledger status updated",
		zap.String("rating_id", ratingID.String()),
		zap.String("ledger_status", string(rating.LedgerStatus)),
	)
	return rating, nil
}
