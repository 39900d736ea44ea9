package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/internal/audit"
	"github.com/senpai80085/sevasetu/internal/data/entity"
	"github.com/senpai80085/sevasetu/internal/data/repository"
	"github.com/senpai80085/sevasetu/internal/domain"
	"github.com/senpai80085/sevasetu/internal/dto/request"
	"github.com/senpai80085/sevasetu/internal/dto/response"
	"github.com/senpai80085/sevasetu/internal/events"
	"github.com/senpai80085/sevasetu/internal/ledger"
	"github.com/senpai80085/sevasetu/internal/payment"
	"github.com/senpai80085/sevasetu/internal/trust"
	"github.com/senpai80085/sevasetu/pkg/utils"
)

// matchCandidates bounds how many verified caregivers the fallback matcher
// considers.
const matchCandidates = 25

type BookingService interface {
	// Lifecycle
	RequestCare(ctx context.Context, actorID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	MatchCaregivers(ctx context.Context, actorID uuid.UUID, bookingID string, req *request.AssignCaregiverRequest) (*response.BookingResponse, error)
	ConfirmBooking(ctx context.Context, actorID uuid.UUID, bookingID string, req *request.AssignCaregiverRequest) (*response.BookingResponse, error)
	StartJob(ctx context.Context, actorID uuid.UUID, bookingID string) (*response.BookingResponse, error)
	EndJob(ctx context.Context, actorID uuid.UUID, bookingID string) (*response.BookingResponse, error)
	PauseJob(ctx context.Context, actorID uuid.UUID, bookingID string, req *request.ReasonRequest) (*response.BookingResponse, error)
	ResumeJob(ctx context.Context, actorID uuid.UUID, bookingID string) (*response.BookingResponse, error)
	SubmitRating(ctx context.Context, actorID uuid.UUID, bookingID string, req *request.SubmitRatingRequest) (*response.RatedBookingResponse, error)
	CancelBooking(ctx context.Context, actorID uuid.UUID, bookingID string, req *request.ReasonRequest) (*response.BookingResponse, error)

	// Queries
	GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	ListCivilianBookings(ctx context.Context, civilianID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	ListCaregiverBookings(ctx context.Context, caregiverID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo    *repository.Repository
	guard   AvailabilityGuard
	gateway payment.Gateway
	audit   audit.Recorder
	trust   trust.Scheduler
	events  events.Emitter
	ledger  ledger.Submitter
	now     func() time.Time

	hourlyRate int64
	currency   string
	log        *zap.Logger
}

func NewBookingService(repo *repository.Repository, collab Collaborators, cfg utils.PaymentConfig, log *zap.Logger) BookingService {
	now := collab.Now
	if now == nil {
		now = time.Now
	}
	return &bookingService{
		repo:       repo,
		gateway:    collab.Payment,
		audit:      collab.Audit,
		trust:      collab.Trust,
		events:     collab.Events,
		ledger:     collab.Ledger,
		now:        now,
		hourlyRate: cfg.HourlyRate,
		currency:   cfg.Currency,
		log:        log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) RequestCare(ctx context.Context, actorID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Request care validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	civilianID, ok := utils.ParseUUID(req.CivilianID)
	if !ok {
		return nil, domain.ValidationError{Field: "civilian_id", Msg: "must be a valid UUID"}
	}
	var caregiverID *uuid.UUID
	if req.CaregiverID != nil {
		id, ok := utils.ParseUUID(*req.CaregiverID)
		if !ok {
			return nil, domain.ValidationError{Field: "caregiver_id", Msg: "must be a valid UUID"}
		}
		caregiverID = &id
	}

	start, end := req.StartTime.UTC(), req.EndTime.UTC()
	if err := domain.ValidateWindow(start, end); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CivilianID:    civilianID,
		CaregiverID:   caregiverID,
		StartTime:     start,
		EndTime:       end,
		Status:        entity.BookingStatusPending,
		PaymentStatus: entity.PaymentStatusUnpaid,
	}

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Lock.LockCivilian(ctx, civilianID); err != nil {
			return err
		}

		active, err := tx.Booking.FindActiveByCivilian(ctx, civilianID)
		if err != nil {
			return err
		}
		if active != nil {
			return domain.ConcurrentBookingError{
				CivilianID:      civilianID,
				ActiveBookingID: active.ID,
				ActiveStatus:    active.Status,
			}
		}

		if caregiverID != nil {
			if err := s.requireCaregiver(ctx, tx, *caregiverID); err != nil {
				return err
			}
		}

		return tx.Booking.Create(ctx, booking)
	})
	if err != nil {
		s.log.Warn("Request care failed", zap.Error(err), zap.String("civilian_id", civilianID.String()))
		return nil, err
	}

	s.log.Info("Booking requested",
		zap.String("booking_id", booking.ID.String()),
		zap.String("civilian_id", civilianID.String()),
	)
	s.announce(actorID, audit.ActionBookingCreated, events.BookingCreated, booking, "")

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// MatchCaregivers moves a pending booking to matched. The caregiver comes
// from the request, then from the one named at intake, then from the
// rule-based fallback.
func (s *bookingService) MatchCaregivers(ctx context.Context, actorID uuid.UUID, bookingID string, req *request.AssignCaregiverRequest) (*response.BookingResponse, error) {
	preferred, err := s.parseAssignment(req)
	if err != nil {
		return nil, err
	}

	booking, err := s.transition(ctx, bookingID, func(tx *repository.Repository, b *entity.Booking) error {
		if err := domain.TransitionBooking(b, entity.BookingStatusMatched); err != nil {
			return err
		}

		chosen := preferred
		if chosen == nil {
			chosen = b.CaregiverID
		}
		if chosen != nil {
			if err := s.requireCaregiver(ctx, tx, *chosen); err != nil {
				return err
			}
		} else {
			picked, err := s.pickCaregiver(ctx, tx, b)
			if err != nil {
				return err
			}
			chosen = &picked
		}

		b.CaregiverID = chosen
		b.UpdatedAt = s.now().UTC()
		return tx.Booking.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.announce(actorID, audit.ActionBookingMatched, events.BookingMatched, booking,
		fmt.Sprintf("caregiver_id=%s", booking.CaregiverID))
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// pickCaregiver returns the highest-trust verified caregiver with no
// committed booking overlapping b.
func (s *bookingService) pickCaregiver(ctx context.Context, tx *repository.Repository, b *entity.Booking) (uuid.UUID, error) {
	candidates, err := tx.Caregiver.FindVerified(ctx, matchCandidates)
	if err != nil {
		return uuid.Nil, err
	}
	for _, c := range candidates {
		taken, err := s.guard.HasOverlap(ctx, tx.Booking, c.ID, b.StartTime, b.EndTime, b.ID)
		if err != nil {
			return uuid.Nil, err
		}
		if !taken {
			return c.ID, nil
		}
	}
	return uuid.Nil, domain.NotFoundError{Resource: "available caregiver"}
}

// ConfirmBooking claims the caregiver's calendar and reserves payment in one
// unit. A reservation whose booking write does not commit is refunded.
func (s *bookingService) ConfirmBooking(ctx context.Context, actorID uuid.UUID, bookingID string, req *request.AssignCaregiverRequest) (*response.BookingResponse, error) {
	override, err := s.parseAssignment(req)
	if err != nil {
		return nil, err
	}

	var reserved *entity.Booking
	booking, err := s.transition(ctx, bookingID, func(tx *repository.Repository, b *entity.Booking) error {
		if err := domain.TransitionBooking(b, entity.BookingStatusConfirmed); err != nil {
			return err
		}

		if override != nil {
			if err := s.requireCaregiver(ctx, tx, *override); err != nil {
				return err
			}
			b.CaregiverID = override
		}
		if b.CaregiverID == nil {
			return domain.ValidationError{Field: "caregiver_id", Msg: "booking has no matched caregiver"}
		}

		if err := s.guard.Claim(ctx, tx, *b.CaregiverID, b.StartTime, b.EndTime, b.ID); err != nil {
			return err
		}

		if err := domain.TransitionPayment(b, entity.PaymentStatusReserved); err != nil {
			return err
		}
		ref, err := s.gateway.Reserve(ctx, payment.Charge{
			BookingID:  b.ID,
			CivilianID: b.CivilianID,
			Amount:     payment.Quote(b.StartTime, b.EndTime, s.hourlyRate),
			Currency:   s.currency,
		})
		if err != nil {
			return domain.PaymentActionError{BookingID: b.ID, Action: "reserve", Err: err}
		}
		b.PaymentReference = &ref
		reserved = b

		b.UpdatedAt = s.now().UTC()
		return tx.Booking.Update(ctx, b)
	})
	if err != nil {
		if reserved != nil {
			s.compensate(ctx, reserved)
		}
		return nil, err
	}

	s.announce(actorID, audit.ActionBookingConfirmed, events.BookingConfirmed, booking,
		fmt.Sprintf("caregiver_id=%s", booking.CaregiverID))
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// StartJob captures the reserved payment. The booking row is written first
// so a failed capture rolls the whole step back.
func (s *bookingService) StartJob(ctx context.Context, actorID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.transition(ctx, bookingID, func(tx *repository.Repository, b *entity.Booking) error {
		if err := domain.TransitionBooking(b, entity.BookingStatusInProgress); err != nil {
			return err
		}
		if err := domain.TransitionPayment(b, entity.PaymentStatusPaid); err != nil {
			return err
		}
		if b.PaymentReference == nil {
			return domain.PaymentActionError{BookingID: b.ID, Action: "capture", Err: fmt.Errorf("no payment reference")}
		}

		now := s.now().UTC()
		b.StartedAt = &now
		b.UpdatedAt = now
		if err := tx.Booking.Update(ctx, b); err != nil {
			return err
		}

		if err := s.gateway.Capture(ctx, b.ID, *b.PaymentReference); err != nil {
			return domain.PaymentActionError{BookingID: b.ID, Action: "capture", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.announce(actorID, audit.ActionJobStarted, events.BookingStarted, booking, "")
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) EndJob(ctx context.Context, actorID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.transition(ctx, bookingID, func(tx *repository.Repository, b *entity.Booking) error {
		if err := domain.TransitionBooking(b, entity.BookingStatusCompleted); err != nil {
			return err
		}
		now := s.now().UTC()
		b.EndedAt = &now
		b.UpdatedAt = now
		return tx.Booking.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.announce(actorID, audit.ActionJobEnded, events.BookingCompleted, booking, "")
	// Completed-job count feeds the experience component.
	s.scheduleTrust(booking)
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) PauseJob(ctx context.Context, actorID uuid.UUID, bookingID string, req *request.ReasonRequest) (*response.BookingResponse, error) {
	reason, err := s.parseReason(req)
	if err != nil {
		return nil, err
	}

	booking, err := s.transition(ctx, bookingID, func(tx *repository.Repository, b *entity.Booking) error {
		if err := domain.TransitionBooking(b, entity.BookingStatusPaused); err != nil {
			return err
		}
		b.UpdatedAt = s.now().UTC()
		return tx.Booking.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.log.Warn("Job paused", zap.String("booking_id", booking.ID.String()), zap.String("reason", reason))
	s.announce(actorID, audit.ActionJobPaused, events.BookingPaused, booking, reason)
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// ResumeJob re-enters in_progress. A paused booking does not hold the
// caregiver's calendar, so the window is claimed again.
func (s *bookingService) ResumeJob(ctx context.Context, actorID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.transition(ctx, bookingID, func(tx *repository.Repository, b *entity.Booking) error {
		if err := domain.TransitionBooking(b, entity.BookingStatusInProgress); err != nil {
			return err
		}
		if b.CaregiverID != nil {
			if err := s.guard.Claim(ctx, tx, *b.CaregiverID, b.StartTime, b.EndTime, b.ID); err != nil {
				return err
			}
		}
		b.UpdatedAt = s.now().UTC()
		return tx.Booking.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.announce(actorID, audit.ActionJobResumed, events.BookingResumed, booking, "")
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// SubmitRating records the rating, folds it into the caregiver's running
// average and closes the booking.
func (s *bookingService) SubmitRating(ctx context.Context, actorID uuid.UUID, bookingID string, req *request.SubmitRatingRequest) (*response.RatedBookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit rating validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	var rating *entity.Rating
	booking, err := s.transition(ctx, bookingID, func(tx *repository.Repository, b *entity.Booking) error {
		if err := domain.TransitionBooking(b, entity.BookingStatusRated); err != nil {
			return err
		}
		if b.CaregiverID == nil {
			return domain.ValidationError{Field: "caregiver_id", Msg: "booking has no caregiver to rate"}
		}

		caregiver, err := tx.Caregiver.FindByIDForUpdate(ctx, *b.CaregiverID)
		if err != nil {
			return err
		}
		if caregiver == nil {
			return domain.NotFoundError{Resource: "caregiver", ID: b.CaregiverID.String()}
		}

		now := s.now().UTC()
		count := caregiver.RatingCount + 1
		average := (caregiver.RatingAverage*float64(caregiver.RatingCount) + req.Value) / float64(count)
		if err := tx.Caregiver.UpdateRating(ctx, caregiver.ID, average, count, now); err != nil {
			return err
		}

		rating = &entity.Rating{
			BaseSimple:   entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			BookingID:    b.ID,
			CaregiverID:  caregiver.ID,
			Value:        req.Value,
			ReviewText:   req.ReviewText,
			LedgerStatus: entity.LedgerStatusPending,
		}
		digest, err := ledger.Digest(ledger.PayloadOf(rating))
		if err != nil {
			return fmt.Errorf("digest rating: %w", err)
		}
		rating.LedgerDigest = &digest
		if err := tx.Rating.Create(ctx, rating); err != nil {
			return err
		}

		b.UpdatedAt = now
		if err := tx.Booking.Update(ctx, b); err != nil {
			return err
		}

		if err := domain.TransitionBooking(b, entity.BookingStatusClosed); err != nil {
			return err
		}
		return tx.Booking.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Rating submitted",
		zap.String("booking_id", booking.ID.String()),
		zap.String("rating_id", rating.ID.String()),
		zap.Float64("value", rating.Value),
	)

	s.audit.Record(actorID, audit.ActionRatingSubmitted, audit.EntityRating, &rating.ID,
		fmt.Sprintf("booking_id=%s value=%.1f", booking.ID, rating.Value))
	rated := *booking
	rated.Status = entity.BookingStatusRated
	s.events.Emit(events.BookingRated, &rated, actorID)
	s.announce(actorID, audit.ActionBookingClosed, events.BookingClosed, booking, "")

	s.scheduleTrust(booking)
	s.ledger.Submit(rating)

	return &response.RatedBookingResponse{
		Booking: response.BookingToResponse(booking),
		Rating:  response.RatingToResponse(rating),
	}, nil
}

// CancelBooking refunds a reserved payment. A captured payment stays paid;
// settling it is outside the engine.
func (s *bookingService) CancelBooking(ctx context.Context, actorID uuid.UUID, bookingID string, req *request.ReasonRequest) (*response.BookingResponse, error) {
	reason, err := s.parseReason(req)
	if err != nil {
		return nil, err
	}

	booking, err := s.transition(ctx, bookingID, func(tx *repository.Repository, b *entity.Booking) error {
		if err := domain.TransitionBooking(b, entity.BookingStatusCancelled); err != nil {
			return err
		}

		// Cancelling frees the caregiver's slot and the civilian's active
		// booking, so hold both until the refund outcome is known.
		if b.CaregiverID != nil {
			if err := tx.Lock.LockCaregiver(ctx, *b.CaregiverID); err != nil {
				return err
			}
		}
		if err := tx.Lock.LockCivilian(ctx, b.CivilianID); err != nil {
			return err
		}

		refund := b.PaymentStatus == entity.PaymentStatusReserved
		if refund {
			if err := domain.TransitionPayment(b, entity.PaymentStatusUnpaid); err != nil {
				return err
			}
		}

		b.UpdatedAt = s.now().UTC()
		if err := tx.Booking.Update(ctx, b); err != nil {
			return err
		}

		if refund && b.PaymentReference != nil {
			if err := s.gateway.Refund(ctx, b.ID, *b.PaymentReference); err != nil {
				return domain.PaymentActionError{BookingID: b.ID, Action: "refund", Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.announce(actorID, audit.ActionBookingCancelled, events.BookingCancelled, booking, reason)
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, ok := utils.ParseUUID(bookingID)
	if !ok {
		return nil, domain.ValidationError{Field: "id", Msg: "invalid booking ID"}
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, err
	}
	if booking == nil {
		return nil, domain.NotFoundError{Resource: "booking", ID: bookingID}
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListCivilianBookings(ctx context.Context, civilianID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	id, ok := utils.ParseUUID(civilianID)
	if !ok {
		return nil, domain.ValidationError{Field: "id", Msg: "invalid civilian ID"}
	}

	bookings, err := s.repo.Booking.FindByCivilianID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list civilian bookings", zap.Error(err), zap.String("civilian_id", civilianID))
		return nil, err
	}
	total, err := s.repo.Booking.CountByCivilianID(ctx, id)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(toBookingResponses(bookings), req.Page, req.Limit(), total), nil
}

func (s *bookingService) ListCaregiverBookings(ctx context.Context, caregiverID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	id, ok := utils.ParseUUID(caregiverID)
	if !ok {
		return nil, domain.ValidationError{Field: "id", Msg: "invalid caregiver ID"}
	}

	bookings, err := s.repo.Booking.FindByCaregiverID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list caregiver bookings", zap.Error(err), zap.String("caregiver_id", caregiverID))
		return nil, err
	}
	total, err := s.repo.Booking.CountByCaregiverID(ctx, id)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(toBookingResponses(bookings), req.Page, req.Limit(), total), nil
}

// transition loads the booking row locked for update and runs apply in the
// same transaction. apply owns the write. Locks are taken booking first,
// then caregiver, then civilian.
func (s *bookingService) transition(ctx context.Context, bookingID string,
	apply func(tx *repository.Repository, b *entity.Booking) error) (*entity.Booking, error) {
	id, ok := utils.ParseUUID(bookingID)
	if !ok {
		return nil, domain.ValidationError{Field: "id", Msg: "invalid booking ID"}
	}

	var booking *entity.Booking
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		b, err := tx.Booking.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.NotFoundError{Resource: "booking", ID: bookingID}
		}
		if err := apply(tx, b); err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		s.log.Warn("Booking transition failed", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, err
	}

	s.log.Info("Booking transitioned",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", booking.Status.String()),
		zap.String("payment_status", booking.PaymentStatus.String()),
	)
	return booking, nil
}

// compensate refunds a reservation whose booking write did not commit.
func (s *bookingService) compensate(ctx context.Context, b *entity.Booking) {
	if b.PaymentReference == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := s.gateway.Refund(ctx, b.ID, *b.PaymentReference); err != nil {
		s.log.Error("Failed to release orphaned payment reservation",
			zap.Error(err),
			zap.String("booking_id", b.ID.String()),
			zap.String("payment_reference", *b.PaymentReference),
		)
		return
	}
	s.log.Warn("Released payment reservation after failed confirm", zap.String("booking_id", b.ID.String()))
}

func (s *bookingService) announce(actorID uuid.UUID, action, eventType string, b *entity.Booking, detail string) {
	s.audit.Record(actorID, action, audit.EntityBooking, &b.ID, detail)
	s.events.Emit(eventType, b, actorID)
}

func (s *bookingService) scheduleTrust(b *entity.Booking) {
	if b.CaregiverID != nil {
		s.trust.Schedule(*b.CaregiverID)
	}
}

func (s *bookingService) requireCaregiver(ctx context.Context, tx *repository.Repository, id uuid.UUID) error {
	caregiver, err := tx.Caregiver.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if caregiver == nil {
		return domain.NotFoundError{Resource: "caregiver", ID: id.String()}
	}
	return nil
}

func (s *bookingService) parseAssignment(req *request.AssignCaregiverRequest) (*uuid.UUID, error) {
	if req == nil || req.CaregiverID == nil {
		return nil, nil
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	id, ok := utils.ParseUUID(*req.CaregiverID)
	if !ok {
		return nil, domain.ValidationError{Field: "caregiver_id", Msg: "must be a valid UUID"}
	}
	return &id, nil
}

func (s *bookingService) parseReason(req *request.ReasonRequest) (string, error) {
	if req == nil {
		return "", nil
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return "", validationError(errs)
	}
	return req.Reason, nil
}

func toBookingResponses(bookings []*entity.Booking) []response.BookingResponse {
	out := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, response.BookingToResponse(b))
	}
	return out
}
