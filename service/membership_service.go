package service

import (
	"context"
	"errors"
	"fmt"

	"officepool/events"
	"officepool/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type membershipService struct {
	uowFactory UnitOfWorkFactory
}

// NewMembershipService creates a new membership service
func NewMembershipService(uowFactory UnitOfWorkFactory) MembershipService {
	return &membershipService{
		uowFactory: uowFactory,
	}
}

// JoinPool adds userID to the pool whose code matches exactly.
//
// The pool row is locked for the duration of the transaction, so concurrent
// joiners of the same pool are serialised. The owner claim is additionally a
// conditional update and never overwrites an existing owner. A concurrent
// duplicate join by the same user fails on the participant unique constraint
// and is reported as AlreadyJoined.
func (s *membershipService) JoinPool(ctx context.Context, userID, code string) error {
	if code == "" {
		return ErrPoolCodeRequired
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pool, err := uow.PoolRepository().GetByCodeForUpdate(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to get pool by code: %w", err)
	}
	if pool == nil {
		return ErrPoolNotFound
	}

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	existing, err := uow.ParticipantRepository().GetByUserAndPool(ctx, userID, pool.ID)
	if err != nil {
		return fmt.Errorf("failed to check existing participant: %w", err)
	}
	if existing != nil {
		return ErrAlreadyParticipant
	}

	claimed := false
	if !pool.HasOwner() {
		claimed, err = uow.PoolRepository().ClaimOwnership(ctx, pool.ID, userID)
		if err != nil {
			return fmt.Errorf("failed to claim pool ownership: %w", err)
		}
		if !claimed {
			log.WithFields(log.Fields{
				"poolID": pool.ID,
				"userID": userID,
			}).Debug("Pool ownership already claimed by another user")
		}
	}

	participant := &models.Participant{
		ID:     uuid.NewString(),
		UserID: userID,
		PoolID: pool.ID,
	}
	if err := uow.ParticipantRepository().Create(ctx, participant); err != nil {
		if errors.Is(err, ErrDuplicateParticipant) {
			return ErrAlreadyParticipant
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}

	bus := uow.EventBus()
	if claimed {
		bus.Publish(events.PoolOwnershipClaimedEvent{
			PoolID:    pool.ID,
			PoolTitle: pool.Title,
			OwnerID:   userID,
			OwnerName: user.Name,
		})
	}
	bus.Publish(events.PoolJoinedEvent{
		PoolID:           pool.ID,
		PoolTitle:        pool.Title,
		PoolCode:         pool.Code,
		ParticipantID:    participant.ID,
		UserID:           userID,
		UserName:         user.Name,
		ClaimedOwnership: claimed,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"poolID":           pool.ID,
		"userID":           userID,
		"claimedOwnership": claimed,
	}).Info("User joined pool")

	return nil
}
