package service

import (
	"context"
	"fmt"
	"strings"

	"officepool/models"
)

type userService struct {
	uowFactory UnitOfWorkFactory
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory) UserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

// EnsureUser stores a verified identity if it is not known yet and returns the stored user
func (s *userService) EnsureUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user == nil || user.ID == "" {
		return nil, NewInvalidInputError("User id is required.")
	}
	if strings.TrimSpace(user.Name) == "" {
		user.Name = user.ID
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	stored, err := uow.UserRepository().CreateIfNotExists(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to sync user: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return stored, nil
}

// GetUser returns the user with the given id
func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
