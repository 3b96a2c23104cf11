package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"taskflow/internal/model"
	"taskflow/internal/policy"
	"taskflow/internal/repository"
)

// UserService covers the admin user-management surface. Registration and
// login live in the user handler, as in any credential flow.
type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

type UpdateUserInput struct {
	Name *string
	Role *string
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrValidation)
		}
		user.Name = *input.Name
	}
	if input.Role != nil {
		if *input.Role != model.RoleUser && *input.Role != model.RoleAdmin {
			return nil, fmt.Errorf("%w: invalid role %q", ErrValidation, *input.Role)
		}
		user.Role = *input.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user. Self-deletion is rejected for every actor,
// admins included.
func (s *UserService) Delete(ctx context.Context, actor *model.User, targetID uuid.UUID) error {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return fmt.Errorf("%w: user", ErrNotFound)
	}

	if !policy.CanDeleteUser(actor, targetID) {
		return fmt.Errorf("%w: cannot delete this user", ErrForbidden)
	}

	return s.users.Delete(ctx, targetID)
}
