package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow/internal/model"
	"taskflow/internal/policy"
	"taskflow/internal/repository"
)

// TeamService manages teams and their membership. Member lists follow the
// same full-replace-on-update pattern as task children.
type TeamService struct {
	db    *gorm.DB
	teams *repository.TeamRepository
	users *repository.UserRepository
}

func NewTeamService(db *gorm.DB, teams *repository.TeamRepository, users *repository.UserRepository) *TeamService {
	return &TeamService{db: db, teams: teams, users: users}
}

type CreateTeamInput struct {
	Name        string
	Description string
	MemberIDs   []uuid.UUID
}

type UpdateTeamInput struct {
	Name        *string
	Description *string
	MemberIDs   []uuid.UUID // nil = leave membership untouched
}

func (s *TeamService) resolveActor(ctx context.Context, actorID uuid.UUID) (*model.User, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, fmt.Errorf("%w: actor", ErrNotFound)
	}
	return actor, nil
}

func (s *TeamService) Create(ctx context.Context, actorID uuid.UUID, input CreateTeamInput) (*model.Team, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	team := &model.Team{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		CreatedBy:   actor.ID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bound := s.teams.WithTx(tx)
		if err := bound.Create(ctx, team); err != nil {
			return err
		}
		for _, memberID := range input.MemberIDs {
			if err := bound.AddMember(ctx, team.ID, memberID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.teams.GetByID(ctx, team.ID)
}

func (s *TeamService) Get(ctx context.Context, teamID uuid.UUID) (*model.Team, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return nil, fmt.Errorf("%w: team", ErrNotFound)
		}
		return nil, err
	}
	return team, nil
}

func (s *TeamService) List(ctx context.Context) ([]model.Team, error) {
	return s.teams.List(ctx)
}

func (s *TeamService) Update(ctx context.Context, actorID, teamID uuid.UUID, input UpdateTeamInput) (*model.Team, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return nil, fmt.Errorf("%w: team", ErrNotFound)
		}
		return nil, err
	}
	if !policy.CanManageTeam(actor, team) {
		return nil, fmt.Errorf("%w: team", ErrForbidden)
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrValidation)
		}
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bound := s.teams.WithTx(tx)
		if len(fields) > 0 {
			if err := bound.UpdateFields(ctx, teamID, fields); err != nil {
				return err
			}
		}
		if input.MemberIDs != nil {
			if err := bound.ReplaceMembers(ctx, teamID, input.MemberIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.teams.GetByID(ctx, teamID)
}

func (s *TeamService) Delete(ctx context.Context, actorID, teamID uuid.UUID) error {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return err
	}

	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return fmt.Errorf("%w: team", ErrNotFound)
		}
		return err
	}
	if !policy.CanManageTeam(actor, team) {
		return fmt.Errorf("%w: team", ErrForbidden)
	}

	return s.teams.Delete(ctx, teamID)
}
