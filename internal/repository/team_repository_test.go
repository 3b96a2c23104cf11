package repository_test

import (
	"context"
	"testing"

	"taskflow/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTeamRepository_AddMember(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	teamRepo := repository.NewTeamRepository(gormDB)

	teamID := uuid.New()
	userID := uuid.New()

	mock.ExpectExec(`INSERT INTO team_members`).
		WithArgs(teamID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Act
	err := teamRepo.AddMember(context.Background(), teamID, userID)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_AddMember_DuplicateIsNoOp(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	teamRepo := repository.NewTeamRepository(gormDB)

	teamID := uuid.New()
	userID := uuid.New()

	// ON CONFLICT DO NOTHING: the second insert affects zero rows but
	// reports no error.
	mock.ExpectExec(`INSERT INTO team_members`).
		WithArgs(teamID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO team_members`).
		WithArgs(teamID, userID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Act
	first := teamRepo.AddMember(context.Background(), teamID, userID)
	second := teamRepo.AddMember(context.Background(), teamID, userID)

	// Assert
	assert.NoError(t, first)
	assert.NoError(t, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_ReplaceMembers(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	teamRepo := repository.NewTeamRepository(gormDB)

	teamID := uuid.New()
	memberA := uuid.New()
	memberB := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "team_members"`).
		WithArgs(teamID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO team_members`).
		WithArgs(teamID, memberA).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO team_members`).
		WithArgs(teamID, memberB).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := teamRepo.ReplaceMembers(context.Background(), teamID, []uuid.UUID{memberA, memberB})

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_ReplaceMembers_Empty(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	teamRepo := repository.NewTeamRepository(gormDB)

	teamID := uuid.New()

	// An explicit empty set deletes every membership row and inserts none.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "team_members"`).
		WithArgs(teamID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	// Act
	err := teamRepo.ReplaceMembers(context.Background(), teamID, []uuid.UUID{})

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
