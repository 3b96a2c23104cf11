package repository_test

import (
	"context"
	"testing"

	"taskflow/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestChecklistRepository_ListFlatByTask_FiltersGroupedItems(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	checklistRepo := repository.NewChecklistRepository(gormDB)

	taskID := uuid.New()
	itemID := uuid.New()

	// Only rows with a NULL group_id may reach the status derivation;
	// the filter has to live in the query itself.
	mock.ExpectQuery(`SELECT .* FROM "checklists" WHERE task_id = .* AND group_id IS NULL ORDER BY position`).
		WithArgs(taskID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "task_id", "title", "is_completed", "status", "position"}).
			AddRow(itemID.String(), taskID.String(), "Flat item", false, "todo", 0))

	// Act
	items, err := checklistRepo.ListFlatByTask(context.Background(), taskID)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, itemID, items[0].ID)
	assert.Nil(t, items[0].GroupID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChecklistRepository_UpdateStatus_SyncsLegacyFlag(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	checklistRepo := repository.NewChecklistRepository(gormDB)

	itemID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "checklists" SET`).
		WithArgs(true, "completed", itemID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := checklistRepo.UpdateStatus(context.Background(), itemID, "completed")

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
