package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// An absent child-collection key must stay distinguishable from an
// explicit empty array: absent leaves the collection untouched, empty
// replaces it with nothing.
func TestUpdateTaskRequest_AbsentVsEmptyCollections(t *testing.T) {
	var absent UpdateTaskRequest
	err := json.Unmarshal([]byte(`{"title": "New title"}`), &absent)
	assert.NoError(t, err)
	assert.Nil(t, absent.AssignedUserIDs)
	assert.Nil(t, absent.Checklists)
	assert.Nil(t, absent.Attachments)

	var empty UpdateTaskRequest
	err = json.Unmarshal([]byte(`{"assignedUserIds": [], "checklists": [], "attachments": []}`), &empty)
	assert.NoError(t, err)
	assert.NotNil(t, empty.AssignedUserIDs)
	assert.Empty(t, empty.AssignedUserIDs)
	assert.NotNil(t, empty.Checklists)
	assert.Empty(t, empty.Checklists)
	assert.NotNil(t, empty.Attachments)
	assert.Empty(t, empty.Attachments)
}

// The nil-vs-empty distinction must survive the request-to-input mapping.
func TestParseUserIDs_PreservesPresence(t *testing.T) {
	ids, ok := parseUserIDs(nil)
	assert.True(t, ok)
	assert.Nil(t, ids)

	ids, ok = parseUserIDs([]string{})
	assert.True(t, ok)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)

	_, ok = parseUserIDs([]string{"not-a-uuid"})
	assert.False(t, ok)
}

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err      error
		wantCode int
	}{
		{fmt.Errorf("%w: title is required", service.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: task", service.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("%w: task", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: email taken", service.ErrConflict), http.StatusConflict},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		resp := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(resp)

		respondServiceError(c, tt.err)

		assert.Equal(t, tt.wantCode, resp.Code)
		assert.Contains(t, resp.Body.String(), "error")
	}
}
