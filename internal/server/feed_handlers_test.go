package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"waypoint/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetActivityFeed_RequiresAuth(t *testing.T) {
	_, app := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/activity-feed", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetActivityFeed_ReturnsFollowedActivities(t *testing.T) {
	s, app := newTestServer(t)

	viewer, token := createTestUser(t, s, "feedviewer")
	author, _ := createTestUser(t, s, "feedauthor")
	stranger, _ := createTestUser(t, s, "feedstranger")
	require.NoError(t, s.db.Create(&models.Follow{FollowerID: viewer.ID, FolloweeID: author.ID}).Error)

	createTestActivity(t, s, author.ID)
	createTestActivity(t, s, stranger.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/activity-feed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Activities []struct {
			User struct {
				ID uint `json:"id"`
			} `json:"user"`
		} `json:"activities"`
		HasNext bool `json:"has_next"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Activities, 1)
	assert.Equal(t, author.ID, body.Activities[0].User.ID)
	assert.False(t, body.HasNext)
}

func TestGetActivityFeed_RejectsBadSort(t *testing.T) {
	s, app := newTestServer(t)
	_, token := createTestUser(t, s, "sortviewer")

	req := httptest.NewRequest(http.MethodGet, "/api/activity-feed?sort=spicy", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAppendActivity(t *testing.T) {
	s, app := newTestServer(t)

	owner, token := createTestUser(t, s, "appender")
	trip := createTestTrip(t, s, owner.ID, "Coast loop")

	post := func(payload map[string]any) *http.Response {
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/api/activities", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	t.Run("Success", func(t *testing.T) {
		resp := post(map[string]any{"type": "trip_published", "ref_id": trip.ID})
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var activity models.Activity
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&activity))
		assert.Equal(t, owner.ID, activity.UserID)
		assert.Equal(t, trip.ID, activity.RefID)
	})

	t.Run("Unknown Type", func(t *testing.T) {
		resp := post(map[string]any{"type": "teleported", "ref_id": trip.ID})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing Reference", func(t *testing.T) {
		resp := post(map[string]any{"type": "trip_published", "ref_id": 9999})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{"type": "trip_published", "ref_id": trip.ID})
		req := httptest.NewRequest(http.MethodPost, "/api/activities", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGetActivity(t *testing.T) {
	s, app := newTestServer(t)

	owner, _ := createTestUser(t, s, "detailowner")
	activity := createTestActivity(t, s, owner.ID)

	t.Run("Found Without Auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/activities/%d", activity.ID), nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var view struct {
			ID            uint `json:"id"`
			SourceDeleted bool `json:"source_deleted"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
		assert.Equal(t, activity.ID, view.ID)
		// The seeded activity references a trip that was never created.
		assert.True(t, view.SourceDeleted)
	})

	t.Run("Not Found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/activities/9999", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/activities/abc", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
