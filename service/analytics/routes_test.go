package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/soniapapi/profile-server/cmd/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*gorm.DB, *mux.Router) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Analytics{}))

	router := mux.NewRouter()
	NewAnalyticsHandler(db).RegisterRoutes(router)
	return db, router
}

func createTestUser(t *testing.T, db *gorm.DB) models.User {
	user := models.User{Name: "Sonia Papi", Username: "sonia.papi"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestTrackEvent(t *testing.T) {
	db, router := setupTest(t)
	user := createTestUser(t, db)

	body, _ := json.Marshal(map[string]interface{}{
		"user_id":    user.ID,
		"event_type": "profile_view",
		"event_data": "tab=gallery",
	})
	req := httptest.NewRequest("POST", "/analytics/events", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var events []models.Analytics
	require.NoError(t, db.Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, "profile_view", events[0].EventType)
	assert.Equal(t, "tab=gallery", events[0].EventData)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestTrackEventRequiresType(t *testing.T) {
	db, router := setupTest(t)
	user := createTestUser(t, db)

	body, _ := json.Marshal(map[string]interface{}{"user_id": user.ID})
	req := httptest.NewRequest("POST", "/analytics/events", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSummaryCountsByType(t *testing.T) {
	db, router := setupTest(t)
	user := createTestUser(t, db)

	now := time.Now()
	events := []models.Analytics{
		{UserID: user.ID, EventType: "profile_view", Timestamp: now.Add(-1 * time.Hour)},
		{UserID: user.ID, EventType: "profile_view", Timestamp: now.Add(-2 * time.Hour)},
		{UserID: user.ID, EventType: "post_like", Timestamp: now.Add(-3 * time.Hour)},
	}
	require.NoError(t, db.Create(&events).Error)

	// A different user's events never leak into the summary.
	other := models.User{Name: "Other", Username: "other"}
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, db.Create(&models.Analytics{
		UserID: other.ID, EventType: "profile_view", Timestamp: now.Add(-1 * time.Hour),
	}).Error)

	req := httptest.NewRequest("GET", fmt.Sprintf("/analytics/%d/summary?days=7", user.ID), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary SummaryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	assert.Equal(t, int64(3), summary.TotalEvents)
	assert.Equal(t, int64(2), summary.EventsByType["profile_view"])
	assert.Equal(t, int64(1), summary.EventsByType["post_like"])
}

func TestGetSummaryWindowBoundary(t *testing.T) {
	db, router := setupTest(t)
	user := createTestUser(t, db)

	now := time.Now()
	events := []models.Analytics{
		// Safely inside the 7-day window.
		{UserID: user.ID, EventType: "inside", Timestamp: now.AddDate(0, 0, -7).Add(time.Minute)},
		// Just outside it.
		{UserID: user.ID, EventType: "outside", Timestamp: now.AddDate(0, 0, -7).Add(-time.Minute)},
	}
	require.NoError(t, db.Create(&events).Error)

	req := httptest.NewRequest("GET", fmt.Sprintf("/analytics/%d/summary?days=7", user.ID), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary SummaryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	assert.Equal(t, int64(1), summary.TotalEvents)
	assert.Equal(t, int64(1), summary.EventsByType["inside"])
	assert.NotContains(t, summary.EventsByType, "outside")
}

func TestGetSummaryInvalidDays(t *testing.T) {
	db, router := setupTest(t)
	user := createTestUser(t, db)

	req := httptest.NewRequest("GET", fmt.Sprintf("/analytics/%d/summary?days=zero", user.ID), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
