package profile

import (
	"encoding/json"
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
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.SocialLink{}))

	router := mux.NewRouter()
	NewHandler(db).RegisterRoutes(router)
	return db, router
}

func TestGetProfile(t *testing.T) {
	db, router := setupTest(t)

	user := models.User{
		Name:       "Sonia Papi",
		Username:   "sonia.papi",
		Bio:        "Content creator",
		Followers:  15420,
		Following:  892,
		Location:   "London, UK",
		JoinedDate: time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC),
		Verified:   true,
		Email:      "hello@soniapapi.com",
		Phone:      "+44 20 1234 5678",
		Website:    "https://soniapapi.com",
	}
	require.NoError(t, db.Create(&user).Error)

	links := []models.SocialLink{
		{UserID: user.ID, Platform: "instagram", URL: "https://instagram.com/sonia.papi"},
		{UserID: user.ID, Platform: "twitter", URL: "https://twitter.com/sonia_papi"},
		{UserID: user.ID, Platform: "myspace", URL: "https://myspace.com/sonia"},
	}
	require.NoError(t, db.Create(&links).Error)

	req := httptest.NewRequest("GET", "/profile/sonia.papi", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response ProfileResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "Sonia Papi", response.Name)
	assert.Equal(t, "sonia.papi", response.Username)
	assert.Equal(t, 15420, response.Followers)
	assert.Equal(t, "2020-03-15", response.JoinedDate)
	assert.True(t, response.Verified)

	// The unrecognized platform row is dropped from the response.
	assert.Equal(t, map[string]string{
		"instagram": "https://instagram.com/sonia.papi",
		"twitter":   "https://twitter.com/sonia_papi",
	}, response.SocialLinks)
	assert.Equal(t, "hello@soniapapi.com", response.Contact.Email)
	assert.Equal(t, "https://soniapapi.com", response.Contact.Website)
}

func TestGetProfileNotFound(t *testing.T) {
	_, router := setupTest(t)

	req := httptest.NewRequest("GET", "/profile/nobody", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
