package engagement

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/soniapapi/profile-server/cmd/models"
	"github.com/soniapapi/profile-server/service/gallery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*gorm.DB, *mux.Router) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.GalleryItem{},
	))

	router := mux.NewRouter()
	NewEngagementHandler(db).RegisterRoutes(router)
	return db, router
}

func createFixtures(t *testing.T, db *gorm.DB) (models.Post, models.GalleryItem, models.Comment) {
	user := models.User{Name: "Sonia Papi", Username: "sonia.papi"}
	require.NoError(t, db.Create(&user).Error)

	post := models.Post{UserID: user.ID, Caption: "post", PostType: "post", Likes: 5, Views: 10}
	require.NoError(t, db.Create(&post).Error)

	item := models.GalleryItem{UserID: user.ID, Title: "item", ItemType: "image", Category: "Travel", Likes: 2}
	require.NoError(t, db.Create(&item).Error)

	comment := models.Comment{PostID: post.ID, UserID: user.ID, Content: "comment"}
	require.NoError(t, db.Create(&comment).Error)

	return post, item, comment
}

func do(router *mux.Router, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLikeIncrementThenDecrementRestores(t *testing.T) {
	db, router := setupTest(t)
	post, _, _ := createFixtures(t, db)

	rec := do(router, "POST", fmt.Sprintf("/engagement/post/%d/like", post.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, "DELETE", fmt.Sprintf("/engagement/post/%d/like", post.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Post
	require.NoError(t, db.First(&updated, post.ID).Error)
	assert.Equal(t, 5, updated.Likes)
}

func TestUnlikeClampsAtZero(t *testing.T) {
	db, router := setupTest(t)
	_, _, comment := createFixtures(t, db)

	// Comment starts at zero likes; repeated decrements must not go negative.
	for i := 0; i < 3; i++ {
		rec := do(router, "DELETE", fmt.Sprintf("/engagement/comment/%d/like", comment.ID))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var updated models.Comment
	require.NoError(t, db.First(&updated, comment.ID).Error)
	assert.Equal(t, 0, updated.Likes)
}

func TestLikeCommentAndGallery(t *testing.T) {
	db, router := setupTest(t)
	_, item, comment := createFixtures(t, db)

	rec := do(router, "POST", fmt.Sprintf("/engagement/gallery/%d/like", item.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, "POST", fmt.Sprintf("/engagement/comment/%d/like", comment.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	var updatedItem models.GalleryItem
	require.NoError(t, db.First(&updatedItem, item.ID).Error)
	assert.Equal(t, 3, updatedItem.Likes)

	var updatedComment models.Comment
	require.NoError(t, db.First(&updatedComment, comment.ID).Error)
	assert.Equal(t, 1, updatedComment.Likes)
}

func TestLikeUnknownEntityKind(t *testing.T) {
	_, router := setupTest(t)

	rec := do(router, "POST", "/engagement/user/1/like")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLikeMissingEntity(t *testing.T) {
	_, router := setupTest(t)

	rec := do(router, "POST", "/engagement/post/9999/like")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var response map[string]bool
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.False(t, response["success"])
}

func TestViewIncrement(t *testing.T) {
	db, router := setupTest(t)
	post, item, _ := createFixtures(t, db)

	rec := do(router, "POST", fmt.Sprintf("/engagement/post/%d/view", post.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, "POST", fmt.Sprintf("/engagement/gallery/%d/view", item.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	var updatedPost models.Post
	require.NoError(t, db.First(&updatedPost, post.ID).Error)
	assert.Equal(t, 11, updatedPost.Views)

	var updatedItem models.GalleryItem
	require.NoError(t, db.First(&updatedItem, item.ID).Error)
	assert.Equal(t, 1, updatedItem.Views)
}

func TestViewRejectsComments(t *testing.T) {
	db, router := setupTest(t)
	_, _, comment := createFixtures(t, db)

	rec := do(router, "POST", fmt.Sprintf("/engagement/comment/%d/view", comment.ID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// Full round trip of a gallery item through create, likes and delete.
func TestGalleryItemLifecycle(t *testing.T) {
	db, router := setupTest(t)
	user := models.User{Name: "Sonia Papi", Username: "sonia.papi"}
	require.NoError(t, db.Create(&user).Error)

	galleryRouter := mux.NewRouter()
	gallery.NewGalleryHandler(db).RegisterRoutes(galleryRouter)

	body := fmt.Sprintf(`{"user_id":%d,"title":"Test","item_type":"image","category":"Travel","description":"x"}`, user.ID)
	createReq := httptest.NewRequest("POST", "/gallery", strings.NewReader(body))
	createReq.Header.Set("Content-Type", "application/json")
	createRec := httptest.NewRecorder()
	galleryRouter.ServeHTTP(createRec, createReq)
	require.Equal(t, http.StatusCreated, createRec.Code)

	var created gallery.ItemResponse
	require.NoError(t, json.NewDecoder(createRec.Body).Decode(&created))
	require.NotZero(t, created.ID)
	assert.Equal(t, 0, created.Likes)
	assert.Equal(t, 0, created.Views)

	for i := 0; i < 3; i++ {
		rec := do(router, "POST", fmt.Sprintf("/engagement/gallery/%d/like", created.ID))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var item models.GalleryItem
	require.NoError(t, db.First(&item, created.ID).Error)
	assert.Equal(t, 3, item.Likes)

	delReq := httptest.NewRequest("DELETE", fmt.Sprintf("/gallery/%d", created.ID), nil)
	delRec := httptest.NewRecorder()
	galleryRouter.ServeHTTP(delRec, delReq)
	require.Equal(t, http.StatusOK, delRec.Code)

	getReq := httptest.NewRequest("GET", fmt.Sprintf("/gallery/%d", created.ID), nil)
	getRec := httptest.NewRecorder()
	galleryRouter.ServeHTTP(getRec, getReq)
	assert.Equal(t, http.StatusNotFound, getRec.Code)
}
