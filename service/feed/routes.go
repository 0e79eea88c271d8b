package feed

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"github.com/soniapapi/profile-server/cmd/models"
	"github.com/soniapapi/profile-server/cmd/utils"
	"gorm.io/gorm"
)

type PostHandler struct {
	db *gorm.DB
}

func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{db: db}
}

func (h *PostHandler) RegisterRoutes(router *mux.Router) {
	// Post routes
	router.HandleFunc("/posts", h.CreatePost).Methods("POST")
	router.HandleFunc("/posts", h.GetPosts).Methods("GET")
	router.HandleFunc("/posts/{id}", h.GetPost).Methods("GET")
	router.HandleFunc("/posts/{id}", h.UpdatePost).Methods("PUT")
	router.HandleFunc("/posts/{id}", h.DeletePost).Methods("DELETE")

	// Comment routes
	router.HandleFunc("/posts/{id}/comments", h.AddComment).Methods("POST")
	router.HandleFunc("/posts/{id}/comments", h.GetComments).Methods("GET")
}

// PostResponse is a post as the presentation layer sees it: the stored row
// plus a comment count recomputed from the comments table on every read.
type PostResponse struct {
	ID        uint      `json:"id"`
	Caption   string    `json:"caption"`
	PostType  string    `json:"post_type"`
	MediaType string    `json:"media_type,omitempty"`
	Likes     int       `json:"likes"`
	Comments  int64     `json:"comments"`
	Shares    int       `json:"shares"`
	Views     int       `json:"views"`
	Hashtags  []string  `json:"hashtags,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	TimeAgo   string    `json:"time_ago"`
}

func (h *PostHandler) toResponse(post models.Post) (PostResponse, error) {
	var commentCount int64
	if err := h.db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount).Error; err != nil {
		return PostResponse{}, err
	}
	return PostResponse{
		ID:        post.ID,
		Caption:   post.Caption,
		PostType:  post.PostType,
		MediaType: post.MediaType,
		Likes:     post.Likes,
		Comments:  commentCount,
		Shares:    post.Shares,
		Views:     post.Views,
		Hashtags:  post.Hashtags,
		Timestamp: post.CreatedAt,
		TimeAgo:   utils.TimeAgo(post.CreatedAt),
	}, nil
}

// CreatePost creates a new post with zero counters
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    uint     `json:"user_id"`
		Caption   string   `json:"caption"`
		PostType  string   `json:"post_type"`
		MediaType string   `json:"media_type"`
		Hashtags  []string `json:"hashtags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Caption == "" {
		http.Error(w, "Caption is required", http.StatusBadRequest)
		return
	}
	if !models.ValidPostType(req.PostType) {
		http.Error(w, "Invalid post type", http.StatusBadRequest)
		return
	}
	if !models.ValidMediaType(req.MediaType) {
		http.Error(w, "Invalid media type", http.StatusBadRequest)
		return
	}

	post := models.Post{
		UserID:    req.UserID,
		Caption:   req.Caption,
		PostType:  req.PostType,
		MediaType: req.MediaType,
		Hashtags:  pq.StringArray(req.Hashtags),
	}

	tx := h.db.Begin()
	if err := tx.Create(&post).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error creating post", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error saving post", http.StatusInternalServerError)
		return
	}

	response, err := h.toResponse(post)
	if err != nil {
		http.Error(w, "Error retrieving post", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// GetPosts retrieves posts newest-first, optionally filtered by owner
func (h *PostHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	query := h.db.Model(&models.Post{}).Order("created_at DESC")

	if userID := r.URL.Query().Get("user_id"); userID != "" {
		id, err := strconv.ParseUint(userID, 10, 64)
		if err != nil {
			http.Error(w, "Invalid user ID", http.StatusBadRequest)
			return
		}
		query = query.Where("user_id = ?", id)
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		query = query.Limit(n)
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		http.Error(w, "Error retrieving posts", http.StatusInternalServerError)
		return
	}

	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		response, err := h.toResponse(post)
		if err != nil {
			http.Error(w, "Error retrieving posts", http.StatusInternalServerError)
			return
		}
		responses = append(responses, response)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

// GetPost retrieves a single post with its comment count
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Post not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving post", http.StatusInternalServerError)
		return
	}

	response, err := h.toResponse(post)
	if err != nil {
		http.Error(w, "Error retrieving post", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// UpdatePost applies a partial update: only fields present in the body are
// changed, absent fields are left untouched.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var updateData struct {
		Caption   *string   `json:"caption"`
		PostType  *string   `json:"post_type"`
		MediaType *string   `json:"media_type"`
		Hashtags  *[]string `json:"hashtags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if updateData.Caption != nil && *updateData.Caption == "" {
		http.Error(w, "Caption cannot be empty", http.StatusBadRequest)
		return
	}
	if updateData.PostType != nil && !models.ValidPostType(*updateData.PostType) {
		http.Error(w, "Invalid post type", http.StatusBadRequest)
		return
	}
	if updateData.MediaType != nil && !models.ValidMediaType(*updateData.MediaType) {
		http.Error(w, "Invalid media type", http.StatusBadRequest)
		return
	}

	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Post not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving post", http.StatusInternalServerError)
		return
	}

	if updateData.Caption != nil {
		post.Caption = *updateData.Caption
	}
	if updateData.PostType != nil {
		post.PostType = *updateData.PostType
	}
	if updateData.MediaType != nil {
		post.MediaType = *updateData.MediaType
	}
	if updateData.Hashtags != nil {
		post.Hashtags = pq.StringArray(*updateData.Hashtags)
	}

	tx := h.db.Begin()
	if err := tx.Save(&post).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error updating post", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error updating post", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"updated": true})
}

// DeletePost deletes a post and its comments in one transaction
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]bool{"deleted": false})
			return
		}
		http.Error(w, "Error retrieving post", http.StatusInternalServerError)
		return
	}

	tx := h.db.Begin()

	if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error deleting comments", http.StatusInternalServerError)
		return
	}

	if err := tx.Delete(&post).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error deleting post", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error deleting post", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"deleted": true})
}

// CommentResponse resolves each comment against its author; a missing
// author row degrades to placeholder names instead of failing the call.
type CommentResponse struct {
	ID           uint      `json:"id"`
	Content      string    `json:"content"`
	UserName     string    `json:"user_name"`
	UserUsername string    `json:"user_username"`
	Timestamp    time.Time `json:"timestamp"`
	TimeAgo      string    `json:"time_ago"`
	Likes        int       `json:"likes"`
}

// GetComments retrieves comments for a post, newest first
func (h *PostHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var comments []models.Comment
	if err := h.db.Where("post_id = ?", postID).Order("created_at DESC").Find(&comments).Error; err != nil {
		http.Error(w, "Error retrieving comments", http.StatusInternalServerError)
		return
	}

	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		userName := "Unknown"
		userUsername := "unknown"

		var user models.User
		if err := h.db.First(&user, comment.UserID).Error; err == nil {
			userName = user.Name
			userUsername = user.Username
		}

		responses = append(responses, CommentResponse{
			ID:           comment.ID,
			Content:      comment.Content,
			UserName:     userName,
			UserUsername: userUsername,
			Timestamp:    comment.CreatedAt,
			TimeAgo:      utils.TimeAgo(comment.CreatedAt),
			Likes:        comment.Likes,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

// AddComment adds a comment to a post
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var req struct {
		UserID  uint   `json:"user_id"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Content == "" {
		http.Error(w, "Content is required", http.StatusBadRequest)
		return
	}

	// The comment must land on an existing post; checking up front keeps
	// the failure a 404 rather than an FK violation.
	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Post not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving post", http.StatusInternalServerError)
		return
	}

	comment := models.Comment{
		PostID:  uint(postID),
		UserID:  req.UserID,
		Content: req.Content,
	}

	tx := h.db.Begin()
	if err := tx.Create(&comment).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error creating comment", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error saving comment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(comment)
}
