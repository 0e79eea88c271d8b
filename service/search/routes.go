package search

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/soniapapi/profile-server/cmd/models"
	"gorm.io/gorm"
)

const (
	ScopeAll     = "all"
	ScopePosts   = "posts"
	ScopeGallery = "gallery"
)

type SearchHandler struct {
	db *gorm.DB
}

func NewSearchHandler(db *gorm.DB) *SearchHandler {
	return &SearchHandler{db: db}
}

func (h *SearchHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/search", h.Search).Methods("GET")
}

type PostResult struct {
	ID        uint      `json:"id"`
	Caption   string    `json:"caption"`
	PostType  string    `json:"post_type"`
	Timestamp time.Time `json:"timestamp"`
}

type GalleryResult struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	ItemType string `json:"item_type"`
}

type SearchResponse struct {
	Posts   []PostResult    `json:"posts"`
	Gallery []GalleryResult `json:"gallery"`
}

// Search runs a case-insensitive substring match over post captions and
// gallery titles/descriptions, newest-first within each kind. No ranking,
// no tokenization.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "Query is required", http.StatusBadRequest)
		return
	}

	scope := r.URL.Query().Get("type")
	if scope == "" {
		scope = ScopeAll
	}
	if scope != ScopeAll && scope != ScopePosts && scope != ScopeGallery {
		http.Error(w, "Invalid search type", http.StatusBadRequest)
		return
	}

	// LOWER + LIKE rather than ILIKE so the same query runs on every
	// dialect GORM connects to.
	pattern := "%" + strings.ToLower(query) + "%"

	response := SearchResponse{
		Posts:   []PostResult{},
		Gallery: []GalleryResult{},
	}

	if scope == ScopeAll || scope == ScopePosts {
		var posts []models.Post
		if err := h.db.Where("LOWER(caption) LIKE ?", pattern).
			Order("created_at DESC").Find(&posts).Error; err != nil {
			http.Error(w, "Error searching posts", http.StatusInternalServerError)
			return
		}
		for _, post := range posts {
			response.Posts = append(response.Posts, PostResult{
				ID:        post.ID,
				Caption:   post.Caption,
				PostType:  post.PostType,
				Timestamp: post.CreatedAt,
			})
		}
	}

	if scope == ScopeAll || scope == ScopeGallery {
		var items []models.GalleryItem
		if err := h.db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
			Order("upload_date DESC").Find(&items).Error; err != nil {
			http.Error(w, "Error searching gallery", http.StatusInternalServerError)
			return
		}
		for _, item := range items {
			response.Gallery = append(response.Gallery, GalleryResult{
				ID:       item.ID,
				Title:    item.Title,
				Category: item.Category,
				ItemType: item.ItemType,
			})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
