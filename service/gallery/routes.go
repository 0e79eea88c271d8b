package gallery

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/soniapapi/profile-server/cmd/models"
	"github.com/soniapapi/profile-server/cmd/utils"
	"gorm.io/gorm"
)

type GalleryHandler struct {
	db *gorm.DB
}

func NewGalleryHandler(db *gorm.DB) *GalleryHandler {
	return &GalleryHandler{db: db}
}

func (h *GalleryHandler) RegisterRoutes(router *mux.Router) {
	fileServer := http.FileServer(http.Dir(utils.MediaPath))
	router.PathPrefix("/media/").Handler(http.StripPrefix("/media/", fileServer))

	router.HandleFunc("/gallery", h.CreateItem).Methods("POST")
	router.HandleFunc("/gallery", h.GetItems).Methods("GET")
	router.HandleFunc("/gallery/{id}", h.GetItem).Methods("GET")
	router.HandleFunc("/gallery/{id}", h.UpdateItem).Methods("PUT")
	router.HandleFunc("/gallery/{id}", h.DeleteItem).Methods("DELETE")
}

type ItemResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	ItemType    string `json:"item_type"`
	Category    string `json:"category"`
	Description string `json:"description"`
	MediaURL    string `json:"media_url,omitempty"`
	Likes       int    `json:"likes"`
	Views       int    `json:"views"`
	UploadDate  string `json:"upload_date"`
}

func toResponse(item models.GalleryItem) ItemResponse {
	uploadDate := ""
	if !item.UploadDate.IsZero() {
		uploadDate = item.UploadDate.Format("2006-01-02")
	}
	return ItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		ItemType:    item.ItemType,
		Category:    item.Category,
		Description: item.Description,
		MediaURL:    item.MediaURL,
		Likes:       item.Likes,
		Views:       item.Views,
		UploadDate:  uploadDate,
	}
}

// CreateItem creates a gallery item. JSON bodies carry metadata only;
// multipart bodies may additionally include a "media" file.
func (h *GalleryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	item := models.GalleryItem{UploadDate: time.Now()}
	var mediaURL string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(utils.MaxMediaSize); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}

		userID, err := strconv.ParseUint(r.FormValue("user_id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid user ID", http.StatusBadRequest)
			return
		}
		item.UserID = uint(userID)
		item.Title = r.FormValue("title")
		item.ItemType = r.FormValue("item_type")
		item.Category = r.FormValue("category")
		item.Description = r.FormValue("description")

		if file, header, err := r.FormFile("media"); err == nil {
			defer file.Close()
			mediaURL, err = utils.SaveMedia(file, header)
			if err != nil {
				http.Error(w, fmt.Sprintf("Error saving media: %v", err), http.StatusBadRequest)
				return
			}
			item.MediaURL = mediaURL
		}
	} else {
		var req struct {
			UserID      uint   `json:"user_id"`
			Title       string `json:"title"`
			ItemType    string `json:"item_type"`
			Category    string `json:"category"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		item.UserID = req.UserID
		item.Title = req.Title
		item.ItemType = req.ItemType
		item.Category = req.Category
		item.Description = req.Description
	}

	if item.Title == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}
	if !models.ValidItemType(item.ItemType) {
		http.Error(w, "Invalid item type", http.StatusBadRequest)
		return
	}
	if item.Category == "" {
		http.Error(w, "Category is required", http.StatusBadRequest)
		return
	}

	tx := h.db.Begin()
	if err := tx.Create(&item).Error; err != nil {
		tx.Rollback()
		if mediaURL != "" {
			utils.DeleteMedia(mediaURL)
		}
		http.Error(w, "Error creating gallery item", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error saving gallery item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toResponse(item))
}

// GetItems retrieves gallery items newest-first, optionally filtered by
// owner and category
func (h *GalleryHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	query := h.db.Model(&models.GalleryItem{}).Order("upload_date DESC")

	if userID := r.URL.Query().Get("user_id"); userID != "" {
		id, err := strconv.ParseUint(userID, 10, 64)
		if err != nil {
			http.Error(w, "Invalid user ID", http.StatusBadRequest)
			return
		}
		query = query.Where("user_id = ?", id)
	}

	if category := r.URL.Query().Get("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var items []models.GalleryItem
	if err := query.Find(&items).Error; err != nil {
		http.Error(w, "Error retrieving gallery items", http.StatusInternalServerError)
		return
	}

	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toResponse(item))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

// GetItem retrieves a single gallery item
func (h *GalleryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	itemID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}

	var item models.GalleryItem
	if err := h.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Gallery item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving gallery item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toResponse(item))
}

// UpdateItem applies a partial update, changing only the fields present
func (h *GalleryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	itemID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}

	var updateData struct {
		Title       *string `json:"title"`
		ItemType    *string `json:"item_type"`
		Category    *string `json:"category"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if updateData.Title != nil && *updateData.Title == "" {
		http.Error(w, "Title cannot be empty", http.StatusBadRequest)
		return
	}
	if updateData.ItemType != nil && !models.ValidItemType(*updateData.ItemType) {
		http.Error(w, "Invalid item type", http.StatusBadRequest)
		return
	}
	if updateData.Category != nil && *updateData.Category == "" {
		http.Error(w, "Category cannot be empty", http.StatusBadRequest)
		return
	}

	var item models.GalleryItem
	if err := h.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Gallery item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving gallery item", http.StatusInternalServerError)
		return
	}

	if updateData.Title != nil {
		item.Title = *updateData.Title
	}
	if updateData.ItemType != nil {
		item.ItemType = *updateData.ItemType
	}
	if updateData.Category != nil {
		item.Category = *updateData.Category
	}
	if updateData.Description != nil {
		item.Description = *updateData.Description
	}

	tx := h.db.Begin()
	if err := tx.Save(&item).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error updating gallery item", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error updating gallery item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"updated": true})
}

// DeleteItem deletes a gallery item and its uploaded media, if any
func (h *GalleryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	itemID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}

	var item models.GalleryItem
	if err := h.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]bool{"deleted": false})
			return
		}
		http.Error(w, "Error retrieving gallery item", http.StatusInternalServerError)
		return
	}

	tx := h.db.Begin()
	if err := tx.Delete(&item).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error deleting gallery item", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error deleting gallery item", http.StatusInternalServerError)
		return
	}

	if item.MediaURL != "" {
		utils.DeleteMedia(item.MediaURL)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"deleted": true})
}
