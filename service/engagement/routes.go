package engagement

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/soniapapi/profile-server/cmd/models"
	"gorm.io/gorm"
)

// Entity kind tags accepted by the counter mutation routes.
const (
	EntityPost    = "post"
	EntityGallery = "gallery"
	EntityComment = "comment"
)

type EngagementHandler struct {
	db *gorm.DB
}

func NewEngagementHandler(db *gorm.DB) *EngagementHandler {
	return &EngagementHandler{db: db}
}

func (h *EngagementHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/engagement/{entity}/{id}/like", h.Like).Methods("POST")
	router.HandleFunc("/engagement/{entity}/{id}/like", h.Unlike).Methods("DELETE")
	router.HandleFunc("/engagement/{entity}/{id}/view", h.View).Methods("POST")
}

func (h *EngagementHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.updateLikes(w, r, true)
}

func (h *EngagementHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.updateLikes(w, r, false)
}

// updateLikes applies exactly one increment or decrement to the likes
// counter of the addressed entity. Decrement is clamped at zero.
func (h *EngagementHandler) updateLikes(w http.ResponseWriter, r *http.Request, increment bool) {
	vars := mux.Vars(r)
	entityID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid entity ID", http.StatusBadRequest)
		return
	}

	model, ok := likeTarget(vars["entity"])
	if !ok {
		http.Error(w, "Invalid entity type", http.StatusBadRequest)
		return
	}

	likes, err := h.mutateCounter(model, uint(entityID), "likes", increment)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]bool{"success": false})
			return
		}
		http.Error(w, "Error updating likes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"likes":   likes,
	})
}

// View increments the view counter for posts and gallery items. The
// presentation layer calls this exactly once per rendered detail view.
func (h *EngagementHandler) View(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entityID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid entity ID", http.StatusBadRequest)
		return
	}

	model, ok := viewTarget(vars["entity"])
	if !ok {
		http.Error(w, "Invalid entity type", http.StatusBadRequest)
		return
	}

	views, err := h.mutateCounter(model, uint(entityID), "views", true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]bool{"success": false})
			return
		}
		http.Error(w, "Error updating views", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"views":   views,
	})
}

func likeTarget(entity string) (interface{}, bool) {
	switch entity {
	case EntityPost:
		return &models.Post{}, true
	case EntityGallery:
		return &models.GalleryItem{}, true
	case EntityComment:
		return &models.Comment{}, true
	default:
		return nil, false
	}
}

func viewTarget(entity string) (interface{}, bool) {
	switch entity {
	case EntityPost:
		return &models.Post{}, true
	case EntityGallery:
		return &models.GalleryItem{}, true
	default:
		return nil, false
	}
}

// mutateCounter applies one atomic single-row update. A decrement never
// drives the counter below zero. There is no optimistic concurrency check;
// racing callers serialize at the store's row-locking granularity.
func (h *EngagementHandler) mutateCounter(model interface{}, id uint, column string, increment bool) (int, error) {
	var next int
	err := h.db.Transaction(func(tx *gorm.DB) error {
		expr := gorm.Expr(column + " + 1")
		if !increment {
			expr = gorm.Expr("CASE WHEN " + column + " > 0 THEN " + column + " - 1 ELSE 0 END")
		}

		result := tx.Model(model).Where("id = ?", id).UpdateColumn(column, expr)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var values []int
		if err := tx.Model(model).Where("id = ?", id).Pluck(column, &values).Error; err != nil {
			return err
		}
		if len(values) > 0 {
			next = values[0]
		}
		return nil
	})
	return next, err
}
