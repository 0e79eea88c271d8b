package analytics

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/soniapapi/profile-server/cmd/models"
	"gorm.io/gorm"
)

type AnalyticsHandler struct {
	db *gorm.DB
}

func NewAnalyticsHandler(db *gorm.DB) *AnalyticsHandler {
	return &AnalyticsHandler{db: db}
}

func (h *AnalyticsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/analytics/events", h.TrackEvent).Methods("POST")
	router.HandleFunc("/analytics/{userId}/summary", h.GetSummary).Methods("GET")
}

// TrackEvent appends a row to the event log. Rows are immutable once
// written; there is no update or delete route.
func (h *AnalyticsHandler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    uint   `json:"user_id"`
		EventType string `json:"event_type"`
		EventData string `json:"event_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.EventType == "" {
		http.Error(w, "Event type is required", http.StatusBadRequest)
		return
	}

	event := models.Analytics{
		UserID:    req.UserID,
		EventType: req.EventType,
		EventData: req.EventData,
		Timestamp: time.Now(),
	}

	tx := h.db.Begin()
	if err := tx.Create(&event).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error tracking event", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error saving event", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]uint{"id": event.ID})
}

type SummaryResponse struct {
	TotalEvents  int64            `json:"total_events"`
	EventsByType map[string]int64 `json:"events_by_type"`
}

// GetSummary scans the user's events over a lookback window of whole days.
// The lower bound is inclusive: an event exactly at now - days is counted.
func (h *AnalyticsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseUint(vars["userId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	days := 7
	if d := r.URL.Query().Get("days"); d != "" {
		days, err = strconv.Atoi(d)
		if err != nil || days < 1 {
			http.Error(w, "Invalid days parameter", http.StatusBadRequest)
			return
		}
	}

	startDate := time.Now().AddDate(0, 0, -days)

	var events []models.Analytics
	if err := h.db.Where("user_id = ? AND timestamp >= ?", userID, startDate).Find(&events).Error; err != nil {
		http.Error(w, "Error retrieving analytics", http.StatusInternalServerError)
		return
	}

	summary := SummaryResponse{
		TotalEvents:  int64(len(events)),
		EventsByType: make(map[string]int64),
	}
	for _, event := range events {
		summary.EventsByType[event.EventType]++
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}
