package dashboard

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/soniapapi/profile-server/cmd/models"
	"github.com/soniapapi/profile-server/cmd/utils"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	dashboardRouter := router.PathPrefix("/dashboard").Subrouter()
	dashboardRouter.HandleFunc("/metrics", h.GetEngagementMetrics).Methods("GET")
	dashboardRouter.HandleFunc("/trending", h.GetTrendingHashtags).Methods("GET")
}

type EngagementMetrics struct {
	TotalLikes     int64   `json:"total_likes"`
	TotalComments  int64   `json:"total_comments"`
	TotalShares    int64   `json:"total_shares"`
	TotalViews     int64   `json:"total_views"`
	EngagementRate float64 `json:"avg_engagement_rate"`

	// Pre-formatted display strings so the presentation layer does not
	// have to re-derive the abbreviations.
	TotalLikesDisplay    string `json:"total_likes_display"`
	TotalCommentsDisplay string `json:"total_comments_display"`
	TotalSharesDisplay   string `json:"total_shares_display"`
	TotalViewsDisplay    string `json:"total_views_display"`
}

// GetEngagementMetrics rolls up the engagement counters across posts,
// optionally restricted to one owner.
func (h *DashboardHandler) GetEngagementMetrics(w http.ResponseWriter, r *http.Request) {
	postQuery := h.db.Model(&models.Post{})
	commentQuery := h.db.Model(&models.Comment{})

	if userID := r.URL.Query().Get("user_id"); userID != "" {
		id, err := strconv.ParseUint(userID, 10, 64)
		if err != nil {
			http.Error(w, "Invalid user ID", http.StatusBadRequest)
			return
		}
		postQuery = postQuery.Where("user_id = ?", id)
		commentQuery = commentQuery.Where("post_id IN (?)",
			h.db.Model(&models.Post{}).Select("id").Where("user_id = ?", id))
	}

	var totals struct {
		TotalLikes  int64
		TotalShares int64
		TotalViews  int64
	}
	if err := postQuery.
		Select("COALESCE(SUM(likes), 0) AS total_likes, COALESCE(SUM(shares), 0) AS total_shares, COALESCE(SUM(views), 0) AS total_views").
		Scan(&totals).Error; err != nil {
		http.Error(w, "Error computing metrics", http.StatusInternalServerError)
		return
	}

	var totalComments int64
	if err := commentQuery.Count(&totalComments).Error; err != nil {
		http.Error(w, "Error computing metrics", http.StatusInternalServerError)
		return
	}

	metrics := EngagementMetrics{
		TotalLikes:    totals.TotalLikes,
		TotalComments: totalComments,
		TotalShares:   totals.TotalShares,
		TotalViews:    totals.TotalViews,

		TotalLikesDisplay:    utils.FormatEngagementNumber(int(totals.TotalLikes)),
		TotalCommentsDisplay: utils.FormatEngagementNumber(int(totalComments)),
		TotalSharesDisplay:   utils.FormatEngagementNumber(int(totals.TotalShares)),
		TotalViewsDisplay:    utils.FormatEngagementNumber(int(totals.TotalViews)),
	}

	if totals.TotalViews > 0 {
		engagement := totals.TotalLikes + totalComments + totals.TotalShares
		metrics.EngagementRate = float64(engagement) / float64(totals.TotalViews) * 100
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics)
}

type TrendingHashtag struct {
	Hashtag string `json:"hashtag"`
	Count   int    `json:"count"`
}

// GetTrendingHashtags ranks hashtags by how many posts carry them.
// The aggregation runs in memory over the full post set.
func (h *DashboardHandler) GetTrendingHashtags(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	var posts []models.Post
	if err := h.db.Find(&posts).Error; err != nil {
		http.Error(w, "Error retrieving posts", http.StatusInternalServerError)
		return
	}

	counts := make(map[string]int)
	for _, post := range posts {
		for _, tag := range post.Hashtags {
			counts[tag]++
		}
	}

	trending := make([]TrendingHashtag, 0, len(counts))
	for tag, count := range counts {
		trending = append(trending, TrendingHashtag{Hashtag: tag, Count: count})
	}
	sort.Slice(trending, func(i, j int) bool {
		if trending[i].Count != trending[j].Count {
			return trending[i].Count > trending[j].Count
		}
		return trending[i].Hashtag < trending[j].Hashtag
	})

	if len(trending) > limit {
		trending = trending[:limit]
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trending)
}
