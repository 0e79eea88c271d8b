package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/soniapapi/profile-server/cmd/models"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/profile/{username}", h.GetProfile).Methods("GET")
}

type ProfileResponse struct {
	Name        string            `json:"name"`
	Username    string            `json:"username"`
	Bio         string            `json:"bio"`
	Followers   int               `json:"followers"`
	Following   int               `json:"following"`
	Location    string            `json:"location"`
	JoinedDate  string            `json:"joined_date"`
	Verified    bool              `json:"verified"`
	SocialLinks map[string]string `json:"social_links"`
	Contact     ContactInfo       `json:"contact"`
}

type ContactInfo struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
}

// GetProfile returns the profile attributes and social links for a handle.
// A missing user is a 404, not a store error.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	username := vars["username"]

	var user models.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving profile", http.StatusInternalServerError)
		return
	}

	var socialLinks []models.SocialLink
	if err := h.db.Where("user_id = ?", user.ID).Find(&socialLinks).Error; err != nil {
		http.Error(w, "Error retrieving social links", http.StatusInternalServerError)
		return
	}

	// Rows with a platform the profile page cannot render are dropped
	// rather than surfaced to the caller.
	links := make(map[string]string, len(socialLinks))
	for _, link := range socialLinks {
		if models.ValidPlatform(link.Platform) {
			links[link.Platform] = link.URL
		}
	}

	joined := ""
	if !user.JoinedDate.IsZero() {
		joined = user.JoinedDate.Format("2006-01-02")
	}

	response := ProfileResponse{
		Name:        user.Name,
		Username:    user.Username,
		Bio:         user.Bio,
		Followers:   user.Followers,
		Following:   user.Following,
		Location:    user.Location,
		JoinedDate:  joined,
		Verified:    user.Verified,
		SocialLinks: links,
		Contact: ContactInfo{
			Email:    user.Email,
			Phone:    user.Phone,
			Location: user.Location,
			Website:  user.Website,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
