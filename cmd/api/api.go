package api

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/soniapapi/profile-server/service/analytics"
	"github.com/soniapapi/profile-server/service/contact"
	"github.com/soniapapi/profile-server/service/dashboard"
	"github.com/soniapapi/profile-server/service/engagement"
	"github.com/soniapapi/profile-server/service/feed"
	"github.com/soniapapi/profile-server/service/gallery"
	"github.com/soniapapi/profile-server/service/profile"
	"github.com/soniapapi/profile-server/service/search"
	"gorm.io/gorm"
)

type APIServer struct {
	address string
	db      *gorm.DB
}

func NewApiServer(address string, db *gorm.DB) *APIServer {
	return &APIServer{
		address: address,
		db:      db,
	}
}

func (s *APIServer) Run() error {
	router := mux.NewRouter()
	subrouter := router.PathPrefix("/api/v1").Subrouter()

	profileHandler := profile.NewHandler(s.db)
	profileHandler.RegisterRoutes(subrouter)

	feedHandler := feed.NewPostHandler(s.db)
	feedHandler.RegisterRoutes(subrouter)

	galleryHandler := gallery.NewGalleryHandler(s.db)
	galleryHandler.RegisterRoutes(subrouter)

	engagementHandler := engagement.NewEngagementHandler(s.db)
	engagementHandler.RegisterRoutes(subrouter)

	analyticsHandler := analytics.NewAnalyticsHandler(s.db)
	analyticsHandler.RegisterRoutes(subrouter)

	searchHandler := search.NewSearchHandler(s.db)
	searchHandler.RegisterRoutes(subrouter)

	dashboardHandler := dashboard.NewDashboardHandler(s.db)
	dashboardHandler.RegisterRoutes(subrouter)

	contactHandler := contact.NewContactHandler(s.db)
	contactHandler.RegisterRoutes(subrouter)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Accept", "Content-Type"}),
	)

	log.Println("Server running at", s.address)
	return http.ListenAndServe(s.address, handlers.LoggingHandler(os.Stdout, cors(router)))
}
