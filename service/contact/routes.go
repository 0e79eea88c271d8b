package contact

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/soniapapi/profile-server/cmd/models"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

type ContactHandler struct {
	db *gorm.DB
}

func NewContactHandler(db *gorm.DB) *ContactHandler {
	return &ContactHandler{db: db}
}

func (h *ContactHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/contact", h.SendMessage).Methods("POST")
}

// SendMessage handles the contact form: validates the fields, delivers the
// message to the profile owner over SMTP when configured, and records a
// contact_message analytics event either way.
func (h *ContactHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Email == "" || req.Message == "" {
		http.Error(w, "Name, email and message are required", http.StatusBadRequest)
		return
	}

	var owner models.User
	if err := h.db.Order("id ASC").First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Profile owner not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving profile owner", http.StatusInternalServerError)
		return
	}

	if os.Getenv("SMTP_HOST") != "" {
		if err := sendContactEmail(owner.Email, req.Name, req.Email, req.Message); err != nil {
			log.Printf("Error sending contact email: %v", err)
			http.Error(w, "Error delivering message", http.StatusInternalServerError)
			return
		}
	} else {
		log.Println("SMTP not configured, skipping contact email delivery")
	}

	event := models.Analytics{
		UserID:    owner.ID,
		EventType: "contact_message",
		EventData: fmt.Sprintf("from=%s <%s>", req.Name, req.Email),
		Timestamp: time.Now(),
	}
	if err := h.db.Create(&event).Error; err != nil {
		http.Error(w, "Error recording message", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Message sent successfully",
	})
}

func sendContactEmail(to, senderName, senderEmail, message string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", to)
	m.SetHeader("Reply-To", senderEmail)
	m.SetHeader("Subject", fmt.Sprintf("New message from %s", senderName))
	m.SetBody("text/plain", message)

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP port: %v", err)
	}
	d := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)

	return d.DialAndSend(m)
}
