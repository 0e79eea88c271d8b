package db

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
	"github.com/soniapapi/profile-server/cmd/models"
	"gorm.io/gorm"
)

// Seed loads the profile owner and her starting content. Running it against
// an already-seeded database is a no-op.
func Seed(DB *gorm.DB) error {
	var existing models.User
	if err := DB.Where("username = ?", "sonia.papi").First(&existing).Error; err == nil {
		log.Println("Database already seeded. Skipping...")
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking for existing seed data: %w", err)
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Name:       "Sonia Papi",
			Username:   "sonia.papi",
			Bio:        "✨ Content Creator | 📸 Photography Enthusiast | 🌍 Travel Lover | 💼 Digital Marketing Pro",
			Followers:  15420,
			Following:  892,
			Location:   "London, UK",
			JoinedDate: time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC),
			Verified:   true,
			Email:      "hello@soniapapi.com",
			Phone:      "+44 20 1234 5678",
			Website:    "https://soniapapi.com",
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("seeding user: %w", err)
		}

		socialLinks := []models.SocialLink{
			{UserID: user.ID, Platform: "snapchat", URL: "https://www.snapchat.com/@sonia.papi"},
			{UserID: user.ID, Platform: "instagram", URL: "https://instagram.com/sonia.papi"},
			{UserID: user.ID, Platform: "twitter", URL: "https://twitter.com/sonia_papi"},
			{UserID: user.ID, Platform: "linkedin", URL: "https://linkedin.com/in/soniapapi"},
			{UserID: user.ID, Platform: "tiktok", URL: "https://tiktok.com/@sonia.papi"},
		}
		if err := tx.Create(&socialLinks).Error; err != nil {
			return fmt.Errorf("seeding social links: %w", err)
		}

		galleryItems := []models.GalleryItem{
			{
				UserID:      user.ID,
				Title:       "Sunset in Santorini",
				ItemType:    models.MediaTypeImage,
				Category:    "Travel",
				Description: "Beautiful sunset captured during my trip to Santorini, Greece. The colors were absolutely magical!",
				Likes:       1247,
				Views:       8934,
				UploadDate:  time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC),
			},
			{
				UserID:      user.ID,
				Title:       "Morning Coffee Routine",
				ItemType:    models.MediaTypeVideo,
				Category:    "Lifestyle",
				Description: "My daily morning coffee routine - starting the day right with a perfect cup!",
				Likes:       892,
				Views:       5621,
				UploadDate:  time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
			},
			{
				UserID:      user.ID,
				Title:       "London Street Photography",
				ItemType:    models.MediaTypeImage,
				Category:    "Photography",
				Description: "Capturing the essence of London streets during golden hour.",
				Likes:       2156,
				Views:       12453,
				UploadDate:  time.Date(2024, 8, 22, 0, 0, 0, 0, time.UTC),
			},
			{
				UserID:      user.ID,
				Title:       "Fashion Haul",
				ItemType:    models.MediaTypeVideo,
				Category:    "Fashion",
				Description: "Latest fashion finds from my shopping trip in Milan!",
				Likes:       3421,
				Views:       18792,
				UploadDate:  time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC),
			},
			{
				UserID:      user.ID,
				Title:       "Homemade Pasta",
				ItemType:    models.MediaTypeImage,
				Category:    "Food",
				Description: "Made fresh pasta from scratch - sharing my grandmother's recipe!",
				Likes:       1876,
				Views:       9654,
				UploadDate:  time.Date(2024, 9, 8, 0, 0, 0, 0, time.UTC),
			},
		}
		if err := tx.Create(&galleryItems).Error; err != nil {
			return fmt.Errorf("seeding gallery items: %w", err)
		}

		posts := []models.Post{
			{
				UserID:    user.ID,
				Caption:   "Golden hour in Santorini never disappoints. Sometimes you just have to stop and soak it all in. 🌅",
				PostType:  models.PostTypePost,
				MediaType: models.MediaTypeImage,
				Likes:     2847,
				Shares:    156,
				Views:     15632,
				Hashtags:  pq.StringArray{"#TravelDiaries", "#WanderlustVibes", "#PhotographyLife"},
			},
			{
				UserID:    user.ID,
				Caption:   "Morning motivation: your only limit is you. Started the day with a 6am workout and I feel unstoppable! 💪",
				PostType:  models.PostTypeStory,
				MediaType: models.MediaTypeVideo,
				Likes:     1523,
				Shares:    89,
				Views:     9847,
				Hashtags:  pq.StringArray{"#MorningMotivation", "#FitnessJourney"},
			},
			{
				UserID:   user.ID,
				Caption:  "Behind the scenes of today's content shoot. So grateful for this creative life!",
				PostType: models.PostTypePost,
				Likes:    1934,
				Shares:   112,
				Views:    11280,
				Hashtags: pq.StringArray{"#ContentCreator", "#CreativeLife"},
			},
			{
				UserID:    user.ID,
				Caption:   "Fresh pasta night! Grandmother's recipe, London kitchen. 🍝",
				PostType:  models.PostTypePost,
				MediaType: models.MediaTypeImage,
				Likes:     2210,
				Shares:    134,
				Views:     13456,
				Hashtags:  pq.StringArray{"#FoodieLife"},
			},
		}
		if err := tx.Create(&posts).Error; err != nil {
			return fmt.Errorf("seeding posts: %w", err)
		}

		comments := []models.Comment{
			{PostID: posts[0].ID, UserID: user.ID, Content: "Replying to everyone soon, thank you all! ❤️", Likes: 48},
			{PostID: posts[3].ID, UserID: user.ID, Content: "Recipe is going up on the website this weekend!", Likes: 97},
		}
		if err := tx.Create(&comments).Error; err != nil {
			return fmt.Errorf("seeding comments: %w", err)
		}

		log.Println("Database seeded successfully")
		return nil
	})
}
