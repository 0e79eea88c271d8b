package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name       string    `gorm:"column:name;size:100;not null" json:"name"`
	Username   string    `gorm:"column:username;size:50;uniqueIndex;not null" json:"username"`
	Bio        string    `gorm:"column:bio;type:text" json:"bio"`
	Followers  int       `gorm:"column:followers;default:0" json:"followers"`
	Following  int       `gorm:"column:following;default:0" json:"following"`
	Location   string    `gorm:"column:location;size:100" json:"location"`
	JoinedDate time.Time `gorm:"column:joined_date" json:"joined_date"`
	Verified   bool      `gorm:"column:verified;default:false" json:"verified"`
	Email      string    `gorm:"column:email;size:100" json:"email"`
	Phone      string    `gorm:"column:phone;size:20" json:"phone"`
	Website    string    `gorm:"column:website;size:200" json:"website"`

	SocialLinks  []SocialLink  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"social_links,omitempty"`
	Posts        []Post        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
	GalleryItems []GalleryItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"gallery_items,omitempty"`
	Comments     []Comment     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

type SocialLink struct {
	gorm.Model
	UserID   uint   `gorm:"column:user_id;not null" json:"user_id"`
	Platform string `gorm:"column:platform;size:50;not null" json:"platform"`
	URL      string `gorm:"column:url;size:200;not null" json:"url"`
}

// Platforms the profile can link out to. Unrecognized values are rejected
// at the handler boundary, not by the store.
var knownPlatforms = map[string]bool{
	"snapchat":  true,
	"instagram": true,
	"twitter":   true,
	"linkedin":  true,
	"tiktok":    true,
	"youtube":   true,
	"facebook":  true,
}

func ValidPlatform(platform string) bool {
	return knownPlatforms[platform]
}
