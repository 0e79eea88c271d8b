package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	PostTypePost  = "post"
	PostTypeStory = "story"

	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

type Post struct {
	gorm.Model
	UserID    uint           `gorm:"column:user_id;not null" json:"user_id"`
	Caption   string         `gorm:"column:caption;type:text;not null" json:"caption"`
	PostType  string         `gorm:"column:post_type;size:20;not null" json:"post_type"`
	MediaType string         `gorm:"column:media_type;size:20" json:"media_type,omitempty"`
	Likes     int            `gorm:"column:likes;default:0" json:"likes"`
	Shares    int            `gorm:"column:shares;default:0" json:"shares"`
	Views     int            `gorm:"column:views;default:0" json:"views"`
	Hashtags  pq.StringArray `gorm:"column:hashtags;type:text[]" json:"hashtags,omitempty"`
	User      *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comments  []Comment      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

type Comment struct {
	gorm.Model
	PostID  uint   `gorm:"column:post_id;not null" json:"post_id"`
	UserID  uint   `gorm:"column:user_id;not null" json:"user_id"`
	Content string `gorm:"column:content;type:text;not null" json:"content"`
	Likes   int    `gorm:"column:likes;default:0" json:"likes"`
	User    *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type GalleryItem struct {
	gorm.Model
	UserID      uint      `gorm:"column:user_id;not null" json:"user_id"`
	Title       string    `gorm:"column:title;size:200;not null" json:"title"`
	ItemType    string    `gorm:"column:item_type;size:20;not null" json:"item_type"`
	Category    string    `gorm:"column:category;size:50;not null" json:"category"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	MediaURL    string    `gorm:"column:media_url;size:255" json:"media_url,omitempty"`
	Likes       int       `gorm:"column:likes;default:0" json:"likes"`
	Views       int       `gorm:"column:views;default:0" json:"views"`
	UploadDate  time.Time `gorm:"column:upload_date" json:"upload_date"`
	User        *User     `gorm:"foreignKey:UserID" json:"-"`
}

func ValidPostType(t string) bool {
	return t == PostTypePost || t == PostTypeStory
}

// Media type is optional on posts; the empty string means text-only.
func ValidMediaType(t string) bool {
	return t == "" || t == MediaTypeImage || t == MediaTypeVideo
}

func ValidItemType(t string) bool {
	return t == MediaTypeImage || t == MediaTypeVideo
}
