package models

import "time"

// Analytics rows are an append-only event log. They are inserted and
// aggregated, never updated or deleted, so there is no gorm.Model here.
type Analytics struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null" json:"user_id"`
	EventType string    `gorm:"column:event_type;size:50;not null" json:"event_type"`
	EventData string    `gorm:"column:event_data;type:text" json:"event_data,omitempty"`
	Timestamp time.Time `gorm:"column:timestamp;index" json:"timestamp"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Analytics) TableName() string {
	return "analytics"
}
