package domain

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationType is the closed set of notification kinds.
type NotificationType string

const (
	NotifNewRating            NotificationType = "new_rating"
	NotifRatingReply          NotificationType = "rating_reply"
	NotifAnnouncementSold     NotificationType = "announcement_sold"
	NotifAnnouncementReserved NotificationType = "announcement_reserved"
	NotifMessageReceived      NotificationType = "message_received"
	NotifPriceDrop            NotificationType = "price_drop"
)

// Notification is a create-then-read record addressed to one user. Data
// carries type-specific references (announcement id, rater id, ...) as JSON.
type Notification struct {
	ID      uint             `gorm:"primaryKey" json:"id"`
	UserID  uint             `gorm:"column:user_id;not null;index" json:"user_id"`
	Type    NotificationType `gorm:"column:type;type:varchar(32);not null" json:"type"`
	Title   string           `gorm:"column:title;not null" json:"title"`
	Message string           `gorm:"column:message;type:text;not null" json:"message"`
	Data    datatypes.JSON   `gorm:"column:data" json:"data,omitempty"`

	IsRead      bool       `gorm:"column:is_read;not null;default:false;index" json:"is_read"`
	IsSentEmail bool       `gorm:"column:is_sent_email;not null;default:false" json:"is_sent_email"`
	ReadAt      *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NotificationPreference holds per-user delivery toggles, one row per user.
type NotificationPreference struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`

	EmailNewRating       bool `gorm:"column:email_new_rating;not null;default:true" json:"email_new_rating"`
	EmailMessageReceived bool `gorm:"column:email_message_received;not null;default:true" json:"email_message_received"`
	EmailAnnouncementSold bool `gorm:"column:email_announcement_sold;not null;default:true" json:"email_announcement_sold"`
	AppNotificationsEnabled bool `gorm:"column:app_notifications_enabled;not null;default:true" json:"app_notifications_enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (NotificationPreference) TableName() string {
	return "notification_preferences"
}
