package domain

import (
	"time"
)

// WishlistItem links a user to an announcement they follow. One row per
// (user, announcement) pair.
type WishlistItem struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	UserID         uint `gorm:"column:user_id;not null;index:idx_wishlist_user_announcement,unique" json:"user_id"`
	AnnouncementID uint `gorm:"column:announcement_id;not null;index:idx_wishlist_user_announcement,unique" json:"announcement_id"`

	Announcement Announcement `gorm:"foreignKey:AnnouncementID" json:"announcement"`

	CreatedAt time.Time `json:"created_at"`
}

func (WishlistItem) TableName() string {
	return "wishlist"
}
