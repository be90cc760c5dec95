package domain

import (
	"time"
)

// Message is one buyer/seller message about an announcement.
type Message struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	SenderID       uint   `gorm:"column:sender_id;not null;index" json:"sender_id"`
	ReceiverID     uint   `gorm:"column:receiver_id;not null;index" json:"receiver_id"`
	AnnouncementID uint   `gorm:"column:announcement_id;not null;index" json:"announcement_id"`
	Content        string `gorm:"column:content;type:text;not null" json:"content"`
	IsRead         bool   `gorm:"column:is_read;not null;default:false" json:"is_read"`

	Sender   User `gorm:"foreignKey:SenderID" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
