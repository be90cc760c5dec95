package domain

import (
	"time"

	"gorm.io/gorm"
)

// Rating is a buyer's review of a seller, optionally tied to the
// announcement the exchange happened on.
type Rating struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	SellerID       uint   `gorm:"column:seller_id;not null;index" json:"seller_id"`
	RaterID        uint   `gorm:"column:rater_id;not null;index" json:"rater_id"`
	AnnouncementID *uint  `gorm:"column:announcement_id;index" json:"announcement_id,omitempty"`
	Stars          int    `gorm:"column:stars;not null" json:"stars"`
	Comment        string `gorm:"column:comment;type:text" json:"comment,omitempty"`

	Rater User `gorm:"foreignKey:RaterID" json:"-"`

	// RaterView carries the reduced rater identity in responses.
	RaterView *SellerView `gorm:"-" json:"rater,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

// AfterFind fills RaterView from the preloaded Rater association.
func (r *Rating) AfterFind(tx *gorm.DB) error {
	if r.Rater.ID != 0 {
		v := r.Rater.Seller()
		r.RaterView = &v
	}
	return nil
}
