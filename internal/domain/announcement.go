package domain

import (
	"time"

	"gorm.io/gorm"
)

// Announcement is a seller's offer of one copy of a book.
type Announcement struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	BookID uint `gorm:"column:book_id;not null;index" json:"book_id"`
	UserID uint `gorm:"column:user_id;not null;index" json:"user_id"`

	Category  BookCategory       `gorm:"column:category;type:varchar(32);not null" json:"category"`
	Condition BookCondition      `gorm:"column:condition;type:varchar(32);not null" json:"condition"`
	Status    AnnouncementStatus `gorm:"column:status;type:varchar(16);not null;default:'active'" json:"status"`

	Price       float64 `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	MarketPrice float64 `gorm:"column:market_price;type:decimal(10,2)" json:"market_price,omitempty"`
	// FinalCalculatedPrice is maintained by the persistence layer (BeforeSave);
	// services read it but never set it.
	FinalCalculatedPrice float64 `gorm:"column:final_calculated_price;type:decimal(10,2)" json:"final_calculated_price"`

	Description     string `gorm:"column:description;type:text" json:"description,omitempty"`
	Location        string `gorm:"column:location" json:"location,omitempty"`
	CustomImages    string `gorm:"column:custom_images;type:text" json:"custom_images,omitempty"`
	PageCount       int    `gorm:"column:page_count" json:"page_count,omitempty"`
	PublicationDate string `gorm:"column:publication_date" json:"publication_date,omitempty"`
	ViewsCount      int    `gorm:"column:views_count;not null;default:0" json:"views_count"`

	Book Book `gorm:"foreignKey:BookID" json:"book"`
	User User `gorm:"foreignKey:UserID" json:"-"`

	// Seller is the reduced view of User (id, username, email); it is what
	// responses carry, never the full account row.
	Seller *SellerView `gorm:"-" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Announcement) TableName() string {
	return "announcements"
}

// BeforeSave keeps final_calculated_price consistent with the commercial
// fields: the asking price, capped at the market-reference price when one is
// known.
func (a *Announcement) BeforeSave(tx *gorm.DB) error {
	final := a.Price
	if a.MarketPrice > 0 && final > a.MarketPrice {
		final = a.MarketPrice
	}
	a.FinalCalculatedPrice = final
	return nil
}

// AfterFind fills Seller from the preloaded User association. Without a
// preload the view stays nil and the user key is omitted.
func (a *Announcement) AfterFind(tx *gorm.DB) error {
	if a.User.ID != 0 {
		v := a.User.Seller()
		a.Seller = &v
	}
	return nil
}
