package domain

import (
	"time"
)

// Book is the canonical catalog entry, keyed by normalized ISBN and shared
// across announcements. Deleting an announcement never deletes its book.
type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ISBN          string    `gorm:"column:isbn;not null;uniqueIndex" json:"isbn"`
	Title         string    `gorm:"column:title;not null" json:"title"`
	Subtitle      string    `gorm:"column:subtitle" json:"subtitle,omitempty"`
	Authors       string    `gorm:"column:authors" json:"authors"`
	Publisher     string    `gorm:"column:publisher" json:"publisher,omitempty"`
	PublishedDate string    `gorm:"column:published_date" json:"published_date,omitempty"`
	Description   string    `gorm:"column:description;type:text" json:"description,omitempty"`
	PageCount     int       `gorm:"column:page_count" json:"page_count,omitempty"`
	Categories    string    `gorm:"column:categories" json:"categories,omitempty"`
	Language      string    `gorm:"column:language" json:"language,omitempty"`
	CoverImageURL string    `gorm:"column:cover_image_url" json:"cover_image_url,omitempty"`
	PreviewLink   string    `gorm:"column:preview_link" json:"preview_link,omitempty"`
	InfoLink      string    `gorm:"column:info_link" json:"info_link,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}
