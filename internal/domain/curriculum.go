package domain

import (
	"time"
)

// Curriculum is a university course of study with a recommended reading list.
type Curriculum struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"column:name;not null" json:"name"`
	University  string `gorm:"column:university;not null;index" json:"university"`
	Field       string `gorm:"column:field;index" json:"field,omitempty"`
	Year        int    `gorm:"column:year" json:"year,omitempty"`
	Description string `gorm:"column:description;type:text" json:"description,omitempty"`
	SourceURL   string `gorm:"column:source_url" json:"source_url,omitempty"`

	RecommendedBooks []RecommendedBook `gorm:"foreignKey:CurriculumID" json:"recommended_books,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Curriculum) TableName() string {
	return "curriculums"
}

// RecommendedBook is one entry of a curriculum's reading list. ISBN is
// normalized when present; title is the match fallback.
type RecommendedBook struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	CurriculumID uint   `gorm:"column:curriculum_id;not null;index" json:"curriculum_id"`
	Title        string `gorm:"column:title;not null" json:"title"`
	Author       string `gorm:"column:author" json:"author,omitempty"`
	ISBN         string `gorm:"column:isbn;index" json:"isbn,omitempty"`
	Publisher    string `gorm:"column:publisher" json:"publisher,omitempty"`
	Edition      string `gorm:"column:edition" json:"edition,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (RecommendedBook) TableName() string {
	return "recommended_books"
}
