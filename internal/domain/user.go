package domain

import (
	"time"
)

// User is an account identity. PasswordHash is always a bcrypt hash; legacy
// plain-text rows are rejected at login, never compared.
type User struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Username          string    `gorm:"column:username;not null;uniqueIndex" json:"username"`
	Email             string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash      string    `gorm:"column:password_hash;not null" json:"-"`
	FirstName         string    `gorm:"column:first_name" json:"first_name,omitempty"`
	LastName          string    `gorm:"column:last_name" json:"last_name,omitempty"`
	University        string    `gorm:"column:university" json:"university,omitempty"`
	ProfilePictureURL string    `gorm:"column:profile_picture_url" json:"profile_picture_url,omitempty"`
	IsAdmin           bool      `gorm:"column:is_admin;not null;default:false" json:"is_admin"`
	IsActive          bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// SellerView is the reduced user shape embedded in announcement and rating
// responses: identity fields only, never credentials.
type SellerView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Seller returns the reduced view of the user (no credential fields).
func (u *User) Seller() SellerView {
	return SellerView{ID: u.ID, Username: u.Username, Email: u.Email}
}
