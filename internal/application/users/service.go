package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"kitab-backend/internal/domain"
	"kitab-backend/internal/pkg/apperr"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// PublicProfile is the community-page shape: no email, no credentials.
type PublicProfile struct {
	ID                uint      `json:"id"`
	Username          string    `json:"username"`
	FirstName         string    `json:"first_name,omitempty"`
	LastName          string    `json:"last_name,omitempty"`
	University        string    `json:"university,omitempty"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// ListPublic returns active users' public profiles, optionally narrowed by
// university.
func (s *Service) ListPublic(ctx context.Context, university string, skip, limit int) ([]PublicProfile, int64, error) {
	q := s.DB.WithContext(ctx).Model(&domain.User{}).Where("is_active = ?", true)
	if university != "" {
		q = q.Where("LOWER(university) = ?", strings.ToLower(university))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Database(err)
	}

	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	var list []domain.User
	if err := q.Order("created_at DESC").Offset(skip).Limit(limit).Find(&list).Error; err != nil {
		return nil, 0, apperr.Database(err)
	}

	out := make([]PublicProfile, 0, len(list))
	for _, u := range list {
		out = append(out, PublicProfile{
			ID:                u.ID,
			Username:          u.Username,
			FirstName:         u.FirstName,
			LastName:          u.LastName,
			University:        u.University,
			ProfilePictureURL: u.ProfilePictureURL,
			CreatedAt:         u.CreatedAt,
		})
	}
	return out, total, nil
}

// ProfileInput holds the self-editable fields; nil means "leave unchanged".
type ProfileInput struct {
	FirstName         *string `json:"first_name"`
	LastName          *string `json:"last_name"`
	University        *string `json:"university"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

// UpdateProfile applies profile edits for the authenticated user.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*domain.User, error) {
	var u domain.User
	if err := s.DB.WithContext(ctx).First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Utilisateur", userID)
		}
		return nil, apperr.Database(err)
	}

	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.University != nil {
		u.University = strings.TrimSpace(*in.University)
	}
	if in.ProfilePictureURL != nil {
		u.ProfilePictureURL = strings.TrimSpace(*in.ProfilePictureURL)
	}

	if err := s.DB.WithContext(ctx).Save(&u).Error; err != nil {
		return nil, apperr.Database(err)
	}
	return &u, nil
}
