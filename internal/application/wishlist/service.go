package wishlist

import (
	"context"
	"errors"

	"kitab-backend/internal/domain"
	"kitab-backend/internal/pkg/apperr"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Add puts an announcement on the user's wishlist. Adding twice is a
// conflict, not a silent no-op, so the frontend can toggle state.
func (s *Service) Add(ctx context.Context, userID, announcementID uint) (*domain.WishlistItem, error) {
	var ann domain.Announcement
	if err := s.DB.WithContext(ctx).First(&ann, announcementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Annonce", announcementID)
		}
		return nil, apperr.Database(err)
	}
	if ann.UserID == userID {
		return nil, apperr.Validation("Vous ne pouvez pas ajouter votre propre annonce à vos favoris")
	}

	var existing domain.WishlistItem
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND announcement_id = ?", userID, announcementID).
		First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("Annonce déjà dans vos favoris")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Database(err)
	}

	item := &domain.WishlistItem{UserID: userID, AnnouncementID: announcementID}
	if err := s.DB.WithContext(ctx).Create(item).Error; err != nil {
		return nil, apperr.Database(err)
	}
	return s.load(ctx, item.ID)
}

// Remove deletes the wishlist entry for (user, announcement).
func (s *Service) Remove(ctx context.Context, userID, announcementID uint) error {
	res := s.DB.WithContext(ctx).
		Where("user_id = ? AND announcement_id = ?", userID, announcementID).
		Delete(&domain.WishlistItem{})
	if res.Error != nil {
		return apperr.Database(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Favori", announcementID)
	}
	return nil
}

// List returns the user's wishlist with each announcement and its book.
func (s *Service) List(ctx context.Context, userID uint) ([]domain.WishlistItem, error) {
	var items []domain.WishlistItem
	err := s.DB.WithContext(ctx).
		Preload("Announcement").Preload("Announcement.Book").Preload("Announcement.User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, apperr.Database(err)
	}
	return items, nil
}

func (s *Service) load(ctx context.Context, id uint) (*domain.WishlistItem, error) {
	var item domain.WishlistItem
	err := s.DB.WithContext(ctx).
		Preload("Announcement").Preload("Announcement.Book").Preload("Announcement.User").
		First(&item, id).Error
	if err != nil {
		return nil, apperr.Database(err)
	}
	return &item, nil
}
