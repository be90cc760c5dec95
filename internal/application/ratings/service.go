package ratings

import (
	"context"
	"errors"
	"fmt"

	"kitab-backend/internal/application/notifications"
	"kitab-backend/internal/domain"
	"kitab-backend/internal/pkg/apperr"

	"gorm.io/gorm"
)

type Service struct {
	DB            *gorm.DB
	Notifications *notifications.Service
}

// CreateInput matches the rating request body.
type CreateInput struct {
	SellerID       uint   `json:"seller_id"`
	AnnouncementID *uint  `json:"announcement_id"`
	Stars          int    `json:"stars"`
	Comment        string `json:"comment"`
}

// Create records a rating from raterID to a seller and notifies the seller.
// One rating per (rater, seller, announcement); no self-rating.
func (s *Service) Create(ctx context.Context, raterID uint, in CreateInput) (*domain.Rating, error) {
	if in.Stars < 1 || in.Stars > 5 {
		return nil, apperr.Validation("La note doit être comprise entre 1 et 5")
	}
	if in.SellerID == raterID {
		return nil, apperr.Validation("Vous ne pouvez pas vous évaluer vous-même")
	}

	var seller domain.User
	if err := s.DB.WithContext(ctx).First(&seller, in.SellerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Utilisateur", in.SellerID)
		}
		return nil, apperr.Database(err)
	}

	if in.AnnouncementID != nil {
		var ann domain.Announcement
		if err := s.DB.WithContext(ctx).First(&ann, *in.AnnouncementID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("Annonce", *in.AnnouncementID)
			}
			return nil, apperr.Database(err)
		}
		if ann.UserID != in.SellerID {
			return nil, apperr.Validation("L'annonce n'appartient pas à ce vendeur")
		}
	}

	dup := s.DB.WithContext(ctx).Model(&domain.Rating{}).
		Where("rater_id = ? AND seller_id = ?", raterID, in.SellerID)
	if in.AnnouncementID != nil {
		dup = dup.Where("announcement_id = ?", *in.AnnouncementID)
	} else {
		dup = dup.Where("announcement_id IS NULL")
	}
	var count int64
	if err := dup.Count(&count).Error; err != nil {
		return nil, apperr.Database(err)
	}
	if count > 0 {
		return nil, apperr.Conflict("Vous avez déjà évalué ce vendeur pour cette annonce")
	}

	r := &domain.Rating{
		SellerID:       in.SellerID,
		RaterID:        raterID,
		AnnouncementID: in.AnnouncementID,
		Stars:          in.Stars,
		Comment:        in.Comment,
	}
	if err := s.DB.WithContext(ctx).Create(r).Error; err != nil {
		return nil, apperr.Database(err)
	}

	if s.Notifications != nil {
		data := map[string]interface{}{"rating_id": r.ID, "rater_id": raterID, "stars": in.Stars}
		if in.AnnouncementID != nil {
			data["announcement_id"] = *in.AnnouncementID
		}
		_ = s.Notifications.Notify(ctx, in.SellerID, domain.NotifNewRating,
			"Nouvelle évaluation",
			fmt.Sprintf("Vous avez reçu une évaluation de %d étoile(s)", in.Stars),
			data)
	}
	return r, nil
}

// ListForSeller returns a seller's ratings, newest first, paginated.
func (s *Service) ListForSeller(ctx context.Context, sellerID uint, skip, limit int) ([]domain.Rating, int64, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Rating{}).Where("seller_id = ?", sellerID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Database(err)
	}

	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var list []domain.Rating
	if err := q.Preload("Rater").Order("created_at DESC").Offset(skip).Limit(limit).Find(&list).Error; err != nil {
		return nil, 0, apperr.Database(err)
	}
	return list, total, nil
}

// Summary aggregates a seller's rating count and average.
type Summary struct {
	SellerID uint    `json:"seller_id"`
	Count    int64   `json:"count"`
	Average  float64 `json:"average"`
}

func (s *Service) SummaryForSeller(ctx context.Context, sellerID uint) (*Summary, error) {
	var out struct {
		Count int64
		Avg   *float64
	}
	err := s.DB.WithContext(ctx).Model(&domain.Rating{}).
		Select("COUNT(*) as count, AVG(stars) as avg").
		Where("seller_id = ?", sellerID).
		Scan(&out).Error
	if err != nil {
		return nil, apperr.Database(err)
	}
	sum := &Summary{SellerID: sellerID, Count: out.Count}
	if out.Avg != nil {
		sum.Average = *out.Avg
	}
	return sum, nil
}
