package announcements

import (
	"context"
	"errors"
	"strings"

	"kitab-backend/internal/application/books"
	"kitab-backend/internal/domain"
	"kitab-backend/internal/pkg/apperr"
	"kitab-backend/internal/pkg/moderation"

	"gorm.io/gorm"
)

const (
	// DefaultLimit and MaxLimit bound list pagination.
	DefaultLimit = 20
	MaxLimit     = 100
)

type Service struct {
	DB    *gorm.DB
	Books *books.Service
}

// CreateInput carries everything a seller submits when listing a copy.
type CreateInput struct {
	ISBN string

	// Manual metadata, used only when the external lookup knows nothing.
	Title         string
	Authors       string
	Publisher     string
	CoverImageURL string

	Category    domain.BookCategory
	Condition   domain.BookCondition
	Price       float64
	MarketPrice float64
	Description string
	Location    string

	CustomImages    []string
	PageCount       int
	PublicationDate string
}

// Create resolves the book identity, then persists the announcement. The
// book commit happens first (its key must exist before the listing
// references it); the listing write is transactional, so a failure there
// leaves at worst an orphan book, never a partial listing row.
func (s *Service) Create(ctx context.Context, userID uint, in CreateInput) (*domain.Announcement, error) {
	if !in.Category.Valid() {
		return nil, apperr.Validation("Catégorie invalide: " + string(in.Category))
	}
	if !in.Condition.Valid() {
		return nil, apperr.Validation("État invalide: " + string(in.Condition))
	}
	if in.Price <= 0 {
		return nil, apperr.Validation("Le prix doit être supérieur à zéro")
	}
	if w := moderation.Check(in.Description); w != "" {
		return nil, apperr.Validation("Description refusée par la modération (mot interdit: " + w + ")")
	}

	book, err := s.Books.Resolve(ctx, in.ISBN, &books.ManualBookInput{
		Title:         in.Title,
		Authors:       in.Authors,
		Publisher:     in.Publisher,
		PublishedDate: in.PublicationDate,
		Description:   in.Description,
		PageCount:     in.PageCount,
		CoverImageURL: in.CoverImageURL,
	})
	if err != nil {
		return nil, err
	}

	// Seller input takes precedence, book values are the fallback.
	pageCount := in.PageCount
	if pageCount == 0 {
		pageCount = book.PageCount
	}
	pubDate := in.PublicationDate
	if pubDate == "" {
		pubDate = book.PublishedDate
	}

	ann := &domain.Announcement{
		BookID:          book.ID,
		UserID:          userID,
		Category:        in.Category,
		Condition:       in.Condition,
		Status:          domain.StatusActive,
		Price:           in.Price,
		MarketPrice:     in.MarketPrice,
		Description:     in.Description,
		Location:        in.Location,
		CustomImages:    strings.Join(in.CustomImages, ","),
		PageCount:       pageCount,
		PublicationDate: pubDate,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(ann).Error
	})
	if err != nil {
		return nil, apperr.Database(err)
	}

	return s.load(ctx, ann.ID)
}

// ListFilter holds the optional equality filters and pagination for List.
type ListFilter struct {
	Status    string
	Condition string
	Category  string
	Skip      int
	Limit     int
}

// List returns a page of announcements with nested book and seller, plus the
// unpaginated total for the filter set. Filters combine with AND.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.Announcement, int64, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Announcement{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Condition != "" {
		q = q.Where("condition = ?", f.Condition)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Database(err)
	}

	skip, limit := clampPage(f.Skip, f.Limit)
	var anns []domain.Announcement
	err := q.Preload("Book").Preload("User").
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&anns).Error
	if err != nil {
		return nil, 0, apperr.Database(err)
	}
	return anns, total, nil
}

// SearchFilter extends ListFilter with full-text-ish and range filters.
type SearchFilter struct {
	Query      string
	Categories []string
	Conditions []string
	PriceMin   *float64
	PriceMax   *float64
	PagesMin   *int
	PagesMax   *int
	Skip       int
	Limit      int
}

// Search applies the advanced filter set: a case-insensitive substring match
// over book title/authors/publisher and the announcement description and
// location, membership filters, and price/page ranges.
func (s *Service) Search(ctx context.Context, f SearchFilter) ([]domain.Announcement, int64, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Announcement{}).
		Joins("JOIN books ON books.id = announcements.book_id")

	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where(
			"LOWER(books.title) LIKE ? OR LOWER(books.authors) LIKE ? OR LOWER(books.publisher) LIKE ? OR LOWER(announcements.description) LIKE ? OR LOWER(announcements.location) LIKE ?",
			like, like, like, like, like,
		)
	}
	if len(f.Categories) > 0 {
		q = q.Where("announcements.category IN ?", f.Categories)
	}
	if len(f.Conditions) > 0 {
		q = q.Where("announcements.condition IN ?", f.Conditions)
	}
	if f.PriceMin != nil {
		q = q.Where("announcements.price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("announcements.price <= ?", *f.PriceMax)
	}
	if f.PagesMin != nil {
		q = q.Where("books.page_count >= ?", *f.PagesMin)
	}
	if f.PagesMax != nil {
		q = q.Where("books.page_count <= ?", *f.PagesMax)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Database(err)
	}

	skip, limit := clampPage(f.Skip, f.Limit)
	var anns []domain.Announcement
	err := q.Preload("Book").Preload("User").
		Order("announcements.created_at DESC").
		Offset(skip).Limit(limit).
		Find(&anns).Error
	if err != nil {
		return nil, 0, apperr.Database(err)
	}
	return anns, total, nil
}

// GetByID fetches one announcement and increments its view counter. The
// increment is an observable side effect of the read: two fetches move the
// counter by two.
func (s *Service) GetByID(ctx context.Context, id uint) (*domain.Announcement, error) {
	var ann domain.Announcement
	if err := s.DB.WithContext(ctx).First(&ann, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Annonce", id)
		}
		return nil, apperr.Database(err)
	}

	err := s.DB.WithContext(ctx).Model(&domain.Announcement{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
	if err != nil {
		return nil, apperr.Database(err)
	}

	return s.load(ctx, id)
}

// ListByOwner returns every announcement of a user, unfiltered and
// unpaginated.
func (s *Service) ListByOwner(ctx context.Context, userID uint) ([]domain.Announcement, error) {
	var anns []domain.Announcement
	err := s.DB.WithContext(ctx).
		Preload("Book").Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&anns).Error
	if err != nil {
		return nil, apperr.Database(err)
	}
	return anns, nil
}

// UpdateInput holds the owner-editable fields; nil means "leave unchanged".
type UpdateInput struct {
	Category        *domain.BookCategory
	Condition       *domain.BookCondition
	Status          *domain.AnnouncementStatus
	Price           *float64
	MarketPrice     *float64
	Description     *string
	Location        *string
	CustomImages    []string
	PageCount       *int
	PublicationDate *string
}

// Update applies owner edits. Any status may be set to any other; there is
// no transition graph. A non-owner gets a forbidden error, not a not-found.
func (s *Service) Update(ctx context.Context, id, userID uint, in UpdateInput) (*domain.Announcement, error) {
	var ann domain.Announcement
	if err := s.DB.WithContext(ctx).First(&ann, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Annonce", id)
		}
		return nil, apperr.Database(err)
	}
	if ann.UserID != userID {
		return nil, apperr.Forbidden("Seul le propriétaire peut modifier cette annonce")
	}

	if in.Category != nil {
		if !in.Category.Valid() {
			return nil, apperr.Validation("Catégorie invalide: " + string(*in.Category))
		}
		ann.Category = *in.Category
	}
	if in.Condition != nil {
		if !in.Condition.Valid() {
			return nil, apperr.Validation("État invalide: " + string(*in.Condition))
		}
		ann.Condition = *in.Condition
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperr.Validation("Statut invalide: " + string(*in.Status))
		}
		ann.Status = *in.Status
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, apperr.Validation("Le prix doit être supérieur à zéro")
		}
		ann.Price = *in.Price
	}
	if in.MarketPrice != nil {
		ann.MarketPrice = *in.MarketPrice
	}
	if in.Description != nil {
		if w := moderation.Check(*in.Description); w != "" {
			return nil, apperr.Validation("Description refusée par la modération (mot interdit: " + w + ")")
		}
		ann.Description = *in.Description
	}
	if in.Location != nil {
		ann.Location = *in.Location
	}
	if in.CustomImages != nil {
		ann.CustomImages = strings.Join(in.CustomImages, ",")
	}
	if in.PageCount != nil {
		ann.PageCount = *in.PageCount
	}
	if in.PublicationDate != nil {
		ann.PublicationDate = *in.PublicationDate
	}

	if err := s.DB.WithContext(ctx).Save(&ann).Error; err != nil {
		return nil, apperr.Database(err)
	}
	return s.load(ctx, ann.ID)
}

// Delete removes an announcement, owner only. The book stays.
func (s *Service) Delete(ctx context.Context, id, userID uint) error {
	var ann domain.Announcement
	if err := s.DB.WithContext(ctx).First(&ann, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Annonce", id)
		}
		return apperr.Database(err)
	}
	if ann.UserID != userID {
		return apperr.Forbidden("Seul le propriétaire peut supprimer cette annonce")
	}
	if err := s.DB.WithContext(ctx).Delete(&ann).Error; err != nil {
		return apperr.Database(err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, id uint) (*domain.Announcement, error) {
	var ann domain.Announcement
	err := s.DB.WithContext(ctx).
		Preload("Book").Preload("User").
		First(&ann, id).Error
	if err != nil {
		return nil, apperr.Database(err)
	}
	return &ann, nil
}

func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return skip, limit
}
