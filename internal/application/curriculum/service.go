package curriculum

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kitab-backend/internal/domain"
	"kitab-backend/internal/pkg/apperr"
	"kitab-backend/internal/pkg/validation"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// ListFilter narrows the curriculum list.
type ListFilter struct {
	University string
	Field      string
	Skip       int
	Limit      int
}

// List returns curriculums with their recommended-book counts.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.Curriculum, int64, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Curriculum{})
	if f.University != "" {
		q = q.Where("LOWER(university) LIKE ?", "%"+strings.ToLower(f.University)+"%")
	}
	if f.Field != "" {
		q = q.Where("LOWER(field) LIKE ?", "%"+strings.ToLower(f.Field)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Database(err)
	}

	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 50
	}
	var list []domain.Curriculum
	err := q.Preload("RecommendedBooks").
		Order("university, name").
		Offset(f.Skip).Limit(f.Limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, apperr.Database(err)
	}
	return list, total, nil
}

// Get returns one curriculum with its reading list.
func (s *Service) Get(ctx context.Context, id uint) (*domain.Curriculum, error) {
	var cur domain.Curriculum
	err := s.DB.WithContext(ctx).Preload("RecommendedBooks").First(&cur, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Cursus", id)
		}
		return nil, apperr.Database(err)
	}
	return &cur, nil
}

// Badge is one "recommended in <curriculum>" tag for a book.
type Badge struct {
	CurriculumID uint   `json:"curriculum_id"`
	Curriculum   string `json:"curriculum"`
	University   string `json:"university"`
	Year         int    `json:"year,omitempty"`
	Label        string `json:"label"`
}

// BadgesForBook matches a catalog book against every reading list: first by
// normalized ISBN, then by case-insensitive title.
func (s *Service) BadgesForBook(ctx context.Context, bookID uint) ([]Badge, error) {
	var book domain.Book
	if err := s.DB.WithContext(ctx).First(&book, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Livre", bookID)
		}
		return nil, apperr.Database(err)
	}

	recs, err := s.matchingRecommendations(ctx, &book)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return []Badge{}, nil
	}

	curIDs := make([]uint, 0, len(recs))
	seen := map[uint]bool{}
	for _, r := range recs {
		if !seen[r.CurriculumID] {
			seen[r.CurriculumID] = true
			curIDs = append(curIDs, r.CurriculumID)
		}
	}

	var curs []domain.Curriculum
	if err := s.DB.WithContext(ctx).Where("id IN ?", curIDs).Find(&curs).Error; err != nil {
		return nil, apperr.Database(err)
	}

	badges := make([]Badge, 0, len(curs))
	for _, c := range curs {
		badges = append(badges, Badge{
			CurriculumID: c.ID,
			Curriculum:   c.Name,
			University:   c.University,
			Year:         c.Year,
			Label:        fmt.Sprintf("Recommandé en %s", c.Name),
		})
	}
	return badges, nil
}

// AnnouncementsForCurriculum returns active announcements whose book appears
// on the curriculum's reading list.
func (s *Service) AnnouncementsForCurriculum(ctx context.Context, curriculumID uint) ([]domain.Announcement, error) {
	cur, err := s.Get(ctx, curriculumID)
	if err != nil {
		return nil, err
	}
	if len(cur.RecommendedBooks) == 0 {
		return []domain.Announcement{}, nil
	}

	isbns := make([]string, 0, len(cur.RecommendedBooks))
	titles := make([]string, 0, len(cur.RecommendedBooks))
	for _, r := range cur.RecommendedBooks {
		if r.ISBN != "" {
			isbns = append(isbns, validation.NormalizeISBN(r.ISBN))
		}
		if r.Title != "" {
			titles = append(titles, strings.ToLower(r.Title))
		}
	}

	bq := s.DB.WithContext(ctx).Model(&domain.Book{})
	switch {
	case len(isbns) > 0 && len(titles) > 0:
		bq = bq.Where("isbn IN ? OR LOWER(title) IN ?", isbns, titles)
	case len(isbns) > 0:
		bq = bq.Where("isbn IN ?", isbns)
	default:
		bq = bq.Where("LOWER(title) IN ?", titles)
	}
	var bookIDs []uint
	if err := bq.Pluck("id", &bookIDs).Error; err != nil {
		return nil, apperr.Database(err)
	}
	if len(bookIDs) == 0 {
		return []domain.Announcement{}, nil
	}

	var anns []domain.Announcement
	err = s.DB.WithContext(ctx).
		Preload("Book").Preload("User").
		Where("book_id IN ? AND status = ?", bookIDs, domain.StatusActive).
		Order("created_at DESC").
		Find(&anns).Error
	if err != nil {
		return nil, apperr.Database(err)
	}
	return anns, nil
}

func (s *Service) matchingRecommendations(ctx context.Context, book *domain.Book) ([]domain.RecommendedBook, error) {
	var recs []domain.RecommendedBook
	err := s.DB.WithContext(ctx).
		Where("REPLACE(REPLACE(isbn, '-', ''), ' ', '') = ? AND isbn <> ''", book.ISBN).
		Find(&recs).Error
	if err != nil {
		return nil, apperr.Database(err)
	}
	if len(recs) > 0 {
		return recs, nil
	}
	// Title fallback for reading lists without ISBNs.
	err = s.DB.WithContext(ctx).
		Where("LOWER(title) = ?", strings.ToLower(book.Title)).
		Find(&recs).Error
	if err != nil {
		return nil, apperr.Database(err)
	}
	return recs, nil
}
