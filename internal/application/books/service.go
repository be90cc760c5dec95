package books

import (
	"context"
	"errors"
	"strings"

	"kitab-backend/internal/domain"
	"kitab-backend/internal/infrastructure/googlebooks"
	"kitab-backend/internal/pkg/apperr"
	"kitab-backend/internal/pkg/validation"

	"gorm.io/gorm"
)

// unknownAuthor is the placeholder stored when a manual entry omits authors.
const unknownAuthor = "Auteur inconnu"

type Service struct {
	DB              *gorm.DB
	Lookup          googlebooks.Lookup
	DefaultLanguage string
}

// ManualBookInput carries the seller-supplied fields used when the external
// lookup knows nothing about the ISBN.
type ManualBookInput struct {
	Title         string
	Authors       string
	Publisher     string
	PublishedDate string
	Description   string
	PageCount     int
	CoverImageURL string
}

// Resolve finds or creates the canonical Book for a raw ISBN.
//
// An existing book is returned unchanged, even if incomplete. Otherwise the
// external lookup builds the record; when the lookup knows nothing, the
// manual title is required. The new book is persisted (and carries its
// generated key) before the caller references it.
func (s *Service) Resolve(ctx context.Context, rawISBN string, manual *ManualBookInput) (*domain.Book, error) {
	isbn := validation.NormalizeISBN(rawISBN)
	if !validation.IsPlausibleISBN(isbn) {
		return nil, apperr.Validation("ISBN invalide: " + rawISBN)
	}

	var existing domain.Book
	err := s.DB.WithContext(ctx).Where("isbn = ?", isbn).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Database(err)
	}

	book, err := s.buildBook(ctx, isbn, manual)
	if err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Create(book).Error; err != nil {
		if isDuplicateErr(err) {
			// Concurrent insert of the same ISBN: surface, do not merge.
			return nil, apperr.Conflict("Un livre avec cet ISBN existe déjà")
		}
		return nil, apperr.Database(err)
	}
	return book, nil
}

func (s *Service) buildBook(ctx context.Context, isbn string, manual *ManualBookInput) (*domain.Book, error) {
	info, err := s.lookup(ctx, isbn)
	if err != nil {
		return nil, err
	}

	if info != nil {
		lang := info.Language
		if lang == "" {
			lang = s.DefaultLanguage
		}
		return &domain.Book{
			ISBN:          validation.NormalizeISBN(info.ISBN),
			Title:         info.Title,
			Subtitle:      info.Subtitle,
			Authors:       strings.Join(info.Authors, ", "),
			Publisher:     info.Publisher,
			PublishedDate: info.PublishedDate,
			Description:   info.Description,
			PageCount:     info.PageCount,
			Categories:    strings.Join(info.Categories, ", "),
			Language:      lang,
			CoverImageURL: info.CoverImageURL,
			PreviewLink:   info.PreviewLink,
			InfoLink:      info.InfoLink,
		}, nil
	}

	if manual == nil || strings.TrimSpace(manual.Title) == "" {
		return nil, apperr.Validation(
			"Aucun livre trouvé pour l'ISBN: " + isbn +
				". Veuillez fournir le titre et l'auteur manuellement.")
	}
	authors := strings.TrimSpace(manual.Authors)
	if authors == "" {
		authors = unknownAuthor
	}
	return &domain.Book{
		ISBN:          isbn,
		Title:         strings.TrimSpace(manual.Title),
		Authors:       authors,
		Publisher:     manual.Publisher,
		PublishedDate: manual.PublishedDate,
		Description:   manual.Description,
		PageCount:     manual.PageCount,
		Language:      s.DefaultLanguage,
		CoverImageURL: manual.CoverImageURL,
	}, nil
}

// lookup queries the external service. Not-found is returned as (nil, nil);
// an unavailable service is a distinct error kind so callers can tell the
// two apart.
func (s *Service) lookup(ctx context.Context, isbn string) (*googlebooks.BookInfo, error) {
	if s.Lookup == nil {
		return nil, nil
	}
	info, err := s.Lookup.LookupISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, googlebooks.ErrNotFound) {
			return nil, nil
		}
		return nil, apperr.External("Google Books", "service temporairement indisponible")
	}
	return info, nil
}

// LookupISBN exposes the raw lookup for the preview endpoint. Returns
// (nil, nil) when the service knows no volume for the ISBN.
func (s *Service) LookupISBN(ctx context.Context, rawISBN string) (*googlebooks.BookInfo, error) {
	isbn := validation.NormalizeISBN(rawISBN)
	if !validation.IsPlausibleISBN(isbn) {
		return nil, apperr.Validation("ISBN invalide: " + rawISBN)
	}
	return s.lookup(ctx, isbn)
}

// GetByID fetches one book.
func (s *Service) GetByID(ctx context.Context, id uint) (*domain.Book, error) {
	var book domain.Book
	if err := s.DB.WithContext(ctx).First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Livre", id)
		}
		return nil, apperr.Database(err)
	}
	return &book, nil
}

func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
