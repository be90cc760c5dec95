package books

import (
	"context"
	"testing"

	"kitab-backend/internal/domain"
	"kitab-backend/internal/infrastructure/googlebooks"
	"kitab-backend/internal/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeLookup serves a fixed catalog keyed by normalized ISBN.
type fakeLookup struct {
	byISBN map[string]*googlebooks.BookInfo
	err    error
	calls  int
}

func (f *fakeLookup) LookupISBN(ctx context.Context, isbn string) (*googlebooks.BookInfo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if info, ok := f.byISBN[isbn]; ok {
		return info, nil
	}
	return nil, googlebooks.ErrNotFound
}

func setupBooks(t *testing.T, lookup googlebooks.Lookup) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Book{}))
	return &Service{DB: db, Lookup: lookup, DefaultLanguage: "fr"}, db
}

func cleanCodeLookup() *fakeLookup {
	return &fakeLookup{byISBN: map[string]*googlebooks.BookInfo{
		"9780132350884": {
			ISBN:       "9780132350884",
			Title:      "Clean Code",
			Authors:    []string{"Robert C. Martin"},
			Publisher:  "Prentice Hall",
			PageCount:  464,
			Categories: []string{"Computers", "Software Engineering"},
			Language:   "en",
		},
	}}
}

func TestResolve_LookupBuildsBook(t *testing.T) {
	lookup := cleanCodeLookup()
	s, _ := setupBooks(t, lookup)

	book, err := s.Resolve(context.Background(), "978-0-13-235088-4", nil)
	require.NoError(t, err)
	assert.NotZero(t, book.ID)
	assert.Equal(t, "9780132350884", book.ISBN)
	assert.Equal(t, "Clean Code", book.Title)
	assert.Equal(t, "Robert C. Martin", book.Authors)
	assert.Equal(t, "Computers, Software Engineering", book.Categories)
	assert.Equal(t, "en", book.Language)
}

func TestResolve_ExistingBookReusedWithoutLookup(t *testing.T) {
	lookup := cleanCodeLookup()
	s, _ := setupBooks(t, lookup)

	first, err := s.Resolve(context.Background(), "9780132350884", nil)
	require.NoError(t, err)
	second, err := s.Resolve(context.Background(), "978-0-13-235088-4", nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, lookup.calls, "second resolve must not hit the external service")
}

func TestResolve_ExistingBookReturnedUnchanged(t *testing.T) {
	s, db := setupBooks(t, cleanCodeLookup())
	// Pre-seeded incomplete record: resolve must not enrich it.
	require.NoError(t, db.Create(&domain.Book{ISBN: "9780132350884", Title: "Clean Code (ancien)"}).Error)

	book, err := s.Resolve(context.Background(), "9780132350884", nil)
	require.NoError(t, err)
	assert.Equal(t, "Clean Code (ancien)", book.Title)
	assert.Empty(t, book.Authors)
}

func TestResolve_MultilingualAuthorsJoined(t *testing.T) {
	lookup := &fakeLookup{byISBN: map[string]*googlebooks.BookInfo{
		"9782100547826": {
			ISBN:    "9782100547826",
			Title:   "Analyse 1",
			Authors: []string{"F. Liret", "D. Martinais"},
		},
	}}
	s, _ := setupBooks(t, lookup)

	book, err := s.Resolve(context.Background(), "9782100547826", nil)
	require.NoError(t, err)
	assert.Equal(t, "F. Liret, D. Martinais", book.Authors)
	assert.Equal(t, "fr", book.Language, "missing language falls back to the default")
}

func TestResolve_ManualFallbackRequiresTitle(t *testing.T) {
	s, db := setupBooks(t, &fakeLookup{byISBN: map[string]*googlebooks.BookInfo{}})

	_, err := s.Resolve(context.Background(), "9789961000001", nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = s.Resolve(context.Background(), "9789961000001", &ManualBookInput{Authors: "B. Khelif"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	var count int64
	require.NoError(t, db.Model(&domain.Book{}).Count(&count).Error)
	assert.Zero(t, count, "a failed resolve must persist nothing")
}

func TestResolve_ManualFallbackDefaultsAuthor(t *testing.T) {
	s, _ := setupBooks(t, &fakeLookup{byISBN: map[string]*googlebooks.BookInfo{}})

	book, err := s.Resolve(context.Background(), "9789961000001", &ManualBookInput{Title: "Polycopié d'électronique"})
	require.NoError(t, err)
	assert.NotZero(t, book.ID)
	assert.Equal(t, "Polycopié d'électronique", book.Title)
	assert.Equal(t, "Auteur inconnu", book.Authors)
	assert.Equal(t, "fr", book.Language)
}

func TestResolve_InvalidISBN(t *testing.T) {
	s, _ := setupBooks(t, cleanCodeLookup())

	_, err := s.Resolve(context.Background(), "12-34", nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestResolve_LookupUnavailable(t *testing.T) {
	s, _ := setupBooks(t, &fakeLookup{err: googlebooks.ErrUnavailable})

	_, err := s.Resolve(context.Background(), "9780132350884", nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindExternal, apperr.KindOf(err))
}

func TestLookupISBN_Preview(t *testing.T) {
	s, db := setupBooks(t, cleanCodeLookup())

	info, err := s.LookupISBN(context.Background(), "978-0-13-235088-4")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "Clean Code", info.Title)

	// preview never persists
	var count int64
	require.NoError(t, db.Model(&domain.Book{}).Count(&count).Error)
	assert.Zero(t, count)

	missing, err := s.LookupISBN(context.Background(), "9789961000001")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
