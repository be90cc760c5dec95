package wishlist

import (
	"context"
	"testing"

	"kitab-backend/internal/domain"
	"kitab-backend/internal/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupWishlist(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Book{}, &domain.Announcement{}, &domain.WishlistItem{}))

	require.NoError(t, db.Create(&domain.User{Username: "vendeur", Email: "v@example.dz", PasswordHash: "$2a$10$x", IsActive: true}).Error)
	require.NoError(t, db.Create(&domain.User{Username: "acheteur", Email: "a@example.dz", PasswordHash: "$2a$10$x", IsActive: true}).Error)
	require.NoError(t, db.Create(&domain.Book{ISBN: "9780132350884", Title: "Clean Code"}).Error)
	require.NoError(t, db.Create(&domain.Announcement{
		BookID: 1, UserID: 1,
		Category: domain.CategoryComputerScience, Condition: domain.ConditionGood,
		Status: domain.StatusActive, Price: 1500,
	}).Error)
	return &Service{DB: db}, db
}

func TestAdd_Success(t *testing.T) {
	s, _ := setupWishlist(t)

	item, err := s.Add(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, "Clean Code", item.Announcement.Book.Title)
}

func TestAdd_OwnAnnouncementRejected(t *testing.T) {
	s, _ := setupWishlist(t)
	_, err := s.Add(context.Background(), 1, 1)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAdd_DuplicateConflict(t *testing.T) {
	s, _ := setupWishlist(t)
	_, err := s.Add(context.Background(), 2, 1)
	require.NoError(t, err)
	_, err = s.Add(context.Background(), 2, 1)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestAdd_UnknownAnnouncement(t *testing.T) {
	s, _ := setupWishlist(t)
	_, err := s.Add(context.Background(), 2, 99)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestRemove(t *testing.T) {
	s, _ := setupWishlist(t)
	_, err := s.Add(context.Background(), 2, 1)
	require.NoError(t, err)

	require.NoError(t, s.Remove(context.Background(), 2, 1))

	err = s.Remove(context.Background(), 2, 1)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestList(t *testing.T) {
	s, _ := setupWishlist(t)
	_, err := s.Add(context.Background(), 2, 1)
	require.NoError(t, err)

	items, err := s.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint(1), items[0].AnnouncementID)

	empty, err := s.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
