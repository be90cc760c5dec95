package messages

import (
	"context"
	"testing"

	notifsvc "kitab-backend/internal/application/notifications"
	"kitab-backend/internal/domain"
	"kitab-backend/internal/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupMessages(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Book{}, &domain.Announcement{},
		&domain.Message{}, &domain.Notification{}, &domain.NotificationPreference{},
	))

	require.NoError(t, db.Create(&domain.User{Username: "vendeur", Email: "v@example.dz", PasswordHash: "$2a$10$x", IsActive: true}).Error)
	require.NoError(t, db.Create(&domain.User{Username: "acheteur", Email: "a@example.dz", PasswordHash: "$2a$10$x", IsActive: true}).Error)
	require.NoError(t, db.Create(&domain.Book{ISBN: "9780132350884", Title: "Clean Code"}).Error)
	require.NoError(t, db.Create(&domain.Announcement{
		BookID: 1, UserID: 1,
		Category: domain.CategoryComputerScience, Condition: domain.ConditionGood,
		Status: domain.StatusActive, Price: 1500,
	}).Error)
	return &Service{DB: db, Notifications: &notifsvc.Service{DB: db}}, db
}

func TestSend_Success_NotifiesReceiver(t *testing.T) {
	s, db := setupMessages(t)

	m, err := s.Send(context.Background(), 2, SendInput{
		ReceiverID: 1, AnnouncementID: 1, Content: "Bonjour, le livre est-il disponible ?",
	})
	require.NoError(t, err)
	assert.NotZero(t, m.ID)
	assert.False(t, m.IsRead)

	var n domain.Notification
	require.NoError(t, db.Where("user_id = ?", 1).First(&n).Error)
	assert.Equal(t, domain.NotifMessageReceived, n.Type)
}

func TestSend_Validation(t *testing.T) {
	s, _ := setupMessages(t)

	_, err := s.Send(context.Background(), 2, SendInput{ReceiverID: 1, AnnouncementID: 1, Content: "   "})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = s.Send(context.Background(), 1, SendInput{ReceiverID: 1, AnnouncementID: 1, Content: "salut"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = s.Send(context.Background(), 2, SendInput{ReceiverID: 1, AnnouncementID: 1, Content: "belle ARNAQUE"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSend_UnknownReceiverOrAnnouncement(t *testing.T) {
	s, _ := setupMessages(t)

	_, err := s.Send(context.Background(), 2, SendInput{ReceiverID: 99, AnnouncementID: 1, Content: "bonjour"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = s.Send(context.Background(), 2, SendInput{ReceiverID: 1, AnnouncementID: 99, Content: "bonjour"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestConversations_GroupedWithUnreadCount(t *testing.T) {
	s, _ := setupMessages(t)

	_, err := s.Send(context.Background(), 2, SendInput{ReceiverID: 1, AnnouncementID: 1, Content: "premier"})
	require.NoError(t, err)
	_, err = s.Send(context.Background(), 2, SendInput{ReceiverID: 1, AnnouncementID: 1, Content: "deuxième"})
	require.NoError(t, err)
	_, err = s.Send(context.Background(), 1, SendInput{ReceiverID: 2, AnnouncementID: 1, Content: "réponse"})
	require.NoError(t, err)

	convos, err := s.Conversations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, convos, 1, "one announcement + one peer = one conversation")
	assert.Equal(t, uint(2), convos[0].PeerID)
	assert.Equal(t, int64(2), convos[0].UnreadCount)
	assert.Equal(t, "réponse", convos[0].LastMessage.Content)
}

func TestThread_OrderedOldestFirst(t *testing.T) {
	s, _ := setupMessages(t)

	_, err := s.Send(context.Background(), 2, SendInput{ReceiverID: 1, AnnouncementID: 1, Content: "question"})
	require.NoError(t, err)
	_, err = s.Send(context.Background(), 1, SendInput{ReceiverID: 2, AnnouncementID: 1, Content: "réponse"})
	require.NoError(t, err)

	msgs, err := s.Thread(context.Background(), 1, 1, 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "question", msgs[0].Content)
	assert.Equal(t, "réponse", msgs[1].Content)
}

func TestMarkRead_ReceiverOnly(t *testing.T) {
	s, _ := setupMessages(t)
	m, err := s.Send(context.Background(), 2, SendInput{ReceiverID: 1, AnnouncementID: 1, Content: "bonjour"})
	require.NoError(t, err)

	_, err = s.MarkRead(context.Background(), m.ID, 2)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	read, err := s.MarkRead(context.Background(), m.ID, 1)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	// idempotent
	read, err = s.MarkRead(context.Background(), m.ID, 1)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
}
