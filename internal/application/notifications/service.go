package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"kitab-backend/internal/application/emails"
	"kitab-backend/internal/domain"
	"kitab-backend/internal/pkg/apperr"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB     *gorm.DB
	Emails emails.Sender
}

// Notify records a notification for a user, honoring their preferences.
// Email delivery is best-effort: a failed send is logged, never surfaced to
// the triggering request.
func (s *Service) Notify(ctx context.Context, userID uint, typ domain.NotificationType, title, message string, data map[string]interface{}) error {
	pref, err := s.preferences(ctx, userID)
	if err != nil {
		return err
	}
	if !pref.AppNotificationsEnabled {
		return nil
	}

	var payload datatypes.JSON
	if len(data) > 0 {
		b, err := json.Marshal(data)
		if err != nil {
			return apperr.Database(err)
		}
		payload = datatypes.JSON(b)
	}

	n := &domain.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Data:    payload,
	}
	if err := s.DB.WithContext(ctx).Create(n).Error; err != nil {
		return apperr.Database(err)
	}

	if s.Emails != nil && emailEnabled(pref, typ) {
		var u domain.User
		if err := s.DB.WithContext(ctx).First(&u, userID).Error; err == nil {
			if err := s.Emails.SendNotification(ctx, u.Email, title, "<p>"+message+"</p>"); err != nil {
				log.Error().Err(err).Uint("user_id", userID).Msg("notification email failed")
			} else {
				s.DB.WithContext(ctx).Model(n).UpdateColumn("is_sent_email", true)
			}
		}
	}
	return nil
}

func emailEnabled(pref *domain.NotificationPreference, typ domain.NotificationType) bool {
	switch typ {
	case domain.NotifNewRating, domain.NotifRatingReply:
		return pref.EmailNewRating
	case domain.NotifMessageReceived:
		return pref.EmailMessageReceived
	case domain.NotifAnnouncementSold, domain.NotifAnnouncementReserved:
		return pref.EmailAnnouncementSold
	default:
		return false
	}
}

// List returns a user's notifications, newest first. unreadOnly narrows to
// unread rows.
func (s *Service) List(ctx context.Context, userID uint, unreadOnly bool, skip, limit int) ([]domain.Notification, int64, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

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
	var list []domain.Notification
	if err := q.Order("created_at DESC").Offset(skip).Limit(limit).Find(&list).Error; err != nil {
		return nil, 0, apperr.Database(err)
	}
	return list, total, nil
}

// MarkRead marks one notification read (idempotent). Only the addressee can
// mark their notifications.
func (s *Service) MarkRead(ctx context.Context, id, userID uint) (*domain.Notification, error) {
	var n domain.Notification
	if err := s.DB.WithContext(ctx).First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Notification", id)
		}
		return nil, apperr.Database(err)
	}
	if n.UserID != userID {
		return nil, apperr.Forbidden("Cette notification ne vous appartient pas")
	}
	if !n.IsRead {
		now := time.Now()
		n.IsRead = true
		n.ReadAt = &now
		if err := s.DB.WithContext(ctx).Save(&n).Error; err != nil {
			return nil, apperr.Database(err)
		}
	}
	return &n, nil
}

// MarkAllRead marks every unread notification of the user read.
func (s *Service) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	now := time.Now()
	res := s.DB.WithContext(ctx).Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if res.Error != nil {
		return 0, apperr.Database(res.Error)
	}
	return res.RowsAffected, nil
}

// GetPreferences returns the user's preference row, creating the default one
// when missing (accounts predating the preferences table).
func (s *Service) GetPreferences(ctx context.Context, userID uint) (*domain.NotificationPreference, error) {
	return s.preferences(ctx, userID)
}

// PreferencesInput holds the editable toggles; nil means "leave unchanged".
type PreferencesInput struct {
	EmailNewRating          *bool `json:"email_new_rating"`
	EmailMessageReceived    *bool `json:"email_message_received"`
	EmailAnnouncementSold   *bool `json:"email_announcement_sold"`
	AppNotificationsEnabled *bool `json:"app_notifications_enabled"`
}

// UpdatePreferences applies toggle changes.
func (s *Service) UpdatePreferences(ctx context.Context, userID uint, in PreferencesInput) (*domain.NotificationPreference, error) {
	pref, err := s.preferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.EmailNewRating != nil {
		pref.EmailNewRating = *in.EmailNewRating
	}
	if in.EmailMessageReceived != nil {
		pref.EmailMessageReceived = *in.EmailMessageReceived
	}
	if in.EmailAnnouncementSold != nil {
		pref.EmailAnnouncementSold = *in.EmailAnnouncementSold
	}
	if in.AppNotificationsEnabled != nil {
		pref.AppNotificationsEnabled = *in.AppNotificationsEnabled
	}
	if err := s.DB.WithContext(ctx).Save(pref).Error; err != nil {
		return nil, apperr.Database(err)
	}
	return pref, nil
}

func (s *Service) preferences(ctx context.Context, userID uint) (*domain.NotificationPreference, error) {
	var pref domain.NotificationPreference
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if err == nil {
		return &pref, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Database(err)
	}
	pref = domain.NotificationPreference{
		UserID:                  userID,
		EmailNewRating:          true,
		EmailMessageReceived:    true,
		EmailAnnouncementSold:   true,
		AppNotificationsEnabled: true,
	}
	if err := s.DB.WithContext(ctx).Create(&pref).Error; err != nil {
		return nil, apperr.Database(err)
	}
	return &pref, nil
}
