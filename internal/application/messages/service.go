package messages

import (
	"context"
	"errors"
	"strings"

	"kitab-backend/internal/application/notifications"
	"kitab-backend/internal/domain"
	"kitab-backend/internal/pkg/apperr"
	"kitab-backend/internal/pkg/moderation"

	"gorm.io/gorm"
)

type Service struct {
	DB            *gorm.DB
	Notifications *notifications.Service
}

// SendInput matches the message request body.
type SendInput struct {
	ReceiverID     uint   `json:"receiver_id"`
	AnnouncementID uint   `json:"announcement_id"`
	Content        string `json:"content"`
}

// Send stores a message about an announcement and notifies the receiver.
func (s *Service) Send(ctx context.Context, senderID uint, in SendInput) (*domain.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, apperr.Validation("Le message ne peut pas être vide")
	}
	if in.ReceiverID == senderID {
		return nil, apperr.Validation("Vous ne pouvez pas vous envoyer un message à vous-même")
	}
	if w := moderation.Check(content); w != "" {
		return nil, apperr.Validation("Message refusé par la modération (mot interdit: " + w + ")")
	}

	var receiver domain.User
	if err := s.DB.WithContext(ctx).First(&receiver, in.ReceiverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Utilisateur", in.ReceiverID)
		}
		return nil, apperr.Database(err)
	}
	var ann domain.Announcement
	if err := s.DB.WithContext(ctx).First(&ann, in.AnnouncementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Annonce", in.AnnouncementID)
		}
		return nil, apperr.Database(err)
	}

	m := &domain.Message{
		SenderID:       senderID,
		ReceiverID:     in.ReceiverID,
		AnnouncementID: in.AnnouncementID,
		Content:        content,
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, apperr.Database(err)
	}

	if s.Notifications != nil {
		_ = s.Notifications.Notify(ctx, in.ReceiverID, domain.NotifMessageReceived,
			"Nouveau message",
			"Vous avez reçu un message concernant une de vos annonces",
			map[string]interface{}{
				"message_id":      m.ID,
				"sender_id":       senderID,
				"announcement_id": in.AnnouncementID,
			})
	}
	return m, nil
}

// ConversationSummary is one row of the conversations overview.
type ConversationSummary struct {
	AnnouncementID uint           `json:"announcement_id"`
	PeerID         uint           `json:"peer_id"`
	LastMessage    domain.Message `json:"last_message"`
	UnreadCount    int64          `json:"unread_count"`
}

// Conversations lists the user's conversations (grouped by announcement and
// peer), most recent first.
func (s *Service) Conversations(ctx context.Context, userID uint) ([]ConversationSummary, error) {
	var msgs []domain.Message
	err := s.DB.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&msgs).Error
	if err != nil {
		return nil, apperr.Database(err)
	}

	type key struct {
		ann  uint
		peer uint
	}
	seen := map[key]*ConversationSummary{}
	order := []key{}
	for _, m := range msgs {
		peer := m.SenderID
		if peer == userID {
			peer = m.ReceiverID
		}
		k := key{ann: m.AnnouncementID, peer: peer}
		if _, ok := seen[k]; !ok {
			seen[k] = &ConversationSummary{
				AnnouncementID: m.AnnouncementID,
				PeerID:         peer,
				LastMessage:    m,
			}
			order = append(order, k)
		}
		if m.ReceiverID == userID && !m.IsRead {
			seen[k].UnreadCount++
		}
	}

	out := make([]ConversationSummary, 0, len(order))
	for _, k := range order {
		out = append(out, *seen[k])
	}
	return out, nil
}

// Thread returns the messages between the user and a peer about one
// announcement, oldest first.
func (s *Service) Thread(ctx context.Context, userID, announcementID, peerID uint) ([]domain.Message, error) {
	var msgs []domain.Message
	err := s.DB.WithContext(ctx).
		Where("announcement_id = ?", announcementID).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, peerID, peerID, userID).
		Order("created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, apperr.Database(err)
	}
	return msgs, nil
}

// MarkRead marks one message read. Only the receiver may mark it.
func (s *Service) MarkRead(ctx context.Context, id, userID uint) (*domain.Message, error) {
	var m domain.Message
	if err := s.DB.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Message", id)
		}
		return nil, apperr.Database(err)
	}
	if m.ReceiverID != userID {
		return nil, apperr.Forbidden("Seul le destinataire peut marquer ce message comme lu")
	}
	if !m.IsRead {
		m.IsRead = true
		if err := s.DB.WithContext(ctx).Save(&m).Error; err != nil {
			return nil, apperr.Database(err)
		}
	}
	return &m, nil
}
