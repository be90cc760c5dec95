package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"kitab-backend/internal/domain"
	"kitab-backend/internal/middleware"
	"kitab-backend/internal/pkg/apperr"
	"kitab-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service holds DB and Redis for account and token operations.
type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// RegisterInput matches the register request body.
type RegisterInput struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	University string `json:"university"`
}

// Register creates a user with a bcrypt credential and a default
// notification preference row, then issues a token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(strings.ToLower(in.Email))

	if !validation.IsValidUsername(username) {
		return nil, "", apperr.Validation("Nom d'utilisateur invalide (3 à 30 caractères, lettres, chiffres, . _ -)")
	}
	if !validation.IsValidEmail(email) {
		return nil, "", apperr.Validation("Format d'email invalide")
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, "", apperr.Validation("Mot de passe invalide (8 caractères minimum, lettres et chiffres)")
	}

	var existing domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, "", apperr.Conflict("Email déjà enregistré")
	}
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, "", apperr.Conflict("Nom d'utilisateur déjà pris")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return nil, "", apperr.Database(err)
	}

	u := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		University:   strings.TrimSpace(in.University),
		IsActive:     true,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		return tx.Create(&domain.NotificationPreference{
			UserID:                  u.ID,
			EmailNewRating:          true,
			EmailMessageReceived:    true,
			EmailAnnouncementSold:   true,
			AppNotificationsEnabled: true,
		}).Error
	})
	if err != nil {
		return nil, "", apperr.Database(err)
	}

	token, err := s.issueToken(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies the bcrypt credential and issues an opaque token. A stored
// credential that is not a bcrypt hash is rejected like a wrong password;
// there is no plain-text comparison path.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", apperr.Validation("Email et mot de passe requis")
	}

	var u domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.Unauthorized("Email ou mot de passe incorrect")
		}
		return nil, "", apperr.Database(err)
	}
	if !u.IsActive {
		return nil, "", apperr.Forbidden("Compte désactivé")
	}
	if !strings.HasPrefix(u.PasswordHash, "$2") {
		// Legacy non-bcrypt row: reject, never compare plain text.
		log.Error().Uint("user_id", u.ID).Msg("stored credential is not a bcrypt hash")
		return nil, "", apperr.Unauthorized("Email ou mot de passe incorrect")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.Unauthorized("Email ou mot de passe incorrect")
	}

	token, err := s.issueToken(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	return &u, token, nil
}

// Me resolves the authenticated user id to the account record.
func (s *Service) Me(ctx context.Context, userID uint) (*domain.User, error) {
	var u domain.User
	if err := s.DB.WithContext(ctx).First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Utilisateur", userID)
		}
		return nil, apperr.Database(err)
	}
	return &u, nil
}

// Logout invalidates the token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apperr.Unauthorized("Token manquant")
	}
	if err := s.Rdb.Del(ctx, middleware.TokenPrefix+token).Err(); err != nil {
		return apperr.Database(err)
	}
	return nil
}

// issueToken stores an opaque random token in Redis with the session TTL.
func (s *Service) issueToken(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString() + uuid.NewString()
	token = strings.ReplaceAll(token, "-", "")
	key := middleware.TokenPrefix + token
	if err := s.Rdb.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), middleware.TokenTTL).Err(); err != nil {
		return "", apperr.Database(err)
	}
	return token, nil
}
