package auth

import (
	authsvc "kitab-backend/internal/application/auth"
	"kitab-backend/internal/middleware"
	"kitab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *authsvc.Service
}

// POST /api/auth/register — 201 with { user, token }
func (h *Handlers) Register(c *fiber.Ctx) error {
	var body authsvc.RegisterInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	user, token, err := h.Service.Register(c.Context(), body)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Compte créé", fiber.Map{
		"user":  user,
		"token": token,
	}, nil)
}

// POST /api/auth/login — { user, token }
func (h *Handlers) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	user, token, err := h.Service.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Connexion réussie", fiber.Map{
		"user":  user,
		"token": token,
	}, nil)
}

// GET /api/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	user, err := h.Service.Me(c.Context(), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Profil récupéré", user, nil)
}

// DELETE /api/auth/logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	if err := h.Service.Logout(c.Context(), middleware.BearerToken(c)); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Déconnexion réussie", fiber.Map{"logged_out": true}, nil)
}
