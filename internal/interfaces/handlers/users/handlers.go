package users

import (
	usersvc "kitab-backend/internal/application/users"
	"kitab-backend/internal/middleware"
	"kitab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *usersvc.Service
}

// GET /api/public/users?university=
func (h *Handlers) ListPublic(c *fiber.Ctx) error {
	list, total, err := h.Service.ListPublic(c.Context(),
		c.Query("university"),
		c.QueryInt("skip", 0), c.QueryInt("limit", 50))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Utilisateurs récupérés", list, fiber.Map{"total": total})
}

// PUT /api/users/profile
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	var body usersvc.ProfileInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	user, err := h.Service.UpdateProfile(c.Context(), userID, body)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Profil mis à jour", user, nil)
}
