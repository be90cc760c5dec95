package notifications

import (
	"strconv"

	notifsvc "kitab-backend/internal/application/notifications"
	"kitab-backend/internal/middleware"
	"kitab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *notifsvc.Service
}

// GET /api/notifications?unread=true
func (h *Handlers) List(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	list, total, err := h.Service.List(c.Context(), userID,
		c.QueryBool("unread", false),
		c.QueryInt("skip", 0), c.QueryInt("limit", 20))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Notifications récupérées", list, fiber.Map{"total": total})
}

// PATCH /api/notifications/:id/read
func (h *Handlers) MarkRead(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Identifiant invalide", fiber.StatusBadRequest, nil)
	}
	n, err := h.Service.MarkRead(c.Context(), uint(id), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Notification marquée comme lue", n, nil)
}

// POST /api/notifications/read-all
func (h *Handlers) MarkAllRead(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	count, err := h.Service.MarkAllRead(c.Context(), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Notifications marquées comme lues", fiber.Map{"count": count}, nil)
}

// GET /api/notifications/preferences
func (h *Handlers) GetPreferences(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	pref, err := h.Service.GetPreferences(c.Context(), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Préférences récupérées", pref, nil)
}

// PUT /api/notifications/preferences
func (h *Handlers) UpdatePreferences(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	var body notifsvc.PreferencesInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	pref, err := h.Service.UpdatePreferences(c.Context(), userID, body)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Préférences mises à jour", pref, nil)
}
