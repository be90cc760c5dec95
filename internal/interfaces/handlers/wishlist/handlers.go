package wishlist

import (
	"strconv"

	wishsvc "kitab-backend/internal/application/wishlist"
	"kitab-backend/internal/middleware"
	"kitab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *wishsvc.Service
}

// POST /api/wishlist — 201
func (h *Handlers) Add(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	var body struct {
		AnnouncementID uint `json:"announcement_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.AnnouncementID == 0 {
		return response.Error(c, "announcement_id requis", fiber.StatusBadRequest, nil)
	}
	item, err := h.Service.Add(c.Context(), userID, body.AnnouncementID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Annonce ajoutée aux favoris", item, nil)
}

// GET /api/wishlist
func (h *Handlers) List(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	items, err := h.Service.List(c.Context(), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Favoris récupérés", items, nil)
}

// DELETE /api/wishlist/:announcement_id
func (h *Handlers) Remove(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	annID, err := strconv.ParseUint(c.Params("announcement_id"), 10, 64)
	if err != nil {
		return response.Error(c, "Identifiant invalide", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Remove(c.Context(), userID, uint(annID)); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Annonce retirée des favoris", fiber.Map{"removed": true}, nil)
}
