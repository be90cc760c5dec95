package ratings

import (
	"strconv"

	ratingsvc "kitab-backend/internal/application/ratings"
	"kitab-backend/internal/middleware"
	"kitab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *ratingsvc.Service
}

// POST /api/ratings — 201
func (h *Handlers) Create(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	var body ratingsvc.CreateInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	rating, err := h.Service.Create(c.Context(), userID, body)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Évaluation enregistrée", rating, nil)
}

// GET /api/ratings/seller/:id
func (h *Handlers) ListForSeller(c *fiber.Ctx) error {
	sellerID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Identifiant invalide", fiber.StatusBadRequest, nil)
	}
	list, total, err := h.Service.ListForSeller(c.Context(), uint(sellerID),
		c.QueryInt("skip", 0), c.QueryInt("limit", 20))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Évaluations récupérées", list, fiber.Map{"total": total})
}

// GET /api/ratings/seller/:id/summary
func (h *Handlers) Summary(c *fiber.Ctx) error {
	sellerID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Identifiant invalide", fiber.StatusBadRequest, nil)
	}
	sum, err := h.Service.SummaryForSeller(c.Context(), uint(sellerID))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Synthèse des évaluations", sum, nil)
}
