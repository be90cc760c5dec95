package curriculum

import (
	"strconv"

	cursvc "kitab-backend/internal/application/curriculum"
	"kitab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *cursvc.Service
}

// GET /api/curriculum?university=&field=
func (h *Handlers) List(c *fiber.Ctx) error {
	list, total, err := h.Service.List(c.Context(), cursvc.ListFilter{
		University: c.Query("university"),
		Field:      c.Query("field"),
		Skip:       c.QueryInt("skip", 0),
		Limit:      c.QueryInt("limit", 50),
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Cursus récupérés", list, fiber.Map{"total": total})
}

// GET /api/curriculum/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Identifiant invalide", fiber.StatusBadRequest, nil)
	}
	cur, err := h.Service.Get(c.Context(), uint(id))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Cursus récupéré", cur, nil)
}

// GET /api/curriculum/badges/book/:book_id
func (h *Handlers) BadgesForBook(c *fiber.Ctx) error {
	bookID, err := strconv.ParseUint(c.Params("book_id"), 10, 64)
	if err != nil {
		return response.Error(c, "Identifiant invalide", fiber.StatusBadRequest, nil)
	}
	badges, err := h.Service.BadgesForBook(c.Context(), uint(bookID))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Badges récupérés", badges, nil)
}

// GET /api/curriculum/:id/announcements
func (h *Handlers) Announcements(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Identifiant invalide", fiber.StatusBadRequest, nil)
	}
	anns, err := h.Service.AnnouncementsForCurriculum(c.Context(), uint(id))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Annonces du cursus", anns, nil)
}
