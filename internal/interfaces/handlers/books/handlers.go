package books

import (
	"strconv"

	booksvc "kitab-backend/internal/application/books"
	"kitab-backend/internal/domain"
	"kitab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *booksvc.Service
}

// GET /api/books/categories — canonical values with their display labels
func (h *Handlers) Categories(c *fiber.Ctx) error {
	cats := domain.Categories()
	out := make([]fiber.Map, 0, len(cats))
	for _, cat := range cats {
		out = append(out, fiber.Map{"value": cat, "label": cat.Display()})
	}
	conds := domain.Conditions()
	condOut := make([]fiber.Map, 0, len(conds))
	for _, cond := range conds {
		condOut = append(condOut, fiber.Map{"value": cond, "label": cond.Display()})
	}
	return response.Success(c, "Catégories récupérées", fiber.Map{
		"categories": out,
		"conditions": condOut,
	}, nil)
}

// GET /api/books/isbn/:isbn — external lookup preview, nothing persisted
func (h *Handlers) LookupISBN(c *fiber.Ctx) error {
	isbn := c.Params("isbn")
	if isbn == "" {
		return response.Error(c, "ISBN requis", fiber.StatusBadRequest, nil)
	}
	info, err := h.Service.LookupISBN(c.Context(), isbn)
	if err != nil {
		return response.FromError(c, err)
	}
	if info == nil {
		return response.Error(c, "Aucun livre trouvé pour cet ISBN", fiber.StatusNotFound, nil)
	}
	return response.Success(c, "Livre trouvé", info, nil)
}

// GET /api/books/:id
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Identifiant invalide", fiber.StatusBadRequest, nil)
	}
	book, err := h.Service.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Livre récupéré", book, nil)
}
