package announcements

import (
	"strconv"
	"strings"

	annsvc "kitab-backend/internal/application/announcements"
	"kitab-backend/internal/domain"
	"kitab-backend/internal/middleware"
	"kitab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *annsvc.Service
}

type createBody struct {
	ISBN            string   `json:"isbn"`
	Title           string   `json:"title"`
	Authors         string   `json:"authors"`
	Publisher       string   `json:"publisher"`
	CoverImageURL   string   `json:"cover_image_url"`
	Category        string   `json:"category"`
	Condition       string   `json:"condition"`
	Price           float64  `json:"price"`
	MarketPrice     float64  `json:"market_price"`
	Description     string   `json:"description"`
	Location        string   `json:"location"`
	CustomImages    []string `json:"custom_images"`
	PageCount       int      `json:"page_count"`
	PublicationDate string   `json:"publication_date"`
}

// POST /api/books/announcements — 201 with the created announcement
func (h *Handlers) Create(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	var body createBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	if strings.TrimSpace(body.ISBN) == "" {
		return response.Error(c, "ISBN requis", fiber.StatusBadRequest, nil)
	}

	ann, err := h.Service.Create(c.Context(), userID, annsvc.CreateInput{
		ISBN:            body.ISBN,
		Title:           body.Title,
		Authors:         body.Authors,
		Publisher:       body.Publisher,
		CoverImageURL:   body.CoverImageURL,
		Category:        domain.BookCategory(body.Category),
		Condition:       domain.BookCondition(body.Condition),
		Price:           body.Price,
		MarketPrice:     body.MarketPrice,
		Description:     body.Description,
		Location:        body.Location,
		CustomImages:    body.CustomImages,
		PageCount:       body.PageCount,
		PublicationDate: body.PublicationDate,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Annonce créée", ann, nil)
}

// GET /api/books/announcements — equality filters + pagination
func (h *Handlers) List(c *fiber.Ctx) error {
	anns, total, err := h.Service.List(c.Context(), annsvc.ListFilter{
		Status:    c.Query("status"),
		Condition: c.Query("condition"),
		Category:  c.Query("category"),
		Skip:      c.QueryInt("skip", 0),
		Limit:     c.QueryInt("limit", annsvc.DefaultLimit),
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Annonces récupérées", anns, fiber.Map{"total": total})
}

// GET /api/books/announcements/search — advanced filters
func (h *Handlers) Search(c *fiber.Ctx) error {
	f := annsvc.SearchFilter{
		Query:      c.Query("q"),
		Categories: splitList(c.Query("categories")),
		Conditions: splitList(c.Query("conditions")),
		Skip:       c.QueryInt("skip", 0),
		Limit:      c.QueryInt("limit", annsvc.DefaultLimit),
	}
	var parseErr string
	f.PriceMin, parseErr = queryFloat(c, "price_min")
	if parseErr != "" {
		return response.Error(c, parseErr, fiber.StatusBadRequest, nil)
	}
	f.PriceMax, parseErr = queryFloat(c, "price_max")
	if parseErr != "" {
		return response.Error(c, parseErr, fiber.StatusBadRequest, nil)
	}
	f.PagesMin, parseErr = queryInt(c, "pages_min")
	if parseErr != "" {
		return response.Error(c, parseErr, fiber.StatusBadRequest, nil)
	}
	f.PagesMax, parseErr = queryInt(c, "pages_max")
	if parseErr != "" {
		return response.Error(c, parseErr, fiber.StatusBadRequest, nil)
	}

	anns, total, err := h.Service.Search(c.Context(), f)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Résultats de recherche", anns, fiber.Map{"total": total})
}

// GET /api/books/announcements/:id — increments the view counter
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Identifiant invalide", fiber.StatusBadRequest, nil)
	}
	ann, err := h.Service.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Annonce récupérée", ann, nil)
}

// GET /api/books/my-announcements
func (h *Handlers) Mine(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	anns, err := h.Service.ListByOwner(c.Context(), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Vos annonces", anns, nil)
}

type updateBody struct {
	Category        *string  `json:"category"`
	Condition       *string  `json:"condition"`
	Status          *string  `json:"status"`
	Price           *float64 `json:"price"`
	MarketPrice     *float64 `json:"market_price"`
	Description     *string  `json:"description"`
	Location        *string  `json:"location"`
	CustomImages    []string `json:"custom_images"`
	PageCount       *int     `json:"page_count"`
	PublicationDate *string  `json:"publication_date"`
}

// PUT /api/books/announcements/:id — owner only
func (h *Handlers) Update(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Identifiant invalide", fiber.StatusBadRequest, nil)
	}
	var body updateBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}

	in := annsvc.UpdateInput{
		Price:           body.Price,
		MarketPrice:     body.MarketPrice,
		Description:     body.Description,
		Location:        body.Location,
		CustomImages:    body.CustomImages,
		PageCount:       body.PageCount,
		PublicationDate: body.PublicationDate,
	}
	if body.Category != nil {
		cat := domain.BookCategory(*body.Category)
		in.Category = &cat
	}
	if body.Condition != nil {
		cond := domain.BookCondition(*body.Condition)
		in.Condition = &cond
	}
	if body.Status != nil {
		st := domain.AnnouncementStatus(*body.Status)
		in.Status = &st
	}

	ann, err := h.Service.Update(c.Context(), uint(id), userID, in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Annonce mise à jour", ann, nil)
}

// DELETE /api/books/announcements/:id — owner only
func (h *Handlers) Delete(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Identifiant invalide", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), uint(id), userID); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Annonce supprimée", fiber.Map{"deleted": true}, nil)
}

// --- helpers ---

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func queryFloat(c *fiber.Ctx, name string) (*float64, string) {
	raw := c.Query(name)
	if raw == "" {
		return nil, ""
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, "Paramètre invalide: " + name
	}
	return &f, ""
}

func queryInt(c *fiber.Ctx, name string) (*int, string) {
	raw := c.Query(name)
	if raw == "" {
		return nil, ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, "Paramètre invalide: " + name
	}
	return &n, ""
}
