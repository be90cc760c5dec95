package messages

import (
	"strconv"

	msgsvc "kitab-backend/internal/application/messages"
	"kitab-backend/internal/middleware"
	"kitab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *msgsvc.Service
}

// POST /api/messages — 201
func (h *Handlers) Send(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	var body msgsvc.SendInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Corps de requête invalide", fiber.StatusBadRequest, nil)
	}
	msg, err := h.Service.Send(c.Context(), userID, body)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Message envoyé", msg, nil)
}

// GET /api/messages/conversations
func (h *Handlers) Conversations(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	convos, err := h.Service.Conversations(c.Context(), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Conversations récupérées", convos, nil)
}

// GET /api/messages/announcement/:id/with/:user_id
func (h *Handlers) Thread(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	annID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Identifiant invalide", fiber.StatusBadRequest, nil)
	}
	peerID, err := strconv.ParseUint(c.Params("user_id"), 10, 64)
	if err != nil {
		return response.Error(c, "Identifiant invalide", fiber.StatusBadRequest, nil)
	}
	msgs, err := h.Service.Thread(c.Context(), userID, uint(annID), uint(peerID))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Messages récupérés", msgs, nil)
}

// PATCH /api/messages/:id/read
func (h *Handlers) MarkRead(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "Authentification requise")
	}
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Identifiant invalide", fiber.StatusBadRequest, nil)
	}
	msg, err := h.Service.MarkRead(c.Context(), uint(id), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Message marqué comme lu", msg, nil)
}
