package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, HTTPStatus(Validation("prix invalide")))
	assert.Equal(t, fiber.StatusNotFound, HTTPStatus(NotFound("Annonce", 42)))
	assert.Equal(t, fiber.StatusUnauthorized, HTTPStatus(Unauthorized("token invalide")))
	assert.Equal(t, fiber.StatusForbidden, HTTPStatus(Forbidden("pas le propriétaire")))
	assert.Equal(t, fiber.StatusConflict, HTTPStatus(Conflict("doublon")))
	assert.Equal(t, fiber.StatusServiceUnavailable, HTTPStatus(External("Google Books", "indisponible")))
	assert.Equal(t, fiber.StatusInternalServerError, HTTPStatus(Database(errors.New("boom"))))
	assert.Equal(t, fiber.StatusInternalServerError, HTTPStatus(errors.New("raw")))
}

func TestMessageHidesInternalCause(t *testing.T) {
	err := Database(errors.New("pq: connection refused"))
	assert.Equal(t, "Erreur de base de données", Message(err))
	// internal cause stays available for logging
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMessageWrappedError(t *testing.T) {
	inner := NotFound("Livre", 7)
	wrapped := fmt.Errorf("resolve: %w", inner)
	assert.Equal(t, "Livre introuvable: 7", Message(wrapped))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, fiber.StatusNotFound, HTTPStatus(wrapped))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("unique violation")
	err := Wrap(KindConflict, "doublon", cause)
	assert.True(t, errors.Is(err, cause))
}
