package books

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	booksvc "kitab-backend/internal/application/books"
	"kitab-backend/internal/domain"
	"kitab-backend/internal/infrastructure/googlebooks"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeLookup struct{}

func (fakeLookup) LookupISBN(ctx context.Context, isbn string) (*googlebooks.BookInfo, error) {
	if isbn == "9780132350884" {
		return &googlebooks.BookInfo{ISBN: "9780132350884", Title: "Clean Code"}, nil
	}
	return nil, googlebooks.ErrNotFound
}

func setupBooksApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Book{}))

	h := &Handlers{Service: &booksvc.Service{DB: db, Lookup: fakeLookup{}, DefaultLanguage: "fr"}}
	app := fiber.New()
	g := app.Group("/api/books")
	g.Get("/categories", h.Categories)
	g.Get("/isbn/:isbn", h.LookupISBN)
	g.Get("/:id", h.GetByID)
	return app, db
}

func get(t *testing.T, app *fiber.App, path string) (map[string]interface{}, int) {
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	_ = json.Unmarshal(raw, &out)
	return out, resp.StatusCode
}

func TestCategories(t *testing.T) {
	app, _ := setupBooksApp(t)

	out, code := get(t, app, "/api/books/categories")
	require.Equal(t, fiber.StatusOK, code)
	data := out["data"].(map[string]interface{})
	cats := data["categories"].([]interface{})
	assert.Len(t, cats, 12)
	first := cats[0].(map[string]interface{})
	assert.Equal(t, "mathematics", first["value"])
	assert.Equal(t, "Mathématiques", first["label"])
	conds := data["conditions"].([]interface{})
	assert.Len(t, conds, 5)
}

func TestLookupISBN_PreviewDoesNotPersist(t *testing.T) {
	app, db := setupBooksApp(t)

	out, code := get(t, app, "/api/books/isbn/978-0-13-235088-4")
	require.Equal(t, fiber.StatusOK, code)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "Clean Code", data["title"])

	var count int64
	require.NoError(t, db.Model(&domain.Book{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLookupISBN_NotFound(t *testing.T) {
	app, _ := setupBooksApp(t)
	_, code := get(t, app, "/api/books/isbn/9789961000001")
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestGetByID(t *testing.T) {
	app, db := setupBooksApp(t)
	require.NoError(t, db.Create(&domain.Book{ISBN: "9780132350884", Title: "Clean Code"}).Error)

	out, code := get(t, app, "/api/books/1")
	require.Equal(t, fiber.StatusOK, code)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "9780132350884", data["isbn"])

	_, code = get(t, app, "/api/books/99")
	assert.Equal(t, fiber.StatusNotFound, code)
}
