package googlebooks

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const volumesBody = `{
  "totalItems": 1,
  "items": [{
    "volumeInfo": {
      "title": "Clean Code",
      "subtitle": "A Handbook of Agile Software Craftsmanship",
      "authors": ["Robert C. Martin"],
      "publisher": "Prentice Hall",
      "publishedDate": "2008-08-01",
      "pageCount": 464,
      "categories": ["Computers"],
      "language": "en",
      "previewLink": "https://books.google.com/preview",
      "infoLink": "https://books.google.com/info",
      "industryIdentifiers": [
        {"type": "ISBN_10", "identifier": "0132350882"},
        {"type": "ISBN_13", "identifier": "9780132350884"}
      ],
      "imageLinks": {"thumbnail": "https://books.google.com/thumb.jpg"}
    }
  }]
}`

func TestLookupISBN_Found(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(volumesBody))
	}))
	defer srv.Close()

	c := &HTTPClient{BaseURL: srv.URL}
	info, err := c.LookupISBN(context.Background(), "9780132350884")
	require.NoError(t, err)
	assert.Equal(t, "isbn:9780132350884", gotQuery)
	assert.Equal(t, "9780132350884", info.ISBN, "ISBN_13 preferred over ISBN_10")
	assert.Equal(t, "Clean Code", info.Title)
	assert.Equal(t, []string{"Robert C. Martin"}, info.Authors)
	assert.Equal(t, 464, info.PageCount)
	assert.Equal(t, "https://books.google.com/thumb.jpg", info.CoverImageURL)
}

func TestLookupISBN_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalItems": 0}`))
	}))
	defer srv.Close()

	c := &HTTPClient{BaseURL: srv.URL}
	_, err := c.LookupISBN(context.Background(), "9789961000001")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLookupISBN_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := &HTTPClient{BaseURL: srv.URL}
	_, err := c.LookupISBN(context.Background(), "9780132350884")
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestLookupISBN_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	c := &HTTPClient{BaseURL: srv.URL}
	_, err := c.LookupISBN(context.Background(), "9780132350884")
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestLookupISBN_APIKeyAppended(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		_, _ = w.Write([]byte(volumesBody))
	}))
	defer srv.Close()

	c := &HTTPClient{BaseURL: srv.URL, APIKey: "secret"}
	_, err := c.LookupISBN(context.Background(), "9780132350884")
	require.NoError(t, err)
	assert.Equal(t, "secret", gotKey)
}
