package googlebooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound means the API answered but knows no volume for the ISBN. The
// caller falls back to manual entry; this is not a service failure.
var ErrNotFound = errors.New("googlebooks: no volume found for isbn")

// ErrUnavailable wraps transport failures and non-2xx answers so callers can
// distinguish "book not found" from "lookup unavailable".
var ErrUnavailable = errors.New("googlebooks: service unavailable")

// BookInfo is the metadata returned for one ISBN.
type BookInfo struct {
	ISBN          string   `json:"isbn"`
	Title         string   `json:"title"`
	Subtitle      string   `json:"subtitle,omitempty"`
	Authors       []string `json:"authors,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	PublishedDate string   `json:"published_date,omitempty"`
	Description   string   `json:"description,omitempty"`
	PageCount     int      `json:"page_count,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	Language      string   `json:"language,omitempty"`
	CoverImageURL string   `json:"cover_image_url,omitempty"`
	PreviewLink   string   `json:"preview_link,omitempty"`
	InfoLink      string   `json:"info_link,omitempty"`
}

// Lookup resolves a normalized ISBN to book metadata.
type Lookup interface {
	LookupISBN(ctx context.Context, isbn string) (*BookInfo, error)
}

// HTTPClient is a Lookup backed by the Google Books volumes API.
type HTTPClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title               string   `json:"title"`
			Subtitle            string   `json:"subtitle"`
			Authors             []string `json:"authors"`
			Publisher           string   `json:"publisher"`
			PublishedDate       string   `json:"publishedDate"`
			Description         string   `json:"description"`
			PageCount           int      `json:"pageCount"`
			Categories          []string `json:"categories"`
			Language            string   `json:"language"`
			PreviewLink         string   `json:"previewLink"`
			InfoLink            string   `json:"infoLink"`
			IndustryIdentifiers []struct {
				Type       string `json:"type"`
				Identifier string `json:"identifier"`
			} `json:"industryIdentifiers"`
			ImageLinks struct {
				Thumbnail      string `json:"thumbnail"`
				SmallThumbnail string `json:"smallThumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func (c *HTTPClient) LookupISBN(ctx context.Context, isbn string) (*BookInfo, error) {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 10 * time.Second}
	}
	base := c.BaseURL
	if base == "" {
		base = "https://www.googleapis.com/books/v1"
	}
	u := fmt.Sprintf("%s/volumes?q=isbn:%s", base, url.QueryEscape(isbn))
	if c.APIKey != "" {
		u += "&key=" + url.QueryEscape(c.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var data volumesResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	if data.TotalItems == 0 || len(data.Items) == 0 {
		return nil, ErrNotFound
	}

	vi := data.Items[0].VolumeInfo
	info := &BookInfo{
		ISBN:          pickISBN(vi.IndustryIdentifiers, isbn),
		Title:         vi.Title,
		Subtitle:      vi.Subtitle,
		Authors:       vi.Authors,
		Publisher:     vi.Publisher,
		PublishedDate: vi.PublishedDate,
		Description:   vi.Description,
		PageCount:     vi.PageCount,
		Categories:    vi.Categories,
		Language:      vi.Language,
		PreviewLink:   vi.PreviewLink,
		InfoLink:      vi.InfoLink,
	}
	if vi.ImageLinks.Thumbnail != "" {
		info.CoverImageURL = vi.ImageLinks.Thumbnail
	} else {
		info.CoverImageURL = vi.ImageLinks.SmallThumbnail
	}
	return info, nil
}

// pickISBN prefers the ISBN_13 identifier, then ISBN_10, then the query ISBN.
func pickISBN(ids []struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}, fallback string) string {
	for _, id := range ids {
		if id.Type == "ISBN_13" {
			return id.Identifier
		}
	}
	for _, id := range ids {
		if id.Type == "ISBN_10" {
			return id.Identifier
		}
	}
	return fallback
}
