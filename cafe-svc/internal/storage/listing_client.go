package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sipspotter/cafe-svc/internal/domain"
)

var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrListingUnavailable = errors.New("listing api unavailable")
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ListingClient talks to the third-party business-search API.
type ListingClient struct {
	BaseURL string
	APIKey  string
	Client  HTTPClient
	Retry   RetryConfig
}

func NewListingClient(baseURL, apiKey string, maxRetries int, client HTTPClient) *ListingClient {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &ListingClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  client,
		Retry:   RetryConfig{MaxAttempts: maxRetries, BaseDelay: 200 * time.Millisecond},
	}
}

type businessPayload struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	ImageURL    string  `json:"image_url"`
	URL         string  `json:"url"`
	Phone       string  `json:"display_phone"`
	Location    struct {
		DisplayAddress []string `json:"display_address"`
	} `json:"location"`
	Coordinates *struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"coordinates"`
}

type searchPayload struct {
	Businesses []businessPayload `json:"businesses"`
	Total      int               `json:"total"`
}

func (b businessPayload) toListing() domain.ExternalListing {
	listing := domain.ExternalListing{
		ID:          b.ID,
		Name:        b.Name,
		Address:     strings.Join(b.Location.DisplayAddress, ", "),
		Phone:       b.Phone,
		ImageURL:    b.ImageURL,
		URL:         b.URL,
		Rating:      b.Rating,
		ReviewCount: b.ReviewCount,
	}
	if c := b.Coordinates; c != nil && c.Latitude != nil && c.Longitude != nil {
		p := domain.GeoPoint{Latitude: *c.Latitude, Longitude: *c.Longitude}
		if p.Valid() {
			listing.Coordinates = &p
		}
	}
	return listing
}

func (c *ListingClient) GetListing(ctx context.Context, id string) (*domain.ExternalListing, error) {
	var payload businessPayload
	endpoint := c.BaseURL + "/businesses/" + url.PathEscape(id)
	if err := c.getJSON(ctx, "get listing "+id, endpoint, &payload); err != nil {
		return nil, err
	}
	listing := payload.toListing()
	return &listing, nil
}

func (c *ListingClient) SearchNearby(ctx context.Context, center domain.GeoPoint, radiusMeters int) ([]domain.ExternalListing, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(center.Latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(center.Longitude, 'f', -1, 64))
	query.Set("radius", strconv.Itoa(radiusMeters))
	query.Set("categories", "cafes")
	query.Set("limit", "50")

	var payload searchPayload
	if err := c.getJSON(ctx, "search listings", c.BaseURL+"/businesses/search?"+query.Encode(), &payload); err != nil {
		return nil, err
	}

	listings := make([]domain.ExternalListing, 0, len(payload.Businesses))
	for _, b := range payload.Businesses {
		listings = append(listings, b.toListing())
	}
	return listings, nil
}

func (c *ListingClient) getJSON(ctx context.Context, operation, endpoint string, out any) error {
	return c.Retry.Do(ctx, operation, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		if c.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return permanent(err)
			}
			return fmt.Errorf("%w: %v", ErrListingUnavailable, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			io.Copy(io.Discard, resp.Body)
			return permanent(ErrListingNotFound)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("%w: status %d", ErrListingUnavailable, resp.StatusCode)
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return permanent(fmt.Errorf("%w: status %d: %s", ErrListingUnavailable, resp.StatusCode, strings.TrimSpace(string(body))))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return permanent(fmt.Errorf("%w: failed to decode response: %v", ErrListingUnavailable, err))
		}
		return nil
	})
}
