package domain

import (
	"math"
	"strings"
	"time"
)

type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point is finite and inside the lat/lon ranges.
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) ||
		math.IsInf(p.Latitude, 0) || math.IsInf(p.Longitude, 0) {
		return false
	}
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

type LocalReview struct {
	ID          string     `json:"id"`
	CafeID      string     `json:"cafe_id"`
	Rating      int        `json:"rating"`
	ReviewText  string     `json:"review_text"`
	AuthorID    string     `json:"author_id"`
	AuthorEmail string     `json:"author_email,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	PhotoURLs   []string   `json:"photo_urls"`
	Edited      bool       `json:"edited"`
	EditedAt    *time.Time `json:"edited_at,omitempty"`
}

// ExternalListing is a read-only snapshot from the business-search API.
// Coordinates is nil when the API did not return a usable location.
type ExternalListing struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	URL         string    `json:"url,omitempty"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	Coordinates *GeoPoint `json:"coordinates,omitempty"`
}

type AggregatedCafeView struct {
	BlendedRating    float64  `json:"blended_rating"`
	TotalReviewCount int      `json:"total_review_count"`
	DistanceMeters   *float64 `json:"distance_meters"`
	DistanceLabel    string   `json:"distance_label"`
}

type CafeWithDistance struct {
	Listing        ExternalListing
	DistanceMeters float64
}

// Available is false for entries carrying the +Inf proximity sentinel.
func (c CafeWithDistance) Available() bool {
	return !math.IsInf(c.DistanceMeters, 1)
}

type CafeSummary struct {
	Listing ExternalListing    `json:"listing"`
	View    AggregatedCafeView `json:"view"`
}

type CafeDetails struct {
	Listing ExternalListing    `json:"listing"`
	View    AggregatedCafeView `json:"view"`
	Reviews []LocalReview      `json:"reviews"`
}

type Favorite struct {
	UserID    string    `json:"user_id"`
	CafeID    string    `json:"cafe_id"`
	CafeName  string    `json:"cafe_name"`
	CreatedAt time.Time `json:"created_at"`
}

type Schedule struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CafeID    string    `json:"cafe_id"`
	CafeName  string    `json:"cafe_name"`
	VisitAt   time.Time `json:"visit_at"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	EventReviewCreated  = "review_created"
	EventReviewUpdated  = "review_updated"
	EventReviewDeleted  = "review_deleted"
	EventVisitScheduled = "visit_scheduled"
	EventVisitCancelled = "visit_cancelled"
)

type ReviewEvent struct {
	Type      string    `json:"type"`
	ReviewID  string    `json:"review_id"`
	CafeID    string    `json:"cafe_id"`
	AuthorID  string    `json:"author_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

type VisitEvent struct {
	Type       string    `json:"type"`
	ScheduleID string    `json:"schedule_id"`
	UserID     string    `json:"user_id"`
	CafeID     string    `json:"cafe_id"`
	CafeName   string    `json:"cafe_name"`
	VisitAt    time.Time `json:"visit_at"`
	Timestamp  time.Time `json:"timestamp"`
}

// NormalizePhotoURLs merges the photo list and the legacy single-photo field
// into one ordered list without blanks or duplicates.
func NormalizePhotoURLs(photoURLs []string, legacyPhotoURL string) []string {
	normalized := make([]string, 0, len(photoURLs)+1)
	seen := make(map[string]struct{}, len(photoURLs)+1)
	add := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		normalized = append(normalized, u)
	}
	for _, u := range photoURLs {
		add(u)
	}
	add(legacyPhotoURL)
	return normalized
}
