package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "sipspotter/cafe-svc/internal/api/http"
	"sipspotter/cafe-svc/internal/auth"
	"sipspotter/cafe-svc/internal/domain"
	"sipspotter/cafe-svc/internal/mocks"
	"sipspotter/cafe-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "test-signing-key"

type testServices struct {
	cafes     *mocks.CafeServiceInterface
	reviews   *mocks.ReviewServiceInterface
	favorites *mocks.FavoriteServiceInterface
	schedules *mocks.ScheduleServiceInterface
	qr        *mocks.QRGenerator
}

func setupTestRouter(t *testing.T) (*mux.Router, testServices) {
	svcs := testServices{
		cafes:     mocks.NewCafeServiceInterface(t),
		reviews:   mocks.NewReviewServiceInterface(t),
		favorites: mocks.NewFavoriteServiceInterface(t),
		schedules: mocks.NewScheduleServiceInterface(t),
		qr:        mocks.NewQRGenerator(t),
	}
	handler := httpapi.NewHandler(svcs.cafes, svcs.reviews, svcs.favorites, svcs.schedules, svcs.qr,
		auth.NewVerifier(testSigningKey))
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r, svcs
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.NewVerifier(testSigningKey).Issue(auth.User{ID: userID, Email: userID + "@example.com"}, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHandler_health(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

func TestHandler_getNearbyCafes(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		prepareMocks func(svcs testServices)
		expectedCode int
		expectedBody string
	}{
		{
			name:  "success",
			query: "?lat=51.5&lon=-0.12&radius=1500",
			prepareMocks: func(svcs testServices) {
				svcs.cafes.On("Nearby", mock.Anything, domain.GeoPoint{Latitude: 51.5, Longitude: -0.12}, 1500.0).
					Return([]domain.CafeSummary{{
						Listing: domain.ExternalListing{ID: "cafe-1", Name: "Bean There"},
						View:    domain.AggregatedCafeView{BlendedRating: 4.5, DistanceLabel: "842 m"},
					}}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"distance_label":"842 m"`,
		},
		{
			name:  "default_radius",
			query: "?lat=51.5&lon=-0.12",
			prepareMocks: func(svcs testServices) {
				svcs.cafes.On("Nearby", mock.Anything, mock.Anything, 0.0).Return([]domain.CafeSummary{}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name:         "missing_location",
			query:        "",
			prepareMocks: func(testServices) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "out_of_range_latitude",
			query:        "?lat=120&lon=0",
			prepareMocks: func(testServices) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "bad_radius",
			query:        "?lat=51.5&lon=-0.12&radius=far",
			prepareMocks: func(testServices) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:  "listing_provider_down",
			query: "?lat=51.5&lon=-0.12",
			prepareMocks: func(svcs testServices) {
				svcs.cafes.On("Nearby", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("failed to search listings: %w", service.ErrListingUnavailable)).Once()
			},
			expectedCode: http.StatusBadGateway,
		},
		{
			name:  "service_error",
			query: "?lat=51.5&lon=-0.12",
			prepareMocks: func(svcs testServices) {
				svcs.cafes.On("Nearby", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.New("upstream down")).Once()
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, svcs := setupTestRouter(t)
			testCase.prepareMocks(svcs)

			req := httptest.NewRequest("GET", "/api/cafes"+testCase.query, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_getCafe(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		prepareMocks func(svcs testServices)
		expectedCode int
		expectedBody string
	}{
		{
			name: "with_viewer",
			url:  "/api/cafes/cafe-1?lat=51.5&lon=-0.12",
			prepareMocks: func(svcs testServices) {
				svcs.cafes.On("Details", mock.Anything, "cafe-1", &domain.GeoPoint{Latitude: 51.5, Longitude: -0.12}).
					Return(&domain.CafeDetails{
						Listing: domain.ExternalListing{ID: "cafe-1"},
						View:    domain.AggregatedCafeView{BlendedRating: 3, DistanceLabel: "1.4 km"},
						Reviews: []domain.LocalReview{},
					}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"distance_label":"1.4 km"`,
		},
		{
			name: "without_viewer",
			url:  "/api/cafes/cafe-1",
			prepareMocks: func(svcs testServices) {
				svcs.cafes.On("Details", mock.Anything, "cafe-1", (*domain.GeoPoint)(nil)).
					Return(&domain.CafeDetails{
						View: domain.AggregatedCafeView{DistanceLabel: "Distance unknown"},
					}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"distance_meters":null`,
		},
		{
			name:         "half_location",
			url:          "/api/cafes/cafe-1?lat=51.5",
			prepareMocks: func(testServices) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "not_found",
			url:  "/api/cafes/missing",
			prepareMocks: func(svcs testServices) {
				svcs.cafes.On("Details", mock.Anything, "missing", mock.Anything).
					Return(nil, service.ErrListingNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, svcs := setupTestRouter(t)
			testCase.prepareMocks(svcs)

			req := httptest.NewRequest("GET", testCase.url, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_getCafeQRCode(t *testing.T) {
	router, svcs := setupTestRouter(t)
	svcs.qr.On("Generate", "cafe-1").Return([]byte("\x89PNG fake"), nil).Once()

	req := httptest.NewRequest("GET", "/api/cafes/cafe-1/qrcode", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG fake", recorder.Body.String())
}

func TestHandler_getCafeReviews(t *testing.T) {
	router, svcs := setupTestRouter(t)
	svcs.reviews.On("ListByCafe", mock.Anything, "cafe-1").
		Return([]domain.LocalReview{{ID: "r1", Rating: 5, ReviewText: "Great"}}, nil).Once()

	req := httptest.NewRequest("GET", "/api/cafes/cafe-1/reviews", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var reviews []domain.LocalReview
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &reviews))
	assert.Len(t, reviews, 1)
}

func TestHandler_getRatingDistribution(t *testing.T) {
	router, svcs := setupTestRouter(t)
	svcs.reviews.On("RatingDistribution", mock.Anything, "cafe-1").
		Return(map[string]int{"1": 0, "2": 1, "3": 0, "4": 2, "5": 3}, nil).Once()

	req := httptest.NewRequest("GET", "/api/cafes/cafe-1/reviews/distribution", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"1":0,"2":1,"3":0,"4":2,"5":3}`, recorder.Body.String())
}

func TestHandler_createReview(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		authorized   bool
		prepareMocks func(svcs testServices)
		expectedCode int
		expectedBody string
	}{
		{
			name:       "success",
			payload:    `{"rating":5,"review_text":"Great!","photo_urls":["a.jpg"]}`,
			authorized: true,
			prepareMocks: func(svcs testServices) {
				svcs.reviews.On("Create", mock.Anything, "cafe-1", "user-1", "user-1@example.com",
					service.ReviewInput{Rating: 5, ReviewText: "Great!", PhotoURLs: []string{"a.jpg"}}).
					Return(&domain.LocalReview{ID: "r1", CafeID: "cafe-1", Rating: 5}, nil).Once()
			},
			expectedCode: http.StatusCreated,
			expectedBody: `"rating":5`,
		},
		{
			name:         "unauthorized",
			payload:      `{"rating":5,"review_text":"Great!"}`,
			prepareMocks: func(testServices) {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "invalid_json",
			payload:      `bad json`,
			authorized:   true,
			prepareMocks: func(testServices) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:       "invalid_rating",
			payload:    `{"rating":7,"review_text":"Great!"}`,
			authorized: true,
			prepareMocks: func(svcs testServices) {
				svcs.reviews.On("Create", mock.Anything, "cafe-1", "user-1", mock.Anything, mock.Anything).
					Return(nil, service.ErrInvalidRating).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, svcs := setupTestRouter(t)
			testCase.prepareMocks(svcs)

			req := httptest.NewRequest("POST", "/api/cafes/cafe-1/reviews", bytes.NewBufferString(testCase.payload))
			if testCase.authorized {
				req.Header.Set("Authorization", bearer(t, "user-1"))
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_updateReview(t *testing.T) {
	tests := []struct {
		name         string
		prepareMocks func(svcs testServices)
		expectedCode int
	}{
		{
			name: "success",
			prepareMocks: func(svcs testServices) {
				svcs.reviews.On("Update", mock.Anything, "user-1", "r1", mock.Anything).
					Return(&domain.LocalReview{ID: "r1", Edited: true}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "not_author",
			prepareMocks: func(svcs testServices) {
				svcs.reviews.On("Update", mock.Anything, "user-1", "r1", mock.Anything).
					Return(nil, service.ErrNotReviewAuthor).Once()
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name: "not_found",
			prepareMocks: func(svcs testServices) {
				svcs.reviews.On("Update", mock.Anything, "user-1", "r1", mock.Anything).
					Return(nil, service.ErrReviewNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, svcs := setupTestRouter(t)
			testCase.prepareMocks(svcs)

			req := httptest.NewRequest("PUT", "/api/reviews/r1", bytes.NewBufferString(`{"rating":4,"review_text":"Edited"}`))
			req.Header.Set("Authorization", bearer(t, "user-1"))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestHandler_deleteReview(t *testing.T) {
	router, svcs := setupTestRouter(t)
	svcs.reviews.On("Delete", mock.Anything, "user-1", "r1").Return(nil).Once()

	req := httptest.NewRequest("DELETE", "/api/reviews/r1", nil)
	req.Header.Set("Authorization", bearer(t, "user-1"))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestHandler_favorites(t *testing.T) {
	router, svcs := setupTestRouter(t)
	svcs.favorites.On("Toggle", mock.Anything, "user-1", "cafe-1", "Bean There").Return(true, nil).Once()
	svcs.favorites.On("IsFavorite", mock.Anything, "user-1", "cafe-1").Return(true, nil).Once()
	svcs.favorites.On("List", mock.Anything, "user-1").
		Return([]domain.Favorite{{UserID: "user-1", CafeID: "cafe-1", CafeName: "Bean There"}}, nil).Once()

	req := httptest.NewRequest("POST", "/api/favorites/cafe-1", bytes.NewBufferString(`{"cafe_name":"Bean There"}`))
	req.Header.Set("Authorization", bearer(t, "user-1"))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"cafe_id":"cafe-1","favorite":true}`, recorder.Body.String())

	req = httptest.NewRequest("GET", "/api/favorites/cafe-1", nil)
	req.Header.Set("Authorization", bearer(t, "user-1"))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"cafe_id":"cafe-1","favorite":true}`, recorder.Body.String())

	req = httptest.NewRequest("GET", "/api/favorites", nil)
	req.Header.Set("Authorization", bearer(t, "user-1"))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"cafe_name":"Bean There"`)
}

func TestHandler_schedules(t *testing.T) {
	visitAt := time.Date(2030, 5, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name         string
		method       string
		url          string
		payload      string
		prepareMocks func(svcs testServices)
		expectedCode int
	}{
		{
			name:    "create",
			method:  "POST",
			url:     "/api/cafes/cafe-1/schedules",
			payload: `{"cafe_name":"Bean There","visit_at":"2030-05-01T09:30:00Z"}`,
			prepareMocks: func(svcs testServices) {
				svcs.schedules.On("Add", mock.Anything, "user-1", "cafe-1", "Bean There",
					mock.MatchedBy(func(at time.Time) bool { return at.Equal(visitAt) })).
					Return(&domain.Schedule{ID: "s1", VisitAt: visitAt}, nil).Once()
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:    "create_in_past",
			method:  "POST",
			url:     "/api/cafes/cafe-1/schedules",
			payload: `{"cafe_name":"Bean There","visit_at":"2001-05-01T09:30:00Z"}`,
			prepareMocks: func(svcs testServices) {
				svcs.schedules.On("Add", mock.Anything, "user-1", "cafe-1", "Bean There", mock.Anything).
					Return(nil, service.ErrScheduleInPast).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "list",
			method: "GET",
			url:    "/api/cafes/cafe-1/schedules",
			prepareMocks: func(svcs testServices) {
				svcs.schedules.On("ListForCafe", mock.Anything, "user-1", "cafe-1").
					Return([]domain.Schedule{{ID: "s1"}}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "delete_not_owner",
			method: "DELETE",
			url:    "/api/schedules/s1",
			prepareMocks: func(svcs testServices) {
				svcs.schedules.On("Remove", mock.Anything, "user-1", "s1").Return(service.ErrNotScheduleOwner).Once()
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name:   "delete",
			method: "DELETE",
			url:    "/api/schedules/s1",
			prepareMocks: func(svcs testServices) {
				svcs.schedules.On("Remove", mock.Anything, "user-1", "s1").Return(nil).Once()
			},
			expectedCode: http.StatusNoContent,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, svcs := setupTestRouter(t)
			testCase.prepareMocks(svcs)

			req := httptest.NewRequest(testCase.method, testCase.url, bytes.NewBufferString(testCase.payload))
			req.Header.Set("Authorization", bearer(t, "user-1"))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	_, svcs := setupTestRouter(t)
	handler := httpapi.NewRouter(httpapi.NewHandler(svcs.cafes, svcs.reviews, svcs.favorites, svcs.schedules, svcs.qr,
		auth.NewVerifier(testSigningKey)))

	req := httptest.NewRequest("OPTIONS", "/api/cafes/cafe-1/reviews", nil)
	req.Header.Set("Origin", "https://sipspotter.app")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
}
