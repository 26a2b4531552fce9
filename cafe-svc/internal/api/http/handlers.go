package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"sipspotter/cafe-svc/internal/auth"
	"sipspotter/cafe-svc/internal/domain"
	"sipspotter/cafe-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Cafes     service.CafeServiceInterface
	Reviews   service.ReviewServiceInterface
	Favorites service.FavoriteServiceInterface
	Schedules service.ScheduleServiceInterface
	QR        service.QRGenerator
	Auth      *auth.Verifier
}

func NewHandler(
	cafes service.CafeServiceInterface,
	reviews service.ReviewServiceInterface,
	favorites service.FavoriteServiceInterface,
	schedules service.ScheduleServiceInterface,
	qr service.QRGenerator,
	verifier *auth.Verifier,
) *Handler {
	return &Handler{
		Cafes:     cafes,
		Reviews:   reviews,
		Favorites: favorites,
		Schedules: schedules,
		QR:        qr,
		Auth:      verifier,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	r.HandleFunc("/api/cafes", h.getNearbyCafes).Methods("GET")
	r.HandleFunc("/api/cafes/{cafeId}", h.getCafe).Methods("GET")
	r.HandleFunc("/api/cafes/{cafeId}/qrcode", h.getCafeQRCode).Methods("GET")
	r.HandleFunc("/api/cafes/{cafeId}/reviews", h.getCafeReviews).Methods("GET")
	r.HandleFunc("/api/cafes/{cafeId}/reviews/distribution", h.getRatingDistribution).Methods("GET")

	r.Handle("/api/cafes/{cafeId}/reviews", h.authed(h.createReview)).Methods("POST")
	r.Handle("/api/reviews/{reviewId}", h.authed(h.updateReview)).Methods("PUT")
	r.Handle("/api/reviews/{reviewId}", h.authed(h.deleteReview)).Methods("DELETE")

	r.Handle("/api/favorites", h.authed(h.listFavorites)).Methods("GET")
	r.Handle("/api/favorites/{cafeId}", h.authed(h.getFavorite)).Methods("GET")
	r.Handle("/api/favorites/{cafeId}", h.authed(h.toggleFavorite)).Methods("POST")

	r.Handle("/api/cafes/{cafeId}/schedules", h.authed(h.listSchedules)).Methods("GET")
	r.Handle("/api/cafes/{cafeId}/schedules", h.authed(h.createSchedule)).Methods("POST")
	r.Handle("/api/schedules/{scheduleId}", h.authed(h.deleteSchedule)).Methods("DELETE")
}

func (h *Handler) authed(fn http.HandlerFunc) http.Handler {
	return h.Auth.Middleware(fn)
}

func (h *Handler) getNearbyCafes(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerLocation(r)
	if err != nil || viewer == nil {
		http.Error(w, "lat and lon query parameters are required", http.StatusBadRequest)
		return
	}

	var radius float64
	if raw := r.URL.Query().Get("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "Invalid 'radius' value: "+raw, http.StatusBadRequest)
			return
		}
	}

	cafes, err := h.Cafes.Nearby(r.Context(), *viewer, radius)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cafes)
}

func (h *Handler) getCafe(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerLocation(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	details, err := h.Cafes.Details(r.Context(), mux.Vars(r)["cafeId"], viewer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *Handler) getCafeQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.QR.Generate(mux.Vars(r)["cafeId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) getCafeReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.ListByCafe(r.Context(), mux.Vars(r)["cafeId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *Handler) getRatingDistribution(w http.ResponseWriter, r *http.Request) {
	distribution, err := h.Reviews.RatingDistribution(r.Context(), mux.Vars(r)["cafeId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, distribution)
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	var input service.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	review, err := h.Reviews.Create(r.Context(), mux.Vars(r)["cafeId"], user.ID, user.Email, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *Handler) updateReview(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	var input service.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	review, err := h.Reviews.Update(r.Context(), user.ID, mux.Vars(r)["reviewId"], input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (h *Handler) deleteReview(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	if err := h.Reviews.Delete(r.Context(), user.ID, mux.Vars(r)["reviewId"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	favorites, err := h.Favorites.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, favorites)
}

func (h *Handler) getFavorite(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	cafeID := mux.Vars(r)["cafeId"]

	favorite, err := h.Favorites.IsFavorite(r.Context(), user.ID, cafeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"cafe_id": cafeID, "favorite": favorite})
}

func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	cafeID := mux.Vars(r)["cafeId"]

	var payload struct {
		CafeName string `json:"cafe_name"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
	}

	favorite, err := h.Favorites.Toggle(r.Context(), user.ID, cafeID, payload.CafeName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"cafe_id": cafeID, "favorite": favorite})
}

func (h *Handler) listSchedules(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	schedules, err := h.Schedules.ListForCafe(r.Context(), user.ID, mux.Vars(r)["cafeId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedules)
}

func (h *Handler) createSchedule(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	var payload struct {
		CafeName string    `json:"cafe_name"`
		VisitAt  time.Time `json:"visit_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	schedule, err := h.Schedules.Add(r.Context(), user.ID, mux.Vars(r)["cafeId"], payload.CafeName, payload.VisitAt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, schedule)
}

func (h *Handler) deleteSchedule(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	if err := h.Schedules.Remove(r.Context(), user.ID, mux.Vars(r)["scheduleId"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

var errBadLocation = errors.New("lat and lon must both be valid coordinates")

// viewerLocation reads the optional lat/lon query pair. It returns nil when
// neither is given.
func viewerLocation(r *http.Request) (*domain.GeoPoint, error) {
	latRaw, lonRaw := r.URL.Query().Get("lat"), r.URL.Query().Get("lon")
	if latRaw == "" && lonRaw == "" {
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(latRaw, 64)
	lon, lonErr := strconv.ParseFloat(lonRaw, 64)
	if latErr != nil || lonErr != nil {
		return nil, errBadLocation
	}

	p := domain.GeoPoint{Latitude: lat, Longitude: lon}
	if !p.Valid() {
		return nil, errBadLocation
	}
	return &p, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("ERROR: Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrEmptyReview),
		errors.Is(err, service.ErrMissingCafe),
		errors.Is(err, service.ErrScheduleInPast),
		errors.Is(err, service.ErrInvalidLocation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrNotReviewAuthor),
		errors.Is(err, service.ErrNotScheduleOwner):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrScheduleNotFound),
		errors.Is(err, service.ErrListingNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrListingUnavailable):
		log.Printf("ERROR: %v", err)
		http.Error(w, "listing provider unavailable", http.StatusBadGateway)
	default:
		log.Printf("ERROR: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
