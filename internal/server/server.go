// Package server exposes the marketplace utility API: city autocomplete,
// distance calculation, appointment calendar export and image asset
// management.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/nursultantorobaev/selfhub-services/internal/auth"
	"github.com/nursultantorobaev/selfhub-services/internal/cities"
	"github.com/nursultantorobaev/selfhub-services/internal/geo"
	"github.com/nursultantorobaev/selfhub-services/internal/ics"
	"github.com/nursultantorobaev/selfhub-services/internal/metrics"
	"github.com/nursultantorobaev/selfhub-services/internal/repository"
	"github.com/nursultantorobaev/selfhub-services/internal/storage"
)

// maxRequestBytes bounds upload request bodies; slightly above the image
// limit so an oversized payload is rejected with the right error instead of
// a connection reset.
const maxRequestBytes = storage.MaxUploadBytes + 1<<20

// Server holds the handler dependencies.
type Server struct {
	log       *slog.Logger
	repo      repository.Interface
	cities    *cities.Directory
	assets    *storage.Manager
	metrics   *metrics.Metrics
	jwtSecret string
}

// New creates an API server over the given collaborators.
func New(
	log *slog.Logger,
	repo repository.Interface,
	directory *cities.Directory,
	assets *storage.Manager,
	appMetrics *metrics.Metrics,
	jwtSecret string,
) *Server {
	return &Server{
		log:       log,
		repo:      repo,
		cities:    directory,
		assets:    assets,
		metrics:   appMetrics,
		jwtSecret: jwtSecret,
	}
}

// Register mounts the API routes on the mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/cities", s.handleCities)
	mux.HandleFunc("GET /v1/distance", s.handleDistance)
	mux.HandleFunc("GET /v1/appointments/{id}/calendar.ics", s.handleCalendarExport)
	mux.HandleFunc("POST /v1/images/{category}", s.handleImageUpload)
	mux.HandleFunc("DELETE /v1/images/{category}", s.handleImageRemove)
}

// handleCities serves the autocomplete endpoint. Queries below the minimum
// length yield an empty list, not an error.
func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	matches := s.cities.Filter(r.URL.Query().Get("q"))
	if matches == nil {
		matches = []string{}
	}

	s.writeJSON(r, w, http.StatusOK, map[string]any{"cities": matches})
}

// handleDistance computes the formatted Haversine distance between two
// points given as from_lat/from_lon/to_lat/to_lon query parameters.
func (s *Server) handleDistance(w http.ResponseWriter, r *http.Request) {
	coords := make([]float64, 4)
	for i, name := range []string{"from_lat", "from_lon", "to_lat", "to_lon"} {
		value, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
		if err != nil {
			s.writeError(r, w, http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
			return
		}
		coords[i] = value
	}

	miles, err := geo.Distance(coords[0], coords[1], coords[2], coords[3])
	if err != nil {
		s.writeError(r, w, http.StatusBadRequest, err.Error())
		return
	}

	display, err := geo.FormatDistance(miles)
	if err != nil {
		s.writeError(r, w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(r, w, http.StatusOK, map[string]any{"miles": miles, "display": display})
}

// handleCalendarExport fetches the appointment, generates its iCalendar
// document and serves it as a download. Nothing is written on failure, so
// the client never receives a partial file.
func (s *Server) handleCalendarExport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeError(r, w, http.StatusBadRequest, "invalid appointment id")
		return
	}

	appt, err := s.repo.FetchAppointment(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.writeError(r, w, http.StatusNotFound, "appointment not found")
			return
		}
		s.log.ErrorContext(r.Context(), "Failed to fetch appointment", "id", id, "error", err)
		s.writeError(r, w, http.StatusInternalServerError, "failed to load appointment")
		return
	}

	event, err := ics.BuildFromAppointment(appt)
	if err == nil {
		var document string
		document, err = ics.Generate(event)
		if err == nil {
			filename := ics.Filename(appt.ServiceName, appt.BusinessName, event.Start)
			w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
			s.metrics.CalendarExports.WithLabelValues("success").Inc()
			if _, err = io.WriteString(w, document); err != nil {
				s.log.ErrorContext(r.Context(), "Failed to write calendar response", "error", err)
			}
			return
		}
	}

	s.log.ErrorContext(r.Context(), "Calendar export failed", "id", id, "error", err)
	s.metrics.CalendarExports.WithLabelValues("failure").Inc()
	s.writeError(r, w, http.StatusInternalServerError, "calendar export failed")
}

// handleImageUpload validates and stores a multipart image upload, replying
// with the public URL of the stored asset.
func (s *Server) handleImageUpload(w http.ResponseWriter, r *http.Request) {
	category, err := storage.ParseCategory(r.PathValue("category"))
	if err != nil {
		s.writeError(r, w, http.StatusBadRequest, err.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(r, w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(r, w, http.StatusBadRequest, "failed to read file")
		return
	}

	owner, err := auth.ResolveOwner(r.FormValue("owner_id"), r.Header.Get("Authorization"), s.jwtSecret)
	if err != nil {
		s.metrics.ImagesUploaded.WithLabelValues(string(category), "failure").Inc()
		s.writeError(r, w, http.StatusUnauthorized, "authentication required")
		return
	}

	url, err := s.assets.Upload(r.Context(), storage.UploadInput{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
		Category:    category,
		OwnerID:     owner,
	})
	if err != nil {
		s.metrics.ImagesUploaded.WithLabelValues(string(category), "failure").Inc()
		s.writeError(r, w, uploadStatus(err), err.Error())
		return
	}

	s.metrics.ImagesUploaded.WithLabelValues(string(category), "success").Inc()
	s.writeJSON(r, w, http.StatusCreated, map[string]any{"url": url})
}

// handleImageRemove deletes the asset behind the given public URL.
// Failures are reported to the caller, who may treat cleanup as
// best-effort and ignore them.
func (s *Server) handleImageRemove(w http.ResponseWriter, r *http.Request) {
	category, err := storage.ParseCategory(r.PathValue("category"))
	if err != nil {
		s.writeError(r, w, http.StatusBadRequest, err.Error())
		return
	}

	assetURL := r.URL.Query().Get("url")
	if assetURL == "" {
		s.writeError(r, w, http.StatusBadRequest, "missing url parameter")
		return
	}

	if err = s.assets.Remove(r.Context(), assetURL, category); err != nil {
		if errors.Is(err, storage.ErrInvalidAssetURL) {
			s.writeError(r, w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.ErrorContext(r.Context(), "Asset removal failed", "url", assetURL, "error", err)
		s.writeError(r, w, http.StatusBadGateway, "asset removal failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// uploadStatus maps upload validation and delegation errors to HTTP codes.
func uploadStatus(err error) int {
	switch {
	case errors.Is(err, storage.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, storage.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, storage.ErrUnauthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) writeJSON(r *http.Request, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.ErrorContext(r.Context(), "failed to write reply", "error", err)
	}
}

func (s *Server) writeError(r *http.Request, w http.ResponseWriter, status int, message string) {
	s.writeJSON(r, w, status, map[string]any{"error": message})
}
