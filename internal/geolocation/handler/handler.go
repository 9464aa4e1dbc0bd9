// Package handler exposes the geolocation lookup endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"minibank/internal/geolocation/models"
	dErrors "minibank/pkg/domain-errors"
	"minibank/pkg/platform/httputil"
	"minibank/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Locator

// Locator resolves an IP address string to a location.
type Locator interface {
	Locate(ctx context.Context, raw string) (models.Geolocation, error)
}

// Handler handles geolocation endpoints.
type Handler struct {
	logger  *slog.Logger
	locator Locator
}

// New creates a geolocation Handler.
func New(locator Locator, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, locator: locator}
}

// Register mounts the geolocation routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/geolocation/{ip}", h.handleLocate)
}

// LocationResponse is the wire shape of a resolved location.
type LocationResponse struct {
	IP        string  `json:"ip"`
	Country   string  `json:"country"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *Handler) handleLocate(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "ip")

	location, err := h.locator.Locate(r.Context(), raw)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnavailable) {
			h.logger.ErrorContext(r.Context(), "geolocation lookup failed",
				"request_id", requestcontext.RequestID(r.Context()),
				"ip", raw,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, LocationResponse{
		IP:        raw,
		Country:   location.Country,
		City:      location.City,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
	})
}
