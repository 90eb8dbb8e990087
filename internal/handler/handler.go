// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the booking service.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Shivanand-hulikatti/hotel-booking/internal/model"
	"github.com/Shivanand-hulikatti/hotel-booking/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// BookingHandler holds the HTTP handlers for the booking API.
type BookingHandler struct {
	svc *service.BookingService
	log *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc *service.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, log: log}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// decodeRoomID reads and validates a BookingRequest, writing a 400 response
// when the room id is absent or malformed.
func decodeRoomID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var req model.BookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return uuid.Nil, false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && verrs[0].Tag() == "required" {
			writeError(w, http.StatusBadRequest, "roomId is required")
		} else {
			writeError(w, http.StatusBadRequest, "roomId must be a valid UUID")
		}
		return uuid.Nil, false
	}
	return uuid.MustParse(req.RoomID), true
}

// writeServiceError maps booking failure kinds to HTTP statuses.
func (h *BookingHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrBusinessRule):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		h.log.Error("booking request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
	}
	return userID, ok
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// GetBooking handles GET /booking
// Returns the caller's booking and its room.
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	booking, err := h.svc.GetCurrentBooking(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// CreateBooking handles POST /booking
// Books the room given in the body for the caller.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	roomID, ok := decodeRoomID(w, r)
	if !ok {
		return
	}

	id, err := h.svc.CreateBooking(r.Context(), userID, roomID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.BookingResponse{ID: id})
}

// ReassignBooking handles PUT /booking/{bookingId}
// Moves the caller's booking to the room given in the body.
func (h *BookingHandler) ReassignBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	bookingID, err := uuid.Parse(chi.URLParam(r, "bookingId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bookingId must be a valid UUID")
		return
	}
	roomID, ok := decodeRoomID(w, r)
	if !ok {
		return
	}

	id, err := h.svc.ReassignBooking(r.Context(), userID, roomID, bookingID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.BookingResponse{ID: id})
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
