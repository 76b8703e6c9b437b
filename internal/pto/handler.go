package pto

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pto-tracker/internal"
	"pto-tracker/internal/transport"
)

type ServiceAPI interface {
	GetBalance(userID int64) (*Balance, error)
	ListRequests(userID int64, limit, offset int) ([]*PTORequest, error)
	SubmitRequest(userID int64, dto SubmitRequestDTO) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     service,
	}
}

// GetBalance handles GET /pto/balance.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	balance, err := h.Service.GetBalance(userID)
	if err != nil {
		if err == ErrUserNotFound {
			err = internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, balance)
}

// GetRequests handles GET /pto/requests. Without query params it returns
// every request the user owns, in insertion order.
func (h *Handler) GetRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 0
	offset := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	requests, err := h.Service.ListRequests(userID, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if requests == nil {
		requests = []*PTORequest{}
	}
	h.WriteJSON(w, http.StatusOK, requests)
}

// SubmitRequest handles POST /pto/request.
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SubmitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.SubmitRequest(userID, dto); err != nil {
		if _, ok := err.(ValidationError); ok {
			h.HandleServiceError(w, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed))
			return
		}

		switch err {
		case ErrUserNotFound:
			h.HandleServiceError(w, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound))
		case ErrInsufficientBalance:
			h.HandleServiceError(w, internal.NewValidationError("Insufficient PTO balance", internal.ErrCodeInsufficientBalance))
		default:
			h.HandleServiceError(w, err)
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "PTO request submitted successfully"})
}
