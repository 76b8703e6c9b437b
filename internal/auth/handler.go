package auth

import (
	"encoding/json"
	"net/http"

	"pto-tracker/internal"
	"pto-tracker/internal/transport"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (string, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.Service.Authenticate(dto)
	if err != nil {
		switch err.(type) {
		case ValidationError:
			h.HandleServiceError(w, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed))
			return
		}

		if err == ErrInvalidCredentials {
			h.Logger.Info("login rejected", "email", dto.Email)
			h.HandleServiceError(w, internal.NewUnauthorizedError("Invalid credentials", internal.ErrCodeInvalidCredentials))
			return
		}

		h.Logger.Error("authentication failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// Logout acknowledges a client-side token discard. Tokens are stateless, so
// there is nothing to revoke; the token stays valid until it expires.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "Missing Authorization header")
		return
	}

	if _, err := h.Service.ValidateAccessToken(token); err != nil {
		h.WriteError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AuthMiddleware guards protected routes. On success it attaches only the
// resolved user id to the request context; handlers that need the full user
// record fetch it themselves.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			h.WriteError(w, http.StatusUnauthorized, "Missing Authorization header")
			return
		}

		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			// expired and forged tokens get the same response body; only the
			// internal error code differs
			code := internal.ErrCodeInvalidToken
			if err == ErrTokenExpired {
				code = internal.ErrCodeTokenExpired
			}
			h.Logger.Info("token validation failed", "error", err)
			h.HandleServiceError(w, internal.NewUnauthorizedError("Invalid token", code))
			return
		}

		ctx := internal.ContextWithUserID(r.Context(), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
