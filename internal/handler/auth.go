package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"quiltshop-be/internal/auth"
	"quiltshop-be/internal/logger"
	"quiltshop-be/internal/user"
	"quiltshop-be/internal/utils"

	"go.uber.org/zap"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	token, u, err := h.userSvc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		var vErr *user.ValidationError
		switch {
		case errors.Is(err, user.ErrEmailExists):
			utils.WriteJSONError(w, "Email already registered", http.StatusConflict)
		case errors.As(err, &vErr):
			utils.WriteJSONError(w, vErr.Msg, http.StatusBadRequest)
		default:
			logger.FromCtx(r.Context()).Error("register failed", zap.Error(err))
			utils.WriteJSONError(w, "Server error", http.StatusInternalServerError)
		}
		return
	}

	h.setSessionCookie(w, token)
	utils.WriteJSON(w, map[string]interface{}{"user": toUserResponse(u)}, http.StatusOK)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	token, u, err := h.userSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.WriteJSONError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		logger.FromCtx(r.Context()).Error("login failed", zap.Error(err))
		utils.WriteJSONError(w, "Server error", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, token)
	utils.WriteJSON(w, map[string]interface{}{"user": toUserResponse(u)}, http.StatusOK)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	utils.WriteJSON(w, map[string]bool{"ok": true}, http.StatusOK)
}

// Me reports the current identity, or null for anonymous callers.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		utils.WriteJSON(w, map[string]interface{}{"user": nil}, http.StatusOK)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{"user": id}, http.StatusOK)
}
