package handler

import (
	"net/http"
	"time"

	"quiltshop-be/internal/auth"
	"quiltshop-be/internal/config"
	"quiltshop-be/internal/order"
	"quiltshop-be/internal/payment"
	"quiltshop-be/internal/product"
	"quiltshop-be/internal/upload"
	"quiltshop-be/internal/user"
	"quiltshop-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	cfg        *config.Config
	userSvc    user.Service
	productSvc product.Service
	orderSvc   order.Service
	uploadSvc  upload.Service
	gateway    payment.Gateway
}

func NewHandler(
	cfg *config.Config,
	userSvc user.Service,
	productSvc product.Service,
	orderSvc order.Service,
	uploadSvc upload.Service,
	gateway payment.Gateway,
) *Handler {
	return &Handler{
		cfg:        cfg,
		userSvc:    userSvc,
		productSvc: productSvc,
		orderSvc:   orderSvc,
		uploadSvc:  uploadSvc,
		gateway:    gateway,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]bool{"ok": true}, http.StatusOK)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cfg.AppEnv == "production",
		MaxAge:   int(user.SessionMaxAge() / time.Second),
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := utils.ToInt64(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
