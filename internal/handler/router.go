package handler

import (
	"net/http"

	"quiltshop-be/internal/auth"
	"quiltshop-be/internal/logger"
	custommiddleware "quiltshop-be/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(custommiddleware.IdentityMiddleware)
	r.Use(custommiddleware.RateLimitMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Get("/{id}", h.GetProduct)

			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.RequireRole(auth.RoleAdmin))

				r.Post("/", h.CreateProduct)
				r.Put("/{id}", h.UpdateProduct)
				r.Delete("/{id}", h.DeleteProduct)
			})
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/webhook", h.PaymentWebhook)

			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.RequireRole(auth.RoleUser))

				r.Post("/save", h.CheckoutSave)
				r.Post("/create-session", h.CreateCheckoutSession)
				r.Get("/confirm/{sessionID}", h.ConfirmCheckout)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(custommiddleware.RequireRole(auth.RoleUser))

			r.Get("/mine", h.MyOrders)
		})

		r.Route("/admin/orders", func(r chi.Router) {
			r.Use(custommiddleware.RequireRole(auth.RoleAdmin))

			r.Get("/", h.AdminListOrders)
			r.Get("/export.csv", h.ExportOrdersCSV)
			r.Patch("/{id}/status", h.UpdateOrderStatus)
			r.Patch("/{id}/tracking", h.SetOrderTracking)
		})

		r.Route("/uploads", func(r chi.Router) {
			r.Use(custommiddleware.RequireRole(auth.RoleAdmin))

			r.Post("/", h.UploadImage)
		})
	})

	// Public static serving of uploaded images.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.cfg.UploadDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
