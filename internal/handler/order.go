package handler

import (
	"net/http"

	"quiltshop-be/internal/auth"
	"quiltshop-be/internal/logger"
	"quiltshop-be/internal/utils"

	"go.uber.org/zap"
)

// MyOrders returns the caller's order history, newest first.
func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())

	orders, err := h.orderSvc.ListMine(r.Context(), id.ID)
	if err != nil {
		logger.FromCtx(r.Context()).Error("list own orders failed", zap.Error(err))
		utils.WriteJSONError(w, "Server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{"orders": orders}, http.StatusOK)
}
