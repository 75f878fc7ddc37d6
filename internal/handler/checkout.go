package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"quiltshop-be/internal/auth"
	"quiltshop-be/internal/logger"
	"quiltshop-be/internal/order"
	"quiltshop-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutSave is phase one of checkout: server-side repricing and atomic
// order materialization. A failure here leaves nothing persisted.
func (h *Handler) CheckoutSave(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())

	var input order.CheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	o, err := h.orderSvc.Checkout(r.Context(), id.ID, input)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			utils.WriteJSONError(w, "No items", http.StatusBadRequest)
		case errors.Is(err, order.ErrNoValidItems):
			utils.WriteJSONError(w, "No valid items", http.StatusBadRequest)
		default:
			logger.FromCtx(r.Context()).Error("checkout save failed", zap.Error(err))
			utils.WriteJSONError(w, "Server error", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"ok":         true,
		"orderId":    o.ID,
		"totalCents": o.TotalCents,
	}, http.StatusOK)
}

type createSessionRequest struct {
	OrderID int64 `json:"orderId"`
}

// CreateCheckoutSession is phase two: hand the saved order to the payment
// provider. The order survives a provider failure and can be paid later.
func (h *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.OrderID <= 0 {
		utils.WriteJSONError(w, "orderId required", http.StatusBadRequest)
		return
	}

	url, err := h.orderSvc.CreatePaymentSession(r.Context(), id.ID, id.Email, req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			utils.WriteJSONError(w, "Not found", http.StatusNotFound)
		case errors.Is(err, order.ErrNotAwaitingPayment):
			utils.WriteJSONError(w, "Order is not awaiting payment", http.StatusBadRequest)
		default:
			logger.FromCtx(r.Context()).Error("create payment session failed", zap.Error(err))
			utils.WriteJSONError(w, "Payment provider error", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, map[string]string{"url": url}, http.StatusOK)
}

// webhookEvent is the provider notification; the order id travels in the
// session's correlation metadata.
type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string `json:"id"`
			Metadata struct {
				OrderID string `json:"orderId"`
			} `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

func (h *Handler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	if err := h.gateway.VerifyWebhook(r); err != nil {
		utils.WriteJSONError(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var event webhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		utils.WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	if event.Type != "checkout.session.completed" {
		// Other event types are acknowledged and ignored.
		utils.WriteJSON(w, map[string]bool{"received": true}, http.StatusOK)
		return
	}

	orderID, err := utils.ToInt64(event.Data.Object.Metadata.OrderID)
	if err != nil || orderID <= 0 {
		utils.WriteJSONError(w, "missing order metadata", http.StatusBadRequest)
		return
	}

	if err := h.orderSvc.HandlePaymentCompleted(r.Context(), orderID); err != nil {
		log.Error("failed to apply payment completion",
			zap.Int64("order_id", orderID), zap.Error(err))
		utils.WriteJSONError(w, "failed to update order", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]bool{"received": true}, http.StatusOK)
}

// ConfirmCheckout is the poll-based reconciliation path, scoped to the
// requesting user.
func (h *Handler) ConfirmCheckout(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())

	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		utils.WriteJSONError(w, "sessionId required", http.StatusBadRequest)
		return
	}

	status, err := h.orderSvc.ConfirmSession(r.Context(), id.ID, sessionID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			utils.WriteJSONError(w, "Not found", http.StatusNotFound)
			return
		}
		logger.FromCtx(r.Context()).Error("confirm session failed", zap.Error(err))
		utils.WriteJSONError(w, "Server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]string{"status": string(status)}, http.StatusOK)
}
