package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"quiltshop-be/internal/auth"
	"quiltshop-be/internal/logger"
	"quiltshop-be/internal/order"
	"quiltshop-be/internal/utils"

	"go.uber.org/zap"
)

func parseListOptions(r *http.Request) order.ListOptions {
	q := r.URL.Query()

	opts := order.ListOptions{
		Status: q.Get("status"),
		Query:  q.Get("q"),
	}

	if v := q.Get("take"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Take = n
		}
	}
	if v := q.Get("cursor"); v != "" {
		if id, err := utils.ToInt64(v); err == nil {
			opts.CursorID = id
		}
	}
	if v := q.Get("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			opts.From = &t
		}
	}
	if v := q.Get("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			opts.To = &t
		}
	}

	return opts
}

func (h *Handler) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	res, err := h.orderSvc.List(r.Context(), parseListOptions(r))
	if err != nil {
		logger.FromCtx(r.Context()).Error("admin list orders failed", zap.Error(err))
		utils.WriteJSONError(w, "Server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, res, http.StatusOK)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFrom(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		utils.WriteJSONError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	o, err := h.orderSvc.UpdateStatus(r.Context(), id, order.Status(req.Status), actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidStatus):
			utils.WriteJSONError(w, "Invalid status", http.StatusBadRequest)
		case errors.Is(err, order.ErrOrderNotFound):
			utils.WriteJSONError(w, "Not found", http.StatusNotFound)
		default:
			logger.FromCtx(r.Context()).Error("update order status failed", zap.Error(err))
			utils.WriteJSONError(w, "Server error", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, map[string]interface{}{"order": o}, http.StatusOK)
}

type trackingRequest struct {
	Carrier    *string `json:"carrier"`
	TrackingNo string  `json:"trackingNo"`
}

func (h *Handler) SetOrderTracking(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFrom(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		utils.WriteJSONError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	var req trackingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	o, err := h.orderSvc.SetTracking(r.Context(), id, req.Carrier, req.TrackingNo, actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrTrackingRequired):
			utils.WriteJSONError(w, "trackingNo required", http.StatusBadRequest)
		case errors.Is(err, order.ErrOrderNotFound):
			utils.WriteJSONError(w, "Not found", http.StatusNotFound)
		default:
			logger.FromCtx(r.Context()).Error("set order tracking failed", zap.Error(err))
			utils.WriteJSONError(w, "Server error", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, map[string]interface{}{"order": o}, http.StatusOK)
}

func (h *Handler) ExportOrdersCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)

	if err := h.orderSvc.ExportCSV(r.Context(), w, r.URL.Query().Get("status")); err != nil {
		logger.FromCtx(r.Context()).Error("csv export failed", zap.Error(err))
	}
}
