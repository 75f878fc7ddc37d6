package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"quiltshop-be/internal/logger"
	"quiltshop-be/internal/product"
	"quiltshop-be/internal/utils"

	"go.uber.org/zap"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	opts := product.ListOptions{}

	if v := r.URL.Query().Get("featured"); v != "" {
		opts.FeaturedOnly = utils.ToBool(v)
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Limit = n
		}
	}

	products, err := h.productSvc.GetList(r.Context(), opts)
	if err != nil {
		logger.FromCtx(r.Context()).Error("list products failed", zap.Error(err))
		utils.WriteJSONError(w, "Server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{"products": products}, http.StatusOK)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.WriteJSONError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.productSvc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			utils.WriteJSONError(w, "Not found", http.StatusNotFound)
			return
		}
		logger.FromCtx(r.Context()).Error("get product failed", zap.Error(err))
		utils.WriteJSONError(w, "Server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{"product": p}, http.StatusOK)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input product.NewProduct
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if input.Title == "" || input.Description == "" || input.PriceCents == nil {
		utils.WriteJSONError(w, "Missing fields", http.StatusBadRequest)
		return
	}

	p, err := h.productSvc.Create(r.Context(), input)
	if err != nil {
		// Remaining create failures are value validation errors.
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{"product": p}, http.StatusOK)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.WriteJSONError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	var input product.UpdateProduct
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	p, err := h.productSvc.Update(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			utils.WriteJSONError(w, "Not found", http.StatusNotFound)
			return
		}
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{"product": p}, http.StatusOK)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.WriteJSONError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	if err := h.productSvc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			utils.WriteJSONError(w, "Not found", http.StatusNotFound)
			return
		}
		logger.FromCtx(r.Context()).Error("delete product failed", zap.Error(err))
		utils.WriteJSONError(w, "Server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]bool{"ok": true}, http.StatusOK)
}
