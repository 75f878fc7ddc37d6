package handler

import (
	"net/http"

	"quiltshop-be/internal/logger"
	"quiltshop-be/internal/utils"

	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// UploadImage stores a multipart image (field name "image") and returns its
// public URL.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.WriteJSONError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.WriteJSONError(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := h.uploadSvc.Save(r.Context(), file, header.Filename)
	if err != nil {
		logger.FromCtx(r.Context()).Error("upload failed", zap.Error(err))
		utils.WriteJSONError(w, "Server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]string{"url": url}, http.StatusOK)
}
