package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/BhautikKhunt0/resin-store/internal/domain"
	"github.com/BhautikKhunt0/resin-store/internal/repository"
	"github.com/BhautikKhunt0/resin-store/internal/validate"
)

type SettingsHandler struct {
	settings repository.SettingsRepository
	timeout  time.Duration
}

func NewSettingsHandler(settings repository.SettingsRepository, timeout time.Duration) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		timeout:  timeout,
	}
}

type SettingsRequestDTO struct {
	WhatsAppNumber string `json:"whatsapp_number"`
	StoreName      string `json:"store_name"`
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	settings, err := h.settings.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNoSettings) {
			// Fresh install, nothing configured yet.
			respondJSON(w, http.StatusOK, &domain.Settings{})
			return
		}
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req SettingsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.WhatsAppNumber != "" {
		if err := validate.Phone(req.WhatsAppNumber); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_whatsapp_number", err.Error())
			return
		}
	}

	settings := &domain.Settings{
		WhatsAppNumber: req.WhatsAppNumber,
		StoreName:      req.StoreName,
	}
	if err := h.settings.UpdateSettings(ctx, settings); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}
