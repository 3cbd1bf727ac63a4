package handlers

import (
	"encoding/json"
	"net/http"
)

// GET /api/settings/language
func (h *Handler) GetLanguage(w http.ResponseWriter, r *http.Request) {
	code, err := h.Settings.Language()
	if err != nil {
		h.Log.Errorw("GetLanguage: failed to load language", "error", err)
		http.Error(w, "Failed to fetch language", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"language": code})
}

// PUT /api/settings/language
func (h *Handler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Language == "" {
		http.Error(w, "Language code is required", http.StatusBadRequest)
		return
	}

	if err := h.Settings.SetLanguage(req.Language); err != nil {
		h.Log.Errorw("SetLanguage: failed to store language", "error", err)
		http.Error(w, "Failed to store language", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"language": req.Language})
}
