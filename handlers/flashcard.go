package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/notelytics/notelytics-api/models"
)

// POST /api/subjects/{subjectID}/flashcards
//
// Accepts a batch of cards, typically parsed out of an AI-generated
// analysis, and appends them to the subject's deck.
func (h *Handler) AddFlashcards(w http.ResponseWriter, r *http.Request) {
	subjectID := r.PathValue("subjectID")

	var req struct {
		Cards []models.Flashcard `json:"cards"`
	}
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Cards) == 0 {
		http.Error(w, "At least one flashcard is required", http.StatusBadRequest)
		return
	}
	for _, card := range req.Cards {
		if card.Question == "" || card.Answer == "" {
			http.Error(w, "Each flashcard must have a question and answer", http.StatusBadRequest)
			return
		}
	}

	subject, err := h.Subjects.Get(subjectID)
	if err != nil {
		h.Log.Errorw("AddFlashcards: failed to load subject", "id", subjectID, "error", err)
		http.Error(w, "Failed to fetch subject", http.StatusInternalServerError)
		return
	}
	if subject == nil {
		http.Error(w, fmt.Sprintf("Subject with ID %s not found", subjectID), http.StatusNotFound)
		return
	}

	if err := h.Subjects.AddFlashcards(subjectID, req.Cards); err != nil {
		h.Log.Errorw("AddFlashcards: failed to add flashcards", "id", subjectID, "error", err)
		http.Error(w, "Failed to add flashcards", http.StatusInternalServerError)
		return
	}

	updated, err := h.Subjects.Get(subjectID)
	if err != nil || updated == nil {
		h.Log.Errorw("AddFlashcards: failed to reload subject", "id", subjectID, "error", err)
		http.Error(w, "Failed to fetch subject", http.StatusInternalServerError)
		return
	}

	h.Log.Infow("AddFlashcards: appended flashcards", "id", subjectID, "count", len(req.Cards))
	writeJSON(w, http.StatusCreated, updated)
}
