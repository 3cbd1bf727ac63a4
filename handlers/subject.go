package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/notelytics/notelytics-api/models"
	"github.com/notelytics/notelytics-api/storage"
)

// GET /api/subjects
func (h *Handler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.Subjects.List()
	if err != nil {
		h.Log.Errorw("ListSubjects: failed to load subjects", "error", err)
		http.Error(w, "Failed to fetch subjects", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, subjects)
}

// POST /api/subjects
func (h *Handler) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	subject, err := h.Subjects.Create(req.Name)
	if err != nil {
		if errors.Is(err, storage.ErrNameRequired) {
			http.Error(w, "Subject name is required", http.StatusBadRequest)
			return
		}
		h.Log.Errorw("CreateSubject: failed to create subject", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	saved, err := h.Subjects.Save(*subject)
	if err != nil {
		h.Log.Errorw("CreateSubject: failed to save subject", "error", err)
		http.Error(w, "Failed to create subject", http.StatusInternalServerError)
		return
	}

	h.Log.Infow("CreateSubject: created subject", "id", saved.ID, "name", saved.Name)
	writeJSON(w, http.StatusCreated, saved)
}

// GET /api/subjects/{subjectID}
func (h *Handler) GetSubject(w http.ResponseWriter, r *http.Request) {
	subjectID := r.PathValue("subjectID")

	subject, err := h.Subjects.Get(subjectID)
	if err != nil {
		h.Log.Errorw("GetSubject: failed to load subject", "id", subjectID, "error", err)
		http.Error(w, "Failed to fetch subject", http.StatusInternalServerError)
		return
	}
	if subject == nil {
		http.Error(w, fmt.Sprintf("Subject with ID %s not found", subjectID), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, subject)
}

// PUT /api/subjects/{subjectID}
func (h *Handler) UpdateSubject(w http.ResponseWriter, r *http.Request) {
	subjectID := r.PathValue("subjectID")

	existing, err := h.Subjects.Get(subjectID)
	if err != nil {
		h.Log.Errorw("UpdateSubject: failed to load subject", "id", subjectID, "error", err)
		http.Error(w, "Failed to fetch subject", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.Error(w, fmt.Sprintf("Subject with ID %s not found", subjectID), http.StatusNotFound)
		return
	}

	var subject models.Subject
	if err := json.NewDecoder(r.Body).Decode(&subject); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	subject.ID = subjectID
	subject.CreatedAt = existing.CreatedAt

	saved, err := h.Subjects.Save(subject)
	if err != nil {
		h.Log.Errorw("UpdateSubject: failed to save subject", "id", subjectID, "error", err)
		http.Error(w, "Failed to update subject", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DELETE /api/subjects/{subjectID}
func (h *Handler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	subjectID := r.PathValue("subjectID")

	if err := h.Subjects.Delete(subjectID); err != nil {
		h.Log.Errorw("DeleteSubject: failed to delete subject", "id", subjectID, "error", err)
		http.Error(w, "Failed to delete subject", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/subjects/{subjectID}/documents
func (h *Handler) AddDocument(w http.ResponseWriter, r *http.Request) {
	subjectID := r.PathValue("subjectID")

	var req struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Content == "" {
		http.Error(w, "Document name and content are required", http.StatusBadRequest)
		return
	}

	subject, err := h.Subjects.Get(subjectID)
	if err != nil {
		h.Log.Errorw("AddDocument: failed to load subject", "id", subjectID, "error", err)
		http.Error(w, "Failed to fetch subject", http.StatusInternalServerError)
		return
	}
	if subject == nil {
		http.Error(w, fmt.Sprintf("Subject with ID %s not found", subjectID), http.StatusNotFound)
		return
	}

	if err := h.Subjects.AddDocument(subjectID, req.Name, req.Content); err != nil {
		h.Log.Errorw("AddDocument: failed to add document", "id", subjectID, "error", err)
		http.Error(w, "Failed to add document", http.StatusInternalServerError)
		return
	}

	updated, err := h.Subjects.Get(subjectID)
	if err != nil || updated == nil {
		h.Log.Errorw("AddDocument: failed to reload subject", "id", subjectID, "error", err)
		http.Error(w, "Failed to fetch subject", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, updated)
}

// DELETE /api/subjects/{subjectID}/documents/{documentID}
func (h *Handler) RemoveDocument(w http.ResponseWriter, r *http.Request) {
	subjectID := r.PathValue("subjectID")
	documentID := r.PathValue("documentID")

	subject, err := h.Subjects.Get(subjectID)
	if err != nil {
		h.Log.Errorw("RemoveDocument: failed to load subject", "id", subjectID, "error", err)
		http.Error(w, "Failed to fetch subject", http.StatusInternalServerError)
		return
	}
	if subject == nil {
		http.Error(w, fmt.Sprintf("Subject with ID %s not found", subjectID), http.StatusNotFound)
		return
	}

	if err := h.Subjects.RemoveDocument(subjectID, documentID); err != nil {
		h.Log.Errorw("RemoveDocument: failed to remove document", "id", subjectID, "documentID", documentID, "error", err)
		http.Error(w, "Failed to remove document", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/subjects/{subjectID}/messages
func (h *Handler) AppendMessage(w http.ResponseWriter, r *http.Request) {
	subjectID := r.PathValue("subjectID")

	var message models.Message
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	subject, err := h.Subjects.Get(subjectID)
	if err != nil {
		h.Log.Errorw("AppendMessage: failed to load subject", "id", subjectID, "error", err)
		http.Error(w, "Failed to fetch subject", http.StatusInternalServerError)
		return
	}
	if subject == nil {
		http.Error(w, fmt.Sprintf("Subject with ID %s not found", subjectID), http.StatusNotFound)
		return
	}

	if err := h.Subjects.AppendMessage(subjectID, message); err != nil {
		if errors.Is(err, storage.ErrInvalidRole) {
			http.Error(w, "Message role must be user or assistant", http.StatusBadRequest)
			return
		}
		h.Log.Errorw("AppendMessage: failed to append message", "id", subjectID, "error", err)
		http.Error(w, "Failed to append message", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
