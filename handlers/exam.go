package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/notelytics/notelytics-api/models"
	"github.com/notelytics/notelytics-api/storage"
)

// GET /api/exams?date=YYYY-MM-DD
func (h *Handler) ListExams(w http.ResponseWriter, r *http.Request) {
	var (
		exams []models.Exam
		err   error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		exams, err = h.Exams.OnDate(date)
	} else {
		exams, err = h.Exams.List()
	}
	if err != nil {
		h.Log.Errorw("ListExams: failed to load exams", "error", err)
		http.Error(w, "Failed to fetch exams", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, exams)
}

// POST /api/exams
func (h *Handler) CreateExam(w http.ResponseWriter, r *http.Request) {
	var exam models.Exam
	if err := json.NewDecoder(r.Body).Decode(&exam); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Exams.Add(exam)
	if err != nil {
		if errors.Is(err, storage.ErrExamFieldsRequired) {
			http.Error(w, "Exam subject and date are required", http.StatusBadRequest)
			return
		}
		h.Log.Errorw("CreateExam: failed to create exam", "error", err)
		http.Error(w, "Failed to create exam", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// DELETE /api/exams/{examID}
func (h *Handler) DeleteExam(w http.ResponseWriter, r *http.Request) {
	examID := r.PathValue("examID")

	if err := h.Exams.Delete(examID); err != nil {
		h.Log.Errorw("DeleteExam: failed to delete exam", "id", examID, "error", err)
		http.Error(w, "Failed to delete exam", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
