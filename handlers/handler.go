package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/notelytics/notelytics-api/gemini"
	"github.com/notelytics/notelytics-api/storage"
)

// Handler carries the shared dependencies for all HTTP handlers.
type Handler struct {
	Subjects *storage.Subjects
	Exams    *storage.Exams
	Settings *storage.Settings

	// Model is nil when GEMINI_API_KEY is not configured.
	Model         gemini.TextGenerator
	ChatModel     string
	AnalysisModel string

	Log *zap.SugaredLogger
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
