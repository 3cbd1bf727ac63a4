package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/notelytics/notelytics-api/gemini"
	"github.com/notelytics/notelytics-api/models"
	"github.com/notelytics/notelytics-api/prompt"
)

// POST /api/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message         string           `json:"message"`
		DocumentContent string           `json:"documentContent"`
		History         []models.Message `json:"history"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Log.Warnw("Chat: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if h.Model == nil {
		writeError(w, http.StatusInternalServerError, "GEMINI_API_KEY not found in environment variables")
		return
	}

	text, err := h.Model.GenerateText(r.Context(), h.ChatModel, prompt.Chat(req.DocumentContent, req.History, req.Message))
	if err != nil {
		h.Log.Errorw("Chat: model call failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to process request",
			"details": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": text})
}

// POST /api/analyze
//
// A malformed model reply propagates as an error here, while the
// sibling Process handler degrades to a placeholder instead. The two
// endpoints intentionally keep their historical behaviors.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Log.Warnw("Analyze: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if h.Model == nil {
		writeError(w, http.StatusInternalServerError, "GEMINI_API_KEY is not defined")
		return
	}

	text, err := h.Model.GenerateText(r.Context(), h.AnalysisModel, prompt.Analysis(req.Text))
	if err != nil {
		h.Log.Errorw("Analyze: model call failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	result, err := gemini.ParseAnalysis(text)
	if err != nil {
		h.Log.Errorw("Analyze: unparsable model response", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to parse AI response")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// POST /api/analyze/process
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text     string `json:"text"`
		Subject  string `json:"subject"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Log.Warnw("Process: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if h.Model == nil {
		writeError(w, http.StatusInternalServerError, "GEMINI_API_KEY is not defined")
		return
	}

	text, err := h.Model.GenerateText(r.Context(), h.AnalysisModel, prompt.Process(req.Text, req.Subject, req.FileType))
	if err != nil {
		h.Log.Errorw("Process: model call failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	result, err := gemini.ParseProcessResult(text)
	if err != nil {
		// Never show this user a hard error: degrade to the placeholder.
		h.Log.Warnw("Process: unparsable model response, returning fallback", "error", err)
		writeJSON(w, http.StatusOK, gemini.FallbackProcessResult())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
