package handlers

import "net/http"

// Routes wires every handler onto a fresh mux. Tests and main share
// this so path parameters resolve identically in both.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	// AI gateway
	mux.HandleFunc("POST /api/chat", h.Chat)
	mux.HandleFunc("POST /api/analyze", h.Analyze)
	mux.HandleFunc("POST /api/analyze/process", h.Process)

	// Subjects
	mux.HandleFunc("GET /api/subjects", h.ListSubjects)
	mux.HandleFunc("POST /api/subjects", h.CreateSubject)
	mux.HandleFunc("GET /api/subjects/{subjectID}", h.GetSubject)
	mux.HandleFunc("PUT /api/subjects/{subjectID}", h.UpdateSubject)
	mux.HandleFunc("DELETE /api/subjects/{subjectID}", h.DeleteSubject)

	// Documents
	mux.HandleFunc("POST /api/subjects/{subjectID}/documents", h.AddDocument)
	mux.HandleFunc("DELETE /api/subjects/{subjectID}/documents/{documentID}", h.RemoveDocument)

	// Flashcards and chat transcript
	mux.HandleFunc("POST /api/subjects/{subjectID}/flashcards", h.AddFlashcards)
	mux.HandleFunc("POST /api/subjects/{subjectID}/messages", h.AppendMessage)

	// Exam schedule
	mux.HandleFunc("GET /api/exams", h.ListExams)
	mux.HandleFunc("POST /api/exams", h.CreateExam)
	mux.HandleFunc("DELETE /api/exams/{examID}", h.DeleteExam)

	// Settings
	mux.HandleFunc("GET /api/settings/language", h.GetLanguage)
	mux.HandleFunc("PUT /api/settings/language", h.SetLanguage)

	return mux
}
