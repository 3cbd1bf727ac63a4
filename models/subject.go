package models

import "time"

// Message roles. A transcript only ever contains these two.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn in a subject's chat transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Document is one uploaded or pasted text artifact within a subject.
// Content is always plain text; binary formats are converted before upload.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Flashcard is a question/answer study unit. Cards are append-only:
// there is no update operation, only create and bulk-append.
type Flashcard struct {
	ID          string `json:"id"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
}

// Subject is a named study unit owning documents, flashcards and the
// chat transcript.
type Subject struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Documents  []Document  `json:"documents"`
	Flashcards []Flashcard `json:"flashcards"`
	Messages   []Message   `json:"messages"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// LegacyWorkspace is the pre-migration storage shape: one combined
// document blob per workspace. Only read during migration, never written.
type LegacyWorkspace struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	DocumentContent string    `json:"documentContent"`
	Messages        []Message `json:"messages"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
