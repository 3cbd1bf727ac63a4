package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
)

// QuizQuestion is one multiple-choice question with four options.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Flashcard is the front/back pair produced by structured analysis.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Analysis is the first structured-analysis result shape.
type Analysis struct {
	Explanation string         `json:"explanation"`
	Summary     string         `json:"summary"`
	Quiz        []QuizQuestion `json:"quiz"`
}

// ProcessResult is the second structured-analysis result shape.
type ProcessResult struct {
	Summary    string         `json:"summary"`
	KeyPoints  []string       `json:"keyPoints"`
	Quiz       []QuizQuestion `json:"quiz"`
	Flashcards []Flashcard    `json:"flashcards"`
}

// ParseAnalysis parses an untrusted model reply into an Analysis. The
// caller decides what a parse failure means; this never substitutes a
// fallback on its own.
func ParseAnalysis(raw string) (*Analysis, error) {
	var out Analysis
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &out); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}
	return &out, nil
}

// ParseProcessResult parses an untrusted model reply into a
// ProcessResult.
func ParseProcessResult(raw string) (*ProcessResult, error) {
	var out ProcessResult
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &out); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}
	return &out, nil
}

// FallbackProcessResult is the canned placeholder substituted when the
// model reply cannot be parsed and the caller opted for degradation
// over a hard error.
func FallbackProcessResult() *ProcessResult {
	return &ProcessResult{
		Summary:    "Content processed successfully. Unable to parse detailed analysis.",
		KeyPoints:  []string{"Content uploaded", "Ready for review"},
		Quiz:       []QuizQuestion{},
		Flashcards: []Flashcard{},
	}
}

// stripCodeFence removes the markdown ```json fence models sometimes
// wrap their reply in.
func stripCodeFence(raw string) string {
	s := strings.ReplaceAll(raw, "```json\n", "")
	s = strings.ReplaceAll(s, "\n```", "")
	return strings.TrimSpace(s)
}
