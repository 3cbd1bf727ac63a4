// Package prompt assembles the instructions sent to the generative
// model. Assembly is pure string construction: identical inputs always
// yield the identical prompt.
package prompt

import (
	"fmt"
	"strings"

	"github.com/notelytics/notelytics-api/models"
)

// Character budgets applied to document content before assembly. The
// cut is a plain prefix cut and can sever content mid-word; chat
// history is never truncated.
const (
	ChatContentLimit     = 30000
	AnalysisContentLimit = 5000
	ProcessContentLimit  = 8000
)

// Chat builds the free-form study-assistant prompt from the combined
// document content, the prior transcript and the new user message.
func Chat(documentContent string, history []models.Message, message string) string {
	lines := make([]string, 0, len(history))
	for _, msg := range history {
		lines = append(lines, msg.Role+": "+msg.Content)
	}

	return fmt.Sprintf(`You are an AI study assistant. You have access to the following document:

%s

Previous conversation:
%s

User's question: %s

Provide a helpful, detailed response. You can:
- Explain concepts from the document
- Create quiz questions
- Generate flashcards
- Summarize sections
- Answer questions about the content

Be conversational and helpful.`,
		truncate(documentContent, ChatContentLimit),
		strings.Join(lines, "\n"),
		message,
	)
}

// Analysis builds the first structured-analysis prompt: explanation,
// short summary and a three-question quiz.
func Analysis(text string) string {
	return fmt.Sprintf(`Analyze the following text and provide a JSON response with:
1. "explanation": A concise explanation of the key concepts.
2. "summary": A brief summary (max 2 sentences).
3. "quiz": An array of 3 multiple choice questions, each with "question", "options" (array of 4 strings), and "answer" (the correct option string).

Text: "%s"`,
		truncate(text, AnalysisContentLimit),
	)
}

// Process builds the second structured-analysis prompt, which also
// yields key points and flashcards for the given subject and file type.
func Process(text, subject, fileType string) string {
	return fmt.Sprintf(`You are an AI study assistant. Analyze the following %s content for the subject "%s".

Provide a JSON response with:
1. "summary": A concise 2-3 sentence summary of the main concepts
2. "keyPoints": An array of 5-7 key points or important facts
3. "quiz": An array of 3 multiple choice questions with "question", "options" (4 choices), and "answer"
4. "flashcards": An array of 5 flashcards with "front" (question) and "back" (answer)

Content: "%s"

Return ONLY valid JSON, no markdown formatting.`,
		fileType,
		subject,
		truncate(text, ProcessContentLimit),
	)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
