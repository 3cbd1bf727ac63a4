package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	"github.com/notelytics/notelytics-api/models"
)

// timeNow returns current time (allows for mock in tests)
var timeNow = time.Now

// ErrNameRequired is returned when a subject is created without a name.
var ErrNameRequired = errors.New("subject name is required")

// ErrInvalidRole is returned when a message carries a role other than
// user or assistant.
var ErrInvalidRole = errors.New("message role must be user or assistant")

// Subjects manages the subject collection stored under SubjectsKey.
// Every mutation deserializes the whole collection, applies the change
// and rewrites the slot. A mutex serializes read-modify-write cycles
// within this process; concurrent writers from other processes remain
// last-write-wins on the slot.
type Subjects struct {
	store Store
	log   *zap.SugaredLogger

	mu       sync.Mutex
	migrated bool
}

func NewSubjects(store Store, log *zap.SugaredLogger) *Subjects {
	return &Subjects{store: store, log: log}
}

// List returns all subjects. A missing or unreadable slot reads as an
// empty collection, never as an error; only backend failures propagate.
func (s *Subjects) List() ([]models.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Get returns the subject with the given id, or nil when absent.
func (s *Subjects) Get(id string) (*models.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subjects, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	for i := range subjects {
		if subjects[i].ID == id {
			return &subjects[i], nil
		}
	}
	return nil, nil
}

// Create builds a new subject seeded with a welcome message. It does
// not persist; callers follow up with Save.
func (s *Subjects) Create(name string) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate subject ID: %w", err)
	}

	now := timeNow().UTC()
	return &models.Subject{
		ID:         id,
		Name:       name,
		Documents:  []models.Document{},
		Flashcards: []models.Flashcard{},
		Messages: []models.Message{
			{
				Role:    models.RoleAssistant,
				Content: fmt.Sprintf("Welcome to \"%s\"! Upload documents to get started. I can help you understand concepts, create quizzes, generate flashcards, or answer questions from your materials.", name),
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Save upserts the subject by id, refreshing its UpdatedAt timestamp,
// and returns the stored copy.
func (s *Subjects) Save(subject models.Subject) (models.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subjects, err := s.loadLocked()
	if err != nil {
		return models.Subject{}, err
	}

	subject.UpdatedAt = timeNow().UTC()

	replaced := false
	for i := range subjects {
		if subjects[i].ID == subject.ID {
			subjects[i] = subject
			replaced = true
			break
		}
	}
	if !replaced {
		subjects = append(subjects, subject)
	}

	if err := s.writeLocked(subjects); err != nil {
		return models.Subject{}, err
	}
	return subject, nil
}

// Delete removes the subject and everything it owns. Deleting an
// unknown id leaves the collection unchanged.
func (s *Subjects) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subjects, err := s.loadLocked()
	if err != nil {
		return err
	}

	filtered := subjects[:0]
	for _, subject := range subjects {
		if subject.ID != id {
			filtered = append(filtered, subject)
		}
	}
	return s.writeLocked(filtered)
}

// AddDocument appends a document to the subject along with an assistant
// message announcing it. A missing subject is a silent no-op.
func (s *Subjects) AddDocument(subjectID, name, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subjects, err := s.loadLocked()
	if err != nil {
		return err
	}

	for i := range subjects {
		if subjects[i].ID != subjectID {
			continue
		}
		now := timeNow().UTC()
		subjects[i].Documents = append(subjects[i].Documents, models.Document{
			ID:         uuid.NewString(),
			Name:       name,
			Content:    content,
			UploadedAt: now,
		})
		subjects[i].Messages = append(subjects[i].Messages, models.Message{
			Role:    models.RoleAssistant,
			Content: fmt.Sprintf("I've added \"%s\" to this subject. You can now ask me questions about it!", name),
		})
		subjects[i].UpdatedAt = now
		return s.writeLocked(subjects)
	}
	return nil
}

// RemoveDocument deletes one document from the subject. Missing subject
// or document is a no-op.
func (s *Subjects) RemoveDocument(subjectID, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subjects, err := s.loadLocked()
	if err != nil {
		return err
	}

	for i := range subjects {
		if subjects[i].ID != subjectID {
			continue
		}
		docs := subjects[i].Documents
		filtered := docs[:0]
		for _, doc := range docs {
			if doc.ID != documentID {
				filtered = append(filtered, doc)
			}
		}
		if len(filtered) == len(docs) {
			return nil
		}
		subjects[i].Documents = filtered
		subjects[i].UpdatedAt = timeNow().UTC()
		return s.writeLocked(subjects)
	}
	return nil
}

// AddFlashcards assigns each card a fresh id and appends the batch to
// the subject's deck. A missing subject is a silent no-op.
func (s *Subjects) AddFlashcards(subjectID string, cards []models.Flashcard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subjects, err := s.loadLocked()
	if err != nil {
		return err
	}

	for i := range subjects {
		if subjects[i].ID != subjectID {
			continue
		}
		for _, card := range cards {
			card.ID = uuid.NewString()
			subjects[i].Flashcards = append(subjects[i].Flashcards, card)
		}
		subjects[i].UpdatedAt = timeNow().UTC()
		return s.writeLocked(subjects)
	}
	return nil
}

// AppendMessage appends one chat turn to the subject's transcript.
func (s *Subjects) AppendMessage(subjectID string, message models.Message) error {
	if message.Role != models.RoleUser && message.Role != models.RoleAssistant {
		return ErrInvalidRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	subjects, err := s.loadLocked()
	if err != nil {
		return err
	}

	for i := range subjects {
		if subjects[i].ID != subjectID {
			continue
		}
		subjects[i].Messages = append(subjects[i].Messages, message)
		subjects[i].UpdatedAt = timeNow().UTC()
		return s.writeLocked(subjects)
	}
	return nil
}

func (s *Subjects) loadLocked() ([]models.Subject, error) {
	s.migrateLegacyLocked()

	raw, ok, err := s.store.Get(SubjectsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Subject{}, nil
	}

	var subjects []models.Subject
	if err := json.Unmarshal(raw, &subjects); err != nil {
		s.log.Warnw("treating unreadable subject collection as empty", "error", err)
		return []models.Subject{}, nil
	}

	for i := range subjects {
		normalizeSubject(&subjects[i])
	}
	return subjects, nil
}

func (s *Subjects) writeLocked(subjects []models.Subject) error {
	raw, err := json.Marshal(subjects)
	if err != nil {
		return fmt.Errorf("failed to serialize subjects: %w", err)
	}
	return s.store.Set(SubjectsKey, raw)
}

// migrateLegacyLocked converts the legacy one-document-per-workspace
// collection into subjects. It only fires when legacy data exists and
// no subject collection has been written yet, and it runs at most once
// per process. The legacy slot is kept for safety, never deleted.
func (s *Subjects) migrateLegacyLocked() {
	if s.migrated {
		return
	}
	s.migrated = true

	legacy, ok, err := s.store.Get(LegacyKey)
	if err != nil || !ok {
		return
	}
	if _, exists, err := s.store.Get(SubjectsKey); err != nil || exists {
		return
	}

	var workspaces []models.LegacyWorkspace
	if err := json.Unmarshal(legacy, &workspaces); err != nil {
		s.log.Warnw("legacy workspace migration failed", "error", err)
		return
	}

	subjects := make([]models.Subject, 0, len(workspaces))
	for _, workspace := range workspaces {
		subjects = append(subjects, models.Subject{
			ID:   workspace.ID,
			Name: workspace.Name,
			Documents: []models.Document{
				{
					ID:         uuid.NewString(),
					Name:       workspace.Name,
					Content:    workspace.DocumentContent,
					UploadedAt: workspace.CreatedAt,
				},
			},
			Flashcards: []models.Flashcard{},
			Messages:   workspace.Messages,
			CreatedAt:  workspace.CreatedAt,
			UpdatedAt:  workspace.UpdatedAt,
		})
	}

	if err := s.writeLocked(subjects); err != nil {
		s.log.Warnw("legacy workspace migration failed", "error", err)
		return
	}
	s.log.Infow("migrated legacy workspaces", "count", len(subjects))
}

// normalizeSubject fills optional fields dropped by older writers so
// readers never see nil collections.
func normalizeSubject(subject *models.Subject) {
	if subject.Documents == nil {
		subject.Documents = []models.Document{}
	}
	if subject.Flashcards == nil {
		subject.Flashcards = []models.Flashcard{}
	}
	if subject.Messages == nil {
		subject.Messages = []models.Message{}
	}
}
