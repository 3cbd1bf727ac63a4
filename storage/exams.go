package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	"github.com/notelytics/notelytics-api/models"
)

// ExamColors is the fixed tag palette. Unknown colors fall back to the
// first entry.
var ExamColors = []string{"#5B8EF5", "#7B5FE8", "#EC4899", "#F59E0B", "#10B981", "#EF4444"}

// ErrExamFieldsRequired is returned when an exam is missing its subject
// label or date.
var ErrExamFieldsRequired = errors.New("exam subject and date are required")

// Exams manages the exam collection stored under ExamsKey, independent
// of the subject store. Exams support create and delete only.
type Exams struct {
	store Store
	log   *zap.SugaredLogger
	mu    sync.Mutex
}

func NewExams(store Store, log *zap.SugaredLogger) *Exams {
	return &Exams{store: store, log: log}
}

// List returns all exams in insertion order.
func (e *Exams) List() ([]models.Exam, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadLocked()
}

// OnDate returns the exams scheduled for the given YYYY-MM-DD date, in
// insertion order.
func (e *Exams) OnDate(date string) ([]models.Exam, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	exams, err := e.loadLocked()
	if err != nil {
		return nil, err
	}

	matched := []models.Exam{}
	for _, exam := range exams {
		if exam.Date == date {
			matched = append(matched, exam)
		}
	}
	return matched, nil
}

// Add validates and persists a new exam, returning it with its
// generated id.
func (e *Exams) Add(exam models.Exam) (*models.Exam, error) {
	if exam.Subject == "" || exam.Date == "" {
		return nil, ErrExamFieldsRequired
	}

	if !validExamColor(exam.Color) {
		exam.Color = ExamColors[0]
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate exam ID: %w", err)
	}
	exam.ID = id

	e.mu.Lock()
	defer e.mu.Unlock()

	exams, err := e.loadLocked()
	if err != nil {
		return nil, err
	}
	exams = append(exams, exam)
	if err := e.writeLocked(exams); err != nil {
		return nil, err
	}
	return &exam, nil
}

// Delete removes the exam with the given id. Unknown ids are a no-op.
func (e *Exams) Delete(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	exams, err := e.loadLocked()
	if err != nil {
		return err
	}

	filtered := exams[:0]
	for _, exam := range exams {
		if exam.ID != id {
			filtered = append(filtered, exam)
		}
	}
	return e.writeLocked(filtered)
}

func (e *Exams) loadLocked() ([]models.Exam, error) {
	raw, ok, err := e.store.Get(ExamsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Exam{}, nil
	}

	var exams []models.Exam
	if err := json.Unmarshal(raw, &exams); err != nil {
		e.log.Warnw("treating unreadable exam collection as empty", "error", err)
		return []models.Exam{}, nil
	}
	return exams, nil
}

func (e *Exams) writeLocked(exams []models.Exam) error {
	raw, err := json.Marshal(exams)
	if err != nil {
		return fmt.Errorf("failed to serialize exams: %w", err)
	}
	return e.store.Set(ExamsKey, raw)
}

func validExamColor(color string) bool {
	for _, known := range ExamColors {
		if color == known {
			return true
		}
	}
	return false
}
