package storage

// Slot keys mirror the browser local storage layout this service replaced.
// Each key holds one serialized blob covering the whole collection.
const (
	SubjectsKey = "notelytics_subjects"
	LegacyKey   = "notelytics_workspaces"
	ExamsKey    = "exam_schedule"
	LanguageKey = "app_language"
)

// Store is the key-value slot port the persistence services depend on.
// Implementations must treat a missing key as (nil, false, nil).
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Close() error
}
