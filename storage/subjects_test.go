package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/notelytics/notelytics-api/models"
)

func newTestSubjects() (*Subjects, *MemoryStore) {
	store := NewMemoryStore()
	return NewSubjects(store, zap.NewNop().Sugar()), store
}

func rawSlot(t *testing.T, store *MemoryStore, key string) []byte {
	t.Helper()
	raw, ok, err := store.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	return raw
}

func TestCreateSaveGetRoundtrip(t *testing.T) {
	subjects, _ := newTestSubjects()

	created, err := subjects.Create("Biology")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	before := created.UpdatedAt
	saved, err := subjects.Save(*created)
	require.NoError(t, err)
	assert.False(t, saved.UpdatedAt.Before(before))

	got, err := subjects.Get(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "Biology", got.Name)
	assert.Empty(t, got.Documents)
	assert.Empty(t, got.Flashcards)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, models.RoleAssistant, got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, `Welcome to "Biology"!`)
}

func TestCreateRequiresName(t *testing.T) {
	subjects, _ := newTestSubjects()

	for _, name := range []string{"", "   "} {
		_, err := subjects.Create(name)
		assert.ErrorIs(t, err, ErrNameRequired)
	}
}

func TestSaveUpsertsByID(t *testing.T) {
	subjects, _ := newTestSubjects()

	created, err := subjects.Create("Chemistry")
	require.NoError(t, err)
	_, err = subjects.Save(*created)
	require.NoError(t, err)

	created.Name = "Organic Chemistry"
	_, err = subjects.Save(*created)
	require.NoError(t, err)

	all, err := subjects.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Organic Chemistry", all[0].Name)
}

func TestDeleteIsIdempotent(t *testing.T) {
	subjects, store := newTestSubjects()

	keep, err := subjects.Create("Keep")
	require.NoError(t, err)
	_, err = subjects.Save(*keep)
	require.NoError(t, err)

	drop, err := subjects.Create("Drop")
	require.NoError(t, err)
	_, err = subjects.Save(*drop)
	require.NoError(t, err)

	require.NoError(t, subjects.Delete(drop.ID))
	afterFirst := rawSlot(t, store, SubjectsKey)

	require.NoError(t, subjects.Delete(drop.ID))
	afterSecond := rawSlot(t, store, SubjectsKey)

	assert.Equal(t, afterFirst, afterSecond)

	all, err := subjects.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)
}

func TestMigrationFromLegacy(t *testing.T) {
	subjects, store := newTestSubjects()

	createdAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2024, 3, 2, 11, 0, 0, 0, time.UTC)
	legacy := []models.LegacyWorkspace{
		{
			ID:              "ws-1",
			Name:            "Bio",
			DocumentContent: "X",
			Messages: []models.Message{
				{Role: models.RoleUser, Content: "hello"},
				{Role: models.RoleAssistant, Content: "hi"},
			},
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
	}
	raw, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, store.Set(LegacyKey, raw))

	all, err := subjects.List()
	require.NoError(t, err)
	require.Len(t, all, 1)

	subject := all[0]
	assert.Equal(t, "ws-1", subject.ID)
	assert.Equal(t, "Bio", subject.Name)
	require.Len(t, subject.Documents, 1)
	assert.Equal(t, "Bio", subject.Documents[0].Name)
	assert.Equal(t, "X", subject.Documents[0].Content)
	assert.True(t, subject.Documents[0].UploadedAt.Equal(createdAt))
	assert.Empty(t, subject.Flashcards)
	assert.Equal(t, legacy[0].Messages, subject.Messages)
	assert.True(t, subject.CreatedAt.Equal(createdAt))
	assert.True(t, subject.UpdatedAt.Equal(updatedAt))

	// Legacy slot is kept as a safety net, never deleted.
	_, ok, err := store.Get(LegacyKey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMigrationSkippedWhenSubjectsExist(t *testing.T) {
	subjects, store := newTestSubjects()

	current := []models.Subject{{ID: "s-1", Name: "Physics"}}
	currentRaw, err := json.Marshal(current)
	require.NoError(t, err)
	require.NoError(t, store.Set(SubjectsKey, currentRaw))

	legacyRaw, err := json.Marshal([]models.LegacyWorkspace{{ID: "ws-1", Name: "Bio", DocumentContent: "X"}})
	require.NoError(t, err)
	require.NoError(t, store.Set(LegacyKey, legacyRaw))

	all, err := subjects.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "s-1", all[0].ID)

	// The stored collection is untouched: legacy data is not merged in.
	assert.Equal(t, currentRaw, rawSlot(t, store, SubjectsKey))
}

func TestAddDocumentMissingSubjectIsNoop(t *testing.T) {
	subjects, store := newTestSubjects()

	created, err := subjects.Create("History")
	require.NoError(t, err)
	_, err = subjects.Save(*created)
	require.NoError(t, err)

	before := rawSlot(t, store, SubjectsKey)
	require.NoError(t, subjects.AddDocument("no-such-id", "notes.txt", "content"))
	assert.Equal(t, before, rawSlot(t, store, SubjectsKey))
}

func TestAddDocumentAppendsAnnouncement(t *testing.T) {
	subjects, _ := newTestSubjects()

	created, err := subjects.Create("History")
	require.NoError(t, err)
	_, err = subjects.Save(*created)
	require.NoError(t, err)

	require.NoError(t, subjects.AddDocument(created.ID, "notes.txt", "the content"))

	got, err := subjects.Get(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	require.Len(t, got.Documents, 1)
	assert.NotEmpty(t, got.Documents[0].ID)
	assert.Equal(t, "notes.txt", got.Documents[0].Name)
	assert.Equal(t, "the content", got.Documents[0].Content)

	require.Len(t, got.Messages, 2)
	last := got.Messages[len(got.Messages)-1]
	assert.Equal(t, models.RoleAssistant, last.Role)
	assert.Contains(t, last.Content, `I've added "notes.txt"`)
}

func TestRemoveDocument(t *testing.T) {
	subjects, store := newTestSubjects()

	created, err := subjects.Create("Math")
	require.NoError(t, err)
	_, err = subjects.Save(*created)
	require.NoError(t, err)
	require.NoError(t, subjects.AddDocument(created.ID, "a.txt", "a"))
	require.NoError(t, subjects.AddDocument(created.ID, "b.txt", "b"))

	got, err := subjects.Get(created.ID)
	require.NoError(t, err)
	require.Len(t, got.Documents, 2)

	require.NoError(t, subjects.RemoveDocument(created.ID, got.Documents[0].ID))

	got, err = subjects.Get(created.ID)
	require.NoError(t, err)
	require.Len(t, got.Documents, 1)
	assert.Equal(t, "b.txt", got.Documents[0].Name)

	// Removing an unknown document leaves the collection unchanged.
	before := rawSlot(t, store, SubjectsKey)
	require.NoError(t, subjects.RemoveDocument(created.ID, "no-such-doc"))
	assert.Equal(t, before, rawSlot(t, store, SubjectsKey))
}

func TestAddFlashcardsAssignsIDs(t *testing.T) {
	subjects, _ := newTestSubjects()

	created, err := subjects.Create("Geo")
	require.NoError(t, err)
	_, err = subjects.Save(*created)
	require.NoError(t, err)

	cards := []models.Flashcard{
		{Question: "Capital of France?", Answer: "Paris"},
		{Question: "Largest ocean?", Answer: "Pacific", Explanation: "By surface area"},
	}
	require.NoError(t, subjects.AddFlashcards(created.ID, cards))

	got, err := subjects.Get(created.ID)
	require.NoError(t, err)
	require.Len(t, got.Flashcards, 2)
	assert.NotEmpty(t, got.Flashcards[0].ID)
	assert.NotEmpty(t, got.Flashcards[1].ID)
	assert.NotEqual(t, got.Flashcards[0].ID, got.Flashcards[1].ID)
	assert.Equal(t, "Paris", got.Flashcards[0].Answer)
	assert.Equal(t, "By surface area", got.Flashcards[1].Explanation)
}

func TestAppendMessageRejectsUnknownRole(t *testing.T) {
	subjects, _ := newTestSubjects()

	err := subjects.AppendMessage("any", models.Message{Role: "system", Content: "nope"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAppendMessage(t *testing.T) {
	subjects, _ := newTestSubjects()

	created, err := subjects.Create("Law")
	require.NoError(t, err)
	_, err = subjects.Save(*created)
	require.NoError(t, err)

	require.NoError(t, subjects.AppendMessage(created.ID, models.Message{Role: models.RoleUser, Content: "what is tort?"}))

	got, err := subjects.Get(created.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "what is tort?", got.Messages[1].Content)
}

func TestUnreadableCollectionReadsAsEmpty(t *testing.T) {
	subjects, store := newTestSubjects()

	require.NoError(t, store.Set(SubjectsKey, []byte("{not json")))

	all, err := subjects.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListNormalizesMissingCollections(t *testing.T) {
	subjects, store := newTestSubjects()

	// Older writers omitted the flashcards field entirely.
	require.NoError(t, store.Set(SubjectsKey, []byte(`[{"id":"s-1","name":"Old"}]`)))

	all, err := subjects.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.NotNil(t, all[0].Documents)
	assert.NotNil(t, all[0].Flashcards)
	assert.NotNil(t, all[0].Messages)
}
