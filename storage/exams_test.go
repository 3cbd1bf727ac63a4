package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/notelytics/notelytics-api/models"
)

func newTestExams() (*Exams, *MemoryStore) {
	store := NewMemoryStore()
	return NewExams(store, zap.NewNop().Sugar()), store
}

func TestExamsOnSameDateKeepInsertionOrder(t *testing.T) {
	exams, _ := newTestExams()

	first, err := exams.Add(models.Exam{Subject: "Biology", Date: "2025-06-10", Color: ExamColors[1]})
	require.NoError(t, err)
	second, err := exams.Add(models.Exam{Subject: "Physics", Date: "2025-06-10"})
	require.NoError(t, err)
	_, err = exams.Add(models.Exam{Subject: "History", Date: "2025-06-11"})
	require.NoError(t, err)

	onDate, err := exams.OnDate("2025-06-10")
	require.NoError(t, err)
	require.Len(t, onDate, 2)
	assert.Equal(t, first.ID, onDate[0].ID)
	assert.Equal(t, second.ID, onDate[1].ID)

	require.NoError(t, exams.Delete(first.ID))

	onDate, err = exams.OnDate("2025-06-10")
	require.NoError(t, err)
	require.Len(t, onDate, 1)
	assert.Equal(t, second.ID, onDate[0].ID)
}

func TestExamValidation(t *testing.T) {
	exams, _ := newTestExams()

	_, err := exams.Add(models.Exam{Subject: "", Date: "2025-06-10"})
	assert.ErrorIs(t, err, ErrExamFieldsRequired)

	_, err = exams.Add(models.Exam{Subject: "Biology", Date: ""})
	assert.ErrorIs(t, err, ErrExamFieldsRequired)
}

func TestExamColorFallsBackToPalette(t *testing.T) {
	exams, _ := newTestExams()

	created, err := exams.Add(models.Exam{Subject: "Art", Date: "2025-06-10", Color: "#123456"})
	require.NoError(t, err)
	assert.Equal(t, ExamColors[0], created.Color)

	kept, err := exams.Add(models.Exam{Subject: "Art", Date: "2025-06-10", Color: ExamColors[3]})
	require.NoError(t, err)
	assert.Equal(t, ExamColors[3], kept.Color)
}

func TestExamDeleteUnknownIDIsNoop(t *testing.T) {
	exams, _ := newTestExams()

	created, err := exams.Add(models.Exam{Subject: "Biology", Date: "2025-06-10"})
	require.NoError(t, err)

	require.NoError(t, exams.Delete("no-such-exam"))

	all, err := exams.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)
}

func TestUnreadableExamCollectionReadsAsEmpty(t *testing.T) {
	exams, store := newTestExams()

	require.NoError(t, store.Set(ExamsKey, []byte("not json at all")))

	all, err := exams.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}
