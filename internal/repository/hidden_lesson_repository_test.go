package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHiddenLessonRepositoryKeys(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewHiddenLessonRepository(db)
	rows := sqlmock.NewRows([]string{"lesson_key"}).AddRow("abc").AddRow("def")
	mock.ExpectQuery("SELECT lesson_key FROM hidden_lessons").
		WillReturnRows(rows)

	keys, err := repo.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "def"}, keys)
}

func TestHiddenLessonRepositoryHideIdempotent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewHiddenLessonRepository(db)
	mock.ExpectExec("INSERT INTO hidden_lessons").
		WithArgs("abc", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Second hide conflicts and affects nothing; still no error.
	mock.ExpectExec("INSERT INTO hidden_lessons").
		WithArgs("abc", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Hide(context.Background(), "abc"))
	require.NoError(t, repo.Hide(context.Background(), "abc"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHiddenLessonRepositoryUnhide(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewHiddenLessonRepository(db)
	mock.ExpectExec("DELETE FROM hidden_lessons WHERE lesson_key").
		WithArgs("abc").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Unhide(context.Background(), "abc"))
}
