package projects

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunakleague/collabin-backend/internal/domain"
)

var projectColumns = []string{"id", "owner_id", "name", "summary", "image_path", "created_on", "skills", "categories"}

func setupRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewRepo(mock), mock
}

func TestRepo_Create(t *testing.T) {
	repo, mock := setupRepo(t)
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`insert into projects`).
		WithArgs(int64(1), "api", "", "", day).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectExec(`delete from project_skills`).WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`insert into project_skills`).WithArgs(int64(5), []int64{7, 8}).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectExec(`delete from project_categories`).WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`where p.id = \$1`).WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(projectColumns).
			AddRow(int64(5), int64(1), "api", "", "", day, []string{"Go", "SQL"}, []string{}))

	p, err := repo.Create(context.Background(), 1, domain.ProjectInput{Name: "api"},
		[]domain.Tag{{ID: 7}, {ID: 8}}, nil, day)
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)
	assert.Equal(t, []string{"Go", "SQL"}, p.Skills)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_CreateUnknownOwner(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`insert into projects`).
		WithArgs(int64(42), "x", "", "", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), 42, domain.ProjectInput{Name: "x"}, nil, nil, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ListByOwner(t *testing.T) {
	repo, mock := setupRepo(t)
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`where p.owner_id = \$1 order by p.id`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(projectColumns).
			AddRow(int64(2), int64(1), "a", "", "", day, []string{}, []string{}).
			AddRow(int64(3), int64(1), "b", "", "", day, []string{}, []string{"Web"}))

	got, err := repo.ListByOwner(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].Name)
	assert.Equal(t, []string{"Web"}, got[1].Categories)
}

func TestRepo_Delete(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec(`delete from projects where id = \$1`).WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`delete from projects where id = \$1`).WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	ok, err := repo.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, ok)
}
