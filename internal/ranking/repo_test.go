package ranking

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunakleague/collabin-backend/internal/domain"
)

func TestRepo_Links(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`select profile_id, skill_id from profile_skills where skill_id = any\(\$1\) order by id`).
		WithArgs([]int64{1, 2}).
		WillReturnRows(pgxmock.NewRows([]string{"profile_id", "skill_id"}).
			AddRow(int64(5), int64(1)).
			AddRow(int64(4), int64(2)))

	links, err := NewRepo(mock).Links(context.Background(), domain.ProfileSkills, []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []domain.TagLink{{OwnerID: 5, TagID: 1}, {OwnerID: 4, TagID: 2}}, links)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_TagIDsAndPool(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`select category_id from project_categories where project_id = \$1 order by id`).
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows([]string{"category_id"}).AddRow(int64(3)))
	mock.ExpectQuery(`select id from projects order by id`).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))

	repo := NewRepo(mock)
	tags, err := repo.TagIDs(context.Background(), domain.ProjectCategories, 9)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, tags)

	ids, err := repo.ProjectIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
