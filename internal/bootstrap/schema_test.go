package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchema(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(schema).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(schema).WillReturnError(errors.New("permission denied"))

	require.NoError(t, EnsureSchema(context.Background(), mock))
	assert.ErrorContains(t, EnsureSchema(context.Background(), mock), "permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())

	for _, table := range []string{"profiles", "skills", "categories", "projects", "profile_skills",
		"profile_categories", "project_skills", "project_categories", "swipes"} {
		assert.Contains(t, schema, "create table if not exists "+table+" (")
	}
}
