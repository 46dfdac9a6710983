package repository

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceTypesByIDsQuery(t *testing.T) {
	query, args, err := serviceTypesByIDsQuery([]string{"st-a", "st-b"})
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, itservice_id, name FROM itservice_service_types WHERE id IN ($1,$2) ORDER BY name", query)
	assert.Equal(t, []any{"st-a", "st-b"}, args)
}

func TestNullableArg_RendersIsNull(t *testing.T) {
	query, args, err := psql.Select("id").From("accounts").
		Where(sq.Eq{"inn": nullableArg(null.StringFrom("7707083893")), "kpp": nullableArg(null.String{})}).
		ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM accounts WHERE inn = $1 AND kpp IS NULL", query)
	assert.Equal(t, []any{"7707083893"}, args)
}
