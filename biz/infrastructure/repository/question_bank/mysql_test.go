package question_bank

import (
	"context"
	"database/sql"
	"testing"

	"edu-platform/biz/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, parseOptions(sql.NullString{String: `["A","B"]`, Valid: true}))
	assert.Empty(t, parseOptions(sql.NullString{}))
	assert.Empty(t, parseOptions(sql.NullString{String: "not json", Valid: true}))
}

func TestNewMapperFromConfigWithoutDSN(t *testing.T) {
	m, err := NewMapperFromConfig(&config.Config{})
	require.NoError(t, err)

	qs, err := m.FindByTopic(context.Background(), "math", "", 5)
	require.NoError(t, err)
	assert.Empty(t, qs)
	assert.NoError(t, m.Close())
}
