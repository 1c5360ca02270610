package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPattern_EscapesWildcards(t *testing.T) {
	cases := map[string]string{
		"triage": `%triage%`,
		"_":      `%\_%`,
		"100%":   `%100\%%`,
		`a\b`:    `%a\\b%`,
	}
	for in, want := range cases {
		assert.Equal(t, want, searchPattern(in), in)
	}
}

func TestContainsFold_UsesExplicitEscape(t *testing.T) {
	sql, args, err := containsFold("name", "first_aid").ToSql()
	require.NoError(t, err)
	assert.Equal(t, `name ILIKE ? ESCAPE '\'`, sql)
	assert.Equal(t, []interface{}{`%first\_aid%`}, args)
}
