package sector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, in := range []string{"healthcare", "HEALTHCARE", " Healthcare "} {
		s, err := Parse(in)
		require.NoError(t, err)
		assert.Equal(t, Healthcare, s)
	}

	_, err := Parse("finance")
	assert.ErrorIs(t, err, ErrUnknownSector)
}

func TestRequiredCategoryCounts(t *testing.T) {
	assert.Len(t, CatalogFor(Healthcare).RequiredCategories, 5)
	assert.Len(t, CatalogFor(Agriculture).RequiredCategories, 4)
	assert.Len(t, CatalogFor(Urban).RequiredCategories, 4)
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(Healthcare, "clinical_skills"))
	assert.True(t, ValidCategory(Urban, "DATA_ANALYSIS"))
	assert.False(t, ValidCategory(Urban, "SOIL_SCIENCE"))
}

func TestHumanizeCategory(t *testing.T) {
	assert.Equal(t, "precision agriculture", HumanizeCategory("PRECISION_AGRICULTURE"))
}
