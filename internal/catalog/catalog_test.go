package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesWellFormed(t *testing.T) {
	cats := Categories()
	require.NotEmpty(t, cats)

	for _, c := range cats {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Drinks)
		for _, d := range c.Drinks {
			assert.NotEmpty(t, d.Name)
			assert.Greater(t, d.Units, 0.0, "%s must have positive units", d.Name)
		}
	}
}

func TestLookup(t *testing.T) {
	def := Lookup("Pint of lager")
	require.NotNil(t, def)
	assert.Equal(t, "568ml", def.Volume)
	assert.InDelta(t, 2.3, def.Units, 1e-9)

	assert.Nil(t, Lookup("Flagon of mead"))
	assert.Nil(t, Lookup(""))
}
