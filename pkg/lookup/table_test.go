package lookup

import (
	"testing"

	"github.com/matst80/car-finder/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestBuildResolvesSlugs(t *testing.T) {
	table := Build(types.MockVocabulary())

	id, ok := table.Id(types.Makes, "land-rover")
	assert.True(t, ok)
	assert.Equal(t, 3, id)

	id, ok = table.Id(types.Makes, "Land Rover")
	assert.True(t, ok, "labels are slugged before lookup")
	assert.Equal(t, 3, id)

	id, ok = table.Id(types.Transmissions, "manual")
	assert.True(t, ok)
	assert.Equal(t, 2, id)

	label, ok := table.Label(types.Colors, 2)
	assert.True(t, ok)
	assert.Equal(t, "Midnight Blue", label)

	_, ok = table.Id(types.Colors, "purple")
	assert.False(t, ok)
}

func TestModelIdPrefersMakeScope(t *testing.T) {
	table := Build(types.MockVocabulary())

	id, ok := table.ModelId("toyota", "supra")
	assert.True(t, ok)
	assert.Equal(t, 20, id)

	id, ok = table.ModelId("ford", "supra")
	assert.True(t, ok)
	assert.Equal(t, 11, id)
}

func TestModelIdFallsBackToUnscoped(t *testing.T) {
	table := Build(types.MockVocabulary())

	id, ok := table.ModelId("", "mustang")
	assert.True(t, ok)
	assert.Equal(t, 10, id)

	// make resolves but does not own the model
	id, ok = table.ModelId("toyota", "mustang")
	assert.True(t, ok)
	assert.Equal(t, 10, id)

	// unknown make
	id, ok = table.ModelId("lada", "range-rover")
	assert.True(t, ok)
	assert.Equal(t, 30, id)

	_, ok = table.ModelId("ford", "")
	assert.False(t, ok)
}

func TestNilTableMissesEverything(t *testing.T) {
	var table *Table
	_, ok := table.Id(types.Makes, "ford")
	assert.False(t, ok)
	_, ok = table.ModelId("ford", "mustang")
	assert.False(t, ok)
	_, ok = table.Label(types.Features, 1)
	assert.False(t, ok)
	assert.Equal(t, uint64(0), table.Version())
}

func TestModelsOf(t *testing.T) {
	v := types.MockVocabulary()
	models := ModelsOf(v, "toyota")
	assert.Len(t, models, 2)
	for _, m := range models {
		assert.Equal(t, 2, m.MakeId())
	}
	assert.Len(t, ModelsOf(v, ""), len(v.Models))
	assert.Empty(t, ModelsOf(v, "lada"))
}

func TestCacheRebuildsOnlyOnChange(t *testing.T) {
	c := Cache{}
	v := types.MockVocabulary()

	first := c.Get(v)
	second := c.Get(types.MockVocabulary())
	assert.Same(t, first, second)
	assert.Equal(t, 1, c.Builds())

	changed := types.MockVocabulary()
	changed.Colors = append(changed.Colors, types.Option{Id: 3, Name: "Green"})
	third := c.Get(changed)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, c.Builds())

	assert.Nil(t, c.Get(nil))
}
