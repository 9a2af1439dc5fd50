package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderingClosedSet(t *testing.T) {
	for _, o := range Orderings() {
		assert.Equal(t, o, ParseOrdering(string(o)))
	}
	assert.Equal(t, OrderNone, ParseOrdering("price_asc"))
	assert.Equal(t, OrderNone, ParseOrdering("-year"))
	assert.Equal(t, OrderNone, ParseOrdering(""))
}

func TestNormalizeOrderingAliases(t *testing.T) {
	assert.Equal(t, OrderPrice, NormalizeOrdering("price_asc"))
	assert.Equal(t, OrderMileageDesc, NormalizeOrdering("mileage_desc"))
	assert.Equal(t, OrderCreatedDesc, NormalizeOrdering("-created_at"))
	assert.Equal(t, OrderNone, NormalizeOrdering("default"))
	assert.Equal(t, OrderNone, NormalizeOrdering("cheapest"))
}
