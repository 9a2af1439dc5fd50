package storefront

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matst80/car-finder/pkg/types"
)

func TestBreadcrumb(t *testing.T) {
	assert.Equal(t, []Crumb{
		{Label: "Home", Link: "/home"},
		{Label: "Search", Link: "/search"},
	}, Breadcrumb(types.FilterCriteria{}))

	crumbs := Breadcrumb(types.FilterCriteria{Make: "land-rover", Model: "range-rover"})
	assert.Equal(t, Crumb{Label: "Land Rover", Link: "/search?make=land-rover"}, crumbs[2])
	assert.Equal(t, Crumb{Label: "Range Rover", Link: "/search?make=land-rover&model=range-rover"}, crumbs[3])

	crumbs = Breadcrumb(types.FilterCriteria{Model: "corolla"})
	assert.Equal(t, Crumb{Label: "Corolla", Link: "/search?model=corolla"}, crumbs[2])
}

func TestTabOf(t *testing.T) {
	assert.Equal(t, TabAll, TabOf(""))
	assert.Equal(t, TabNew, TabOf("new"))
	assert.Equal(t, TabUsed, TabOf("used"))
	assert.Equal(t, TabAll, TabOf("certified"))
}
