package types

// Query string parameter names that are not categories.
const (
	ParamPage         = "page"
	ParamDoors        = "doors"
	ParamSearch       = "search"
	ParamVin          = "vin"
	ParamOrdering     = "ordering"
	ParamPriceMin     = "price_min"
	ParamPriceMax     = "price_max"
	ParamMileageMin   = "mileage_min"
	ParamMileageMax   = "mileage_max"
	ParamCylindersMin = "cylinders_min"
	ParamCylindersMax = "cylinders_max"
	ParamYearMin      = "year_min"
	ParamYearMax      = "year_max"
)

// RangeParams in canonical order.
var RangeParams = []string{
	ParamPriceMin, ParamPriceMax,
	ParamMileageMin, ParamMileageMax,
	ParamCylindersMin, ParamCylindersMax,
	ParamYearMin, ParamYearMax,
}
