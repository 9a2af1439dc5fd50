package types

// Category is a filter option vocabulary. The value doubles as the query
// string parameter and the backend parameter name.
type Category string

const (
	Makes          Category = "make"
	Models         Category = "model"
	Colors         Category = "color"
	Transmissions  Category = "transmission"
	Conditions     Category = "condition"
	FuelTypes      Category = "fuel_type"
	DriveTypes     Category = "drive_type"
	CarTypes       Category = "car_type"
	Features       Category = "features"
	SafetyFeatures Category = "safety_features"
)

// SingleCategories are the relational filters holding at most one value.
var SingleCategories = []Category{Makes, Models, Colors, Transmissions, Conditions, FuelTypes, DriveTypes, CarTypes}

// MultiCategories are sent as repeated parameters.
var MultiCategories = []Category{Features, SafetyFeatures}

func (c Category) Multi() bool {
	return c == Features || c == SafetyFeatures
}
