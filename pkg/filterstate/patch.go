package filterstate

import (
	"net/url"

	"github.com/matst80/car-finder/pkg/types"
)

// Change is an optional patch entry. Only entries with Present set are
// applied; the zero Change leaves the parameter alone.
type Change[T any] struct {
	Value   T
	Present bool
}

func Set[T any](v T) Change[T] {
	return Change[T]{Value: v, Present: true}
}

// Patch is the input of Store.SetMany.
type Patch struct {
	Make         Change[Value]
	Model        Change[Value]
	Color        Change[Value]
	Transmission Change[Value]
	Condition    Change[Value]
	FuelType     Change[Value]
	DriveType    Change[Value]
	CarType      Change[Value]

	Doors Change[*int]

	PriceMin     Change[*int]
	PriceMax     Change[*int]
	MileageMin   Change[*int]
	MileageMax   Change[*int]
	CylindersMin Change[*int]
	CylindersMax Change[*int]
	YearMin      Change[*int]
	YearMax      Change[*int]

	Search Change[string]
	Vin    Change[string]

	Features       Change[[]Value]
	SafetyFeatures Change[[]Value]

	Ordering Change[types.Ordering]

	Page Change[int]
}

func (p *Patch) single(cat types.Category) *Change[Value] {
	switch cat {
	case types.Makes:
		return &p.Make
	case types.Models:
		return &p.Model
	case types.Colors:
		return &p.Color
	case types.Transmissions:
		return &p.Transmission
	case types.Conditions:
		return &p.Condition
	case types.FuelTypes:
		return &p.FuelType
	case types.DriveTypes:
		return &p.DriveType
	case types.CarTypes:
		return &p.CarType
	}
	return nil
}

func (p *Patch) bound(param string) *Change[*int] {
	switch param {
	case types.ParamPriceMin:
		return &p.PriceMin
	case types.ParamPriceMax:
		return &p.PriceMax
	case types.ParamMileageMin:
		return &p.MileageMin
	case types.ParamMileageMax:
		return &p.MileageMax
	case types.ParamCylindersMin:
		return &p.CylindersMin
	case types.ParamCylindersMax:
		return &p.CylindersMax
	case types.ParamYearMin:
		return &p.YearMin
	case types.ParamYearMax:
		return &p.YearMax
	}
	return nil
}

// PatchFromForm builds a patch from submitted form values. Every key present
// in the form is applied, an empty value clears the parameter. Singles and
// multi values are taken as labels.
func PatchFromForm(form url.Values) Patch {
	p := Patch{}
	for _, cat := range types.SingleCategories {
		if v, ok := form[string(cat)]; ok {
			*p.single(cat) = Set(Label(first(v)))
		}
	}
	for _, param := range types.RangeParams {
		if v, ok := form[param]; ok {
			*p.bound(param) = Set(parseInt(first(v)))
		}
	}
	if v, ok := form[types.ParamDoors]; ok {
		p.Doors = Set(parseInt(first(v)))
	}
	if v, ok := form[types.ParamSearch]; ok {
		p.Search = Set(first(v))
	}
	if v, ok := form[types.ParamVin]; ok {
		p.Vin = Set(first(v))
	}
	if v, ok := form[string(types.Features)]; ok {
		p.Features = Set(Labels(splitMulti(v)...))
	}
	if v, ok := form[string(types.SafetyFeatures)]; ok {
		p.SafetyFeatures = Set(Labels(splitMulti(v)...))
	}
	if v, ok := form[types.ParamOrdering]; ok {
		p.Ordering = Set(types.NormalizeOrdering(first(v)))
	}
	if v, ok := form[types.ParamPage]; ok {
		page := 1
		if n := parseInt(first(v)); n != nil {
			page = *n
		}
		p.Page = Set(page)
	}
	return p
}

func first(v []string) string {
	if len(v) == 0 {
		return ""
	}
	return v[0]
}
