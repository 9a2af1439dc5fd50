// Package draft holds uncommitted filter edits made in the filter modal.
package draft

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matst80/car-finder/pkg/filterstate"
	"github.com/matst80/car-finder/pkg/lookup"
	"github.com/matst80/car-finder/pkg/types"
)

// Draft mirrors the modal fields. Singles and multi values are slugs,
// numeric fields are digit-only strings.
type Draft struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Color        string `json:"color"`
	Transmission string `json:"transmission"`
	Condition    string `json:"condition"`
	FuelType     string `json:"fuel_type"`
	DriveType    string `json:"drive_type"`
	CarType      string `json:"car_type"`

	Doors        string `json:"doors"`
	PriceMin     string `json:"price_min"`
	PriceMax     string `json:"price_max"`
	MileageMin   string `json:"mileage_min"`
	MileageMax   string `json:"mileage_max"`
	CylindersMin string `json:"cylinders_min"`
	CylindersMax string `json:"cylinders_max"`
	YearMin      string `json:"year_min"`
	YearMax      string `json:"year_max"`

	Vin string `json:"vin"`

	Features       []string `json:"features"`
	SafetyFeatures []string `json:"safety_features"`

	Ordering string `json:"ordering"`
}

var numberParams = append([]string{types.ParamDoors}, types.RangeParams...)

func (d *Draft) single(cat types.Category) *string {
	switch cat {
	case types.Makes:
		return &d.Make
	case types.Models:
		return &d.Model
	case types.Colors:
		return &d.Color
	case types.Transmissions:
		return &d.Transmission
	case types.Conditions:
		return &d.Condition
	case types.FuelTypes:
		return &d.FuelType
	case types.DriveTypes:
		return &d.DriveType
	case types.CarTypes:
		return &d.CarType
	}
	return nil
}

func (d *Draft) number(param string) *string {
	switch param {
	case types.ParamDoors:
		return &d.Doors
	case types.ParamPriceMin:
		return &d.PriceMin
	case types.ParamPriceMax:
		return &d.PriceMax
	case types.ParamMileageMin:
		return &d.MileageMin
	case types.ParamMileageMax:
		return &d.MileageMax
	case types.ParamCylindersMin:
		return &d.CylindersMin
	case types.ParamCylindersMax:
		return &d.CylindersMax
	case types.ParamYearMin:
		return &d.YearMin
	case types.ParamYearMax:
		return &d.YearMax
	}
	return nil
}

func (d *Draft) multi(cat types.Category) *[]string {
	switch cat {
	case types.Features:
		return &d.Features
	case types.SafetyFeatures:
		return &d.SafetyFeatures
	}
	return nil
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// FromCriteria seeds a draft from the committed state.
func FromCriteria(c types.FilterCriteria) Draft {
	d := Draft{
		Vin:            c.Vin,
		Features:       slices.Clone(c.Features),
		SafetyFeatures: slices.Clone(c.SafetyFeatures),
		Ordering:       string(c.Ordering),
		Doors:          formatInt(c.Doors),
	}
	for _, cat := range types.SingleCategories {
		*d.single(cat) = c.Single(cat)
	}
	for _, param := range types.RangeParams {
		*d.number(param) = formatInt(c.Bound(param))
	}
	if d.Features == nil {
		d.Features = []string{}
	}
	if d.SafetyFeatures == nil {
		d.SafetyFeatures = []string{}
	}
	return d
}

// Digits drops every character that is not a decimal digit.
func Digits(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

func parseDigits(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// Patch converts the draft into a full SetMany patch. Every field the
// modal owns is present so the store ends up mirroring the draft; search
// and page are left to the store.
func (d *Draft) Patch() filterstate.Patch {
	return filterstate.Patch{
		Make:         filterstate.Set(filterstate.Label(d.Make)),
		Model:        filterstate.Set(filterstate.Label(d.Model)),
		Color:        filterstate.Set(filterstate.Label(d.Color)),
		Transmission: filterstate.Set(filterstate.Label(d.Transmission)),
		Condition:    filterstate.Set(filterstate.Label(d.Condition)),
		FuelType:     filterstate.Set(filterstate.Label(d.FuelType)),
		DriveType:    filterstate.Set(filterstate.Label(d.DriveType)),
		CarType:      filterstate.Set(filterstate.Label(d.CarType)),

		Doors:        filterstate.Set(parseDigits(d.Doors)),
		PriceMin:     filterstate.Set(parseDigits(d.PriceMin)),
		PriceMax:     filterstate.Set(parseDigits(d.PriceMax)),
		MileageMin:   filterstate.Set(parseDigits(d.MileageMin)),
		MileageMax:   filterstate.Set(parseDigits(d.MileageMax)),
		CylindersMin: filterstate.Set(parseDigits(d.CylindersMin)),
		CylindersMax: filterstate.Set(parseDigits(d.CylindersMax)),
		YearMin:      filterstate.Set(parseDigits(d.YearMin)),
		YearMax:      filterstate.Set(parseDigits(d.YearMax)),

		Vin: filterstate.Set(d.Vin),

		Features:       filterstate.Set(filterstate.Labels(d.Features...)),
		SafetyFeatures: filterstate.Set(filterstate.Labels(d.SafetyFeatures...)),

		Ordering: filterstate.Set(types.NormalizeOrdering(d.Ordering)),
	}
}

// ModelsFor lists the models selectable for the draft's make.
func (d *Draft) ModelsFor(v *types.Vocabulary) []types.Option {
	return lookup.ModelsOf(v, d.Make)
}
