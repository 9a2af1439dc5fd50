package types

import (
	"net/url"
	"strconv"
)

// Range bounds are independent, a max without a min is a valid filter.
type Range struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

func (r Range) Empty() bool {
	return r.Min == nil && r.Max == nil
}

// FilterCriteria is the projection of the storefront query string. Singles
// and multi values hold slugs, an empty string means "not set".
type FilterCriteria struct {
	Page int `json:"page"`

	Make         string `json:"make,omitempty"`
	Model        string `json:"model,omitempty"`
	Color        string `json:"color,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	Condition    string `json:"condition,omitempty"`
	FuelType     string `json:"fuel_type,omitempty"`
	DriveType    string `json:"drive_type,omitempty"`
	CarType      string `json:"car_type,omitempty"`

	Doors *int `json:"doors,omitempty"`

	Price     Range `json:"price"`
	Mileage   Range `json:"mileage"`
	Cylinders Range `json:"cylinders"`
	Year      Range `json:"year"`

	Search string `json:"search,omitempty"`
	Vin    string `json:"vin,omitempty"`

	Features       []string `json:"features"`
	SafetyFeatures []string `json:"safety_features"`

	Ordering Ordering `json:"ordering,omitempty"`
}

func IntPtr(v int) *int {
	return &v
}

// Single returns the slug stored for a single valued category.
func (c *FilterCriteria) Single(cat Category) string {
	switch cat {
	case Makes:
		return c.Make
	case Models:
		return c.Model
	case Colors:
		return c.Color
	case Transmissions:
		return c.Transmission
	case Conditions:
		return c.Condition
	case FuelTypes:
		return c.FuelType
	case DriveTypes:
		return c.DriveType
	case CarTypes:
		return c.CarType
	}
	return ""
}

func (c *FilterCriteria) SetSingle(cat Category, value string) {
	switch cat {
	case Makes:
		c.Make = value
	case Models:
		c.Model = value
	case Colors:
		c.Color = value
	case Transmissions:
		c.Transmission = value
	case Conditions:
		c.Condition = value
	case FuelTypes:
		c.FuelType = value
	case DriveTypes:
		c.DriveType = value
	case CarTypes:
		c.CarType = value
	}
}

func (c *FilterCriteria) Multi(cat Category) []string {
	switch cat {
	case Features:
		return c.Features
	case SafetyFeatures:
		return c.SafetyFeatures
	}
	return nil
}

// Bound returns the range bound for a range parameter name.
func (c *FilterCriteria) Bound(param string) *int {
	if p := c.boundRef(param); p != nil {
		return *p
	}
	return nil
}

func (c *FilterCriteria) SetBound(param string, v *int) {
	if p := c.boundRef(param); p != nil {
		*p = v
	}
}

func (c *FilterCriteria) boundRef(param string) **int {
	switch param {
	case ParamPriceMin:
		return &c.Price.Min
	case ParamPriceMax:
		return &c.Price.Max
	case ParamMileageMin:
		return &c.Mileage.Min
	case ParamMileageMax:
		return &c.Mileage.Max
	case ParamCylindersMin:
		return &c.Cylinders.Min
	case ParamCylindersMax:
		return &c.Cylinders.Max
	case ParamYearMin:
		return &c.Year.Min
	case ParamYearMax:
		return &c.Year.Max
	}
	return nil
}

// Values encodes the criteria as canonical query parameters. Page is only
// written when it is past the first page.
func (c *FilterCriteria) Values() url.Values {
	q := url.Values{}
	for _, cat := range SingleCategories {
		if v := c.Single(cat); v != "" {
			q.Set(string(cat), v)
		}
	}
	if c.Doors != nil {
		q.Set(ParamDoors, strconv.Itoa(*c.Doors))
	}
	for _, p := range RangeParams {
		if v := c.Bound(p); v != nil {
			q.Set(p, strconv.Itoa(*v))
		}
	}
	if c.Search != "" {
		q.Set(ParamSearch, c.Search)
	}
	if c.Vin != "" {
		q.Set(ParamVin, c.Vin)
	}
	for _, cat := range MultiCategories {
		for _, v := range c.Multi(cat) {
			q.Add(string(cat), v)
		}
	}
	if c.Ordering.Valid() {
		q.Set(ParamOrdering, string(c.Ordering))
	}
	if c.Page > 1 {
		q.Set(ParamPage, strconv.Itoa(c.Page))
	}
	return q
}
