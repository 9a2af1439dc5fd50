package filterstate

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
	"github.com/matst80/car-finder/pkg/slug"
	"github.com/matst80/car-finder/pkg/types"
)

// rawQuery mirrors the query string. Numbers are kept as strings so that a
// malformed value drops the filter instead of failing the decode.
type rawQuery struct {
	Page string `schema:"page"`

	Make         string `schema:"make"`
	Model        string `schema:"model"`
	Color        string `schema:"color"`
	Transmission string `schema:"transmission"`
	Condition    string `schema:"condition"`
	FuelType     string `schema:"fuel_type"`
	DriveType    string `schema:"drive_type"`
	CarType      string `schema:"car_type"`
	Doors        string `schema:"doors"`

	Search string `schema:"search"`
	Vin    string `schema:"vin"`

	PriceMin     string `schema:"price_min"`
	PriceMax     string `schema:"price_max"`
	MileageMin   string `schema:"mileage_min"`
	MileageMax   string `schema:"mileage_max"`
	CylindersMin string `schema:"cylinders_min"`
	CylindersMax string `schema:"cylinders_max"`
	YearMin      string `schema:"year_min"`
	YearMax      string `schema:"year_max"`

	Features       []string `schema:"features"`
	SafetyFeatures []string `schema:"safety_features"`

	Ordering string `schema:"ordering"`
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// Decode projects query values onto FilterCriteria with defaults applied.
func Decode(q url.Values) types.FilterCriteria {
	raw := rawQuery{}
	// only string fields, nothing can fail
	_ = decoder.Decode(&raw, q)

	c := types.FilterCriteria{
		Page: 1,

		Make:         slug.Slugify(raw.Make),
		Model:        slug.Slugify(raw.Model),
		Color:        slug.Slugify(raw.Color),
		Transmission: slug.Slugify(raw.Transmission),
		Condition:    slug.Slugify(raw.Condition),
		FuelType:     slug.Slugify(raw.FuelType),
		DriveType:    slug.Slugify(raw.DriveType),
		CarType:      slug.Slugify(raw.CarType),
		Doors:        parseInt(raw.Doors),

		Search: strings.TrimSpace(raw.Search),
		Vin:    strings.TrimSpace(raw.Vin),

		Price:     types.Range{Min: parseInt(raw.PriceMin), Max: parseInt(raw.PriceMax)},
		Mileage:   types.Range{Min: parseInt(raw.MileageMin), Max: parseInt(raw.MileageMax)},
		Cylinders: types.Range{Min: parseInt(raw.CylindersMin), Max: parseInt(raw.CylindersMax)},
		Year:      types.Range{Min: parseInt(raw.YearMin), Max: parseInt(raw.YearMax)},

		Features:       splitMulti(raw.Features),
		SafetyFeatures: splitMulti(raw.SafetyFeatures),

		Ordering: types.ParseOrdering(raw.Ordering),
	}
	if p := parseInt(raw.Page); p != nil && *p > 0 {
		c.Page = *p
	}
	return c
}

func parseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// splitMulti accepts repeated keys as well as comma separated values and
// returns the unique slugs in first-seen order. Slugs never contain a comma,
// so a label like "Heated, Cooled Seats" stays one value.
func splitMulti(values []string) []string {
	res := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			s := slug.Slugify(part)
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			res = append(res, s)
		}
	}
	return res
}
