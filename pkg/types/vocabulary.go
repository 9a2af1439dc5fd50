package types

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Option is one selectable value of a vocabulary. Some backend tables name
// the label "name", others "type".
type Option struct {
	Id   int     `json:"id"`
	Name string  `json:"name,omitempty"`
	Type string  `json:"type,omitempty"`
	Make *Option `json:"make,omitempty"`
}

func (o Option) Label() string {
	if o.Name != "" {
		return o.Name
	}
	return o.Type
}

// MakeId is the owning make of a model option, 0 when unknown.
func (o Option) MakeId() int {
	if o.Make == nil {
		return 0
	}
	return o.Make.Id
}

// Vocabulary is the snapshot returned by the filters endpoint.
type Vocabulary struct {
	Makes          []Option `json:"makes"`
	Models         []Option `json:"models"`
	Colors         []Option `json:"colors"`
	Transmissions  []Option `json:"transmissions"`
	Conditions     []Option `json:"conditions"`
	FuelTypes      []Option `json:"fuel_types"`
	DriveTypes     []Option `json:"drive_types"`
	CarTypes       []Option `json:"car_types"`
	Features       []Option `json:"features"`
	SafetyFeatures []Option `json:"safety_features"`
}

func (v *Vocabulary) Options(cat Category) []Option {
	if v == nil {
		return nil
	}
	switch cat {
	case Makes:
		return v.Makes
	case Models:
		return v.Models
	case Colors:
		return v.Colors
	case Transmissions:
		return v.Transmissions
	case Conditions:
		return v.Conditions
	case FuelTypes:
		return v.FuelTypes
	case DriveTypes:
		return v.DriveTypes
	case CarTypes:
		return v.CarTypes
	case Features:
		return v.Features
	case SafetyFeatures:
		return v.SafetyFeatures
	}
	return nil
}

// AllCategories in the order the fingerprint walks them.
var AllCategories = append(append([]Category{}, SingleCategories...), MultiCategories...)

// Fingerprint hashes the content of the snapshot. Identical snapshots share
// a fingerprint, a nil snapshot is 0.
func (v *Vocabulary) Fingerprint() uint64 {
	if v == nil {
		return 0
	}
	d := xxhash.New()
	buf := make([]byte, 0, 64)
	for _, cat := range AllCategories {
		_, _ = d.WriteString(string(cat))
		for _, o := range v.Options(cat) {
			buf = buf[:0]
			buf = strconv.AppendInt(buf, int64(o.Id), 10)
			buf = append(buf, ':')
			buf = append(buf, o.Label()...)
			buf = append(buf, ':')
			buf = strconv.AppendInt(buf, int64(o.MakeId()), 10)
			buf = append(buf, ';')
			_, _ = d.Write(buf)
		}
		_, _ = d.WriteString("|")
	}
	sum := d.Sum64()
	if sum == 0 {
		sum = 1
	}
	return sum
}
