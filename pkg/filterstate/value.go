package filterstate

import (
	"github.com/matst80/car-finder/pkg/slug"
	"github.com/matst80/car-finder/pkg/types"
)

type Kind uint8

const (
	KindNone Kind = iota
	KindLabel
	KindId
)

// Value is a setter input: either a human label or a vocabulary id. The zero
// Value clears the field.
type Value struct {
	Kind  Kind   `json:"kind"`
	Label string `json:"label,omitempty"`
	Id    int    `json:"id,omitempty"`
}

func Label(label string) Value {
	return Value{Kind: KindLabel, Label: label}
}

func Id(id int) Value {
	return Value{Kind: KindId, Id: id}
}

func Labels(labels ...string) []Value {
	res := make([]Value, 0, len(labels))
	for _, l := range labels {
		res = append(res, Label(l))
	}
	return res
}

// Labeler maps vocabulary ids back to labels. *lookup.Table implements it.
type Labeler interface {
	Label(cat types.Category, id int) (string, bool)
}

// Slug returns the slug for the value, or "" when it cannot be resolved.
func (v Value) Slug(cat types.Category, labels Labeler) string {
	switch v.Kind {
	case KindLabel:
		return slug.Slugify(v.Label)
	case KindId:
		if labels == nil {
			return ""
		}
		if l, ok := labels.Label(cat, v.Id); ok {
			return slug.Slugify(l)
		}
	}
	return ""
}
