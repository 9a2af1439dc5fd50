package types

import (
	"net/url"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ResolvedQuery is the backend ready form of a FilterCriteria: ids for the
// relational filters, raw values for everything else.
type ResolvedQuery struct {
	Params           map[string]string `json:"params"`
	FeatureIds       []int             `json:"feature_ids"`
	SafetyFeatureIds []int             `json:"safety_feature_ids"`
}

// Values encodes the query for the listings endpoint. Page is appended only
// when positive.
func (r ResolvedQuery) Values(page int) url.Values {
	q := url.Values{}
	keys := make([]string, 0, len(r.Params))
	for k := range r.Params {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		q.Add(k, r.Params[k])
	}
	for _, id := range r.FeatureIds {
		q.Add(string(Features), strconv.Itoa(id))
	}
	for _, id := range r.SafetyFeatureIds {
		q.Add(string(SafetyFeatures), strconv.Itoa(id))
	}
	if page > 0 {
		q.Set(ParamPage, strconv.Itoa(page))
	}
	return q
}

// Key identifies the request for a given page, usable as a cache key.
func (r ResolvedQuery) Key(page int) uint64 {
	return xxhash.Sum64String(r.Values(page).Encode())
}

func (r ResolvedQuery) Equal(other ResolvedQuery) bool {
	if len(r.Params) != len(other.Params) {
		return false
	}
	for k, v := range r.Params {
		if ov, ok := other.Params[k]; !ok || ov != v {
			return false
		}
	}
	return slices.Equal(r.FeatureIds, other.FeatureIds) && slices.Equal(r.SafetyFeatureIds, other.SafetyFeatureIds)
}
