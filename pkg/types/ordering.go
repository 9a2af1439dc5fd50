package types

// Ordering is a backend sort key. Only the values below are accepted, any
// other value is treated as "no ordering".
type Ordering string

const (
	OrderNone        Ordering = ""
	OrderCreated     Ordering = "created_at"
	OrderCreatedDesc Ordering = "-created_at"
	OrderPrice       Ordering = "price"
	OrderPriceDesc   Ordering = "-price"
	OrderMileage     Ordering = "mileage"
	OrderMileageDesc Ordering = "-mileage"
)

var allowedOrdering = map[Ordering]struct{}{
	OrderCreated:     {},
	OrderCreatedDesc: {},
	OrderPrice:       {},
	OrderPriceDesc:   {},
	OrderMileage:     {},
	OrderMileageDesc: {},
}

// sort values used by the filter modal
var orderingAliases = map[string]Ordering{
	"default":         OrderNone,
	"created_at_asc":  OrderCreated,
	"created_at_desc": OrderCreatedDesc,
	"price_asc":       OrderPrice,
	"price_desc":      OrderPriceDesc,
	"mileage_asc":     OrderMileage,
	"mileage_desc":    OrderMileageDesc,
}

func (o Ordering) Valid() bool {
	_, ok := allowedOrdering[o]
	return ok
}

// ParseOrdering returns the ordering if it is a member of the closed set,
// OrderNone otherwise.
func ParseOrdering(s string) Ordering {
	o := Ordering(s)
	if o.Valid() {
		return o
	}
	return OrderNone
}

// NormalizeOrdering accepts both backend values and modal aliases.
func NormalizeOrdering(s string) Ordering {
	if o := ParseOrdering(s); o != OrderNone {
		return o
	}
	if o, ok := orderingAliases[s]; ok {
		return o
	}
	return OrderNone
}

// Orderings lists the accepted values in display order.
func Orderings() []Ordering {
	return []Ordering{OrderCreatedDesc, OrderCreated, OrderPrice, OrderPriceDesc, OrderMileage, OrderMileageDesc}
}
