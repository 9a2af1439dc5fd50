// Package loan computes monthly payments for the financing calculator.
package loan

import (
	"math"
	"net/url"
	"strconv"

	"github.com/gorilla/schema"
)

const MinDownPayment = 10000

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// Input holds the raw calculator fields.
type Input struct {
	Price  string `schema:"price" json:"price"`
	Rate   string `schema:"rate" json:"rate"`
	Period string `schema:"period" json:"period"`
	Down   string `schema:"down" json:"down"`
}

// DefaultInput matches the calculator's initial state.
func DefaultInput() Input {
	return Input{Price: "1", Rate: "2.5", Period: "36", Down: "10000"}
}

// ParseQuery reads the calculator fields from a query string and sanitizes
// them. Missing fields keep their defaults.
func ParseQuery(q url.Values) (Input, error) {
	in := DefaultInput()
	if err := decoder.Decode(&in, q); err != nil {
		return in, err
	}
	return in.Sanitize(), nil
}

func (in Input) Sanitize() Input {
	return Input{
		Price:  StripLeadingZeros(SanitizeInt(in.Price)),
		Rate:   NormalizeDecimal(SanitizeDecimal(in.Rate)),
		Period: StripLeadingZeros(SanitizeInt(in.Period)),
		Down:   StripLeadingZeros(SanitizeInt(in.Down)),
	}
}

func toNum(s string) float64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0
	}
	return n
}

// Errors maps a field, or "general", to a message.
type Errors map[string]string

func Validate(in Input) Errors {
	price, rate, period, down := toNum(in.Price), toNum(in.Rate), toNum(in.Period), toNum(in.Down)
	e := Errors{}
	if in.Price == "" || price < 0 {
		e["price"] = "Price cannot be lower than 0."
	}
	if in.Rate == "" || rate < 0 {
		e["rate"] = "Interest rate cannot be lower than 0."
	}
	if in.Period == "" || period < 0 {
		e["period"] = "Period cannot be lower than 0."
	}
	if in.Down == "" || down < 0 {
		e["down"] = "Down payment cannot be lower than 0."
	}
	if down > 0 && down < MinDownPayment {
		e["down"] = "Down payment must be at least 10,000."
	}
	if price > 0 && down > 0 && price <= down {
		e["general"] = "Price must be greater than down payment."
	}
	if _, ok := e["general"]; !ok && (price == 0 || rate == 0 || period == 0 || down == 0) {
		e["general"] = "All inputs must be greater than 0."
	}
	if len(e) == 0 {
		return nil
	}
	return e
}

type Result struct {
	Principal      float64 `json:"principal"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayments  float64 `json:"total_payments"`
	TotalInterest  float64 `json:"total_interest"`
	Errors         Errors  `json:"errors,omitempty"`
}

// Calculate returns the annuity for the input. When validation fails only the
// principal and the errors are set.
func Calculate(in Input) Result {
	price, rate, period, down := toNum(in.Price), toNum(in.Rate), toNum(in.Period), toNum(in.Down)
	res := Result{Principal: math.Max(0, price-down)}
	if errs := Validate(in); errs != nil {
		res.Errors = errs
		return res
	}
	res.MonthlyPayment = monthlyPayment(res.Principal, rate/100/12, period)
	res.TotalPayments = res.MonthlyPayment*period + down
	res.TotalInterest = math.Max(0, res.TotalPayments-res.Principal-down)
	return res
}

func monthlyPayment(principal, r, n float64) float64 {
	if r == 0 {
		if n > 0 {
			return principal / n
		}
		return 0
	}
	growth := math.Pow(1+r, n)
	denominator := growth - 1
	if denominator == 0 {
		return 0
	}
	return principal * r * growth / denominator
}
