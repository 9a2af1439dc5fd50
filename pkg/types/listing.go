package types

import "time"

type ListingImage struct {
	Id         int       `json:"id"`
	Path       string    `json:"path"`
	UploadedAt time.Time `json:"uploaded_at"`
	Listing    int       `json:"listing"`
}

// Listing is a car as served by the listings API.
type Listing struct {
	Id             int            `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Make           Option         `json:"make"`
	Model          Option         `json:"model"`
	Color          Option         `json:"color"`
	Transmission   Option         `json:"transmission"`
	Condition      Option         `json:"condition"`
	DriveType      Option         `json:"drive_type"`
	FuelType       Option         `json:"fuel_type"`
	CarType        Option         `json:"car_type"`
	Year           int            `json:"year"`
	Mileage        int            `json:"mileage"`
	EngineSize     float64        `json:"engine_size"`
	Cylinders      int            `json:"cylinders"`
	Doors          int            `json:"doors"`
	Vin            string         `json:"vin"`
	Price          int            `json:"price"`
	Features       []Option       `json:"features"`
	SafetyFeatures []Option       `json:"safety_features"`
	Images         []ListingImage `json:"listing_images"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ListingPage is one page of the paginated listings response.
type ListingPage struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next,omitempty"`
	Previous *string   `json:"previous,omitempty"`
	Results  []Listing `json:"results"`
}

// TopMake is a make with its listing count and a handful of listings.
type TopMake struct {
	Id       int       `json:"id"`
	Name     string    `json:"name"`
	Count    int       `json:"count"`
	Listings []Listing `json:"limited_listings"`
}
