package types

// Inquiry is a contact form submission, optionally about a listing.
type Inquiry struct {
	Listing *int   `json:"listing"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}
