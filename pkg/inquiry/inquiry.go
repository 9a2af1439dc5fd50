// Package inquiry validates and forwards contact form submissions.
package inquiry

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/matst80/car-finder/pkg/listings"
	"github.com/matst80/car-finder/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ErrInvalid     = errors.New("invalid inquiry")
	ErrRateLimited = errors.New("too many inquiries")
)

var (
	inquiriesSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carfinder_inquiries_total",
		Help: "Inquiries forwarded to the listings backend",
	})
	inquiriesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carfinder_inquiries_rejected_total",
		Help: "Inquiries rejected before or by the backend",
	}, []string{"reason"})
)

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z .'-]+$`)
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^\+?\d+$`)
)

// Form is the contact form as posted by the storefront.
type Form struct {
	Listing *int   `json:"listing"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Consent bool   `json:"consent"`
}

// FieldErrors maps form fields to a message. It matches ErrInvalid.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	return "invalid inquiry fields"
}

func (f FieldErrors) Is(target error) bool {
	return target == ErrInvalid
}

// SanitizePhone keeps digits and a leading plus sign.
func SanitizePhone(raw string) string {
	var b strings.Builder
	for i, r := range raw {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize trims the text fields and sanitizes the phone number.
func (f Form) Normalize() Form {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = SanitizePhone(strings.TrimSpace(f.Phone))
	f.Message = strings.TrimSpace(f.Message)
	return f
}

// Validate checks a normalized form. It returns nil when the form is valid.
func Validate(f Form) FieldErrors {
	errs := FieldErrors{}
	switch {
	case f.Name == "":
		errs["name"] = "Name is required."
	case !namePattern.MatchString(f.Name):
		errs["name"] = "Only letters, space, hyphen (-), dot (.), and apostrophe (') are allowed."
	}
	switch {
	case f.Email == "":
		errs["email"] = "Email is required."
	case !emailPattern.MatchString(f.Email):
		errs["email"] = "Enter a valid email (e.g., name@example.com)."
	}
	switch {
	case f.Phone == "":
		errs["phone"] = "Phone is required."
	case !phonePattern.MatchString(f.Phone):
		errs["phone"] = "Phone must contain digits only and may start with +."
	}
	if f.Message == "" {
		errs["message"] = "Message is required."
	}
	if !f.Consent {
		errs["consent"] = "You must accept the Privacy Policy."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type Submitter interface {
	SubmitInquiry(ctx context.Context, in types.Inquiry) error
}

type Service struct {
	submitter Submitter
	limiter   *Limiter
}

func NewService(submitter Submitter, limiter *Limiter) *Service {
	return &Service{submitter: submitter, limiter: limiter}
}

// Submit rate limits by client, validates and forwards the form. Backend
// field errors come back as FieldErrors.
func (s *Service) Submit(ctx context.Context, client string, f Form) error {
	if s.limiter != nil && !s.limiter.Allow(client) {
		inquiriesRejected.WithLabelValues("rate_limited").Inc()
		return ErrRateLimited
	}
	f = f.Normalize()
	if errs := Validate(f); errs != nil {
		inquiriesRejected.WithLabelValues("invalid").Inc()
		return errs
	}
	err := s.submitter.SubmitInquiry(ctx, types.Inquiry{
		Listing: f.Listing,
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Message: f.Message,
	})
	var backend listings.FieldErrors
	if errors.As(err, &backend) {
		inquiriesRejected.WithLabelValues("backend").Inc()
		errs := FieldErrors{}
		for field, messages := range backend {
			if len(messages) > 0 {
				errs[field] = messages[0]
			}
		}
		return errs
	}
	if err != nil {
		return err
	}
	inquiriesSubmitted.Inc()
	return nil
}
