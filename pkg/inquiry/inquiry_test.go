package inquiry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matst80/car-finder/pkg/listings"
	"github.com/matst80/car-finder/pkg/types"
)

type recordingSubmitter struct {
	sent []types.Inquiry
	err  error
}

func (r *recordingSubmitter) SubmitInquiry(ctx context.Context, in types.Inquiry) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, in)
	return nil
}

func validForm() Form {
	return Form{
		Name:    " Anne-Marie O'Neil ",
		Email:   "anne@example.com",
		Phone:   "+46 (70) 123-45",
		Message: " Is it still available? ",
		Consent: true,
	}
}

func TestSanitizePhone(t *testing.T) {
	assert.Equal(t, "+467012345", SanitizePhone("+46 (70) 123-45"))
	assert.Equal(t, "4670", SanitizePhone("46+70"))
	assert.Equal(t, "", SanitizePhone("phone"))
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(validForm().Normalize()))

	errs := Validate(Form{}.Normalize())
	assert.Equal(t, "Name is required.", errs["name"])
	assert.Equal(t, "Email is required.", errs["email"])
	assert.Equal(t, "Phone is required.", errs["phone"])
	assert.Equal(t, "Message is required.", errs["message"])
	assert.Equal(t, "You must accept the Privacy Policy.", errs["consent"])

	f := validForm()
	f.Name = "R2D2"
	f.Email = "not an email"
	errs = Validate(f.Normalize())
	assert.Len(t, errs, 2)
	assert.Contains(t, errs["name"], "Only letters")
	assert.Contains(t, errs["email"], "valid email")
	assert.ErrorIs(t, errs, ErrInvalid)
}

func TestSubmitForwardsNormalizedForm(t *testing.T) {
	sub := &recordingSubmitter{}
	svc := NewService(sub, nil)
	listing := 12
	f := validForm()
	f.Listing = &listing

	require.NoError(t, svc.Submit(context.Background(), "1.2.3.4", f))
	require.Len(t, sub.sent, 1)
	assert.Equal(t, types.Inquiry{
		Listing: &listing,
		Name:    "Anne-Marie O'Neil",
		Email:   "anne@example.com",
		Phone:   "+467012345",
		Message: "Is it still available?",
	}, sub.sent[0])
}

func TestSubmitInvalidIsNotForwarded(t *testing.T) {
	sub := &recordingSubmitter{}
	err := NewService(sub, nil).Submit(context.Background(), "c", Form{})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Empty(t, sub.sent)
}

func TestSubmitMapsBackendFieldErrors(t *testing.T) {
	sub := &recordingSubmitter{err: listings.FieldErrors{"email": {"Enter a valid email address."}}}
	err := NewService(sub, nil).Submit(context.Background(), "c", validForm())

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "Enter a valid email address.", fields["email"])
}

func TestSubmitPassesOtherErrors(t *testing.T) {
	down := errors.New("connection refused")
	err := NewService(&recordingSubmitter{err: down}, nil).Submit(context.Background(), "c", validForm())
	assert.ErrorIs(t, err, down)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestSubmitRateLimitedPerClient(t *testing.T) {
	sub := &recordingSubmitter{}
	lim := NewLimiter(0.001, 2, time.Minute)
	svc := NewService(sub, lim)
	ctx := context.Background()

	assert.NoError(t, svc.Submit(ctx, "a", validForm()))
	assert.NoError(t, svc.Submit(ctx, "a", validForm()))
	assert.ErrorIs(t, svc.Submit(ctx, "a", validForm()), ErrRateLimited)
	assert.NoError(t, svc.Submit(ctx, "b", validForm()))
	assert.Len(t, sub.sent, 3)
}

func TestLimiterCleanup(t *testing.T) {
	lim := NewLimiter(1, 1, time.Minute)
	now := time.Unix(0, 0)
	lim.now = func() time.Time { return now }

	lim.Allow("a")
	now = now.Add(30 * time.Second)
	lim.Allow("b")
	now = now.Add(45 * time.Second)
	lim.Cleanup()
	assert.Equal(t, 1, lim.Len())
}
