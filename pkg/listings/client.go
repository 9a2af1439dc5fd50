// Package listings talks to the listings backend and sequences listing
// fetches so that only the latest request is applied.
package listings

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matst80/car-finder/pkg/common/jsoncompat"
	"github.com/matst80/car-finder/pkg/types"
)

var (
	ErrStatus   = errors.New("unexpected status from listings api")
	ErrNotFound = errors.New("not found")
)

// StatusError is returned for non 2xx responses. It matches ErrStatus, and
// ErrNotFound for 404.
type StatusError struct {
	Code int
	Path string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d", e.Path, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus || (target == ErrNotFound && e.Code == http.StatusNotFound)
}

// FieldErrors are per field validation messages returned by the backend.
type FieldErrors map[string][]string

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for k, v := range f {
		parts = append(parts, k+": "+strings.Join(v, ", "))
	}
	return "invalid fields: " + strings.Join(parts, "; ")
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, res.Body)
		return &StatusError{Code: res.StatusCode, Path: req.URL.Path}
	}
	if out == nil {
		return nil
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if err := jsoncompat.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// FetchListings requests one page of listings for the resolved query.
func (c *Client) FetchListings(ctx context.Context, rq types.ResolvedQuery, page int) (*types.ListingPage, error) {
	var res types.ListingPage
	if err := c.get(ctx, "/car-listings/", rq.Values(page), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) FetchListing(ctx context.Context, id int) (*types.Listing, error) {
	var res types.Listing
	if err := c.get(ctx, "/car-listings/"+strconv.Itoa(id)+"/", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// FetchSimilar returns a few other listings to show next to a listing.
func (c *Client) FetchSimilar(ctx context.Context, id int) ([]types.Listing, error) {
	res := make([]types.Listing, 0)
	if err := c.get(ctx, "/car-listings/"+strconv.Itoa(id)+"/other/", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) FetchVocabulary(ctx context.Context) (*types.Vocabulary, error) {
	var res types.Vocabulary
	if err := c.get(ctx, "/filters/", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) TopMakes(ctx context.Context) ([]types.TopMake, error) {
	res := make([]types.TopMake, 0)
	if err := c.get(ctx, "/top-makes/", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// SubmitInquiry posts the contact form. A 400 with a field error body is
// returned as FieldErrors.
func (c *Client) SubmitInquiry(ctx context.Context, in types.Inquiry) error {
	body, err := jsoncompat.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/inquiry/", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusBadRequest {
		fields := FieldErrors{}
		data, _ := io.ReadAll(res.Body)
		if jsoncompat.Unmarshal(data, &fields) == nil && len(fields) > 0 {
			return fields
		}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{Code: res.StatusCode, Path: req.URL.Path}
	}
	return nil
}
