package server

import (
	"errors"
	"net/http"

	"github.com/matst80/car-finder/pkg/common"
	"github.com/matst80/car-finder/pkg/common/jsoncompat"
	"github.com/matst80/car-finder/pkg/inquiry"
	"github.com/matst80/car-finder/pkg/loan"
)

type inquiryResponse struct {
	Ok     bool                `json:"ok"`
	Errors inquiry.FieldErrors `json:"errors,omitempty"`
}

// Inquiry validates and forwards the contact form.
func (ws *WebServer) Inquiry(w http.ResponseWriter, r *http.Request, sessionId string, enc encoder) error {
	var form inquiry.Form
	if err := jsoncompat.NewDecoder(r.Body).Decode(&form); err != nil {
		return common.NewHttpError(http.StatusBadRequest, err)
	}
	err := ws.Inquiries.Submit(r.Context(), clientKey(r), form)
	noCache(w)

	var fields inquiry.FieldErrors
	switch {
	case errors.As(err, &fields):
		w.WriteHeader(http.StatusBadRequest)
		return enc.Encode(inquiryResponse{Errors: fields})
	case errors.Is(err, inquiry.ErrRateLimited):
		w.Header().Set("Retry-After", "1")
		return common.NewHttpError(http.StatusTooManyRequests, err)
	case err != nil:
		return backendError(err)
	}
	if ws.Tracking != nil {
		ws.Tracking.TrackInquiry(sessionId, form.Listing)
	}
	w.WriteHeader(http.StatusCreated)
	return enc.Encode(inquiryResponse{Ok: true})
}

// Loan runs the financing calculator on the query parameters.
func (ws *WebServer) Loan(w http.ResponseWriter, r *http.Request, sessionId string, enc encoder) error {
	in, err := loan.ParseQuery(r.URL.Query())
	if err != nil {
		return common.NewHttpError(http.StatusBadRequest, err)
	}
	res := struct {
		Input loan.Input `json:"input"`
		loan.Result
	}{Input: in, Result: loan.Calculate(in)}
	publicHeaders(w, "3600")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(res)
}
