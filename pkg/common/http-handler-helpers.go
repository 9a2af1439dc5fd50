package common

import (
	"errors"
	"log"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/matst80/car-finder/pkg/common/jsoncompat"
)

// HttpError carries a status code through a JsonHandler callback.
type HttpError struct {
	Status int
	Err    error
}

func (e *HttpError) Error() string {
	return e.Err.Error()
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(status int, err error) error {
	return &HttpError{Status: status, Err: err}
}

// JsonHandler wraps fn with CORS preflight handling, the session cookie and
// a JSON encoder. Errors returned before anything is written become plain
// http errors.
func JsonHandler(trk SessionTracker, fn func(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(trk, w, r)
		w.Header().Set("Content-Type", "application/json")

		err := fn(w, r, sessionId, jsoncompat.NewEncoder(w))
		if err != nil {
			log.Printf("Error handling request %s: %v", r.URL.Path, err)
			var httpErr *HttpError
			if errors.As(err, &httpErr) {
				http.Error(w, httpErr.Err.Error(), httpErr.Status)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}
