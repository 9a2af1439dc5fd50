package server

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/matst80/car-finder/pkg/common"
	"github.com/matst80/car-finder/pkg/listings"
)

type encoder = sonic.Encoder

func defaultHeaders(w http.ResponseWriter, cacheTime string) {
	w.Header().Set("Cache-Control", "private, stale-while-revalidate="+cacheTime)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
}

func publicHeaders(w http.ResponseWriter, cacheTime string) {
	w.Header().Set("Cache-Control", "public, max-age="+cacheTime)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
}

func noCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
}

func pathId(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, common.NewHttpError(http.StatusBadRequest, errors.New("invalid listing id"))
	}
	return id, nil
}

// backendError maps listings api failures to a response status.
func backendError(err error) error {
	if errors.Is(err, listings.ErrNotFound) {
		return common.NewHttpError(http.StatusNotFound, err)
	}
	return common.NewHttpError(http.StatusBadGateway, err)
}

func clientKey(r *http.Request) string {
	if ip := r.Header.Get("X-Real-Ip"); ip != "" {
		return ip
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type queryResponse struct {
	Query string `json:"query"`
}
