package model

import (
	"encoding/json"
	"net/http"
	"strconv"
)

const (
	HeaderTotal      = "X-WP-Total"
	HeaderTotalPages = "X-WP-TotalPages"
)

// UpstreamResponse is a decoded 2xx answer from the commerce or content API.
type UpstreamResponse struct {
	Status int
	Data   json.RawMessage
	Header http.Header
}

// Total returns the collection size reported by the upstream, or -1 when absent.
func (r *UpstreamResponse) Total() int {
	return headerInt(r.Header, HeaderTotal)
}

// TotalPages returns the page count reported by the upstream, or -1 when absent.
func (r *UpstreamResponse) TotalPages() int {
	return headerInt(r.Header, HeaderTotalPages)
}

func headerInt(h http.Header, name string) int {
	if h == nil {
		return -1
	}

	n, err := strconv.Atoi(h.Get(name))
	if err != nil {
		return -1
	}

	return n
}
