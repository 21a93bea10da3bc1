// Package apitest runs a fake Flash1 REST API for tests. Every route of the real API is
// registered on a chi router; each request is recorded and answered with the canned
// response configured for its route pattern.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Request is a recorded API call. Body decodes numbers as float64; Raw keeps the exact
// bytes for values that do not fit one.
type Request struct {
	Method  string
	Path    string
	Pattern string
	Query   url.Values
	Header  http.Header
	Body    map[string]any
	Raw     []byte
}

// Response is a canned answer.
type Response struct {
	Status int
	Body   any
}

// Server is a fake Flash1 API.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	requests  []Request
	responses map[string]Response
}

var routes = []struct{ method, pattern string }{
	{http.MethodPost, "/v1/signable-registration"},
	{http.MethodPost, "/v1/signable-registration-offchain"},
	{http.MethodPost, "/v1/users"},
	{http.MethodGet, "/v1/users/{user}"},
	{http.MethodPost, "/v1/encode/{assetType}"},
	{http.MethodPost, "/v1/signable-deposit-details"},
	{http.MethodPost, "/v1/signable-withdrawal-details"},
	{http.MethodPost, "/v1/withdrawals"},
	{http.MethodPost, "/v3/signable-order-details"},
	{http.MethodPost, "/v3/orders"},
	{http.MethodPost, "/v3/signable-cancel-order-details"},
	{http.MethodDelete, "/v3/orders/{orderID}"},
	{http.MethodPost, "/v3/signable-trade-details"},
	{http.MethodPost, "/v3/trades"},
	{http.MethodGet, "/v2/balances/{owner}"},
	{http.MethodGet, "/v2/balances/{owner}/{address}"},
	{http.MethodPost, "/v1/projects"},
	{http.MethodGet, "/v1/projects"},
	{http.MethodGet, "/v1/projects/{id}"},
	{http.MethodPost, "/v1/collections"},
	{http.MethodPatch, "/v1/collections/{address}"},
	{http.MethodPost, "/v1/collections/{address}/metadata-schema"},
	{http.MethodPatch, "/v1/collections/{address}/metadata-schema/{name}"},
	{http.MethodGet, "/v1/metadata-refreshes"},
	{http.MethodPost, "/v1/metadata-refreshes"},
	{http.MethodGet, "/v1/metadata-refreshes/{id}"},
	{http.MethodGet, "/v1/metadata-refreshes/{id}/errors"},
}

// NewServer starts a fake API preloaded with DefaultResponses. It is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{responses: DefaultResponses()}

	r := chi.NewRouter()
	for _, route := range routes {
		r.Method(route.method, route.pattern, http.HandlerFunc(s.serve))
	}

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Handle sets the response for a route, e.g. Handle("POST /v1/users", 200, body).
func (s *Server) Handle(route string, status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[route] = Response{Status: status, Body: body}
}

// Requests returns the recorded requests in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Routes returns "METHOD pattern" of every recorded request.
func (s *Server) Routes() []string {
	reqs := s.Requests()
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.Method + " " + r.Pattern
	}
	return out
}

// Last returns the most recent request for a route and whether there was one.
func (s *Server) Last(route string) (Request, bool) {
	reqs := s.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method+" "+reqs[i].Pattern == route {
			return reqs[i], true
		}
	}
	return Request{}, false
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	pattern := chi.RouteContext(r.Context()).RoutePattern()
	route := r.Method + " " + pattern

	recorded := Request{
		Method:  r.Method,
		Path:    r.URL.Path,
		Pattern: pattern,
		Query:   r.URL.Query(),
		Header:  r.Header.Clone(),
	}
	if raw, err := io.ReadAll(r.Body); err == nil && len(raw) > 0 {
		recorded.Raw = raw
		_ = json.Unmarshal(raw, &recorded.Body)
	}

	s.mu.Lock()
	s.requests = append(s.requests, recorded)
	resp, ok := s.responses[route]
	s.mu.Unlock()

	if !ok {
		resp = Response{
			Status: http.StatusNotFound,
			Body:   map[string]string{"code": "not_found", "message": "no canned response for " + route},
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_ = json.NewEncoder(w).Encode(resp.Body)
}
