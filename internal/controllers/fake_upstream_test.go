package controllers_test

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
)

// fakeUpstream is a configurable stand-in for the persistence API.
//
// Budget and feed payloads are registered per month key ("month-year",
// zero-based month index). Responses for other routes can be set
// explicitly, every handled request is recorded for assertions.
type fakeUpstream struct {
	mu sync.Mutex

	budgets       map[string]string
	uncategorized map[string]string
	deleted       map[string]string
	responses     map[string]fakeResponse // keyed "METHOD /path"
	requests      []string
}

type fakeResponse struct {
	status int
	body   string
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		budgets:       make(map[string]string),
		uncategorized: make(map[string]string),
		deleted:       make(map[string]string),
		responses:     make(map[string]fakeResponse),
	}
}

func monthKey(month, year int) string {
	return fmt.Sprintf("%d-%d", month, year)
}

// setBudget registers the budget payload served for a month. month is
// the zero-based index the wire format uses.
func (f *fakeUpstream) setBudget(month, year int, payload string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.budgets[monthKey(month, year)] = payload
}

func (f *fakeUpstream) setUncategorized(month, year int, payload string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uncategorized[monthKey(month, year)] = payload
}

func (f *fakeUpstream) setDeleted(month, year int, payload string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted[monthKey(month, year)] = payload
}

// respond sets the response for one route, e.g. "POST /v1/transactions".
func (f *fakeUpstream) respond(route string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[route] = fakeResponse{status: status, body: body}
}

// seen returns how often a route was requested.
func (f *fakeUpstream) seen(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, r := range f.requests {
		if r == route {
			count++
		}
	}

	return count
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	route := r.Method + " " + r.URL.Path
	f.requests = append(f.requests, route)

	if response, ok := f.responses[route]; ok {
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(response.status)
		_, _ = w.Write([]byte(response.body))
		return
	}

	key := monthKey(atoi(r.URL.Query().Get("month")), atoi(r.URL.Query().Get("year")))

	var payload string
	var found bool

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/v1/budget":
		payload, found = f.budgets[key]
	case r.Method == http.MethodGet && r.URL.Path == "/v1/transactions/uncategorized":
		payload, found = f.uncategorized[key]
		if !found {
			payload, found = "[]", true
		}
	case r.Method == http.MethodGet && r.URL.Path == "/v1/transactions/deleted":
		payload, found = f.deleted[key]
		if !found {
			payload, found = "[]", true
		}
	}
	f.mu.Unlock()

	if !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(payload))
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}

	return n
}
