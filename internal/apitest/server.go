// Package apitest provides an in-memory portfolio API for tests and examples.
package apitest

import (
	"encoding/json"
	"maps"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/folio/pkg/core"
)

// Server is an in-memory implementation of the portfolio REST API.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	doc      map[string][]core.Item
	nextID   int
	fetches  int
	requests []Request

	// Collections maps entity endpoint names to document keys.
	Collections map[string]string
	// Reject, when set, answers every mutation with success=false and this message.
	Reject string
	// Fail, when set, answers every request with this HTTP status.
	Fail int
}

// Request is one mutation received by the server.
type Request struct {
	Method string
	Path   string
	Body   core.Item
}

// NewServer starts a server seeded with doc.
func NewServer(doc map[string][]core.Item) *Server {
	if doc == nil {
		doc = make(map[string][]core.Item)
	}
	s := &Server{
		doc:    doc,
		nextID: 100,
		Collections: map[string]string{
			"intro":      "intros",
			"about":      "abouts",
			"experience": "experiences",
			"project":    "projects",
			"course":     "courses",
			"contact":    "contacts",
		},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// BaseURL returns the API root to configure clients with.
func (s *Server) BaseURL() string {
	return s.URL + "/api/portfolio"
}

// Fetches returns how many times the document was fetched.
func (s *Server) Fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

// Requests returns the mutations received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// SetFail changes the forced HTTP status. Zero disables it.
func (s *Server) SetFail(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fail = status
}

// SetReject changes the forced rejection message. Empty disables it.
func (s *Server) SetReject(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reject = msg
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Fail != 0 {
		writeJSON(w, s.Fail, core.Envelope{Message: http.StatusText(s.Fail)})
		return
	}

	endpoint := strings.TrimPrefix(r.URL.Path, "/api/portfolio/")
	if endpoint == "get-portfolio-data" && r.Method == http.MethodGet {
		s.fetches++
		writeJSON(w, http.StatusOK, s.doc)
		return
	}

	var body core.Item
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	// The log keeps its own copy; the document must never share maps with it.
	s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Body: maps.Clone(body)})

	action, entity, ok := strings.Cut(endpoint, "-")
	collection, known := s.Collections[entity]
	if !ok || !known {
		http.NotFound(w, r)
		return
	}

	if s.Reject != "" {
		writeJSON(w, http.StatusOK, core.Envelope{Success: false, Message: s.Reject})
		return
	}

	switch {
	case action == "add" && r.Method == http.MethodPost:
		s.nextID++
		body[core.IDKey] = strconv.Itoa(s.nextID)
		s.doc[collection] = append(s.doc[collection], body)
		writeJSON(w, http.StatusOK, core.Envelope{Success: true, Message: entity + " added successfully"})
	case action == "update" && r.Method == http.MethodPut:
		if !s.replace(collection, body) {
			writeJSON(w, http.StatusOK, core.Envelope{Success: false, Message: entity + " not found"})
			return
		}
		writeJSON(w, http.StatusOK, core.Envelope{Success: true, Message: entity + " updated successfully"})
	case action == "delete" && r.Method == http.MethodDelete:
		if !s.remove(collection, body.ID()) {
			writeJSON(w, http.StatusOK, core.Envelope{Success: false, Message: entity + " not found"})
			return
		}
		writeJSON(w, http.StatusOK, core.Envelope{Success: true, Message: entity + " deleted successfully"})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) replace(collection string, body core.Item) bool {
	for i, item := range s.doc[collection] {
		if item.ID() == body.ID() {
			s.doc[collection][i] = body
			return true
		}
	}
	return false
}

func (s *Server) remove(collection, id string) bool {
	items := s.doc[collection]
	for i, item := range items {
		if item.ID() == id {
			s.doc[collection] = append(items[:i], items[i+1:]...)
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
