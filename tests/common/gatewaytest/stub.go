//go:build unit || e2e

package gatewaytest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Stub is an in-process stand-in for the Paystack API. Every initialize call
// mints a fresh reference that verifies as pending until a test flips it.
type Stub struct {
	mu       sync.Mutex
	server   *httptest.Server
	statuses map[string]string
	lastRef  string
	counter  int
}

func NewStub(t *testing.T) *Stub {
	t.Helper()

	s := &Stub{statuses: make(map[string]string)}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /transaction/initialize", s.handleInitialize)
	mux.HandleFunc("GET /transaction/verify/", s.handleVerify)

	s.server = httptest.NewServer(mux)
	t.Cleanup(s.server.Close)
	return s
}

func (s *Stub) URL() string {
	return s.server.URL
}

// LastReference returns the reference minted by the most recent initialize.
func (s *Stub) LastReference() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRef
}

// SetStatus controls what verify reports for a reference: "pending",
// "success", "failed" or "abandoned".
func (s *Stub) SetStatus(reference, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[reference] = status
}

func (s *Stub) handleInitialize(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.counter++
	reference := fmt.Sprintf("ps_test_%06d", s.counter)
	s.statuses[reference] = "pending"
	s.lastRef = reference
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  true,
		"message": "Authorization URL created",
		"data": map[string]any{
			"authorization_url": s.server.URL + "/pay/" + reference,
			"access_code":       "ac_" + reference,
			"reference":         reference,
		},
	})
}

func (s *Stub) handleVerify(w http.ResponseWriter, r *http.Request) {
	reference := strings.TrimPrefix(r.URL.Path, "/transaction/verify/")

	s.mu.Lock()
	status, ok := s.statuses[reference]
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"status":  false,
			"message": "Transaction reference not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  true,
		"message": "Verification successful",
		"data": map[string]any{
			"status":    status,
			"reference": reference,
		},
	})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
