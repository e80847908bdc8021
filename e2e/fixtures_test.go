//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
)

// CreateTestWorkspace creates an isolated working directory for the app
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	dir, err := os.MkdirTemp("", "invoicesearch-e2e-*")
	if err != nil {
		return "", fmt.Errorf("failed to create workspace: %w", err)
	}
	tf.workspace = dir
	return dir, nil
}

// fakeBackend answers POST /search from fixed tables with substring matching
type fakeBackend struct {
	srv    *httptest.Server
	tables map[string][]map[string]any

	mu       sync.Mutex
	requests []map[string]string
}

// StartBackend serves tables on a local port. Close it with tf.Cleanup via t.Cleanup.
func (tf *TUITestFramework) StartBackend(tables map[string][]map[string]any) *fakeBackend {
	tf.t.Helper()
	b := &fakeBackend{tables: tables}
	b.srv = httptest.NewServer(http.HandlerFunc(b.handle))
	tf.t.Cleanup(b.srv.Close)
	return b
}

// URL is the search endpoint
func (b *fakeBackend) URL() string {
	return b.srv.URL + "/search"
}

// Requests returns the request bodies received so far
func (b *fakeBackend) Requests() []map[string]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]map[string]string(nil), b.requests...)
}

func (b *fakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	b.requests = append(b.requests, req)
	b.mu.Unlock()

	rows, ok := b.tables[req["table"]]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"unknown table"}`))
		return
	}
	result := make([]map[string]any, 0)
	for _, row := range rows {
		if v, ok := row[req["field"]]; ok && strings.Contains(strings.ToLower(fmt.Sprint(v)), strings.ToLower(req["value"])) {
			result = append(result, row)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"result": result})
}

// sampleTables is the catalog most tests search
func sampleTables() map[string][]map[string]any {
	return map[string][]map[string]any{
		"products": {
			{"photourl": "", "pid_prefix": "TR", "pid": "0001", "name": "Tornillo M6", "price": 0.12},
			{"photourl": "", "pid_prefix": "TU", "pid": "0101", "name": "Tuerca M6", "price": 0.05},
		},
		"customers": {
			{"id": 1, "name": "Ferreteria Lopez", "taxid": "B12345678"},
		},
	}
}
