package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/agentstation/seatsync/pkg/directory"
	"github.com/agentstation/seatsync/pkg/license"
)

// Wire shapes matching the directory REST API.
type wireUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	DisplayName   string `json:"display_name"`
	LicenseTier   int    `json:"license_tier"`
	LicenseSource string `json:"license_source"`
}

type wirePage struct {
	Users      []wireUser `json:"users"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
}

// DirectoryServer is an in-process directory API for integration tests.
// It serves a paginated user snapshot, accepts creates and license
// updates, and records the mutations it receives.
type DirectoryServer struct {
	Server *httptest.Server

	token string

	mu      sync.Mutex
	users   []directory.User
	creates []string
	updates map[string]license.Tier
}

// NewDirectoryServer starts a directory API stub seeded with users. A
// non-empty token makes the stub reject requests missing the matching
// bearer credential. The server is closed when the test finishes.
func NewDirectoryServer(t *testing.T, token string, seed ...directory.User) *DirectoryServer {
	t.Helper()

	d := &DirectoryServer{
		token:   token,
		users:   append([]directory.User(nil), seed...),
		updates: make(map[string]license.Tier),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users", d.handleUsers)
	mux.HandleFunc("/api/v1/users/", d.handleLicense)
	d.Server = httptest.NewServer(mux)
	t.Cleanup(d.Server.Close)

	return d
}

// URL returns the stub's base URL.
func (d *DirectoryServer) URL() string {
	return d.Server.URL
}

// Users returns a copy of the directory's current state.
func (d *DirectoryServer) Users() []directory.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]directory.User(nil), d.users...)
}

// Created returns the emails of users created through the API, in order.
func (d *DirectoryServer) Created() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.creates...)
}

// Updates returns the license updates received, keyed by user id.
func (d *DirectoryServer) Updates() map[string]license.Tier {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]license.Tier, len(d.updates))
	for id, tier := range d.updates {
		out[id] = tier
	}
	return out
}

func (d *DirectoryServer) authorized(w http.ResponseWriter, r *http.Request) bool {
	if d.token == "" {
		return true
	}
	if r.Header.Get("Authorization") == "Bearer "+d.token {
		return true
	}
	writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	return false
}

func (d *DirectoryServer) handleUsers(w http.ResponseWriter, r *http.Request) {
	if !d.authorized(w, r) {
		return
	}

	switch r.Method {
	case http.MethodGet:
		d.handleSnapshot(w, r)
	case http.MethodPost:
		d.handleCreate(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (d *DirectoryServer) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 {
		perPage = len(d.users)
		if perPage < 1 {
			perPage = 1
		}
	}

	totalPages := (len(d.users) + perPage - 1) / perPage
	start := (page - 1) * perPage
	end := start + perPage
	if start > len(d.users) {
		start = len(d.users)
	}
	if end > len(d.users) {
		end = len(d.users)
	}

	resp := wirePage{Page: page, TotalPages: totalPages, Users: make([]wireUser, 0, end-start)}
	for _, u := range d.users[start:end] {
		resp.Users = append(resp.Users, toWire(u))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (d *DirectoryServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		DisplayName string `json:"display_name"`
		LicenseTier int    `json:"license_tier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed body"})
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	user := directory.User{
		ID:            fmt.Sprintf("svc-%03d", len(d.users)+1),
		Email:         req.Email,
		DisplayName:   req.DisplayName,
		TierCode:      license.Tier(req.LicenseTier),
		LicenseSource: directory.SourceDirect,
	}
	d.users = append(d.users, user)
	d.creates = append(d.creates, req.Email)

	writeJSON(w, http.StatusCreated, toWire(user))
}

func (d *DirectoryServer) handleLicense(w http.ResponseWriter, r *http.Request) {
	if !d.authorized(w, r) {
		return
	}
	if r.Method != http.MethodPatch || !strings.HasSuffix(r.URL.Path, "/license") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/v1/users/"), "/license")

	var req struct {
		LicenseTier int `json:"license_tier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed body"})
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for i, u := range d.users {
		if u.ID == id {
			d.users[i].TierCode = license.Tier(req.LicenseTier)
			d.updates[id] = license.Tier(req.LicenseTier)
			writeJSON(w, http.StatusOK, toWire(d.users[i]))
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
}

func toWire(u directory.User) wireUser {
	return wireUser{
		ID:            u.ID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		LicenseTier:   int(u.TierCode),
		LicenseSource: string(u.LicenseSource),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Stub responses in tests
	_ = json.NewEncoder(w).Encode(v)
}
