package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// setupTestDB points the global db at a fresh in-memory database with the
// full schema applied. A single connection keeps every query on the same
// in-memory database.
func setupTestDB(t *testing.T) {
	t.Helper()
	if db != nil {
		db.Close()
	}
	var err error
	db, err = sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	if err := runMigrations(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	t.Cleanup(func() { db.Close() })
}

// createTestUser inserts a login account and returns its generated user_id.
func createTestUser(t *testing.T, email, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	userID, err := nextCode(db, "users", "user_id", userIDWidth)
	if err != nil {
		t.Fatalf("Failed to generate user_id: %v", err)
	}
	if _, err := db.Exec("INSERT INTO users (user_id, email, password) VALUES (?, ?, ?)", userID, email, string(hash)); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return userID
}

// jsonRequest creates an HTTP request with a JSON body.
func jsonRequest(method, path string, body interface{}) *http.Request {
	var buf []byte
	if body != nil {
		buf, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeAPIResponse decodes an APIResponse from a ResponseRecorder.
func decodeAPIResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var response APIResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode API response: %v", err)
	}
	return response
}

// decodeData decodes the data field of an APIResponse into v.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	resp := decodeAPIResponse(t, w)
	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("Failed to re-marshal data: %v", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
}

// assertStatus checks that the HTTP status code matches expected.
func assertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// countRows returns the number of rows in a table.
func countRows(t *testing.T, table string) int {
	t.Helper()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return count
}
