// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/ballotbox/models"
)

// captureLogs routes the default slog logger into a buffer for one test
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// logRecords decodes JSON log lines, keyed by message
func logRecords(t *testing.T, buf *bytes.Buffer) map[string]map[string]any {
	t.Helper()
	records := make(map[string]map[string]any)
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("Bad log line %q: %v", scanner.Text(), err)
		}
		msg, _ := rec["msg"].(string)
		records[msg] = rec
	}
	return records
}

func TestWithLogging_RecordsStatusAndRequestID(t *testing.T) {
	testCases := []struct {
		name           string
		method         string
		handler        http.HandlerFunc
		expectedStatus int
	}{
		{
			name:   "method not allowed on submit",
			method: "GET",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Allow", http.MethodPost)
				JSONResponse(w, http.StatusMethodNotAllowed, models.SubmitVoteResponse{
					Status:  models.StatusError,
					Message: "Invalid method",
				})
			},
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:   "login redirect",
			method: "GET",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, LoginPath, http.StatusFound)
			},
			expectedStatus: http.StatusFound,
		},
		{
			name:   "body without explicit header",
			method: "POST",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("OK"))
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logs := captureLogs(t)

			req := httptest.NewRequest(tc.method, "/submit", nil)
			req.Header.Set("X-Forwarded-For", "198.51.100.7")
			w := httptest.NewRecorder()

			WithLogging(tc.handler)(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected response status %d, got %d", tc.expectedStatus, w.Code)
			}

			records := logRecords(t, logs)
			started, ok := records["request started"]
			if !ok {
				t.Fatal("Missing 'request started' log record")
			}
			completed, ok := records["request completed"]
			if !ok {
				t.Fatal("Missing 'request completed' log record")
			}

			// JSON numbers decode as float64
			if status, _ := completed["status"].(float64); int(status) != tc.expectedStatus {
				t.Errorf("Expected logged status %d, got %v", tc.expectedStatus, completed["status"])
			}

			id, _ := started["request_id"].(string)
			if len(id) != 16 {
				t.Errorf("Expected 16-char request_id, got %q", id)
			}
			if completed["request_id"] != id {
				t.Errorf("Expected matching request_id, got %v and %v", id, completed["request_id"])
			}
			if started["remote"] != "198.51.100.7" {
				t.Errorf("Expected remote from X-Forwarded-For, got %v", started["remote"])
			}
			if _, ok := completed["duration_ms"]; !ok {
				t.Error("Expected duration_ms in completion record")
			}
		})
	}
}

func TestWithLogging_DistinctRequestIDs(t *testing.T) {
	logs := captureLogs(t)
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {})

	handler(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))
	first := logRecords(t, logs)["request completed"]["request_id"]

	handler(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))
	second := logRecords(t, logs)["request completed"]["request_id"]

	if first == second {
		t.Errorf("Expected a new request_id per request, got %v twice", first)
	}
}

func TestJSONResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		data       interface{}
		expected   string
	}{
		{
			name:       "vote accepted",
			statusCode: http.StatusOK,
			data:       models.SubmitVoteResponse{Status: models.StatusSuccess},
			expected:   `{"status":"success"}`,
		},
		{
			name:       "vote rejected",
			statusCode: http.StatusBadRequest,
			data:       models.SubmitVoteResponse{Status: models.StatusError, Message: "No preferences selected"},
			expected:   `{"status":"error","message":"No preferences selected"}`,
		},
		{
			name:       "empty results",
			statusCode: http.StatusOK,
			data:       models.ResultsResponse{Rows: []models.TallyRow{}},
			expected:   `{"results":[],"counted":0,"skipped":0}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			JSONResponse(w, tc.statusCode, tc.data)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
			}
			if body := strings.TrimSpace(w.Body.String()); body != tc.expected {
				t.Errorf("Expected body '%s', got '%s'", tc.expected, body)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	testCases := []struct {
		statusCode    int
		message       string
		expectedError string
	}{
		{http.StatusUnauthorized, "Login required", "Unauthorized"},
		{http.StatusInternalServerError, "Failed to compute results", "Internal Server Error"},
		{http.StatusInternalServerError, "Session error", "Internal Server Error"},
	}

	for _, tc := range testCases {
		t.Run(tc.message, func(t *testing.T) {
			w := httptest.NewRecorder()

			ErrorResponse(w, tc.statusCode, tc.message)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error != tc.expectedError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectedError, resp.Error)
			}
			if resp.Message != tc.message {
				t.Errorf("Expected message '%s', got '%s'", tc.message, resp.Message)
			}
		})
	}
}

func TestParseJSONBody(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr bool
		want    map[string]string
	}{
		{
			name: "full ballot",
			body: `{"preferences":{"1":"cand-a","2":"cand-b","3":"cand-c"}}`,
			want: map[string]string{"1": "cand-a", "2": "cand-b", "3": "cand-c"},
		},
		{
			name: "unknown fields ignored",
			body: `{"preferences":{"1":"cand-a"},"csrf":"x"}`,
			want: map[string]string{"1": "cand-a"},
		},
		{
			name: "no preferences field",
			body: `{}`,
			want: nil,
		},
		{name: "malformed", body: `{"preferences":`, wantErr: true},
		{name: "empty body", body: "", wantErr: true},
		{name: "wrong shape", body: `{"preferences":["cand-a"]}`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/submit", strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			var parsed models.SubmitVoteRequest
			err := ParseJSONBody(w, req, &parsed)

			if tc.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(parsed.Preferences) != len(tc.want) {
				t.Fatalf("Expected %d preferences, got %v", len(tc.want), parsed.Preferences)
			}
			for rank, id := range tc.want {
				if parsed.Preferences[rank] != id {
					t.Errorf("Rank %s: expected '%s', got '%s'", rank, id, parsed.Preferences[rank])
				}
			}
		})
	}
}

func TestParseJSONBody_TooLarge(t *testing.T) {
	body := `{"preferences":{"1":"` + strings.Repeat("a", MaxJSONBodyBytes) + `"}}`
	req := httptest.NewRequest("POST", "/submit", strings.NewReader(body))
	w := httptest.NewRecorder()

	var parsed models.SubmitVoteRequest
	err := ParseJSONBody(w, req, &parsed)

	var tooLarge *http.MaxBytesError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("Expected *http.MaxBytesError, got %v", err)
	}
	if tooLarge.Limit != MaxJSONBodyBytes {
		t.Errorf("Expected limit %d, got %d", MaxJSONBodyBytes, tooLarge.Limit)
	}
}

func TestWantsJSON(t *testing.T) {
	testCases := []struct {
		accept string
		want   bool
	}{
		{"application/json", true},
		{"text/html, application/json;q=0.9", true},
		{"text/html", false},
		{"", false},
	}

	for _, tc := range testCases {
		req := httptest.NewRequest("GET", "/results", nil)
		req.Header.Set("Accept", tc.accept)
		if got := WantsJSON(req); got != tc.want {
			t.Errorf("WantsJSON(%q) = %v, want %v", tc.accept, got, tc.want)
		}
	}
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expectedIP string
	}{
		{"proxy chain uses first hop", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.2"}, "10.0.0.1:443", "203.0.113.9"},
		{"forwarded beats real ip", map[string]string{"X-Forwarded-For": "203.0.113.9", "X-Real-IP": "198.51.100.1"}, "10.0.0.1:443", "203.0.113.9"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.1"}, "10.0.0.1:443", "198.51.100.1"},
		{"remote addr port stripped", nil, "192.0.2.44:51000", "192.0.2.44"},
		{"remote addr without port", nil, "192.0.2.44", "192.0.2.44"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/login", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			if got := GetClientIP(req); got != tc.expectedIP {
				t.Errorf("Expected IP '%s', got '%s'", tc.expectedIP, got)
			}
		})
	}
}
