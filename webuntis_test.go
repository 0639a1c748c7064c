// @license
// Copyright (C) 2025  Tynobi Company
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package webuntis

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Tynobi-Company/webuntis-headless/config"
	json "github.com/goccy/go-json"
)

const (
	testSchool = "demo-school"
	testToken  = "test-jwt-token"
)

var testSession = Session{
	SessionID:  "S1",
	PersonType: ElementTypeStudent,
	PersonID:   42,
	KlasseID:   7,
}

// rpcCall mirrors the outgoing JSON-RPC envelope on the backend side.
type rpcCall struct {
	ID      string          `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	JSONRPC string          `json:"jsonrpc"`
}

// testBackend is a mocked WebUntis backend serving both the JSON-RPC and the
// REST-style endpoints over TLS.
type testBackend struct {
	t   *testing.T
	srv *httptest.Server

	mu                  sync.Mutex
	authCalls           int
	failAuth            bool
	failToken           bool
	failLogout          bool
	failTimetable       int
	latestImportTime    int64
	lessons             []Lesson
	rpcResults          map[string]any
	lastTimetableParams timetableParams
	lastDetailQuery     url.Values
	lastAuthorization   string
	lastTokenCookie     string
	lastSchoolQuery     string
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()

	b := &testBackend{
		t:          t,
		rpcResults: make(map[string]any),
	}
	b.srv = httptest.NewTLSServer(http.HandlerFunc(b.handle))
	t.Cleanup(b.srv.Close)

	return b
}

// client builds a fully configured Client wired to the mocked backend.
func (b *testBackend) client() *Client {
	c := New()
	c.httpClient = b.srv.Client()
	c.SetBaseHost(strings.TrimPrefix(b.srv.URL, "https://"))
	c.SetSchool(testSchool)
	c.SetUsername("student")
	c.SetPassword("secret")

	return c
}

func (b *testBackend) handle(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/WebUntis/jsonrpc.do":
		b.handleRPC(w, r)
	case "/WebUntis/api/token/new":
		b.mu.Lock()
		b.lastTokenCookie = r.Header.Get("Cookie")
		fail := b.failToken
		b.mu.Unlock()

		if fail {
			http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)

			return
		}

		io.WriteString(w, testToken) //nolint:errcheck
	case "/WebUntis/api/rest/view/v2/calendar-entry/detail":
		b.mu.Lock()
		b.lastDetailQuery = r.URL.Query()
		b.lastAuthorization = r.Header.Get("Authorization")
		b.mu.Unlock()

		writeJSON(w, CalendarEntries{CalendarEntries: []CalendarEntry{{ID: 9000}}})
	default:
		http.NotFound(w, r)
	}
}

func (b *testBackend) handleRPC(w http.ResponseWriter, r *http.Request) {
	var call rpcCall
	if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastSchoolQuery = r.URL.Query().Get("school")

	switch call.Method {
	case "authenticate":
		b.authCalls++

		if b.failAuth {
			writeRPCError(w, call.ID, -8504, "bad credentials")

			return
		}

		writeRPCResult(w, call.ID, testSession)
	case "getLatestImportTime":
		writeRPCResult(w, call.ID, b.latestImportTime)
	case "getTimetable":
		if b.failTimetable > 0 {
			b.failTimetable--
			writeRPCError(w, call.ID, -32000, "temporarily unavailable")

			return
		}

		if err := json.Unmarshal(call.Params, &b.lastTimetableParams); err != nil {
			b.t.Errorf("bad getTimetable params: %v", err)
		}

		writeRPCResult(w, call.ID, b.lessons)
	case "logout":
		if b.failLogout {
			writeRPCError(w, call.ID, -32000, "logout failed")

			return
		}

		writeRPCResult(w, call.ID, nil)
	default:
		if res, ok := b.rpcResults[call.Method]; ok {
			writeRPCResult(w, call.ID, res)

			return
		}

		writeRPCError(w, call.ID, -32601, "method not found")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeRPCResult(w http.ResponseWriter, id string, result any) {
	writeJSON(w, map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	})
}

func writeRPCError(w http.ResponseWriter, id string, code int, message string) {
	writeJSON(w, map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error":   map[string]any{"code": code, "message": message},
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	c := NewFromConfig(config.Config{
		BaseHost: "demo.webuntis.com",
		School:   testSchool,
		Username: "student",
		Password: "secret",
		Timeout:  5,
	})

	if c.baseHost != "demo.webuntis.com" || c.school != testSchool ||
		c.username != "student" || c.password != "secret" {
		t.Errorf("NewFromConfig() did not populate the client: %+v", c)
	}

	if c.httpClient.Timeout != 5*time.Second {
		t.Errorf("expected 5s HTTP timeout, got %v", c.httpClient.Timeout)
	}
}

func TestBuildCookie(t *testing.T) {
	t.Parallel()

	sess := testSession
	schoolname := base64.StdEncoding.EncodeToString([]byte(testSchool))

	testCases := []struct {
		name      string
		school    string
		session   *Session
		expected  string
		expectErr bool
	}{
		{
			name:      "NoSchoolNoSession",
			expectErr: true,
		},
		{
			name:      "SchoolWithoutSession",
			school:    testSchool,
			expectErr: true,
		},
		{
			name:      "SessionWithoutSchool",
			session:   &sess,
			expectErr: true,
		},
		{
			name:     "SchoolAndSession",
			school:   testSchool,
			session:  &sess,
			expected: fmt.Sprintf("JSESSIONID=S1; schoolname=%s", schoolname),
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := New()
			c.SetSchool(tc.school)
			c.session = tc.session

			cookie, err := c.BuildCookie()
			if (err != nil) != tc.expectErr {
				t.Fatalf("expected error: %v, got: %v", tc.expectErr, err)
			}

			if err == nil && cookie != tc.expected {
				t.Errorf("expected cookie %q, got %q", tc.expected, cookie)
			}
		})
	}
}

func TestGetJwtToken(t *testing.T) {
	t.Parallel()

	b := newTestBackend(t)
	c := b.client()

	token, err := c.GetJwtToken(context.Background())
	if err != nil {
		t.Fatalf("GetJwtToken() failed: %v", err)
	}

	if token != testToken {
		t.Errorf("expected token %q, got %q", testToken, token)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !strings.Contains(b.lastTokenCookie, "JSESSIONID=S1") {
		t.Errorf("token request did not carry the session cookie: %q", b.lastTokenCookie)
	}
}

func TestAPIRequestUnexpectedStatus(t *testing.T) {
	t.Parallel()

	b := newTestBackend(t)
	b.failToken = true
	c := b.client()

	if _, err := c.GetJwtToken(context.Background()); !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got: %v", err)
	}
}

func TestRPCSchoolQuery(t *testing.T) {
	t.Parallel()

	b := newTestBackend(t)
	c := b.client()

	if _, err := c.EnsureSession(context.Background()); err != nil {
		t.Fatalf("EnsureSession() failed: %v", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.lastSchoolQuery != testSchool {
		t.Errorf("expected school query %q, got %q", testSchool, b.lastSchoolQuery)
	}
}
