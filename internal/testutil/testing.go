package testutil

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shuul-console/internal/api"
	"shuul-console/internal/config"
	"shuul-console/internal/console"
	"shuul-console/internal/middlewares"
)

// TestContext holds everything needed for testing
type TestContext struct {
	AppContext  *middlewares.AppContext
	Request     *http.Request
	Response    *httptest.ResponseRecorder
	FakeSession *FakeSessionProvider
	LogHandler  *TestLogHandler
}

// NewTestContextWithURL creates a complete test setup with sensible defaults
func NewTestContextWithURL(t *testing.T, method, url string) *TestContext {
	t.Helper()

	cfg := &config.Config{}
	cfg.Locale = config.DefaultLocaleConfig

	logHandler := NewTestLogHandler()
	logger := slog.New(logHandler)

	fakeSession := NewFakeSessionProvider()

	req := httptest.NewRequest(method, url, nil)
	rr := httptest.NewRecorder()

	appCtx := &middlewares.AppContext{
		Context:        req.Context(),
		Config:         cfg,
		Logger:         logger,
		SessionManager: fakeSession,
		Request:        req,
		Response:       rr,
	}

	return &TestContext{
		AppContext:  appCtx,
		Request:     req,
		Response:    rr,
		FakeSession: fakeSession,
		LogHandler:  logHandler,
	}
}

// WithJSONBody replaces the request with one carrying the given payload.
func (tc *TestContext) WithJSONBody(t *testing.T, payload any) *TestContext {
	t.Helper()

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("could not marshal request body: %v", err)
	}

	req := httptest.NewRequest(tc.Request.Method, tc.Request.URL.String(), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return tc.WithRequest(req)
}

// WithRequest sets a custom request.
func (tc *TestContext) WithRequest(req *http.Request) *TestContext {
	tc.Request = req
	tc.AppContext.Request = req
	tc.AppContext.Context = req.Context()
	return tc
}

// WithAPI points the context's API client and console registry at a server,
// usually an httptest.Server standing in for the backend.
func (tc *TestContext) WithAPI(client *api.Client) *TestContext {
	tc.AppContext.API = client
	tc.AppContext.Consoles = console.NewRegistry(client, time.Hour, nil)
	return tc
}

// WithConfig overrides the default config.
func (tc *TestContext) WithConfig(cfg *config.Config) *TestContext {
	tc.AppContext.Config = cfg
	return tc
}

// CallHandler executes a handler with the test context
func (tc *TestContext) CallHandler(handler middlewares.AppHandler) {
	handler(tc.AppContext)
}

// AssertStatus checks the HTTP status code
func (tc *TestContext) AssertStatus(t *testing.T, expectedStatus int) {
	t.Helper()
	if tc.Response.Code != expectedStatus {
		t.Errorf("Expected status %d, got %d", expectedStatus, tc.Response.Code)
	}
}

// GetJSONResponse parses the response body as JSON
func (tc *TestContext) GetJSONResponse(t *testing.T) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(tc.Response.Body.Bytes(), &response); err != nil {
		t.Fatalf("Could not parse JSON response: %v", err)
	}
	return response
}

// AssertJSONBool checks a boolean field in the JSON response.
func (tc *TestContext) AssertJSONBool(t *testing.T, field string, expected bool) {
	t.Helper()
	response := tc.GetJSONResponse(t)
	actual, exists := response[field]

	if !exists {
		t.Errorf("Field %s not found in response", field)
		return
	}

	actualBool, ok := actual.(bool)
	if !ok {
		t.Errorf("Expected %s to be a boolean, got %T", field, actual)
		return
	}

	if actualBool != expected {
		t.Errorf("Expected %s to be %v, got %v", field, expected, actualBool)
	}
}

// AssertJSONString checks a string field in the JSON response.
func (tc *TestContext) AssertJSONString(t *testing.T, field string, expected string) {
	t.Helper()
	response := tc.GetJSONResponse(t)
	actual, exists := response[field]

	if !exists {
		t.Errorf("Field %s not found in response", field)
		return
	}

	actualString, ok := actual.(string)
	if !ok {
		t.Errorf("Expected %s to be a string, got %T", field, actual)
		return
	}

	if actualString != expected {
		t.Errorf("Expected %s to be %q, got %q", field, expected, actualString)
	}
}

func (tc *TestContext) AssertLogContains(t *testing.T, level slog.Level, message string) {
	t.Helper()
	if !tc.LogHandler.ContainsMessage(level, message) {
		t.Errorf("Expected to find log entry with level %v containing message: %s", level, message)
	}
}

// EnvelopeServer builds an httptest server answering every request with the
// given envelope. The caller owns the server and must close it.
func EnvelopeServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("encoding fake envelope: %v", err)
		}
	}))
}
