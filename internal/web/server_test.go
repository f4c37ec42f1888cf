package web

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/spamscope/internal/analysis"
	"github.com/yildizm/spamscope/internal/analyzer"
	"github.com/yildizm/spamscope/internal/config"
)

type stubService struct {
	mu     sync.Mutex
	calls  []string
	result *analysis.Result
	err    error
}

func (s *stubService) Analyze(ctx context.Context, text string) (*analysis.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, text)
	return s.result, s.err
}

func (s *stubService) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func testConfig() config.WebConfig {
	cfg := config.DefaultConfig().Web
	cfg.Mode = gin.TestMode
	cfg.Listen = "127.0.0.1:0"
	return cfg
}

func newTestServer(svc analyzer.Service) *Server {
	return NewServer(testConfig(), svc, nil)
}

func spamResult() *analysis.Result {
	return &analysis.Result{
		SpamDetection: analysis.SpamDetection{Result: "Spam"},
		AIDetection:   analysis.AIDetection{Percentage: analysis.Numeric(12)},
	}
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(&stubService{}), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "spamscope", body["service"])
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestIndexRendersIdle(t *testing.T) {
	w := do(t, newTestServer(&stubService{}), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "AI &amp; Spam Detector")
	assert.Contains(t, body, "Enter SMS message or any text here...")
	assert.Contains(t, body, "Analyze Text")
	assert.NotContains(t, body, `class="error"`)
	assert.NotContains(t, body, "Analysis Results")
}

func postForm(text string) *http.Request {
	form := url.Values{"text": {text}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestSubmitFormSuccess(t *testing.T) {
	svc := &stubService{result: spamResult()}
	w := do(t, newTestServer(svc), postForm("Win a free prize now!"))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<p class="spam">Spam</p>`)
	assert.Contains(t, body, "This message is likely 12% written by AI.")
	assert.Contains(t, body, "Win a free prize now!")
	assert.Equal(t, []string{"Win a free prize now!"}, svc.calls)
}

func TestSubmitFormBlank(t *testing.T) {
	svc := &stubService{result: spamResult()}
	w := do(t, newTestServer(svc), postForm("   "))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter some text to analyze.")
	assert.Equal(t, 0, svc.callCount())
}

func postJSON(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAnalyzeAPI(t *testing.T) {
	tests := []struct {
		name       string
		svc        *stubService
		body       string
		wantStatus int
		check      func(t *testing.T, screen analyzer.Screen)
	}{
		{
			name:       "success",
			svc:        &stubService{result: spamResult()},
			body:       `{"text":"Win a free prize now!"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, screen analyzer.Screen) {
				require.NotNil(t, screen.Results)
				assert.Equal(t, "Spam", screen.Results.SpamLabel)
				assert.Equal(t, analyzer.ClassSpam, screen.Results.SpamClass)
				assert.Empty(t, screen.Error)
			},
		},
		{
			name:       "blank text",
			svc:        &stubService{result: spamResult()},
			body:       `{"text":"  "}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, screen analyzer.Screen) {
				assert.Equal(t, analyzer.ValidationMessage, screen.Error)
				assert.Nil(t, screen.Results)
			},
		},
		{
			name:       "missing text",
			svc:        &stubService{result: spamResult()},
			body:       `{}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, screen analyzer.Screen) {
				assert.Equal(t, analyzer.ValidationMessage, screen.Error)
			},
		},
		{
			name:       "service failure",
			svc:        &stubService{err: analysis.NewStatusError(http.StatusInternalServerError, "boom")},
			body:       `{"text":"Hello friend"}`,
			wantStatus: http.StatusBadGateway,
			check: func(t *testing.T, screen analyzer.Screen) {
				assert.Equal(t, analyzer.ServiceFailureMessage, screen.Error)
				assert.NotContains(t, screen.Error, "boom")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newTestServer(tt.svc), postJSON(tt.body))
			assert.Equal(t, tt.wantStatus, w.Code)

			var screen analyzer.Screen
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &screen))
			tt.check(t, screen)
		})
	}
}

func TestAnalyzeAPIBadJSON(t *testing.T) {
	svc := &stubService{}
	w := do(t, newTestServer(svc), postJSON(`{"text":`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, 0, svc.callCount())
}

func TestCORSAllowedOrigin(t *testing.T) {
	s := newTestServer(&stubService{})

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := do(t, s, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	s := newTestServer(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w := do(t, s, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDIsKeptWhenValid(t *testing.T) {
	s := newTestServer(&stubService{})
	id := "3f8b7c1e-5a2d-4f4e-9d6b-1c2a3b4c5d6e"

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, id)
	w := do(t, s, req)

	assert.Equal(t, id, w.Header().Get(RequestIDHeader))
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(&stubService{})
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
