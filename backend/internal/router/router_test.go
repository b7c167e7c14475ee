package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msgboard/msgboard/backend/internal/setup"
	"github.com/msgboard/msgboard/backend/internal/storage/memory"
	"github.com/msgboard/msgboard/shared/config"
)

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	deps := setup.NewDependencies(cfg, memory.New())
	srv := httptest.NewServer(New(deps))
	t.Cleanup(func() {
		srv.Close()
		require.NoError(t, deps.Close())
	})
	return srv
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Public.Storage.Driver = config.DriverMemory
	cfg.Public.PostRateLimit.Rate = 0
	return cfg
}

func do(t *testing.T, srv *httptest.Server, method, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func TestBoardLifecycle(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp, body := do(t, srv, http.MethodPost, "/api/threads/general", url.Values{"text": {"first"}, "delete_password": {"p1"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var thread struct {
		Id string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &thread))
	require.NotEmpty(t, thread.Id)

	_, body = do(t, srv, http.MethodPost, "/api/replies/general", url.Values{"thread_id": {thread.Id}, "text": {"hi"}, "delete_password": {"p2"}})
	var board struct {
		Name    string `json:"name"`
		Threads []struct {
			Replies []struct {
				Id string `json:"_id"`
			} `json:"replies"`
		} `json:"threads"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &board))
	require.Len(t, board.Threads, 1)
	require.Len(t, board.Threads[0].Replies, 1)
	replyId := board.Threads[0].Replies[0].Id

	_, body = do(t, srv, http.MethodGet, "/api/threads/general", nil)
	var previews []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &previews))
	require.Len(t, previews, 1)
	assert.Equal(t, float64(1), previews[0]["replycount"])

	_, body = do(t, srv, http.MethodPut, "/api/replies/general", url.Values{"thread_id": {thread.Id}, "reply_id": {replyId}})
	assert.Equal(t, "reported", body)

	_, body = do(t, srv, http.MethodDelete, "/api/replies/general", url.Values{"thread_id": {thread.Id}, "reply_id": {replyId}, "delete_password": {"wrong"}})
	assert.Equal(t, "incorrect password", body)

	_, body = do(t, srv, http.MethodDelete, "/api/replies/general", url.Values{"thread_id": {thread.Id}, "reply_id": {replyId}, "delete_password": {"p2"}})
	assert.Equal(t, "success", body)

	_, body = do(t, srv, http.MethodGet, "/api/replies/general?thread_id="+thread.Id, nil)
	assert.Contains(t, body, `"text":"[deleted]"`)

	_, body = do(t, srv, http.MethodPut, "/api/threads/general", url.Values{"report_id": {thread.Id}})
	assert.Equal(t, "reported", body)

	_, body = do(t, srv, http.MethodDelete, "/api/threads/general", url.Values{"thread_id": {thread.Id}, "delete_password": {"p1"}})
	assert.Equal(t, "success", body)

	_, body = do(t, srv, http.MethodGet, "/api/threads/nope", nil)
	assert.JSONEq(t, `{"error":"No board with this name"}`, body)
}

func TestEmptyBodyIsAnUnknownId(t *testing.T) {
	srv := newTestServer(t, testConfig())
	do(t, srv, http.MethodPost, "/api/threads/general", url.Values{"text": {"t"}, "delete_password": {"p"}})

	empty := func(method, path string) string {
		req, err := http.NewRequest(method, srv.URL+path, nil)
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		return string(raw)
	}

	assert.JSONEq(t, `{"error":"Thread not found"}`, empty(http.MethodPut, "/api/threads/general"))
	assert.JSONEq(t, `{"error":"Thread not found"}`, empty(http.MethodDelete, "/api/threads/general"))
	assert.JSONEq(t, `{"error":"Thread not found"}`, empty(http.MethodPut, "/api/replies/general"))
	assert.JSONEq(t, `{"error":"Thread not found"}`, empty(http.MethodDelete, "/api/replies/general"))
}

func TestPostRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Public.PostRateLimit = config.RateLimit{Rate: 0.001, Burst: 1}
	srv := newTestServer(t, cfg)
	form := url.Values{"text": {"t"}, "delete_password": {"p"}}

	resp, _ := do(t, srv, http.MethodPost, "/api/threads/general", form)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPost, "/api/threads/general", form)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/api/threads/general", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "reads are not limited")
}

func TestDefaultConfigDoesNotLimitPosts(t *testing.T) {
	cfg := config.Default()
	cfg.Public.Storage.Driver = config.DriverMemory
	srv := newTestServer(t, cfg)

	for i := range 11 {
		resp, body := do(t, srv, http.MethodPost, "/api/threads/general", url.Values{"text": {"t"}, "delete_password": {"p"}})
		require.Equal(t, http.StatusOK, resp.StatusCode, "post %d: %s", i+1, body)
	}

	_, body := do(t, srv, http.MethodGet, "/api/threads/general", nil)
	var previews []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &previews))
	assert.Len(t, previews, 10)
}

func TestTextComesBackAsPosted(t *testing.T) {
	cfg := config.Default()
	cfg.Public.Storage.Driver = config.DriverMemory
	srv := newTestServer(t, cfg)
	text := "if a<b && c>d {} and Vec<int> v"

	_, body := do(t, srv, http.MethodPost, "/api/threads/general", url.Values{"text": {text}, "delete_password": {"p"}})
	var thread struct {
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &thread))
	assert.Equal(t, text, thread.Text)
}

func TestOperationalRoutes(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp, body := do(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)

	resp, body = do(t, srv, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)

	do(t, srv, http.MethodGet, "/api/threads/general", nil)
	resp, body = do(t, srv, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, "go_goroutines")
}

func TestSecurityHeadersApplied(t *testing.T) {
	srv := newTestServer(t, testConfig())

	resp, _ := do(t, srv, http.MethodGet, "/health", nil)

	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.NotEmpty(t, resp.Header.Get("Content-Security-Policy"))
	assert.Empty(t, resp.Header.Get("Strict-Transport-Security"))
}
