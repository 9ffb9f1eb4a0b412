package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-ddd-event-management/config"
	"github.com/oksasatya/go-ddd-event-management/internal/container"
	"github.com/oksasatya/go-ddd-event-management/internal/domain/repository/repotest"
	"github.com/oksasatya/go-ddd-event-management/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-event-management/pkg/helpers"
)

func testContainer(mutate func(cfg *config.Config)) *container.Container {
	cfg := &config.Config{
		JWTAccessSecret: "router-secret",
		AccessTTL:       time.Minute,
		BcryptCost:      bcrypt.MinCost,
		APIBackendName:  "flask",
	}
	if mutate != nil {
		mutate(cfg)
	}
	return &container.Container{
		Config: cfg,
		Logger: helpers.NewDiscardLogger(),
		JWT:    helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL),
		Users:  repotest.NewUsers(),
		Events: repotest.NewEvents(),
	}
}

func send(h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func loginToken(t *testing.T, h http.Handler) string {
	t.Helper()
	require.Equal(t, http.StatusCreated, send(h, http.MethodPost, "/register", `{"username":"u","password":"p"}`).Code)
	w := send(h, http.MethodPost, "/login", `{"username":"u","password":"p"}`)
	require.Equal(t, http.StatusOK, w.Code)
	tok := strings.TrimSuffix(strings.TrimPrefix(w.Body.String(), `{"access_token":"`), `"}`)
	require.NotEmpty(t, tok)
	return tok
}

func init() { gin.SetMode(gin.TestMode) }

func TestEngine_HealthAndRequestID(t *testing.T) {
	r := NewEngine(testContainer(nil))

	w := send(r, http.MethodGet, "/test", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"The server is running"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestEngine_CORS(t *testing.T) {
	r := NewEngine(testContainer(nil))

	w := send(r, http.MethodOptions, "/api/flask/events", "",
		"Origin", "http://localhost:3000",
		"Access-Control-Request-Method", "POST",
	)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = send(r, http.MethodGet, "/test", "", "Origin", "http://localhost:3000")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestEngine_CORSRestricted(t *testing.T) {
	r := NewEngine(testContainer(func(cfg *config.Config) { cfg.CORSAllowedOrigins = "http://app.test" }))

	w := send(r, http.MethodGet, "/test", "", "Origin", "http://app.test")
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))

	w = send(r, http.MethodGet, "/test", "", "Origin", "http://evil.test")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestEngine_LaunchScenario(t *testing.T) {
	r := NewEngine(testContainer(nil))

	w := send(r, http.MethodPost, "/api/flask/event", `{"name":"Launch","date":"2025-01-01","location":"HQ","description":"kickoff"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Launch","date":"2025-01-01","location":"HQ","description":"kickoff"}`, w.Body.String())

	w = send(r, http.MethodGet, "/api/flask/events", "")
	assert.JSONEq(t, `[{"id":1,"name":"Launch","date":"2025-01-01","location":"HQ","description":"kickoff"}]`, w.Body.String())

	assert.Equal(t, http.StatusOK, send(r, http.MethodDelete, "/api/flask/events/1", "").Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodGet, "/api/flask/events/1", "").Code)
}

func TestEngine_BackendName(t *testing.T) {
	r := NewEngine(testContainer(func(cfg *config.Config) { cfg.APIBackendName = "go" }))

	assert.Equal(t, http.StatusOK, send(r, http.MethodGet, "/api/go/events", "").Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodGet, "/api/flask/events", "").Code)
}

func TestEngine_EventsRequireAuth(t *testing.T) {
	r := NewEngine(testContainer(func(cfg *config.Config) { cfg.EventsRequireAuth = true }))
	body := `{"name":"Launch","date":"2025-01-01","location":"HQ"}`

	w := send(r, http.MethodPost, "/api/flask/event", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"missing access token"}`, w.Body.String())

	w = send(r, http.MethodPost, "/api/flask/event", body, "Authorization", "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tok := loginToken(t, r)
	assert.Equal(t, http.StatusCreated, send(r, http.MethodPost, "/api/flask/event", body, "Authorization", "Bearer "+tok).Code)
	assert.Equal(t, http.StatusUnauthorized, send(r, http.MethodDelete, "/api/flask/events/1", "").Code)

	// reads stay public
	assert.Equal(t, http.StatusOK, send(r, http.MethodGet, "/api/flask/events", "").Code)
	assert.Equal(t, http.StatusOK, send(r, http.MethodGet, "/api/flask/events/1", "").Code)
}

func TestEngine_LogoutRevokesWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	c := testContainer(func(cfg *config.Config) {
		cfg.EventsRequireAuth = true
		cfg.RedisAddr = mr.Addr()
	})
	c.Redis = helpers.NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Redis.Close() })
	r := NewEngine(c)

	tok := loginToken(t, r)
	auth := []string{"Authorization", "Bearer " + tok}
	body := `{"name":"n","date":"d","location":"l"}`

	assert.Equal(t, http.StatusCreated, send(r, http.MethodPost, "/api/flask/event", body, auth...).Code)
	assert.Equal(t, http.StatusOK, send(r, http.MethodPost, "/logout", "", auth...).Code)
	assert.Equal(t, http.StatusUnauthorized, send(r, http.MethodPost, "/api/flask/event", body, auth...).Code)
}

func TestEngine_DebugVars(t *testing.T) {
	off := NewEngine(testContainer(nil))
	assert.Equal(t, http.StatusNotFound, send(off, http.MethodGet, "/api/debug/vars", "").Code)

	on := NewEngine(testContainer(func(cfg *config.Config) { cfg.DebugMetricsEnabled = true }))
	w := send(on, http.MethodGet, "/api/debug/vars", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "memstats")
}
