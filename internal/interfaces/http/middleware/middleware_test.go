package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohana-chilli/storefront/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": c.GetString(RequestIDKey)})
	})
	r.POST("/echo", func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, body)
	})
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	return r
}

func get(r http.Handler, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID())

	w := get(r, "/ping", nil)
	generated := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.Contains(t, w.Body.String(), generated)

	given := uuid.New().String()
	w = get(r, "/ping", map[string]string{RequestIDHeader: given})
	assert.Equal(t, given, w.Header().Get(RequestIDHeader))

	w = get(r, "/ping", map[string]string{RequestIDHeader: "<script>"})
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
}

func TestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := newRouter(RequestID(), Logger(logger))

	get(r, "/ping", nil)
	get(r, "/missing", nil)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Equal(t, http.StatusOK, entries[0].Data["status_code"])
	assert.NotEmpty(t, entries[0].Data["request_id"])
	assert.Equal(t, logrus.WarnLevel, entries[1].Level)
	assert.Equal(t, "/missing", entries[1].Data["path"])
}

func TestCORS(t *testing.T) {
	r := newRouter(CORS(config.SecurityConfig{
		CORSAllowedOrigins: []string{"https://ohana.example", "*.chilli.example"},
		CORSAllowedMethods: []string{"GET", "POST"},
		CORSAllowedHeaders: []string{"Content-Type"},
	}))

	w := get(r, "/ping", map[string]string{"Origin": "https://ohana.example"})
	assert.Equal(t, "https://ohana.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = get(r, "/ping", map[string]string{"Origin": "https://menu.chilli.example"})
	assert.Equal(t, "https://menu.chilli.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = get(r, "/ping", map[string]string{"Origin": "https://evilchilli.example"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://ohana.example")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestSecurityHeaders(t *testing.T) {
	w := get(newRouter(SecurityHeaders()), "/ping", nil)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestRequestSizeLimit(t *testing.T) {
	r := newRouter(RequestSizeLimit(16))

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"notes":"`+strings.Repeat("x", 64)+`"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"a":1}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTimeout(t *testing.T) {
	r := newRouter(Timeout(20 * time.Millisecond))

	w := get(r, "/slow", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Request timeout")

	w = get(r, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaffOnly(t *testing.T) {
	r := newRouter(StaffOnly("s3cret"))

	assert.Equal(t, http.StatusUnauthorized, get(r, "/ping", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/ping", map[string]string{StaffKeyHeader: "nope"}).Code)
	assert.Equal(t, http.StatusOK, get(r, "/ping", map[string]string{StaffKeyHeader: "s3cret"}).Code)

	assert.Equal(t, http.StatusOK, get(newRouter(StaffOnly("")), "/ping", nil).Code)
}

func TestRateLimit_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	logger, _ := test.NewNullLogger()

	r := newRouter(RateLimit(config.SecurityConfig{RateLimitPerMinute: 2, RateLimitBurst: 2}, client, logger))

	w := get(r, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusOK, get(r, "/ping", nil).Code)

	w = get(r, "/ping", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, time.Minute, mr.TTL(keys[0]))

	mr.FastForward(time.Minute)
	assert.Equal(t, http.StatusOK, get(r, "/ping", nil).Code)
}

func TestRateLimit_CounterWithoutTTLExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	logger, _ := test.NewNullLogger()

	r := newRouter(RateLimit(config.SecurityConfig{RateLimitPerMinute: 2, RateLimitBurst: 2}, client, logger))
	require.Equal(t, http.StatusOK, get(r, "/ping", nil).Code)
	keys := mr.Keys()
	require.Len(t, keys, 1)

	// a counter left over at the limit with no expiry
	require.NoError(t, mr.Set(keys[0], "5"))
	require.NoError(t, client.Persist(context.Background(), keys[0]).Err())
	require.Zero(t, mr.TTL(keys[0]))

	assert.Equal(t, http.StatusTooManyRequests, get(r, "/ping", nil).Code)
	assert.Equal(t, time.Minute, mr.TTL(keys[0]))

	mr.FastForward(time.Minute)
	assert.Equal(t, http.StatusOK, get(r, "/ping", nil).Code)
}

func TestRateLimit_FallsBackWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	mr.Close()
	logger, hook := test.NewNullLogger()

	r := newRouter(RateLimit(config.SecurityConfig{RateLimitPerMinute: 1, RateLimitBurst: 1}, client, logger))

	assert.Equal(t, http.StatusOK, get(r, "/ping", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/ping", nil).Code)

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	assert.Equal(t, 1, warnings, "degradation is logged once")
}
