package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/stepwise-backend/internal/domain"
	"github.com/yungbote/stepwise-backend/internal/platform/ctxutil"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
	"github.com/yungbote/stepwise-backend/internal/services"
)

type stubAuth struct {
	services.AuthService
	tokens map[string]*ctxutil.RequestData
}

func (s stubAuth) SetContextFromToken(ctx context.Context, tok string) (context.Context, error) {
	rd, ok := s.tokens[tok]
	if !ok {
		return ctx, errors.New("bad token")
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := stubAuth{tokens: map[string]*ctxutil.RequestData{
		"student": {UserID: uuid.New(), Role: types.RoleStudent},
		"admin":   {UserID: uuid.New(), Role: types.RoleAdmin},
	}}
	am := NewAuthMiddleware(logger.Nop(), auth)
	r := gin.New()
	r.GET("/me", am.RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/admin", am.RequireAuth(), am.RequireRole(types.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func doGet(r http.Handler, path, auth string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", "Bearer "+auth)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestRequireAuthAndRole(t *testing.T) {
	r := newAuthRouter()
	cases := []struct {
		path, token string
		want        int
	}{
		{"/me", "", http.StatusUnauthorized},
		{"/me", "forged", http.StatusUnauthorized},
		{"/me", "student", http.StatusOK},
		{"/admin", "student", http.StatusForbidden},
		{"/admin", "admin", http.StatusOK},
		{"/admin", "", http.StatusUnauthorized},
		{"/me?token=student", "", http.StatusOK},
	}
	for _, tc := range cases {
		if got := doGet(r, tc.path, tc.token); got != tc.want {
			t.Errorf("GET %s with %q: got=%d want=%d", tc.path, tc.token, got, tc.want)
		}
	}
}

func TestRateLimiterReturns429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim := NewIPRateLimiter(3)
	r := gin.New()
	r.POST("/login", lim.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}
	for i := 0; i < 3; i++ {
		if got := send("10.0.0.1"); got != http.StatusOK {
			t.Fatalf("request %d: got=%d", i, got)
		}
	}
	if got := send("10.0.0.1"); got != http.StatusTooManyRequests {
		t.Fatalf("fourth request: got=%d want=429", got)
	}
	if got := send("10.0.0.2"); got != http.StatusOK {
		t.Fatalf("other ip: got=%d", got)
	}
}

func TestRateLimiterForgetsIdleClients(t *testing.T) {
	lim := NewIPRateLimiter(1)
	now := time.Now()
	lim.now = func() time.Time { return now }
	if !lim.allow("a") || lim.allow("a") {
		t.Fatalf("expected one request then a refusal")
	}
	now = now.Add(limiterIdleTTL + time.Minute)
	lim.allow("b")
	if _, ok := lim.limiters["a"]; ok {
		t.Fatalf("idle limiter should have been pruned")
	}
}

func TestAttachTraceContextSetsHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	var td *ctxutil.TraceData
	r.GET("/x", func(c *gin.Context) {
		td = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-Id") != "req-123" || td == nil || td.RequestID != "req-123" {
		t.Fatalf("request id not propagated")
	}
	if rec.Header().Get("X-Trace-Id") == "" || td.TraceID == "" {
		t.Fatalf("trace id missing")
	}
}
