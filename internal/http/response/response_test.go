package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/stepwise-backend/internal/platform/apierr"
)

func serve(t *testing.T, expose bool, h gin.HandlerFunc) (*httptest.ResponseRecorder, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		c.Set(ExposeInternalKey, expose)
		h(c)
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	var env ErrorEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestRespondAPIErrorMapsStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apierr.NotFound("course_not_found", "course not found"), http.StatusNotFound, "course_not_found"},
		{apierr.Validation("bad", errors.New("bad input"), map[string]string{"title": "required"}), http.StatusBadRequest, "bad"},
		{apierr.Conflict("already_enrolled", "dup"), http.StatusConflict, "already_enrolled"},
		{apierr.Forbidden("not_enrolled", "no"), http.StatusForbidden, "not_enrolled"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		rec, env := serve(t, false, func(c *gin.Context) { RespondAPIError(c, tc.err) })
		if rec.Code != tc.status {
			t.Errorf("%v: status got=%d want=%d", tc.err, rec.Code, tc.status)
		}
		if env.Success || env.Error.Code != tc.code {
			t.Errorf("%v: envelope %+v", tc.err, env)
		}
	}
}

func TestInternalMessagesHiddenUnlessExposed(t *testing.T) {
	_, env := serve(t, false, func(c *gin.Context) { RespondAPIError(c, apierr.Internal("db", errors.New("pq: secret detail"))) })
	if env.Error.Message != "internal server error" {
		t.Fatalf("message leaked: %q", env.Error.Message)
	}
	_, env = serve(t, true, func(c *gin.Context) { RespondAPIError(c, apierr.Internal("db", errors.New("pq: secret detail"))) })
	if env.Error.Message != "pq: secret detail" {
		t.Fatalf("message not exposed: %q", env.Error.Message)
	}
}

func TestValidationFieldsIncluded(t *testing.T) {
	_, env := serve(t, false, func(c *gin.Context) {
		RespondAPIError(c, apierr.Validation("invalid_course", errors.New("invalid course"), map[string]string{"title": "required"}))
	})
	if env.Error.Fields["title"] != "required" {
		t.Fatalf("fields missing: %+v", env.Error)
	}
}
