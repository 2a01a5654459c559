package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestServerOn_RoutesByMethod(t *testing.T) {
	s := New()
	s.On(GET, "/x", func(req *Request, res *Response) {
		_ = res.Send(http.StatusOK, "get")
	})
	s.On(POST, "/x", func(req *Request, res *Response) {
		_ = res.Send(http.StatusOK, "post")
	})

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, "get", w.Body.String())

	w = httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
	require.Equal(t, "post", w.Body.String())
}

func TestServerOn_LastRegistrationWins(t *testing.T) {
	s := New()
	s.On(GET, "/x", func(req *Request, res *Response) {
		_ = res.Send(http.StatusOK, "first")
	})
	s.On(GET, "/x", func(req *Request, res *Response) {
		_ = res.Send(http.StatusOK, "second")
	})

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "second", w.Body.String())
}

func TestServerOn_PathParams(t *testing.T) {
	s := New()
	s.On(GET, "/items/:id", func(req *Request, res *Response) {
		_ = res.Send(http.StatusOK, req.Param("id"))
	})

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/42", nil))
	require.Equal(t, "42", w.Body.String())
}

func TestServerOn_QueryParams(t *testing.T) {
	s := New()
	s.On(GET, "/search", func(req *Request, res *Response) {
		_ = res.Send(http.StatusOK, req.Query("q"))
	})

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search?q=needle", nil))
	require.Equal(t, "needle", w.Body.String())
}

func TestRequestClaims(t *testing.T) {
	s := New()
	// stand-in for the auth middleware, which stores verified claims
	s.Use(func(c *gin.Context) {
		c.Set("claims", map[string]interface{}{"sub": "user-1"})
	})
	s.On(GET, "/whoami", func(req *Request, res *Response) {
		claims, ok := req.Claims()
		require.True(t, ok)
		_ = res.Send(http.StatusOK, claims["sub"].(string))
	})

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.Equal(t, "user-1", w.Body.String())
}

func TestRequestClaims_AbsentWithoutMiddleware(t *testing.T) {
	s := New()
	s.On(GET, "/whoami", func(req *Request, res *Response) {
		_, ok := req.Claims()
		require.False(t, ok)
		_ = res.Send(http.StatusOK, "anonymous")
	})

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.Equal(t, "anonymous", w.Body.String())
}

func TestServerDefaultPort(t *testing.T) {
	s := New()
	require.Equal(t, 9080, s.port)
	s.SetPort(8123)
	require.Equal(t, 8123, s.port)
}
