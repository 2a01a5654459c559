package web

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
)

// Request is the inbound half of an exchange.
type Request struct {
	c *gin.Context
}

func newRequest(c *gin.Context) *Request { return &Request{c: c} }

// Context returns the request-scoped context.
func (r *Request) Context() context.Context { return r.c.Request.Context() }

// Param returns the value of a path parameter such as ":id".
func (r *Request) Param(name string) string { return r.c.Param(name) }

// Query returns the first value of a query parameter.
func (r *Request) Query(name string) string { return r.c.Query(name) }

// Header returns the first value of a request header.
func (r *Request) Header(name string) string { return r.c.GetHeader(name) }

// Body returns the request body stream.
func (r *Request) Body() io.ReadCloser { return r.c.Request.Body }

// ContentLength reports the declared body length, -1 when unknown.
func (r *Request) ContentLength() int64 { return r.c.Request.ContentLength }

// BindJSON decodes the request body into v.
func (r *Request) BindJSON(v any) error { return r.c.ShouldBindJSON(v) }

// Claims returns verified token claims set by the auth middleware, if any.
func (r *Request) Claims() (map[string]interface{}, bool) {
	v, ok := r.c.Get("claims")
	if !ok {
		return nil, false
	}
	cm, ok := v.(map[string]interface{})
	return cm, ok
}
