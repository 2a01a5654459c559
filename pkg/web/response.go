package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ErrSent reports a write to a response after its terminal send.
var ErrSent = errors.New("web: response already sent")

// Response accumulates headers until a terminal Send call writes the status
// code and body. A response is sent at most once; later sends and header
// mutations return ErrSent.
type Response struct {
	c       *gin.Context
	headers http.Header
	sent    bool
}

func newResponse(c *gin.Context) *Response {
	return &Response{c: c, headers: http.Header{}}
}

// Header records a header to be written by the terminal send.
func (r *Response) Header(key, value string) error {
	if r.sent {
		return ErrSent
	}
	r.headers.Add(key, value)
	return nil
}

func (r *Response) flushHeaders() {
	h := r.c.Writer.Header()
	for k, vs := range r.headers {
		for _, v := range vs {
			h.Add(k, v)
		}
	}
}

// Send writes the status code, the accumulated headers and a string body.
// Content-Length is always set from the body's byte length.
func (r *Response) Send(code int, body string) error {
	if r.sent {
		return ErrSent
	}
	r.sent = true
	r.headers.Set("Content-Length", strconv.Itoa(len(body)))
	r.flushHeaders()
	r.c.Writer.WriteHeader(code)
	_, err := io.WriteString(r.c.Writer, body)
	return err
}

// SendStream writes the status code and copies body to the client. No
// Content-Length is set; the server handles chunked or deferred lengths.
func (r *Response) SendStream(code int, body io.Reader) error {
	if r.sent {
		return ErrSent
	}
	r.sent = true
	r.flushHeaders()
	r.c.Writer.WriteHeader(code)
	_, err := io.Copy(r.c.Writer, body)
	return err
}

// SendJSON sets Content-Type: application/json before delegating to Send.
func (r *Response) SendJSON(code int, body string) error {
	if r.sent {
		return ErrSent
	}
	r.headers.Set("Content-Type", "application/json")
	return r.Send(code, body)
}

// SendJSONStream sets Content-Type: application/json before delegating to
// SendStream.
func (r *Response) SendJSONStream(code int, body io.Reader) error {
	if r.sent {
		return ErrSent
	}
	r.headers.Set("Content-Type", "application/json")
	return r.SendStream(code, body)
}

// JSON marshals v and sends it as an application/json body.
func (r *Response) JSON(code int, v any) error {
	if r.sent {
		return ErrSent
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("web: marshal response body: %w", err)
	}
	return r.SendJSON(code, string(b))
}
