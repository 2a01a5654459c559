package web

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// DefaultPort is the listen port unless SetPort or RunPort overrides it.
const DefaultPort = 9080

// Handler processes one request/response exchange. Handlers may be invoked
// concurrently for different exchanges; they must synchronize any shared
// state themselves.
type Handler func(req *Request, res *Response)

type routeKey struct {
	method  Method
	pattern string
}

// Server is a typed route table over a gin engine. Handlers live in an
// internal map so that re-registering a (method, pattern) pair replaces the
// earlier handler — gin itself panics on duplicate route registration.
type Server struct {
	engine *gin.Engine
	host   string
	port   int

	mu     sync.RWMutex
	routes map[routeKey]Handler
}

func New() *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())
	return &Server{
		engine: engine,
		port:   DefaultPort,
		routes: make(map[routeKey]Handler),
	}
}

// Use appends gin middleware (logging, auth, rate limiting) ahead of the
// registered routes. Call before On.
func (s *Server) Use(mw ...gin.HandlerFunc) { s.engine.Use(mw...) }

// Engine exposes the underlying gin engine for routes that do not go
// through the typed table (metrics, health, route groups).
func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) SetHost(host string) { s.host = host }
func (s *Server) SetPort(port int)    { s.port = port }

// On registers handler for method and pattern. The pattern is forwarded to
// gin verbatim. Registering the same pair again keeps only the last handler.
func (s *Server) On(method Method, pattern string, handler Handler) {
	key := routeKey{method: method, pattern: pattern}
	s.mu.Lock()
	_, installed := s.routes[key]
	s.routes[key] = handler
	s.mu.Unlock()
	if installed {
		return
	}
	s.engine.Handle(method.String(), pattern, func(c *gin.Context) {
		s.mu.RLock()
		h := s.routes[key]
		s.mu.RUnlock()
		h(newRequest(c), newResponse(c))
	})
}

// Run starts accepting connections on the configured host and port and
// blocks for the server's lifetime.
func (s *Server) Run() error {
	return s.engine.Run(fmt.Sprintf("%s:%d", s.host, s.port))
}

// RunPort rebinds the listen port, then delegates to Run.
func (s *Server) RunPort(port int) error {
	s.SetPort(port)
	return s.Run()
}

// ServeHTTP lets the server be driven directly by httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}
