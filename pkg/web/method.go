package web

import "fmt"

// Method enumerates the HTTP methods a route can be registered under.
type Method int

const (
	GET Method = iota
	POST
	PUT
	PATCH
	DELETE
)

// String returns the wire name of the method. The mapping is total over the
// five defined methods; any other value is a programming error and panics.
func (m Method) String() string {
	switch m {
	case GET:
		return "GET"
	case POST:
		return "POST"
	case PUT:
		return "PUT"
	case PATCH:
		return "PATCH"
	case DELETE:
		return "DELETE"
	default:
		panic(fmt.Sprintf("web: invalid method %d", int(m)))
	}
}
