package http

import "github.com/apiprobe/apiprobe/packages/core/request"

// Transport issues a materialized request and returns the response. The
// diagnostic runner and the single-request path depend on this interface so
// tests can substitute a fake without touching the network.
type Transport interface {
	Do(d *request.Descriptor) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(d *request.Descriptor) (*Response, error)

func (f TransportFunc) Do(d *request.Descriptor) (*Response, error) {
	return f(d)
}
