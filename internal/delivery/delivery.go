// Package delivery defines the contract shared by all inbound transports.
package delivery

import "context"

// Delivery is a long-running inbound surface (an HTTP server, a worker loop).
// Serve blocks until the surface stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
