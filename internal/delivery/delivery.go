// Package delivery defines the contract every transport front end satisfies.
package delivery

import "context"

// Delivery is a transport front end (HTTP today) managed by the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
