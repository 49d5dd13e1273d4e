// Package lifecycle holds shared constants for graceful startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds startup probes and graceful shutdown of infrastructure
// components (HTTP server, database pool).
const DefaultTimeout = 10 * time.Second
