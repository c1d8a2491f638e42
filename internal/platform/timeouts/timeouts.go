// Package timeouts defines shared timeout constants used across the service.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StoreOp caps a single store call made on behalf of a request.
const StoreOp = 5 * time.Second

// ExecuteUpstream caps one call to the third-party code execution API.
const ExecuteUpstream = 15 * time.Second

// SessionTTL is the lifetime of an admin session token.
const SessionTTL = 12 * time.Hour
