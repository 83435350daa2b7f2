// Package timeouts provides centralized timeout values for handler operations.
//
// These timeouts are used with context.WithTimeout for database operations
// in HTTP handlers. Using centralized values ensures consistency and makes
// it easy to adjust timeouts across the application.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Short: simple single-row reads or lookups
//   - Medium: list queries, moderate writes
//   - Long: deletes with cleanup, multi-table transactions
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
)

// Ping returns the timeout for health checks and connectivity verification.
func Ping() time.Duration { return ping }

// Short returns the timeout for simple operations like single-row reads.
// Examples: get event by ID, lookup user by username, render a form.
func Short() time.Duration { return short }

// Medium returns the timeout for moderate operations like list queries.
// Examples: event listings, registration lists, creates and updates.
func Medium() time.Duration { return medium }

// Long returns the timeout for transactions touching multiple tables.
// Examples: deleting an event together with its registrations.
func Long() time.Duration { return long }
