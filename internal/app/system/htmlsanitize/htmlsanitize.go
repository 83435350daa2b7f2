// Package htmlsanitize strips dangerous markup from user-supplied HTML.
//
// Event descriptions are entered by organizers and rendered into pages, so
// they pass through bluemonday's UGC policy: basic formatting survives,
// scripts, event handlers, and javascript: URLs do not.
package htmlsanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	policy *bluemonday.Policy
)

// Sanitize returns s with unsafe HTML removed.
func Sanitize(s string) string {
	once.Do(func() {
		policy = bluemonday.UGCPolicy()
	})
	return policy.Sanitize(s)
}
