package ratelimit

import "strings"

// unlimited marks endpoints that are never limited.
var unlimited = EndpointConfig{Path: "/health", Method: "GET"}

// MatchEndpoint returns the configuration for a request, or nil when the
// default limit applies. An exact path match wins; otherwise the longest
// matching prefix entry (path ending in "/") is used.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == unlimited.Path && method == unlimited.Method {
		u := unlimited
		return &u
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			if best == nil || len(c.Path) > len(best.Path) {
				best = c
			}
		}
	}
	return best
}
