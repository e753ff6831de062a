package ratelimit

import "strings"

// MatchEndpoint resolves the rate limit rule for a request. An exact path
// match wins over a prefix match, so "/bulk-jobs" and "/bulk-jobs/{id}/ack"
// land in different tiers. Health checks match a zero rule, which the
// limiter treats as unlimited. Returns nil when no rule applies and the
// default limit should be used.
func MatchEndpoint(path string, method string, rules []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	var prefixMatch *EndpointConfig
	for i := range rules {
		rule := &rules[i]
		if rule.Method != method {
			continue
		}
		if rule.Path == path {
			return rule
		}
		if prefixMatch == nil && strings.HasSuffix(rule.Path, "/") && strings.HasPrefix(path, rule.Path) {
			prefixMatch = rule
		}
	}
	return prefixMatch
}
