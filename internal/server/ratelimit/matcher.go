package ratelimit

import "strings"

// Match returns the rule governing a request. unlimited is true for the
// configured Unlimited routes. Exact paths win over prefixes; requests
// matching no rule fall back to Default.
func (c *Config) Match(method, path string) (rule Rule, unlimited bool) {
	for _, u := range c.Unlimited {
		if u == method+" "+path {
			return Rule{}, true
		}
	}

	for _, r := range c.Rules {
		if methodMatches(r, method) && r.Path == path {
			return r, false
		}
	}
	for _, r := range c.Rules {
		if methodMatches(r, method) && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r, false
		}
	}
	return c.Default, false
}

func methodMatches(r Rule, method string) bool {
	return r.Method == "" || r.Method == method
}
