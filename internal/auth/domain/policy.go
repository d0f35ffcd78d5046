package domain

import (
	"strings"
)

// Access is the requirement a route rule places on the caller.
type Access int

const (
	// AccessAuthenticated requires any valid principal.
	AccessAuthenticated Access = iota
	// AccessPublic admits every caller, with or without a token.
	AccessPublic
	// AccessRoles requires the principal's role to be one of Rule.Roles.
	AccessRoles
	// AccessSelfOrAdmin requires the path parameter named by Rule.IdentityParam to
	// equal the principal's subject, or the principal to be ADMIN.
	AccessSelfOrAdmin
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessRoles:
		return "roles"
	case AccessSelfOrAdmin:
		return "self_or_admin"
	default:
		return "authenticated"
	}
}

// Decision is the outcome of evaluating a route policy for a request.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionUnauthenticated
	DecisionForbidden
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionUnauthenticated:
		return "unauthenticated"
	default:
		return "forbidden"
	}
}

// Rule maps a method and path pattern to an access requirement.
//
// Pattern segments are literal, ":name" (captures one segment) or "*" (matches
// one segment). A trailing "/*" matches any remaining path and a bare "*" matches
// every path. An empty Method or "*" matches every method.
type Rule struct {
	Method        string
	Pattern       string
	Access        Access
	Roles         []Role
	IdentityParam string
}

// RoutePolicy is an ordered, immutable rule table. The first matching rule wins;
// requests no rule matches require authentication.
type RoutePolicy struct {
	rules []Rule
}

// NewRoutePolicy copies rules into a policy.
func NewRoutePolicy(rules ...Rule) *RoutePolicy {
	copied := make([]Rule, len(rules))
	for i, r := range rules {
		r.Roles = append([]Role(nil), r.Roles...)
		copied[i] = r
	}
	return &RoutePolicy{rules: copied}
}

// DefaultRoutePolicy returns the policy for the routes this service exposes.
func DefaultRoutePolicy() *RoutePolicy {
	return NewRoutePolicy(
		Rule{Method: "OPTIONS", Pattern: "*", Access: AccessPublic},
		Rule{Method: "GET", Pattern: "/", Access: AccessPublic},
		Rule{Method: "GET", Pattern: "/health", Access: AccessPublic},
		Rule{Method: "GET", Pattern: "/ready", Access: AccessPublic},
		Rule{Method: "POST", Pattern: "/api/auth/login", Access: AccessPublic},
		Rule{Method: "POST", Pattern: "/api/auth/refresh", Access: AccessPublic},
		Rule{Method: "GET", Pattern: "/api/members", Access: AccessRoles, Roles: []Role{RoleAdmin}},
		Rule{Method: "POST", Pattern: "/api/members", Access: AccessRoles, Roles: []Role{RoleAdmin}},
		Rule{Method: "GET", Pattern: "/api/members/:id", Access: AccessSelfOrAdmin, IdentityParam: "id"},
		Rule{Method: "PUT", Pattern: "/api/members/:id", Access: AccessSelfOrAdmin, IdentityParam: "id"},
		Rule{Method: "DELETE", Pattern: "/api/members/:id", Access: AccessSelfOrAdmin, IdentityParam: "id"},
	)
}

// Decide evaluates the policy for a request. principal is nil for
// unauthenticated requests.
func (p *RoutePolicy) Decide(method, path string, principal *Principal) Decision {
	rule, params, ok := p.match(method, path)
	if !ok {
		rule = Rule{Access: AccessAuthenticated}
	}

	if rule.Access == AccessPublic {
		return DecisionAllow
	}
	if principal == nil {
		return DecisionUnauthenticated
	}

	switch rule.Access {
	case AccessRoles:
		for _, role := range rule.Roles {
			if principal.Role == role {
				return DecisionAllow
			}
		}
		return DecisionForbidden
	case AccessSelfOrAdmin:
		if principal.IsAdmin() {
			return DecisionAllow
		}
		if id, ok := params[rule.IdentityParam]; ok && id != "" && id == principal.Subject {
			return DecisionAllow
		}
		return DecisionForbidden
	default:
		return DecisionAllow
	}
}

// Rule returns the rule matching the request, if any.
func (p *RoutePolicy) Rule(method, path string) (Rule, bool) {
	rule, _, ok := p.match(method, path)
	return rule, ok
}

func (p *RoutePolicy) match(method, path string) (Rule, map[string]string, bool) {
	path = normalizePath(path)
	for _, rule := range p.rules {
		if rule.Method != "" && rule.Method != "*" && !strings.EqualFold(rule.Method, method) {
			continue
		}
		if params, ok := matchPattern(rule.Pattern, path); ok {
			return rule, params, true
		}
	}
	return Rule{}, nil, false
}

// matchPattern matches a request path against a rule pattern and returns the
// captured ":name" segments.
//
// Examples:
//   - "*" matches any path
//   - "/api/members/*" matches "/api/members/a" and "/api/members/a/b"
//   - "/api/members/:id" matches "/api/members/alice" with id=alice
func matchPattern(pattern, path string) (map[string]string, bool) {
	if pattern == "*" {
		return nil, true
	}

	pattern = normalizePath(pattern)

	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")

	// Trailing wildcard (/*): prefix match (greedy - matches remaining path)
	if strings.HasSuffix(pattern, "/*") {
		patternParts = patternParts[:len(patternParts)-1]
		if len(pathParts) <= len(patternParts) {
			return nil, false
		}
		return matchSegments(patternParts, pathParts[:len(patternParts)])
	}

	if len(patternParts) != len(pathParts) {
		return nil, false
	}
	return matchSegments(patternParts, pathParts)
}

func matchSegments(patternParts, pathParts []string) (map[string]string, bool) {
	var params map[string]string
	for i, part := range patternParts {
		switch {
		case strings.HasPrefix(part, ":"):
			if pathParts[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[part[1:]] = pathParts[i]
		case part == "*":
			if pathParts[i] == "" {
				return nil, false
			}
		case part != pathParts[i]:
			return nil, false
		}
	}
	return params, true
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}
