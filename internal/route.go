package internal

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// MethodWildcard registers a handler for every HTTP method.
const MethodWildcard = "*"

var placeholderRe = regexp.MustCompile(`<([a-zA-Z_][a-zA-Z0-9_]*)>`)

// route is one entry in the route table: a compiled pattern plus a
// method-to-handler map.
type route struct {
	pattern string
	re      *regexp.Regexp
	params  []string
	methods map[string]HandlerFunc
}

// allows reports whether the route handles the given method and returns
// the handler. A wildcard entry matches any method.
func (rt *route) allows(method string) (HandlerFunc, bool) {
	if h, ok := rt.methods[method]; ok {
		return h, true
	}
	if h, ok := rt.methods[MethodWildcard]; ok {
		return h, true
	}
	return nil, false
}

// routeTable holds routes in registration order. Matching tries routes
// in that order and picks the first whose pattern matches the path and
// whose method set contains the request method.
type routeTable struct {
	routes    []*route
	byPattern map[string]*route
}

func newRouteTable() *routeTable {
	return &routeTable{byPattern: make(map[string]*route)}
}

// compilePattern translates a path template into an anchored regexp.
// Placeholder segments (<name>) match one or more non-slash characters
// and bind the match to the name. Everything else is literal.
func compilePattern(pattern string) (*regexp.Regexp, []string, error) {
	var (
		b      strings.Builder
		params []string
		last   int
	)
	b.WriteString("^")
	for _, loc := range placeholderRe.FindAllStringSubmatchIndex(pattern, -1) {
		b.WriteString(regexp.QuoteMeta(pattern[last:loc[0]]))
		name := pattern[loc[2]:loc[3]]
		params = append(params, name)
		fmt.Fprintf(&b, "(?P<%s>[^/]+)", name)
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(pattern[last:]))
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, nil, fmt.Errorf("invalid route pattern %q: %w", pattern, err)
	}
	return re, params, nil
}

// add registers a handler for the pattern and methods. Re-registering an
// existing (pattern, method) pair replaces the handler in place; the
// route keeps its original position in the matching order. An empty
// method list registers the common browser methods GET and POST.
func (t *routeTable) add(pattern string, h HandlerFunc, methods ...string) error {
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost}
	}

	rt, exists := t.byPattern[pattern]
	if !exists {
		re, params, err := compilePattern(pattern)
		if err != nil {
			return err
		}
		rt = &route{
			pattern: pattern,
			re:      re,
			params:  params,
			methods: make(map[string]HandlerFunc),
		}
		t.routes = append(t.routes, rt)
		t.byPattern[pattern] = rt
	}

	for _, m := range methods {
		if m != MethodWildcard {
			m = strings.ToUpper(m)
		}
		rt.methods[m] = h
	}
	return nil
}

// match finds the first registered route whose pattern matches the path
// and whose method set allows the method. Returns the handler and the
// bound path parameters.
func (t *routeTable) match(method, path string) (HandlerFunc, map[string]string, bool) {
	for _, rt := range t.routes {
		m := rt.re.FindStringSubmatch(path)
		if m == nil {
			continue
		}
		h, ok := rt.allows(method)
		if !ok {
			continue
		}

		params := make(map[string]string, len(rt.params))
		for i, name := range rt.re.SubexpNames() {
			if i == 0 || name == "" {
				continue
			}
			params[name] = m[i]
		}
		return h, params, true
	}
	return nil, nil, false
}
