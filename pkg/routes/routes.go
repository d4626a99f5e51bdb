// Package routes declares route groups and registers them on a ServeMux.
package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Wrapper decorates a route handler.
type Wrapper func(http.HandlerFunc) http.HandlerFunc

// Group organizes routes under a common prefix. Wrap, when set, decorates
// every route in the group and its children.
type Group struct {
	Prefix   string
	Wrap     Wrapper
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", nil, group)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, parentWraps []Wrapper, group Group) {
	fullPrefix := parentPrefix + group.Prefix

	wraps := parentWraps
	if group.Wrap != nil {
		wraps = append(append([]Wrapper(nil), parentWraps...), group.Wrap)
	}

	for _, route := range group.Routes {
		pattern := route.Method + " " + fullPrefix + route.Pattern
		mux.HandleFunc(pattern, apply(route.Handler, wraps))
	}
	for _, child := range group.Children {
		registerGroup(mux, fullPrefix, wraps, child)
	}
}

// apply wraps h so the outermost group's wrapper runs first.
func apply(h http.HandlerFunc, wraps []Wrapper) http.HandlerFunc {
	for i := len(wraps) - 1; i >= 0; i-- {
		h = wraps[i](h)
	}
	return h
}
