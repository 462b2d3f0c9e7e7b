// Package routes provides route registration and HTTP multiplexer construction.
package routes

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Route represents a single HTTP endpoint.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group represents a collection of routes under a common URL prefix.
// Group middleware applies to every route in the group and its children.
type Group struct {
	Prefix     string
	Middleware []Middleware
	Routes     []Route
	Children   []Group
}

// System defines the interface for route registration and handler building.
type System interface {
	RegisterGroup(group Group)
	RegisterRoute(route Route)
	Build() http.Handler
}
