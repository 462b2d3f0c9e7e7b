package routes

import "net/http"

type registration struct {
	method  string
	pattern string
	handler http.Handler
}

type mux struct {
	registrations []registration
}

// New creates a route system backed by http.ServeMux method patterns.
func New() System {
	return &mux{}
}

func (m *mux) RegisterGroup(group Group) {
	m.registerGroup(group, "", nil)
}

func (m *mux) RegisterRoute(route Route) {
	m.registrations = append(m.registrations, registration{
		method:  route.Method,
		pattern: route.Pattern,
		handler: route.Handler,
	})
}

func (m *mux) Build() http.Handler {
	sm := http.NewServeMux()
	for _, reg := range m.registrations {
		sm.Handle(reg.method+" "+reg.pattern, reg.handler)
	}
	return sm
}

func (m *mux) registerGroup(group Group, prefix string, middleware []Middleware) {
	prefix += group.Prefix
	middleware = append(middleware[:len(middleware):len(middleware)], group.Middleware...)

	for _, route := range group.Routes {
		var handler http.Handler = route.Handler
		for i := len(middleware) - 1; i >= 0; i-- {
			handler = middleware[i](handler)
		}

		pattern := prefix + route.Pattern
		if pattern == "" {
			pattern = "/"
		}

		m.registrations = append(m.registrations, registration{
			method:  route.Method,
			pattern: pattern,
			handler: handler,
		})
	}

	for _, child := range group.Children {
		m.registerGroup(child, prefix, middleware)
	}
}
