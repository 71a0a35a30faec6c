package api

// Handlers bundles the HTTP handlers with their dependencies.
type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates handlers with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{deps: deps}
}
