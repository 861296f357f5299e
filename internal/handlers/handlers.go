// Package handlers implements the skill operations: create, add-command,
// sync, and validate. Each operation takes a typed request and returns a
// Response; failures are reported as data, never as panics.
package handlers

import (
	"github.com/klauern/skillkit/internal/config"
	"github.com/klauern/skillkit/internal/sync"
	"github.com/klauern/skillkit/internal/template"
	"github.com/klauern/skillkit/internal/validate"
)

// Response is the uniform outcome of every operation.
type Response struct {
	// Success indicates whether the operation completed.
	Success bool `json:"success"`

	// Message describes the outcome on success.
	Message string `json:"message,omitempty"`

	// Error describes the failure when Success is false.
	Error string `json:"error,omitempty"`

	// Data carries operation-specific details.
	Data map[string]any `json:"data,omitempty"`
}

// failure builds an error response.
func failure(msg string) Response {
	return Response{Success: false, Error: msg}
}

// Handler wires the template renderer, sync engine, and validator
// behind the operation entry points.
type Handler struct {
	cfg       *config.Config
	renderer  *template.Renderer
	engine    *sync.Engine
	validator *validate.Validator
}

// New creates a handler from configuration.
func New(cfg *config.Config) *Handler {
	return &Handler{
		cfg:       cfg,
		renderer:  template.New(cfg.TemplatesDir()),
		engine:    sync.NewEngine(cfg),
		validator: validate.NewValidator(cfg),
	}
}

// isKebabCase reports whether a name contains only lowercase letters,
// digits, and hyphens.
func isKebabCase(name string) bool {
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return name != ""
}
