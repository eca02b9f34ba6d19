package provisioning

import "context"

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// Confirmer asks the operator a yes/no question.
// A false answer with a nil error means the operator declined.
type Confirmer interface {
	Confirm(ctx context.Context, title, description string) (bool, error)
}
