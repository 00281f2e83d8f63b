package worker

import (
	"context"
)

// Worker is the interface all background workers implement
type Worker interface {
	// Start runs the worker loop until Stop or context cancellation
	Start(ctx context.Context) error

	// Stop signals the worker to shut down
	Stop() error

	// Name returns the worker name
	Name() string
}
