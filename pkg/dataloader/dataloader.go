package dataloader

import "context"

type DataLoader interface {
	// Name returns a friendly name identifier
	Name() string

	// Load fetches and parses the loader's document. It never panics on bad
	// input; problems are reported through Errors.
	Load(ctx context.Context)

	// Errors returns the errors that occurred during the last Load.
	Errors() []error
}
