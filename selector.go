package decor

import (
	"context"

	"github.com/sectrean/decor/internal/errors"
)

// The two disposal registries are registered with the host container under
// these wrapper types, so they can only be resolved from this package and
// never collide with a *Registry the caller registers themselves.
type (
	processDisposables struct{ *Registry }
	scopeDisposables   struct{ *Registry }
)

// selector chooses which disposal registry receives the instances created
// during one build, based on the lifetime the service was registered with.
// Selectors are stateless and shared across builds.
type selector interface {
	registryFor(ctx context.Context, r Resolver) (*Registry, error)
}

// processSelector selects the process-wide registry, drained when the root
// container closes. Used for [Singleton] registrations.
type processSelector struct{}

func (processSelector) registryFor(ctx context.Context, r Resolver) (*Registry, error) {
	d, err := Resolve[processDisposables](ctx, r)
	if err != nil {
		return nil, errors.Wrap(err, "resolve process disposal registry")
	}
	return d.Registry, nil
}

// scopeSelector selects the registry of the resolving scope, drained when
// that scope closes. Used for [Scoped] and [Transient] registrations.
type scopeSelector struct{}

func (scopeSelector) registryFor(ctx context.Context, r Resolver) (*Registry, error) {
	d, err := Resolve[scopeDisposables](ctx, r)
	if err != nil {
		return nil, errors.Wrap(err, "resolve scope disposal registry")
	}
	return d.Registry, nil
}
