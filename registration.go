package decor

import (
	"context"
	"reflect"
)

// Factory creates a service instance. It is invoked by the host container
// whenever its lifetime calls for a new instance, with a [Resolver] for the
// scope the resolution runs in.
type Factory func(ctx context.Context, r Resolver) (any, error)

// Registration describes a factory to register with the host container.
type Registration struct {
	// Type is the service type the factory is registered under.
	Type reflect.Type

	// Lifetime controls how instances are created and cached.
	Lifetime Lifetime

	// Factory creates the service.
	Factory Factory

	// OwnClose reports whether the container should close instances
	// produced by this factory when the owning scope closes. Decorated
	// registrations set it to false: their instances are closed by the
	// disposal [Registry], and closing the returned value again would
	// release it twice.
	OwnClose bool
}

// Registrar accepts factory registrations. It is the only capability this
// package needs at registration time.
//
// Registrar is implemented by [github.com/sectrean/decor/container.Container].
type Registrar interface {
	Register(reg Registration) error
}
