package decor

import (
	"context"
	"reflect"
)

// Resolver resolves services from the host container. It is the only
// capability this package needs at resolution time.
//
// Resolver is implemented by [github.com/sectrean/decor/container.Container].
type Resolver interface {
	// Resolve returns the service registered for the given type.
	Resolve(ctx context.Context, t reflect.Type) (any, error)
}

// Resolve a service of the given type from the [Resolver].
func Resolve[T any](ctx context.Context, r Resolver) (T, error) {
	var val T
	anyVal, err := r.Resolve(ctx, reflect.TypeOf((*T)(nil)).Elem())
	if anyVal != nil {
		val = anyVal.(T)
	}

	return val, err
}

// MustResolve resolves a service of the given type from the [Resolver].
//
// If the service cannot be resolved, this function panics.
func MustResolve[T any](ctx context.Context, r Resolver) T {
	val, err := Resolve[T](ctx, r)
	if err != nil {
		panic(err)
	}
	return val
}
