// Package decorctx carries a [decor.Resolver] on a [context.Context], so
// request handlers can resolve services from the scope that owns them.
package decorctx

import (
	"context"
	"reflect"

	"github.com/sectrean/decor"
	"github.com/sectrean/decor/internal/errors"
)

type resolverContextKey struct{}

// WithResolver returns a new [context.Context] that carries the provided
// [decor.Resolver].
func WithResolver(ctx context.Context, r decor.Resolver) context.Context {
	return context.WithValue(ctx, resolverContextKey{}, r)
}

// Resolver returns the [decor.Resolver] stored on the [context.Context],
// if present.
func Resolver(ctx context.Context) decor.Resolver {
	if r, ok := ctx.Value(resolverContextKey{}).(decor.Resolver); ok {
		return r
	}
	return nil
}

// Resolve a service of type Service from the [decor.Resolver] stored on the
// [context.Context].
func Resolve[Service any](ctx context.Context) (Service, error) {
	var val Service

	r := Resolver(ctx)
	if r == nil {
		return val, errors.Errorf("resolve %s from context: resolver not found on context",
			reflect.TypeOf((*Service)(nil)).Elem())
	}

	val, err := decor.Resolve[Service](ctx, r)
	return val, errors.Wrap(err, "resolve from context")
}

// MustResolve resolves a service of type Service from the [decor.Resolver]
// stored on the [context.Context].
//
// If the service cannot be resolved, this function panics.
func MustResolve[Service any](ctx context.Context) Service {
	val, err := Resolve[Service](ctx)
	if err != nil {
		panic(err)
	}
	return val
}
