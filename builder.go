package decor

import (
	"context"

	"github.com/sectrean/decor/internal/errors"
)

// Builder declares a service of type T together with an ordered chain of
// decorators, then constructs the composed instance on demand.
//
// Decorators are declared outermost-first: the first decorator added wraps
// all later ones, so its behavior runs first when the composed service is
// used. The chain is closed by [Builder.AddService], which declares the base
// implementation.
//
// A Builder is created for a single resolution and is not safe for
// concurrent use. Declaration mistakes are recorded and returned from
// [Builder.Build], so a chained configuration callback never has to check
// intermediate errors.
type Builder[T any] struct {
	selector   selector
	base       func(ctx context.Context, r Resolver) (T, error)
	decorators []func(ctx context.Context, r Resolver, inner T) (T, error)
	built      bool
	err        error
}

func newBuilder[T any](sel selector) *Builder[T] {
	return &Builder[T]{selector: sel}
}

// AddDecorator appends a decorator to the chain. The wrap function receives
// the instance it decorates and a [Resolver] for any further dependencies,
// and returns the wrapping instance.
//
// All decorators must be declared before [Builder.AddService].
func (b *Builder[T]) AddDecorator(wrap func(ctx context.Context, r Resolver, inner T) (T, error)) *Builder[T] {
	switch {
	case wrap == nil:
		b.fail(errNilDecorator)
	case b.base != nil:
		b.fail(errDecoratorAfterService)
	default:
		b.decorators = append(b.decorators, wrap)
	}
	return b
}

// AddService declares the base service implementation and closes the chain.
// It must be called exactly once per Builder.
func (b *Builder[T]) AddService(ctor func(ctx context.Context, r Resolver) (T, error)) *Builder[T] {
	switch {
	case ctor == nil:
		b.fail(errNilService)
	case b.base != nil:
		b.fail(errServiceDeclared)
	default:
		b.base = ctor
	}
	return b
}

func (b *Builder[T]) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build constructs the declared chain: the base service first, then each
// decorator in reverse declaration order, so the first-declared decorator
// ends up outermost. Every instance created along the way is registered with
// the disposal registry for the builder's lifetime, which closes it when the
// owning scope ends. The caller must not close the returned instance.
//
// Build returns an error if the declarations were invalid, if no base
// service was declared, or if it is called a second time. Construction
// errors from the base service or a decorator are returned as-is and reach
// the host container's resolution failure path.
func (b *Builder[T]) Build(ctx context.Context, r Resolver) (T, error) {
	var zero T

	if b.err != nil {
		return zero, b.err
	}
	if b.built {
		return zero, errBuilderUsed
	}
	if b.base == nil {
		return zero, errNoService
	}
	b.built = true

	registry, err := b.selector.registryFor(ctx, r)
	if err != nil {
		return zero, err
	}

	svc, err := b.base(ctx, r)
	if err != nil {
		return zero, errors.Wrap(err, "create service")
	}
	registry.Register(svc)

	for i := len(b.decorators) - 1; i >= 0; i-- {
		svc, err = b.decorators[i](ctx, r, svc)
		if err != nil {
			return zero, errors.Wrapf(err, "create decorator %d", i)
		}
		registry.Register(svc)
	}

	return svc, nil
}

var (
	errNilDecorator          = errors.New("decorator func is nil")
	errNilService            = errors.New("service func is nil")
	errDecoratorAfterService = errors.New("decorator declared after service")
	errServiceDeclared       = errors.New("service already declared")
	errNoService             = errors.New("no service declared")
	errBuilderUsed           = errors.New("builder already used")
)
