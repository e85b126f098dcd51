package decor

import (
	"context"
	"reflect"

	"github.com/sectrean/decor/internal/errors"
	"go.uber.org/zap"
)

// Install registers the two disposal registries with the host container:
// the process-wide registry as a [Singleton] and the per-scope registry as
// [Scoped]. It must be called once before any decorated service is resolved.
//
// Disposal failures are reported to logger; a nil logger discards them.
func Install(reg Registrar, logger *zap.Logger) error {
	err := reg.Register(Registration{
		Type:     reflect.TypeOf((*processDisposables)(nil)).Elem(),
		Lifetime: Singleton,
		OwnClose: true,
		Factory: func(context.Context, Resolver) (any, error) {
			return processDisposables{NewRegistry(logger)}, nil
		},
	})
	if err != nil {
		return errors.Wrap(err, "decor.Install: register process disposal registry")
	}

	err = reg.Register(Registration{
		Type:     reflect.TypeOf((*scopeDisposables)(nil)).Elem(),
		Lifetime: Scoped,
		OwnClose: true,
		Factory: func(context.Context, Resolver) (any, error) {
			return scopeDisposables{NewRegistry(logger)}, nil
		},
	})
	return errors.Wrap(err, "decor.Install: register scope disposal registry")
}

// RegisterSingleton registers a decorated service of type T with a
// [Singleton] lifetime. The configure callback declares the decorator chain
// on the provided [Builder]; it runs once per instance the container
// creates, at resolution time.
//
// Instances created for the chain are tracked by the process-wide disposal
// registry and closed when the root container closes.
//
// Example:
//
//	err := decor.RegisterSingleton(c, func(b *decor.Builder[Store]) {
//		b.AddDecorator(NewCachingStore).
//			AddDecorator(NewTracingStore).
//			AddService(NewSQLStore)
//	})
func RegisterSingleton[T any](reg Registrar, configure func(*Builder[T])) error {
	return register(reg, Singleton, processSelector{}, configure)
}

// RegisterScoped registers a decorated service of type T with a [Scoped]
// lifetime. Instances created for the chain are tracked by the resolving
// scope's disposal registry and closed when that scope closes.
func RegisterScoped[T any](reg Registrar, configure func(*Builder[T])) error {
	return register(reg, Scoped, scopeSelector{}, configure)
}

// RegisterTransient registers a decorated service of type T with a
// [Transient] lifetime. A new chain is built for every resolution; all
// instances are tracked by the resolving scope's disposal registry and
// closed when that scope closes.
func RegisterTransient[T any](reg Registrar, configure func(*Builder[T])) error {
	return register(reg, Transient, scopeSelector{}, configure)
}

func register[T any](reg Registrar, lifetime Lifetime, sel selector, configure func(*Builder[T])) error {
	t := reflect.TypeOf((*T)(nil)).Elem()

	if configure == nil {
		return errors.Errorf("decor: register %s: configure func is nil", t)
	}

	err := reg.Register(Registration{
		Type:     t,
		Lifetime: lifetime,
		OwnClose: false,
		Factory: func(ctx context.Context, r Resolver) (any, error) {
			b := newBuilder[T](sel)
			configure(b)
			return b.Build(ctx, r)
		},
	})
	return errors.Wrapf(err, "decor: register %s", t)
}
