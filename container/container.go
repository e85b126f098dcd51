package container

import (
	"context"
	"reflect"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sectrean/decor"
	"github.com/sectrean/decor/internal/errors"
)

// Container is a minimal host container for [decor] registrations.
//
// Factories are registered per service type with [Container.Register] and
// resolved with [Container.Resolve]. [decor.Singleton] services are created
// once for the container they were registered with, [decor.Scoped] services
// once per scope, and [decor.Transient] services on every resolution.
//
// A Container is safe for concurrent use.
type Container struct {
	parent   *Container
	services *xsync.MapOf[reflect.Type, *registration]

	resolvedMu sync.Mutex
	resolved   map[*registration]*future

	closersMu sync.Mutex
	closers   []decor.Closer

	closedMu sync.RWMutex
	closed   bool
}

var (
	_ decor.Registrar = (*Container)(nil)
	_ decor.Resolver  = (*Container)(nil)
)

// New creates an empty root Container.
func New() *Container {
	return &Container{
		services: xsync.NewMapOf[reflect.Type, *registration](),
		resolved: make(map[*registration]*future),
	}
}

type registration struct {
	decor.Registration

	// owner is the Container the registration was made with. Singleton
	// instances are created and cached there, so every scope sees the
	// same instance.
	owner *Container
}

// Register adds a factory registration. Registering the same type again
// replaces the previous registration for new resolutions.
func (c *Container) Register(reg decor.Registration) error {
	if reg.Type == nil {
		return errors.New("container: register: type is nil")
	}
	if reg.Factory == nil {
		return errors.Errorf("container: register %s: factory is nil", reg.Type)
	}

	if c.isClosed() {
		return errors.Wrapf(errContainerClosed, "container: register %s", reg.Type)
	}

	c.services.Store(reg.Type, &registration{Registration: reg, owner: c})
	return nil
}

// RegisterFunc registers a constructor function for type T.
//
// If OwnClose is left at its default, instances that support a Close method
// are closed when the owning scope closes.
func RegisterFunc[T any](c *Container, lifetime decor.Lifetime, ctor func(context.Context, decor.Resolver) (T, error)) error {
	if ctor == nil {
		return errors.Errorf("container: register func %s: ctor is nil", reflect.TypeOf((*T)(nil)).Elem())
	}

	return c.Register(decor.Registration{
		Type:     reflect.TypeOf((*T)(nil)).Elem(),
		Lifetime: lifetime,
		OwnClose: true,
		Factory: func(ctx context.Context, r decor.Resolver) (any, error) {
			return ctor(ctx, r)
		},
	})
}

// RegisterValue registers an existing value as the service for type T.
// The value is returned as-is on every resolution and is not closed by the
// Container; its lifecycle belongs to the caller.
func RegisterValue[T any](c *Container, val T) error {
	return c.Register(decor.Registration{
		Type:     reflect.TypeOf((*T)(nil)).Elem(),
		Lifetime: decor.Transient,
		OwnClose: false,
		Factory: func(context.Context, decor.Resolver) (any, error) {
			return val, nil
		},
	})
}

// NewScope creates a child scope. The scope inherits the registrations of
// this Container (and its parents). Additional registrations made with the
// scope are isolated from the parent and from sibling scopes.
//
// Closing the scope closes the services it created; it does not affect the
// parent.
func (c *Container) NewScope() (*Container, error) {
	if c.isClosed() {
		return nil, errors.Wrap(errContainerClosed, "container: new scope")
	}

	return &Container{
		parent:   c,
		services: xsync.NewMapOf[reflect.Type, *registration](),
		resolved: make(map[*registration]*future),
	}, nil
}

// Contains reports whether a service of the given type is registered with
// this Container or one of its parents.
func (c *Container) Contains(t reflect.Type) bool {
	return c.lookup(t) != nil
}

// Resolve returns the service registered for the given type, creating it if
// the lifetime calls for a new instance.
func (c *Container) Resolve(ctx context.Context, t reflect.Type) (any, error) {
	if c.isClosed() {
		return nil, errors.Wrapf(errContainerClosed, "container: resolve %s", t)
	}

	reg := c.lookup(t)
	if reg == nil {
		return nil, errors.Wrapf(errNotRegistered, "container: resolve %s", t)
	}

	val, err := c.resolve(ctx, reg)
	return val, errors.Wrapf(err, "container: resolve %s", t)
}

// Resolve a service of the given type from the Container.
func Resolve[T any](ctx context.Context, c *Container) (T, error) {
	return decor.Resolve[T](ctx, c)
}

func (c *Container) lookup(t reflect.Type) *registration {
	for s := c; s != nil; s = s.parent {
		if reg, ok := s.services.Load(t); ok {
			return reg
		}
	}
	return nil
}

func (c *Container) resolve(ctx context.Context, reg *registration) (any, error) {
	switch reg.Lifetime {
	case decor.Transient:
		return c.create(ctx, reg)
	case decor.Singleton:
		return reg.owner.resolveCached(ctx, reg)
	default:
		return c.resolveCached(ctx, reg)
	}
}

// resolveCached creates the service once per Container and hands concurrent
// resolutions a future for the in-flight creation, so the factory runs
// without any lock held.
//
// A factory that resolves its own type recursively will deadlock on its own
// future; cycle detection is out of scope here.
func (c *Container) resolveCached(ctx context.Context, reg *registration) (any, error) {
	c.resolvedMu.Lock()
	f, ok := c.resolved[reg]
	if ok {
		c.resolvedMu.Unlock()
		return f.result()
	}

	f = newFuture()
	c.resolved[reg] = f
	c.resolvedMu.Unlock()

	val, err := c.create(ctx, reg)
	f.setResult(val, err)
	return val, err
}

func (c *Container) create(ctx context.Context, reg *registration) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	val, err := reg.Factory(ctx, c)
	if err != nil {
		return nil, err
	}

	if reg.OwnClose {
		if closer := decor.CloserFor(val); closer != nil {
			c.closersMu.Lock()
			c.closers = append(c.closers, closer)
			c.closersMu.Unlock()
		}
	}

	return val, nil
}

func (c *Container) isClosed() bool {
	c.closedMu.RLock()
	defer c.closedMu.RUnlock()
	return c.closed
}

// Close closes the Container and the services it created, in the reverse
// order they were created. Errors from closing services are joined.
//
// Close returns an error if called more than once.
func (c *Container) Close(ctx context.Context) error {
	c.closedMu.Lock()
	if c.closed {
		c.closedMu.Unlock()
		return errors.Wrap(errContainerClosed, "container: close")
	}
	c.closed = true
	c.closedMu.Unlock()

	c.closersMu.Lock()
	closers := c.closers
	c.closers = nil
	c.closersMu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Wrap(errors.Join(errs...), "container: close")
}

var (
	errNotRegistered   = errors.New("service not registered")
	errContainerClosed = errors.New("container closed")
)
