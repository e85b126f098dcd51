package decor

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Registry tracks disposable instances and releases them in bulk when the
// owning scope ends.
//
// Instances are tracked with [Register] and released with [DisposeAll].
// A Registry is safe for concurrent use. It grows without bound; it models
// the resource lifetime of a scope, not a cache.
type Registry struct {
	logger  *zap.Logger
	mu      sync.Mutex
	entries []registryEntry
}

type registryEntry struct {
	closer Closer
	val    any
}

// NewRegistry returns an empty Registry. Disposal failures are reported to
// logger; a nil logger discards them.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{logger: logger}
}

// Register tracks val if it supports one of the Close signatures recognized
// by [CloserFor]. Values without a Close method are ignored.
func (r *Registry) Register(val any) {
	closer := CloserFor(val)
	if closer == nil {
		return
	}

	r.mu.Lock()
	r.entries = append(r.entries, registryEntry{closer, val})
	r.mu.Unlock()
}

// Len returns the number of tracked instances.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// DisposeAll closes every tracked instance and clears the Registry, so a
// second call does nothing.
//
// A failure while closing one instance is logged with the instance's type
// and does not prevent the remaining instances from being closed. Disposal
// failures are never returned: DisposeAll runs on teardown paths where the
// caller has no recourse.
func (r *Registry) DisposeAll(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		r.dispose(ctx, e)
	}
	r.entries = nil
}

func (r *Registry) dispose(ctx context.Context, e registryEntry) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("panic closing service",
				zap.String("type", fmt.Sprintf("%T", e.val)),
				zap.Any("panic", rec),
			)
		}
	}()

	if err := e.closer.Close(ctx); err != nil {
		r.logger.Error("error closing service",
			zap.String("type", fmt.Sprintf("%T", e.val)),
			zap.Error(err),
		)
	}
}

// Close calls [Registry.DisposeAll] and returns nil, so a Registry resolved
// from a container is drained when that container closes.
func (r *Registry) Close(ctx context.Context) error {
	r.DisposeAll(ctx)
	return nil
}

var _ Closer = (*Registry)(nil)
