package decor

import (
	"context"
	"testing"

	"github.com/sectrean/decor/internal/errors"
	"github.com/sectrean/decor/internal/testtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSelector lets builder tests run without a host container.
type stubSelector struct {
	registry *Registry
	err      error
}

func (s stubSelector) registryFor(context.Context, Resolver) (*Registry, error) {
	return s.registry, s.err
}

func newStore(rec *testtypes.CloseRecorder) func(context.Context, Resolver) (testtypes.Store, error) {
	return func(context.Context, Resolver) (testtypes.Store, error) {
		return &testtypes.BaseStore{Recorder: rec}, nil
	}
}

func newPrefix(label string, rec *testtypes.CloseRecorder) func(context.Context, Resolver, testtypes.Store) (testtypes.Store, error) {
	return func(_ context.Context, _ Resolver, inner testtypes.Store) (testtypes.Store, error) {
		return &testtypes.PrefixStore{Label: label, Inner: inner, Recorder: rec}, nil
	}
}

func Test_Builder_Build(t *testing.T) {
	ctx := context.Background()

	t.Run("first declared decorator is outermost", func(t *testing.T) {
		b := newBuilder[testtypes.Store](stubSelector{registry: NewRegistry(nil)})
		b.AddDecorator(newPrefix("a", nil)).
			AddDecorator(newPrefix("b", nil)).
			AddService(newStore(nil))

		store, err := b.Build(ctx, nil)
		require.NoError(t, err)

		assert.Equal(t, "a:b:x", store.Get("x"))
	})

	t.Run("service only", func(t *testing.T) {
		b := newBuilder[testtypes.Store](stubSelector{registry: NewRegistry(nil)})
		b.AddService(newStore(nil))

		store, err := b.Build(ctx, nil)
		require.NoError(t, err)

		assert.Equal(t, "x", store.Get("x"))
	})

	t.Run("registers every disposable instance", func(t *testing.T) {
		registry := NewRegistry(nil)
		rec := &testtypes.CloseRecorder{}

		b := newBuilder[testtypes.Store](stubSelector{registry: registry})
		b.AddDecorator(newPrefix("a", rec)).
			AddDecorator(newPrefix("b", rec)).
			AddService(newStore(rec))

		_, err := b.Build(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, registry.Len())

		registry.DisposeAll(ctx)
		assert.Equal(t, []string{"base", "b", "a"}, rec.Closed())
	})

	t.Run("no service declared", func(t *testing.T) {
		b := newBuilder[testtypes.Store](stubSelector{registry: NewRegistry(nil)})
		b.AddDecorator(newPrefix("a", nil))

		_, err := b.Build(ctx, nil)
		assert.EqualError(t, err, "no service declared")
	})

	t.Run("service declared twice", func(t *testing.T) {
		b := newBuilder[testtypes.Store](stubSelector{registry: NewRegistry(nil)})
		b.AddService(newStore(nil)).
			AddService(newStore(nil))

		_, err := b.Build(ctx, nil)
		assert.EqualError(t, err, "service already declared")
	})

	t.Run("decorator after service", func(t *testing.T) {
		b := newBuilder[testtypes.Store](stubSelector{registry: NewRegistry(nil)})
		b.AddService(newStore(nil)).
			AddDecorator(newPrefix("a", nil))

		_, err := b.Build(ctx, nil)
		assert.EqualError(t, err, "decorator declared after service")
	})

	t.Run("nil service func", func(t *testing.T) {
		b := newBuilder[testtypes.Store](stubSelector{registry: NewRegistry(nil)})
		b.AddService(nil)

		_, err := b.Build(ctx, nil)
		assert.EqualError(t, err, "service func is nil")
	})

	t.Run("nil decorator func", func(t *testing.T) {
		b := newBuilder[testtypes.Store](stubSelector{registry: NewRegistry(nil)})
		b.AddDecorator(nil).
			AddService(newStore(nil))

		_, err := b.Build(ctx, nil)
		assert.EqualError(t, err, "decorator func is nil")
	})

	t.Run("build twice", func(t *testing.T) {
		b := newBuilder[testtypes.Store](stubSelector{registry: NewRegistry(nil)})
		b.AddService(newStore(nil))

		_, err := b.Build(ctx, nil)
		require.NoError(t, err)

		_, err = b.Build(ctx, nil)
		assert.EqualError(t, err, "builder already used")
	})

	t.Run("first declaration error wins", func(t *testing.T) {
		b := newBuilder[testtypes.Store](stubSelector{registry: NewRegistry(nil)})
		b.AddService(newStore(nil)).
			AddService(newStore(nil)).
			AddDecorator(newPrefix("a", nil))

		_, err := b.Build(ctx, nil)
		assert.EqualError(t, err, "service already declared")
	})

	t.Run("registry lookup error", func(t *testing.T) {
		b := newBuilder[testtypes.Store](stubSelector{err: errors.New("no registry")})
		b.AddService(newStore(nil))

		_, err := b.Build(ctx, nil)
		assert.EqualError(t, err, "no registry")
	})

	t.Run("service construction error", func(t *testing.T) {
		b := newBuilder[testtypes.Store](stubSelector{registry: NewRegistry(nil)})
		b.AddService(func(context.Context, Resolver) (testtypes.Store, error) {
			return nil, errors.New("boom")
		})

		_, err := b.Build(ctx, nil)
		assert.EqualError(t, err, "create service: boom")
	})

	t.Run("decorator construction error", func(t *testing.T) {
		registry := NewRegistry(nil)

		b := newBuilder[testtypes.Store](stubSelector{registry: registry})
		b.AddDecorator(func(context.Context, Resolver, testtypes.Store) (testtypes.Store, error) {
			return nil, errors.New("boom")
		}).
			AddService(newStore(nil))

		_, err := b.Build(ctx, nil)
		assert.EqualError(t, err, "create decorator 0: boom")

		// The base instance was created before the decorator failed and
		// stays tracked, so the registry still releases it.
		assert.Equal(t, 1, registry.Len())
	})
}
