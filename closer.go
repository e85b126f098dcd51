package decor

import "context"

// Closer is the disposal contract. A service or decorator instance that
// implements Closer, or one of the other compatible Close signatures, is
// tracked by a [Registry] and closed when the owning scope ends.
//
// Any of these Close method signatures are supported:
//
//	Close(context.Context) error
//	Close(context.Context)
//	Close() error
//	Close()
type Closer interface {
	Close(ctx context.Context) error
}

// CloserFor returns a Closer for val if it implements Closer or one of the
// compatible Close signatures, and nil otherwise.
func CloserFor(val any) Closer {
	switch c := val.(type) {
	case Closer:
		return c
	case interface{ Close(context.Context) }:
		return closeFunc(func(ctx context.Context) error {
			c.Close(ctx)
			return nil
		})
	case interface{ Close() error }:
		return closeFunc(func(context.Context) error {
			return c.Close()
		})
	case interface{ Close() }:
		return closeFunc(func(context.Context) error {
			c.Close()
			return nil
		})
	default:
		return nil
	}
}

type closeFunc func(context.Context) error

func (f closeFunc) Close(ctx context.Context) error {
	return f(ctx)
}
