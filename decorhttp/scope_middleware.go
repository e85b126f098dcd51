// Package decorhttp provides HTTP middleware that gives each request its
// own container scope, so scoped services and their decorators are created
// and disposed per request.
package decorhttp

import (
	"net/http"

	"github.com/sectrean/decor/container"
	"github.com/sectrean/decor/decorctx"
	"go.uber.org/zap"
)

// RequestScopeMiddleware creates a new child scope of c for each request
// and closes it after the request has been processed, draining the scope's
// disposal registry.
//
// The current [*http.Request] is registered with the scope and can be
// resolved as a dependency of scoped services.
//
// The scope is stored on the request context and can be accessed using
// [decorctx.Resolver], [decorctx.Resolve], or [decorctx.MustResolve].
//
// Available options:
//   - [WithNewScopeErrorHandler] sets the handler called when creating a scope fails.
//   - [WithScopeCloseErrorHandler] sets the handler called when closing a scope fails.
func RequestScopeMiddleware(c *container.Container, opts ...ScopeMiddlewareOption) func(http.Handler) http.Handler {
	mw := &scopeMiddleware{
		c:               c,
		newScopeHandler: defaultNewScopeErrorHandler,
		closeHandler:    defaultScopeCloseErrorHandler,
	}
	for _, opt := range opts {
		opt.applyScopeMiddleware(mw)
	}

	return func(next http.Handler) http.Handler {
		mw.next = next
		return mw
	}
}

// NewScopeErrorHandler writes an error response to the client when the
// middleware fails to create a request scope.
//
// The default handler logs the error to the global zap logger and writes a
// 500 Internal Server Error response.
type NewScopeErrorHandler = func(w http.ResponseWriter, r *http.Request, err error)

func defaultNewScopeErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	zap.L().Error("error creating request scope", zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// ScopeCloseErrorHandler handles errors from closing the request scope
// after the request has completed.
//
// The default handler logs the error to the global zap logger.
type ScopeCloseErrorHandler = func(r *http.Request, err error)

func defaultScopeCloseErrorHandler(_ *http.Request, err error) {
	zap.L().Error("error closing request scope", zap.Error(err))
}

type scopeMiddleware struct {
	c               *container.Container
	newScopeHandler NewScopeErrorHandler
	closeHandler    ScopeCloseErrorHandler
	next            http.Handler
}

func (m *scopeMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	scope, err := m.c.NewScope()
	if err != nil {
		if m.newScopeHandler != nil {
			m.newScopeHandler(w, r, err)
		}
		return
	}

	ctx := decorctx.WithResolver(r.Context(), scope)
	r = r.WithContext(ctx)

	if err := container.RegisterValue(scope, r); err != nil {
		if m.newScopeHandler != nil {
			m.newScopeHandler(w, r, err)
		}
		return
	}

	m.next.ServeHTTP(w, r)

	err = scope.Close(ctx)
	if err != nil && m.closeHandler != nil {
		m.closeHandler(r, err)
	}
}
