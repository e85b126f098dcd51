package decorhttp

// ScopeMiddlewareOption configures [RequestScopeMiddleware].
type ScopeMiddlewareOption interface {
	applyScopeMiddleware(*scopeMiddleware)
}

type scopeMiddlewareOption func(*scopeMiddleware)

func (o scopeMiddlewareOption) applyScopeMiddleware(mw *scopeMiddleware) {
	o(mw)
}

// WithNewScopeErrorHandler sets the [NewScopeErrorHandler] called when the
// middleware fails to create a request scope.
//
// Set to nil to ignore scope creation errors. No response is written in
// that case.
func WithNewScopeErrorHandler(h NewScopeErrorHandler) ScopeMiddlewareOption {
	return scopeMiddlewareOption(func(mw *scopeMiddleware) {
		mw.newScopeHandler = h
	})
}

// WithScopeCloseErrorHandler sets the [ScopeCloseErrorHandler] called when
// closing the request scope fails.
//
// Set to nil to ignore scope close errors.
func WithScopeCloseErrorHandler(h ScopeCloseErrorHandler) ScopeMiddlewareOption {
	return scopeMiddlewareOption(func(mw *scopeMiddleware) {
		mw.closeHandler = h
	})
}
