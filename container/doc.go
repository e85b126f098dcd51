// Package container implements a minimal host container for decorated
// service registrations: type-keyed factories, Singleton/Scoped/Transient
// lifetimes, child scopes, and lifecycle-aware Close.
//
// It intentionally stops there. There is no reflection-driven constructor
// injection, no aliases or tags, and no dependency validation; factories
// resolve their own dependencies through the [decor.Resolver] they receive.
package container
