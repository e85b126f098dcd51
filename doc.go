// Package decor registers decorated services with a dependency injection
// container and guarantees that every decorator and service instance it
// creates is closed exactly once, when the owning scope ends.
//
// A service is declared together with an ordered chain of decorators using a
// [Builder]. The first decorator added becomes the outermost wrapper. Every
// instance the builder creates that supports a Close method is tracked in a
// disposal [Registry] whose lifetime matches the registration lifetime: the
// process-wide registry for [Singleton] services, a per-scope registry for
// [Scoped] and [Transient] services.
//
// The host container is abstracted by the [Registrar] and [Resolver]
// interfaces. The container subpackage provides an implementation.
package decor
