package decor

import "fmt"

// Lifetime specifies how a registered service is created and cached when
// resolved from the host container.
//
// Available lifetimes:
//   - [Singleton] creates the service once for the root container.
//   - [Scoped] creates the service once per scope.
//   - [Transient] creates a new service for every resolution.
type Lifetime uint8

const (
	// Singleton specifies that a service is created once and every
	// subsequent resolution returns the same instance.
	Singleton Lifetime = iota

	// Scoped specifies that a service is created once per scope.
	Scoped

	// Transient specifies that a service is created for each resolution.
	Transient
)

func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "Singleton"
	case Scoped:
		return "Scoped"
	case Transient:
		return "Transient"
	default:
		return fmt.Sprintf("Unknown Lifetime %d", l)
	}
}
