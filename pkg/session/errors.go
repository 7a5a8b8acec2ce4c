package session

import "errors"

var (
	// ErrNotFound is returned by read-only lookups when the visitor has no
	// bag in the container, or the bag has no entry for the namespace.
	ErrNotFound = errors.New("session.not_found")

	// ErrNoContainer is returned when neither a namespace-specific nor a
	// default container is registered for a requested namespace.
	ErrNoContainer = errors.New("session.no_container_for_namespace")

	// ErrContainerClosed is returned by operations on a container whose
	// Close has already been called.
	ErrContainerClosed = errors.New("session.container_closed")

	// ErrCorruptData is returned when a backend holds bytes that cannot be
	// decoded into a session bag.
	ErrCorruptData = errors.New("session.corrupt_data")

	// ErrNoBackend indicates a durable container was constructed without
	// a backend.
	ErrNoBackend = errors.New("session.no_backend")

	// ErrBackend wraps failures of the durable store behind a container.
	ErrBackend = errors.New("session.backend_error")

	// ErrInvalidTopology is returned when a topology document cannot be
	// read, parsed, or fails validation.
	ErrInvalidTopology = errors.New("session.invalid_topology")

	// ErrIterationUnsupported is returned by Session.Namespaces. Bags are
	// created on access, so enumerating "all namespaces" has no stable
	// meaning and a probing loop would mint bags forever.
	ErrIterationUnsupported = errors.New("session.iteration_unsupported")

	// ErrContainmentUnsupported is returned by Session.Contains for the
	// same reason: a membership probe against a create-on-access mapping
	// would answer true for any namespace it asks about.
	ErrContainmentUnsupported = errors.New("session.containment_unsupported")
)
