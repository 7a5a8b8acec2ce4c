// Package session stores per-visitor, per-namespace data bags with
// TTL-based eviction, keyed by the identity tokens that package clientid
// establishes.
//
// Data is organized in two levels. A Container maps identity token to a
// visitor bag (Data); the bag maps namespace to a PkgData, an opaque
// key-value bag owned entirely by that namespace. The framework never
// looks inside a PkgData. Independent parts of an application use
// distinct namespaces and cannot observe each other's values even when
// the same container serves them.
//
// # Containers
//
// Containers come in two interchangeable kinds. MemoryContainer keeps
// bags in process memory, private to one process. DurableContainer works
// over a pluggable Backend (redis, postgres, and mongo adapters live in
// subpackages) so workers sharing a store see the same sessions. Both
// kinds apply the same TTL rules:
//
//   - an untouched bag survives for the configured timeout
//   - access stamps are rewritten at most once per resolution, bounding
//     write volume against the store at the cost of up to one resolution
//     of stamp staleness
//   - eviction sweeps run implicitly at most once per resolution, pop a
//     min-heap of stamps, and stop at the first fresh entry, so a pass
//     costs work proportional to what it evicts
//   - the eviction threshold is timeout plus resolution, so the stamp
//     staleness can never expire a bag that was recently touched
//   - a zero timeout turns the container into a plain passthrough store
//     with no stamping and no sweeping
//
// Expired entries are destroyed only by sweeping, never by the read path
// directly. Anything can call Sweep explicitly; RunSweeper does it on a
// timer for workloads too quiet to trigger implicit sweeps.
//
// # Access stamps
//
// A bag's last access time is a merge-max register: concurrent proposals
// resolve to the largest value instead of conflicting, because only
// forward movement carries meaning. Backends mirror this with native
// compare-max writes, so no locking is needed anywhere on the hot path.
//
// # The Session facade
//
// Session is the per-request entry point. It binds an identity token to
// a Registry, which routes each namespace to a container with a default
// fallback, and caches the visitor bag per container for the duration of
// the request:
//
//	ids, _ := clientid.New(clientid.WithSecret(secret))
//	registry := session.NewRegistry(session.NewMemory())
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    sess, err := session.FromRequest(w, r, ids, registry)
//	    if err != nil {
//	        // identity unavailable under current policy
//	        return
//	    }
//	    cart, _ := sess.GetOrCreate(r.Context(), "shop.cart")
//	    cart.Set("item", "sku-123")
//	    _ = sess.Save(r.Context())
//	}
//
// Middleware wraps the resolve/save cycle around a handler and exposes
// the session via FromContext. Get never creates anything and returns
// ErrNotFound for absent bags; GetOrCreate creates both levels lazily.
//
// Session deliberately refuses enumeration: Namespaces and Contains fail
// with ErrIterationUnsupported and ErrContainmentUnsupported because
// probing a create-on-access mapping would mint a bag for every probe.
//
// # Error Handling
//
// Common error values returned by the package:
//
//   - ErrNotFound         – visitor or namespace bag absent on pure reads
//   - ErrNoContainer      – no routing and no default for a namespace
//   - ErrContainerClosed  – operation on a closed in-memory container
//   - ErrCorruptData      – backend bytes failed to decode
package session
