// Package maxreg implements a conflict-free monotonic register that
// resolves concurrent writes by keeping the maximum proposed value.
//
// The register exists for values where only forward movement carries
// meaning, such as last-access timestamps: when two workers race to stamp
// the same record, overwriting loses information and optimistic-concurrency
// schemes turn the race into a write conflict. Taking the maximum makes the
// write commutative, so every writer succeeds and the outcome is
// independent of ordering.
//
// # Usage
//
//	stamp := maxreg.New(0)
//
//	// Any number of goroutines:
//	stamp.Advance(time.Now().Unix())
//
//	// Reads see the highest stamp proposed so far:
//	last := stamp.Load()
//
// The same contract is implemented natively by the durable session
// backends (GREATEST in SQL, $max in MongoDB, a compare-and-keep-max Lua
// script in Redis), keeping the register storage-agnostic.
package maxreg
