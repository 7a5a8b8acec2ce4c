package maxreg

import "sync/atomic"

// Register is a monotonic high-water-mark register. Concurrent writers
// propose candidate values and the register resolves to the largest one;
// a proposal never fails and the stored value never decreases.
//
// The zero value is a usable register holding 0.
type Register struct {
	v atomic.Int64
}

// New returns a register initialized to v.
func New(v int64) *Register {
	r := &Register{}
	r.v.Store(v)
	return r
}

// Load returns the current value.
func (r *Register) Load() int64 {
	return r.v.Load()
}

// Advance proposes v and returns the resolved value: the maximum of the
// current value and v. Lower proposals leave the register untouched, so
// two writers racing with different candidates both succeed and the
// register settles on the larger one.
func (r *Register) Advance(v int64) int64 {
	for {
		cur := r.v.Load()
		if v <= cur {
			return cur
		}
		if r.v.CompareAndSwap(cur, v) {
			return v
		}
	}
}
