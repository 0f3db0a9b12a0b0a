package engine

import (
	"time"
	"unicode/utf16"
)

// RNG is a 32-bit seedable generator using mulberry32 mixing.
// Identical seeds produce identical sequences on every platform.
type RNG struct {
	state uint32
	now   func() time.Time
}

// NewRNG returns a generator seeded with seed. A zero seed uses the wall clock.
func NewRNG(seed int64) *RNG {
	r := &RNG{now: time.Now}
	r.Seed(seed)
	return r
}

func newRNG(now func() time.Time) *RNG {
	return &RNG{now: now}
}

// Seed sets the state from a numeric seed truncated to 32 bits.
// A seed that truncates to zero falls back to the current millisecond timestamp.
func (r *RNG) Seed(seed int64) {
	s := uint32(seed)
	if s == 0 {
		s = uint32(r.now().UnixMilli())
	}
	r.state = s
}

// SeedString folds s into the state with a multiply-by-31 rolling hash over
// its UTF-16 code units. An empty string behaves like a zero numeric seed.
func (r *RNG) SeedString(s string) {
	if s == "" {
		r.Seed(0)
		return
	}
	var h uint32
	for _, u := range utf16.Encode([]rune(s)) {
		h = 31*h + uint32(u)
	}
	r.state = h
}

// State returns the raw generator state.
func (r *RNG) State() uint32 {
	return r.state
}

// Next returns a value in [0, 1).
func (r *RNG) Next() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296
}

// Intn returns a value in [0, n).
func (r *RNG) Intn(n int) int {
	return int(r.Next() * float64(n))
}
