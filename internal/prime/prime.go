// Package prime provides the trial-division prime searches used as the
// deterministic hash step of terrain generation.
//
// The searches are intentionally not exact primality tests: candidates small
// enough that the divisor loop never runs are returned unchecked, and the
// generator's arithmetic depends on exactly those results.
package prime

import "sync"

// NextPrime returns the first candidate above n that survives trial division
// by every i in [2, candidate/2).
// Candidates up to 5 are returned without any check, so NextPrime(3) == 4.
func NextPrime(n uint64) uint64 {
	candidate := n + 1
	i := uint64(2)
	for i < candidate/2 {
		if candidate%i != 0 {
			i++
		} else {
			candidate++
			i = 2
		}
	}
	return candidate
}

// LastPrime returns the first candidate below n that survives trial division
// by every i in (2, candidate/2], scanning divisors downwards.
// n <= 1 starts the search at 3. Small candidates pass unchecked, so
// LastPrime(5) == 4 and LastPrime(2) == 1.
func LastPrime(n uint64) uint64 {
	candidate := uint64(3)
	if n > 1 {
		candidate = n - 1
	}
	i := candidate / 2
	for i > 2 {
		if candidate%i != 0 {
			i--
		} else {
			candidate--
			i = candidate / 2
		}
	}
	return candidate
}

// Oracle memoises NextPrime and LastPrime. It is safe for concurrent use.
type Oracle struct {
	mu   sync.RWMutex
	next map[uint64]uint64
	last map[uint64]uint64
}

// NewOracle creates an empty Oracle.
func NewOracle() *Oracle {
	return &Oracle{
		next: make(map[uint64]uint64),
		last: make(map[uint64]uint64),
	}
}

// Default is the process-wide oracle shared by generators that are not given
// their own.
var Default = NewOracle()

// Next returns NextPrime(n), computing it at most once per n.
func (o *Oracle) Next(n uint64) uint64 {
	return o.lookup(o.next, n, NextPrime)
}

// Last returns LastPrime(n), computing it at most once per n.
func (o *Oracle) Last(n uint64) uint64 {
	return o.lookup(o.last, n, LastPrime)
}

// Len reports how many results are cached.
func (o *Oracle) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.next) + len(o.last)
}

func (o *Oracle) lookup(cache map[uint64]uint64, n uint64, search func(uint64) uint64) uint64 {
	o.mu.RLock()
	v, ok := cache[n]
	o.mu.RUnlock()
	if ok {
		return v
	}

	v = search(n)

	o.mu.Lock()
	cache[n] = v
	o.mu.Unlock()
	return v
}
