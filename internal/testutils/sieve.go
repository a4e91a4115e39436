// Package testutils holds reference implementations shared by tests.
// It must not import internal/domain so that domain tests can use it.
package testutils

// Reference range used by property tests that compare the oracle against
// the sieve.
const (
	ReferenceMin = -100
	ReferenceMax = 10000
)

// Sieve is a Sieve of Eratosthenes over [0, limit].
type Sieve struct {
	composite []bool
}

// NewSieve builds a sieve covering [0, limit]. A negative limit yields an
// empty sieve.
func NewSieve(limit int) *Sieve {
	if limit < 0 {
		return &Sieve{}
	}
	composite := make([]bool, limit+1)
	for i := 2; i*i <= limit; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}
	return &Sieve{composite: composite}
}

// Limit returns the largest value the sieve can answer for.
func (s *Sieve) Limit() int { return len(s.composite) - 1 }

// IsPrime reports whether n is prime. It panics if n exceeds Limit.
func (s *Sieve) IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n > s.Limit() {
		panic("testutils: value beyond sieve limit")
	}
	return !s.composite[n]
}

// Primes returns every prime up to the limit in ascending order.
func (s *Sieve) Primes() []int {
	var primes []int
	for n := 2; n <= s.Limit(); n++ {
		if !s.composite[n] {
			primes = append(primes, n)
		}
	}
	return primes
}

// NaiveIsPrime checks every divisor in [2, n). It is slow on purpose and
// only meant for small n.
func NaiveIsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	for d := int64(2); d < n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}
