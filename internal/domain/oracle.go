package domain

// IsPrime reports whether n is prime using bounded trial division.
//
// Every n <= 1 is rejected before the loop. For n >= 2 the divisors 2..i
// with i*i <= n are tried in order and the first one that divides n ends
// the search. Any composite has a factor no larger than its square root,
// so surviving the loop means n is prime.
//
// The bound is written as i <= n/i so that it cannot overflow for n near
// math.MaxInt64.
func IsPrime(n Candidate) bool {
	if n <= 1 {
		return false
	}
	for i := Candidate(2); i <= n/i; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// Factorial returns n! computed iteratively.
// Negative inputs yield -1. Results above 20! wrap around int64, and from
// 66! on the wrapped product is 0, at which point the loop stops.
func Factorial(n Candidate) int64 {
	if n < 0 {
		return -1
	}
	if n == 0 || n == 1 {
		return 1
	}

	fact := int64(1)
	for i := int64(2); i <= int64(n) && fact != 0; i++ {
		fact *= i
	}
	return fact
}
