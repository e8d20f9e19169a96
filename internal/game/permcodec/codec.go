// Package permcodec implements the Lehmer-code bijection between permutations
// of an n-element ordered set and the integers 1..n! (factorial number
// system). It is independent of the card domain and usable standalone.
package permcodec

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange signals a rank outside [1, n!].
	ErrOutOfRange = errors.New("rank out of range")
	// ErrNotPermutation signals an order that is not a permutation of the
	// canonical set (wrong length, duplicates, or unknown items).
	ErrNotPermutation = errors.New("order is not a permutation of canonical")
)

// maxLen keeps n! inside int range on 64-bit platforms with headroom.
const maxLen = 12

// factorials[i] == i!, built iteratively at init.
var factorials = func() [maxLen + 1]int {
	var t [maxLen + 1]int
	t[0] = 1
	for i := 1; i <= maxLen; i++ {
		t[i] = t[i-1] * i
	}
	return t
}()

// Factorial returns n! for n in [0, 12].
func Factorial(n int) (int, error) {
	if n < 0 || n > maxLen {
		return 0, fmt.Errorf("factorial: n %d outside [0,%d]", n, maxLen)
	}
	return factorials[n], nil
}

// Rank maps order, a permutation of canonical, to an integer in [1, n!].
//
// Canonical positions 0..n-1 are the indexes into canonical; order is first
// translated to the position sequence P, then each Lehmer digit counts the
// not-yet-used positions smaller than P[i]. Rank = 1 + Σ digit[i]*(n-1-i)!.
func Rank[T comparable](order, canonical []T) (int, error) {
	n := len(canonical)
	if n > maxLen {
		return 0, fmt.Errorf("rank: %d items exceeds max %d", n, maxLen)
	}
	if len(order) != n {
		return 0, fmt.Errorf("%w: got %d items, want %d", ErrNotPermutation, len(order), n)
	}

	pos := make(map[T]int, n)
	for i, item := range canonical {
		if _, dup := pos[item]; dup {
			return 0, fmt.Errorf("%w: duplicate item in canonical", ErrNotPermutation)
		}
		pos[item] = i
	}

	used := make([]bool, n)
	rank := 1
	for i, item := range order {
		p, ok := pos[item]
		if !ok {
			return 0, fmt.Errorf("%w: item %v not in canonical", ErrNotPermutation, item)
		}
		if used[p] {
			return 0, fmt.Errorf("%w: item %v repeated", ErrNotPermutation, item)
		}
		smaller := 0
		for q := 0; q < p; q++ {
			if !used[q] {
				smaller++
			}
		}
		used[p] = true
		rank += smaller * factorials[n-1-i]
	}
	return rank, nil
}

// Unrank is the exact inverse of Rank: it reconstructs the order whose rank
// is r relative to canonical. r must lie in [1, n!].
func Unrank[T any](r int, canonical []T) ([]T, error) {
	n := len(canonical)
	if n > maxLen {
		return nil, fmt.Errorf("unrank: %d items exceeds max %d", n, maxLen)
	}
	if r < 1 || r > factorials[n] {
		return nil, fmt.Errorf("%w: %d outside [1,%d]", ErrOutOfRange, r, factorials[n])
	}

	rem := r - 1
	used := make([]bool, n)
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		f := factorials[n-1-i]
		digit := rem / f
		rem %= f

		// Take the digit-th smallest not-yet-used canonical position.
		for p := 0; p < n; p++ {
			if used[p] {
				continue
			}
			if digit == 0 {
				used[p] = true
				out = append(out, canonical[p])
				break
			}
			digit--
		}
	}
	return out, nil
}
