package permcodec

import (
	"errors"
	"reflect"
	"testing"
)

func permutations(items []int) [][]int {
	if len(items) == 1 {
		return [][]int{{items[0]}}
	}
	var out [][]int
	for i := range items {
		rest := make([]int, 0, len(items)-1)
		rest = append(rest, items[:i]...)
		rest = append(rest, items[i+1:]...)
		for _, tail := range permutations(rest) {
			out = append(out, append([]int{items[i]}, tail...))
		}
	}
	return out
}

func TestRank_BijectionOverAllPermutations(t *testing.T) {
	canonical := []int{10, 20, 30, 40}
	seen := map[int][]int{}
	for _, perm := range permutations(canonical) {
		r, err := Rank(perm, canonical)
		if err != nil {
			t.Fatalf("Rank(%v) failed: %v", perm, err)
		}
		if r < 1 || r > 24 {
			t.Fatalf("Rank(%v) = %d, outside [1,24]", perm, r)
		}
		if prev, dup := seen[r]; dup {
			t.Fatalf("rank %d produced by both %v and %v", r, prev, perm)
		}
		seen[r] = perm
	}
	if len(seen) != 24 {
		t.Fatalf("expected 24 distinct ranks, got %d", len(seen))
	}
}

func TestUnrank_InvertsRank(t *testing.T) {
	canonical := []int{10, 20, 30, 40}
	for _, perm := range permutations(canonical) {
		r, err := Rank(perm, canonical)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Unrank(r, canonical)
		if err != nil {
			t.Fatalf("Unrank(%d) failed: %v", r, err)
		}
		if !reflect.DeepEqual(got, perm) {
			t.Fatalf("Unrank(Rank(%v)) = %v", perm, got)
		}
	}
}

func TestRank_InvertsUnrank(t *testing.T) {
	canonical := []string{"a", "b", "c", "d"}
	for r := 1; r <= 24; r++ {
		order, err := Unrank(r, canonical)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Rank(order, canonical)
		if err != nil {
			t.Fatal(err)
		}
		if got != r {
			t.Fatalf("Rank(Unrank(%d)) = %d", r, got)
		}
	}
}

// The worked example: canonical ids sorted ascending [12,14,28,46], input
// order [46,12,14,28] has position sequence [3,0,1,2], Lehmer digits
// [3,0,0,0], rank 1 + 3*3! = 19.
func TestRank_WorkedExample(t *testing.T) {
	canonical := []int{12, 14, 28, 46}
	order := []int{46, 12, 14, 28}

	r, err := Rank(order, canonical)
	if err != nil {
		t.Fatal(err)
	}
	if r != 19 {
		t.Fatalf("rank = %d, want 19", r)
	}

	back, err := Unrank(19, canonical)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, order) {
		t.Fatalf("Unrank(19) = %v, want %v", back, order)
	}
}

func TestRank_GeneralizesAcrossSizes(t *testing.T) {
	for n := 1; n <= 5; n++ {
		canonical := make([]int, n)
		for i := range canonical {
			canonical[i] = i + 1
		}
		nf, err := Factorial(n)
		if err != nil {
			t.Fatal(err)
		}
		seen := make(map[int]bool, nf)
		for _, perm := range permutations(canonical) {
			r, err := Rank(perm, canonical)
			if err != nil {
				t.Fatalf("n=%d Rank(%v): %v", n, perm, err)
			}
			if r < 1 || r > nf {
				t.Fatalf("n=%d rank %d outside [1,%d]", n, r, nf)
			}
			seen[r] = true
		}
		if len(seen) != nf {
			t.Fatalf("n=%d: %d distinct ranks, want %d", n, len(seen), nf)
		}
	}
}

func TestUnrank_OutOfRange(t *testing.T) {
	canonical := []int{1, 2, 3, 4}
	for _, r := range []int{0, -1, 25, 100} {
		if _, err := Unrank(r, canonical); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("Unrank(%d): expected ErrOutOfRange, got %v", r, err)
		}
	}
	if _, err := Unrank(24, canonical); err != nil {
		t.Fatalf("Unrank(24) should be valid: %v", err)
	}
}

func TestRank_RejectsNonPermutations(t *testing.T) {
	canonical := []int{1, 2, 3, 4}
	cases := [][]int{
		{1, 2, 3},       // too short
		{1, 2, 3, 5},    // unknown item
		{1, 2, 2, 4},    // repeated item
		{1, 2, 3, 4, 4}, // too long
	}
	for _, order := range cases {
		if _, err := Rank(order, canonical); !errors.Is(err, ErrNotPermutation) {
			t.Fatalf("Rank(%v): expected ErrNotPermutation, got %v", order, err)
		}
	}
}

func TestFactorial(t *testing.T) {
	want := []int{1, 1, 2, 6, 24, 120}
	for n, w := range want {
		got, err := Factorial(n)
		if err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Fatalf("Factorial(%d) = %d, want %d", n, got, w)
		}
	}
	if _, err := Factorial(13); err == nil {
		t.Fatal("Factorial(13) should be rejected")
	}
	if _, err := Factorial(-1); err == nil {
		t.Fatal("Factorial(-1) should be rejected")
	}
}
