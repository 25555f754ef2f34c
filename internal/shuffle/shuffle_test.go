package shuffle

import (
	"sort"
	"testing"
)

func TestShuffle_PreservesMultiset(t *testing.T) {
	in := []string{"a", "b", "c", "b", "d", "e", "f", "a"}
	out := Shuffle(in)
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	sortedIn := append([]string(nil), in...)
	sortedOut := append([]string(nil), out...)
	sort.Strings(sortedIn)
	sort.Strings(sortedOut)
	for i := range sortedIn {
		if sortedIn[i] != sortedOut[i] {
			t.Fatalf("multiset changed: %v vs %v", sortedIn, sortedOut)
		}
	}
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	want := append([]int(nil), in...)
	_ = Shuffle(in)
	for i := range want {
		if in[i] != want[i] {
			t.Fatalf("input mutated at %d: %v", i, in)
		}
	}
}

func TestShuffle_Trivial(t *testing.T) {
	if got := Shuffle([]int{}); len(got) != 0 {
		t.Errorf("empty input: got %v", got)
	}
	if got := Shuffle([]int{42}); len(got) != 1 || got[0] != 42 {
		t.Errorf("single element: got %v", got)
	}
}

func TestShuffle_EventuallyReorders(t *testing.T) {
	in := make([]int, 30)
	for i := range in {
		in[i] = i
	}
	// 30! orderings; ten tries all returning identity means something is broken.
	for try := 0; try < 10; try++ {
		out := Shuffle(in)
		for i := range out {
			if out[i] != in[i] {
				return
			}
		}
	}
	t.Fatal("shuffle returned identity permutation 10 times in a row")
}

func TestIndices(t *testing.T) {
	out := Indices(24)
	if len(out) != 24 {
		t.Fatalf("len = %d, want 24", len(out))
	}
	seen := make(map[int]bool, 24)
	for _, v := range out {
		if v < 0 || v >= 24 {
			t.Fatalf("index %d out of range", v)
		}
		if seen[v] {
			t.Fatalf("index %d repeated", v)
		}
		seen[v] = true
	}
}
