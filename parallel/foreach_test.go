package parallel

import "sync/atomic"
import "testing"

// every index runs exactly once, for any worker count
func TestForEach(t *testing.T) {
	for _, limit := range []int{0, 1, 3, 7, 100} {
		const length = 1000
		var counts [length]int32
		ForEach(length, limit, func(i int) {
			atomic.AddInt32(&counts[i], 1)
		})
		for i, c := range counts {
			if c != 1 {
				t.Fatalf("limit %d: index %d ran %d times", limit, i, c)
			}
		}
	}
}

func TestForEachEmpty(t *testing.T) {
	ran := false
	ForEach(0, 4, func(i int) { ran = true })
	ForEach(-5, 4, func(i int) { ran = true })
	if ran {
		t.Error("body ran for empty range")
	}
}

func TestWorkers(t *testing.T) {
	if Workers() < 1 {
		t.Errorf("Workers() = %d", Workers())
	}
}
