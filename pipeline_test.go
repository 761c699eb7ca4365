package cloth

import (
	"sync/atomic"
	"testing"
)

func TestChunks_CoversEveryIndexOnce(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		size    int
	}{
		{"single worker", 1, 10},
		{"zero workers", 0, 10},
		{"even split", 4, 16},
		{"uneven split", 3, 10},
		{"more workers than items", 8, 3},
		{"empty", 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := make([]atomic.Int32, tt.size)
			chunks(tt.workers, tt.size, func(_, start, end int) {
				for i := start; i < end; i++ {
					counts[i].Add(1)
				}
			})

			for i := range counts {
				if c := counts[i].Load(); c != 1 {
					t.Errorf("index %d visited %d times, want 1", i, c)
				}
			}
		})
	}
}

func TestTask(t *testing.T) {
	data := []int{1, 2, 3, 4, 5, 6, 7}
	var sum atomic.Int64

	task(3, data, func(v int) {
		sum.Add(int64(v))
	})

	if sum.Load() != 28 {
		t.Errorf("sum = %d, want 28", sum.Load())
	}
}
