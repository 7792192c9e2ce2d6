package pixproc

import (
	"sync"
	"testing"
)

func TestProgress_Percent(t *testing.T) {
	tests := []struct {
		p    Progress
		want float64
	}{
		{Progress{RowsProcessed: 0, TotalRows: 10}, 0},
		{Progress{RowsProcessed: 5, TotalRows: 10}, 50},
		{Progress{RowsProcessed: 10, TotalRows: 10}, 100},
		{Progress{RowsProcessed: 0, TotalRows: 0}, 100},
	}

	for _, tt := range tests {
		if got := tt.p.Percent(); got != tt.want {
			t.Errorf("%+v.Percent() = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestProgressReporter_Concurrent(t *testing.T) {
	var (
		mu   sync.Mutex
		seen = make(map[int]bool)
	)
	r := NewProgressReporter(400, func(p Progress) {
		if p.TotalRows != 400 {
			t.Errorf("TotalRows = %d, want 400", p.TotalRows)
		}
		mu.Lock()
		seen[p.RowsProcessed] = true
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				r.RowDone()
			}
		}()
	}
	wg.Wait()

	if r.Rows() != 400 {
		t.Errorf("Rows() = %d, want 400", r.Rows())
	}
	if r.Total() != 400 {
		t.Errorf("Total() = %d, want 400", r.Total())
	}
	// Every count from 1 to 400 is reported exactly once.
	if len(seen) != 400 || !seen[1] || !seen[400] {
		t.Errorf("handler saw %d distinct counts", len(seen))
	}
}

func TestProgressReporter_NilHandler(t *testing.T) {
	r := NewProgressReporter(3, nil)
	r.RowDone()
	r.RowDone()
	if r.Rows() != 2 {
		t.Errorf("Rows() = %d, want 2", r.Rows())
	}
}
