package pixproc

import "sync/atomic"

// Progress is a snapshot of a running pass.
type Progress struct {
	// RowsProcessed is the number of rows finished so far.
	RowsProcessed int

	// TotalRows is the number of rows the pass covers.
	TotalRows int
}

// Percent returns the completed share in [0, 100].
// A pass with no rows reports 100.
func (p Progress) Percent() float64 {
	if p.TotalRows <= 0 {
		return 100
	}
	return 100 * float64(p.RowsProcessed) / float64(p.TotalRows)
}

// ProgressReporter counts finished rows.
//
// RowDone is safe for concurrent use and is meant to be passed as the
// onRowDone callback of Engine.Process.
type ProgressReporter struct {
	total   int
	rows    atomic.Int64
	handler func(Progress)
}

// NewProgressReporter creates a reporter for a pass of total rows.
// handler, if non-nil, receives a snapshot after every row and must be safe
// for concurrent use.
func NewProgressReporter(total int, handler func(Progress)) *ProgressReporter {
	return &ProgressReporter{total: total, handler: handler}
}

// RowDone records one finished row.
func (r *ProgressReporter) RowDone() {
	n := r.rows.Add(1)
	if r.handler != nil {
		r.handler(Progress{RowsProcessed: int(n), TotalRows: r.total})
	}
}

// Rows returns the number of rows recorded so far.
func (r *ProgressReporter) Rows() int {
	return int(r.rows.Load())
}

// Total returns the number of rows the pass covers.
func (r *ProgressReporter) Total() int {
	return r.total
}
