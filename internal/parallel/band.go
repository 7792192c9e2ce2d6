package parallel

// BandsPerWorker is how many bands ForRows cuts per worker.
// More bands than workers lets idle workers steal the tail of a slow job.
const BandsPerWorker = 4

// Band is a horizontal strip of rows [Y0, Y1).
type Band struct {
	// Y0 is the first row of the band.
	Y0 int

	// Y1 is one past the last row of the band.
	Y1 int
}

// Height returns the number of rows in the band.
func (b Band) Height() int {
	return b.Y1 - b.Y0
}

// Contains returns true if row y belongs to the band.
func (b Band) Contains(y int) bool {
	return y >= b.Y0 && y < b.Y1
}

// SplitRows divides [start, end) into at most n contiguous, non-overlapping
// bands whose heights differ by at most one row. The bands cover the range
// exactly and are returned top to bottom. An empty range yields nil.
func SplitRows(start, end, n int) []Band {
	rows := end - start
	if rows <= 0 {
		return nil
	}
	if n <= 0 {
		n = 1
	}
	n = min(n, rows)

	bands := make([]Band, n)
	base, extra := rows/n, rows%n
	y := start
	for i := range bands {
		h := base
		if i < extra {
			h++
		}
		bands[i] = Band{Y0: y, Y1: y + h}
		y += h
	}
	return bands
}

// SplitHeight divides [start, end) into consecutive bands of at most height
// rows. A non-positive height yields a single band covering the range.
func SplitHeight(start, end, height int) []Band {
	if end <= start {
		return nil
	}
	if height <= 0 {
		return []Band{{Y0: start, Y1: end}}
	}

	bands := make([]Band, 0, (end-start+height-1)/height)
	for y := start; y < end; y += height {
		bands = append(bands, Band{Y0: y, Y1: min(y+height, end)})
	}
	return bands
}
