package filter

import "github.com/gogpu/pixproc"

// Test helper functions shared across filter tests.

// createTestPixmap creates a pixmap filled with the given color.
func createTestPixmap(w, h int, color pixproc.RGBA) *pixproc.Pixmap {
	p := pixproc.NewPixmap(w, h)
	p.Clear(color)
	return p
}

// colorApproxEqual compares two colors with tolerance.
func colorApproxEqual(a, b pixproc.RGBA, tolerance float64) bool {
	return absf(a.R-b.R) < tolerance &&
		absf(a.G-b.G) < tolerance &&
		absf(a.B-b.B) < tolerance &&
		absf(a.A-b.A) < tolerance
}

// absf returns the absolute value of a float64.
func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
