package fits

// The FITS format is Fortran-shaped: axes are stored fastest-varying first
// and rows are numbered from 1. The wrapper presents row-major shapes and
// zero-based, half-open ranges instead. The two conversions live here and
// nowhere else.

// reverseAxes returns the axis lengths in the opposite order. Applying it to
// the library's NAXIS vector yields the row-major shape, and applying it to a
// row-major shape yields the library's order.
func reverseAxes(axes []int) []int {
	out := make([]int, len(axes))
	for i, n := range axes {
		out[len(axes)-1-i] = n
	}
	return out
}

// rowRange translates the half-open, zero-based interval [start, end) into
// the library's one-based first element and element count.
func rowRange(start, end int) (first, count int64) {
	return int64(start) + 1, int64(end - start)
}

// libraryAxes converts a row-major shape to the axis vector the library
// expects: reversed order, widened to 64 bits.
func libraryAxes(shape []int) []int64 {
	rev := reverseAxes(shape)
	out := make([]int64, len(rev))
	for i, n := range rev {
		out[i] = int64(n)
	}
	return out
}

// intAxes narrows the library's 64-bit axis vector for use in a row-major
// shape.
func intAxes(axes []int64) []int {
	out := make([]int, len(axes))
	for i, n := range axes {
		out[i] = int(n)
	}
	return out
}

// product returns the number of elements a shape spans.
func product(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}
