package arrow

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/jmgilman/go/fits"
)

// Option configures record and tensor reads.
type Option func(*options)

type options struct {
	alloc   memory.Allocator
	columns []string
	rows    *fits.Range
}

func defaultOptions() options {
	return options{alloc: memory.NewGoAllocator()}
}

// WithAllocator sets the Arrow allocator backing the produced buffers.
func WithAllocator(alloc memory.Allocator) Option {
	return func(o *options) {
		o.alloc = alloc
	}
}

// WithColumns restricts ReadRecord to the named columns, in the given
// order. Names match case-insensitively, following the FITS convention.
func WithColumns(names ...string) Option {
	return func(o *options) {
		o.columns = names
	}
}

// WithRowRange restricts ReadRecord to the zero-based, half-open row range
// [start, end).
func WithRowRange(start, end int) Option {
	return func(o *options) {
		o.rows = &fits.Range{Start: start, End: end}
	}
}
