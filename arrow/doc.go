// Package arrow converts FITS HDUs into Apache Arrow structures, bridging
// astronomical files into columnar pipelines.
//
// This package reads table HDUs into Arrow records and image HDUs into
// Arrow tensors, carrying FITS null masks over as Arrow validity bitmaps
// and vector columns as fixed-size lists.
//
// Usage:
//
//	// Read a whole table
//	rec, err := arrow.ReadRecord(hdu)
//	defer rec.Release()
//
//	// Read selected columns with a custom allocator
//	rec, err := arrow.ReadRecord(hdu,
//	    arrow.WithColumns("ID", "FLUX"),
//	    arrow.WithAllocator(pool))
//
//	// Read an image as a tensor of its native pixel type
//	t, err := arrow.ReadTensor(hdu)
//	defer t.Release()
//
// Column units (TUNIT) become field metadata under the "unit" key.
package arrow
