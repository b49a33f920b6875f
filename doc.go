// Package fits provides a clean, type-safe wrapper around the CFITSIO
// library for reading and writing FITS files.
//
// This library wraps the C library's fitsfile handle with enhanced platform
// types while providing escape hatches, translates every CFITSIO status code
// into platform errors, and organizes functionality into focused,
// maintainable files.
//
// The library targets astronomical data pipelines (open → locate HDU → bulk
// read or write → close) while supporting file creation and structural
// editing needs. It prioritizes simplicity in common operations while
// providing full access to the underlying handle when needed.
//
// # Architecture
//
// The library is built on several key principles:
//
//  1. Thin wrappers over CFITSIO (not reimplementing the FITS format)
//  2. One internal package owning every cgo call
//  3. Escape hatches via Raw() for advanced use cases
//  4. Typed, generic read and write entry points over a closed type set
//  5. Organized by concern (file, HDU, column, image, header)
//  6. Zero-based, half-open, row-major coordinates everywhere
//
// # Core Types
//
// File wraps one open fitsfile handle with platform conventions and owns its
// lifetime: no matter how many times Close is called, the handle is closed
// exactly once.
//
// HDU addresses one header-data unit by position. Its Info field describes
// the contents as an ImageInfo, TableInfo, or AnyInfo, so code can branch on
// what an HDU holds without touching the C layer.
//
// ColumnDescriptor, ImageDescription, Range, and Nullable are value types
// for describing table columns, new images, coordinate intervals, and
// column data with per-element validity.
//
// # Coordinate Conventions
//
// The FITS format numbers rows from 1 and stores image axes fastest-varying
// first. The wrapper hides both conventions:
//
//   - Row and pixel ranges are zero-based and half-open: [0, 10) is the
//     first ten rows.
//   - Image shapes are row-major with the outermost axis first, matching how
//     a nested Go slice would be laid out. A 100×50 image has shape
//     [100, 50] and its rows are 50 pixels long.
//
// Conversions happen at the API boundary and nowhere else.
//
// # Reading and Writing Data
//
// Bulk data moves through generic functions because Go methods cannot take
// type parameters:
//
//	flux, err := fits.ReadColumn[float64](hdu, "FLUX")
//	ids, err := fits.ReadColumnRange[int32](hdu, "ID", 0, 20)
//	pixels, err := fits.ReadSection[float32](hdu, 0, 100)
//	region, err := fits.ReadRegion[int64](hdu, []fits.Range{{0, 10}, {20, 30}})
//
// The element type is independent of the stored type: the library converts
// per element and fails on values that do not fit. Logical columns transfer
// only as bool and string columns only as string.
//
// # Null Handling
//
// Table cells can be undefined. A plain ReadColumn refuses to return columns
// containing undefined cells, because a bare []T cannot say which values are
// real. The caller chooses how nulls should be represented:
//
//	// Validity mask, Arrow-style.
//	data, err := fits.ReadColumnNullable[int32](hdu, "COUNTS")
//
//	// Sentinel substitution.
//	values, err := fits.ReadColumnFilled[int32](hdu, "COUNTS", -1)
//
// # Error Handling
//
// The library wraps CFITSIO statuses with platform error types from the
// errors library. Common error codes include:
//
//   - CodeNotFound: file, HDU, column, or keyword does not exist
//   - CodeAlreadyExists: creating over an existing file
//   - CodeForbidden: mutating a file opened read-only
//   - CodeInvalidInput: out-of-range coordinates, type mismatches, overflow
//   - CodeConflict: plain reads of columns containing undefined cells
//   - CodeInternal: I/O failures and malformed files
//
// The raw status number rides along as error context under the "status" key.
//
// # Thread Safety
//
// A File is not safe for concurrent use; even read-only calls mutate the
// handle's cursor. Threadsafe wraps a file in a mutex-guarded SafeFile whose
// Do method runs a function with exclusive access:
//
//	safe := f.Threadsafe()
//	err := safe.Do(func(f *fits.File) error {
//	    hdu, err := f.HDU(0)
//	    if err != nil {
//	        return err
//	    }
//	    _, err = fits.ReadImage[float64](hdu)
//	    return err
//	})
//
// Serialization is only sufficient when the linked CFITSIO build is
// reentrant; Reentrant reports whether it is.
//
// # Escape Hatches
//
// Raw returns the underlying fitsfile pointer for library calls the wrapper
// does not cover, and FromRaw adopts a pointer created elsewhere:
//
//	ptr := f.Raw()        // pass to direct cgo calls
//	f, err := fits.FromRaw(ptr) // wrap a pointer created by other code
//
// Everything done through the raw pointer bypasses the wrapper's
// invariants.
//
// # Usage Examples
//
// ## Example 1: Read a Column
//
//	package main
//
//	import (
//	    "fmt"
//
//	    "github.com/jmgilman/go/fits"
//	)
//
//	func main() {
//	    f, err := fits.Open("catalog.fits")
//	    if err != nil {
//	        panic(err)
//	    }
//	    defer f.Close()
//
//	    hdu, err := f.HDUByName("SOURCES")
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    mags, err := fits.ReadColumn[float64](hdu, "MAG")
//	    if err != nil {
//	        panic(err)
//	    }
//	    fmt.Println("read", len(mags), "magnitudes")
//	}
//
// ## Example 2: Create a File with an Image and a Table
//
//	f, err := fits.Create("out.fits",
//	    fits.WithOverwrite(),
//	    fits.WithPrimary(fits.ImageDescription{
//	        PixelType:  fits.ImageInt32,
//	        Dimensions: []int{100, 100},
//	    }))
//	if err != nil {
//	    panic(err)
//	}
//	defer f.Close()
//
//	hdu, err := f.PrimaryHDU()
//	if err != nil {
//	    panic(err)
//	}
//	if err := fits.WriteImage(hdu, pixels); err != nil {
//	    panic(err)
//	}
//
//	table, err := f.CreateTable("SOURCES", []fits.ColumnDescriptor{
//	    {Name: "ID", Type: fits.TypeInt, Repeat: 1},
//	    {Name: "MAG", Type: fits.TypeDouble, Repeat: 1},
//	})
//	if err != nil {
//	    panic(err)
//	}
//	if err := fits.WriteColumn(table, "ID", ids); err != nil {
//	    panic(err)
//	}
//
// ## Example 3: Walk Every HDU
//
//	for hdu, err := range f.HDUs() {
//	    if err != nil {
//	        return err
//	    }
//	    name, err := hdu.Name()
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Printf("%d %s: %v\n", hdu.Number(), name, hdu.Info)
//	}
//
// # Columnar Interop
//
// The arrow sub-package converts table HDUs to Apache Arrow records and
// image HDUs to Arrow tensors, preserving null masks:
//
//	import fitsarrow "github.com/jmgilman/go/fits/arrow"
//
//	rec, err := fitsarrow.ReadRecord(hdu)
//
// # References
//
// For library calls not covered by this wrapper, refer to:
//   - CFITSIO documentation: https://heasarc.gsfc.nasa.gov/fitsio/
//   - FITS standard: https://fits.gsfc.nasa.gov/fits_standard.html
package fits
