// Package cfitsio holds the cgo bindings to the CFITSIO C library.
//
// This is the FFI boundary: every function here issues exactly one C call and
// returns the library's integer status untouched. Interpretation of statuses,
// type dispatch, range translation, and axis-order conventions all live in the
// parent fits package.
//
// CFITSIO's documented fits_* names are preprocessor macros and therefore
// invisible to cgo, so the bindings call the underlying short names (ffopen,
// ffgcv, ...) directly.
package cfitsio
