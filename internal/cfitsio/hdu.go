package cfitsio

/*
#include <stdlib.h>
#include <fitsio.h>
*/
import "C"

import (
	"unsafe"
)

// MoveAbs positions the file at the HDU with the given 1-based number.
func (h *Handle) MoveAbs(num int) Status {
	var st C.int
	C.ffmahd(h.p, C.int(num), nil, &st)
	return Status(st)
}

// MoveNamed positions the file at the HDU matching the EXTNAME (or HDUNAME)
// keyword. hduType restricts the match (AnyHDU matches all); version 0
// matches any EXTVER.
func (h *Handle) MoveNamed(hduType int, name string, version int) Status {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	var st C.int
	C.ffmnhd(h.p, C.int(hduType), cname, C.int(version), &st)
	return Status(st)
}

// CurrentHDU reports the 1-based number of the current HDU.
func (h *Handle) CurrentHDU() int {
	var num C.int
	C.ffghdn(h.p, &num)
	return int(num)
}

// HDUType reports the type code of the current HDU.
func (h *Handle) HDUType() (int, Status) {
	var typ, st C.int
	C.ffghdt(h.p, &typ, &st)
	return int(typ), Status(st)
}

// NumHDUs reports the total number of HDUs in the file.
func (h *Handle) NumHDUs() (int, Status) {
	var n, st C.int
	C.ffthdu(h.p, &n, &st)
	return int(n), Status(st)
}

// DeleteHDU removes the current HDU. The library repositions the file at the
// following HDU, or the previous one when the last HDU was deleted.
func (h *Handle) DeleteHDU() Status {
	var st C.int
	C.ffdhdu(h.p, nil, &st)
	return Status(st)
}

// CopyHDU appends a copy of the current HDU to dst.
func (h *Handle) CopyHDU(dst *Handle) Status {
	var st C.int
	C.ffcopy(h.p, dst.p, 0, &st)
	return Status(st)
}

// WriteEmptyPrimary writes a minimal valid primary header (8-bit, zero axes).
func (h *Handle) WriteEmptyPrimary() Status {
	var st C.int
	C.ffphps(h.p, 8, 0, nil, &st)
	return Status(st)
}

// CreateImage appends an image HDU with the given BITPIX and axis lengths in
// the library's own (Fortran) axis order. On an empty file the new HDU
// becomes the primary.
func (h *Handle) CreateImage(bitpix int, naxes []int64) Status {
	axes := makeLongLongs(naxes)
	var st C.int
	C.ffcrimll(h.p, C.int(bitpix), C.int(len(axes)), &axes[0], &st)
	return Status(st)
}

// ResizeImage changes the BITPIX and axis lengths of the current image HDU,
// axis lengths again in the library's order.
func (h *Handle) ResizeImage(bitpix int, naxes []int64) Status {
	axes := makeLongLongs(naxes)
	var st C.int
	C.ffrsimll(h.p, C.int(bitpix), C.int(len(axes)), &axes[0], &st)
	return Status(st)
}

// CreateTable appends a binary table HDU. names, forms, and units must have
// equal length; forms are TFORM strings.
func (h *Handle) CreateTable(nrows int64, names, forms, units []string, extname string) Status {
	n := len(names)
	ttype := cStrings(names)
	defer freeCStrings(ttype)
	tform := cStrings(forms)
	defer freeCStrings(tform)
	tunit := cStrings(units)
	defer freeCStrings(tunit)

	cext := C.CString(extname)
	defer C.free(unsafe.Pointer(cext))

	var st C.int
	C.ffcrtb(h.p, C.BINARY_TBL, C.LONGLONG(nrows), C.int(n),
		&ttype[0], &tform[0], &tunit[0], cext, &st)
	return Status(st)
}

func makeLongs(v []int64) []C.long {
	out := make([]C.long, len(v))
	for i, x := range v {
		out[i] = C.long(x)
	}
	return out
}

func makeLongLongs(v []int64) []C.LONGLONG {
	out := make([]C.LONGLONG, len(v))
	for i, x := range v {
		out[i] = C.LONGLONG(x)
	}
	return out
}

func cStrings(v []string) []*C.char {
	out := make([]*C.char, len(v))
	for i, s := range v {
		out[i] = C.CString(s)
	}
	return out
}

func freeCStrings(v []*C.char) {
	for _, s := range v {
		C.free(unsafe.Pointer(s))
	}
}
