package cfitsio

/*
#include <fitsio.h>
*/
import "C"

import (
	"unsafe"
)

// ImageDims reports the axis lengths of the current image HDU in the
// library's own (Fortran) axis order.
func (h *Handle) ImageDims() ([]int64, Status) {
	var naxis, st C.int
	C.ffgidm(h.p, &naxis, &st)
	if Status(st) != OK {
		return nil, Status(st)
	}
	if naxis == 0 {
		return nil, OK
	}

	axes := make([]C.LONGLONG, naxis)
	C.ffgiszll(h.p, naxis, &axes[0], &st)
	if Status(st) != OK {
		return nil, Status(st)
	}

	out := make([]int64, naxis)
	for i, x := range axes {
		out[i] = int64(x)
	}
	return out, OK
}

// ImageEquivType reports the BITPIX code that reads from the current image
// HDU will effectively produce once TSCAL/TZERO scaling is applied.
func (h *Handle) ImageEquivType() (int, Status) {
	var typ, st C.int
	C.ffgiet(h.p, &typ, &st)
	return int(typ), Status(st)
}

// ReadPixels reads n pixels starting at the 1-based flat pixel index first
// into dest, converting to the given memory type. No null substitution is
// performed; anynul reports whether any read pixel was undefined.
func (h *Handle) ReadPixels(dtype DataType, first, n int64, dest unsafe.Pointer) (bool, Status) {
	var anynul, st C.int
	C.ffgpv(h.p, C.int(dtype), C.LONGLONG(first), C.LONGLONG(n), nil, dest, &anynul, &st)
	return anynul != 0, Status(st)
}

// ReadSubset reads the rectangular region with the 1-based inclusive corners
// blc and trc (in the library's axis order) into dest with unit stride.
func (h *Handle) ReadSubset(dtype DataType, blc, trc []int64, dest unsafe.Pointer) (bool, Status) {
	cblc := makeLongs(blc)
	ctrc := makeLongs(trc)
	inc := make([]C.long, len(blc))
	for i := range inc {
		inc[i] = 1
	}

	var anynul, st C.int
	C.ffgsv(h.p, C.int(dtype), &cblc[0], &ctrc[0], &inc[0], nil, dest, &anynul, &st)
	return anynul != 0, Status(st)
}

// WritePixels writes n pixels from src starting at the 1-based flat pixel
// index first.
func (h *Handle) WritePixels(dtype DataType, first, n int64, src unsafe.Pointer) Status {
	var st C.int
	C.ffppr(h.p, C.int(dtype), C.LONGLONG(first), C.LONGLONG(n), src, &st)
	return Status(st)
}

// WriteSubset writes the rectangular region with the 1-based inclusive
// corners blc and trc (library axis order) from src.
func (h *Handle) WriteSubset(dtype DataType, blc, trc []int64, src unsafe.Pointer) Status {
	cblc := makeLongs(blc)
	ctrc := makeLongs(trc)

	var st C.int
	C.ffpss(h.p, C.int(dtype), &cblc[0], &ctrc[0], src, &st)
	return Status(st)
}
