package cfitsio

/*
#include <stdlib.h>
#include <fitsio.h>
*/
import "C"

import (
	"unsafe"
)

// NumRows reports the number of rows in the current table HDU.
func (h *Handle) NumRows() (int64, Status) {
	var n C.LONGLONG
	var st C.int
	C.ffgnrwll(h.p, &n, &st)
	return int64(n), Status(st)
}

// NumColumns reports the number of columns in the current table HDU.
func (h *Handle) NumColumns() (int, Status) {
	var n, st C.int
	C.ffgncl(h.p, &n, &st)
	return int(n), Status(st)
}

// ColumnNumber resolves a column name template to its 1-based column number.
func (h *Handle) ColumnNumber(template string, caseSensitive bool) (int, Status) {
	ctmpl := C.CString(template)
	defer C.free(unsafe.Pointer(ctmpl))

	casesen := C.int(CaseInsensitive)
	if caseSensitive {
		casesen = C.int(CaseSensitive)
	}

	var col, st C.int
	C.ffgcno(h.p, casesen, ctmpl, &col, &st)
	return int(col), Status(st)
}

// ColumnName reports the TTYPE name and TUNIT unit of the 1-based column.
func (h *Handle) ColumnName(col int) (string, string, Status) {
	name := make([]byte, C.FLEN_VALUE)
	unit := make([]byte, C.FLEN_VALUE)

	var st C.int
	C.ffgbcl(h.p, C.int(col),
		(*C.char)(unsafe.Pointer(&name[0])), (*C.char)(unsafe.Pointer(&unit[0])),
		nil, nil, nil, nil, nil, nil, &st)
	if Status(st) != OK {
		return "", "", Status(st)
	}
	return goString(name), goString(unit), OK
}

// ColumnType reports the equivalent type code (TSCAL/TZERO applied), repeat
// count, and element width in bytes of the 1-based column.
func (h *Handle) ColumnType(col int) (int, int64, int64, Status) {
	var typ C.int
	var repeat, width C.LONGLONG
	var st C.int
	C.ffeqtyll(h.p, C.int(col), &typ, &repeat, &width, &st)
	return int(typ), int64(repeat), int64(width), Status(st)
}

// DisplayWidth reports the number of characters needed to display one
// element of the 1-based column.
func (h *Handle) DisplayWidth(col int) (int, Status) {
	var width, st C.int
	C.ffgcdw(h.p, C.int(col), &width, &st)
	return int(width), Status(st)
}

// ReadColumn reads n elements from the 1-based column starting at the
// 1-based firstRow into dest, converting to the given memory type. When
// nulval is non-nil, undefined elements are replaced with *nulval and anynul
// reports that at least one replacement happened; when nulval is nil no
// undefined-value checking is performed.
func (h *Handle) ReadColumn(dtype DataType, col int, firstRow, n int64, nulval, dest unsafe.Pointer) (bool, Status) {
	var anynul, st C.int
	C.ffgcv(h.p, C.int(dtype), C.int(col), C.LONGLONG(firstRow), 1, C.LONGLONG(n),
		nulval, dest, &anynul, &st)
	return anynul != 0, Status(st)
}

// ReadColumnFlags reads n elements like ReadColumn but also returns a
// parallel flag array with a non-zero byte at every undefined element.
// Undefined elements of dest carry no meaningful value.
func (h *Handle) ReadColumnFlags(dtype DataType, col int, firstRow, n int64, dest unsafe.Pointer) ([]byte, bool, Status) {
	flags := make([]byte, n)
	var anynul, st C.int
	C.ffgcf(h.p, C.int(dtype), C.int(col), C.LONGLONG(firstRow), 1, C.LONGLONG(n),
		dest, (*C.char)(unsafe.Pointer(&flags[0])), &anynul, &st)
	return flags, anynul != 0, Status(st)
}

// ReadColumnStrings reads n string elements from the 1-based column starting
// at the 1-based firstRow. width is the per-element display width used to
// size the cell buffers.
func (h *Handle) ReadColumnStrings(col int, firstRow, n int64, width int) ([]string, Status) {
	cells := make([]*C.char, n)
	for i := range cells {
		cells[i] = (*C.char)(C.calloc(C.size_t(width+1), 1))
	}
	defer freeCStrings(cells)

	var anynul, st C.int
	C.ffgcvs(h.p, C.int(col), C.LONGLONG(firstRow), 1, C.LONGLONG(n),
		nil, &cells[0], &anynul, &st)
	if Status(st) != OK {
		return nil, Status(st)
	}

	out := make([]string, n)
	for i, c := range cells {
		out[i] = C.GoString(c)
	}
	return out, OK
}

// WriteColumn writes n elements from src into the 1-based column starting at
// the 1-based firstRow, converting from the given memory type.
func (h *Handle) WriteColumn(dtype DataType, col int, firstRow, n int64, src unsafe.Pointer) Status {
	var st C.int
	C.ffpcl(h.p, C.int(dtype), C.int(col), C.LONGLONG(firstRow), 1, C.LONGLONG(n), src, &st)
	return Status(st)
}

// WriteColumnStrings writes string elements into the 1-based column starting
// at the 1-based firstRow.
func (h *Handle) WriteColumnStrings(col int, firstRow int64, values []string) Status {
	cells := cStrings(values)
	defer freeCStrings(cells)

	var st C.int
	C.ffpcls(h.p, C.int(col), C.LONGLONG(firstRow), 1, C.LONGLONG(len(values)), &cells[0], &st)
	return Status(st)
}

// WriteNullCells marks n elements of the 1-based column as undefined,
// starting at the 1-based firstRow. Integer columns need a TNULL sentinel
// declared first; floating columns use NaN.
func (h *Handle) WriteNullCells(col int, firstRow, n int64) Status {
	var st C.int
	C.ffpclu(h.p, C.int(col), C.LONGLONG(firstRow), 1, C.LONGLONG(n), &st)
	return Status(st)
}

// InsertColumn inserts a new column at the 1-based position.
func (h *Handle) InsertColumn(pos int, name, form string) Status {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	cform := C.CString(form)
	defer C.free(unsafe.Pointer(cform))

	var st C.int
	C.fficol(h.p, C.int(pos), cname, cform, &st)
	return Status(st)
}

// DeleteColumn removes the 1-based column.
func (h *Handle) DeleteColumn(col int) Status {
	var st C.int
	C.ffdcol(h.p, C.int(col), &st)
	return Status(st)
}

// Redefine re-reads the current HDU structure after manual header edits,
// such as writing a TNULL keyword for an existing column.
func (h *Handle) Redefine() Status {
	var st C.int
	C.ffrdef(h.p, &st)
	return Status(st)
}

func goString(buf []byte) string {
	return C.GoString((*C.char)(unsafe.Pointer(&buf[0])))
}
