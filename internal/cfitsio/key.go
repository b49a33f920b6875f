package cfitsio

/*
#include <stdlib.h>
#include <fitsio.h>
*/
import "C"

import (
	"unsafe"
)

// ReadKey reads a header keyword value into the buffer value points at,
// converting to the given memory type, and returns the card's comment.
func (h *Handle) ReadKey(dtype DataType, name string, value unsafe.Pointer) (string, Status) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	comment := make([]byte, C.FLEN_COMMENT)
	var st C.int
	C.ffgky(h.p, C.int(dtype), cname, value, (*C.char)(unsafe.Pointer(&comment[0])), &st)
	if Status(st) != OK {
		return "", Status(st)
	}
	return goString(comment), OK
}

// ReadKeyString reads a string-valued header keyword and its comment.
func (h *Handle) ReadKeyString(name string) (string, string, Status) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	value := make([]byte, C.FLEN_VALUE)
	comment := make([]byte, C.FLEN_COMMENT)
	var st C.int
	C.ffgkys(h.p, cname,
		(*C.char)(unsafe.Pointer(&value[0])), (*C.char)(unsafe.Pointer(&comment[0])), &st)
	if Status(st) != OK {
		return "", "", Status(st)
	}
	return goString(value), goString(comment), OK
}

// WriteKey writes a header keyword from the buffer value points at. An empty
// comment writes no comment field.
func (h *Handle) WriteKey(dtype DataType, name string, value unsafe.Pointer, comment string) Status {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	var ccomment *C.char
	if comment != "" {
		ccomment = C.CString(comment)
		defer C.free(unsafe.Pointer(ccomment))
	}

	var st C.int
	C.ffpky(h.p, C.int(dtype), cname, value, ccomment, &st)
	return Status(st)
}

// WriteKeyString writes a string-valued header keyword.
func (h *Handle) WriteKeyString(name, value, comment string) Status {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	cvalue := C.CString(value)
	defer C.free(unsafe.Pointer(cvalue))

	var ccomment *C.char
	if comment != "" {
		ccomment = C.CString(comment)
		defer C.free(unsafe.Pointer(ccomment))
	}

	var st C.int
	C.ffpkys(h.p, cname, cvalue, ccomment, &st)
	return Status(st)
}
