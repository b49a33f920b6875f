package cfitsio

/*
#cgo pkg-config: cfitsio
#include <stdlib.h>
#include <fitsio.h>

typedef struct {
	void   *ptr;
	size_t  size;
} memholder;
*/
import "C"

import (
	"unsafe"
)

// Status is a raw CFITSIO status code. Zero means success. Callers translate
// non-zero values into typed errors; a Status never crosses the public API.
type Status int

// OK is the zero status returned by every successful call.
const OK Status = 0

// Handle owns a single fitsfile pointer. It is not safe for concurrent use;
// serialization is the caller's concern.
type Handle struct {
	p   *C.fitsfile
	mem *C.memholder
}

// Open opens an existing FITS file. mode is ReadOnly or ReadWrite.
func Open(path string, mode int) (*Handle, Status) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	var p *C.fitsfile
	var st C.int
	C.ffopen(&p, cpath, C.int(mode), &st)
	if Status(st) != OK {
		return nil, Status(st)
	}
	return &Handle{p: p}, OK
}

// OpenMemory opens a read-only FITS file from an in-memory image. The bytes
// are copied into C-allocated storage that lives until Close; name is only
// used by the library for diagnostics.
func OpenMemory(name string, data []byte) (*Handle, Status) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	// The library keeps the address of the buffer pointer for the lifetime
	// of the open file, so both the holder and the bytes live in C memory.
	m := (*C.memholder)(C.malloc(C.sizeof_memholder))
	m.ptr = C.CBytes(data)
	m.size = C.size_t(len(data))

	var p *C.fitsfile
	var st C.int
	C.ffomem(&p, cname, C.READONLY, &m.ptr, &m.size, 0, nil, &st)
	if Status(st) != OK {
		C.free(m.ptr)
		C.free(unsafe.Pointer(m))
		return nil, Status(st)
	}
	return &Handle{p: p, mem: m}, OK
}

// Create creates a new FITS file. Prefixing the path with '!' engages the
// library's forced-overwrite behavior.
func Create(path string) (*Handle, Status) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	var p *C.fitsfile
	var st C.int
	C.ffinit(&p, cpath, &st)
	if Status(st) != OK {
		return nil, Status(st)
	}
	return &Handle{p: p}, OK
}

// FromPointer adopts an externally created fitsfile pointer. The returned
// handle owns it: Close closes it.
func FromPointer(p unsafe.Pointer) *Handle {
	return &Handle{p: (*C.fitsfile)(p)}
}

// Pointer exposes the raw fitsfile pointer for unwrapped library calls.
func (h *Handle) Pointer() unsafe.Pointer {
	return unsafe.Pointer(h.p)
}

// Close closes the file and releases any in-memory file buffer. The handle
// must not be used afterwards.
func (h *Handle) Close() Status {
	var st C.int
	C.ffclos(h.p, &st)
	h.p = nil
	if h.mem != nil {
		C.free(h.mem.ptr)
		C.free(unsafe.Pointer(h.mem))
		h.mem = nil
	}
	return Status(st)
}

// Mode reports the i/o mode the file was opened with (ReadOnly or ReadWrite).
func (h *Handle) Mode() (int, Status) {
	var mode, st C.int
	C.ffflmd(h.p, &mode, &st)
	return int(mode), Status(st)
}

// StatusText returns the library's 30-character explanation of a status code.
func StatusText(st Status) string {
	buf := make([]byte, C.FLEN_ERRMSG)
	C.ffgerr(C.int(st), (*C.char)(unsafe.Pointer(&buf[0])))
	return C.GoString((*C.char)(unsafe.Pointer(&buf[0])))
}

// Version reports the linked CFITSIO release number.
func Version() float32 {
	var v C.float
	C.ffvers(&v)
	return float32(v)
}

// IsReentrant reports whether the linked library was compiled with reentrant
// (thread-safe) support.
func IsReentrant() bool {
	return C.fits_is_reentrant() != 0
}
