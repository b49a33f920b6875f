package fits

import (
	"fmt"
	"unsafe"

	"github.com/jmgilman/go/fits/internal/cfitsio"
)

// KeyValue enumerates the header keyword value types the wrapper transfers.
type KeyValue interface {
	bool | int | int64 | float32 | float64 | string
}

// HeaderValue carries a keyword's value together with its comment.
type HeaderValue[T KeyValue] struct {
	Value   T
	Comment string
}

// ReadKey reads the named header keyword from an HDU, converting the card's
// value to T inside the library. A missing keyword reports not-found.
func ReadKey[T KeyValue](h *HDU, name string) (HeaderValue[T], error) {
	var out HeaderValue[T]
	context := fmt.Sprintf("failed to read keyword %q", name)

	if err := h.seat(); err != nil {
		return out, err
	}

	var st cfitsio.Status
	switch value := any(&out.Value).(type) {
	case *string:
		*value, out.Comment, st = h.file.h.ReadKeyString(name)
	case *bool:
		// The library hands logical keywords back as a C int.
		var raw int32
		out.Comment, st = h.file.h.ReadKey(cfitsio.TLogical, name, unsafe.Pointer(&raw))
		*value = raw != 0
	case *int:
		var raw int64
		out.Comment, st = h.file.h.ReadKey(cfitsio.TLongLong, name, unsafe.Pointer(&raw))
		*value = int(raw)
	case *int64:
		out.Comment, st = h.file.h.ReadKey(cfitsio.TLongLong, name, unsafe.Pointer(value))
	case *float32:
		out.Comment, st = h.file.h.ReadKey(cfitsio.TFloat, name, unsafe.Pointer(value))
	case *float64:
		out.Comment, st = h.file.h.ReadKey(cfitsio.TDouble, name, unsafe.Pointer(value))
	}

	if err := statusError(st, context, "key", name, "hdu", h.num); err != nil {
		return HeaderValue[T]{}, err
	}
	return out, nil
}

// WriteKey writes the named header keyword on an HDU, creating or updating
// it. comment may be empty.
func WriteKey[T KeyValue](h *HDU, name string, value T, comment string) error {
	context := fmt.Sprintf("failed to write keyword %q", name)
	if err := h.file.writeGuard(context); err != nil {
		return err
	}
	if err := h.seat(); err != nil {
		return err
	}

	var st cfitsio.Status
	switch v := any(value).(type) {
	case string:
		st = h.file.h.WriteKeyString(name, v, comment)
	case bool:
		var raw int32
		if v {
			raw = 1
		}
		st = h.file.h.WriteKey(cfitsio.TLogical, name, unsafe.Pointer(&raw), comment)
	case int:
		raw := int64(v)
		st = h.file.h.WriteKey(cfitsio.TLongLong, name, unsafe.Pointer(&raw), comment)
	case int64:
		st = h.file.h.WriteKey(cfitsio.TLongLong, name, unsafe.Pointer(&v), comment)
	case float32:
		st = h.file.h.WriteKey(cfitsio.TFloat, name, unsafe.Pointer(&v), comment)
	case float64:
		st = h.file.h.WriteKey(cfitsio.TDouble, name, unsafe.Pointer(&v), comment)
	}

	return statusError(st, context, "key", name, "hdu", h.num)
}
