package fits

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/jmgilman/go/fits/internal/cfitsio"
)

// Value enumerates the element types the column engine transfers. The set is
// closed: it matches the wrapper's DataType set minus the kinds that can be
// described but not read (bit and complex columns).
//
// Reads and writes convert between the column's declared type and the
// requested element type inside the library. Any numeric column can be
// transferred as any numeric element type, with out-of-range values failing
// element conversion; logical columns transfer only as bool and string
// columns only as string.
type Value interface {
	bool | uint8 | int8 | int16 | uint16 | int32 | uint32 |
		int64 | uint64 | float32 | float64 | string
}

// ReadColumn reads the entire named column. Vector columns yield Repeat
// elements per row, flattened in row order.
//
// The read fails with a conflict error when any element is undefined: a
// plain []T has no way to say which values are real. Use ReadColumnNullable
// to see the validity of each element, or ReadColumnFilled to paper over
// nulls with a sentinel.
func ReadColumn[T Value](h *HDU, name string) ([]T, error) {
	context := fmt.Sprintf("failed to read column %q", name)
	info, err := h.asTable(context)
	if err != nil {
		return nil, err
	}
	return readStrict[T](h, name, 0, int(info.Rows), context)
}

// ReadColumnRange reads rows [start, end) of the named column, zero-based
// and half-open. It shares ReadColumn's null behavior.
func ReadColumnRange[T Value](h *HDU, name string, start, end int) ([]T, error) {
	context := fmt.Sprintf("failed to read rows [%d, %d) of column %q", start, end, name)
	return readStrict[T](h, name, start, end, context)
}

// ReadCell reads the single value at the zero-based row of a scalar column.
func ReadCell[T Value](h *HDU, name string, row int) (T, error) {
	var zero T
	context := fmt.Sprintf("failed to read row %d of column %q", row, name)

	values, err := readStrict[T](h, name, row, row+1, context)
	if err != nil {
		return zero, err
	}
	if len(values) != 1 {
		return zero, fmt.Errorf("%s: %w", context, invalidInputError(
			fmt.Sprintf("column %q holds %d elements per row; read it with ReadColumnRange", name, len(values)),
			"column", name, "repeat", len(values)))
	}
	return values[0], nil
}

// ReadColumnNullable reads the entire named column along with a validity
// mask marking which elements are defined. Undefined elements carry no
// meaningful value. String columns have no undefined representation in the
// library; their masks are always all-true.
func ReadColumnNullable[T Value](h *HDU, name string) (Nullable[T], error) {
	context := fmt.Sprintf("failed to read column %q", name)
	info, err := h.asTable(context)
	if err != nil {
		return Nullable[T]{}, err
	}
	return readMasked[T](h, name, 0, int(info.Rows), context)
}

// ReadColumnNullableRange reads rows [start, end) of the named column along
// with its validity mask.
func ReadColumnNullableRange[T Value](h *HDU, name string, start, end int) (Nullable[T], error) {
	context := fmt.Sprintf("failed to read rows [%d, %d) of column %q", start, end, name)
	return readMasked[T](h, name, start, end, context)
}

// ReadColumnFilled reads the entire named column with every undefined
// element replaced by fill. It is the explicit opt-out from ReadColumn's
// refusal to blur real values and nulls together.
func ReadColumnFilled[T Value](h *HDU, name string, fill T) ([]T, error) {
	context := fmt.Sprintf("failed to read column %q", name)
	info, err := h.asTable(context)
	if err != nil {
		return nil, err
	}
	return readFilled(h, name, 0, int(info.Rows), fill, context)
}

// ReadColumnFilledRange reads rows [start, end) of the named column with
// every undefined element replaced by fill.
func ReadColumnFilledRange[T Value](h *HDU, name string, start, end int, fill T) ([]T, error) {
	context := fmt.Sprintf("failed to read rows [%d, %d) of column %q", start, end, name)
	return readFilled(h, name, start, end, fill, context)
}

// WriteColumn writes data into the named column starting at row 0.
func WriteColumn[T Value](h *HDU, name string, data []T) error {
	return WriteColumnRange(h, name, 0, data)
}

// WriteColumnRange writes data into the named column starting at the
// zero-based row start. Writing past the current last row extends the
// table. Vector columns consume Repeat elements per row, so len(data) must
// be a multiple of Repeat.
//
// A failed write is not rolled back: elements written before the failure
// keep their new values.
func WriteColumnRange[T Value](h *HDU, name string, start int, data []T) error {
	context := fmt.Sprintf("failed to write column %q", name)
	if err := h.file.writeGuard(context); err != nil {
		return err
	}
	if start < 0 {
		return fmt.Errorf("%s: %w", context, invalidInputError(
			fmt.Sprintf("start row %d is negative", start), "start", start))
	}

	col, desc, rows, err := h.resolveColumn(name, context)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if desc.Repeat > 1 && len(data)%desc.Repeat != 0 {
		return fmt.Errorf("%s: %w", context, invalidInputError(
			fmt.Sprintf("%d values do not fill whole rows of %d elements", len(data), desc.Repeat),
			"values", len(data), "repeat", desc.Repeat))
	}

	req := columnIO{h: h, name: name, context: context, col: col, desc: desc, first: int64(start) + 1}

	if err := writeColumnData(req, data); err != nil {
		return err
	}

	// A write running past the last row grows the table; the descriptor
	// snapshot goes stale with it.
	repeat := desc.Repeat
	if repeat < 1 {
		repeat = 1
	}
	if int64(start)+int64(len(data)/repeat) > rows {
		return h.Refresh()
	}
	return nil
}

func writeColumnData[T Value](req columnIO, data []T) error {
	h, col, desc, name, context := req.h, req.col, req.desc, req.name, req.context

	switch v := any(data).(type) {
	case []string:
		if desc.Type != TypeString {
			return typeMismatchError(context, desc, "string")
		}
		st := h.file.h.WriteColumnStrings(col, req.first, v)
		return statusError(st, context, "column", name, "values", len(v))
	case []bool:
		if desc.Type != TypeLogical {
			return typeMismatchError(context, desc, "bool")
		}
		buf := make([]byte, len(v))
		for i, b := range v {
			if b {
				buf[i] = 1
			}
		}
		st := h.file.h.WriteColumn(cfitsio.TLogical, col, req.first, int64(len(buf)), unsafe.Pointer(&buf[0]))
		return statusError(st, context, "column", name, "values", len(v))
	case []uint8:
		return writeNumeric(req, cfitsio.TByte, "uint8", unsafe.Pointer(&v[0]), len(v))
	case []int8:
		return writeNumeric(req, cfitsio.TSByte, "int8", unsafe.Pointer(&v[0]), len(v))
	case []int16:
		return writeNumeric(req, cfitsio.TShort, "int16", unsafe.Pointer(&v[0]), len(v))
	case []uint16:
		return writeNumeric(req, cfitsio.TUShort, "uint16", unsafe.Pointer(&v[0]), len(v))
	case []int32:
		return writeNumeric(req, cfitsio.TInt, "int32", unsafe.Pointer(&v[0]), len(v))
	case []uint32:
		return writeNumeric(req, cfitsio.TUInt, "uint32", unsafe.Pointer(&v[0]), len(v))
	case []int64:
		return writeNumeric(req, cfitsio.TLongLong, "int64", unsafe.Pointer(&v[0]), len(v))
	case []uint64:
		return writeNumeric(req, cfitsio.TULongLong, "uint64", unsafe.Pointer(&v[0]), len(v))
	case []float32:
		return writeNumeric(req, cfitsio.TFloat, "float32", unsafe.Pointer(&v[0]), len(v))
	case []float64:
		return writeNumeric(req, cfitsio.TDouble, "float64", unsafe.Pointer(&v[0]), len(v))
	default:
		return fmt.Errorf("%s: %w", context, invalidInputError("unhandled element type"))
	}
}

// CreateTable appends a binary table HDU with the given columns and no rows,
// and returns it. Column names must be unique under the FITS rule of
// case-insensitive matching.
func (f *File) CreateTable(extname string, columns []ColumnDescriptor) (*HDU, error) {
	context := fmt.Sprintf("failed to create table %q", extname)
	if err := f.writeGuard(context); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%s: %w", context, invalidInputError("a table needs at least one column"))
	}

	names := make([]string, len(columns))
	forms := make([]string, len(columns))
	units := make([]string, len(columns))
	seen := make(map[string]int, len(columns))

	for i, desc := range columns {
		if desc.Name == "" {
			return nil, fmt.Errorf("%s: %w", context, invalidInputError(
				fmt.Sprintf("column %d has no name", i), "column", i))
		}
		key := strings.ToUpper(desc.Name)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("%s: %w", context, invalidInputError(
				fmt.Sprintf("columns %d and %d share the name %q", prev, i, desc.Name),
				"name", desc.Name))
		}
		seen[key] = i

		form, err := desc.tform()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", context, err)
		}
		names[i] = desc.Name
		forms[i] = form
		units[i] = desc.Unit
	}

	st := f.h.CreateTable(0, names, forms, units, extname)
	if err := statusError(st, context, "name", extname, "columns", len(columns)); err != nil {
		return nil, err
	}

	num := f.h.CurrentHDU() - 1
	info, err := f.currentInfo()
	if err != nil {
		return nil, err
	}

	f.trace("created table", "name", extname, "columns", len(columns))
	return &HDU{file: f, num: num, Info: info}, nil
}

// columnIO carries the resolved inputs of one column data transfer.
type columnIO struct {
	h       *HDU
	name    string
	context string
	col     int
	desc    ColumnDescriptor
	first   int64
	n       int64
}

// resolveColumn locates a column for a data operation: case-insensitive
// lookup, descriptor, and the table's row count.
func (h *HDU) resolveColumn(name, context string) (int, ColumnDescriptor, int64, error) {
	info, err := h.asTable(context)
	if err != nil {
		return 0, ColumnDescriptor{}, 0, err
	}

	col, err := h.columnNumber(name, context)
	if err != nil {
		return 0, ColumnDescriptor{}, 0, err
	}
	if col > len(info.Columns) {
		return 0, ColumnDescriptor{}, 0, fmt.Errorf("%s: %w", context, invalidInputError(
			fmt.Sprintf("descriptor snapshot is stale for column %q; call Refresh", name),
			"column", name))
	}
	return col, info.Columns[col-1], info.Rows, nil
}

// readStrict reads a row range and rejects any undefined element.
func readStrict[T Value](h *HDU, name string, start, end int, context string) ([]T, error) {
	data, err := readMasked[T](h, name, start, end, context)
	if err != nil {
		return nil, err
	}
	if nulls := data.NullCount(); nulls > 0 {
		return nil, nullDataError(context, name, nulls)
	}
	return data.Values, nil
}

// readFilled reads a row range and substitutes fill for undefined elements.
func readFilled[T Value](h *HDU, name string, start, end int, fill T, context string) ([]T, error) {
	data, err := readMasked[T](h, name, start, end, context)
	if err != nil {
		return nil, err
	}
	for i, ok := range data.Valid {
		if !ok {
			data.Values[i] = fill
		}
	}
	return data.Values, nil
}

// readMasked is the one read path: every column read goes through here and
// comes back with a validity mask.
func readMasked[T Value](h *HDU, name string, start, end int, context string) (Nullable[T], error) {
	var out Nullable[T]

	if start < 0 || end < start {
		return out, fmt.Errorf("%s: %w", context, invalidInputError(
			fmt.Sprintf("row range [%d, %d) is invalid", start, end), "start", start, "end", end))
	}

	col, desc, _, err := h.resolveColumn(name, context)
	if err != nil {
		return out, err
	}

	first, rows := rowRange(start, end)
	nelem := rows * int64(desc.Repeat)
	if nelem == 0 {
		out.Values = []T{}
		out.Valid = []bool{}
		return out, nil
	}

	req := columnIO{h: h, name: name, context: context, col: col, desc: desc, first: first, n: nelem}

	switch values := any(&out.Values).(type) {
	case *[]string:
		if desc.Type != TypeString {
			return out, typeMismatchError(context, desc, "string")
		}
		// Cell buffers are sized by the library's display width, which for
		// binary tables is the per-string width of the column.
		width, st := h.file.h.DisplayWidth(col)
		if err := statusError(st, context, "column", name); err != nil {
			return out, err
		}
		strs, st := h.file.h.ReadColumnStrings(col, first, nelem, width)
		if err := statusError(st, context, "column", name, "rows", rows); err != nil {
			return out, err
		}
		*values = strs
		out.Valid = allValid(len(strs))
	case *[]bool:
		if desc.Type != TypeLogical {
			return out, typeMismatchError(context, desc, "bool")
		}
		buf := make([]byte, nelem)
		flags, _, st := h.file.h.ReadColumnFlags(cfitsio.TLogical, col, first, nelem, unsafe.Pointer(&buf[0]))
		if err := statusError(st, context, "column", name, "rows", rows); err != nil {
			return out, err
		}
		bools := make([]bool, len(buf))
		for i, b := range buf {
			bools[i] = b != 0
		}
		*values = bools
		out.Valid = validityFromFlags(flags)
	case *[]uint8:
		*values, out.Valid, err = readNumeric[uint8](req, cfitsio.TByte, "uint8")
	case *[]int8:
		*values, out.Valid, err = readNumeric[int8](req, cfitsio.TSByte, "int8")
	case *[]int16:
		*values, out.Valid, err = readNumeric[int16](req, cfitsio.TShort, "int16")
	case *[]uint16:
		*values, out.Valid, err = readNumeric[uint16](req, cfitsio.TUShort, "uint16")
	case *[]int32:
		*values, out.Valid, err = readNumeric[int32](req, cfitsio.TInt, "int32")
	case *[]uint32:
		*values, out.Valid, err = readNumeric[uint32](req, cfitsio.TUInt, "uint32")
	case *[]int64:
		*values, out.Valid, err = readNumeric[int64](req, cfitsio.TLongLong, "int64")
	case *[]uint64:
		*values, out.Valid, err = readNumeric[uint64](req, cfitsio.TULongLong, "uint64")
	case *[]float32:
		*values, out.Valid, err = readNumeric[float32](req, cfitsio.TFloat, "float32")
	case *[]float64:
		*values, out.Valid, err = readNumeric[float64](req, cfitsio.TDouble, "float64")
	default:
		err = fmt.Errorf("%s: %w", context, invalidInputError("unhandled element type"))
	}
	if err != nil {
		return Nullable[T]{}, err
	}
	return out, nil
}

// readNumeric transfers a numeric column range into a freshly allocated
// buffer of the requested element type, with per-element validity flags.
func readNumeric[E any](req columnIO, dtype cfitsio.DataType, requested string) ([]E, []bool, error) {
	if !req.desc.Type.numeric() {
		return nil, nil, typeMismatchError(req.context, req.desc, requested)
	}

	buf := make([]E, req.n)
	flags, _, st := req.h.file.h.ReadColumnFlags(dtype, req.col, req.first, req.n, unsafe.Pointer(&buf[0]))
	if err := statusError(st, req.context, "column", req.name, "elements", req.n); err != nil {
		return nil, nil, err
	}
	return buf, validityFromFlags(flags), nil
}

// writeNumeric transfers a caller buffer into a numeric column.
func writeNumeric(req columnIO, dtype cfitsio.DataType, requested string, src unsafe.Pointer, n int) error {
	if !req.desc.Type.numeric() {
		return typeMismatchError(req.context, req.desc, requested)
	}

	st := req.h.file.h.WriteColumn(dtype, req.col, req.first, int64(n), src)
	return statusError(st, req.context, "column", req.name, "values", n)
}

// validityFromFlags inverts the library's undefined-element flags into a
// validity mask.
func validityFromFlags(flags []byte) []bool {
	valid := make([]bool, len(flags))
	for i, f := range flags {
		valid[i] = f == 0
	}
	return valid
}

func allValid(n int) []bool {
	valid := make([]bool, n)
	for i := range valid {
		valid[i] = true
	}
	return valid
}
