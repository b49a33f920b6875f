package arrow

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	platformerrors "github.com/jmgilman/go/errors"

	"github.com/jmgilman/go/fits"
)

// ReadRecord reads a table HDU into an Arrow record. Scalar columns become
// primitive arrays, vector columns become fixed-size lists of the column's
// repeat count, and undefined cells become Arrow nulls. WithRowRange narrows
// the record to a row subset. The caller owns the record and must Release it.
func ReadRecord(h *fits.HDU, opts ...Option) (arrow.Record, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	info, ok := h.Info.(fits.TableInfo)
	if !ok {
		return nil, platformerrors.New(platformerrors.CodeInvalidInput, "HDU holds no table")
	}

	columns, err := selectColumns(info.Columns, options.columns)
	if err != nil {
		return nil, err
	}

	rows := info.Rows
	if options.rows != nil {
		rows = int64(options.rows.Len())
	}

	fields := make([]arrow.Field, 0, len(columns))
	arrays := make([]arrow.Array, 0, len(columns))
	defer func() {
		for _, a := range arrays {
			a.Release()
		}
	}()

	for _, desc := range columns {
		field, arr, err := buildColumn(h, desc, options.rows, options.alloc)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
		arrays = append(arrays, arr)
	}

	schema := arrow.NewSchema(fields, nil)
	return array.NewRecord(schema, arrays, rows), nil
}

// selectColumns resolves an optional column subset against the table's
// descriptors, preserving the requested order.
func selectColumns(all []fits.ColumnDescriptor, names []string) ([]fits.ColumnDescriptor, error) {
	if names == nil {
		return all, nil
	}

	selected := make([]fits.ColumnDescriptor, 0, len(names))
	for _, name := range names {
		found := false
		for _, desc := range all {
			if strings.EqualFold(desc.Name, name) {
				selected = append(selected, desc)
				found = true
				break
			}
		}
		if !found {
			return nil, platformerrors.Newf(platformerrors.CodeNotFound,
				"table has no column %q", name)
		}
	}
	return selected, nil
}

// buildColumn reads one column and produces its Arrow field and array.
func buildColumn(h *fits.HDU, desc fits.ColumnDescriptor, rows *fits.Range, pool memory.Allocator) (arrow.Field, arrow.Array, error) {
	var (
		elem arrow.DataType
		arr  arrow.Array
		err  error
	)

	switch desc.Type {
	case fits.TypeLogical:
		elem = arrow.FixedWidthTypes.Boolean
		arr, err = buildArray[bool](h, desc, rows, pool, elem)
	case fits.TypeByte:
		elem = arrow.PrimitiveTypes.Uint8
		arr, err = buildArray[uint8](h, desc, rows, pool, elem)
	case fits.TypeSignedByte:
		elem = arrow.PrimitiveTypes.Int8
		arr, err = buildArray[int8](h, desc, rows, pool, elem)
	case fits.TypeShort:
		elem = arrow.PrimitiveTypes.Int16
		arr, err = buildArray[int16](h, desc, rows, pool, elem)
	case fits.TypeUnsignedShort:
		elem = arrow.PrimitiveTypes.Uint16
		arr, err = buildArray[uint16](h, desc, rows, pool, elem)
	case fits.TypeInt:
		elem = arrow.PrimitiveTypes.Int32
		arr, err = buildArray[int32](h, desc, rows, pool, elem)
	case fits.TypeUnsignedInt:
		elem = arrow.PrimitiveTypes.Uint32
		arr, err = buildArray[uint32](h, desc, rows, pool, elem)
	case fits.TypeLongLong:
		elem = arrow.PrimitiveTypes.Int64
		arr, err = buildArray[int64](h, desc, rows, pool, elem)
	case fits.TypeUnsignedLongLong:
		elem = arrow.PrimitiveTypes.Uint64
		arr, err = buildArray[uint64](h, desc, rows, pool, elem)
	case fits.TypeFloat:
		elem = arrow.PrimitiveTypes.Float32
		arr, err = buildArray[float32](h, desc, rows, pool, elem)
	case fits.TypeDouble:
		elem = arrow.PrimitiveTypes.Float64
		arr, err = buildArray[float64](h, desc, rows, pool, elem)
	case fits.TypeString:
		elem = arrow.BinaryTypes.String
		arr, err = buildArray[string](h, desc, rows, pool, elem)
	default:
		return arrow.Field{}, nil, platformerrors.Newf(platformerrors.CodeInvalidInput,
			"column %q has no Arrow representation for %v data", desc.Name, desc.Type)
	}
	if err != nil {
		return arrow.Field{}, nil, err
	}

	field := arrow.Field{
		Name:     desc.Name,
		Type:     elem,
		Nullable: desc.Type != fits.TypeString,
	}
	if desc.Repeat > 1 {
		field.Type = arrow.FixedSizeListOf(int32(desc.Repeat), elem)
		field.Nullable = false
	}
	if desc.Unit != "" {
		field.Metadata = arrow.NewMetadata([]string{"unit"}, []string{desc.Unit})
	}
	return field, arr, nil
}

// buildArray reads a column's data with its validity mask and assembles the
// Arrow array: flat for scalar columns, fixed-size lists for vector columns.
func buildArray[T fits.Value](h *fits.HDU, desc fits.ColumnDescriptor, rows *fits.Range, pool memory.Allocator, elem arrow.DataType) (arrow.Array, error) {
	var (
		data fits.Nullable[T]
		err  error
	)
	if rows != nil {
		data, err = fits.ReadColumnNullableRange[T](h, desc.Name, rows.Start, rows.End)
	} else {
		data, err = fits.ReadColumnNullable[T](h, desc.Name)
	}
	if err != nil {
		return nil, err
	}

	if desc.Repeat <= 1 {
		b := array.NewBuilder(pool, elem)
		defer b.Release()
		appendSlice(b, data.Values, data.Valid)
		return b.NewArray(), nil
	}

	lb := array.NewFixedSizeListBuilder(pool, int32(desc.Repeat), elem)
	defer lb.Release()
	vb := lb.ValueBuilder()

	rows := len(data.Values) / desc.Repeat
	for row := 0; row < rows; row++ {
		lb.Append(true)
		lo := row * desc.Repeat
		hi := lo + desc.Repeat
		appendSlice(vb, data.Values[lo:hi], data.Valid[lo:hi])
	}
	return lb.NewArray(), nil
}

// appendSlice feeds a typed slice into the matching builder, with valid
// marking which elements are defined.
func appendSlice(b array.Builder, values interface{}, valid []bool) {
	switch b := b.(type) {
	case *array.BooleanBuilder:
		b.AppendValues(values.([]bool), valid)
	case *array.Uint8Builder:
		b.AppendValues(values.([]uint8), valid)
	case *array.Int8Builder:
		b.AppendValues(values.([]int8), valid)
	case *array.Int16Builder:
		b.AppendValues(values.([]int16), valid)
	case *array.Uint16Builder:
		b.AppendValues(values.([]uint16), valid)
	case *array.Int32Builder:
		b.AppendValues(values.([]int32), valid)
	case *array.Uint32Builder:
		b.AppendValues(values.([]uint32), valid)
	case *array.Int64Builder:
		b.AppendValues(values.([]int64), valid)
	case *array.Uint64Builder:
		b.AppendValues(values.([]uint64), valid)
	case *array.Float32Builder:
		b.AppendValues(values.([]float32), valid)
	case *array.Float64Builder:
		b.AppendValues(values.([]float64), valid)
	case *array.StringBuilder:
		b.AppendValues(values.([]string), valid)
	default:
		panic(fmt.Sprintf("unhandled builder type %T", b))
	}
}
