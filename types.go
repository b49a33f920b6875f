package fits

import (
	"fmt"

	"github.com/jmgilman/go/fits/internal/cfitsio"
)

// FileMode selects how a file is accessed.
type FileMode int

const (
	// ReadOnly opens a file for reading. Mutating operations fail.
	ReadOnly FileMode = iota

	// ReadWrite opens a file for reading and writing.
	ReadWrite
)

// String returns a human-readable name for the mode.
func (m FileMode) String() string {
	switch m {
	case ReadOnly:
		return "read-only"
	case ReadWrite:
		return "read-write"
	default:
		return fmt.Sprintf("FileMode(%d)", int(m))
	}
}

// HDUType identifies the kind of header-data unit the cursor is on.
type HDUType int

const (
	// ImageHDU is an N-dimensional pixel array.
	ImageHDU HDUType = 0

	// ASCIITableHDU is a table stored as formatted text.
	ASCIITableHDU HDUType = 1

	// BinaryTableHDU is a table stored in binary form.
	BinaryTableHDU HDUType = 2
)

// String returns a human-readable name for the HDU type.
func (t HDUType) String() string {
	switch t {
	case ImageHDU:
		return "image"
	case ASCIITableHDU:
		return "ASCII table"
	case BinaryTableHDU:
		return "binary table"
	default:
		return fmt.Sprintf("HDUType(%d)", int(t))
	}
}

// DataType enumerates the column element types the wrapper recognizes. The
// set is closed: a column whose declared type falls outside it is reported as
// an error when the table is described, never coerced.
type DataType int

const (
	TypeLogical DataType = iota
	TypeBit
	TypeByte
	TypeSignedByte
	TypeShort
	TypeUnsignedShort
	TypeInt
	TypeUnsignedInt
	TypeLongLong
	TypeUnsignedLongLong
	TypeFloat
	TypeDouble
	TypeString
	TypeComplex
	TypeDoubleComplex
)

// String returns the TFORM-style name of the type.
func (t DataType) String() string {
	switch t {
	case TypeLogical:
		return "logical"
	case TypeBit:
		return "bit"
	case TypeByte:
		return "byte"
	case TypeSignedByte:
		return "signed byte"
	case TypeShort:
		return "short"
	case TypeUnsignedShort:
		return "unsigned short"
	case TypeInt:
		return "int"
	case TypeUnsignedInt:
		return "unsigned int"
	case TypeLongLong:
		return "long long"
	case TypeUnsignedLongLong:
		return "unsigned long long"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeComplex:
		return "complex"
	case TypeDoubleComplex:
		return "double complex"
	default:
		return fmt.Sprintf("DataType(%d)", int(t))
	}
}

// numeric reports whether the type is one of the integer or floating kinds
// the library freely converts between.
func (t DataType) numeric() bool {
	switch t {
	case TypeByte, TypeSignedByte, TypeShort, TypeUnsignedShort, TypeInt,
		TypeUnsignedInt, TypeLongLong, TypeUnsignedLongLong, TypeFloat, TypeDouble:
		return true
	default:
		return false
	}
}

// typeFromEquivCode maps the library's equivalent column type code onto the
// closed DataType set. The second return is false for codes the wrapper does
// not recognize, including the variable-length column codes (negative).
func typeFromEquivCode(code int) (DataType, bool) {
	switch cfitsio.DataType(code) {
	case cfitsio.TBit:
		return TypeBit, true
	case cfitsio.TByte:
		return TypeByte, true
	case cfitsio.TSByte:
		return TypeSignedByte, true
	case cfitsio.TLogical:
		return TypeLogical, true
	case cfitsio.TString:
		return TypeString, true
	case cfitsio.TShort:
		return TypeShort, true
	case cfitsio.TUShort:
		return TypeUnsignedShort, true
	case cfitsio.TInt, cfitsio.TLong:
		return TypeInt, true
	case cfitsio.TUInt, cfitsio.TULong:
		return TypeUnsignedInt, true
	case cfitsio.TLongLong:
		return TypeLongLong, true
	case cfitsio.TULongLong:
		return TypeUnsignedLongLong, true
	case cfitsio.TFloat:
		return TypeFloat, true
	case cfitsio.TDouble:
		return TypeDouble, true
	case cfitsio.TComplex:
		return TypeComplex, true
	case cfitsio.TDblComplex:
		return TypeDoubleComplex, true
	default:
		return 0, false
	}
}

// ColumnDescriptor describes one column of a table HDU.
type ColumnDescriptor struct {
	// Name is the column's TTYPE value.
	Name string

	// Type is the element type stored in the column.
	Type DataType

	// Repeat is the number of elements per logical row; 1 for scalar
	// columns. String columns count strings per row, not characters.
	Repeat int

	// Width is the character count per string for string columns and the
	// element byte width otherwise.
	Width int

	// Unit is the column's TUNIT value, empty when the keyword is unset.
	Unit string
}

// tform renders the descriptor as a binary-table TFORM string.
func (d ColumnDescriptor) tform() (string, error) {
	if d.Repeat < 1 {
		return "", invalidInputError(fmt.Sprintf("column %q has repeat count %d; it must be at least 1", d.Name, d.Repeat),
			"column", d.Name, "repeat", d.Repeat)
	}

	if d.Type == TypeString {
		if d.Width < 1 {
			return "", invalidInputError(fmt.Sprintf("string column %q needs a positive width", d.Name),
				"column", d.Name, "width", d.Width)
		}
		if d.Repeat == 1 {
			return fmt.Sprintf("%dA", d.Width), nil
		}
		return fmt.Sprintf("%dA%d", d.Repeat*d.Width, d.Width), nil
	}

	var char byte
	switch d.Type {
	case TypeLogical:
		char = 'L'
	case TypeBit:
		char = 'X'
	case TypeByte:
		char = 'B'
	case TypeSignedByte:
		char = 'S'
	case TypeShort:
		char = 'I'
	case TypeUnsignedShort:
		char = 'U'
	case TypeInt:
		char = 'J'
	case TypeUnsignedInt:
		char = 'V'
	case TypeLongLong:
		char = 'K'
	case TypeUnsignedLongLong:
		char = 'W'
	case TypeFloat:
		char = 'E'
	case TypeDouble:
		char = 'D'
	case TypeComplex:
		char = 'C'
	case TypeDoubleComplex:
		char = 'M'
	default:
		return "", invalidInputError(fmt.Sprintf("column %q has unrecognized type %v", d.Name, d.Type),
			"column", d.Name)
	}

	if d.Repeat == 1 {
		return string(char), nil
	}
	return fmt.Sprintf("%d%c", d.Repeat, char), nil
}

// ImageType identifies the pixel representation of an image HDU. The values
// are the FITS BITPIX codes.
type ImageType int

const (
	ImageUInt8   ImageType = 8
	ImageInt8    ImageType = 10
	ImageInt16   ImageType = 16
	ImageUInt16  ImageType = 20
	ImageInt32   ImageType = 32
	ImageUInt32  ImageType = 40
	ImageInt64   ImageType = 64
	ImageFloat32 ImageType = -32
	ImageFloat64 ImageType = -64
)

// String returns a human-readable name for the pixel type.
func (t ImageType) String() string {
	switch t {
	case ImageUInt8:
		return "uint8"
	case ImageInt8:
		return "int8"
	case ImageInt16:
		return "int16"
	case ImageUInt16:
		return "uint16"
	case ImageInt32:
		return "int32"
	case ImageUInt32:
		return "uint32"
	case ImageInt64:
		return "int64"
	case ImageFloat32:
		return "float32"
	case ImageFloat64:
		return "float64"
	default:
		return fmt.Sprintf("ImageType(%d)", int(t))
	}
}

// imageTypeFromBitpix maps a BITPIX code onto ImageType; false for codes the
// wrapper does not recognize.
func imageTypeFromBitpix(code int) (ImageType, bool) {
	switch t := ImageType(code); t {
	case ImageUInt8, ImageInt8, ImageInt16, ImageUInt16, ImageInt32,
		ImageUInt32, ImageInt64, ImageFloat32, ImageFloat64:
		return t, true
	default:
		return 0, false
	}
}

// ImageDescription specifies a new image HDU.
type ImageDescription struct {
	// PixelType selects the on-disk pixel representation.
	PixelType ImageType

	// Dimensions holds the axis lengths in row-major order, outermost
	// axis first.
	Dimensions []int
}

// Range is a half-open, zero-based interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of elements the range spans.
func (r Range) Len() int {
	return r.End - r.Start
}

// Info describes the contents of an HDU. It is one of ImageInfo, TableInfo,
// or AnyInfo.
type Info interface {
	fmt.Stringer
	hduInfo()
}

// ImageInfo describes an image HDU.
type ImageInfo struct {
	// Type is the pixel type reads from the image effectively produce,
	// with any TSCAL/TZERO scaling already accounted for.
	Type ImageType

	// Shape holds the axis lengths in row-major order, outermost axis
	// first. This is the inverse of the on-disk axis order.
	Shape []int
}

func (ImageInfo) hduInfo() {}

// String summarizes the image.
func (i ImageInfo) String() string {
	return fmt.Sprintf("image %v, dimensions %v", i.Type, i.Shape)
}

// TableInfo describes a table HDU.
type TableInfo struct {
	// Columns holds one descriptor per column, in column order.
	Columns []ColumnDescriptor

	// Rows is the number of logical rows.
	Rows int64
}

func (TableInfo) hduInfo() {}

// String summarizes the table.
func (t TableInfo) String() string {
	return fmt.Sprintf("table, %d rows × %d columns", t.Rows, len(t.Columns))
}

// AnyInfo describes an HDU the wrapper does not model further.
type AnyInfo struct{}

func (AnyInfo) hduInfo() {}

// String names the unmodeled variant.
func (AnyInfo) String() string {
	return "unrecognized HDU"
}

// Nullable pairs column values with a parallel validity mask. Values and
// Valid always have equal length; Values[i] is meaningful only when Valid[i]
// is true.
type Nullable[T Value] struct {
	Values []T
	Valid  []bool
}

// Len returns the number of elements.
func (n *Nullable[T]) Len() int {
	return len(n.Values)
}

// NullCount returns the number of invalid elements.
func (n *Nullable[T]) NullCount() int {
	count := 0
	for _, ok := range n.Valid {
		if !ok {
			count++
		}
	}
	return count
}
