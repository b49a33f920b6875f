package cfitsio

/*
#include <fitsio.h>
*/
import "C"

// DataType is a CFITSIO type code describing the in-memory layout of a
// buffer passed to a read or write call. The library converts between the
// on-disk column/image type and this memory type per element.
type DataType int

const (
	TBit        DataType = C.TBIT
	TByte       DataType = C.TBYTE
	TSByte      DataType = C.TSBYTE
	TLogical    DataType = C.TLOGICAL
	TString     DataType = C.TSTRING
	TUShort     DataType = C.TUSHORT
	TShort      DataType = C.TSHORT
	TUInt       DataType = C.TUINT
	TInt        DataType = C.TINT
	TULong      DataType = C.TULONG
	TLong       DataType = C.TLONG
	TULongLong  DataType = C.TULONGLONG
	TLongLong   DataType = C.TLONGLONG
	TFloat      DataType = C.TFLOAT
	TDouble     DataType = C.TDOUBLE
	TComplex    DataType = C.TCOMPLEX
	TDblComplex DataType = C.TDBLCOMPLEX
)

// HDU type codes as reported by the HDU move and query calls.
const (
	ImageHDU    = C.IMAGE_HDU
	ASCIITable  = C.ASCII_TBL
	BinaryTable = C.BINARY_TBL
	AnyHDU      = C.ANY_HDU
)

// File open modes.
const (
	ReadOnly  = C.READONLY
	ReadWrite = C.READWRITE
)

// Column-name matching modes for ColumnNumber.
const (
	CaseInsensitive = C.CASEINSEN
	CaseSensitive   = C.CASESEN
)

// BITPIX codes identifying the pixel type of an image HDU.
const (
	BitpixByte     = C.BYTE_IMG
	BitpixSByte    = C.SBYTE_IMG
	BitpixShort    = C.SHORT_IMG
	BitpixUShort   = C.USHORT_IMG
	BitpixLong     = C.LONG_IMG
	BitpixULong    = C.ULONG_IMG
	BitpixLongLong = C.LONGLONG_IMG
	BitpixFloat    = C.FLOAT_IMG
	BitpixDouble   = C.DOUBLE_IMG
)

// Header card field widths, including the terminating NUL.
const (
	LenValue   = C.FLEN_VALUE
	LenComment = C.FLEN_COMMENT
)
