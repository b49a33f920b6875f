package fits

import (
	"testing"

	platformerrors "github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fits/internal/cfitsio"
)

func TestColumnDescriptor_Tform(t *testing.T) {
	tests := []struct {
		name string
		desc ColumnDescriptor
		want string
	}{
		{
			name: "scalar short",
			desc: ColumnDescriptor{Name: "A", Type: TypeShort, Repeat: 1},
			want: "I",
		},
		{
			name: "scalar int",
			desc: ColumnDescriptor{Name: "A", Type: TypeInt, Repeat: 1},
			want: "J",
		},
		{
			name: "scalar long long",
			desc: ColumnDescriptor{Name: "A", Type: TypeLongLong, Repeat: 1},
			want: "K",
		},
		{
			name: "scalar logical",
			desc: ColumnDescriptor{Name: "A", Type: TypeLogical, Repeat: 1},
			want: "L",
		},
		{
			name: "scalar double",
			desc: ColumnDescriptor{Name: "A", Type: TypeDouble, Repeat: 1},
			want: "D",
		},
		{
			name: "vector float",
			desc: ColumnDescriptor{Name: "A", Type: TypeFloat, Repeat: 4},
			want: "4E",
		},
		{
			name: "vector unsigned short",
			desc: ColumnDescriptor{Name: "A", Type: TypeUnsignedShort, Repeat: 3},
			want: "3U",
		},
		{
			name: "scalar string",
			desc: ColumnDescriptor{Name: "A", Type: TypeString, Repeat: 1, Width: 12},
			want: "12A",
		},
		{
			name: "vector string",
			desc: ColumnDescriptor{Name: "A", Type: TypeString, Repeat: 3, Width: 8},
			want: "24A8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.desc.tform()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumnDescriptor_TformInvalid(t *testing.T) {
	tests := []struct {
		name string
		desc ColumnDescriptor
	}{
		{
			name: "zero repeat",
			desc: ColumnDescriptor{Name: "A", Type: TypeInt, Repeat: 0},
		},
		{
			name: "string without width",
			desc: ColumnDescriptor{Name: "A", Type: TypeString, Repeat: 1},
		},
		{
			name: "unwritable type",
			desc: ColumnDescriptor{Name: "A", Type: DataType(99), Repeat: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.desc.tform()
			require.Error(t, err)
			assert.Equal(t, platformerrors.CodeInvalidInput, platformerrors.GetCode(err))
		})
	}
}

func TestTypeFromEquivCode(t *testing.T) {
	tests := []struct {
		name   string
		code   cfitsio.DataType
		want   DataType
		wantOK bool
	}{
		{name: "logical", code: cfitsio.TLogical, want: TypeLogical, wantOK: true},
		{name: "byte", code: cfitsio.TByte, want: TypeByte, wantOK: true},
		{name: "short", code: cfitsio.TShort, want: TypeShort, wantOK: true},
		{name: "int", code: cfitsio.TInt, want: TypeInt, wantOK: true},
		{name: "long reads as int", code: cfitsio.TLong, want: TypeInt, wantOK: true},
		{name: "ulong reads as uint", code: cfitsio.TULong, want: TypeUnsignedInt, wantOK: true},
		{name: "long long", code: cfitsio.TLongLong, want: TypeLongLong, wantOK: true},
		{name: "float", code: cfitsio.TFloat, want: TypeFloat, wantOK: true},
		{name: "double", code: cfitsio.TDouble, want: TypeDouble, wantOK: true},
		{name: "string", code: cfitsio.TString, want: TypeString, wantOK: true},
		{name: "bit", code: cfitsio.TBit, want: TypeBit, wantOK: true},
		{name: "complex", code: cfitsio.TComplex, want: TypeComplex, wantOK: true},
		{name: "unknown", code: cfitsio.DataType(9999), wantOK: false},
		{name: "variable length", code: -cfitsio.TInt, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := typeFromEquivCode(int(tt.code))
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestImageTypeFromBitpix(t *testing.T) {
	tests := []struct {
		code   int
		want   ImageType
		wantOK bool
	}{
		{code: 8, want: ImageUInt8, wantOK: true},
		{code: 16, want: ImageInt16, wantOK: true},
		{code: 32, want: ImageInt32, wantOK: true},
		{code: 64, want: ImageInt64, wantOK: true},
		{code: -32, want: ImageFloat32, wantOK: true},
		{code: -64, want: ImageFloat64, wantOK: true},
		{code: 10, want: ImageInt8, wantOK: true},
		{code: 20, want: ImageUInt16, wantOK: true},
		{code: 40, want: ImageUInt32, wantOK: true},
		{code: 0, wantOK: false},
		{code: 128, wantOK: false},
	}

	for _, tt := range tests {
		got, ok := imageTypeFromBitpix(tt.code)
		require.Equal(t, tt.wantOK, ok, "bitpix %d", tt.code)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, "bitpix %d", tt.code)
		}
	}
}

func TestInfo_String(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "image",
			info: ImageInfo{Type: ImageInt32, Shape: []int{100, 100}},
			want: "image int32, dimensions [100 100]",
		},
		{
			name: "table",
			info: TableInfo{Rows: 42, Columns: make([]ColumnDescriptor, 3)},
			want: "table, 42 rows × 3 columns",
		},
		{
			name: "unmodeled",
			info: AnyInfo{},
			want: "unrecognized HDU",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestRange_Len(t *testing.T) {
	assert.Equal(t, 10, Range{Start: 0, End: 10}.Len())
	assert.Equal(t, 0, Range{Start: 5, End: 5}.Len())
}

func TestNullable_NullCount(t *testing.T) {
	n := Nullable[int32]{
		Values: []int32{1, 0, 3, 0},
		Valid:  []bool{true, false, true, false},
	}
	assert.Equal(t, 4, n.Len())
	assert.Equal(t, 2, n.NullCount())

	empty := Nullable[float64]{}
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 0, empty.NullCount())
}
