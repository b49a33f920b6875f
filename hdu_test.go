package fits

import (
	"path/filepath"
	"testing"

	platformerrors "github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_HDU_Primary(t *testing.T) {
	f, _ := createImageFile(t)

	hdu, err := f.HDU(0)
	require.NoError(t, err)

	assert.Equal(t, 0, hdu.Number())
	info, ok := hdu.Info.(ImageInfo)
	require.True(t, ok)
	assert.Equal(t, ImageInt32, info.Type)
	assert.Equal(t, []int{5, 7}, info.Shape)
}

func TestFile_HDU_Negative(t *testing.T) {
	f, _ := createImageFile(t)

	_, err := f.HDU(-1)
	require.Error(t, err)
	assert.Equal(t, platformerrors.CodeInvalidInput, platformerrors.GetCode(err))
}

func TestFile_HDU_OutOfRange(t *testing.T) {
	f, _ := createImageFile(t)

	before := f.h.CurrentHDU()
	_, err := f.HDU(7)
	require.Error(t, err)
	assert.Equal(t, platformerrors.CodeNotFound, platformerrors.GetCode(err))

	// A failed move leaves the cursor where it was.
	assert.Equal(t, before, f.h.CurrentHDU())
}

func TestFile_HDUByName(t *testing.T) {
	f, _ := createImageFile(t)
	_, err := f.CreateTable("EVENTS", []ColumnDescriptor{
		{Name: "TIME", Type: TypeDouble, Repeat: 1},
	})
	require.NoError(t, err)

	hdu, err := f.HDUByName("EVENTS")
	require.NoError(t, err)
	assert.Equal(t, 1, hdu.Number())

	name, err := hdu.Name()
	require.NoError(t, err)
	assert.Equal(t, "EVENTS", name)
}

func TestFile_HDUByName_Missing(t *testing.T) {
	f, _ := createImageFile(t)

	before := f.h.CurrentHDU()
	_, err := f.HDUByName("NOWHERE")
	require.Error(t, err)
	assert.Equal(t, platformerrors.CodeNotFound, platformerrors.GetCode(err))
	assert.Equal(t, before, f.h.CurrentHDU())
}

func TestHDU_Type(t *testing.T) {
	f, image := createImageFile(t)
	table, err := f.CreateTable("EVENTS", []ColumnDescriptor{
		{Name: "TIME", Type: TypeDouble, Repeat: 1},
	})
	require.NoError(t, err)

	imageType, err := image.Type()
	require.NoError(t, err)
	assert.Equal(t, ImageHDU, imageType)

	tableType, err := table.Type()
	require.NoError(t, err)
	assert.Equal(t, BinaryTableHDU, tableType)
}

func TestHDU_Name_Unnamed(t *testing.T) {
	_, hdu := createImageFile(t)

	name, err := hdu.Name()
	require.NoError(t, err)
	assert.Equal(t, "", name)
}

func TestFile_HDUs(t *testing.T) {
	f, _ := createImageFile(t)
	_, err := f.CreateTable("A", []ColumnDescriptor{{Name: "X", Type: TypeInt, Repeat: 1}})
	require.NoError(t, err)
	_, err = f.CreateTable("B", []ColumnDescriptor{{Name: "Y", Type: TypeInt, Repeat: 1}})
	require.NoError(t, err)

	var positions []int
	for hdu, err := range f.HDUs() {
		require.NoError(t, err)
		positions = append(positions, hdu.Number())
	}
	assert.Equal(t, []int{0, 1, 2}, positions)
}

func TestFile_HDUs_EarlyBreak(t *testing.T) {
	f, _ := createImageFile(t)
	_, err := f.CreateTable("A", []ColumnDescriptor{{Name: "X", Type: TypeInt, Repeat: 1}})
	require.NoError(t, err)

	seq := f.HDUs()

	count := 0
	for _, err := range seq {
		require.NoError(t, err)
		count++
		break
	}
	assert.Equal(t, 1, count)

	// The sequence can be ranged over again from the start.
	count = 0
	for _, err := range seq {
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 2, count)
}

func TestHDU_Delete(t *testing.T) {
	f, _ := createImageFile(t)
	first, err := f.CreateTable("FIRST", []ColumnDescriptor{{Name: "X", Type: TypeInt, Repeat: 1}})
	require.NoError(t, err)
	_, err = f.CreateTable("SECOND", []ColumnDescriptor{{Name: "Y", Type: TypeInt, Repeat: 1}})
	require.NoError(t, err)

	require.NoError(t, first.Delete())

	n, err := f.NumHDUs()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Later HDUs shift down by one.
	hdu, err := f.HDU(1)
	require.NoError(t, err)
	name, err := hdu.Name()
	require.NoError(t, err)
	assert.Equal(t, "SECOND", name)
}

func TestHDU_Delete_ReadOnly(t *testing.T) {
	f, _ := createImageFile(t)
	path := f.Filename()
	require.NoError(t, f.Close())

	ro, err := Open(path)
	require.NoError(t, err)
	defer ro.Close()

	hdu, err := ro.PrimaryHDU()
	require.NoError(t, err)

	err = hdu.Delete()
	require.Error(t, err)
	assert.Equal(t, platformerrors.CodeForbidden, platformerrors.GetCode(err))
}

func TestHDU_CopyTo(t *testing.T) {
	_, src := createTableFile(t)

	dstPath := filepath.Join(t.TempDir(), "copy.fits")
	dst, err := Create(dstPath)
	require.NoError(t, err)
	defer dst.Close()

	require.NoError(t, src.CopyTo(dst))

	n, err := dst.NumHDUs()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	copied, err := dst.HDUByName("OBSERVATIONS")
	require.NoError(t, err)
	assert.Equal(t, int64(10), copied.Rows())

	ids, err := ReadColumn[int32](copied, "ID")
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, ids)
}

func TestHDU_Resize(t *testing.T) {
	_, hdu := createImageFile(t)

	require.NoError(t, hdu.Resize([]int{3, 4}))

	info, ok := hdu.Info.(ImageInfo)
	require.True(t, ok)
	assert.Equal(t, []int{3, 4}, info.Shape)
	assert.Equal(t, ImageInt32, info.Type)

	dims, err := hdu.Dimensions()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, dims)
}

func TestHDU_Resize_Invalid(t *testing.T) {
	_, hdu := createImageFile(t)

	err := hdu.Resize([]int{0, 4})
	require.Error(t, err)
	assert.Equal(t, platformerrors.CodeInvalidInput, platformerrors.GetCode(err))
}

func TestHDU_Resize_Table(t *testing.T) {
	_, hdu := createTableFile(t)

	err := hdu.Resize([]int{3, 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "holds no image")
}

func TestHDU_AppendColumn(t *testing.T) {
	_, hdu := createTableFile(t)

	err := hdu.AppendColumn(ColumnDescriptor{Name: "QUALITY", Type: TypeShort, Repeat: 1})
	require.NoError(t, err)

	cols := hdu.Columns()
	require.Len(t, cols, 3)
	assert.Equal(t, "QUALITY", cols[2].Name)
	assert.Equal(t, TypeShort, cols[2].Type)
}

func TestHDU_AppendColumn_WithUnit(t *testing.T) {
	_, hdu := createTableFile(t)

	err := hdu.AppendColumn(ColumnDescriptor{Name: "RATE", Type: TypeFloat, Repeat: 1, Unit: "ct/s"})
	require.NoError(t, err)

	cols := hdu.Columns()
	require.Len(t, cols, 3)
	assert.Equal(t, "ct/s", cols[2].Unit)
}

func TestHDU_InsertColumn(t *testing.T) {
	_, hdu := createTableFile(t)

	err := hdu.InsertColumn(0, ColumnDescriptor{Name: "INDEX", Type: TypeLongLong, Repeat: 1})
	require.NoError(t, err)

	cols := hdu.Columns()
	require.Len(t, cols, 3)
	assert.Equal(t, "INDEX", cols[0].Name)
	assert.Equal(t, "ID", cols[1].Name)
}

func TestHDU_InsertColumn_OutOfRange(t *testing.T) {
	_, hdu := createTableFile(t)

	err := hdu.InsertColumn(5, ColumnDescriptor{Name: "X", Type: TypeInt, Repeat: 1})
	require.Error(t, err)
	assert.Equal(t, platformerrors.CodeInvalidInput, platformerrors.GetCode(err))
}

func TestHDU_DeleteColumn(t *testing.T) {
	_, hdu := createTableFile(t)

	require.NoError(t, hdu.DeleteColumn("FLUX"))

	cols := hdu.Columns()
	require.Len(t, cols, 1)
	assert.Equal(t, "ID", cols[0].Name)
}

func TestHDU_DeleteColumn_Missing(t *testing.T) {
	_, hdu := createTableFile(t)

	err := hdu.DeleteColumn("NOWHERE")
	require.Error(t, err)
	assert.Equal(t, platformerrors.CodeNotFound, platformerrors.GetCode(err))
}

func TestHDU_ColumnNumber(t *testing.T) {
	_, hdu := createTableFile(t)

	// FITS name matching is case-insensitive by default.
	n, err := hdu.ColumnNumber("flux")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = hdu.ColumnNumber("FLUX", WithCaseSensitive())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = hdu.ColumnNumber("flux", WithCaseSensitive())
	require.Error(t, err)
	assert.Equal(t, platformerrors.CodeNotFound, platformerrors.GetCode(err))
}

func TestHDU_Refresh(t *testing.T) {
	f, hdu := createTableFile(t)

	// Extend the table through a second HDU value; the first one's
	// snapshot goes stale.
	other, err := f.HDU(hdu.Number())
	require.NoError(t, err)
	require.NoError(t, WriteColumnRange(other, "ID", 10, []int32{10, 11}))

	assert.Equal(t, int64(10), hdu.Rows())
	require.NoError(t, hdu.Refresh())
	assert.Equal(t, int64(12), hdu.Rows())
}

func TestHDU_TableAccessorsOnImage(t *testing.T) {
	_, hdu := createImageFile(t)

	assert.Nil(t, hdu.Columns())
	assert.Zero(t, hdu.Rows())

	_, err := hdu.ColumnNumber("X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "holds no table")
}

func TestHDU_ImageAccessorsOnTable(t *testing.T) {
	_, hdu := createTableFile(t)

	_, err := hdu.Dimensions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "holds no image")

	_, err = hdu.PixelType()
	require.Error(t, err)
}

func TestHDU_PixelType(t *testing.T) {
	_, hdu := createImageFile(t)

	pt, err := hdu.PixelType()
	require.NoError(t, err)
	assert.Equal(t, ImageInt32, pt)
}
