package arrow

import (
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/arrow/tensor"
	platformerrors "github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fits"
)

func TestReadTensor(t *testing.T) {
	hdu := createImageHDU(t)

	ten, err := ReadTensor(hdu)
	require.NoError(t, err)
	defer ten.Release()

	assert.Equal(t, []int64{2, 3}, ten.Shape())

	f32, ok := ten.(*tensor.Float32)
	require.True(t, ok)
	assert.Equal(t, float32(0), f32.Value([]int64{0, 0}))
	assert.Equal(t, float32(2), f32.Value([]int64{0, 2}))
	assert.Equal(t, float32(3), f32.Value([]int64{1, 0}))
	assert.Equal(t, float32(5), f32.Value([]int64{1, 2}))
}

func TestReadTensor_Int32(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counts.fits")
	f, err := fits.Create(path, fits.WithPrimary(fits.ImageDescription{
		PixelType:  fits.ImageInt32,
		Dimensions: []int{4, 6},
	}))
	require.NoError(t, err)
	defer f.Close()

	hdu, err := f.PrimaryHDU()
	require.NoError(t, err)

	data := make([]int32, 24)
	for i := range data {
		data[i] = int32(i)
	}
	require.NoError(t, fits.WriteImage(hdu, data))

	ten, err := ReadTensor(hdu)
	require.NoError(t, err)
	defer ten.Release()

	assert.Equal(t, []int64{4, 6}, ten.Shape())

	i32, ok := ten.(*tensor.Int32)
	require.True(t, ok)
	assert.Equal(t, int32(8), i32.Value([]int64{1, 2}))
	assert.Equal(t, int32(23), i32.Value([]int64{3, 5}))
}

func TestReadTensor_OnTable(t *testing.T) {
	hdu := createTableHDU(t)

	_, err := ReadTensor(hdu)
	require.Error(t, err)
	assert.Equal(t, platformerrors.CodeInvalidInput, platformerrors.GetCode(err))
	assert.Contains(t, err.Error(), "holds no image")
}

func TestReadTensor_ReleasesAllBuffers(t *testing.T) {
	hdu := createImageHDU(t)

	alloc := memory.NewCheckedAllocator(memory.NewGoAllocator())
	ten, err := ReadTensor(hdu, WithAllocator(alloc))
	require.NoError(t, err)

	ten.Release()
	alloc.AssertSize(t, 0)
}
