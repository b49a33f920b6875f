package arrow

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/arrow/tensor"
	platformerrors "github.com/jmgilman/go/errors"

	"github.com/jmgilman/go/fits"
)

// ReadTensor reads an image HDU into a row-major Arrow tensor of the image's
// effective pixel type. The caller owns the tensor and must Release it.
func ReadTensor(h *fits.HDU, opts ...Option) (tensor.Interface, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	info, ok := h.Info.(fits.ImageInfo)
	if !ok {
		return nil, platformerrors.New(platformerrors.CodeInvalidInput, "HDU holds no image")
	}

	shape := make([]int64, len(info.Shape))
	for i, n := range info.Shape {
		shape[i] = int64(n)
	}

	switch info.Type {
	case fits.ImageUInt8:
		return buildTensor[uint8](h, options.alloc, arrow.PrimitiveTypes.Uint8, shape)
	case fits.ImageInt8:
		return buildTensor[int8](h, options.alloc, arrow.PrimitiveTypes.Int8, shape)
	case fits.ImageInt16:
		return buildTensor[int16](h, options.alloc, arrow.PrimitiveTypes.Int16, shape)
	case fits.ImageUInt16:
		return buildTensor[uint16](h, options.alloc, arrow.PrimitiveTypes.Uint16, shape)
	case fits.ImageInt32:
		return buildTensor[int32](h, options.alloc, arrow.PrimitiveTypes.Int32, shape)
	case fits.ImageUInt32:
		return buildTensor[uint32](h, options.alloc, arrow.PrimitiveTypes.Uint32, shape)
	case fits.ImageInt64:
		return buildTensor[int64](h, options.alloc, arrow.PrimitiveTypes.Int64, shape)
	case fits.ImageFloat32:
		return buildTensor[float32](h, options.alloc, arrow.PrimitiveTypes.Float32, shape)
	case fits.ImageFloat64:
		return buildTensor[float64](h, options.alloc, arrow.PrimitiveTypes.Float64, shape)
	default:
		return nil, platformerrors.Newf(platformerrors.CodeInvalidInput,
			"image pixel type %v has no Arrow representation", info.Type)
	}
}

func buildTensor[T fits.Pixel](h *fits.HDU, pool memory.Allocator, dt arrow.DataType, shape []int64) (tensor.Interface, error) {
	pixels, err := fits.ReadImage[T](h)
	if err != nil {
		return nil, err
	}

	b := array.NewBuilder(pool, dt)
	defer b.Release()
	appendSlice(b, pixels, nil)

	arr := b.NewArray()
	defer arr.Release()
	return tensor.New(arr.Data(), shape, nil, nil), nil
}
