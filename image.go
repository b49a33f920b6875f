package fits

import (
	"fmt"
	"unsafe"

	"github.com/jmgilman/go/fits/internal/cfitsio"
)

// Pixel enumerates the element types the image engine transfers. The library
// converts between the image's on-disk pixel type and the requested element
// type, so any image can be read as any Pixel type; out-of-range values fail
// element conversion.
type Pixel interface {
	uint8 | int8 | int16 | uint16 | int32 | uint32 |
		int64 | uint64 | float32 | float64
}

// ReadImage reads every pixel of an image HDU in row-major order.
func ReadImage[T Pixel](h *HDU) ([]T, error) {
	context := "failed to read image"
	info, err := h.asImage(context)
	if err != nil {
		return nil, err
	}
	return readSection[T](h, info, 0, product(info.Shape), context)
}

// ReadSection reads pixels [start, end) of an image HDU, addressed as a flat
// row-major array regardless of the image's dimensionality.
func ReadSection[T Pixel](h *HDU, start, end int) ([]T, error) {
	context := fmt.Sprintf("failed to read image section [%d, %d)", start, end)
	info, err := h.asImage(context)
	if err != nil {
		return nil, err
	}
	return readSection[T](h, info, start, end, context)
}

// ReadRows reads rows [start, end) of a 2-dimensional image.
func ReadRows[T Pixel](h *HDU, start, end int) ([]T, error) {
	context := fmt.Sprintf("failed to read image rows [%d, %d)", start, end)
	info, err := h.asImage(context)
	if err != nil {
		return nil, err
	}
	if len(info.Shape) != 2 {
		return nil, fmt.Errorf("%s: %w", context, invalidInputError(
			fmt.Sprintf("row reads need a 2-dimensional image, not %d axes", len(info.Shape)),
			"axes", len(info.Shape)))
	}
	if start < 0 || end < start || end > info.Shape[0] {
		return nil, boundsError(context, 0, Range{Start: start, End: end}, info.Shape[0])
	}

	width := info.Shape[1]
	return readSection[T](h, info, start*width, end*width, context)
}

// ReadRow reads one row of a 2-dimensional image.
func ReadRow[T Pixel](h *HDU, row int) ([]T, error) {
	return ReadRows[T](h, row, row+1)
}

// ReadRegion reads a rectangular region of an image HDU. The region is one
// Range per axis in row-major order, and the result is the region's pixels
// flattened row-major. Every range is validated against its axis before the
// library sees the request.
func ReadRegion[T Pixel](h *HDU, region []Range) ([]T, error) {
	context := "failed to read image region"
	info, err := h.asImage(context)
	if err != nil {
		return nil, err
	}
	if err := validateRegion(info.Shape, region, context); err != nil {
		return nil, err
	}

	n := regionSize(region)
	if n == 0 {
		return []T{}, nil
	}
	if err := h.seat(); err != nil {
		return nil, err
	}

	blc, trc := regionCorners(region)
	buf := make([]T, n)
	_, st := h.file.h.ReadSubset(pixelDataType[T](), blc, trc, unsafe.Pointer(&buf[0]))
	if err := statusError(st, context, "region", fmt.Sprint(region)); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteImage writes pixels into an image HDU starting at the first pixel.
// Supplying fewer pixels than the image holds leaves the remainder
// untouched; supplying more is an error.
func WriteImage[T Pixel](h *HDU, data []T) error {
	context := "failed to write image"
	if err := h.file.writeGuard(context); err != nil {
		return err
	}
	info, err := h.asImage(context)
	if err != nil {
		return err
	}

	if npix := product(info.Shape); len(data) > npix {
		return fmt.Errorf("%s: %w", context, invalidInputError(
			fmt.Sprintf("%d values exceed the image's %d pixels", len(data), npix),
			"values", len(data), "pixels", npix))
	}
	return writeSection(h, info, 0, data, context)
}

// WriteSection writes pixels starting at the flat row-major position start.
func WriteSection[T Pixel](h *HDU, start int, data []T) error {
	context := fmt.Sprintf("failed to write image section at %d", start)
	if err := h.file.writeGuard(context); err != nil {
		return err
	}
	info, err := h.asImage(context)
	if err != nil {
		return err
	}
	return writeSection(h, info, start, data, context)
}

// WriteRegion writes a rectangular region of an image HDU, one Range per
// axis in row-major order. data must hold exactly the region's pixel count.
func WriteRegion[T Pixel](h *HDU, region []Range, data []T) error {
	context := "failed to write image region"
	if err := h.file.writeGuard(context); err != nil {
		return err
	}
	info, err := h.asImage(context)
	if err != nil {
		return err
	}
	if err := validateRegion(info.Shape, region, context); err != nil {
		return err
	}

	n := regionSize(region)
	if len(data) != n {
		return fmt.Errorf("%s: %w", context, invalidInputError(
			fmt.Sprintf("%d values for a region of %d pixels", len(data), n),
			"values", len(data), "pixels", n))
	}
	if n == 0 {
		return nil
	}
	if err := h.seat(); err != nil {
		return err
	}

	blc, trc := regionCorners(region)
	st := h.file.h.WriteSubset(pixelDataType[T](), blc, trc, unsafe.Pointer(&data[0]))
	return statusError(st, context, "region", fmt.Sprint(region))
}

// CreateImage appends an image HDU with the given shape and no meaningful
// pixel values, and returns it.
func (f *File) CreateImage(extname string, desc ImageDescription) (*HDU, error) {
	context := fmt.Sprintf("failed to create image %q", extname)
	if err := f.writeGuard(context); err != nil {
		return nil, err
	}
	if err := validateImage(desc); err != nil {
		return nil, fmt.Errorf("%s: %w", context, err)
	}

	st := f.h.CreateImage(int(desc.PixelType), libraryAxes(desc.Dimensions))
	if err := statusError(st, context, "dimensions", desc.Dimensions); err != nil {
		return nil, err
	}

	if extname != "" {
		if st := f.h.WriteKeyString("EXTNAME", extname, "name of this HDU"); st != cfitsio.OK {
			return nil, statusError(st, context, "name", extname)
		}
	}

	num := f.h.CurrentHDU() - 1
	info, err := f.currentInfo()
	if err != nil {
		return nil, err
	}

	f.trace("created image", "name", extname, "dimensions", desc.Dimensions)
	return &HDU{file: f, num: num, Info: info}, nil
}

// readSection is the one flat-read path shared by the whole-image, section,
// and row reads.
func readSection[T Pixel](h *HDU, info ImageInfo, start, end int, context string) ([]T, error) {
	npix := product(info.Shape)
	if start < 0 || end < start || end > npix {
		return nil, fmt.Errorf("%s: %w", context, invalidInputError(
			fmt.Sprintf("pixel range [%d, %d) outside image of %d pixels", start, end, npix),
			"start", start, "end", end, "pixels", npix))
	}

	first, n := rowRange(start, end)
	if n == 0 {
		return []T{}, nil
	}
	if err := h.seat(); err != nil {
		return nil, err
	}

	buf := make([]T, n)
	_, st := h.file.h.ReadPixels(pixelDataType[T](), first, n, unsafe.Pointer(&buf[0]))
	if err := statusError(st, context, "pixels", n); err != nil {
		return nil, err
	}
	return buf, nil
}

func writeSection[T Pixel](h *HDU, info ImageInfo, start int, data []T, context string) error {
	npix := product(info.Shape)
	if start < 0 || start+len(data) > npix {
		return fmt.Errorf("%s: %w", context, invalidInputError(
			fmt.Sprintf("pixel range [%d, %d) outside image of %d pixels", start, start+len(data), npix),
			"start", start, "values", len(data), "pixels", npix))
	}
	if len(data) == 0 {
		return nil
	}
	if err := h.seat(); err != nil {
		return err
	}

	st := h.file.h.WritePixels(pixelDataType[T](), int64(start)+1, int64(len(data)), unsafe.Pointer(&data[0]))
	return statusError(st, context, "pixels", len(data))
}

// validateImage rejects degenerate image descriptions before they reach the
// library.
func validateImage(desc ImageDescription) error {
	if _, ok := imageTypeFromBitpix(int(desc.PixelType)); !ok {
		return invalidInputError(fmt.Sprintf("unrecognized pixel type %d", int(desc.PixelType)),
			"bitpix", int(desc.PixelType))
	}
	if len(desc.Dimensions) == 0 {
		return invalidInputError("an image needs at least one axis")
	}
	for axis, length := range desc.Dimensions {
		if length <= 0 {
			return invalidInputError(fmt.Sprintf("axis %d has non-positive length %d", axis, length),
				"axis", axis, "length", length)
		}
	}
	return nil
}

// validateRegion checks a row-major region against the image shape before
// anything reaches the library.
func validateRegion(shape []int, region []Range, context string) error {
	if len(region) != len(shape) {
		return fmt.Errorf("%s: %w", context, invalidInputError(
			fmt.Sprintf("region has %d axes, image has %d", len(region), len(shape)),
			"region", len(region), "image", len(shape)))
	}
	for axis, r := range region {
		if r.Start < 0 || r.End < r.Start || r.End > shape[axis] {
			return boundsError(context, axis, r, shape[axis])
		}
	}
	return nil
}

// regionCorners converts a row-major region to the library's corner vectors:
// 1-based, inclusive, fastest-varying axis first.
func regionCorners(region []Range) (blc, trc []int64) {
	starts := make([]int, len(region))
	ends := make([]int, len(region))
	for i, r := range region {
		starts[i] = r.Start + 1
		ends[i] = r.End
	}
	return libraryAxes(starts), libraryAxes(ends)
}

func regionSize(region []Range) int {
	n := 1
	for _, r := range region {
		n *= r.Len()
	}
	return n
}

// pixelDataType maps a Pixel type parameter onto the library's memory type
// code.
func pixelDataType[T Pixel]() cfitsio.DataType {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return cfitsio.TByte
	case int8:
		return cfitsio.TSByte
	case int16:
		return cfitsio.TShort
	case uint16:
		return cfitsio.TUShort
	case int32:
		return cfitsio.TInt
	case uint32:
		return cfitsio.TUInt
	case int64:
		return cfitsio.TLongLong
	case uint64:
		return cfitsio.TULongLong
	case float32:
		return cfitsio.TFloat
	default:
		return cfitsio.TDouble
	}
}
