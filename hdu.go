package fits

import (
	"fmt"
	"iter"

	"github.com/jmgilman/go/fits/internal/cfitsio"
)

// HDU addresses one header-data unit of an open file by position. Every
// operation on it re-seats the file's cursor first, so HDUs obtained from
// the same File can be used in any order, though never concurrently.
//
// Info is a snapshot taken when the HDU was obtained. Operations that change
// the HDU's structure refresh it; structural changes made through other HDU
// values do not. Call Refresh to re-derive it.
type HDU struct {
	file *File

	// num is the zero-based position of the HDU in the file.
	num int

	// Info describes the HDU's contents as one of ImageInfo, TableInfo,
	// or AnyInfo.
	Info Info
}

// HDU returns the header-data unit at the zero-based position n. The primary
// HDU is position 0.
func (f *File) HDU(n int) (*HDU, error) {
	if n < 0 {
		return nil, invalidInputError(fmt.Sprintf("HDU position %d is negative", n), "hdu", n)
	}

	if err := f.move(n); err != nil {
		return nil, err
	}

	info, err := f.currentInfo()
	if err != nil {
		return nil, err
	}
	return &HDU{file: f, num: n, Info: info}, nil
}

// HDUByName returns the first HDU whose EXTNAME matches name.
func (f *File) HDUByName(name string) (*HDU, error) {
	prev := f.h.CurrentHDU()
	if st := f.h.MoveNamed(cfitsio.AnyHDU, name, 0); st != cfitsio.OK {
		_ = f.h.MoveAbs(prev)
		return nil, statusError(st, fmt.Sprintf("failed to move to HDU %q", name), "name", name)
	}

	num := f.h.CurrentHDU() - 1
	info, err := f.currentInfo()
	if err != nil {
		return nil, err
	}
	return &HDU{file: f, num: num, Info: info}, nil
}

// PrimaryHDU returns the first HDU of the file.
func (f *File) PrimaryHDU() (*HDU, error) {
	return f.HDU(0)
}

// NumHDUs returns the number of HDUs in the file.
func (f *File) NumHDUs() (int, error) {
	n, st := f.h.NumHDUs()
	if err := statusError(st, "failed to count HDUs"); err != nil {
		return 0, err
	}
	return n, nil
}

// HDUs returns an iterator over every HDU in the file, in position order.
// The sequence is lazy: each HDU is described only when the iteration
// reaches it, and the sequence can be ranged over more than once. Iteration
// stops at the first error, yielding a nil HDU with it.
func (f *File) HDUs() iter.Seq2[*HDU, error] {
	return func(yield func(*HDU, error) bool) {
		n, err := f.NumHDUs()
		if err != nil {
			yield(nil, err)
			return
		}

		for i := 0; i < n; i++ {
			hdu, err := f.HDU(i)
			if !yield(hdu, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}

// move seats the cursor on the zero-based HDU n. When the move fails the
// cursor is restored to where it was, so a bad position never leaves the
// file pointing somewhere unexpected.
func (f *File) move(n int) error {
	prev := f.h.CurrentHDU()
	if st := f.h.MoveAbs(n + 1); st != cfitsio.OK {
		_ = f.h.MoveAbs(prev)
		return statusError(st, fmt.Sprintf("failed to move to HDU %d", n), "hdu", n)
	}
	return nil
}

// currentInfo describes the HDU the cursor is seated on.
func (f *File) currentInfo() (Info, error) {
	hduType, st := f.h.HDUType()
	if err := statusError(st, "failed to query HDU type"); err != nil {
		return nil, err
	}

	switch hduType {
	case cfitsio.ImageHDU:
		return f.currentImageInfo()
	case cfitsio.BinaryTable, cfitsio.ASCIITable:
		return f.currentTableInfo()
	default:
		return AnyInfo{}, nil
	}
}

func (f *File) currentImageInfo() (Info, error) {
	axes, st := f.h.ImageDims()
	if err := statusError(st, "failed to query image dimensions"); err != nil {
		return nil, err
	}

	equiv, st := f.h.ImageEquivType()
	if err := statusError(st, "failed to query image pixel type"); err != nil {
		return nil, err
	}

	pixelType, ok := imageTypeFromBitpix(equiv)
	if !ok {
		return nil, invalidInputError(fmt.Sprintf("image has unrecognized pixel type code %d", equiv),
			"bitpix", equiv)
	}

	return ImageInfo{Type: pixelType, Shape: reverseAxes(intAxes(axes))}, nil
}

func (f *File) currentTableInfo() (Info, error) {
	rows, st := f.h.NumRows()
	if err := statusError(st, "failed to count table rows"); err != nil {
		return nil, err
	}

	ncols, st := f.h.NumColumns()
	if err := statusError(st, "failed to count table columns"); err != nil {
		return nil, err
	}

	columns := make([]ColumnDescriptor, ncols)
	for col := 1; col <= ncols; col++ {
		name, unit, st := f.h.ColumnName(col)
		if err := statusError(st, fmt.Sprintf("failed to describe column %d", col), "column", col); err != nil {
			return nil, err
		}

		code, repeat, width, st := f.h.ColumnType(col)
		if err := statusError(st, fmt.Sprintf("failed to query type of column %q", name), "column", name); err != nil {
			return nil, err
		}

		columnType, ok := typeFromEquivCode(code)
		if !ok {
			return nil, invalidInputError(
				fmt.Sprintf("column %q has unrecognized type code %d", name, code),
				"column", name, "typecode", code)
		}

		desc := ColumnDescriptor{
			Name:   name,
			Type:   columnType,
			Repeat: int(repeat),
			Width:  int(width),
			Unit:   unit,
		}

		// String columns report the repeat count in characters. The
		// logical element count is strings per row.
		if columnType == TypeString && width > 0 {
			desc.Repeat = int(repeat / width)
			if desc.Repeat == 0 {
				desc.Repeat = 1
			}
		}

		columns[col-1] = desc
	}

	return TableInfo{Columns: columns, Rows: rows}, nil
}

// seat re-positions the file's cursor on this HDU.
func (h *HDU) seat() error {
	return h.file.move(h.num)
}

// Number returns the HDU's zero-based position.
func (h *HDU) Number() int {
	return h.num
}

// Type reports the kind of HDU this is.
func (h *HDU) Type() (HDUType, error) {
	if err := h.seat(); err != nil {
		return 0, err
	}

	hduType, st := h.file.h.HDUType()
	if err := statusError(st, "failed to query HDU type", "hdu", h.num); err != nil {
		return 0, err
	}
	return HDUType(hduType), nil
}

// Name returns the HDU's EXTNAME value, or the empty string when the keyword
// is not present. The primary HDU of most files has no name.
func (h *HDU) Name() (string, error) {
	if err := h.seat(); err != nil {
		return "", err
	}

	value, _, st := h.file.h.ReadKeyString("EXTNAME")
	if st == statusKeyNoExist {
		return "", nil
	}
	if err := statusError(st, "failed to read EXTNAME", "hdu", h.num); err != nil {
		return "", err
	}
	return value, nil
}

// Delete removes the HDU from the file. The receiver and any other HDU
// addressing a later position are invalid afterwards: positions shift down
// by one.
func (h *HDU) Delete() error {
	context := fmt.Sprintf("failed to delete HDU %d", h.num)
	if err := h.file.writeGuard(context); err != nil {
		return err
	}
	if err := h.seat(); err != nil {
		return err
	}

	st := h.file.h.DeleteHDU()
	if err := statusError(st, context, "hdu", h.num); err != nil {
		return err
	}
	h.file.trace("deleted HDU", "hdu", h.num)
	return nil
}

// CopyTo appends a copy of the HDU, header and data, to dst. Copying into
// the source file itself duplicates the HDU at the end.
func (h *HDU) CopyTo(dst *File) error {
	context := fmt.Sprintf("failed to copy HDU %d", h.num)
	if err := dst.writeGuard(context); err != nil {
		return err
	}
	if err := h.seat(); err != nil {
		return err
	}

	st := h.file.h.CopyHDU(dst.h)
	return statusError(st, context, "hdu", h.num)
}

// Refresh re-derives Info from the file, picking up structural changes made
// since the HDU was obtained.
func (h *HDU) Refresh() error {
	if err := h.seat(); err != nil {
		return err
	}

	info, err := h.file.currentInfo()
	if err != nil {
		return err
	}
	h.Info = info
	return nil
}

// Resize reshapes an image HDU to the given row-major dimensions, keeping
// its pixel type. Existing pixel data is not preserved in any useful order.
func (h *HDU) Resize(shape []int) error {
	context := fmt.Sprintf("failed to resize HDU %d", h.num)
	if err := h.file.writeGuard(context); err != nil {
		return err
	}

	info, err := h.asImage(context)
	if err != nil {
		return err
	}
	if err := validateImage(ImageDescription{PixelType: info.Type, Dimensions: shape}); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	if err := h.seat(); err != nil {
		return err
	}

	st := h.file.h.ResizeImage(int(info.Type), libraryAxes(shape))
	if err := statusError(st, context, "hdu", h.num, "shape", shape); err != nil {
		return err
	}
	return h.Refresh()
}

// AppendColumn adds a column after the table's last one.
func (h *HDU) AppendColumn(desc ColumnDescriptor) error {
	context := fmt.Sprintf("failed to append column %q", desc.Name)
	info, err := h.asTable(context)
	if err != nil {
		return err
	}
	return h.insertColumnAt(len(info.Columns), desc, context)
}

// InsertColumn adds a column at the zero-based position pos, shifting later
// columns right.
func (h *HDU) InsertColumn(pos int, desc ColumnDescriptor) error {
	context := fmt.Sprintf("failed to insert column %q", desc.Name)
	info, err := h.asTable(context)
	if err != nil {
		return err
	}
	if pos < 0 || pos > len(info.Columns) {
		return fmt.Errorf("%s: %w", context, invalidInputError(
			fmt.Sprintf("position %d outside [0, %d]", pos, len(info.Columns)),
			"position", pos, "columns", len(info.Columns)))
	}
	return h.insertColumnAt(pos, desc, context)
}

func (h *HDU) insertColumnAt(pos int, desc ColumnDescriptor, context string) error {
	if err := h.file.writeGuard(context); err != nil {
		return err
	}

	form, err := desc.tform()
	if err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	if err := h.seat(); err != nil {
		return err
	}

	st := h.file.h.InsertColumn(pos+1, desc.Name, form)
	if err := statusError(st, context, "column", desc.Name, "tform", form); err != nil {
		return err
	}

	if desc.Unit != "" {
		key := fmt.Sprintf("TUNIT%d", pos+1)
		if st := h.file.h.WriteKeyString(key, desc.Unit, "physical unit of field"); st != cfitsio.OK {
			return statusError(st, context, "column", desc.Name, "key", key)
		}
	}

	h.file.trace("inserted column", "column", desc.Name, "position", pos)
	return h.Refresh()
}

// DeleteColumn removes the named column from the table.
func (h *HDU) DeleteColumn(name string, opts ...ColumnOption) error {
	context := fmt.Sprintf("failed to delete column %q", name)
	if err := h.file.writeGuard(context); err != nil {
		return err
	}
	if _, err := h.asTable(context); err != nil {
		return err
	}

	col, err := h.columnNumber(name, context, opts...)
	if err != nil {
		return err
	}

	st := h.file.h.DeleteColumn(col)
	if err := statusError(st, context, "column", name); err != nil {
		return err
	}
	h.file.trace("deleted column", "column", name)
	return h.Refresh()
}

// ColumnNumber returns the zero-based position of the named column. Matching
// is case-insensitive unless WithCaseSensitive is given.
func (h *HDU) ColumnNumber(name string, opts ...ColumnOption) (int, error) {
	context := fmt.Sprintf("failed to locate column %q", name)
	if _, err := h.asTable(context); err != nil {
		return 0, err
	}

	col, err := h.columnNumber(name, context, opts...)
	if err != nil {
		return 0, err
	}
	return col - 1, nil
}

// columnNumber resolves a column name to the library's one-based number,
// seating the cursor on the way.
func (h *HDU) columnNumber(name, context string, opts ...ColumnOption) (int, error) {
	var options columnOptions
	for _, opt := range opts {
		opt(&options)
	}

	if err := h.seat(); err != nil {
		return 0, err
	}

	col, st := h.file.h.ColumnNumber(name, options.caseSensitive)
	if err := statusError(st, context, "column", name); err != nil {
		return 0, err
	}
	return col, nil
}

// Columns returns the table's column descriptors, or nil when the HDU is
// not a table.
func (h *HDU) Columns() []ColumnDescriptor {
	info, ok := h.Info.(TableInfo)
	if !ok {
		return nil
	}
	return info.Columns
}

// Rows returns the table's row count, or zero when the HDU is not a table.
func (h *HDU) Rows() int64 {
	info, ok := h.Info.(TableInfo)
	if !ok {
		return 0
	}
	return info.Rows
}

// Dimensions returns an image HDU's shape in row-major order, outermost
// axis first.
func (h *HDU) Dimensions() ([]int, error) {
	info, err := h.asImage("failed to read image dimensions")
	if err != nil {
		return nil, err
	}
	return info.Shape, nil
}

// PixelType returns the pixel type reads from an image HDU effectively
// produce.
func (h *HDU) PixelType() (ImageType, error) {
	info, err := h.asImage("failed to read image pixel type")
	if err != nil {
		return 0, err
	}
	return info.Type, nil
}

// asTable asserts the HDU holds a table.
func (h *HDU) asTable(context string) (TableInfo, error) {
	info, ok := h.Info.(TableInfo)
	if !ok {
		return TableInfo{}, fmt.Errorf("%s: %w", context,
			invalidInputError(fmt.Sprintf("HDU %d holds no table", h.num), "hdu", h.num))
	}
	return info, nil
}

// asImage asserts the HDU holds an image.
func (h *HDU) asImage(context string) (ImageInfo, error) {
	info, ok := h.Info.(ImageInfo)
	if !ok {
		return ImageInfo{}, fmt.Errorf("%s: %w", context,
			invalidInputError(fmt.Sprintf("HDU %d holds no image", h.num), "hdu", h.num))
	}
	return info, nil
}
