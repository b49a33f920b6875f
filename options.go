package fits

// OpenOption is a functional option for configuring how a file is opened.
type OpenOption func(*openOptions)

type openOptions struct {
	mode FileMode
}

func defaultOpenOptions() openOptions {
	return openOptions{mode: ReadOnly}
}

// WithReadWrite opens the file writable instead of read-only.
func WithReadWrite() OpenOption {
	return func(o *openOptions) {
		o.mode = ReadWrite
	}
}

// CreateOption is a functional option for configuring how a file is created.
type CreateOption func(*createOptions)

type createOptions struct {
	overwrite bool
	primary   *ImageDescription
}

// WithOverwrite replaces an existing file at the target path instead of
// failing with an already-exists error.
func WithOverwrite() CreateOption {
	return func(o *createOptions) {
		o.overwrite = true
	}
}

// WithPrimary creates the file with a data-bearing primary HDU of the given
// shape instead of the default empty one.
func WithPrimary(desc ImageDescription) CreateOption {
	return func(o *createOptions) {
		d := desc
		o.primary = &d
	}
}

// ColumnOption is a functional option for configuring column lookups.
type ColumnOption func(*columnOptions)

type columnOptions struct {
	caseSensitive bool
}

// WithCaseSensitive matches column names exactly instead of the FITS default
// of case-insensitive comparison.
func WithCaseSensitive() ColumnOption {
	return func(o *columnOptions) {
		o.caseSensitive = true
	}
}
