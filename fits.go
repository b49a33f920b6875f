package fits

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/jmgilman/go/fits/internal/cfitsio"
)

// File is an open FITS file. It owns exactly one library handle and closes
// it exactly once, no matter how many times Close is called.
//
// A File is not safe for concurrent use: the library keeps per-file cursor
// state, and even read-only calls mutate it. Wrap the handle with Threadsafe
// to share it between goroutines.
type File struct {
	h    *cfitsio.Handle
	path string
	mode FileMode
	log  *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// Open opens the FITS file at path, read-only unless WithReadWrite is given.
func Open(path string, opts ...OpenOption) (*File, error) {
	options := defaultOpenOptions()
	for _, opt := range opts {
		opt(&options)
	}

	h, st := cfitsio.Open(path, libraryMode(options.mode))
	if err := statusError(st, fmt.Sprintf("failed to open FITS file %q", path), "path", path); err != nil {
		return nil, err
	}

	f := &File{h: h, path: path, mode: options.mode, log: discardLogger()}
	f.trace("opened file", "path", path, "mode", options.mode.String())
	return f, nil
}

// Create creates a new FITS file at path, open read-write. The file gets an
// empty primary HDU unless WithPrimary supplies a data-bearing one. Creation
// fails if the file exists, unless WithOverwrite is given.
func Create(path string, opts ...CreateOption) (*File, error) {
	var options createOptions
	for _, opt := range opts {
		opt(&options)
	}

	target := path
	if options.overwrite {
		// The library's forced-overwrite spelling.
		target = "!" + path
	}

	h, st := cfitsio.Create(target)
	if err := statusError(st, fmt.Sprintf("failed to create FITS file %q", path), "path", path); err != nil {
		return nil, err
	}

	f := &File{h: h, path: path, mode: ReadWrite, log: discardLogger()}

	if options.primary != nil {
		if err := f.writePrimary(*options.primary); err != nil {
			_ = f.Close()
			return nil, err
		}
	} else if st := h.WriteEmptyPrimary(); st != cfitsio.OK {
		err := statusError(st, "failed to write primary HDU", "path", path)
		_ = f.Close()
		return nil, err
	}

	f.trace("created file", "path", path)
	return f, nil
}

// OpenMemory opens a read-only FITS file backed by the given bytes instead
// of the filesystem. The data is copied; the caller's slice is not retained.
func OpenMemory(data []byte) (*File, error) {
	if len(data) == 0 {
		return nil, invalidInputError("in-memory FITS file is empty")
	}

	h, st := cfitsio.OpenMemory("memfile.fits", data)
	if err := statusError(st, "failed to open in-memory FITS file", "bytes", len(data)); err != nil {
		return nil, err
	}

	f := &File{h: h, mode: ReadOnly, log: discardLogger()}
	f.trace("opened in-memory file", "bytes", len(data))
	return f, nil
}

// FromRaw adopts a fitsfile pointer created outside the wrapper, for example
// by code that calls the library directly. The returned File owns the
// pointer from here on: closing the File closes it. The pointer must be a
// live fitsfile; nothing about it can be verified.
func FromRaw(ptr unsafe.Pointer) (*File, error) {
	if ptr == nil {
		return nil, invalidInputError("cannot adopt a nil fitsfile pointer")
	}

	h := cfitsio.FromPointer(ptr)
	rawMode, st := h.Mode()
	if err := statusError(st, "failed to query i/o mode of adopted fitsfile"); err != nil {
		return nil, err
	}

	return &File{h: h, mode: fileMode(rawMode), log: discardLogger()}, nil
}

// Close closes the file and releases its library handle. It is safe to call
// more than once; every call after the first returns the first call's
// result without touching the handle again.
func (f *File) Close() error {
	f.closeOnce.Do(func() {
		st := f.h.Close()
		f.closeErr = statusError(st, fmt.Sprintf("failed to close FITS file %q", f.path), "path", f.path)
		f.trace("closed file", "path", f.path)
	})
	return f.closeErr
}

// Filename returns the path the file was opened or created with. It is
// empty for in-memory files and adopted pointers.
func (f *File) Filename() string {
	return f.path
}

// Mode reports the i/o mode of the underlying handle as the library sees it.
func (f *File) Mode() (FileMode, error) {
	rawMode, st := f.h.Mode()
	if err := statusError(st, "failed to query file i/o mode"); err != nil {
		return 0, err
	}
	return fileMode(rawMode), nil
}

// Raw returns the underlying fitsfile pointer for library calls the wrapper
// does not cover. The pointer bypasses every invariant the wrapper
// maintains: cursor position, type checks, and close-once tracking all stop
// applying to whatever is done with it. The File still owns the pointer and
// closes it.
func (f *File) Raw() unsafe.Pointer {
	return f.h.Pointer()
}

// Threadsafe wraps the file in a mutex-guarded handle for sharing across
// goroutines. All further access must go through the returned SafeFile; the
// wrapper cannot stop callers who kept the *File from racing past the lock.
//
// Serialization makes concurrent use safe only when the linked library was
// built reentrant; consult Reentrant before sharing files across goroutines.
func (f *File) Threadsafe() *SafeFile {
	return &SafeFile{f: f}
}

// WriteSummary writes a one-line description of every HDU to w.
func (f *File) WriteSummary(w io.Writer) error {
	n, err := f.NumHDUs()
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		hdu, err := f.HDU(i)
		if err != nil {
			return err
		}
		name, err := hdu.Name()
		if err != nil {
			return err
		}

		if name != "" {
			_, err = fmt.Fprintf(w, "HDU %d %q: %v\n", i, name, hdu.Info)
		} else {
			_, err = fmt.Fprintf(w, "HDU %d: %v\n", i, hdu.Info)
		}
		if err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return nil
}

// WithLogger routes the file's debug-level operation tracing to l. Passing
// nil restores the default silent logger. It returns the same File for
// chaining at the open site.
func (f *File) WithLogger(l *slog.Logger) *File {
	if l == nil {
		l = discardLogger()
	}
	f.log = l
	return f
}

// writeGuard rejects mutation of read-only handles before any library call
// is made.
func (f *File) writeGuard(context string) error {
	if f.mode != ReadWrite {
		return readonlyError(context)
	}
	return nil
}

// writePrimary replaces the default empty primary HDU of a freshly created
// file with a data-bearing image.
func (f *File) writePrimary(desc ImageDescription) error {
	if err := validateImage(desc); err != nil {
		return err
	}
	st := f.h.CreateImage(int(desc.PixelType), libraryAxes(desc.Dimensions))
	return statusError(st, "failed to create primary HDU", "dimensions", desc.Dimensions)
}

func (f *File) trace(msg string, args ...any) {
	f.log.Debug(msg, args...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func libraryMode(m FileMode) int {
	if m == ReadWrite {
		return cfitsio.ReadWrite
	}
	return cfitsio.ReadOnly
}

func fileMode(raw int) FileMode {
	if raw == cfitsio.ReadWrite {
		return ReadWrite
	}
	return ReadOnly
}

// SafeFile serializes every operation on a shared File behind a mutex. Use
// Do to run any sequence of calls that must observe a stable cursor.
type SafeFile struct {
	mu sync.Mutex
	f  *File
}

// Do runs fn with exclusive access to the file. The *File must not escape
// fn.
func (s *SafeFile) Do(fn func(*File) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.f)
}

// Close closes the underlying file, waiting for any operation in flight.
func (s *SafeFile) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}

// Reentrant reports whether the linked CFITSIO build is thread-safe. When it
// returns false, files must not be used from more than one goroutine even
// behind a SafeFile.
func Reentrant() bool {
	return cfitsio.IsReentrant()
}

// LibraryVersion returns the release number of the linked CFITSIO library.
func LibraryVersion() float32 {
	return cfitsio.Version()
}
