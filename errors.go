package fits

import (
	"fmt"

	platformerrors "github.com/jmgilman/go/errors"

	"github.com/jmgilman/go/fits/internal/cfitsio"
)

// CFITSIO status codes the classifier distinguishes. The values are part of
// the library's documented ABI and have been stable since version 2.
const (
	statusFileNotOpened  cfitsio.Status = 104
	statusFileNotCreated cfitsio.Status = 105
	statusReadonlyFile   cfitsio.Status = 112
	statusKeyNoExist     cfitsio.Status = 202
	statusBadBitpix      cfitsio.Status = 211
	statusBadNaxis       cfitsio.Status = 212
	statusBadNaxes       cfitsio.Status = 213
	statusBadTform       cfitsio.Status = 261
	statusColNotFound    cfitsio.Status = 219
	statusBadHDUNum      cfitsio.Status = 301
	statusBadColNum      cfitsio.Status = 302
	statusBadRowNum      cfitsio.Status = 307
	statusBadElemNum     cfitsio.Status = 308
	statusNotASCIICol    cfitsio.Status = 309
	statusNotLogicalCol  cfitsio.Status = 310
	statusBadRowWidth    cfitsio.Status = 312
	statusBadDimen       cfitsio.Status = 320
	statusBadIntToStr    cfitsio.Status = 401
	statusNumOverflow    cfitsio.Status = 412
)

// statusError converts a library status into a platform error wrapped with
// context, or nil when the status reports success. The library's own message
// for the status becomes the leaf error, the classification maps the status
// onto a platform error code, and the raw status number rides along as error
// context under the "status" key.
func statusError(st cfitsio.Status, context string, kvPairs ...interface{}) error {
	if st == cfitsio.OK {
		return nil
	}

	classified := platformerrors.New(codeForStatus(st), cfitsio.StatusText(st))

	ctx := makeContext(kvPairs...)
	if ctx == nil {
		ctx = make(map[string]interface{}, 1)
	}
	ctx["status"] = int(st)

	return fmt.Errorf("%s: %w", context, platformerrors.WithContextMap(classified, ctx))
}

// codeForStatus maps a library status onto a platform error code. Statuses
// without a specific mapping classify as internal errors: they report library
// or I/O failures the caller cannot repair by changing arguments.
func codeForStatus(st cfitsio.Status) platformerrors.ErrorCode {
	switch st {
	case statusFileNotOpened, statusKeyNoExist, statusColNotFound, statusBadHDUNum:
		return platformerrors.CodeNotFound

	case statusFileNotCreated:
		return platformerrors.CodeAlreadyExists

	case statusReadonlyFile:
		return platformerrors.CodeForbidden

	case statusBadBitpix, statusBadNaxis, statusBadNaxes, statusBadTform,
		statusBadColNum, statusBadRowNum, statusBadElemNum,
		statusNotASCIICol, statusNotLogicalCol, statusBadRowWidth, statusBadDimen:
		return platformerrors.CodeInvalidInput
	}

	// 401-412 cover the datatype conversion failures, including numeric
	// overflow while narrowing.
	if st >= statusBadIntToStr && st <= statusNumOverflow {
		return platformerrors.CodeInvalidInput
	}

	return platformerrors.CodeInternal
}

// readonlyError reports an attempt to mutate a file opened read-only. The
// check runs before any library call so a failed write never touches the
// handle.
func readonlyError(context string) error {
	return fmt.Errorf("%s: %w", context,
		platformerrors.New(platformerrors.CodeForbidden, "file is open read-only"))
}

// boundsError reports a region range that falls outside an image axis. The
// message names the offending axis in row-major order.
func boundsError(context string, axis int, r Range, length int) error {
	classified := platformerrors.WithContextMap(
		platformerrors.Newf(platformerrors.CodeInvalidInput,
			"range [%d, %d) exceeds axis %d of length %d", r.Start, r.End, axis, length),
		makeContext("axis", axis, "start", r.Start, "end", r.End, "length", length),
	)
	return fmt.Errorf("%s: %w", context, classified)
}

// typeMismatchError reports a read or write whose element type cannot
// represent the column's declared type.
func typeMismatchError(context string, column ColumnDescriptor, requested string) error {
	classified := platformerrors.WithContextMap(
		platformerrors.Newf(platformerrors.CodeInvalidInput,
			"column %q holds %v data, not %s", column.Name, column.Type, requested),
		makeContext("column", column.Name, "declared", column.Type.String(), "requested", requested),
	)
	return fmt.Errorf("%s: %w", context, classified)
}

// nullDataError reports that a plain read encountered undefined cells. The
// caller chooses between ReadColumnNullable and ReadColumnFilled to state how
// nulls should be represented.
func nullDataError(context, column string, nulls int) error {
	classified := platformerrors.WithContextMap(
		platformerrors.Newf(platformerrors.CodeConflict,
			"column %q contains %d undefined values; read it with ReadColumnNullable or ReadColumnFilled", column, nulls),
		makeContext("column", column, "nulls", nulls),
	)
	return fmt.Errorf("%s: %w", context, classified)
}

// invalidInputError reports an argument the wrapper rejects before calling
// the library.
func invalidInputError(message string, kvPairs ...interface{}) error {
	err := platformerrors.New(platformerrors.CodeInvalidInput, message)
	if ctx := makeContext(kvPairs...); ctx != nil {
		return platformerrors.WithContextMap(err, ctx)
	}
	return err
}

// makeContext builds a context map from alternating key/value pairs.
// Example: makeContext("column", "FLUX", "rows", 128).
func makeContext(kvPairs ...interface{}) map[string]interface{} {
	if len(kvPairs) == 0 {
		return nil
	}

	ctx := make(map[string]interface{})
	for i := 0; i < len(kvPairs)-1; i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			continue
		}
		ctx[key] = kvPairs[i+1]
	}

	if len(ctx) == 0 {
		return nil
	}
	return ctx
}
