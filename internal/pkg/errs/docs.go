// Package errs provides the error types shared by the storefront domain and its adapters.
//
// Each type pairs a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ErrValueIsOutOfRange,
// ErrValueIsRequired, ErrConflict) with a struct carrying details. Constructors come in
// plain and WithCause flavours, and Unwrap returns the sentinel so callers can classify
// failures with errors.Is regardless of the detail type:
//
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return ctx.JSON(http.StatusNotFound, ...)
//	}
//
// The HTTP adapter maps the sentinels to status codes in a single place.
package errs
