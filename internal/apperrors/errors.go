package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrRateNotFound indicates that no exchange rate is stored for a requested
// currency pair. Conversion never falls back to a 1:1 rate; callers must
// handle this explicitly.
var ErrRateNotFound = errors.New("exchange rate not found")

// ErrProviderUnavailable indicates a transport-level failure (timeout, DNS,
// connection refused, non-2xx status) talking to the upstream rate provider.
var ErrProviderUnavailable = errors.New("rate provider unavailable")

// ErrProviderRejected indicates the upstream provider answered but flagged the
// request as failed in its own payload (bad credential, bad request).
var ErrProviderRejected = errors.New("rate provider rejected request")

// ErrMalformedQuote indicates a single currency's quote was missing,
// non-numeric or non-positive. Only the affected currency is skipped.
var ErrMalformedQuote = errors.New("malformed quote")

// ErrStorageFailure indicates the repository could not commit a rate batch.
// No partial basket is assumed committed.
var ErrStorageFailure = errors.New("storage failure")

// ErrSyncInProgress indicates a synchronization run was requested while a
// previous run is still in flight.
var ErrSyncInProgress = errors.New("synchronization already in progress")
