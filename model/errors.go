package model

// Error taxonomy for the client. Every network call site converts failures
// into one of these four; nothing is allowed to escape as a crash.

// ValidationError reports an empty required field, caught before any
// network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthError reports a failed credential exchange. Message is derived
// best-effort from the response body and is intended for direct display.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// FetchError reports a non-2xx status or network failure on a read path.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// SubmitError reports a non-2xx status or network failure on a write path.
type SubmitError struct {
	Op  string
	Err error
}

func (e *SubmitError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *SubmitError) Unwrap() error { return e.Err }
