package lavatop

import "fmt"

// ValidationError reports a field that violates a schema constraint:
// a missing required field, a wrong type, or a value outside a closed
// vocabulary. It is returned before any network call for request
// arguments and after a 2xx response for response bodies.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Reason)
}

// HTTPStatusError is returned when the server answered with a non-2xx
// status. The raw body is kept as-is for diagnostics. The client never
// retries on its own.
type HTTPStatusError struct {
	Status int
	Body   []byte
}

func (e *HTTPStatusError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("lava.top returned status %d", e.Status)
	}
	return fmt.Sprintf("lava.top returned status %d: %s", e.Status, e.Body)
}

// TransportError is returned when the request never completed:
// connection, DNS, TLS or timeout failures, and context cancellation.
// errors.Is against context.Canceled / context.DeadlineExceeded still
// works through the wrapped cause.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodingError is returned when a 2xx response body is not valid JSON
// or does not match the expected shape.
type DecodingError struct {
	Err error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("decoding response: %v", e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }
