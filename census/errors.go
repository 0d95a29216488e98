package census

import "fmt"

// TransportError indicates the HTTP call itself failed: a network error, a
// timeout, or a non-success status code. The request never produced a usable
// response body.
type TransportError struct {
	URL string
	// StatusCode is 0 when the request did not complete
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("census api request failed with status %d: %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("census api request failed: %s: %s", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteRequestError is an application error reported by the Census API inside
// a successful HTTP response, e.g. an unknown variable code or an invalid
// year. It is deliberately distinct from TransportError even though both come
// from the same call.
type RemoteRequestError struct {
	Message string
}

func (e *RemoteRequestError) Error() string {
	return e.Message
}
