package protocol

import "fmt"

// TimeoutError reports that no complete response frame arrived within the
// connection's timeout. Recoverable: the caller may retry the request on the
// same connection.
type TimeoutError struct{}

func (e *TimeoutError) Error() string {
	return "waiting for requested data timed out"
}

// RequestError reports that the server explicitly rejected the request.
// Message carries the text the server sent after the reject sentinel.
// Not recoverable by retry: the request name or arguments are wrong for
// this server version.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("wrong request %q", e.Message)
}

// DataError reports that the response did not echo the request that was
// sent. The stream can no longer be trusted; the caller should close the
// connection and dial again.
type DataError struct {
	Request string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("received data does not match request %q", e.Request)
}
