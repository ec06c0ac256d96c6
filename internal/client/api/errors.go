package api

import "fmt"

// Kind classifies a failed remote call so callers can branch on the failure
// category instead of raw transport detail.
type Kind int

const (
	// KindUnreachable: the request never produced an HTTP response
	// (DNS failure, connection refused, timeout).
	KindUnreachable Kind = iota + 1

	// KindUnauthorized: the server answered 401, regardless of body content.
	KindUnauthorized

	// KindServerError: any other non-2xx status.
	KindServerError

	// KindMalformedResponse: a 2xx response whose body failed structural
	// validation.
	KindMalformedResponse
)

func (k Kind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindUnauthorized:
		return "unauthorized"
	case KindServerError:
		return "server_error"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// UnreachableMessage is shown whenever the server cannot be reached at all.
const UnreachableMessage = "could not connect to the server"

// CallError is the single failure shape produced by the request layer.
// Every remote call resolves exactly once: either to a result with a nil
// *CallError, or to a non-nil *CallError carrying a kind and a message fit
// for direct display.
type CallError struct {
	Kind    Kind
	Message string
}

func (e *CallError) Error() string {
	return e.Message
}

func unreachable() *CallError {
	return &CallError{Kind: KindUnreachable, Message: UnreachableMessage}
}

func malformed(message string) *CallError {
	return &CallError{Kind: KindMalformedResponse, Message: message}
}
