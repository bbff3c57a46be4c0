package parcel

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrInvalidBody indicates the request body could not be decoded.
	ErrInvalidBody = errors.New("invalid msgpack body")

	// ErrMissingContentType indicates the request is not marked as MessagePack.
	ErrMissingContentType = errors.New("missing msgpack content type")

	// ErrBodyAlreadyExtracted indicates the request body was already taken.
	ErrBodyAlreadyExtracted = errors.New("body already extracted")

	// ErrHeadersAlreadyExtracted indicates the request headers were already taken.
	ErrHeadersAlreadyExtracted = errors.New("headers already extracted")

	// ErrEncode indicates the codec failed to encode a response value.
	ErrEncode = errors.New("encode failed")

	// ErrBodyTooLarge indicates the request body exceeded the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")

	// ErrInvalidContentType indicates a Content-Type value could not be parsed.
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrInvalidConfig indicates a configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid config")
)

// RejectionKind enumerates every way an inbound extraction can fail.
// The set is closed: render code switches over all four values.
type RejectionKind int

const (
	// InvalidBody: the body is malformed, truncated, or does not match the target type.
	InvalidBody RejectionKind = iota + 1

	// MissingContentType: the request does not declare a MessagePack content type.
	MissingContentType

	// BodyAlreadyExtracted: another extractor already took the body.
	BodyAlreadyExtracted

	// HeadersAlreadyExtracted: another extractor already took the headers.
	HeadersAlreadyExtracted
)

// String returns the kind name used in signals and metrics.
func (k RejectionKind) String() string {
	switch k {
	case InvalidBody:
		return "invalid_body"
	case MissingContentType:
		return "missing_content_type"
	case BodyAlreadyExtracted:
		return "body_already_extracted"
	case HeadersAlreadyExtracted:
		return "headers_already_extracted"
	default:
		return fmt.Sprintf("rejection_kind(%d)", int(k))
	}
}

// Rejection describes why an inbound extraction failed. It renders as a
// plain-text HTTP response with a fixed status per kind.
type Rejection struct {
	Kind  RejectionKind
	Cause error // decode or read failure; set only for InvalidBody
}

// Status returns the HTTP status for the rejection. Client input problems
// are 400; two extractors competing for the same request state is a
// server bug and yields 500.
func (r *Rejection) Status() int {
	switch r.Kind {
	case InvalidBody, MissingContentType:
		return http.StatusBadRequest
	case BodyAlreadyExtracted, HeadersAlreadyExtracted:
		return http.StatusInternalServerError
	}
	panic(fmt.Sprintf("parcel: unreachable %s", r.Kind))
}

// Message returns the human-readable response text.
func (r *Rejection) Message() string {
	switch r.Kind {
	case InvalidBody:
		if r.Cause == nil {
			return "Failed to parse the request body as MsgPack"
		}
		return fmt.Sprintf("Failed to parse the request body as MsgPack: %v", r.Cause)
	case MissingContentType:
		return "Expected request with `Content-Type: application/msgpack`"
	case BodyAlreadyExtracted:
		return "Cannot have two request body extractors for a single handler"
	case HeadersAlreadyExtracted:
		return "Headers taken by other extractor"
	}
	panic(fmt.Sprintf("parcel: unreachable %s", r.Kind))
}

func (r *Rejection) Error() string {
	return r.Message()
}

// Unwrap exposes the underlying decode error, if any.
func (r *Rejection) Unwrap() error {
	return r.Cause
}

// Is matches the sentinel error for the rejection's kind.
func (r *Rejection) Is(target error) bool {
	switch r.Kind {
	case InvalidBody:
		return target == ErrInvalidBody
	case MissingContentType:
		return target == ErrMissingContentType
	case BodyAlreadyExtracted:
		return target == ErrBodyAlreadyExtracted
	case HeadersAlreadyExtracted:
		return target == ErrHeadersAlreadyExtracted
	}
	return false
}

// Response renders the rejection as a plain-text response.
func (r *Rejection) Response() *Response {
	return textResponse(r.Status(), contentTypeText, r.Message())
}

// EncodeError represents a failure to encode an outbound value.
// It is a server-side failure, never a client rejection.
type EncodeError struct {
	Err   error // ErrEncode
	Cause error // Original error from the codec
}

func (e *EncodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// newRejection creates a Rejection of the given kind.
func newRejection(kind RejectionKind, cause error) *Rejection {
	return &Rejection{Kind: kind, Cause: cause}
}

// newEncodeError creates an EncodeError wrapping a codec failure.
func newEncodeError(cause error) error {
	return &EncodeError{
		Err:   ErrEncode,
		Cause: cause,
	}
}

// WriteError renders err to w. Rejections use their own status and text;
// any other error is reported as a 500 with the error text.
func WriteError(w http.ResponseWriter, err error) {
	var rejection *Rejection
	if errors.As(err, &rejection) {
		_ = rejection.Response().Render(w)
		return
	}
	_ = textResponse(http.StatusInternalServerError, contentTypeText, err.Error()).Render(w)
}
